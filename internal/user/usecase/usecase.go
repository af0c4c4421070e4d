package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/inventorypulse/inventory-service/internal/auth"
	"github.com/inventorypulse/inventory-service/internal/model"
	"github.com/inventorypulse/inventory-service/internal/user"
	"github.com/inventorypulse/inventory-service/internal/user/dto"
	"github.com/inventorypulse/inventory-service/pkg/logger"
)

type userUseCase struct {
	repo   user.Repository
	tokens *auth.TokenManager
	logger logger.Logger
}

func NewUserUseCase(repo user.Repository, tokens *auth.TokenManager, log logger.Logger) user.UseCase {
	return &userUseCase{repo: repo, tokens: tokens, logger: log}
}

func (uc *userUseCase) Register(ctx context.Context, input *dto.RegisterInput) (*model.User, error) {
	existing, err := uc.repo.FindByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, user.ErrEmailExists
	}

	role := input.Role
	switch role {
	case model.RoleAdmin, model.RoleManager, model.RoleViewer:
	case "":
		role = model.RoleViewer
	default:
		return nil, errors.New("unknown role")
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	u := &model.User{
		ID:           uuid.NewString(),
		Email:        input.Email,
		Username:     input.Username,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    time.Now(),
	}
	if err := uc.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	uc.logger.Info("user registered", zap.String("email", u.Email), zap.String("role", u.Role))
	return u, nil
}

func (uc *userUseCase) Login(ctx context.Context, input *dto.LoginInput) (*dto.LoginResponse, error) {
	u, err := uc.repo.FindByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if u == nil || !auth.CheckPassword(u.PasswordHash, input.Password) {
		return nil, user.ErrInvalidCredentials
	}

	token, ttl, err := uc.tokens.Generate(u.ID, u.Username, u.Role)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		Token:     token,
		ExpiresIn: int(ttl.Seconds()),
		User:      u,
	}, nil
}

func (uc *userUseCase) GetByID(ctx context.Context, id string) (*model.User, error) {
	u, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, user.ErrNotFound
	}
	return u, nil
}
