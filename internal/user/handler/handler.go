package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/inventorypulse/inventory-service/internal/auth"
	"github.com/inventorypulse/inventory-service/internal/user"
	"github.com/inventorypulse/inventory-service/internal/user/dto"
	"github.com/inventorypulse/inventory-service/pkg/logger"
	"github.com/inventorypulse/inventory-service/pkg/response"
)

type UserHandler struct {
	uc     user.UseCase
	logger logger.Logger
}

func NewUserHandler(uc user.UseCase, log logger.Logger) *UserHandler {
	return &UserHandler{uc: uc, logger: log}
}

// RegisterPublic mounts the unauthenticated endpoints.
func (h *UserHandler) RegisterPublic(r chi.Router) {
	r.Post("/auth/register", h.Register)
	r.Post("/auth/login", h.Login)
}

// RegisterProtected mounts the endpoints that need a valid token.
func (h *UserHandler) RegisterProtected(r chi.Router) {
	r.Get("/auth/me", h.Me)
}

func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var input dto.RegisterInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if input.Email == "" || input.Username == "" || len(input.Password) < 8 {
		response.Error(w, http.StatusBadRequest, "email, username and a password of at least 8 characters are required")
		return
	}

	u, err := h.uc.Register(r.Context(), &input)
	if err != nil {
		if errors.Is(err, user.ErrEmailExists) {
			response.Error(w, http.StatusConflict, err.Error())
			return
		}
		h.logger.Error("user registration failed", zap.String("email", input.Email), zap.Error(err))
		response.Error(w, http.StatusInternalServerError, "registration failed")
		return
	}
	response.JSON(w, http.StatusCreated, u)
}

func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input dto.LoginInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.uc.Login(r.Context(), &input)
	if err != nil {
		if errors.Is(err, user.ErrInvalidCredentials) {
			response.Error(w, http.StatusUnauthorized, err.Error())
			return
		}
		h.logger.Error("login failed", zap.Error(err))
		response.Error(w, http.StatusInternalServerError, "login failed")
		return
	}
	response.JSON(w, http.StatusOK, resp)
}

func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	u, err := h.uc.GetByID(r.Context(), actor.UserID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			response.Error(w, http.StatusNotFound, err.Error())
			return
		}
		response.Error(w, http.StatusInternalServerError, "failed to load user")
		return
	}
	response.JSON(w, http.StatusOK, u)
}
