package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/inventorypulse/inventory-service/internal/model"
	"github.com/inventorypulse/inventory-service/internal/product"
	"github.com/inventorypulse/inventory-service/internal/product/dto"
	"github.com/inventorypulse/inventory-service/pkg/logger"
)

type productUseCase struct {
	repo   product.Repository
	logger logger.Logger
}

func NewProductUseCase(repo product.Repository, log logger.Logger) product.UseCase {
	return &productUseCase{repo: repo, logger: log}
}

func (uc *productUseCase) CreateProduct(ctx context.Context, input *dto.CreateProductInput) (*model.Product, error) {
	existing, err := uc.repo.FindBySKU(ctx, input.SKU)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, product.ErrSKUExists
	}

	now := time.Now()
	p := &model.Product{
		BaseModel:        model.BaseModel{ID: uuid.NewString(), CreatedAt: now, UpdatedAt: now},
		SKU:              input.SKU,
		Title:            input.Title,
		Description:      input.Description,
		Brand:            input.Brand,
		Category:         input.Category,
		ImageURL:         input.ImageURL,
		Stock:            input.Stock,
		ReorderThreshold: input.ReorderThreshold,
	}

	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	uc.logger.Info("product created", zap.String("sku", p.SKU), zap.String("id", p.ID))
	return p, nil
}

func (uc *productUseCase) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	p, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, product.ErrNotFound
	}
	return p, nil
}

func (uc *productUseCase) ListProducts(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error) {
	return uc.repo.FindAll(ctx, filters)
}

func (uc *productUseCase) ListLowStock(ctx context.Context) ([]model.Product, error) {
	products, _, err := uc.repo.FindAll(ctx, &dto.ProductFilters{LowStock: true})
	return products, err
}

func (uc *productUseCase) UpdateProduct(ctx context.Context, input *dto.UpdateProductInput) (*model.Product, error) {
	p, err := uc.repo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, product.ErrNotFound
	}

	p.Title = input.Title
	p.Description = input.Description
	p.Brand = input.Brand
	p.Category = input.Category
	p.ImageURL = input.ImageURL
	p.ReorderThreshold = input.ReorderThreshold
	p.UpdatedAt = time.Now()

	if err := uc.repo.UpdateFields(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (uc *productUseCase) DeleteProduct(ctx context.Context, id string) error {
	p, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if p == nil {
		return product.ErrNotFound
	}
	return uc.repo.Delete(ctx, id)
}
