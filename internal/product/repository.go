package product

import (
	"context"
	"errors"

	"github.com/inventorypulse/inventory-service/internal/model"
	"github.com/inventorypulse/inventory-service/internal/product/dto"
)

var (
	ErrNotFound  = errors.New("product not found")
	ErrSKUExists = errors.New("SKU already exists")
)

type Repository interface {
	Create(ctx context.Context, p *model.Product) error
	FindByID(ctx context.Context, id string) (*model.Product, error)
	FindBySKU(ctx context.Context, sku string) (*model.Product, error)
	FindAll(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error)

	// UpdateFields persists catalog fields only. Stock is owned by the
	// inventory transaction path and the import applier.
	UpdateFields(ctx context.Context, p *model.Product) error
	Delete(ctx context.Context, id string) error
}
