package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inventorypulse/inventory-service/internal/model"
	"github.com/inventorypulse/inventory-service/internal/product"
	"github.com/inventorypulse/inventory-service/internal/product/dto"
	"github.com/inventorypulse/inventory-service/pkg/logger"
)

type fakeRepo struct {
	byID map[string]*model.Product
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byID: make(map[string]*model.Product)}
}

func (r *fakeRepo) Create(_ context.Context, p *model.Product) error {
	r.byID[p.ID] = p
	return nil
}

func (r *fakeRepo) FindByID(_ context.Context, id string) (*model.Product, error) {
	if p, ok := r.byID[id]; ok {
		out := *p
		return &out, nil
	}
	return nil, nil
}

func (r *fakeRepo) FindBySKU(_ context.Context, sku string) (*model.Product, error) {
	for _, p := range r.byID {
		if p.SKU == sku {
			out := *p
			return &out, nil
		}
	}
	return nil, nil
}

func (r *fakeRepo) FindAll(_ context.Context, f *dto.ProductFilters) ([]model.Product, int, error) {
	var out []model.Product
	for _, p := range r.byID {
		if f.LowStock && !p.NeedsReorder() {
			continue
		}
		out = append(out, *p)
	}
	return out, len(out), nil
}

func (r *fakeRepo) UpdateFields(_ context.Context, p *model.Product) error {
	stored := r.byID[p.ID]
	stock := stored.Stock
	*stored = *p
	stored.Stock = stock
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, id string) error {
	delete(r.byID, id)
	return nil
}

func TestCreateProduct(t *testing.T) {
	repo := newFakeRepo()
	uc := NewProductUseCase(repo, logger.NewNop())

	p, err := uc.CreateProduct(context.Background(), &dto.CreateProductInput{
		SKU: "SKU1", Title: "Widget", Stock: 10, ReorderThreshold: 2,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, 10, p.Stock)
	assert.False(t, p.CreatedAt.IsZero())
}

func TestCreateProductDuplicateSKU(t *testing.T) {
	repo := newFakeRepo()
	uc := NewProductUseCase(repo, logger.NewNop())
	ctx := context.Background()

	_, err := uc.CreateProduct(ctx, &dto.CreateProductInput{SKU: "SKU1", Title: "Widget"})
	require.NoError(t, err)

	_, err = uc.CreateProduct(ctx, &dto.CreateProductInput{SKU: "SKU1", Title: "Other"})
	assert.ErrorIs(t, err, product.ErrSKUExists)
}

func TestGetProductNotFound(t *testing.T) {
	uc := NewProductUseCase(newFakeRepo(), logger.NewNop())

	_, err := uc.GetProduct(context.Background(), "missing")
	assert.ErrorIs(t, err, product.ErrNotFound)
}

func TestUpdateProductNeverTouchesStock(t *testing.T) {
	repo := newFakeRepo()
	uc := NewProductUseCase(repo, logger.NewNop())
	ctx := context.Background()

	created, err := uc.CreateProduct(ctx, &dto.CreateProductInput{
		SKU: "SKU1", Title: "Widget", Stock: 10, ReorderThreshold: 2,
	})
	require.NoError(t, err)

	updated, err := uc.UpdateProduct(ctx, &dto.UpdateProductInput{
		ID: created.ID, Title: "Renamed", ReorderThreshold: 4,
	})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)
	assert.Equal(t, 4, updated.ReorderThreshold)
	assert.Equal(t, 10, repo.byID[created.ID].Stock)
	assert.Equal(t, "SKU1", repo.byID[created.ID].SKU)
}

func TestDeleteProductNotFound(t *testing.T) {
	uc := NewProductUseCase(newFakeRepo(), logger.NewNop())

	err := uc.DeleteProduct(context.Background(), "missing")
	assert.ErrorIs(t, err, product.ErrNotFound)
}

func TestListLowStock(t *testing.T) {
	repo := newFakeRepo()
	uc := NewProductUseCase(repo, logger.NewNop())
	ctx := context.Background()

	_, err := uc.CreateProduct(ctx, &dto.CreateProductInput{SKU: "LOW", Title: "A", Stock: 1, ReorderThreshold: 5})
	require.NoError(t, err)
	_, err = uc.CreateProduct(ctx, &dto.CreateProductInput{SKU: "OK", Title: "B", Stock: 50, ReorderThreshold: 5})
	require.NoError(t, err)

	low, err := uc.ListLowStock(ctx)
	require.NoError(t, err)
	require.Len(t, low, 1)
	assert.Equal(t, "LOW", low[0].SKU)
}
