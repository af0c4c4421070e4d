package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inventorypulse/inventory-service/internal/inventory"
	"github.com/inventorypulse/inventory-service/internal/inventory/dto"
	"github.com/inventorypulse/inventory-service/internal/model"
	"github.com/inventorypulse/inventory-service/pkg/logger"
)

type fakeRepo struct {
	products     map[string]*model.Product
	transactions []model.InventoryTransaction
}

func newFakeRepo(products ...*model.Product) *fakeRepo {
	r := &fakeRepo{products: make(map[string]*model.Product)}
	for _, p := range products {
		r.products[p.ID] = p
	}
	return r
}

func (r *fakeRepo) ApplyAdjustment(_ context.Context, txn *model.InventoryTransaction) (*model.Product, error) {
	p, ok := r.products[txn.ProductID]
	if !ok {
		return nil, inventory.ErrProductNotFound
	}
	if p.Stock+txn.Delta < 0 {
		return nil, inventory.ErrInsufficientStock
	}
	p.Stock += txn.Delta
	txn.ResultingStock = p.Stock
	r.transactions = append(r.transactions, *txn)
	out := *p
	return &out, nil
}

func (r *fakeRepo) ListByProduct(_ context.Context, productID string, _ *dto.TransactionFilters) ([]model.InventoryTransaction, int, error) {
	var out []model.InventoryTransaction
	for _, t := range r.transactions {
		if t.ProductID == productID {
			out = append(out, t)
		}
	}
	return out, len(out), nil
}

type fakeAlerts struct {
	recorded []string
}

func (a *fakeAlerts) RecordLowStock(_ context.Context, p *model.Product) error {
	a.recorded = append(a.recorded, p.ID)
	return nil
}

func product(id string, stock, threshold int) *model.Product {
	return &model.Product{
		BaseModel:        model.BaseModel{ID: id},
		SKU:              "sku-" + id,
		Stock:            stock,
		ReorderThreshold: threshold,
	}
}

func TestAdjustStockApplies(t *testing.T) {
	repo := newFakeRepo(product("p1", 10, 2))
	alerts := &fakeAlerts{}
	uc := NewInventoryUseCase(repo, nil, alerts, logger.NewNop())

	txn, err := uc.AdjustStock(context.Background(), &dto.AdjustStockInput{
		ProductID: "p1", Delta: -3, Reason: "sale", Actor: "alice",
	})
	require.NoError(t, err)

	assert.Equal(t, -3, txn.Delta)
	assert.Equal(t, 7, txn.ResultingStock)
	assert.Equal(t, "sale", txn.Reason)
	assert.Equal(t, "alice", txn.Actor)
	assert.Equal(t, 7, repo.products["p1"].Stock)
	assert.Empty(t, alerts.recorded)
}

func TestAdjustStockRejectsZeroDelta(t *testing.T) {
	repo := newFakeRepo(product("p1", 10, 2))
	uc := NewInventoryUseCase(repo, nil, nil, logger.NewNop())

	_, err := uc.AdjustStock(context.Background(), &dto.AdjustStockInput{
		ProductID: "p1", Delta: 0, Reason: "noop",
	})
	assert.Error(t, err)
	assert.Empty(t, repo.transactions)
}

func TestAdjustStockRequiresReason(t *testing.T) {
	repo := newFakeRepo(product("p1", 10, 2))
	uc := NewInventoryUseCase(repo, nil, nil, logger.NewNop())

	_, err := uc.AdjustStock(context.Background(), &dto.AdjustStockInput{
		ProductID: "p1", Delta: 1,
	})
	assert.Error(t, err)
}

func TestAdjustStockInsufficient(t *testing.T) {
	repo := newFakeRepo(product("p1", 2, 0))
	uc := NewInventoryUseCase(repo, nil, nil, logger.NewNop())

	_, err := uc.AdjustStock(context.Background(), &dto.AdjustStockInput{
		ProductID: "p1", Delta: -5, Reason: "sale",
	})
	assert.ErrorIs(t, err, inventory.ErrInsufficientStock)
	assert.Equal(t, 2, repo.products["p1"].Stock)
}

func TestAdjustStockUnknownProduct(t *testing.T) {
	uc := NewInventoryUseCase(newFakeRepo(), nil, nil, logger.NewNop())

	_, err := uc.AdjustStock(context.Background(), &dto.AdjustStockInput{
		ProductID: "missing", Delta: 1, Reason: "restock",
	})
	assert.ErrorIs(t, err, inventory.ErrProductNotFound)
}

func TestAdjustStockTriggersLowStockAlert(t *testing.T) {
	repo := newFakeRepo(product("p1", 10, 5))
	alerts := &fakeAlerts{}
	uc := NewInventoryUseCase(repo, nil, alerts, logger.NewNop())

	_, err := uc.AdjustStock(context.Background(), &dto.AdjustStockInput{
		ProductID: "p1", Delta: -6, Reason: "sale",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"p1"}, alerts.recorded)
}

func TestListTransactions(t *testing.T) {
	repo := newFakeRepo(product("p1", 10, 2))
	uc := NewInventoryUseCase(repo, nil, nil, logger.NewNop())
	ctx := context.Background()

	_, err := uc.AdjustStock(ctx, &dto.AdjustStockInput{ProductID: "p1", Delta: 5, Reason: "restock"})
	require.NoError(t, err)
	_, err = uc.AdjustStock(ctx, &dto.AdjustStockInput{ProductID: "p1", Delta: -2, Reason: "sale"})
	require.NoError(t, err)

	txns, total, err := uc.ListTransactions(ctx, "p1", &dto.TransactionFilters{})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, txns, 2)
	assert.Equal(t, 15, txns[0].ResultingStock)
	assert.Equal(t, 13, txns[1].ResultingStock)
}
