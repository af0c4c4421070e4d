package inventory

import (
	"context"
	"errors"

	"github.com/inventorypulse/inventory-service/internal/inventory/dto"
	"github.com/inventorypulse/inventory-service/internal/model"
)

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrInsufficientStock = errors.New("insufficient stock")
)

type Repository interface {
	// ApplyAdjustment persists the transaction and the resulting stock level
	// atomically. The product row is locked for the duration of the write.
	ApplyAdjustment(ctx context.Context, txn *model.InventoryTransaction) (*model.Product, error)
	ListByProduct(ctx context.Context, productID string, f *dto.TransactionFilters) ([]model.InventoryTransaction, int, error)
}
