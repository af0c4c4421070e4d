package inventory

import (
	"context"

	"github.com/inventorypulse/inventory-service/internal/inventory/dto"
	"github.com/inventorypulse/inventory-service/internal/model"
)

type UseCase interface {
	AdjustStock(ctx context.Context, input *dto.AdjustStockInput) (*model.InventoryTransaction, error)
	ListTransactions(ctx context.Context, productID string, f *dto.TransactionFilters) ([]model.InventoryTransaction, int, error)
}
