package alert

import (
	"context"

	"github.com/inventorypulse/inventory-service/internal/alert/dto"
	"github.com/inventorypulse/inventory-service/internal/model"
)

type UseCase interface {
	RecordLowStock(ctx context.Context, product *model.Product) error
	ListAlerts(ctx context.Context, f *dto.AlertFilters) ([]model.Alert, int, error)
	MarkSeen(ctx context.Context, id string) error
}
