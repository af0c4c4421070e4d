package alert

import (
	"context"
	"errors"

	"github.com/inventorypulse/inventory-service/internal/alert/dto"
	"github.com/inventorypulse/inventory-service/internal/model"
)

var ErrNotFound = errors.New("alert not found")

type Repository interface {
	Create(ctx context.Context, a *model.Alert) error
	FindAll(ctx context.Context, f *dto.AlertFilters) ([]model.Alert, int, error)
	// FindOpenByProduct reports whether the product already has an unseen
	// alert of the given type, so repeated triggers do not stack duplicates.
	FindOpenByProduct(ctx context.Context, productID, alertType string) (*model.Alert, error)
	MarkSeen(ctx context.Context, id string) (bool, error)
}
