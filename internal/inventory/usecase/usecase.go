package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/inventorypulse/inventory-service/internal/importer"
	"github.com/inventorypulse/inventory-service/internal/inventory"
	"github.com/inventorypulse/inventory-service/internal/inventory/dto"
	"github.com/inventorypulse/inventory-service/internal/model"
	"github.com/inventorypulse/inventory-service/pkg/cache"
	"github.com/inventorypulse/inventory-service/pkg/logger"
)

type inventoryUseCase struct {
	repo   inventory.Repository
	cache  *cache.RedisClient
	alerts importer.AlertRecorder
	logger logger.Logger
}

func NewInventoryUseCase(repo inventory.Repository, cache *cache.RedisClient, alerts importer.AlertRecorder, log logger.Logger) inventory.UseCase {
	return &inventoryUseCase{
		repo:   repo,
		cache:  cache,
		alerts: alerts,
		logger: log,
	}
}

func (uc *inventoryUseCase) AdjustStock(ctx context.Context, input *dto.AdjustStockInput) (*model.InventoryTransaction, error) {
	if input.Delta == 0 {
		return nil, errors.New("delta must be non-zero")
	}
	if input.Reason == "" {
		return nil, errors.New("reason is required")
	}

	// The database row lock in ApplyAdjustment is what guarantees
	// correctness; the redis lock just keeps concurrent adjusters from
	// piling up on the same row.
	if uc.cache != nil {
		lockKey := fmt.Sprintf("lock:stock:%s", input.ProductID)
		lockValue := uuid.NewString()

		acquired := false
		for i := 0; i < 3; i++ {
			ok, err := uc.cache.AcquireLock(ctx, lockKey, lockValue, 5*time.Second)
			if err != nil {
				uc.logger.Error("failed to acquire stock lock", zap.Error(err))
			}
			if ok {
				acquired = true
				break
			}
			time.Sleep(100 * time.Millisecond)
		}
		if !acquired {
			return nil, errors.New("product is busy, please try again later")
		}
		defer uc.cache.ReleaseLock(ctx, lockKey, lockValue)
	}

	txn := &model.InventoryTransaction{
		ID:        uuid.NewString(),
		ProductID: input.ProductID,
		Delta:     input.Delta,
		Reason:    input.Reason,
		Actor:     input.Actor,
		CreatedAt: time.Now(),
	}

	p, err := uc.repo.ApplyAdjustment(ctx, txn)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("stock adjusted",
		zap.String("productId", p.ID),
		zap.Int("delta", txn.Delta),
		zap.Int("resultingStock", txn.ResultingStock))

	if uc.alerts != nil && p.NeedsReorder() {
		if err := uc.alerts.RecordLowStock(ctx, p); err != nil {
			uc.logger.Warn("failed to record low stock alert",
				zap.String("productId", p.ID), zap.Error(err))
		}
	}

	return txn, nil
}

func (uc *inventoryUseCase) ListTransactions(ctx context.Context, productID string, f *dto.TransactionFilters) ([]model.InventoryTransaction, int, error) {
	return uc.repo.ListByProduct(ctx, productID, f)
}
