package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/inventorypulse/inventory-service/internal/alert"
	"github.com/inventorypulse/inventory-service/internal/alert/dto"
	"github.com/inventorypulse/inventory-service/internal/model"
	"github.com/inventorypulse/inventory-service/pkg/broker"
	"github.com/inventorypulse/inventory-service/pkg/logger"
)

type alertUseCase struct {
	repo   alert.Repository
	events *broker.Producer
	logger logger.Logger
}

func NewAlertUseCase(repo alert.Repository, events *broker.Producer, log logger.Logger) alert.UseCase {
	return &alertUseCase{
		repo:   repo,
		events: events,
		logger: log,
	}
}

type lowStockEvent struct {
	EventID   string    `json:"eventId"`
	EventType string    `json:"eventType"`
	ProductID string    `json:"productId"`
	SKU       string    `json:"sku"`
	Stock     int       `json:"stock"`
	Threshold int       `json:"threshold"`
	Timestamp time.Time `json:"timestamp"`
}

func (uc *alertUseCase) RecordLowStock(ctx context.Context, p *model.Product) error {
	existing, err := uc.repo.FindOpenByProduct(ctx, p.ID, model.AlertTypeLowStock)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	a := &model.Alert{
		ID:        uuid.NewString(),
		ProductID: p.ID,
		Type:      model.AlertTypeLowStock,
		Message:   fmt.Sprintf("%s stock is at %d (reorder threshold %d)", p.SKU, p.Stock, p.ReorderThreshold),
		Seen:      false,
		CreatedAt: time.Now(),
	}
	if err := uc.repo.Create(ctx, a); err != nil {
		return err
	}

	uc.logger.Info("low stock alert recorded",
		zap.String("productId", p.ID),
		zap.String("sku", p.SKU),
		zap.Int("stock", p.Stock))

	if err := uc.events.Publish(ctx, p.SKU, lowStockEvent{
		EventID:   uuid.NewString(),
		EventType: "stock.low",
		ProductID: p.ID,
		SKU:       p.SKU,
		Stock:     p.Stock,
		Threshold: p.ReorderThreshold,
		Timestamp: a.CreatedAt,
	}); err != nil {
		uc.logger.Warn("failed to publish low stock event", zap.Error(err))
	}

	return nil
}

func (uc *alertUseCase) ListAlerts(ctx context.Context, f *dto.AlertFilters) ([]model.Alert, int, error) {
	return uc.repo.FindAll(ctx, f)
}

func (uc *alertUseCase) MarkSeen(ctx context.Context, id string) error {
	found, err := uc.repo.MarkSeen(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		return alert.ErrNotFound
	}
	return nil
}
