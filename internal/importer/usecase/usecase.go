package usecase

import (
	"bytes"
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/inventorypulse/inventory-service/internal/importer"
	"github.com/inventorypulse/inventory-service/internal/model"
	"github.com/inventorypulse/inventory-service/pkg/broker"
	"github.com/inventorypulse/inventory-service/pkg/logger"
	"github.com/inventorypulse/inventory-service/pkg/metrics"
)

type importUseCase struct {
	repo   importer.Repository
	store  importer.BatchStore
	alerts importer.AlertRecorder
	events *broker.Producer
	logger logger.Logger
}

func NewImportUseCase(
	repo importer.Repository,
	store importer.BatchStore,
	alerts importer.AlertRecorder,
	events *broker.Producer,
	log logger.Logger,
) importer.UseCase {
	return &importUseCase{
		repo:   repo,
		store:  store,
		alerts: alerts,
		events: events,
		logger: log,
	}
}

func (uc *importUseCase) Preview(ctx context.Context, fileName string, raw []byte, actor string) (*model.ImportBatch, error) {
	parse, err := importer.ParseCatalog(bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}

	skus := make([]string, 0, len(parse.Rows))
	for _, row := range parse.Rows {
		skus = append(skus, row.SKU)
	}

	current, err := uc.repo.FindAllBySKUs(ctx, skus)
	if err != nil {
		return nil, err
	}

	decisions, summary := importer.Reconcile(parse, current)

	batch := &model.ImportBatch{
		FileHash:  importer.Fingerprint(raw),
		FileName:  fileName,
		Actor:     actor,
		Rows:      parse.Rows,
		Decisions: decisions,
		Failures:  parse.Failures,
		Summary:   summary,
	}

	batchID, err := uc.store.Put(ctx, batch)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("import previewed",
		zap.String("batch_id", batchID),
		zap.String("file", fileName),
		zap.Int("total_rows", summary.TotalRows),
		zap.Int("to_create", summary.ToCreate),
		zap.Int("to_update", summary.ToUpdate),
		zap.Int("to_conflict", summary.ToConflict),
	)
	return batch, nil
}

func (uc *importUseCase) Commit(ctx context.Context, batchID, fileHash, actor string) (*model.ImportResult, error) {
	batch, err := uc.store.Get(ctx, batchID)
	if err != nil {
		return nil, err
	}

	// A hash mismatch means the client is committing a different file than
	// it previewed. The batch stays put: the caller may still commit the
	// original file, or re-preview.
	if batch.FileHash != fileHash {
		return nil, importer.ErrStaleBatch
	}

	outcome, err := uc.repo.ApplyImport(ctx, batch, actor)
	if err != nil {
		// Everything was rolled back; keep the batch so a transient storage
		// failure can be retried until the TTL runs out.
		uc.logger.Error("import apply failed", zap.String("batch_id", batchID), zap.Error(err))
		return nil, &importer.CommitFailedError{Err: err}
	}

	// Consume the batch: a second commit of the same pair gets a not-found,
	// never a double apply.
	if err := uc.store.Discard(ctx, batchID); err != nil {
		uc.logger.Warn("failed to discard committed batch", zap.String("batch_id", batchID), zap.Error(err))
	}

	result := &model.ImportResult{
		TotalRows:  batch.Summary.TotalRows,
		Imported:   len(outcome.Created) + len(outcome.Updated),
		Skipped:    batch.Summary.ToSkip + outcome.Unchanged,
		Conflicted: len(outcome.Conflicts),
	}

	metrics.ImportsCommitted.WithLabelValues("imported").Add(float64(result.Imported))
	metrics.ImportsCommitted.WithLabelValues("skipped").Add(float64(result.Skipped))
	metrics.ImportsCommitted.WithLabelValues("conflicted").Add(float64(result.Conflicted))

	uc.afterCommit(ctx, batch, outcome, result)

	uc.logger.Info("import committed",
		zap.String("batch_id", batchID),
		zap.Int("imported", result.Imported),
		zap.Int("skipped", result.Skipped),
		zap.Int("conflicted", result.Conflicted),
	)
	return result, nil
}

func (uc *importUseCase) Discard(ctx context.Context, batchID string) error {
	return uc.store.Discard(ctx, batchID)
}

type importCommittedEvent struct {
	EventID   string             `json:"event_id"`
	EventType string             `json:"event_type"`
	BatchID   string             `json:"batch_id"`
	FileHash  string             `json:"file_hash"`
	Actor     string             `json:"actor"`
	Result    model.ImportResult `json:"result"`
	Timestamp time.Time          `json:"timestamp"`
}

// afterCommit handles the best-effort side effects of a successful commit:
// low-stock alerts and the committed event. Failures here are logged, never
// surfaced, because the import itself is already durable.
func (uc *importUseCase) afterCommit(ctx context.Context, batch *model.ImportBatch, outcome *importer.ApplyOutcome, result *model.ImportResult) {
	if uc.alerts != nil {
		for _, p := range append(outcome.Created, outcome.Updated...) {
			if !p.NeedsReorder() {
				continue
			}
			if err := uc.alerts.RecordLowStock(ctx, &p); err != nil {
				uc.logger.Warn("failed to record low-stock alert",
					zap.String("sku", p.SKU), zap.Error(err))
			}
		}
	}

	event := importCommittedEvent{
		EventID:   uuid.NewString(),
		EventType: "import.committed",
		BatchID:   batch.BatchID,
		FileHash:  batch.FileHash,
		Actor:     batch.Actor,
		Result:    *result,
		Timestamp: time.Now(),
	}
	if err := uc.events.Publish(ctx, batch.BatchID, event); err != nil {
		uc.logger.Warn("failed to publish import.committed", zap.Error(err))
	}
}
