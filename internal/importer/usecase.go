package importer

import (
	"context"

	"github.com/inventorypulse/inventory-service/internal/model"
)

type UseCase interface {
	// Preview parses and reconciles an uploaded catalog, stores the pending
	// batch and returns it with its fresh batchId and fingerprint.
	Preview(ctx context.Context, fileName string, raw []byte, actor string) (*model.ImportBatch, error)

	// Commit validates batchId+fileHash against the stored batch, applies it
	// atomically and consumes the batch so a second commit finds nothing.
	Commit(ctx context.Context, batchID, fileHash, actor string) (*model.ImportResult, error)

	// Discard drops a pending batch without applying it.
	Discard(ctx context.Context, batchID string) error
}
