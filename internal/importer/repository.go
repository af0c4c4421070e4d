package importer

import (
	"context"

	"github.com/inventorypulse/inventory-service/internal/model"
)

// ApplyOutcome reports what a commit actually wrote after commit-time
// re-validation. Conflicts holds every decision that re-derived to CONFLICT
// against fresh storage state; those rows were excluded from the apply set.
type ApplyOutcome struct {
	Created      []model.Product
	Updated      []model.Product
	Transactions []model.InventoryTransaction
	Conflicts    []model.ImportDecision
	Unchanged    int
}

type Repository interface {
	// FindAllBySKUs is the batch snapshot lookup used at preview time.
	FindAllBySKUs(ctx context.Context, skus []string) (map[string]*model.Product, error)

	// ApplyImport re-validates every candidate row against current storage
	// state under per-SKU locks and applies all surviving CREATE and UPDATE
	// decisions as a single atomic unit. Stock deltas produce exactly one
	// inventory transaction each, with reason "import" and the batch id as
	// external reference. Any error means nothing was written.
	ApplyImport(ctx context.Context, batch *model.ImportBatch, actor string) (*ApplyOutcome, error)
}

// AlertRecorder lets the commit path flag products whose post-import stock
// sits at or below their reorder threshold.
type AlertRecorder interface {
	RecordLowStock(ctx context.Context, product *model.Product) error
}
