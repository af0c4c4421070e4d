package model

import "time"

type ImportAction string

const (
	ActionCreate   ImportAction = "CREATE"
	ActionUpdate   ImportAction = "UPDATE"
	ActionConflict ImportAction = "CONFLICT"
	ActionNoop     ImportAction = "NOOP"
)

// ImportRow is one normalized candidate row from an uploaded catalog file.
// All values are trimmed and coerced; rows that fail coercion never become
// an ImportRow, they become a ParseFailure instead.
type ImportRow struct {
	LineNumber       int    `json:"lineNumber"`
	SKU              string `json:"sku"`
	Title            string `json:"title"`
	Description      string `json:"description"`
	Brand            string `json:"brand"`
	Category         string `json:"category"`
	ImageURL         string `json:"imageUrl"`
	Stock            int    `json:"stock"`
	ReorderThreshold int    `json:"reorderThreshold"`
}

// ProductFields carries the catalog values an import row wants to establish.
// Stock is the initial stock for CREATE decisions only; StockDelta is the
// synthesized delta for UPDATE decisions only (imports never overwrite stock
// on existing products).
type ProductFields struct {
	Title            string `json:"title"`
	Description      string `json:"description"`
	Brand            string `json:"brand"`
	Category         string `json:"category"`
	ImageURL         string `json:"imageUrl"`
	ReorderThreshold int    `json:"reorderThreshold"`
	Stock            int    `json:"stock"`
	StockDelta       int    `json:"stockDelta"`
}

// ImportDecision is one row's classification. Immutable once produced by the
// reconciliation engine.
type ImportDecision struct {
	LineNumber     int            `json:"lineNumber"`
	SKU            string         `json:"sku"`
	Action         ImportAction   `json:"action"`
	Before         *Product       `json:"before"`
	After          *ProductFields `json:"after"`
	ConflictReason string         `json:"conflictReason,omitempty"`
}

type ParseFailure struct {
	LineNumber int    `json:"lineNumber"`
	Reason     string `json:"reason"`
}

type ImportSummary struct {
	TotalRows  int `json:"totalRows"`
	ToCreate   int `json:"toCreate"`
	ToUpdate   int `json:"toUpdate"`
	ToConflict int `json:"toConflict"`
	ToSkip     int `json:"toSkip"`
	Unchanged  int `json:"unchanged"`
}

// ImportBatch is one pending preview held between preview and commit. Owned
// exclusively by the batch store; destroyed on commit, discard or TTL expiry.
type ImportBatch struct {
	BatchID   string           `json:"batchId"`
	FileHash  string           `json:"fileHash"`
	FileName  string           `json:"fileName"`
	Actor     string           `json:"actor"`
	CreatedAt time.Time        `json:"createdAt"`
	ExpiresAt time.Time        `json:"expiresAt"`
	Rows      []ImportRow      `json:"rows"`
	Decisions []ImportDecision `json:"decisions"`
	Failures  []ParseFailure   `json:"failures"`
	Summary   ImportSummary    `json:"summary"`
}

// Expired reports whether the batch has outlived its TTL at the given time.
func (b *ImportBatch) Expired(now time.Time) bool {
	return now.After(b.ExpiresAt)
}

type ImportResult struct {
	TotalRows  int `json:"totalRows"`
	Imported   int `json:"imported"`
	Skipped    int `json:"skipped"`
	Conflicted int `json:"conflicted"`
}
