package dto

import "github.com/inventorypulse/inventory-service/internal/model"

// PreviewResponse is the wire shape of a preview. The stored batch carries
// the raw rows too; the client only needs the diff.
type PreviewResponse struct {
	BatchID   string                 `json:"batchId"`
	FileHash  string                 `json:"fileHash"`
	Summary   model.ImportSummary    `json:"summary"`
	Decisions []model.ImportDecision `json:"decisions"`
	Failures  []model.ParseFailure   `json:"failures,omitempty"`
}

func PreviewFromBatch(batch *model.ImportBatch) *PreviewResponse {
	return &PreviewResponse{
		BatchID:   batch.BatchID,
		FileHash:  batch.FileHash,
		Summary:   batch.Summary,
		Decisions: batch.Decisions,
		Failures:  batch.Failures,
	}
}

type CommitRequest struct {
	BatchID  string `json:"batchId"`
	FileHash string `json:"fileHash"`
}
