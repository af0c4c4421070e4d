package importer

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/inventorypulse/inventory-service/internal/model"
)

// Fingerprint hashes the raw file bytes, not the parsed rows, so a
// byte-identical re-upload always yields the same value.
func Fingerprint(raw []byte) string {
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}

// Classify decides what a single candidate row means against the current
// state of its product. It is pure: the same inputs always give the same
// decision. Preview and commit-time re-validation both go through here, which
// is what lets commit re-derive stale classifications against fresh state.
func Classify(row model.ImportRow, current *model.Product) model.ImportDecision {
	dec := model.ImportDecision{
		LineNumber: row.LineNumber,
		SKU:        row.SKU,
	}

	if current == nil {
		dec.Action = model.ActionCreate
		dec.After = &model.ProductFields{
			Title:            row.Title,
			Description:      row.Description,
			Brand:            row.Brand,
			Category:         row.Category,
			ImageURL:         row.ImageURL,
			ReorderThreshold: row.ReorderThreshold,
			Stock:            row.Stock,
		}
		return dec
	}

	before := *current
	dec.Before = &before

	fieldsEqual := row.Title == current.Title &&
		row.Description == current.Description &&
		row.Brand == current.Brand &&
		row.Category == current.Category &&
		row.ImageURL == current.ImageURL &&
		row.ReorderThreshold == current.ReorderThreshold

	delta := row.Stock - current.Stock

	if fieldsEqual && delta == 0 {
		dec.Action = model.ActionNoop
		return dec
	}

	// The import is authoritative for catalog fields but never overwrites
	// stock: a differing stock value becomes a delta. A delta the current
	// stock cannot absorb makes the row unusable as an update.
	if current.Stock+delta < 0 {
		dec.Action = model.ActionConflict
		dec.ConflictReason = fmt.Sprintf(
			"stock delta %+d would drive stock below zero (current %d)", delta, current.Stock)
		return dec
	}

	dec.Action = model.ActionUpdate
	dec.After = &model.ProductFields{
		Title:            row.Title,
		Description:      row.Description,
		Brand:            row.Brand,
		Category:         row.Category,
		ImageURL:         row.ImageURL,
		ReorderThreshold: row.ReorderThreshold,
		StockDelta:       delta,
	}
	return dec
}

// ReValidate re-derives a preview decision against fresh storage state at
// commit time. The stock delta synthesized at preview is never recomputed: if
// the product's stock moved since preview, the delta is stale and the row
// escalates to CONFLICT instead of applying against state the caller never
// reviewed.
func ReValidate(row model.ImportRow, previewed model.ImportDecision, current *model.Product) model.ImportDecision {
	switch previewed.Action {
	case model.ActionCreate:
		if current == nil {
			return previewed
		}
		before := *current
		return model.ImportDecision{
			LineNumber:     row.LineNumber,
			SKU:            row.SKU,
			Action:         model.ActionConflict,
			Before:         &before,
			ConflictReason: "sku was created by another actor after preview",
		}

	case model.ActionConflict:
		// The conflict may have resolved itself, classify from scratch.
		return Classify(row, current)

	case model.ActionUpdate:
		dec := model.ImportDecision{LineNumber: row.LineNumber, SKU: row.SKU}
		if current == nil {
			dec.Action = model.ActionConflict
			dec.ConflictReason = "product was deleted after preview"
			return dec
		}
		before := *current
		dec.Before = &before

		delta := previewed.After.StockDelta
		if current.Stock != previewed.Before.Stock {
			dec.Action = model.ActionConflict
			dec.ConflictReason = fmt.Sprintf(
				"stock changed from %d to %d after preview; delta %+d is stale",
				previewed.Before.Stock, current.Stock, delta)
			return dec
		}
		if current.Stock+delta < 0 {
			dec.Action = model.ActionConflict
			dec.ConflictReason = fmt.Sprintf(
				"stock delta %+d would drive stock below zero (current %d)", delta, current.Stock)
			return dec
		}

		dec.Action = model.ActionUpdate
		dec.After = previewed.After
		return dec
	}

	return previewed
}

// Reconcile classifies every surviving row against a read-only snapshot of
// current products keyed by SKU and tallies the summary. Decision order is
// the file order of the rows.
func Reconcile(parse *ParseResult, current map[string]*model.Product) ([]model.ImportDecision, model.ImportSummary) {
	decisions := make([]model.ImportDecision, 0, len(parse.Rows))
	summary := model.ImportSummary{
		TotalRows: parse.TotalRows,
		ToSkip:    len(parse.Failures),
	}

	for _, row := range parse.Rows {
		dec := Classify(row, current[row.SKU])
		decisions = append(decisions, dec)

		switch dec.Action {
		case model.ActionCreate:
			summary.ToCreate++
		case model.ActionUpdate:
			summary.ToUpdate++
		case model.ActionConflict:
			summary.ToConflict++
		case model.ActionNoop:
			summary.Unchanged++
		}
	}

	return decisions, summary
}
