package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/inventorypulse/inventory-service/internal/model"
)

// Column names are matched case-insensitively with spaces, underscores and
// dashes stripped, so "Reorder Threshold" and "reorder_threshold" both bind.
const (
	colSKU              = "sku"
	colTitle            = "title"
	colDescription      = "description"
	colBrand            = "brand"
	colCategory         = "category"
	colImageURL         = "imageurl"
	colStock            = "stock"
	colReorderThreshold = "reorderthreshold"
)

var requiredColumns = []string{colSKU, colStock, colReorderThreshold}

// ParseResult is the outcome of a single pass over a catalog file. Rows is in
// file order with duplicate SKUs already resolved last-row-wins; TotalRows
// counts every non-empty data line, including failed and superseded ones.
type ParseResult struct {
	Rows      []model.ImportRow
	Failures  []model.ParseFailure
	TotalRows int
}

// ParseCatalog reads the whole file once. A structural problem (no header,
// missing required columns) returns a *SchemaError; anything wrong with an
// individual row is collected as a ParseFailure and never aborts the file.
func ParseCatalog(r io.Reader) (*ParseResult, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, &SchemaError{Missing: requiredColumns}
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	colIdx := make(map[string]int, len(header))
	for i, h := range header {
		colIdx[normalizeHeader(h)] = i
	}

	var missing []string
	for _, col := range requiredColumns {
		if _, ok := colIdx[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, &SchemaError{Missing: missing}
	}

	res := &ParseResult{}
	bySKU := make(map[string]int)

	for line := 2; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				res.TotalRows++
				res.Failures = append(res.Failures, model.ParseFailure{
					LineNumber: line,
					Reason:     "malformed CSV: " + parseErr.Err.Error(),
				})
				continue
			}
			return nil, fmt.Errorf("reading line %d: %w", line, err)
		}

		if isEmptyRecord(record) {
			continue
		}

		res.TotalRows++

		if len(record) != len(header) {
			res.Failures = append(res.Failures, model.ParseFailure{
				LineNumber: line,
				Reason:     fmt.Sprintf("expected %d columns, got %d", len(header), len(record)),
			})
			continue
		}

		row, reason := buildRow(line, record, colIdx)
		if reason != "" {
			res.Failures = append(res.Failures, model.ParseFailure{LineNumber: line, Reason: reason})
			continue
		}

		// Duplicate SKUs within one file resolve last-row-wins: the earlier
		// occurrence is replaced in place so decision order stays stable.
		if prev, ok := bySKU[row.SKU]; ok {
			res.Rows[prev] = row
			continue
		}
		bySKU[row.SKU] = len(res.Rows)
		res.Rows = append(res.Rows, row)
	}

	return res, nil
}

func buildRow(line int, record []string, colIdx map[string]int) (model.ImportRow, string) {
	cell := func(col string) string {
		i, ok := colIdx[col]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	sku := cell(colSKU)
	if sku == "" {
		return model.ImportRow{}, "sku must not be empty"
	}

	stock, err := parseNonNegative(cell(colStock))
	if err != nil {
		return model.ImportRow{}, "stock " + err.Error()
	}
	threshold, err := parseNonNegative(cell(colReorderThreshold))
	if err != nil {
		return model.ImportRow{}, "reorderThreshold " + err.Error()
	}

	return model.ImportRow{
		LineNumber:       line,
		SKU:              sku,
		Title:            cell(colTitle),
		Description:      cell(colDescription),
		Brand:            cell(colBrand),
		Category:         cell(colCategory),
		ImageURL:         cell(colImageURL),
		Stock:            stock,
		ReorderThreshold: threshold,
	}, ""
}

func parseNonNegative(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("must be an integer, got %q", s)
	}
	if n < 0 {
		return 0, fmt.Errorf("must not be negative, got %d", n)
	}
	return n, nil
}

func normalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	h = strings.TrimPrefix(h, "\ufeff") // strip UTF-8 BOM on the first column
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '_', '-':
			return -1
		}
		return r
	}, h)
}

func isEmptyRecord(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
