package importer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inventorypulse/inventory-service/internal/model"
)

func existingProduct(sku string, stock int) *model.Product {
	return &model.Product{
		BaseModel:        model.BaseModel{ID: "id-" + sku},
		SKU:              sku,
		Title:            "Widget",
		Brand:            "Acme",
		Stock:            stock,
		ReorderThreshold: 2,
	}
}

func TestFingerprintDeterministic(t *testing.T) {
	raw := []byte("sku,stock,reorderThreshold\nSKU1,10,2\n")

	first := Fingerprint(raw)
	second := Fingerprint(raw)
	assert.Equal(t, first, second)
	assert.Len(t, first, 64)

	assert.NotEqual(t, first, Fingerprint([]byte("sku,stock,reorderThreshold\nSKU1,11,2\n")))
}

func TestClassifyCreate(t *testing.T) {
	row := model.ImportRow{LineNumber: 2, SKU: "NEW1", Title: "Widget", Stock: 10, ReorderThreshold: 2}

	dec := Classify(row, nil)
	assert.Equal(t, model.ActionCreate, dec.Action)
	assert.Nil(t, dec.Before)
	require.NotNil(t, dec.After)
	assert.Equal(t, 10, dec.After.Stock)
	assert.Equal(t, 0, dec.After.StockDelta)
}

func TestClassifyNoop(t *testing.T) {
	current := existingProduct("SKU1", 10)
	row := model.ImportRow{
		SKU:              "SKU1",
		Title:            current.Title,
		Brand:            current.Brand,
		Stock:            current.Stock,
		ReorderThreshold: current.ReorderThreshold,
	}

	dec := Classify(row, current)
	assert.Equal(t, model.ActionNoop, dec.Action)
	assert.Nil(t, dec.After)
}

func TestClassifyUpdateSynthesizesDelta(t *testing.T) {
	current := existingProduct("SKU2", 5)
	row := model.ImportRow{
		SKU:              "SKU2",
		Title:            current.Title,
		Brand:            current.Brand,
		Stock:            8,
		ReorderThreshold: current.ReorderThreshold,
	}

	dec := Classify(row, current)
	assert.Equal(t, model.ActionUpdate, dec.Action)
	require.NotNil(t, dec.After)
	assert.Equal(t, 3, dec.After.StockDelta)
	require.NotNil(t, dec.Before)
	assert.Equal(t, 5, dec.Before.Stock)
}

func TestClassifyCatalogOnlyUpdateHasZeroDelta(t *testing.T) {
	current := existingProduct("SKU2", 5)
	row := model.ImportRow{
		SKU:              "SKU2",
		Title:            "Renamed Widget",
		Brand:            current.Brand,
		Stock:            current.Stock,
		ReorderThreshold: current.ReorderThreshold,
	}

	dec := Classify(row, current)
	assert.Equal(t, model.ActionUpdate, dec.Action)
	assert.Equal(t, 0, dec.After.StockDelta)
}

func TestReconcileSummary(t *testing.T) {
	in := strings.Join([]string{
		"sku,title,brand,stock,reorderThreshold",
		"NEW1,Fresh,Acme,4,1",
		"SKU1,Widget,Acme,10,2",
		"SKU2,Widget,Acme,8,2",
		",Broken,Acme,1,1",
	}, "\n")

	parse, err := ParseCatalog(strings.NewReader(in))
	require.NoError(t, err)

	current := map[string]*model.Product{
		"SKU1": existingProduct("SKU1", 10),
		"SKU2": existingProduct("SKU2", 5),
	}

	decisions, summary := Reconcile(parse, current)
	require.Len(t, decisions, 3)

	assert.Equal(t, model.ActionCreate, decisions[0].Action)
	assert.Equal(t, model.ActionNoop, decisions[1].Action)
	assert.Equal(t, model.ActionUpdate, decisions[2].Action)

	assert.Equal(t, 4, summary.TotalRows)
	assert.Equal(t, 1, summary.ToCreate)
	assert.Equal(t, 1, summary.ToUpdate)
	assert.Equal(t, 0, summary.ToConflict)
	assert.Equal(t, 1, summary.ToSkip)
	assert.Equal(t, 1, summary.Unchanged)
}

func TestReconcileDeterministic(t *testing.T) {
	in := "sku,title,stock,reorderThreshold\nSKU1,Widget,10,2\nNEW1,Fresh,4,1\n"
	current := map[string]*model.Product{"SKU1": existingProduct("SKU1", 5)}

	parseA, err := ParseCatalog(strings.NewReader(in))
	require.NoError(t, err)
	parseB, err := ParseCatalog(strings.NewReader(in))
	require.NoError(t, err)

	decA, sumA := Reconcile(parseA, current)
	decB, sumB := Reconcile(parseB, current)

	assert.Equal(t, sumA, sumB)
	assert.Equal(t, decA, decB)
	assert.Equal(t, Fingerprint([]byte(in)), Fingerprint([]byte(in)))
}

func TestReValidateUpdateUnchangedStateApplies(t *testing.T) {
	current := existingProduct("SKU2", 5)
	row := model.ImportRow{SKU: "SKU2", Title: current.Title, Brand: current.Brand, Stock: 8, ReorderThreshold: 2}
	previewed := Classify(row, current)
	require.Equal(t, model.ActionUpdate, previewed.Action)

	dec := ReValidate(row, previewed, current)
	assert.Equal(t, model.ActionUpdate, dec.Action)
	assert.Equal(t, 3, dec.After.StockDelta)
}

func TestReValidateStaleStockEscalatesToConflict(t *testing.T) {
	previewState := existingProduct("SKU2", 5)
	row := model.ImportRow{SKU: "SKU2", Title: previewState.Title, Brand: previewState.Brand, Stock: 8, ReorderThreshold: 2}
	previewed := Classify(row, previewState)
	require.Equal(t, model.ActionUpdate, previewed.Action)
	require.Equal(t, 3, previewed.After.StockDelta)

	// A direct transaction moved the stock between preview and commit; the
	// previewed delta no longer describes the change the caller reviewed.
	fresh := existingProduct("SKU2", 6)

	dec := ReValidate(row, previewed, fresh)
	assert.Equal(t, model.ActionConflict, dec.Action)
	assert.Contains(t, dec.ConflictReason, "stale")
}

func TestReValidateDeletedProductEscalatesToConflict(t *testing.T) {
	previewState := existingProduct("SKU2", 5)
	row := model.ImportRow{SKU: "SKU2", Stock: 8}
	previewed := Classify(row, previewState)
	require.Equal(t, model.ActionUpdate, previewed.Action)

	dec := ReValidate(row, previewed, nil)
	assert.Equal(t, model.ActionConflict, dec.Action)
	assert.Contains(t, dec.ConflictReason, "deleted")
}

func TestReValidateCreateNowExistsEscalatesToConflict(t *testing.T) {
	row := model.ImportRow{SKU: "NEW1", Title: "Fresh", Stock: 4}
	previewed := Classify(row, nil)
	require.Equal(t, model.ActionCreate, previewed.Action)

	dec := ReValidate(row, previewed, existingProduct("NEW1", 2))
	assert.Equal(t, model.ActionConflict, dec.Action)
}

func TestReValidateCreateStillMissingApplies(t *testing.T) {
	row := model.ImportRow{SKU: "NEW1", Title: "Fresh", Stock: 4}
	previewed := Classify(row, nil)

	dec := ReValidate(row, previewed, nil)
	assert.Equal(t, model.ActionCreate, dec.Action)
	assert.Equal(t, 4, dec.After.Stock)
}

func TestReValidateConflictReDerives(t *testing.T) {
	row := model.ImportRow{SKU: "SKU5", Title: "Widget", Stock: 3}
	previewed := model.ImportDecision{
		SKU:            "SKU5",
		Action:         model.ActionConflict,
		ConflictReason: "previewed conflict",
	}

	// The conflicting product is gone; the row is now a clean create.
	dec := ReValidate(row, previewed, nil)
	assert.Equal(t, model.ActionCreate, dec.Action)
}

func TestReValidateNoopStaysNoop(t *testing.T) {
	current := existingProduct("SKU1", 10)
	row := model.ImportRow{
		SKU: "SKU1", Title: current.Title, Brand: current.Brand,
		Stock: 10, ReorderThreshold: current.ReorderThreshold,
	}
	previewed := Classify(row, current)
	require.Equal(t, model.ActionNoop, previewed.Action)

	dec := ReValidate(row, previewed, current)
	assert.Equal(t, model.ActionNoop, dec.Action)
}
