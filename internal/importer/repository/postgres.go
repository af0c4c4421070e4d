package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/inventorypulse/inventory-service/internal/importer"
	"github.com/inventorypulse/inventory-service/internal/model"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) FindAllBySKUs(ctx context.Context, skus []string) (map[string]*model.Product, error) {
	current := make(map[string]*model.Product, len(skus))
	if len(skus) == 0 {
		return current, nil
	}

	query, args, err := sqlx.In(`SELECT * FROM products WHERE sku IN (?)`, skus)
	if err != nil {
		return nil, err
	}
	query = r.DB.Rebind(query)

	var products []model.Product
	if err := r.DB.SelectContext(ctx, &products, query, args...); err != nil {
		return nil, err
	}

	for i := range products {
		current[products[i].SKU] = &products[i]
	}
	return current, nil
}

// ApplyImport runs the whole commit inside one transaction. Affected rows are
// locked with FOR UPDATE before re-validation, so the decisions applied here
// are checked against the exact state the writes will land on; concurrent
// manual adjustments either run before the lock (and are seen) or after the
// commit (and see its transactions).
func (r *PGRepository) ApplyImport(ctx context.Context, batch *model.ImportBatch, actor string) (*importer.ApplyOutcome, error) {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	current, err := lockProducts(ctx, tx, batch.Rows)
	if err != nil {
		return nil, err
	}

	outcome := &importer.ApplyOutcome{}
	now := time.Now()

	for i, row := range batch.Rows {
		dec := importer.ReValidate(row, batch.Decisions[i], current[row.SKU])

		switch dec.Action {
		case model.ActionNoop:
			outcome.Unchanged++

		case model.ActionConflict:
			outcome.Conflicts = append(outcome.Conflicts, dec)

		case model.ActionCreate:
			p := model.Product{
				BaseModel:        model.BaseModel{ID: uuid.NewString(), CreatedAt: now, UpdatedAt: now},
				SKU:              row.SKU,
				Title:            row.Title,
				Description:      row.Description,
				Brand:            row.Brand,
				Category:         row.Category,
				ImageURL:         row.ImageURL,
				Stock:            row.Stock,
				ReorderThreshold: row.ReorderThreshold,
			}
			if err := insertProduct(ctx, tx, &p); err != nil {
				return nil, fmt.Errorf("create %s: %w", row.SKU, err)
			}
			outcome.Created = append(outcome.Created, p)

		case model.ActionUpdate:
			cur := current[row.SKU]
			delta := dec.After.StockDelta

			updated := *cur
			updated.Title = dec.After.Title
			updated.Description = dec.After.Description
			updated.Brand = dec.After.Brand
			updated.Category = dec.After.Category
			updated.ImageURL = dec.After.ImageURL
			updated.ReorderThreshold = dec.After.ReorderThreshold
			updated.Stock = cur.Stock + delta
			updated.UpdatedAt = now

			if err := updateProduct(ctx, tx, &updated); err != nil {
				return nil, fmt.Errorf("update %s: %w", row.SKU, err)
			}

			if delta != 0 {
				trx := model.InventoryTransaction{
					ID:                uuid.NewString(),
					ProductID:         updated.ID,
					Delta:             delta,
					Reason:            "import",
					ExternalReference: batch.BatchID,
					Actor:             actor,
					CreatedAt:         now,
					ResultingStock:    updated.Stock,
				}
				if err := insertTransaction(ctx, tx, &trx); err != nil {
					return nil, fmt.Errorf("record delta for %s: %w", row.SKU, err)
				}
				outcome.Transactions = append(outcome.Transactions, trx)
			}
			outcome.Updated = append(outcome.Updated, updated)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return outcome, nil
}

func lockProducts(ctx context.Context, tx *sqlx.Tx, rows []model.ImportRow) (map[string]*model.Product, error) {
	current := make(map[string]*model.Product, len(rows))
	if len(rows) == 0 {
		return current, nil
	}

	skus := make([]string, 0, len(rows))
	for _, row := range rows {
		skus = append(skus, row.SKU)
	}

	query, args, err := sqlx.In(`SELECT * FROM products WHERE sku IN (?) FOR UPDATE`, skus)
	if err != nil {
		return nil, err
	}
	query = tx.Rebind(query)

	var products []model.Product
	if err := tx.SelectContext(ctx, &products, query, args...); err != nil {
		return nil, fmt.Errorf("lock products: %w", err)
	}
	for i := range products {
		current[products[i].SKU] = &products[i]
	}
	return current, nil
}

func insertProduct(ctx context.Context, tx *sqlx.Tx, p *model.Product) error {
	query := `
        INSERT INTO products (
            id, sku, title, description, brand, category, image_url,
            stock, reorder_threshold, created_at, updated_at
        )
        VALUES (
            :id, :sku, :title, :description, :brand, :category, :image_url,
            :stock, :reorder_threshold, :created_at, :updated_at
        )
    `
	_, err := tx.NamedExecContext(ctx, query, p)
	return err
}

func updateProduct(ctx context.Context, tx *sqlx.Tx, p *model.Product) error {
	query := `
        UPDATE products SET
            title = :title,
            description = :description,
            brand = :brand,
            category = :category,
            image_url = :image_url,
            stock = :stock,
            reorder_threshold = :reorder_threshold,
            updated_at = :updated_at
        WHERE id = :id
    `
	_, err := tx.NamedExecContext(ctx, query, p)
	return err
}

func insertTransaction(ctx context.Context, tx *sqlx.Tx, t *model.InventoryTransaction) error {
	query := `
        INSERT INTO inventory_transactions (
            id, product_id, delta, reason, external_reference,
            actor, created_at, resulting_stock
        )
        VALUES (
            :id, :product_id, :delta, :reason, :external_reference,
            :actor, :created_at, :resulting_stock
        )
    `
	_, err := tx.NamedExecContext(ctx, query, t)
	return err
}
