package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/inventorypulse/inventory-service/internal/inventory"
	"github.com/inventorypulse/inventory-service/internal/inventory/dto"
	"github.com/inventorypulse/inventory-service/internal/model"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) ApplyAdjustment(ctx context.Context, txn *model.InventoryTransaction) (*model.Product, error) {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var p model.Product
	err = tx.GetContext(ctx, &p, `SELECT * FROM products WHERE id = $1 FOR UPDATE`, txn.ProductID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, inventory.ErrProductNotFound
		}
		return nil, err
	}

	resulting := p.Stock + txn.Delta
	if resulting < 0 {
		return nil, inventory.ErrInsufficientStock
	}

	p.Stock = resulting
	txn.ResultingStock = resulting

	_, err = tx.ExecContext(ctx, `UPDATE products SET stock = $1, updated_at = $2 WHERE id = $3`,
		p.Stock, txn.CreatedAt, p.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to update stock: %w", err)
	}
	p.UpdatedAt = txn.CreatedAt

	insertQuery := `
        INSERT INTO inventory_transactions (
            id, product_id, delta, reason, external_reference,
            actor, resulting_stock, created_at
        )
        VALUES (
            :id, :product_id, :delta, :reason, :external_reference,
            :actor, :resulting_stock, :created_at
        )
    `
	_, err = tx.NamedExecContext(ctx, insertQuery, txn)
	if err != nil {
		return nil, fmt.Errorf("failed to record transaction: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PGRepository) ListByProduct(ctx context.Context, productID string, f *dto.TransactionFilters) ([]model.InventoryTransaction, int, error) {
	var items []model.InventoryTransaction
	var count int

	conditions := []string{"product_id = :product_id"}
	args := map[string]interface{}{"product_id": productID}

	if f.Reason != "" {
		conditions = append(conditions, "reason = :reason")
		args["reason"] = f.Reason
	}

	whereClause := " WHERE " + strings.Join(conditions, " AND ")

	countQuery := "SELECT count(*) FROM inventory_transactions" + whereClause
	rows, err := r.DB.NamedQueryContext(ctx, countQuery, args)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	if rows.Next() {
		rows.Scan(&count)
	}

	query := "SELECT * FROM inventory_transactions" + whereClause + " ORDER BY created_at DESC"
	if f.PageSize > 0 {
		offset := (f.Page - 1) * f.PageSize
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, offset)
	}

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	defer nstmt.Close()

	err = nstmt.SelectContext(ctx, &items, args)
	return items, count, err
}
