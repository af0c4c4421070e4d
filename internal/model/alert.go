package model

import "time"

const AlertTypeLowStock = "LOW_STOCK"

// Alert flags a product condition for the dashboard, currently only low
// stock after a transaction lands at or below the reorder threshold.
type Alert struct {
	ID        string    `db:"id" json:"id"`
	ProductID string    `db:"product_id" json:"productId"`
	Type      string    `db:"type" json:"type"`
	Message   string    `db:"message" json:"message"`
	Seen      bool      `db:"seen" json:"seen"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}
