package model

import "time"

// InventoryTransaction is the append-only audit record for every stock
// change. Invariant: ResultingStock = previous ResultingStock + Delta, and
// ResultingStock is never negative. A transaction that would violate this is
// rejected, never clamped.
type InventoryTransaction struct {
	ID                string    `db:"id" json:"id"`
	ProductID         string    `db:"product_id" json:"productId"`
	Delta             int       `db:"delta" json:"delta"`
	Reason            string    `db:"reason" json:"reason"`
	ExternalReference string    `db:"external_reference" json:"externalReference,omitempty"`
	Actor             string    `db:"actor" json:"actor"`
	CreatedAt         time.Time `db:"created_at" json:"createdAt"`
	ResultingStock    int       `db:"resulting_stock" json:"resultingStock"`
}
