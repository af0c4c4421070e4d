package model

// Product is the catalog record. SKU is the natural key: unique and immutable
// once created. Stock is only ever changed through inventory transactions,
// never overwritten directly.
type Product struct {
	BaseModel
	SKU              string `db:"sku" json:"sku"`
	Title            string `db:"title" json:"title"`
	Description      string `db:"description" json:"description"`
	Brand            string `db:"brand" json:"brand"`
	Category         string `db:"category" json:"category"`
	ImageURL         string `db:"image_url" json:"imageUrl"`
	Stock            int    `db:"stock" json:"stock"`
	ReorderThreshold int    `db:"reorder_threshold" json:"reorderThreshold"`
}

// NeedsReorder reports whether stock has fallen to or below the threshold.
func (p *Product) NeedsReorder() bool {
	return p.Stock <= p.ReorderThreshold
}
