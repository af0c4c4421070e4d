package dto

type CreateProductInput struct {
	SKU              string `json:"sku"`
	Title            string `json:"title"`
	Description      string `json:"description"`
	Brand            string `json:"brand"`
	Category         string `json:"category"`
	ImageURL         string `json:"imageUrl"`
	Stock            int    `json:"stock"`
	ReorderThreshold int    `json:"reorderThreshold"`
}

// UpdateProductInput carries catalog fields only. SKU is immutable and stock
// moves exclusively through inventory transactions.
type UpdateProductInput struct {
	ID               string `json:"-"`
	Title            string `json:"title"`
	Description      string `json:"description"`
	Brand            string `json:"brand"`
	Category         string `json:"category"`
	ImageURL         string `json:"imageUrl"`
	ReorderThreshold int    `json:"reorderThreshold"`
}
