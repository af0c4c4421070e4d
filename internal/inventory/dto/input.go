package dto

type AdjustStockInput struct {
	ProductID string `json:"-"`
	Delta     int    `json:"delta"`
	Reason    string `json:"reason"`
	Actor     string `json:"-"`
}
