package dto

type AlertFilters struct {
	Type     string
	Unseen   bool
	Page     int
	PageSize int
}
