package dto

type TransactionFilters struct {
	Reason   string
	Page     int
	PageSize int
}
