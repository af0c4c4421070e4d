package dto

type ProductFilters struct {
	SearchQuery string
	LowStock    bool
	Page        int
	PageSize    int
}
