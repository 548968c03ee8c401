package postgres

// PaginationParams are the limit/page query parameters accepted by list
// operations. Zero values fall back to defaults.
type PaginationParams struct {
	Limit int
	Page  int
}

// Normalize clamps the parameters to sane bounds
func (p PaginationParams) Normalize() PaginationParams {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.Limit <= 0 {
		p.Limit = 10
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
	return p
}

// Skip returns the row offset for the current page
func (p PaginationParams) Skip() int {
	return (p.Page - 1) * p.Limit
}

// Paginator is the pagination metadata returned alongside list results
type Paginator struct {
	Limit        int   `json:"limit"`
	Skip         int   `json:"skip"`
	CurrentPage  int   `json:"currentPage"`
	TotalPages   int   `json:"totalPages"`
	TotalRecords int64 `json:"totalRecords"`
	HasNextPage  bool  `json:"hasNextPage"`
}

// NewPaginator computes pagination metadata from the normalized parameters
// and the total record count.
func NewPaginator(params PaginationParams, totalRecords int64) Paginator {
	params = params.Normalize()

	totalPages := int((totalRecords + int64(params.Limit) - 1) / int64(params.Limit))

	return Paginator{
		Limit:        params.Limit,
		Skip:         params.Skip(),
		CurrentPage:  params.Page,
		TotalPages:   totalPages,
		TotalRecords: totalRecords,
		HasNextPage:  params.Page < totalPages,
	}
}
