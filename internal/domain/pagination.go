package domain

// Pagination defaults and bounds for list queries.
const (
	DefaultPage  = 1
	MaxPage      = 1000
	DefaultLimit = 10
	MaxLimit     = 100
)

// PaginationParams holds offset-based pagination parameters for list queries.
type PaginationParams struct {
	Page  int
	Limit int
}

// Clamp returns p with Page in [1, MaxPage] and Limit in [1, MaxLimit].
func (p PaginationParams) Clamp() PaginationParams {
	p.Page = min(max(p.Page, 1), MaxPage)
	p.Limit = min(max(p.Limit, 1), MaxLimit)
	return p
}

// Offset returns the row offset for the current page (0-based).
// Formula: (Page - 1) * Limit.
func (p PaginationParams) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}
