package query

import (
	"github.com/fareops/catalog-engine/pkg/apperrors"
)

// PageRequest is a 1-based page window. Both fields must be >= 1; out-of-range
// values are rejected rather than clamped so caller bugs stay visible.
type PageRequest struct {
	Number int
	Size   int
}

// Validate rejects non-positive page numbers and sizes.
func (p PageRequest) Validate() error {
	if p.Number < 1 {
		return apperrors.Validationf("page number must be >= 1, got %d", p.Number)
	}
	if p.Size < 1 {
		return apperrors.Validationf("page size must be >= 1, got %d", p.Size)
	}
	return nil
}

// Offset returns the number of rows preceding this page.
func (p PageRequest) Offset() int {
	return (p.Number - 1) * p.Size
}

// Page is one window of a filtered listing. TotalCount counts every row
// matching the filter, not just this window. The count and the window are
// read as two statements, so TotalCount can be stale relative to Items under
// concurrent writes.
type Page[T any] struct {
	Items      []T `json:"items"`
	TotalCount int `json:"total_count"`
	PageNumber int `json:"page_number"`
	PageSize   int `json:"page_size"`
}

// NewPage assembles a page from a windowed fetch and its matching count.
func NewPage[T any](items []T, totalCount int, req PageRequest) Page[T] {
	return Page[T]{
		Items:      items,
		TotalCount: totalCount,
		PageNumber: req.Number,
		PageSize:   req.Size,
	}
}

// TotalPages returns ceil(TotalCount / PageSize).
func (p Page[T]) TotalPages() int {
	if p.TotalCount == 0 {
		return 0
	}
	return (p.TotalCount + p.PageSize - 1) / p.PageSize
}
