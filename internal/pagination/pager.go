package pagination

import (
	"errors"
	"fmt"
)

// ErrInvalidPageSize is returned when a pager is built with a non-positive page size.
var ErrInvalidPageSize = errors.New("page size must be positive")

// TotalPages returns ceil(totalRows/pageSize), or 0 when there are no rows
// or pageSize is not positive.
func TotalPages(totalRows, pageSize int) int {
	if totalRows <= 0 || pageSize <= 0 {
		return 0
	}
	pages := totalRows / pageSize
	if totalRows%pageSize > 0 {
		pages++
	}
	return pages
}

// Bounds returns the half-open row range [start, end) of page. ok is false
// when page is outside [0, TotalPages).
//
//nolint:nonamedreturns // Named returns document the half-open range.
func Bounds(totalRows, pageSize, page int) (start, end int, ok bool) {
	if page < 0 || page >= TotalPages(totalRows, pageSize) {
		return 0, 0, false
	}
	start = page * pageSize
	end = start + pageSize
	if end > totalRows {
		end = totalRows
	}
	return start, end, true
}

// Window returns the rows of page. Out-of-range pages yield an empty window.
// The result shares storage with rows but its capacity is capped, so appending
// to it can never write into rows.
func Window[T any](rows []T, pageSize, page int) []T {
	start, end, ok := Bounds(len(rows), pageSize, page)
	if !ok {
		return rows[:0:0]
	}
	return rows[start:end:end]
}

// Pager tracks the current page over a fixed number of rows. The zero value
// is not usable; build one with NewPager.
//
// Invariant: 0 <= Index() < TotalPages() whenever TotalRows() > 0, and
// Index() == 0 when there are no rows.
type Pager struct {
	totalRows int
	pageSize  int
	index     int
}

// NewPager creates a pager positioned on the first page.
func NewPager(totalRows, pageSize int) (*Pager, error) {
	if pageSize <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidPageSize, pageSize)
	}
	if totalRows < 0 {
		totalRows = 0
	}
	return &Pager{totalRows: totalRows, pageSize: pageSize}, nil
}

// TotalRows returns the number of rows being paged.
func (p *Pager) TotalRows() int { return p.totalRows }

// PageSize returns the number of rows per page.
func (p *Pager) PageSize() int { return p.pageSize }

// Index returns the current 0-based page index.
func (p *Pager) Index() int { return p.index }

// TotalPages returns the number of pages.
func (p *Pager) TotalPages() int { return TotalPages(p.totalRows, p.pageSize) }

// HasPages reports whether any page is displayable.
func (p *Pager) HasPages() bool { return p.totalRows > 0 }

// HasNext reports whether Next would move.
func (p *Pager) HasNext() bool { return p.index+1 < p.TotalPages() }

// HasPrevious reports whether Previous would move.
func (p *Pager) HasPrevious() bool { return p.index > 0 }

// Next advances one page. On the last page it is a no-op and returns false.
func (p *Pager) Next() bool {
	if !p.HasNext() {
		return false
	}
	p.index++
	return true
}

// Previous goes back one page. On the first page it is a no-op and returns false.
func (p *Pager) Previous() bool {
	if !p.HasPrevious() {
		return false
	}
	p.index--
	return true
}

// Seek moves to page, clamped into [0, TotalPages-1]. Returns whether the
// index changed.
func (p *Pager) Seek(page int) bool {
	last := p.TotalPages() - 1
	if page > last {
		page = last
	}
	if page < 0 {
		page = 0
	}
	changed := page != p.index
	p.index = page
	return changed
}

// First moves to the first page.
func (p *Pager) First() bool { return p.Seek(0) }

// Last moves to the last page.
func (p *Pager) Last() bool { return p.Seek(p.TotalPages() - 1) }

// Bounds returns the row range of the current page. ok is false when there
// are no rows.
//
//nolint:nonamedreturns // Named returns document the half-open range.
func (p *Pager) Bounds() (start, end int, ok bool) {
	return Bounds(p.totalRows, p.pageSize, p.index)
}

// Meta describes the current page for structured output. CurrentPage is 0
// when there are no rows.
func (p *Pager) Meta() PaginationMeta {
	current := p.index + 1
	if p.totalRows == 0 {
		current = 0
	}
	return PaginationMeta{
		CurrentPage: current,
		PageSize:    p.pageSize,
		TotalPages:  p.TotalPages(),
		TotalItems:  p.totalRows,
		HasPrevious: p.HasPrevious(),
		HasNext:     p.HasNext(),
	}
}

// Current returns the rows of p's current page.
func Current[T any](p *Pager, rows []T) []T {
	return Window(rows, p.pageSize, p.index)
}
