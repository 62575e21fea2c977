package pagination

import (
	"errors"
	"fmt"
	"strings"
)

// Validation limits and defaults for command-line paging.
const (
	DefaultPageSize  = 20
	MinPageSize      = 1
	MaxPageSize      = 1000
	DefaultPage      = 1
	MinPage          = 1
	DefaultSortOrder = "asc"
	SortOrderAsc     = "asc"
	SortOrderDesc    = "desc"
)

// Common validation errors.
var (
	ErrPageSizeOutOfRange = fmt.Errorf("page-size must be between %d and %d", MinPageSize, MaxPageSize)
	ErrInvalidPage        = errors.New("page must be >= 1")
	ErrInvalidSortOrder   = errors.New("sort order must be 'asc' or 'desc'")
	ErrInvalidSortFormat  = errors.New("invalid sort format: use 'column' or 'column:order' (e.g., 'tenure:desc')")
	ErrEmptySortField     = errors.New("sort column cannot be empty")
)

// Params holds the --page, --page-size and --sort flags of paged commands.
type Params struct {
	// Page is the 1-based page number.
	Page int

	// PageSize is the number of rows per page.
	PageSize int

	// Sort is the raw sort expression, "column" or "column:order".
	Sort string
}

// NewParams creates Params with default values.
func NewParams(pageSize int) *Params {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Params{Page: DefaultPage, PageSize: pageSize}
}

// Validate checks the flag values.
func (p Params) Validate() error {
	if p.Page < MinPage {
		return fmt.Errorf("%w: got %d", ErrInvalidPage, p.Page)
	}
	if p.PageSize < MinPageSize || p.PageSize > MaxPageSize {
		return fmt.Errorf("%w: got %d", ErrPageSizeOutOfRange, p.PageSize)
	}
	if p.Sort != "" {
		if _, _, err := ParseSort(p.Sort); err != nil {
			return err
		}
	}
	return nil
}

// Index returns the 0-based page index for the Pager.
func (p Params) Index() int {
	return p.Page - 1
}

// sortPartsMax is the maximum number of parts in a sort string (column:order).
const sortPartsMax = 2

// ParseSort parses a sort string in the format "column" or "column:order".
// An empty string yields an empty column, meaning file order.
//
//nolint:nonamedreturns // Named returns improve readability for this multi-value function.
func ParseSort(sortStr string) (field, order string, err error) {
	if strings.TrimSpace(sortStr) == "" {
		return "", DefaultSortOrder, nil
	}

	parts := strings.Split(sortStr, ":")
	switch len(parts) {
	case 1:
		field = strings.TrimSpace(parts[0])
		order = DefaultSortOrder
	case sortPartsMax:
		field = strings.TrimSpace(parts[0])
		order = strings.ToLower(strings.TrimSpace(parts[1]))
	default:
		return "", "", fmt.Errorf("%w: %q", ErrInvalidSortFormat, sortStr)
	}

	if field == "" {
		return "", "", ErrEmptySortField
	}
	if order != SortOrderAsc && order != SortOrderDesc {
		return "", "", fmt.Errorf("%w: got %q", ErrInvalidSortOrder, order)
	}
	return field, order, nil
}
