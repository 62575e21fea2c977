package pagination

// PaginationMeta contains metadata about one page of results. CurrentPage is
// 1-based, or 0 when there are no results.
type PaginationMeta struct {
	CurrentPage int  `json:"current_page"`
	PageSize    int  `json:"page_size"`
	TotalPages  int  `json:"total_pages"`
	TotalItems  int  `json:"total_items"`
	HasPrevious bool `json:"has_previous"`
	HasNext     bool `json:"has_next"`
}

// FirstRow returns the 1-based number of the first row on the page, or 0
// when the page is empty.
func (m PaginationMeta) FirstRow() int {
	if m.TotalItems == 0 {
		return 0
	}
	return (m.CurrentPage-1)*m.PageSize + 1
}

// LastRow returns the 1-based number of the last row on the page, or 0 when
// the page is empty.
func (m PaginationMeta) LastRow() int {
	if m.TotalItems == 0 {
		return 0
	}
	last := m.CurrentPage * m.PageSize
	if last > m.TotalItems {
		last = m.TotalItems
	}
	return last
}
