package report

import (
	"github.com/churnlab/churnlab/internal/pagination"
)

// Session holds the report currently on screen and its page position.
type Session struct {
	pageSize int
	path     string
	table    *Table
	pager    *pagination.Pager
}

// NewSession creates an empty session. pageSize must be positive.
func NewSession(pageSize int) (*Session, error) {
	pager, err := pagination.NewPager(0, pageSize)
	if err != nil {
		return nil, err
	}
	return &Session{pageSize: pageSize, pager: pager}, nil
}

// Open loads the report at path and moves to its first page. When loading
// fails the previous report and page stay in place.
func (s *Session) Open(path string) error {
	table, err := Load(path)
	if err != nil {
		return err
	}
	pager, err := pagination.NewPager(len(table.Rows), s.pageSize)
	if err != nil {
		return err
	}
	s.path, s.table, s.pager = path, table, pager
	return nil
}

// Loaded reports whether a report is open.
func (s *Session) Loaded() bool { return s.table != nil }

// Path returns the file of the open report.
func (s *Session) Path() string { return s.path }

// Table returns the open report, or nil.
func (s *Session) Table() *Table { return s.table }

// Pager returns the page state.
func (s *Session) Pager() *pagination.Pager { return s.pager }

// Page returns the rows of the current page, padded to the table width.
func (s *Session) Page() [][]string {
	if s.table == nil {
		return nil
	}
	start, end, ok := s.pager.Bounds()
	if !ok {
		return [][]string{}
	}
	width := s.table.Width()
	out := make([][]string, 0, end-start)
	for _, row := range pagination.Current(s.pager, s.table.Rows) {
		out = append(out, padRow(row, width))
	}
	return out
}

// Next moves to the next page.
func (s *Session) Next() bool { return s.pager.Next() }

// Previous moves to the previous page.
func (s *Session) Previous() bool { return s.pager.Previous() }

// First moves to the first page.
func (s *Session) First() bool { return s.pager.First() }

// Last moves to the last page.
func (s *Session) Last() bool { return s.pager.Last() }
