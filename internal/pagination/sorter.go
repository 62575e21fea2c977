package pagination

import (
	"cmp"
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// ErrUnknownColumn is returned when a sort column is not in the header.
var ErrUnknownColumn = errors.New("unknown column")

// RowSorter orders string rows by one column of a header.
type RowSorter struct {
	columns map[string]int
	names   []string
}

// NewRowSorter creates a sorter for the given header.
func NewRowSorter(columns []string) *RowSorter {
	s := &RowSorter{
		columns: make(map[string]int, len(columns)),
		names:   append([]string(nil), columns...),
	}
	for i, c := range columns {
		if _, dup := s.columns[c]; !dup {
			s.columns[c] = i
		}
	}
	return s
}

// IsValidField reports whether column exists in the header.
func (s *RowSorter) IsValidField(column string) bool {
	_, ok := s.columns[column]
	return ok
}

// GetValidFields returns the header columns in file order.
func (s *RowSorter) GetValidFields() []string {
	return append([]string(nil), s.names...)
}

// Sort returns a sorted copy of rows; rows itself is never reordered.
// Rows without a value in the column come first in either order. The
// remaining cells sort numbers before text, numbers numerically and text
// lexically; desc reverses that order. Equal cells keep their input order.
func (s *RowSorter) Sort(rows [][]string, column, order string) ([][]string, error) {
	idx, ok := s.columns[column]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %s)",
			ErrUnknownColumn, column, strings.Join(s.names, ", "))
	}

	keys := make([]sortKey, len(rows))
	for i, r := range rows {
		keys[i] = newSortKey(r, idx)
	}

	desc := order == SortOrderDesc
	sort.SliceStable(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if a.class == classMissing || b.class == classMissing {
			return a.class == classMissing && b.class != classMissing
		}
		if desc {
			return compareKeys(b, a) < 0
		}
		return compareKeys(a, b) < 0
	})

	sorted := make([][]string, len(keys))
	for i, k := range keys {
		sorted[i] = k.row
	}
	return sorted, nil
}

// Cell classes in ascending sort order.
const (
	classMissing = iota
	classNumber
	classText
)

type sortKey struct {
	row   []string
	class int
	num   float64
	text  string
}

func newSortKey(row []string, idx int) sortKey {
	k := sortKey{row: row, class: classMissing}
	if idx >= len(row) || strings.TrimSpace(row[idx]) == "" {
		return k
	}
	k.text = row[idx]
	if f, err := strconv.ParseFloat(strings.TrimSpace(k.text), 64); err == nil && !math.IsNaN(f) {
		k.class, k.num = classNumber, f
		return k
	}
	k.class = classText
	return k
}

func compareKeys(a, b sortKey) int {
	if a.class != b.class {
		return cmp.Compare(a.class, b.class)
	}
	if a.class == classNumber {
		return cmp.Compare(a.num, b.num)
	}
	return strings.Compare(a.text, b.text)
}
