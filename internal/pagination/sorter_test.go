package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRowSorter_Sort(t *testing.T) {
	columns := []string{"customerID", "tenure", "Churn"}
	rows := [][]string{
		{"b", "10", "No"},
		{"a", "2", "Yes"},
		{"c", "33", "No"},
		{"d"},
	}
	s := NewRowSorter(columns)

	t.Run("numeric ascending", func(t *testing.T) {
		sorted, err := s.Sort(rows, "tenure", SortOrderAsc)
		require.NoError(t, err)
		assert.Equal(t, []string{"d", "a", "b", "c"}, firstCells(sorted))
	})

	t.Run("numeric descending", func(t *testing.T) {
		sorted, err := s.Sort(rows, "tenure", SortOrderDesc)
		require.NoError(t, err)
		assert.Equal(t, []string{"d", "c", "b", "a"}, firstCells(sorted), "rows without the column stay first")
	})

	t.Run("lexical is stable", func(t *testing.T) {
		sorted, err := s.Sort(rows, "Churn", SortOrderAsc)
		require.NoError(t, err)
		assert.Equal(t, []string{"d", "b", "c", "a"}, firstCells(sorted))
	})

	t.Run("unknown column", func(t *testing.T) {
		_, err := s.Sort(rows, "gender", SortOrderAsc)
		require.ErrorIs(t, err, ErrUnknownColumn)
		assert.Contains(t, err.Error(), "customerID, tenure, Churn")
	})

	t.Run("input untouched", func(t *testing.T) {
		_, err := s.Sort(rows, "customerID", SortOrderAsc)
		require.NoError(t, err)
		assert.Equal(t, []string{"b", "a", "c", "d"}, firstCells(rows))
	})
}

func TestRowSorter_MissingCellsFirst(t *testing.T) {
	rows := [][]string{{"x", "2"}, {"y"}, {"z", "5"}, {"w", " "}}
	s := NewRowSorter([]string{"name", "score"})

	for _, order := range []string{SortOrderAsc, SortOrderDesc} {
		sorted, err := s.Sort(rows, "score", order)
		require.NoError(t, err)
		assert.Equal(t, []string{"y", "w"}, firstCells(sorted)[:2], "order %s", order)
	}

	sorted, err := s.Sort(rows, "score", SortOrderDesc)
	require.NoError(t, err)
	assert.Equal(t, []string{"y", "w", "z", "x"}, firstCells(sorted))
}

func TestRowSorter_MixedColumnIsTotal(t *testing.T) {
	values := []string{"10", "9", "1a", "2.5", "abc", "-3", ""}
	s := NewRowSorter([]string{"v"})

	tests := []struct {
		order string
		want  []string
	}{
		{order: SortOrderAsc, want: []string{"", "-3", "2.5", "9", "10", "1a", "abc"}},
		{order: SortOrderDesc, want: []string{"", "abc", "1a", "10", "9", "2.5", "-3"}},
	}
	for _, tt := range tests {
		t.Run(tt.order, func(t *testing.T) {
			permute(values, func(p []string) {
				rows := make([][]string, len(p))
				for i, v := range p {
					rows[i] = []string{v}
				}
				sorted, err := s.Sort(rows, "v", tt.order)
				require.NoError(t, err)
				require.Equal(t, tt.want, firstCells(sorted), "input %q", p)
			})
		})
	}
}

// permute calls fn with every ordering of values.
func permute(values []string, fn func([]string)) {
	p := append([]string(nil), values...)
	var walk func(k int)
	walk = func(k int) {
		if k == len(p) {
			fn(p)
			return
		}
		for i := k; i < len(p); i++ {
			p[k], p[i] = p[i], p[k]
			walk(k + 1)
			p[k], p[i] = p[i], p[k]
		}
	}
	walk(0)
}

func TestRowSorter_Fields(t *testing.T) {
	s := NewRowSorter([]string{"x", "y"})
	assert.True(t, s.IsValidField("y"))
	assert.False(t, s.IsValidField("z"))
	assert.Equal(t, []string{"x", "y"}, s.GetValidFields())
}

func firstCells(rows [][]string) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r[0]
	}
	return out
}
