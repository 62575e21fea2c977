package detail

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func plainStyles() Styles {
	s := lipgloss.NewStyle()
	return Styles{Title: s, Label: s, Value: s, Empty: s, Selected: s}
}

func TestFields(t *testing.T) {
	tests := []struct {
		name   string
		header []string
		row    []string
		want   []Field
	}{
		{
			name:   "matching widths",
			header: []string{"customerID", "Churn"},
			row:    []string{"7590-VHVEG", "No"},
			want:   []Field{{Name: "customerID", Value: "7590-VHVEG"}, {Name: "Churn", Value: "No"}},
		},
		{
			name:   "short row",
			header: []string{"model", "auc"},
			row:    []string{"rf"},
			want:   []Field{{Name: "model", Value: "rf"}, {Name: "auc"}},
		},
		{
			name:   "long row",
			header: []string{"model"},
			row:    []string{"xgb", "0.86"},
			want:   []Field{{Name: "model", Value: "xgb"}, {Name: "col2", Value: "0.86"}},
		},
		{
			name:   "blank header name",
			header: []string{"", "auc"},
			row:    []string{"xgb", "0.86"},
			want:   []Field{{Name: "col1", Value: "xgb"}, {Name: "auc", Value: "0.86"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Fields(tt.header, tt.row))
		})
	}
}

func TestModel_View(t *testing.T) {
	fields := Fields([]string{"customerID", "tenure", "notes"}, []string{"c01", "12", ""})
	m := New("churn.csv row 1", fields, 10, 80, plainStyles())

	lines := strings.Split(m.View(), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "churn.csv row 1", lines[0])
	assert.Equal(t, "customerID  c01", lines[1])
	assert.Equal(t, "tenure      12", lines[2])
	assert.Equal(t, "notes       (empty)", lines[3])
}

func TestModel_WrapsLongValues(t *testing.T) {
	fields := []Field{{Name: "text", Value: strings.Repeat("word ", 10)}}
	m := New("row", fields, 5, 20, plainStyles())

	view := m.View()
	lines := strings.Split(view, "\n")
	assert.Greater(t, len(lines), 2, "value wraps onto several lines")
	for _, l := range lines[2:] {
		assert.True(t, strings.HasPrefix(l, "      "), "continuation lines are indented under the value: %q", l)
	}
}

func TestModel_Scroll(t *testing.T) {
	header := []string{"a", "b", "c", "d"}
	m := New("row", Fields(header, []string{"1", "2", "3", "4"}), 2, 80, plainStyles())

	f, ok := m.Selected()
	require.True(t, ok)
	assert.Equal(t, "a", f.Name)

	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	f, _ = m.Selected()
	assert.Equal(t, "c", f.Name)
	assert.NotContains(t, m.View(), "a  1")
	assert.Contains(t, m.View(), "c  3")

	m.SetSize(80, 4)
	assert.Contains(t, m.View(), "a  1")
	assert.Len(t, m.Fields(), 4)
}
