package detail

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	listview "github.com/churnlab/churnlab/internal/tui/list"
)

// emptyValue is shown for blank cells.
const emptyValue = "(empty)"

// Field is one column of a record.
type Field struct {
	Name  string
	Value string
}

// Fields pairs header names with row cells. Missing cells are empty and
// cells beyond the header are named by position.
func Fields(header, row []string) []Field {
	n := max(len(header), len(row))
	out := make([]Field, n)
	for i := range n {
		f := Field{Name: fmt.Sprintf("col%d", i+1)}
		if i < len(header) && header[i] != "" {
			f.Name = header[i]
		}
		if i < len(row) {
			f.Value = row[i]
		}
		out[i] = f
	}
	return out
}

// Styles sets how labels and values are drawn.
type Styles struct {
	Title    lipgloss.Style
	Label    lipgloss.Style
	Value    lipgloss.Style
	Empty    lipgloss.Style
	Selected lipgloss.Style
}

// Model displays one record.
type Model struct {
	title  string
	fields *listview.Model[Field]
	styles Styles
	width  int
}

// New creates a record view showing height fields at a time.
func New(title string, fields []Field, height, width int, styles Styles) *Model {
	m := &Model{title: title, styles: styles, width: width}
	labelWidth := 0
	for _, f := range fields {
		labelWidth = max(labelWidth, lipgloss.Width(f.Name))
	}
	m.fields = listview.New(fields, height, func(f Field, selected bool) string {
		return m.renderField(f, labelWidth, selected)
	})
	return m
}

// Update scrolls on navigation keys.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	_, cmd := m.fields.Update(msg)
	return cmd
}

// SetSize changes the viewport.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.fields.SetHeight(height)
}

// Fields returns the record's fields.
func (m *Model) Fields() []Field {
	return m.fields.Items()
}

// Selected returns the field under the cursor.
func (m *Model) Selected() (Field, bool) {
	return m.fields.Selected()
}

func (m *Model) renderField(f Field, labelWidth int, selected bool) string {
	label := m.styles.Label.Render(f.Name + strings.Repeat(" ", labelWidth-lipgloss.Width(f.Name)) + "  ")
	if selected {
		label = m.styles.Selected.Render(f.Name+strings.Repeat(" ", labelWidth-lipgloss.Width(f.Name))) + "  "
	}

	value := m.styles.Value.Render(f.Value)
	if strings.TrimSpace(f.Value) == "" {
		value = m.styles.Empty.Render(emptyValue)
	} else if avail := m.width - labelWidth - 2; avail > 0 && lipgloss.Width(f.Value) > avail { //nolint:mnd // label gap.
		wrapped := m.styles.Value.Width(avail).Render(f.Value)
		indent := strings.Repeat(" ", labelWidth+2) //nolint:mnd // label gap.
		value = strings.ReplaceAll(wrapped, "\n", "\n"+indent)
	}
	return label + value
}

// View renders the title and the visible fields.
func (m *Model) View() string {
	return m.styles.Title.Render(m.title) + "\n" + m.fields.View()
}
