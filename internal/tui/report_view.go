package tui

import (
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/bubbles/table"

	"github.com/churnlab/churnlab/internal/report"
	listview "github.com/churnlab/churnlab/internal/tui/list"
)

// Column width bounds for report tables.
const (
	minColWidth = 4
	maxColWidth = 28
)

type reportsView struct {
	dir     string
	files   *listview.Model[string]
	session *report.Session
	table   table.Model

	width  int
	height int
}

func newReportsView(dir string, pageSize int) (*reportsView, error) {
	session, err := report.NewSession(pageSize)
	if err != nil {
		return nil, err
	}
	return &reportsView{
		dir:     dir,
		files:   listview.New([]string{}, defaultHeight-chromeHeight, renderItem),
		session: session,
		width:   defaultWidth,
		height:  defaultHeight - chromeHeight,
	}, nil
}

func (r *reportsView) setSize(width, height int) {
	r.width, r.height = width, height
	r.files.SetHeight(height)
	if r.session.Loaded() {
		r.rebuildTable()
	}
}

func (r *reportsView) refresh() error {
	files, err := report.List(r.dir)
	if err != nil {
		return err
	}
	r.files.SetItems(files)
	return nil
}

// open loads a report; on failure the previous report stays on screen.
func (r *reportsView) open(name string) error {
	if err := r.session.Open(filepath.Join(r.dir, name)); err != nil {
		return err
	}
	r.rebuildTable()
	return nil
}

// rebuildTable renders the session's current page into a bubbles table.
func (r *reportsView) rebuildTable() {
	t := r.session.Table()
	header := t.Header()
	page := r.session.Page()

	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = len([]rune(h))
	}
	for _, row := range page {
		for i, cell := range row {
			if i < len(widths) {
				widths[i] = max(widths[i], len([]rune(cell)))
			}
		}
	}

	columns := make([]table.Column, len(header))
	for i, h := range header {
		columns[i] = table.Column{Title: h, Width: min(max(widths[i], minColWidth), maxColWidth)}
	}

	rows := make([]table.Row, len(page))
	for i, row := range page {
		rows[i] = table.Row(row)
	}

	height := min(max(len(rows), 1), max(r.height-2, minHeight)) //nolint:mnd // header and footer.
	tm := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	s := table.DefaultStyles()
	s.Header = TableHeaderStyle
	s.Selected = TableSelectedStyle
	tm.SetStyles(s)
	r.table = tm
}

func (r *reportsView) listView() string {
	if r.files.Len() == 0 {
		return SubtleStyle.Render(fmt.Sprintf("No reports in %s.", r.dir))
	}
	return r.files.View()
}

func (r *reportsView) tableView() string {
	t := r.session.Table()
	meta := r.session.Pager().Meta()
	title := LabelStyle.Render(t.Name) + SubtleStyle.Render(
		fmt.Sprintf("  %s columns, %s rows", formatCount(len(t.Columns)), formatCount(len(t.Rows))))
	footer := pageFooter(meta.CurrentPage, meta.TotalPages, meta.FirstRow(), meta.LastRow(), meta.TotalItems)
	if meta.TotalItems == 0 {
		return title + "\n\n" + footer
	}
	return title + "\n\n" + r.table.View() + "\n" + footer
}
