// Package report loads CSV and Excel report files and pages through them.
package report

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/churnlab/churnlab/internal/pagination"
)

// ErrReportNotFound indicates the report file does not exist.
var ErrReportNotFound = errors.New("report not found")

// Table is a fully loaded report. It is not modified after Load.
type Table struct {
	Name    string
	Columns []string
	Rows    [][]string
}

// Width returns the number of display columns: the header width, or the
// widest row when rows are longer than the header.
func (t *Table) Width() int {
	w := len(t.Columns)
	for _, r := range t.Rows {
		if len(r) > w {
			w = len(r)
		}
	}
	return w
}

// PaddedRow returns row i padded with empty cells to Width.
func (t *Table) PaddedRow(i int) []string {
	return padRow(t.Rows[i], t.Width())
}

// Header returns the columns padded to Width. Missing names are filled
// with their 1-based position.
func (t *Table) Header() []string {
	w := t.Width()
	out := make([]string, w)
	copy(out, t.Columns)
	for i := len(t.Columns); i < w; i++ {
		out[i] = fmt.Sprintf("col%d", i+1)
	}
	return out
}

// Sorted returns a copy of the table ordered by column. The receiver keeps
// its file order.
func (t *Table) Sorted(column, order string) (*Table, error) {
	rows, err := pagination.NewRowSorter(t.Columns).Sort(t.Rows, column, order)
	if err != nil {
		return nil, err
	}
	return &Table{Name: t.Name, Columns: t.Columns, Rows: rows}, nil
}

func padRow(row []string, width int) []string {
	if len(row) >= width {
		return row
	}
	out := make([]string, width)
	copy(out, row)
	return out
}

// Load reads the report at path into memory. CSV files and the first sheet
// of .xlsx workbooks are supported. The first record is the header. Ragged
// rows are accepted.
func Load(path string) (*Table, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrReportNotFound, path)
		}
		return nil, fmt.Errorf("opening report: %w", err)
	}

	var (
		table *Table
		err   error
	)
	if isWorkbook(path) {
		table, err = parseWorkbook(path)
	} else {
		table, err = parseFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
	}
	table.Name = filepath.Base(path)
	return table, nil
}

func parseFile(path string) (*Table, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from the reports directory listing or the user.
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads CSV records from r.
func Parse(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}

	table := &Table{}
	if len(records) == 0 {
		return table, nil
	}
	table.Columns = records[0]
	table.Rows = records[1:]
	return table, nil
}

// List returns the CSV and .xlsx files in dir sorted by name. A missing directory
// yields an empty list.
func List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("reading reports directory: %w", err)
	}

	files := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if isReportFile(e.Name()) {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)
	return files, nil
}
