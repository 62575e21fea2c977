package report

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Extensions of the report files that can be opened.
const (
	extCSV  = ".csv"
	extXLSX = ".xlsx"
)

// isReportFile reports whether name has a supported extension.
func isReportFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case extCSV, extXLSX:
		return true
	default:
		return false
	}
}

// isWorkbook reports whether path names an Excel workbook.
func isWorkbook(path string) bool {
	return strings.EqualFold(filepath.Ext(path), extXLSX)
}

// parseWorkbook reads the first sheet of an Excel workbook. The first row is
// the header; trailing empty cells are dropped from each row.
func parseWorkbook(path string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return &Table{}, nil
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("reading sheet %s: %w", sheets[0], err)
	}

	table := &Table{}
	if len(rows) == 0 {
		return table, nil
	}
	table.Columns = rows[0]
	table.Rows = rows[1:]
	return table, nil
}
