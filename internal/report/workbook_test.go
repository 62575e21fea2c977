package report

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeWorkbook(t *testing.T, dir, name, sheet string, rows [][]string) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, f.SetSheetName(f.GetSheetName(0), sheet))
	for r, row := range rows {
		for c, value := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, cell, value))
		}
	}

	path := filepath.Join(dir, name)
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestLoad_Workbook(t *testing.T) {
	path := writeWorkbook(t, t.TempDir(), "metrics.xlsx", "Metrics", [][]string{
		{"model", "auc", "f1"},
		{"logit", "0.84", "0.61"},
		{"xgb", "0.86"},
	})

	table, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "metrics.xlsx", table.Name)
	assert.Equal(t, []string{"model", "auc", "f1"}, table.Columns)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, []string{"logit", "0.84", "0.61"}, table.Rows[0])
	assert.Equal(t, []string{"xgb", "0.86", ""}, table.PaddedRow(1))
}

func TestLoad_WorkbookEmptySheet(t *testing.T) {
	path := writeWorkbook(t, t.TempDir(), "empty.xlsx", "Empty", nil)

	table, err := Load(path)
	require.NoError(t, err)
	assert.Empty(t, table.Columns)
	assert.Empty(t, table.Rows)
}

func TestLoad_CorruptWorkbook(t *testing.T) {
	path := writeFile(t, t.TempDir(), "broken.xlsx", "model,auc\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrReportNotFound)
	assert.Contains(t, err.Error(), "broken.xlsx")
}

func TestList_IncludesWorkbooks(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "churn.csv", "x\n")
	writeWorkbook(t, dir, "Metrics.XLSX", "Metrics", [][]string{{"x"}})
	writeFile(t, dir, "legacy.xls", "x\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.md"), []byte("x"), 0o600))

	files, err := List(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"Metrics.XLSX", "churn.csv"}, files)
}

func TestSession_OpenWorkbook(t *testing.T) {
	rows := [][]string{{"id"}}
	for i := range 25 {
		rows = append(rows, []string{string(rune('a' + i))})
	}
	path := writeWorkbook(t, t.TempDir(), "ids.xlsx", "ids", rows)

	s, err := NewSession(10)
	require.NoError(t, err)
	require.NoError(t, s.Open(path))
	assert.Equal(t, 3, s.Pager().TotalPages())
	assert.True(t, s.Last())
	assert.Len(t, s.Page(), 5)
}
