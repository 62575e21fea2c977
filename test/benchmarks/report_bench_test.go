package benchmarks_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/churnlab/churnlab/internal/pagination"
	"github.com/churnlab/churnlab/internal/report"
)

// telcoRows is the row count of the Telco customer churn dataset.
const telcoRows = 7043

// generateTelcoCSV builds a CSV shaped like the churn dataset.
func generateTelcoCSV(rows int) string {
	var b strings.Builder
	b.WriteString("customerID,gender,SeniorCitizen,tenure,Contract,MonthlyCharges,TotalCharges,Churn\n")
	for i := 0; i < rows; i++ {
		churn := "No"
		if i%4 == 0 {
			churn = "Yes"
		}
		fmt.Fprintf(&b, "%04d-ABCDE,Female,%d,%d,Month-to-month,%.2f,%.2f,%s\n",
			i, i%2, i%72, 20+float64(i%100), float64(i)*1.5, churn)
	}
	return b.String()
}

// BenchmarkParse_TelcoReport benchmarks loading a full-size report.
func BenchmarkParse_TelcoReport(b *testing.B) {
	b.ReportAllocs()
	data := generateTelcoCSV(telcoRows)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := report.Parse(strings.NewReader(data)); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkPager_WalkAllPages benchmarks paging through every page.
func BenchmarkPager_WalkAllPages(b *testing.B) {
	b.ReportAllocs()
	table, err := report.Parse(strings.NewReader(generateTelcoCSV(telcoRows)))
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		pager, pagerErr := pagination.NewPager(len(table.Rows), pagination.DefaultPageSize)
		if pagerErr != nil {
			b.Fatal(pagerErr)
		}
		rows := 0
		for {
			rows += len(pagination.Current(pager, table.Rows))
			if !pager.Next() {
				break
			}
		}
		if rows != telcoRows {
			b.Fatalf("walked %d rows, want %d", rows, telcoRows)
		}
	}
}

// BenchmarkSort_NumericColumn benchmarks sorting by a numeric column.
func BenchmarkSort_NumericColumn(b *testing.B) {
	b.ReportAllocs()
	table, err := report.Parse(strings.NewReader(generateTelcoCSV(telcoRows)))
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, sortErr := table.Sorted("MonthlyCharges", pagination.SortOrderDesc); sortErr != nil {
			b.Fatal(sortErr)
		}
	}
}
