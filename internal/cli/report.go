package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/churnlab/churnlab/internal/config"
	"github.com/churnlab/churnlab/internal/pagination"
	"github.com/churnlab/churnlab/internal/report"
)

func newReportCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "report", Short: "Page through the CSV reports written by the notebook"}
	cmd.AddCommand(NewReportListCmd(), NewReportShowCmd())
	return cmd
}

// NewReportListCmd creates the command that lists the report files.
func NewReportListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the CSV reports",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.GetGlobalConfig()
			dir := cfg.Path(cfg.Workspace.ReportsDir)
			files, err := report.List(dir)
			if err != nil {
				return err
			}
			if len(files) == 0 {
				cmd.Printf("No reports found in %s.\n", dir)
				return nil
			}
			for _, f := range files {
				cmd.Println(f)
			}
			return nil
		},
	}
}

// reportPage is the JSON document written by report show --output json.
type reportPage struct {
	Report     string                    `json:"report"`
	Columns    []string                  `json:"columns"`
	Rows       [][]string                `json:"rows"`
	Pagination pagination.PaginationMeta `json:"pagination"`
}

// NewReportShowCmd creates the command that prints one page of a report.
func NewReportShowCmd() *cobra.Command {
	params := pagination.NewParams(pagination.DefaultPageSize)
	var output string

	cmd := &cobra.Command{
		Use:   "show <file>",
		Short: "Print one page of a CSV report",
		Long: `Prints one page of a report. Relative file names are looked up in the
reports directory. A page past the end shows the last page.`,
		Example: `  # First page
  churnlab report show metrics.csv

  # Third page, 50 rows per page, highest tenure first
  churnlab report show clientes.csv --page 3 --page-size 50 --sort tenure:desc

  # Machine-readable output with pagination metadata
  churnlab report show metrics.csv --output json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.GetGlobalConfig()
			if !cmd.Flags().Changed("page-size") {
				params.PageSize = cfg.Pager.PageSize
			}
			if err := params.Validate(); err != nil {
				return err
			}
			if err := validateOutput(output); err != nil {
				return err
			}

			table, err := report.Load(reportPath(cfg, args[0]))
			if err != nil {
				return err
			}

			if params.Sort != "" {
				column, order, _ := pagination.ParseSort(params.Sort)
				if table, err = table.Sorted(column, order); err != nil {
					return err
				}
			}

			pager, err := pagination.NewPager(len(table.Rows), params.PageSize)
			if err != nil {
				return err
			}
			pager.Seek(params.Index())

			rows := pagination.Current(pager, table.Rows)
			padded := make([][]string, len(rows))
			start, _, _ := pager.Bounds()
			for i := range rows {
				padded[i] = table.PaddedRow(start + i)
			}

			if output == outputJSON {
				return writeJSON(cmd.OutOrStdout(), reportPage{
					Report:     table.Name,
					Columns:    table.Header(),
					Rows:       padded,
					Pagination: pager.Meta(),
				})
			}
			return renderReportPage(cmd, table, padded, pager.Meta())
		},
	}

	cmd.Flags().IntVar(&params.Page, "page", pagination.DefaultPage, "page number (1-based)")
	cmd.Flags().IntVar(&params.PageSize, "page-size", pagination.DefaultPageSize,
		"rows per page (default: pager.page_size from the settings file)")
	cmd.Flags().StringVar(&params.Sort, "sort", "", "sort by column, e.g. 'tenure' or 'tenure:desc'")
	cmd.Flags().StringVar(&output, "output", outputTable, "Output format: table or json")

	return cmd
}

// reportPath resolves a report argument. Bare names are looked up in the
// reports directory; anything with a directory component is taken as given.
func reportPath(cfg *config.Config, name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	if filepath.Base(name) != name {
		return cfg.Path(name)
	}
	return filepath.Join(cfg.Path(cfg.Workspace.ReportsDir), name)
}

func renderReportPage(cmd *cobra.Command, table *report.Table, rows [][]string, meta pagination.PaginationMeta) error {
	if meta.TotalItems == 0 {
		cmd.Printf("%s has no rows.\n", table.Name)
		return nil
	}

	w := newTabWriter(cmd.OutOrStdout())
	header := table.Header()
	fmt.Fprintln(w, strings.Join(header, "\t"))
	rules := make([]string, len(header))
	for i, h := range header {
		rules[i] = strings.Repeat("-", len(h))
	}
	fmt.Fprintln(w, strings.Join(rules, "\t"))
	for _, r := range rows {
		fmt.Fprintln(w, strings.Join(r, "\t"))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	p := message.NewPrinter(language.English)
	cmd.Println(p.Sprintf("\nPage %d/%d | Rows %d-%d of %d",
		meta.CurrentPage, meta.TotalPages, meta.FirstRow(), meta.LastRow(), meta.TotalItems))
	return nil
}
