// Package pagination maps a page index onto a window of rows.
//
// The package contains:
//   - Pager: the page-index state machine (next, previous, seek) over a fixed
//     row count and page size
//   - Window: the pure slice operation behind every page render
//   - Params: CLI flag parsing and validation for --page/--page-size/--sort
//   - PaginationMeta: page metadata for structured output
//   - RowSorter: ordering of report rows by a named column
//
// Page indices are 0-based inside the Pager and 1-based on the command line
// and in PaginationMeta.
package pagination
