// Package detail shows one report record as a scrolling list of
// column/value pairs.
//
// Report tables truncate wide cells to keep rows on one line; the record
// view is where a full value can be read. Labels are aligned to the longest
// column name and long values wrap under their label.
package detail
