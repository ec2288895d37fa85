// Package summary orders, filters, and assembles posterior rows into the
// final annotated report.
//
// The pipeline is: stable-sort the extracted rows by posterior mean
// ascending, optionally restrict to a caller-supplied feature subset
// (applied after sorting, so the subset is a subsequence of the full
// ordering), then join each row with its correlation annotation.
//
// The [Builder] type runs the whole pipeline; [SortByMean], [Filter], and
// [Join] expose the individual steps.
//
// Reports export themselves as text/CSV/TSV/markdown via methods on
// model.Report; [WriteJSON] and [WriteHTML] cover the structured formats.
package summary
