// Package extract pulls the estimated-coefficient rows out of a fit's raw
// posterior summary table.
//
// Fitting engines emit the summary table in a fixed layout: intercept first,
// one row per coefficient, and a trailing block of fit-level diagnostic rows
// (scale, mean posterior predictive, log-posterior). Extraction strips the
// intercept and the diagnostic tail and returns the coefficient rows in
// table order.
//
// Two layout modes are supported. Named-role mode recognizes the intercept
// and diagnostic rows by name, which guards against upstream layout drift.
// Positional mode unconditionally drops row 0 and the last three rows, and
// exists as a compatibility fallback for engines that do not expose row
// names. The default [Layout] tries named roles first and falls back to
// positional slicing.
package extract
