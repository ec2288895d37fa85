// Package glmfit adapts fitted results from the statmodel GLM engine
// (github.com/kshedden/statmodel) into the FitResult shape the rest of this
// module consumes.
//
// The adapter lays the summary table out the way downstream extraction
// expects: the intercept row first, one row per coefficient, and three
// trailing fit-level diagnostic rows (scale, mean_PPD, log-posterior). The
// parameter covariance matrix is carried over with its name index intact.
//
// Point-estimate fits report a single spread per parameter, so the SD and
// SE columns both carry the standard error.
package glmfit
