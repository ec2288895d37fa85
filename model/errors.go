package model

import "errors"

var (
	// ErrShortSummary indicates a summary table with too few rows to strip
	// the intercept and trailing diagnostic rows.
	ErrShortSummary = errors.New("posterior: summary table too short")

	// ErrDimensionMismatch indicates a covariance matrix whose size does not
	// agree with the summary table's parameter rows.
	ErrDimensionMismatch = errors.New("posterior: covariance dimension mismatch")

	// ErrUnknownFeature indicates a requested feature name that is not
	// present among the extracted parameters.
	ErrUnknownFeature = errors.New("posterior: unknown feature")

	// ErrDegenerateVariance indicates a zero or negative variance on the
	// covariance diagonal, which leaves correlation undefined.
	ErrDegenerateVariance = errors.New("posterior: degenerate variance")

	// ErrLayoutMismatch indicates a summary table whose row names do not
	// match the roles a named-role layout expects.
	ErrLayoutMismatch = errors.New("posterior: summary layout mismatch")

	// ErrEmptyReport indicates a report with no rows where at least one is
	// required, such as when rendering a plot.
	ErrEmptyReport = errors.New("posterior: empty report")
)
