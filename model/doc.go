// Package model provides the intermediate representation (IR) for posterior
// summaries of fitted Bayesian GLMs.
//
// This package defines the user-facing data structures that the extraction,
// annotation, and report-building packages consume and produce, making them
// the primary API for working with fit output.
//
// # Fit Output
//
// The [FitResult] type holds the raw output of an external fitting engine:
// a posterior summary table ([SummaryRow] per parameter, intercept first,
// fit-level diagnostic rows trailing) and the parameter covariance matrix.
//
//	fit := &model.FitResult{
//	    Summary:    rows,
//	    Covariance: cov,
//	}
//	if err := fit.Validate(); err != nil {
//	    // handle structural mismatch
//	}
//
// # Matrices
//
// The [Matrix] type is a square, symmetric matrix indexed both by position
// and by parameter name. The name index is built once at construction so
// downstream code never relies on positional lookups against a layout it
// does not control.
//
// # Reports
//
// The [Report] type is the final ordered, annotated summary table. It carries
// export methods for the common tabular formats:
//
//   - String() - aligned plain-text table
//   - ToCSV() and ToTSV() - delimited text
//   - ToMarkdown() - markdown table
//
// # Errors
//
// Sentinel errors ([ErrShortSummary], [ErrDimensionMismatch],
// [ErrUnknownFeature], [ErrDegenerateVariance]) classify every failure the
// summarization pipeline can surface. Wrapped errors remain matchable with
// errors.Is.
package model
