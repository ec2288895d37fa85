package model

import "fmt"

// DiagnosticRowCount is the number of fit-level diagnostic rows the external
// fitting engine appends to the posterior summary table (for example scale,
// mean posterior predictive, and log-posterior).
const DiagnosticRowCount = 3

// SummaryRow is one row of a fit's raw posterior summary table. For
// coefficient rows Mean, SD, and SE are the posterior mean, standard
// deviation, and standard error; for diagnostic rows Mean carries the
// diagnostic value and the spread columns are typically zero.
type SummaryRow struct {
	Name string  `json:"name"`
	Mean float64 `json:"mean"`
	SD   float64 `json:"sd"`
	SE   float64 `json:"se"`
}

// PosteriorRow is one estimated coefficient's posterior summary, produced by
// extraction from a FitResult. Rows are immutable once extracted.
type PosteriorRow struct {
	Name string  `json:"name"`
	Mean float64 `json:"mean"`
	SD   float64 `json:"sd"`
	SE   float64 `json:"se"`
}

// FitResult is the output of an external Bayesian GLM fit: the raw posterior
// summary table and the parameter covariance matrix. The summary table's
// fixed layout is a precondition set by the fitting engine: row 0 is the
// intercept, the last DiagnosticRowCount rows are fit-level diagnostics, and
// everything in between is one row per estimated coefficient. The covariance
// matrix is indexed in the same order as the parameter rows (intercept
// included, diagnostics excluded).
//
// FitResult is read-only to this module; callers own it.
type FitResult struct {
	Summary    []SummaryRow `json:"summary"`
	Covariance *Matrix      `json:"covariance"`
}

// ParameterCount returns the number of parameter rows in the summary table
// (intercept plus coefficients, diagnostics excluded). It is negative when
// the table is shorter than the diagnostic tail.
func (f *FitResult) ParameterCount() int {
	return len(f.Summary) - DiagnosticRowCount
}

// Validate checks the structural preconditions on a FitResult: the summary
// table must be long enough to hold an intercept, at least one coefficient,
// and the diagnostic tail, and the covariance matrix must be square over
// exactly the parameter rows. A violation is fatal for the whole fit; there
// is nothing downstream code can salvage from a misshapen table.
func (f *FitResult) Validate() error {
	if n := len(f.Summary); n < DiagnosticRowCount+1 {
		return fmt.Errorf("%w: %d rows, need at least %d", ErrShortSummary, n, DiagnosticRowCount+1)
	}
	if f.Covariance == nil {
		return fmt.Errorf("%w: no covariance matrix", ErrDimensionMismatch)
	}
	if dim, want := f.Covariance.Dim(), f.ParameterCount(); dim != want {
		return fmt.Errorf("%w: covariance is %dx%d, summary has %d parameter rows",
			ErrDimensionMismatch, dim, dim, want)
	}
	return nil
}
