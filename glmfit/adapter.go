package glmfit

import (
	"fmt"

	"github.com/kshedden/dstream/dstream"
	"github.com/kshedden/statmodel/glm"

	"github.com/tsawler/posterior/model"
)

// Results is the subset of a fitted statmodel result this adapter reads.
// glm.GLMResults satisfies it.
type Results interface {
	// Params returns the fitted coefficients, intercept first when the
	// design was built with an intercept column.
	Params() []float64

	// StdErr returns the standard error per coefficient, aligned with
	// Params.
	StdErr() []float64

	// VCov returns the parameter covariance matrix, row-major, aligned
	// with Params.
	VCov() []float64

	// LogLike returns the log-likelihood at the fitted parameters.
	LogLike() float64
}

var _ Results = (*glm.GLMResults)(nil)

// Diagnostics carries the fit-level values placed in the summary table's
// trailing rows alongside the log-likelihood.
type Diagnostics struct {
	// Scale is the fitted dispersion (scale) parameter.
	Scale float64

	// MeanPPD is the mean of the fitted outcome, the point-estimate
	// analogue of a mean posterior predictive draw.
	MeanPPD float64
}

// FromResults builds a FitResult from a fitted model. names must align with
// the result's parameter order, intercept first; the formula package names
// the intercept column "icept". The summary table gets one row per
// parameter followed by the three diagnostic rows, and the covariance
// matrix is indexed by the same parameter names.
func FromResults(names []string, rslt Results, diag Diagnostics) (*model.FitResult, error) {
	params := rslt.Params()
	stderr := rslt.StdErr()
	vcov := rslt.VCov()
	n := len(names)

	if len(params) != n {
		return nil, fmt.Errorf("%w: %d names for %d parameters", model.ErrDimensionMismatch, n, len(params))
	}
	if len(stderr) != n {
		return nil, fmt.Errorf("%w: %d names for %d standard errors", model.ErrDimensionMismatch, n, len(stderr))
	}
	if len(vcov) != n*n {
		return nil, fmt.Errorf("%w: covariance has %d entries, want %d", model.ErrDimensionMismatch, len(vcov), n*n)
	}

	summary := make([]model.SummaryRow, 0, n+model.DiagnosticRowCount)
	for i, na := range names {
		summary = append(summary, model.SummaryRow{
			Name: na,
			Mean: params[i],
			SD:   stderr[i],
			SE:   stderr[i],
		})
	}
	summary = append(summary,
		model.SummaryRow{Name: "scale", Mean: diag.Scale},
		model.SummaryRow{Name: "mean_PPD", Mean: diag.MeanPPD},
		model.SummaryRow{Name: "log-posterior", Mean: rslt.LogLike()},
	)

	cov, err := model.NewMatrix(names, vcov)
	if err != nil {
		return nil, err
	}

	fit := &model.FitResult{Summary: summary, Covariance: cov}
	if err := fit.Validate(); err != nil {
		return nil, err
	}
	return fit, nil
}

// CoefficientNames returns a dstream's column names with the response
// variable removed, preserving column order. This is the parameter order a
// GLM fit over the stream reports.
func CoefficientNames(ds dstream.Dstream, response string) []string {
	var out []string
	for _, na := range ds.Names() {
		if na != response {
			out = append(out, na)
		}
	}
	return out
}
