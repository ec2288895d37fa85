package correlate

import (
	"fmt"
	"math"

	"github.com/tsawler/posterior/model"
)

// DefaultThreshold is the absolute correlation a pair must exceed (strictly)
// to be annotated.
const DefaultThreshold = 0.5

// Annotator flags strongly correlated parameter pairs in a covariance
// matrix.
type Annotator struct {
	// Threshold is the absolute correlation a pair must exceed. The
	// comparison is strict: a pair at exactly the threshold is not
	// annotated.
	Threshold float64

	// KeepIntercept disables the default exclusion of the intercept
	// row/column (index 0) before the correlation is computed.
	KeepIntercept bool
}

// NewAnnotator creates an annotator with the default threshold.
func NewAnnotator() *Annotator {
	return &Annotator{Threshold: DefaultThreshold}
}

// Correlation normalizes a covariance matrix into a correlation matrix.
// Off-diagonal entries land in [-1, 1] and the diagonal is exactly 1. Fails
// with a numeric error when any diagonal entry is zero or negative.
func Correlation(cov *model.Matrix) (*model.Matrix, error) {
	n := cov.Dim()
	names := cov.Names()

	sd := make([]float64, n)
	for i := 0; i < n; i++ {
		v := cov.At(i, i)
		if v <= 0 {
			return nil, fmt.Errorf("%w: %q has variance %g", model.ErrDegenerateVariance, names[i], v)
		}
		sd[i] = math.Sqrt(v)
	}

	data := make([]float64, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				data[i*n+j] = 1
				continue
			}
			data[i*n+j] = cov.At(i, j) / (sd[i] * sd[j])
		}
	}
	return model.NewMatrix(names, data)
}

// Annotate computes the correlation matrix for cov (intercept excluded
// unless KeepIntercept is set) and returns, per parameter, the names of all
// other parameters whose absolute correlation with it exceeds the threshold,
// in column order. A parameter never annotates itself. Fails fast on a
// degenerate variance; no partial annotations are returned.
func (a *Annotator) Annotate(cov *model.Matrix) (model.Annotations, error) {
	if !a.KeepIntercept && cov.Dim() > 0 {
		cov = cov.Minor(0)
	}

	corr, err := Correlation(cov)
	if err != nil {
		return nil, err
	}

	n := corr.Dim()
	names := corr.Names()
	ann := make(model.Annotations, n)
	for i := 0; i < n; i++ {
		var matched []string
		for j := 0; j < n; j++ {
			if j == i {
				// The diagonal is 1 and would always pass the
				// threshold; self-correlation is excluded by
				// construction.
				continue
			}
			if math.Abs(corr.At(i, j)) > a.Threshold {
				matched = append(matched, names[j])
			}
		}
		ann[names[i]] = matched
	}
	return ann, nil
}
