package posterior

import (
	"github.com/tsawler/posterior/correlate"
	"github.com/tsawler/posterior/extract"
)

// SummaryOptions holds configuration for posterior summarization.
type SummaryOptions struct {
	// Correlation annotation threshold (strict >).
	threshold float64

	// Feature subset; nil means all coefficients.
	features []string

	// Unknown feature names are errors when strict, silently dropped
	// otherwise.
	strict bool

	// Summary table layout.
	layout extract.Layout

	// Plot geometry; zero values mean renderer defaults.
	plotWidth  int
	plotHeight int
}

// defaultOptions returns the default summarization options.
func defaultOptions() SummaryOptions {
	return SummaryOptions{
		threshold: correlate.DefaultThreshold,
		features:  nil, // nil means all coefficients
		strict:    true,
		layout:    extract.DefaultLayout(),
	}
}

// clone creates a deep copy of SummaryOptions.
func (o SummaryOptions) clone() SummaryOptions {
	newOpts := o

	if o.features != nil {
		newOpts.features = make([]string, len(o.features))
		copy(newOpts.features, o.features)
	}
	if o.layout.InterceptNames != nil {
		newOpts.layout.InterceptNames = append([]string(nil), o.layout.InterceptNames...)
	}
	if o.layout.DiagnosticNames != nil {
		newOpts.layout.DiagnosticNames = append([]string(nil), o.layout.DiagnosticNames...)
	}

	return newOpts
}
