// Package posterior provides a fluent API for summarizing fitted Bayesian
// GLMs: extracting coefficient posteriors from a fit's summary table,
// annotating strongly correlated parameter pairs, and producing an ordered
// report or forest plot.
//
// Basic usage:
//
//	report, err := posterior.From(fit).Report()
//	if err != nil {
//	    // handle error
//	}
//	fmt.Print(report)
//
// With options:
//
//	report, err := posterior.From(fit).
//	    Features("TP53", "KRAS").
//	    Threshold(0.6).
//	    Report()
//
// Rendering a forest plot:
//
//	f, _ := os.Create("effects.png")
//	defer f.Close()
//	err := posterior.From(fit).RenderPNG(f)
//
// For advanced use cases the lower-level extract, correlate, summary, and
// forest packages are also available.
package posterior

import (
	"github.com/tsawler/posterior/model"
)

// From wraps a fit for fluent summarization. The fit is read, never
// mutated; several summarizers may share one fit concurrently.
func From(fit *model.FitResult) *Summarizer {
	return &Summarizer{
		fit:     fit,
		options: defaultOptions(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	report := posterior.Must(posterior.From(fit).Report())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
