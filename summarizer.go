package posterior

import (
	"fmt"
	"image"
	"io"

	"github.com/tsawler/posterior/correlate"
	"github.com/tsawler/posterior/extract"
	"github.com/tsawler/posterior/forest"
	"github.com/tsawler/posterior/model"
	"github.com/tsawler/posterior/summary"
)

// Summarizer provides a fluent interface for turning a fit into a report or
// plot. Each configuration method returns a new Summarizer instance, making
// it safe for concurrent use and allowing method chaining.
type Summarizer struct {
	// Source
	fit *model.FitResult

	// Configuration
	options SummaryOptions

	// Accumulated error (fail-fast)
	err error
}

// clone creates a shallow copy of the Summarizer with a deep copy of
// options. This ensures immutability - each chain method returns a new
// instance.
func (s *Summarizer) clone() *Summarizer {
	return &Summarizer{
		fit:     s.fit,
		options: s.options.clone(),
		err:     s.err,
	}
}

// Threshold sets the absolute correlation a parameter pair must exceed
// (strictly) to be annotated. Values outside (0, 1) are rejected.
func (s *Summarizer) Threshold(v float64) *Summarizer {
	newSum := s.clone()
	if v <= 0 || v >= 1 {
		newSum.err = fmt.Errorf("correlation threshold %g outside (0, 1)", v)
		return newSum
	}
	newSum.options.threshold = v
	return newSum
}

// Features restricts the report to the named coefficients. The restriction
// is applied after sorting, so the report stays a subsequence of the full
// mean-ordered report.
func (s *Summarizer) Features(names ...string) *Summarizer {
	newSum := s.clone()
	newSum.options.features = append([]string(nil), names...)
	return newSum
}

// Lenient makes unknown feature names silent drops instead of errors.
func (s *Summarizer) Lenient() *Summarizer {
	newSum := s.clone()
	newSum.options.strict = false
	return newSum
}

// Layout overrides the summary table layout used for extraction.
func (s *Summarizer) Layout(layout extract.Layout) *Summarizer {
	newSum := s.clone()
	newSum.options.layout = layout
	return newSum
}

// PlotSize sets the rendered plot's pixel dimensions. A zero height sizes
// the plot to the report's row count.
func (s *Summarizer) PlotSize(width, height int) *Summarizer {
	newSum := s.clone()
	newSum.options.plotWidth = width
	newSum.options.plotHeight = height
	return newSum
}

// Rows extracts the coefficient rows, sorted by posterior mean ascending
// and restricted to any configured feature subset.
func (s *Summarizer) Rows() ([]model.PosteriorRow, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.fit == nil {
		return nil, fmt.Errorf("no fit specified")
	}
	if err := s.fit.Validate(); err != nil {
		return nil, err
	}

	rows, err := extract.PosteriorWithLayout(s.fit, s.options.layout)
	if err != nil {
		return nil, err
	}
	return summary.Filter(summary.SortByMean(rows), s.options.features, s.options.strict)
}

// Annotations computes the strong-correlation annotations from the fit's
// covariance matrix at the configured threshold.
func (s *Summarizer) Annotations() (model.Annotations, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.fit == nil {
		return nil, fmt.Errorf("no fit specified")
	}
	if err := s.fit.Validate(); err != nil {
		return nil, err
	}

	a := correlate.NewAnnotator()
	a.Threshold = s.options.threshold
	return a.Annotate(s.fit.Covariance)
}

// Report runs the whole pipeline: extraction, ordering, filtering,
// correlation annotation, and report assembly.
func (s *Summarizer) Report() (*model.Report, error) {
	rows, err := s.Rows()
	if err != nil {
		return nil, err
	}
	ann, err := s.Annotations()
	if err != nil {
		return nil, err
	}
	return summary.Join(rows, ann), nil
}

// Table returns the report as an aligned plain-text table.
func (s *Summarizer) Table() (string, error) {
	rep, err := s.Report()
	if err != nil {
		return "", err
	}
	return rep.String(), nil
}

// Render builds the report and draws it as a forest plot.
func (s *Summarizer) Render() (image.Image, error) {
	rep, err := s.Report()
	if err != nil {
		return nil, err
	}
	return s.renderer().Render(rep)
}

// RenderPNG builds the report, draws it as a forest plot, and PNG-encodes
// it to w.
func (s *Summarizer) RenderPNG(w io.Writer) error {
	rep, err := s.Report()
	if err != nil {
		return err
	}
	return s.renderer().RenderPNG(w, rep)
}

func (s *Summarizer) renderer() *forest.Renderer {
	r := forest.NewRenderer()
	if s.options.plotWidth > 0 {
		r.Width = s.options.plotWidth
	}
	if s.options.plotHeight > 0 {
		r.Height = s.options.plotHeight
	}
	return r
}
