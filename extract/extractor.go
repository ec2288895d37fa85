package extract

import (
	"fmt"

	"github.com/tsawler/posterior/model"
)

// Mode selects how the intercept and diagnostic rows are located in the
// summary table.
type Mode int

const (
	// ModeAuto recognizes rows by name and falls back to positional
	// slicing when the names do not match. This is the default.
	ModeAuto Mode = iota

	// ModePositional drops row 0 and the trailing diagnostic block by
	// position, without inspecting names. Compatibility mode for engines
	// that do not name their rows.
	ModePositional

	// ModeNamed requires the intercept and diagnostic rows to match the
	// layout's known names, and fails with a layout mismatch otherwise.
	ModeNamed
)

// Layout describes how a fitting engine arranges the summary table.
type Layout struct {
	// Mode selects named-role detection, positional slicing, or named
	// detection with positional fallback.
	Mode Mode

	// InterceptNames are the names an engine may give the intercept row.
	InterceptNames []string

	// DiagnosticNames are the names an engine may give the trailing
	// fit-level diagnostic rows.
	DiagnosticNames []string
}

// DefaultLayout returns the layout the common fitting engines produce:
// auto mode with the usual intercept and diagnostic row names.
func DefaultLayout() Layout {
	return Layout{
		Mode:            ModeAuto,
		InterceptNames:  []string{"(Intercept)", "Intercept", "icept", "intercept"},
		DiagnosticNames: []string{"scale", "sigma", "mean_PPD", "log-posterior", "lp__", "deviance"},
	}
}

func contains(set []string, name string) bool {
	for _, s := range set {
		if s == name {
			return true
		}
	}
	return false
}

// rolesMatch reports whether row 0 and the trailing diagnostic block carry
// the names the layout expects.
func (l Layout) rolesMatch(summary []model.SummaryRow) bool {
	if !contains(l.InterceptNames, summary[0].Name) {
		return false
	}
	for _, row := range summary[len(summary)-model.DiagnosticRowCount:] {
		if !contains(l.DiagnosticNames, row.Name) {
			return false
		}
	}
	return true
}

// Posterior extracts the coefficient rows from a fit using DefaultLayout.
func Posterior(fit *model.FitResult) ([]model.PosteriorRow, error) {
	return PosteriorWithLayout(fit, DefaultLayout())
}

// PosteriorWithLayout extracts the coefficient rows from a fit: every
// summary row except the intercept and the trailing diagnostic block, in
// table order. The result holds exactly len(Summary)-1-DiagnosticRowCount
// rows. Fails with a structural error when the table is too short to hold
// an intercept, one coefficient, and the diagnostic tail.
func PosteriorWithLayout(fit *model.FitResult, layout Layout) ([]model.PosteriorRow, error) {
	summary := fit.Summary
	if n := len(summary); n < model.DiagnosticRowCount+1 {
		return nil, fmt.Errorf("%w: %d rows, need at least %d", model.ErrShortSummary, n, model.DiagnosticRowCount+1)
	}

	switch layout.Mode {
	case ModeNamed:
		if !layout.rolesMatch(summary) {
			return nil, fmt.Errorf("%w: intercept/diagnostic rows not recognized by name", model.ErrLayoutMismatch)
		}
	case ModeAuto, ModePositional:
		// Positional slicing below covers both: auto's name check only
		// confirms what position already determines.
	default:
		return nil, fmt.Errorf("%w: unknown layout mode %d", model.ErrLayoutMismatch, layout.Mode)
	}

	body := summary[1 : len(summary)-model.DiagnosticRowCount]
	rows := make([]model.PosteriorRow, len(body))
	for i, row := range body {
		rows[i] = model.PosteriorRow{
			Name: row.Name,
			Mean: row.Mean,
			SD:   row.SD,
			SE:   row.SE,
		}
	}
	return rows, nil
}
