package extract

import (
	"errors"
	"testing"

	"github.com/tsawler/posterior/model"
)

func fitWithRows(names ...string) *model.FitResult {
	rows := make([]model.SummaryRow, len(names))
	for i, na := range names {
		rows[i] = model.SummaryRow{Name: na, Mean: float64(i)}
	}
	return &model.FitResult{Summary: rows}
}

func standardFit() *model.FitResult {
	return &model.FitResult{Summary: []model.SummaryRow{
		{Name: "(Intercept)", Mean: 0},
		{Name: "A", Mean: 1.2, SD: 0.3, SE: 0.03},
		{Name: "B", Mean: -0.5, SD: 0.4, SE: 0.04},
		{Name: "C", Mean: 2.0, SD: 0.1, SE: 0.01},
		{Name: "scale", Mean: 1.1},
		{Name: "mean_PPD", Mean: 0.7},
		{Name: "log-posterior", Mean: -812.3},
	}}
}

func TestPosterior(t *testing.T) {
	rows, err := Posterior(standardFit())
	if err != nil {
		t.Fatalf("Posterior: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}
	want := []model.PosteriorRow{
		{Name: "A", Mean: 1.2, SD: 0.3, SE: 0.03},
		{Name: "B", Mean: -0.5, SD: 0.4, SE: 0.04},
		{Name: "C", Mean: 2.0, SD: 0.1, SE: 0.01},
	}
	for i := range want {
		if rows[i] != want[i] {
			t.Errorf("row %d = %+v, want %+v", i, rows[i], want[i])
		}
	}
}

func TestPosteriorRowCount(t *testing.T) {
	// N summary rows always yield N-4 coefficient rows.
	for n := 4; n <= 12; n++ {
		names := make([]string, n)
		for i := range names {
			names[i] = string(rune('a' + i))
		}
		rows, err := Posterior(fitWithRows(names...))
		if err != nil {
			t.Fatalf("n=%d: %v", n, err)
		}
		if len(rows) != n-4 {
			t.Errorf("n=%d: got %d rows, want %d", n, len(rows), n-4)
		}
	}
}

func TestPosteriorShortSummary(t *testing.T) {
	for n := 0; n < 4; n++ {
		names := make([]string, n)
		for i := range names {
			names[i] = string(rune('a' + i))
		}
		_, err := Posterior(fitWithRows(names...))
		if !errors.Is(err, model.ErrShortSummary) {
			t.Errorf("n=%d: expected ErrShortSummary, got %v", n, err)
		}
	}
}

func TestModeNamed(t *testing.T) {
	layout := DefaultLayout()
	layout.Mode = ModeNamed

	rows, err := PosteriorWithLayout(standardFit(), layout)
	if err != nil {
		t.Fatalf("named mode on standard layout: %v", err)
	}
	if len(rows) != 3 {
		t.Errorf("got %d rows, want 3", len(rows))
	}
}

func TestModeNamedMismatch(t *testing.T) {
	layout := DefaultLayout()
	layout.Mode = ModeNamed

	// Trailing rows are not diagnostics by name.
	_, err := PosteriorWithLayout(fitWithRows("(Intercept)", "A", "B", "C", "D", "E", "F"), layout)
	if !errors.Is(err, model.ErrLayoutMismatch) {
		t.Errorf("expected ErrLayoutMismatch, got %v", err)
	}
}

func TestModeAutoFallsBackToPositional(t *testing.T) {
	// Unrecognized names: auto mode still slices positionally.
	rows, err := Posterior(fitWithRows("b0", "x1", "x2", "stat1", "stat2", "stat3"))
	if err != nil {
		t.Fatalf("Posterior: %v", err)
	}
	if len(rows) != 2 || rows[0].Name != "x1" || rows[1].Name != "x2" {
		t.Errorf("got %+v, want x1,x2", rows)
	}
}

func TestPosteriorDoesNotAliasInput(t *testing.T) {
	fit := standardFit()
	rows, err := Posterior(fit)
	if err != nil {
		t.Fatalf("Posterior: %v", err)
	}
	rows[0].Mean = 99
	if fit.Summary[1].Mean != 1.2 {
		t.Error("extraction mutated the source summary table")
	}
}
