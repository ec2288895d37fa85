package correlate

import (
	"errors"
	"math"
	"testing"

	"github.com/tsawler/posterior/model"
)

func mustMatrix(t *testing.T, names []string, data []float64) *model.Matrix {
	t.Helper()
	m, err := model.NewMatrix(names, data)
	if err != nil {
		t.Fatalf("NewMatrix: %v", err)
	}
	return m
}

// covFromCorr builds a covariance matrix with the given standard deviations
// and correlation entries, intercept (unit variance, uncorrelated) first.
func covFromCorr(t *testing.T, names []string, sd []float64, corr map[[2]string]float64) *model.Matrix {
	t.Helper()
	all := append([]string{"(Intercept)"}, names...)
	n := len(all)
	data := make([]float64, n*n)
	for i := 0; i < n; i++ {
		data[i*n+i] = 1
	}
	for i, na := range names {
		data[(i+1)*n+(i+1)] = sd[i] * sd[i]
		for j, nb := range names {
			if i == j {
				continue
			}
			r, ok := corr[[2]string{na, nb}]
			if !ok {
				r = corr[[2]string{nb, na}]
			}
			data[(i+1)*n+(j+1)] = r * sd[i] * sd[j]
		}
	}
	return mustMatrix(t, all, data)
}

func TestCorrelation(t *testing.T) {
	cov := mustMatrix(t, []string{"a", "b"}, []float64{
		4, 3,
		3, 9,
	})
	corr, err := Correlation(cov)
	if err != nil {
		t.Fatalf("Correlation: %v", err)
	}
	if v := corr.At(0, 0); v != 1 {
		t.Errorf("diagonal = %v, want 1", v)
	}
	want := 3.0 / (2.0 * 3.0)
	if v := corr.At(0, 1); math.Abs(v-want) > 1e-12 {
		t.Errorf("corr(a,b) = %v, want %v", v, want)
	}
	if v := corr.At(1, 0); math.Abs(v-want) > 1e-12 {
		t.Errorf("corr(b,a) = %v, want %v", v, want)
	}
}

func TestCorrelationDegenerateVariance(t *testing.T) {
	for _, bad := range []float64{0, -1} {
		cov := mustMatrix(t, []string{"a", "b"}, []float64{
			bad, 0,
			0, 1,
		})
		_, err := Correlation(cov)
		if !errors.Is(err, model.ErrDegenerateVariance) {
			t.Errorf("variance %v: expected ErrDegenerateVariance, got %v", bad, err)
		}
	}
}

func TestAnnotate(t *testing.T) {
	cov := covFromCorr(t,
		[]string{"A", "B", "C"},
		[]float64{0.3, 0.4, 0.1},
		map[[2]string]float64{
			{"A", "B"}: 0.6,
			{"A", "C"}: 0.2,
			{"B", "C"}: 0.55,
		})

	ann, err := NewAnnotator().Annotate(cov)
	if err != nil {
		t.Fatalf("Annotate: %v", err)
	}

	checks := map[string][]string{
		"A": {"B"},
		"B": {"A", "C"},
		"C": {"B"},
	}
	for name, want := range checks {
		got := ann[name]
		if len(got) != len(want) {
			t.Errorf("%s: got %v, want %v", name, got, want)
			continue
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("%s: got %v, want %v", name, got, want)
			}
		}
	}
	if _, present := ann["(Intercept)"]; present {
		t.Error("intercept was not excluded from annotations")
	}
}

func TestAnnotateSymmetry(t *testing.T) {
	cov := covFromCorr(t,
		[]string{"w", "x", "y", "z"},
		[]float64{1, 2, 0.5, 3},
		map[[2]string]float64{
			{"w", "x"}: 0.9,
			{"w", "y"}: -0.7,
			{"x", "z"}: 0.3,
			{"y", "z"}: -0.51,
		})

	ann, err := NewAnnotator().Annotate(cov)
	if err != nil {
		t.Fatalf("Annotate: %v", err)
	}

	in := func(list []string, name string) bool {
		for _, s := range list {
			if s == name {
				return true
			}
		}
		return false
	}
	names := []string{"w", "x", "y", "z"}
	for _, a := range names {
		for _, b := range names {
			if a == b {
				continue
			}
			if in(ann[a], b) != in(ann[b], a) {
				t.Errorf("asymmetric annotation for %s/%s", a, b)
			}
		}
	}
}

func TestAnnotateSelfExclusion(t *testing.T) {
	cov := covFromCorr(t,
		[]string{"p", "q"},
		[]float64{1, 1},
		map[[2]string]float64{{"p", "q"}: 0.99})

	ann, err := NewAnnotator().Annotate(cov)
	if err != nil {
		t.Fatalf("Annotate: %v", err)
	}
	for name, list := range ann {
		for _, other := range list {
			if other == name {
				t.Errorf("%s annotates itself", name)
			}
		}
	}
}

func TestAnnotateThresholdBoundary(t *testing.T) {
	in := func(list []string, name string) bool {
		for _, s := range list {
			if s == name {
				return true
			}
		}
		return false
	}

	// Exactly at the threshold: excluded (strict >).
	cov := covFromCorr(t, []string{"a", "b"}, []float64{1, 1},
		map[[2]string]float64{{"a", "b"}: 0.5})
	ann, err := NewAnnotator().Annotate(cov)
	if err != nil {
		t.Fatalf("Annotate: %v", err)
	}
	if in(ann["a"], "b") {
		t.Error("pair at exactly 0.5 should be excluded")
	}

	// Just above: included.
	cov = covFromCorr(t, []string{"a", "b"}, []float64{1, 1},
		map[[2]string]float64{{"a", "b"}: 0.5000001})
	ann, err = NewAnnotator().Annotate(cov)
	if err != nil {
		t.Fatalf("Annotate: %v", err)
	}
	if !in(ann["a"], "b") {
		t.Error("pair at 0.5000001 should be included")
	}

	// Negative correlation beyond the threshold: included by magnitude.
	cov = covFromCorr(t, []string{"a", "b"}, []float64{1, 1},
		map[[2]string]float64{{"a", "b"}: -0.8})
	ann, err = NewAnnotator().Annotate(cov)
	if err != nil {
		t.Fatalf("Annotate: %v", err)
	}
	if !in(ann["a"], "b") {
		t.Error("pair at -0.8 should be included")
	}
}

func TestAnnotateNoPartialResultOnDegenerateVariance(t *testing.T) {
	// Intercept is fine, a coefficient variance is zero.
	cov := mustMatrix(t, []string{"(Intercept)", "a", "b"}, []float64{
		1, 0, 0,
		0, 0, 0,
		0, 0, 1,
	})
	ann, err := NewAnnotator().Annotate(cov)
	if !errors.Is(err, model.ErrDegenerateVariance) {
		t.Fatalf("expected ErrDegenerateVariance, got %v", err)
	}
	if ann != nil {
		t.Errorf("expected nil annotations on failure, got %v", ann)
	}
}

func TestAnnotateCustomThreshold(t *testing.T) {
	cov := covFromCorr(t, []string{"a", "b"}, []float64{1, 1},
		map[[2]string]float64{{"a", "b"}: 0.6})

	a := NewAnnotator()
	a.Threshold = 0.7
	ann, err := a.Annotate(cov)
	if err != nil {
		t.Fatalf("Annotate: %v", err)
	}
	if len(ann["a"]) != 0 {
		t.Errorf("0.6 should not pass a 0.7 threshold, got %v", ann["a"])
	}
}
