package forest

import (
	"bytes"
	"errors"
	"image/color"
	"image/png"
	"math"
	"testing"

	"github.com/tsawler/posterior/model"
)

func sampleReport() *model.Report {
	return &model.Report{Rows: []model.ReportRow{
		{Name: "B", Mean: -0.5, SD: 0.4},
		{Name: "A", Mean: 1.2, SD: 0.3},
		{Name: "C", Mean: 2.0, SD: 0.1},
	}}
}

func TestRender(t *testing.T) {
	img, err := NewRenderer().Render(sampleReport())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	b := img.Bounds()
	if b.Dx() != 800 {
		t.Errorf("width = %d, want 800", b.Dx())
	}
	wantH := 2*16 + 3*28 + 30
	if b.Dy() != wantH {
		t.Errorf("height = %d, want %d", b.Dy(), wantH)
	}
	// Corners stay background.
	if got := img.At(0, 0); !sameColor(got, color.White) {
		t.Errorf("corner pixel = %v, want background", got)
	}
}

func TestRenderEmptyReport(t *testing.T) {
	_, err := NewRenderer().Render(&model.Report{})
	if !errors.Is(err, model.ErrEmptyReport) {
		t.Errorf("expected ErrEmptyReport, got %v", err)
	}
	_, err = NewRenderer().Render(nil)
	if !errors.Is(err, model.ErrEmptyReport) {
		t.Errorf("nil report: expected ErrEmptyReport, got %v", err)
	}
}

func TestRenderPNG(t *testing.T) {
	var buf bytes.Buffer
	if err := NewRenderer().RenderPNG(&buf, sampleReport()); err != nil {
		t.Fatalf("RenderPNG: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("output is not a decodable PNG: %v", err)
	}
	if img.Bounds().Dx() != 800 {
		t.Errorf("decoded width = %d, want 800", img.Bounds().Dx())
	}
}

func TestAxisScaleCoversAllIntervals(t *testing.T) {
	rep := sampleReport()
	s := newAxisScale(rep, 100, 700)

	for _, row := range rep.Rows {
		lo, hi := row.Mean-row.SD, row.Mean+row.SD
		if lo < s.min || hi > s.max {
			t.Errorf("interval [%v, %v] outside axis range [%v, %v]", lo, hi, s.min, s.max)
		}
		if x := s.pos(lo); x < 100 || x > 700 {
			t.Errorf("pos(%v) = %d outside pixel range", lo, x)
		}
		if x := s.pos(hi); x < 100 || x > 700 {
			t.Errorf("pos(%v) = %d outside pixel range", hi, x)
		}
	}
}

func TestAxisScaleMonotone(t *testing.T) {
	s := newAxisScale(sampleReport(), 100, 700)
	if s.pos(s.min) != 100 {
		t.Errorf("pos(min) = %d, want 100", s.pos(s.min))
	}
	if s.pos(s.max) != 700 {
		t.Errorf("pos(max) = %d, want 700", s.pos(s.max))
	}
	if !(s.pos(-0.5) < s.pos(1.2) && s.pos(1.2) < s.pos(2.0)) {
		t.Error("pos is not monotone over the data")
	}
}

func TestAxisScaleDegenerateRange(t *testing.T) {
	rep := &model.Report{Rows: []model.ReportRow{{Name: "only", Mean: 3, SD: 0}}}
	s := newAxisScale(rep, 0, 100)
	if s.min >= s.max {
		t.Fatalf("degenerate range not widened: [%v, %v]", s.min, s.max)
	}
	if !s.contains(3) {
		t.Error("scale does not contain the single mean")
	}
}

func TestNiceStep(t *testing.T) {
	cases := []struct{ in, want float64 }{
		{0.013, 0.02},
		{0.1, 0.1},
		{0.7, 1},
		{3, 5},
		{12, 20},
		{70, 100},
	}
	for _, c := range cases {
		if got := niceStep(c.in); math.Abs(got-c.want) > c.want*1e-9 {
			t.Errorf("niceStep(%v) = %v, want %v", c.in, got, c.want)
		}
	}
	if got := niceStep(0); got != 0 {
		t.Errorf("niceStep(0) = %v, want 0", got)
	}
}

func TestTicksInsideRange(t *testing.T) {
	s := newAxisScale(sampleReport(), 0, 600)
	ticks := s.ticks(6)
	if len(ticks) == 0 {
		t.Fatal("no ticks produced")
	}
	for i, v := range ticks {
		if v < s.min-1e-9 || v > s.max+1e-6 {
			t.Errorf("tick %v outside [%v, %v]", v, s.min, s.max)
		}
		if i > 0 && ticks[i] <= ticks[i-1] {
			t.Errorf("ticks not increasing: %v", ticks)
		}
	}
}

func sameColor(a, b color.Color) bool {
	ar, ag, ab, aa := a.RGBA()
	br, bg, bb, ba := b.RGBA()
	return ar == br && ag == bg && ab == bb && aa == ba
}
