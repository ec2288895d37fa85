package forest

import (
	"math"

	"github.com/tsawler/posterior/model"
)

// axisScale maps data values onto horizontal pixel positions.
type axisScale struct {
	min, max float64
	x0, x1   int
}

// newAxisScale builds a scale covering every mean±SD interval in the
// report, padded 5% on each side so bars never touch the frame.
func newAxisScale(rep *model.Report, x0, x1 int) axisScale {
	lo := math.Inf(1)
	hi := math.Inf(-1)
	for _, row := range rep.Rows {
		if v := row.Mean - row.SD; v < lo {
			lo = v
		}
		if v := row.Mean + row.SD; v > hi {
			hi = v
		}
	}
	if lo > hi {
		lo, hi = 0, 1
	}
	if lo == hi {
		lo--
		hi++
	}
	pad := (hi - lo) * 0.05
	return axisScale{min: lo - pad, max: hi + pad, x0: x0, x1: x1}
}

// pos maps a data value to a pixel X coordinate.
func (s axisScale) pos(v float64) int {
	frac := (v - s.min) / (s.max - s.min)
	return s.x0 + int(math.Round(frac*float64(s.x1-s.x0)))
}

// contains reports whether v lies inside the scale's data range.
func (s axisScale) contains(v float64) bool {
	return v >= s.min && v <= s.max
}

// ticks returns round tick values covering the scale, aiming for roughly n
// intervals.
func (s axisScale) ticks(n int) []float64 {
	if n < 1 {
		n = 1
	}
	step := niceStep((s.max - s.min) / float64(n))
	if step <= 0 {
		return nil
	}
	var out []float64
	for v := math.Ceil(s.min/step) * step; v <= s.max+step/1e6; v += step {
		// Snap tiny float residue so labels print cleanly.
		if math.Abs(v) < step/1e6 {
			v = 0
		}
		out = append(out, v)
	}
	return out
}

// niceStep rounds a raw step up to the nearest 1, 2, or 5 times a power of
// ten.
func niceStep(raw float64) float64 {
	if raw <= 0 || math.IsInf(raw, 0) || math.IsNaN(raw) {
		return 0
	}
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	switch frac := raw / mag; {
	case frac <= 1:
		return mag
	case frac <= 2:
		return 2 * mag
	case frac <= 5:
		return 5 * mag
	default:
		return 10 * mag
	}
}
