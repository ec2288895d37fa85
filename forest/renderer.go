package forest

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"strconv"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/tsawler/posterior/model"
)

// Renderer draws forest plots from reports.
type Renderer struct {
	// Width is the total image width in pixels.
	Width int

	// Height is the total image height in pixels. Zero means size to the
	// report: RowHeight per row plus margins and the axis strip.
	Height int

	// RowHeight is the vertical space per report row when Height is zero.
	RowHeight int

	// Margin is the padding around the plot area.
	Margin int

	// DotRadius is the half-width of the square marker at each mean.
	DotRadius int

	// ZeroLine draws a vertical reference line at x=0 when zero falls
	// inside the axis range.
	ZeroLine bool

	// Colors.
	Background color.Color
	Axis       color.Color
	Bar        color.Color
	Dot        color.Color
	Label      color.Color
}

// NewRenderer creates a renderer with default geometry and a plain
// black-on-white palette.
func NewRenderer() *Renderer {
	return &Renderer{
		Width:      800,
		RowHeight:  28,
		Margin:     16,
		DotRadius:  3,
		ZeroLine:   true,
		Background: color.White,
		Axis:       color.Gray{Y: 0x60},
		Bar:        color.Black,
		Dot:        color.RGBA{R: 0xB2, G: 0x22, B: 0x22, A: 0xFF},
		Label:      color.Black,
	}
}

const (
	glyphWidth  = 7  // basicfont.Face7x13 advance
	glyphHeight = 13 // basicfont.Face7x13 height
	axisStrip   = 30 // vertical space under the plot for ticks and labels
	whiskerHalf = 4  // half-height of the error bar end caps
)

// Render draws the report as a forest plot: one row per report entry, top
// to bottom in report order, each with a mean marker and a mean±SD error
// bar. Fails on an empty report.
func (r *Renderer) Render(rep *model.Report) (image.Image, error) {
	if rep == nil || rep.Len() == 0 {
		return nil, fmt.Errorf("%w: nothing to plot", model.ErrEmptyReport)
	}

	labelW := 0
	for _, row := range rep.Rows {
		if w := len(row.Name) * glyphWidth; w > labelW {
			labelW = w
		}
	}

	width := r.Width
	if width <= 0 {
		width = 800
	}
	height := r.Height
	if height <= 0 {
		height = 2*r.Margin + rep.Len()*r.RowHeight + axisStrip
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(r.Background), image.Point{}, draw.Src)

	plotX0 := r.Margin + labelW + 2*glyphWidth
	plotX1 := width - r.Margin
	plotY0 := r.Margin
	plotY1 := height - r.Margin - axisStrip
	if plotX1 <= plotX0 || plotY1 <= plotY0 {
		return nil, fmt.Errorf("plot area is empty: %dx%d image is too small", width, height)
	}

	scale := newAxisScale(rep, plotX0, plotX1)

	// Frame: baseline under the rows, ticks and labels below it.
	r.hline(img, plotX0, plotX1, plotY1, r.Axis)
	for _, tick := range scale.ticks(6) {
		x := scale.pos(tick)
		r.vline(img, x, plotY1, plotY1+4, r.Axis)
		label := strconv.FormatFloat(tick, 'g', 4, 64)
		r.text(img, x-len(label)*glyphWidth/2, plotY1+6+glyphHeight, label, r.Axis)
	}
	if r.ZeroLine && scale.contains(0) {
		r.vline(img, scale.pos(0), plotY0, plotY1, r.Axis)
	}

	rowSpan := (plotY1 - plotY0) / rep.Len()
	for i, row := range rep.Rows {
		y := plotY0 + i*rowSpan + rowSpan/2

		x0 := scale.pos(row.Mean - row.SD)
		x1 := scale.pos(row.Mean + row.SD)
		r.hline(img, x0, x1, y, r.Bar)
		r.vline(img, x0, y-whiskerHalf, y+whiskerHalf, r.Bar)
		r.vline(img, x1, y-whiskerHalf, y+whiskerHalf, r.Bar)

		xm := scale.pos(row.Mean)
		for dy := -r.DotRadius; dy <= r.DotRadius; dy++ {
			r.hline(img, xm-r.DotRadius, xm+r.DotRadius, y+dy, r.Dot)
		}

		r.text(img, r.Margin, y+glyphHeight/2-2, row.Name, r.Label)
	}

	return img, nil
}

// RenderPNG renders the report and PNG-encodes it to w.
func (r *Renderer) RenderPNG(w io.Writer, rep *model.Report) error {
	img, err := r.Render(rep)
	if err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encoding forest plot: %w", err)
	}
	return nil
}

func (r *Renderer) hline(img *image.RGBA, x0, x1, y int, c color.Color) {
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	for x := x0; x <= x1; x++ {
		img.Set(x, y, c)
	}
}

func (r *Renderer) vline(img *image.RGBA, x, y0, y1 int, c color.Color) {
	if y1 < y0 {
		y0, y1 = y1, y0
	}
	for y := y0; y <= y1; y++ {
		img.Set(x, y, c)
	}
}

func (r *Renderer) text(img *image.RGBA, x, y int, s string, c color.Color) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}
