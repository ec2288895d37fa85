// Package forest renders a report as a forest plot.
//
// The plot puts posterior mean on the X axis with a horizontal error bar
// spanning mean-SD to mean+SD, and one labeled row per report entry on the
// Y axis, top to bottom in report order. The X axis always covers the full
// span of every mean±SD interval.
//
// Rendering produces an image.Image; RenderPNG encodes it directly to a
// writer. Labels are drawn with the basicfont face from golang.org/x/image,
// so plots have no font-file dependencies.
package forest
