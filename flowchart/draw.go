package flowchart

import (
	"image/color"

	"github.com/fogleman/gg"
)

const (
	strokeWidth = 1.0
	titleMargin = 4.0
)

var (
	inkColor  = color.Black
	fillColor = color.White
)

// fillAndStroke paints the current path white with a black outline.
func fillAndStroke(dc *gg.Context) {
	dc.SetColor(fillColor)
	dc.FillPreserve()
	dc.SetColor(inkColor)
	dc.SetLineWidth(strokeWidth)
	dc.Stroke()
}

// drawTitle centres title inside r, wrapping to the available width.
func drawTitle(dc *gg.Context, r Rect, title string) {
	if title == "" {
		return
	}
	r = r.Normalize()
	c := r.Center()
	width := r.Width() - 2*titleMargin
	if width < 1 {
		width = 1
	}
	dc.SetColor(inkColor)
	dc.DrawStringWrapped(title, c.X, c.Y, 0.5, 0.5, width, 1.2, gg.AlignCenter)
}

func drawPolygon(dc *gg.Context, pts []Point) {
	if len(pts) == 0 {
		return
	}
	dc.NewSubPath()
	dc.MoveTo(pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		dc.LineTo(p.X, p.Y)
	}
	dc.ClosePath()
}
