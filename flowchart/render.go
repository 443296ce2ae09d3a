package flowchart

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"go.uber.org/zap"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
)

var ErrNothingToExport = errors.New("nothing to export")

type RenderOptions struct {
	// Scale multiplies document units into pixels.
	Scale    float64
	Padding  float64
	FontSize float64
	// Grid draws the document grid behind the entities.
	Grid bool
}

func DefaultRenderOptions() RenderOptions {
	return RenderOptions{Scale: 1, Padding: 16, FontSize: 12}
}

func loadFace(size float64) (font.Face, error) {
	ttf, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	return truetype.NewFace(ttf, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	}), nil
}

// RenderImage draws every entity onto a white image sized to the document
// bounds plus padding.
func (d *Document) RenderImage(opts RenderOptions) (image.Image, error) {
	bounds, ok := d.Bounds()
	if !ok {
		return nil, ErrNothingToExport
	}
	if opts.Scale <= 0 {
		opts.Scale = 1
	}
	if opts.FontSize <= 0 {
		opts.FontSize = 12
	}
	bounds = bounds.Inflate(opts.Padding)
	width := int(math.Ceil(bounds.Width() * opts.Scale))
	height := int(math.Ceil(bounds.Height() * opts.Scale))
	if width < 1 || height < 1 {
		return nil, ErrNothingToExport
	}

	dc := gg.NewContext(width, height)
	dc.SetColor(color.White)
	dc.Clear()

	face, err := loadFace(opts.FontSize)
	if err != nil {
		return nil, err
	}
	dc.SetFontFace(face)

	dc.Scale(opts.Scale, opts.Scale)
	dc.Translate(-bounds.Left, -bounds.Top)
	if opts.Grid {
		d.drawGrid(dc, bounds)
	}
	for _, e := range d.entities {
		dc.Push()
		e.Draw(dc)
		dc.Pop()
	}
	return dc.Image(), nil
}

func (d *Document) drawGrid(dc *gg.Context, bounds Rect) {
	step := d.GridSize
	if step <= 0 {
		return
	}
	dc.SetColor(color.Gray{Y: 0xd0})
	for x := math.Floor(bounds.Left/step) * step; x <= bounds.Right; x += step {
		for y := math.Floor(bounds.Top/step) * step; y <= bounds.Bottom; y += step {
			dc.DrawPoint(x, y, 0.75)
		}
	}
	dc.Fill()
}

// ExportPNG renders the document to a PNG file.
func (d *Document) ExportPNG(path string, opts RenderOptions) error {
	img, err := d.RenderImage(opts)
	if err != nil {
		return err
	}
	if err := gg.SavePNG(path, img); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	d.logger.Info("exported png", zap.String("path", path),
		zap.Int("width", img.Bounds().Dx()), zap.Int("height", img.Bounds().Dy()))
	return nil
}

// RenderText rasterizes the part of the document under the viewport into
// width x height cells.
func (d *Document) RenderText(width, height int, v Viewport) []string {
	if width < 1 || height < 1 {
		return nil
	}
	g := NewGrid(width, height)
	if d.ShowGrid {
		d.rasterizeGrid(g, v)
	}
	for _, e := range d.entities {
		Rasterize(g, v, e)
	}
	return g.Lines()
}

func (d *Document) rasterizeGrid(g Grid, v Viewport) {
	step := d.GridSize
	if step <= 0 {
		return
	}
	hasPoint := func(lo, hi float64) bool {
		return math.Ceil(lo/step)*step < hi
	}
	for row := range g {
		top := v.Origin.Y + float64(row)*v.CellH
		if !hasPoint(top, top+v.CellH) {
			continue
		}
		for col := range g[row] {
			left := v.Origin.X + float64(col)*v.CellW
			if hasPoint(left, left+v.CellW) {
				g[row][col] = '·'
			}
		}
	}
}
