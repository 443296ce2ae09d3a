package flowchart

import (
	"math"
	"strings"
)

// Viewport maps terminal cells onto document units.
type Viewport struct {
	// Origin is the document point at the top-left corner of cell (0, 0).
	Origin Point
	// CellW and CellH are the document units covered by one cell.
	CellW, CellH float64
}

// Default terminal cell size in document units, matching an 8x16 glyph.
const (
	CellWidth  = 8
	CellHeight = 16
)

// maxCell bounds cell indices so far-off coordinates still convert to int.
const maxCell = 1 << 30

func NewViewport(origin Point, zoom float64) Viewport {
	if zoom <= 0 {
		zoom = 1
	}
	return Viewport{Origin: origin, CellW: CellWidth / zoom, CellH: CellHeight / zoom}
}

// CellCenter returns the document point at the centre of a cell.
func (v Viewport) CellCenter(col, row int) Point {
	return Point{
		X: v.Origin.X + (float64(col)+0.5)*v.CellW,
		Y: v.Origin.Y + (float64(row)+0.5)*v.CellH,
	}
}

// CellRect is the area of a cell. The right and bottom edges belong to the
// next cell.
func (v Viewport) CellRect(col, row int) Rect {
	left := v.Origin.X + float64(col)*v.CellW
	top := v.Origin.Y + float64(row)*v.CellH
	return Rect{left, top, left + v.CellW, top + v.CellH}
}

// CellAt returns the cell that contains p.
func (v Viewport) CellAt(p Point) (int, int) {
	c := v.toCells(p)
	return cellIndex(c.X), cellIndex(c.Y)
}

// toCells converts a document point to fractional cell coordinates.
func (v Viewport) toCells(p Point) Point {
	return Point{(p.X - v.Origin.X) / v.CellW, (p.Y - v.Origin.Y) / v.CellH}
}

func cellIndex(f float64) int {
	switch {
	case math.IsNaN(f):
		return 0
	case f < -maxCell:
		return -maxCell
	case f > maxCell:
		return maxCell
	}
	return int(math.Floor(f))
}

func inCell(p Point, c Rect) bool {
	return p.X >= c.Left && p.X < c.Right && p.Y >= c.Top && p.Y < c.Bottom
}

// Grid is a character raster, indexed [row][col].
type Grid [][]rune

func NewGrid(width, height int) Grid {
	g := make(Grid, height)
	for y := range g {
		g[y] = []rune(strings.Repeat(" ", width))
	}
	return g
}

func (g Grid) Width() int {
	if len(g) == 0 {
		return 0
	}
	return len(g[0])
}

func (g Grid) inBounds(col, row int) bool {
	return row >= 0 && row < len(g) && col >= 0 && col < len(g[row])
}

func (g Grid) Set(col, row int, r rune) {
	if g.inBounds(col, row) {
		g[row][col] = r
	}
}

func (g Grid) At(col, row int) rune {
	if g.inBounds(col, row) {
		return g[row][col]
	}
	return 0
}

func (g Grid) Lines() []string {
	out := make([]string, len(g))
	for i, row := range g {
		out[i] = string(row)
	}
	return out
}

// Rasterize draws e into g. Shapes are traced from their silhouette, so the
// terminal shows the same outline the hit test uses. Only cells inside the
// grid are visited.
func Rasterize(g Grid, v Viewport, e Entity) {
	if s, ok := e.(Segment); ok {
		rasterizeSegment(g, v, s)
		return
	}
	r := e.Rect().Normalize()
	c0, r0 := v.CellAt(Point{r.Left, r.Top})
	c1, r1 := v.CellAt(Point{r.Right, r.Bottom})

	square, borderless := false, false
	switch e.(type) {
	case *Box:
		square = true
	case *Label:
		borderless = true
	}
	if borderless {
		if e.Selected() {
			markCorners(g, v, r)
		}
		rasterizeTitle(g, c0, r0, c1, r1, e.Title())
		return
	}

	inside := func(col, row int) bool {
		return e.Contains(v.CellCenter(col, row))
	}
	for row := max(r0, 0); row <= min(r1, len(g)-1); row++ {
		for col := max(c0, 0); col <= min(c1, g.Width()-1); col++ {
			if !inside(col, row) {
				continue
			}
			up, down := !inside(col, row-1), !inside(col, row+1)
			left, right := !inside(col-1, row), !inside(col+1, row)
			ch := borderRune(up, down, left, right, square)
			if ch == 0 {
				g.Set(col, row, ' ')
				continue
			}
			if e.Selected() {
				ch = '#'
			}
			g.Set(col, row, ch)
		}
	}
	rasterizeTitle(g, c0, r0, c1, r1, e.Title())
}

// markCorners shows the selection of an entity that draws no border: a '#'
// in each corner cell whose centre lies inside r.
func markCorners(g Grid, v Viewport, r Rect) {
	left, top := v.CellAt(Point{r.Left + v.CellW/2, r.Top + v.CellH/2})
	right, bottom := v.CellAt(Point{r.Right - v.CellW/2, r.Bottom - v.CellH/2})
	if right < left || bottom < top {
		return
	}
	for _, c := range [][2]int{{left, top}, {right, top}, {left, bottom}, {right, bottom}} {
		g.Set(c[0], c[1], '#')
	}
}

func borderRune(up, down, left, right, square bool) rune {
	switch {
	case !up && !down && !left && !right:
		return 0
	case square && (up || down) && (left || right):
		return '+'
	case (up && left) || (down && right):
		return '/'
	case (up && right) || (down && left):
		return '\\'
	case up || down:
		return '-'
	default:
		return '|'
	}
}

func rasterizeTitle(g Grid, c0, r0, c1, r1 int, title string) {
	if title == "" {
		return
	}
	lines := strings.Split(title, "\n")
	width := c1 - c0 - 1
	if width < 1 {
		width = c1 - c0 + 1
	}
	rows := r1 - r0 - 1
	if rows < 1 {
		rows = 1
	}
	if len(lines) > rows {
		lines = lines[:rows]
	}
	top := (r0+r1)/2 - (len(lines)-1)/2
	for i, line := range lines {
		runes := []rune(line)
		if len(runes) > width {
			runes = runes[:width]
		}
		start := (c0+c1+1)/2 - len(runes)/2
		for j, ch := range runes {
			g.Set(start+j, top+i, ch)
		}
	}
}

// cellSegment is a segment in fractional cell coordinates. Along its major
// axis it crosses one cell per column (or row); the minor cell is the one
// the segment passes through at that cell's centre line.
type cellSegment struct {
	a, b       Point
	du, dv     float64
	horizontal bool
}

func newCellSegment(v Viewport, s Segment) cellSegment {
	a, b := v.toCells(s.Start()), v.toCells(s.End())
	du, dv := b.X-a.X, b.Y-a.Y
	return cellSegment{a: a, b: b, du: du, dv: dv, horizontal: math.Abs(du) >= math.Abs(dv)}
}

func (c cellSegment) start() (int, int) { return cellIndex(c.a.X), cellIndex(c.a.Y) }
func (c cellSegment) end() (int, int)   { return cellIndex(c.b.X), cellIndex(c.b.Y) }

// span is the range of major-axis cells the segment covers.
func (c cellSegment) span() (int, int) {
	a, b := c.a.Y, c.b.Y
	if c.horizontal {
		a, b = c.a.X, c.b.X
	}
	return cellIndex(math.Min(a, b)), cellIndex(math.Max(a, b))
}

// minorAt returns the minor-axis cell crossed at major-axis cell i.
func (c cellSegment) minorAt(i int) int {
	a0, a1, d0, d1 := c.a.Y, c.a.X, c.dv, c.du
	if c.horizontal {
		a0, a1, d0, d1 = c.a.X, c.a.Y, c.du, c.dv
	}
	if d0 == 0 {
		return cellIndex(a1)
	}
	t := math.Max(0, math.Min(1, (float64(i)+0.5-a0)/d0))
	return cellIndex(a1 + d1*t)
}

// cell maps a major/minor pair back to (col, row).
func (c cellSegment) cell(major, minor int) (int, int) {
	if c.horizontal {
		return major, minor
	}
	return minor, major
}

// covers reports whether the segment is drawn through (col, row).
func (c cellSegment) covers(col, row int) bool {
	if sc, sr := c.start(); sc == col && sr == row {
		return true
	}
	if ec, er := c.end(); ec == col && er == row {
		return true
	}
	major, minor := col, row
	if !c.horizontal {
		major, minor = row, col
	}
	lo, hi := c.span()
	return major >= lo && major <= hi && c.minorAt(major) == minor
}

func rasterizeSegment(g Grid, v Viewport, s Segment) {
	c := newCellSegment(v, s)
	ch := segmentRune(c.du, c.dv)
	dashed := s.Type() == TypeLine
	if s.Selected() {
		ch = '#'
	}
	limit := len(g) - 1
	if c.horizontal {
		limit = g.Width() - 1
	}
	lo, hi := c.span()
	first, _ := c.start()
	if !c.horizontal {
		_, first = c.start()
	}
	for i := max(lo, 0); i <= min(hi, limit); i++ {
		if dashed && abs(i-first)%4 >= 2 {
			continue
		}
		col, row := c.cell(i, c.minorAt(i))
		g.Set(col, row, ch)
	}
	sc, sr := c.start()
	g.Set(sc, sr, ch)
	if s.Type() == TypeLinkableLine && (c.du != 0 || c.dv != 0) {
		ec, er := c.end()
		g.Set(ec, er, arrowRune(c.du, c.dv))
	}
}

func segmentRune(du, dv float64) rune {
	adu, adv := math.Abs(du), math.Abs(dv)
	switch {
	case dv == 0:
		return '-'
	case du == 0:
		return '|'
	case adu > 2*adv:
		return '-'
	case adv*2 > adu*3:
		return '|'
	case (du > 0) == (dv > 0):
		return '\\'
	default:
		return '/'
	}
}

func arrowRune(du, dv float64) rune {
	if math.Abs(du) >= math.Abs(dv) {
		if du > 0 {
			return '>'
		}
		return '<'
	}
	if dv > 0 {
		return 'v'
	}
	return '^'
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// HitTestCell returns the top-most entity drawn in a terminal cell, and
// where the cell hit it. Segments are matched against the cells they are
// drawn through, and selection markers against the whole cell, so every
// visible part of an entity can be picked from the keyboard.
func (d *Document) HitTestCell(v Viewport, col, row int) (Entity, HitCode) {
	area := v.CellRect(col, row)
	centre := v.CellCenter(col, row)
	for i := len(d.entities) - 1; i >= 0; i-- {
		e := d.entities[i]
		if s, ok := e.(Segment); ok {
			c := newCellSegment(v, s)
			if s.Selected() {
				if sc, sr := c.start(); sc == col && sr == row {
					return e, HitTopLeft
				}
				if ec, er := c.end(); ec == col && er == row {
					return e, HitBottomRight
				}
			}
			if c.covers(col, row) {
				return e, HitBody
			}
			continue
		}
		if e.Selected() {
			r := e.Rect().Normalize()
			for _, m := range shapeMarkers {
				if inCell(markerPoint(r, m), area) {
					return e, m
				}
			}
		}
		if code := e.HitCode(centre); code != HitNone {
			return e, code
		}
	}
	return nil, HitNone
}
