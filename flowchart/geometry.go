// Package flowchart holds the flowchart entity family: the shapes a user
// places on a canvas, their hit testing and string records, the factory that
// rebuilds them from records, and the document that owns them and their links.
package flowchart

import "math"

type Point struct {
	X, Y float64
}

func (p Point) Offset(dx, dy float64) Point {
	return Point{p.X + dx, p.Y + dy}
}

type Size struct {
	W, H float64
}

// Rect is stored as given. Shapes keep it normalized, line segments keep
// their start in Left/Top and their end in Right/Bottom.
type Rect struct {
	Left, Top, Right, Bottom float64
}

func NewRect(x, y, w, h float64) Rect {
	return Rect{Left: x, Top: y, Right: x + w, Bottom: y + h}
}

func (r Rect) Normalize() Rect {
	if r.Left > r.Right {
		r.Left, r.Right = r.Right, r.Left
	}
	if r.Top > r.Bottom {
		r.Top, r.Bottom = r.Bottom, r.Top
	}
	return r
}

func (r Rect) Width() float64  { return r.Right - r.Left }
func (r Rect) Height() float64 { return r.Bottom - r.Top }

func (r Rect) Center() Point {
	return Point{(r.Left + r.Right) / 2, (r.Top + r.Bottom) / 2}
}

// Contains is inclusive on all edges and expects a normalized rect.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Left && p.X <= r.Right && p.Y >= r.Top && p.Y <= r.Bottom
}

func (r Rect) Offset(dx, dy float64) Rect {
	return Rect{r.Left + dx, r.Top + dy, r.Right + dx, r.Bottom + dy}
}

func (r Rect) Union(o Rect) Rect {
	r = r.Normalize()
	o = o.Normalize()
	return Rect{
		Left:   math.Min(r.Left, o.Left),
		Top:    math.Min(r.Top, o.Top),
		Right:  math.Max(r.Right, o.Right),
		Bottom: math.Max(r.Bottom, o.Bottom),
	}
}

func (r Rect) Inflate(d float64) Rect {
	return Rect{r.Left - d, r.Top - d, r.Right + d, r.Bottom + d}
}

func distance(a, b Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// pointInPolygon uses the even-odd crossing rule. Points exactly on an edge
// count as inside.
func pointInPolygon(p Point, poly []Point) bool {
	n := len(poly)
	if n < 3 {
		return false
	}
	inside := false
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a, b := poly[i], poly[j]
		if onSegment(p, a, b) {
			return true
		}
		if (a.Y > p.Y) != (b.Y > p.Y) {
			x := (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y) + a.X
			if p.X < x {
				inside = !inside
			}
		}
	}
	return inside
}

func onSegment(p, a, b Point) bool {
	cross := (b.X-a.X)*(p.Y-a.Y) - (b.Y-a.Y)*(p.X-a.X)
	if math.Abs(cross) > 1e-9 {
		return false
	}
	return p.X >= math.Min(a.X, b.X)-1e-9 && p.X <= math.Max(a.X, b.X)+1e-9 &&
		p.Y >= math.Min(a.Y, b.Y)-1e-9 && p.Y <= math.Max(a.Y, b.Y)+1e-9
}

// inEllipse tests against the ellipse inscribed in r.
func inEllipse(p Point, r Rect) bool {
	rx, ry := r.Width()/2, r.Height()/2
	if rx <= 0 || ry <= 0 {
		return false
	}
	c := r.Center()
	dx, dy := (p.X-c.X)/rx, (p.Y-c.Y)/ry
	return dx*dx+dy*dy <= 1
}

// inRoundedRect tests against a rectangle whose corners are rounded with
// the given radius.
func inRoundedRect(p Point, r Rect, radius float64) bool {
	if !r.Contains(p) {
		return false
	}
	radius = math.Min(radius, math.Min(r.Width(), r.Height())/2)
	if radius <= 0 {
		return true
	}
	cx := math.Max(r.Left+radius, math.Min(p.X, r.Right-radius))
	cy := math.Max(r.Top+radius, math.Min(p.Y, r.Bottom-radius))
	return distance(p, Point{cx, cy}) <= radius
}

// snap rounds v to the nearest multiple of grid.
func snap(v, grid float64) float64 {
	if grid <= 0 {
		return v
	}
	return math.Round(v/grid) * grid
}
