package flowchart

import (
	"math"

	"github.com/fogleman/gg"
)

const (
	TypeLine         = "flowchart_line"
	TypeLinkableLine = "flowchart_arrow"

	// lineSlack is how far from the line a point may be and still hit.
	lineSlack = 4
	arrowSize = 8
)

// segment is the shared state of both line kinds. Start is (Left, Top), end
// is (Right, Bottom).
type segment struct {
	entity
}

func newSegment(typ string, links LinkSide) segment {
	e := newEntity(typ, Size{}, Size{}, links)
	e.segment = true
	return segment{entity: e}
}

func (s *segment) Start() Point { return Point{s.rect.Left, s.rect.Top} }
func (s *segment) End() Point   { return Point{s.rect.Right, s.rect.Bottom} }

func (s *segment) SetStart(p Point) {
	s.rect.Left, s.rect.Top = p.X, p.Y
}

func (s *segment) SetEnd(p Point) {
	s.rect.Right, s.rect.Bottom = p.X, p.Y
}

// Contains reports whether p lies within the hit slack of the segment.
func (s *segment) Contains(p Point) bool {
	return segmentHit(p, s.Start(), s.End(), lineSlack)
}

// HitCode only knows the two end markers; a segment has no corners.
func (s *segment) HitCode(p Point) HitCode {
	if s.selected {
		if onMarker(p, s.Start()) {
			return HitTopLeft
		}
		if onMarker(p, s.End()) {
			return HitBottomRight
		}
	}
	if s.Contains(p) {
		return HitBody
	}
	return HitNone
}

// segmentHit projects p onto ab and compares the per-axis distance to the
// nearest point with slack. Coordinates are scaled by the longer side first
// so the products stay finite for very long segments.
func segmentHit(p, a, b Point, slack float64) bool {
	dx, dy := b.X-a.X, b.Y-a.Y
	t := 0.0
	if scale := math.Max(math.Abs(dx), math.Abs(dy)); scale > 0 && !math.IsInf(scale, 0) {
		ux, uy := dx/scale, dy/scale
		wx, wy := (p.X-a.X)/scale, (p.Y-a.Y)/scale
		t = math.Max(0, math.Min(1, (wx*ux+wy*uy)/(ux*ux+uy*uy)))
	}
	qx, qy := a.X+dx*t, a.Y+dy*t
	return math.Abs(p.X-qx) <= slack && math.Abs(p.Y-qy) <= slack
}

// LineSegment is a dashed, unlinkable line.
type LineSegment struct {
	segment
}

func NewLineSegment() *LineSegment {
	return &LineSegment{segment: newSegment(TypeLine, LinkNone)}
}

func LineSegmentFromString(s string) (*LineSegment, error) {
	l := NewLineSegment()
	if err := l.decode(s); err != nil {
		return nil, err
	}
	return l, nil
}

func (l *LineSegment) Clone() Entity {
	return &LineSegment{segment: segment{entity: l.cloneBase()}}
}

func (l *LineSegment) Draw(dc *gg.Context) {
	a, b := l.Start(), l.End()
	dc.SetColor(inkColor)
	dc.SetLineWidth(strokeWidth)
	dc.SetDash(6, 4)
	dc.DrawLine(a.X, a.Y, b.X, b.Y)
	dc.Stroke()
	dc.SetDash()
}

// LinkableLineSegment is a solid arrow that can be linked at either end.
type LinkableLineSegment struct {
	segment
}

func NewLinkableLineSegment() *LinkableLineSegment {
	return &LinkableLineSegment{segment: newSegment(TypeLinkableLine, LinkStart|LinkEnd)}
}

func LinkableLineSegmentFromString(s string) (*LinkableLineSegment, error) {
	l := NewLinkableLineSegment()
	if err := l.decode(s); err != nil {
		return nil, err
	}
	return l, nil
}

func (l *LinkableLineSegment) Clone() Entity {
	return &LinkableLineSegment{segment: segment{entity: l.cloneBase()}}
}

func (l *LinkableLineSegment) Draw(dc *gg.Context) {
	a, b := l.Start(), l.End()
	dc.SetColor(inkColor)
	dc.SetLineWidth(strokeWidth)
	dc.DrawLine(a.X, a.Y, b.X, b.Y)
	dc.Stroke()
	drawArrowHead(dc, a, b)
}

func drawArrowHead(dc *gg.Context, from, to Point) {
	dx, dy := to.X-from.X, to.Y-from.Y
	length := math.Hypot(dx, dy)
	if length < 0.1 {
		return
	}
	dx /= length
	dy /= length
	spread := 0.5
	drawPolygon(dc, []Point{
		to,
		{to.X - arrowSize*dx + arrowSize*dy*spread, to.Y - arrowSize*dy - arrowSize*dx*spread},
		{to.X - arrowSize*dx - arrowSize*dy*spread, to.Y - arrowSize*dy + arrowSize*dx*spread},
	})
	dc.Fill()
}

// Segment is implemented by both line kinds.
type Segment interface {
	Entity
	Start() Point
	End() Point
	SetStart(p Point)
	SetEnd(p Point)
}
