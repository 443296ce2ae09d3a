package flowchart

import (
	"fmt"
	"math"
	"strconv"

	"github.com/fogleman/gg"
	"github.com/google/uuid"
)

// Entity is a placeable flowchart shape.
type Entity interface {
	Type() string
	Name() string
	SetName(name string)
	Title() string
	SetTitle(title string)
	Rect() Rect
	SetRect(r Rect)
	Group() int
	SetGroup(group int)
	Selected() bool
	Select(selected bool)
	MinimumSize() Size
	MaximumSize() Size
	LinkSides() LinkSide

	// Contains reports whether p lies inside the shape's silhouette.
	Contains(p Point) bool
	HitCode(p Point) HitCode
	Clone() Entity
	// String returns the entity's record, the inverse of the factory.
	String() string
	// Draw paints the entity in document units.
	Draw(dc *gg.Context)
}

// entity carries the state every shape shares. Concrete shapes embed it and
// supply the silhouette and drawing.
type entity struct {
	typ      string
	name     string
	title    string
	rect     Rect
	group    int
	selected bool
	minSize  Size
	maxSize  Size // zero means unbounded
	links    LinkSide
	segment  bool // start/end geometry, never normalized
}

const entityFields = 7

func newEntity(typ string, minSize, maxSize Size, links LinkSide) entity {
	return entity{
		typ:     typ,
		name:    newName(),
		minSize: minSize,
		maxSize: maxSize,
		links:   links,
	}
}

func newName() string {
	return uuid.NewString()
}

func (e *entity) Type() string        { return e.typ }
func (e *entity) Name() string        { return e.name }
func (e *entity) SetName(name string) { e.name = name }
func (e *entity) Title() string       { return e.title }
func (e *entity) SetTitle(t string)   { e.title = t }
func (e *entity) Rect() Rect          { return e.rect }
func (e *entity) Group() int          { return e.group }
func (e *entity) SetGroup(g int)      { e.group = g }
func (e *entity) Selected() bool      { return e.selected }
func (e *entity) Select(s bool)       { e.selected = s }
func (e *entity) MinimumSize() Size   { return e.minSize }
func (e *entity) MaximumSize() Size   { return e.maxSize }
func (e *entity) LinkSides() LinkSide { return e.links }

// SetRect normalizes and clamps shapes to their size limits, anchoring the
// top-left corner. Segments are stored as given.
func (e *entity) SetRect(r Rect) {
	if e.segment {
		e.rect = r
		return
	}
	r = r.Normalize()
	if w := clampSize(r.Width(), e.minSize.W, e.maxSize.W); w != r.Width() {
		r.Right = r.Left + w
	}
	if h := clampSize(r.Height(), e.minSize.H, e.maxSize.H); h != r.Height() {
		r.Bottom = r.Top + h
	}
	e.rect = r
}

func clampSize(v, lo, hi float64) float64 {
	if v < lo {
		v = lo
	}
	if hi > 0 && v > hi {
		v = hi
	}
	return v
}

// hit is the shared hit test for shapes: selection markers first, then the
// silhouette.
func (e *entity) hit(p Point, contains func(Point) bool) HitCode {
	r := e.rect.Normalize()
	if e.selected {
		for _, m := range shapeMarkers {
			if onMarker(p, markerPoint(r, m)) {
				return m
			}
		}
	}
	if contains(p) {
		return HitBody
	}
	return HitNone
}

func (e *entity) String() string {
	return formatRecord(e.typ,
		escapeField(e.name),
		formatFloat(e.rect.Left),
		formatFloat(e.rect.Top),
		formatFloat(e.rect.Right),
		formatFloat(e.rect.Bottom),
		escapeField(e.title),
		strconv.Itoa(e.group),
	)
}

// decode fills e from a record of its own type.
func (e *entity) decode(s string) error {
	fields, err := parseRecord(s, e.typ, entityFields)
	if err != nil {
		return err
	}
	coords, err := parseFloats(e.typ, fields[1:5]...)
	if err != nil {
		return err
	}
	for _, c := range coords {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return fmt.Errorf("%w: %s: non-finite coordinate", ErrCorrupt, e.typ)
		}
	}
	group, err := strconv.Atoi(fields[6])
	if err != nil {
		return fmt.Errorf("%w: %s: group: %v", ErrCorrupt, e.typ, err)
	}
	name := unescapeField(fields[0])
	if name == "" {
		return fmt.Errorf("%w: %s: empty name", ErrCorrupt, e.typ)
	}
	e.name = name
	e.title = unescapeField(fields[5])
	e.group = group
	e.SetRect(Rect{coords[0], coords[1], coords[2], coords[3]})
	return nil
}

// cloneBase copies the shared state under a fresh name. Selection is not
// carried over.
func (e *entity) cloneBase() entity {
	c := *e
	c.name = newName()
	c.selected = false
	return c
}
