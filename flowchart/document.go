package flowchart

import (
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"
)

const (
	DefaultGridSize = 16
	MinZoom         = 0.25
	MaxZoom         = 4.0
	ZoomStep        = 0.25
)

var (
	ErrNotLinkable    = errors.New("no free link sides")
	ErrAlreadyLinked  = errors.New("entities are already linked")
	ErrSelection      = errors.New("select exactly two entities")
	ErrUnknownEntity  = errors.New("unknown entity")
	ErrNothingToPaste = errors.New("nothing to paste")
)

// defaultSizes is the size a freshly inserted entity gets. Segments use the
// width as their horizontal run.
var defaultSizes = map[string]Size{
	TypeTerminator:   {96, 32},
	TypeBox:          {96, 48},
	TypeCondition:    {96, 64},
	TypeConnector:    {connectorSize, connectorSize},
	TypeIO:           {96, 48},
	TypeLabel:        {96, 32},
	TypeLine:         {96, 0},
	TypeLinkableLine: {96, 0},
}

// Document owns the entities on a canvas, in z-order, and the links between
// them.
type Document struct {
	entities []Entity
	links    []Link
	factory  *Factory
	logger   *zap.Logger

	GridSize float64
	ShowGrid bool
	Snap     bool
	Zoom     float64
}

type Option func(*Document)

func WithLogger(l *zap.Logger) Option {
	return func(d *Document) {
		if l != nil {
			d.logger = l
		}
	}
}

func WithFactory(f *Factory) Option {
	return func(d *Document) {
		if f != nil {
			d.factory = f
		}
	}
}

func WithGrid(size float64, show, snap bool) Option {
	return func(d *Document) {
		if size > 0 {
			d.GridSize = size
		}
		d.ShowGrid = show
		d.Snap = snap
	}
}

func NewDocument(opts ...Option) *Document {
	d := &Document{
		factory:  NewFactory(),
		logger:   zap.NewNop(),
		GridSize: DefaultGridSize,
		Zoom:     1,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *Document) Factory() *Factory { return d.factory }

// Entities returns the entities bottom-most first.
func (d *Document) Entities() []Entity {
	return append([]Entity(nil), d.entities...)
}

func (d *Document) Links() []Link {
	return append([]Link(nil), d.links...)
}

func (d *Document) Len() int { return len(d.entities) }

func (d *Document) Empty() bool { return len(d.entities) == 0 }

func (d *Document) index(name string) int {
	for i, e := range d.entities {
		if e.Name() == name {
			return i
		}
	}
	return -1
}

func (d *Document) Find(name string) Entity {
	if i := d.index(name); i >= 0 {
		return d.entities[i]
	}
	return nil
}

// Add places e on top. A clashing name is replaced with a fresh one.
func (d *Document) Add(e Entity) {
	if e.Name() == "" || d.index(e.Name()) >= 0 {
		e.SetName(newName())
	}
	d.entities = append(d.entities, e)
}

// Insert creates an entity of the given type with its default size, its
// top-left corner (or start point) at p.
func (d *Document) Insert(typ string, p Point) (Entity, error) {
	e, err := d.factory.New(typ)
	if err != nil {
		return nil, err
	}
	p = d.snapPoint(p)
	size, ok := defaultSizes[typ]
	if !ok {
		size = e.MinimumSize()
	}
	e.SetRect(NewRect(p.X, p.Y, size.W, size.H))
	d.Add(e)
	d.logger.Debug("inserted entity", zap.String("type", typ), zap.String("name", e.Name()))
	return e, nil
}

// Remove deletes the named entity and every link touching it.
func (d *Document) Remove(name string) bool {
	i := d.index(name)
	if i < 0 {
		return false
	}
	d.entities = append(d.entities[:i], d.entities[i+1:]...)
	links := d.links[:0]
	for _, l := range d.links {
		if !l.Involves(name) {
			links = append(links, l)
		}
	}
	d.links = links
	return true
}

func (d *Document) Clear() {
	d.entities = nil
	d.links = nil
}

// HitTest returns the top-most entity under p and where p hit it.
func (d *Document) HitTest(p Point) (Entity, HitCode) {
	for i := len(d.entities) - 1; i >= 0; i-- {
		if code := d.entities[i].HitCode(p); code != HitNone {
			return d.entities[i], code
		}
	}
	return nil, HitNone
}

func (d *Document) Selected() []Entity {
	var out []Entity
	for _, e := range d.entities {
		if e.Selected() {
			out = append(out, e)
		}
	}
	return out
}

func (d *Document) SelectAll() {
	for _, e := range d.entities {
		e.Select(true)
	}
}

func (d *Document) ClearSelection() {
	for _, e := range d.entities {
		e.Select(false)
	}
}

// SelectOnly clears the selection and selects e.
func (d *Document) SelectOnly(e Entity) {
	d.ClearSelection()
	if e != nil {
		e.Select(true)
	}
}

func (d *Document) DeleteSelected() int {
	n := 0
	for _, e := range d.Selected() {
		if d.Remove(e.Name()) {
			n++
		}
	}
	return n
}

// BringToFront moves e to the top of the z-order.
func (d *Document) BringToFront(e Entity) {
	i := d.index(e.Name())
	if i < 0 || i == len(d.entities)-1 {
		return
	}
	d.entities = append(append(d.entities[:i], d.entities[i+1:]...), e)
}

func (d *Document) snapPoint(p Point) Point {
	if !d.Snap {
		return p
	}
	return Point{snap(p.X, d.GridSize), snap(p.Y, d.GridSize)}
}

// Move offsets e. With snapping on, its anchor lands on the grid.
func (d *Document) Move(e Entity, dx, dy float64) {
	r := e.Rect()
	moved := r.Offset(dx, dy)
	if d.Snap {
		anchor := d.snapPoint(Point{moved.Left, moved.Top})
		moved = r.Offset(anchor.X-r.Left, anchor.Y-r.Top)
	}
	e.SetRect(moved)
	d.adjustLinkedLines()
}

func (d *Document) MoveSelected(dx, dy float64) {
	for _, e := range d.Selected() {
		d.Move(e, dx, dy)
	}
}

// Resize drags the edge or corner named by the marker code by (dx, dy).
// For segments, HitTopLeft drags the start and HitBottomRight the end.
func (d *Document) Resize(e Entity, code HitCode, dx, dy float64) {
	r := e.Rect()
	left, top, right, bottom := false, false, false, false
	switch code {
	case HitTopLeft:
		left, top = true, true
	case HitTopMiddle:
		top = true
	case HitTopRight:
		top, right = true, true
	case HitLeftMiddle:
		left = true
	case HitRightMiddle:
		right = true
	case HitBottomLeft:
		bottom, left = true, true
	case HitBottomMiddle:
		bottom = true
	case HitBottomRight, HitBody:
		bottom, right = true, true
	default:
		return
	}
	if _, ok := e.(Segment); ok {
		// segments have no middle markers
		if code != HitTopLeft {
			left, top, right, bottom = false, false, true, true
		}
	}
	if left {
		r.Left = d.snapValue(r.Left + dx)
	}
	if right {
		r.Right = d.snapValue(r.Right + dx)
	}
	if top {
		r.Top = d.snapValue(r.Top + dy)
	}
	if bottom {
		r.Bottom = d.snapValue(r.Bottom + dy)
	}
	if _, ok := e.(Segment); !ok {
		// SetRect clamps from the top-left, so hold the far edge when a
		// left or top marker runs into a size limit.
		minSize, maxSize := e.MinimumSize(), e.MaximumSize()
		if left && r.Left <= r.Right {
			r.Left = r.Right - clampSize(r.Right-r.Left, minSize.W, maxSize.W)
		}
		if top && r.Top <= r.Bottom {
			r.Top = r.Bottom - clampSize(r.Bottom-r.Top, minSize.H, maxSize.H)
		}
	}
	e.SetRect(r)
	d.adjustLinkedLines()
}

func (d *Document) snapValue(v float64) float64 {
	if !d.Snap {
		return v
	}
	return snap(v, d.GridSize)
}

// usedSides returns the sides of the named entity already taken by links.
func (d *Document) usedSides(name string) LinkSide {
	var used LinkSide
	for _, l := range d.links {
		if l.From == name {
			used |= l.FromSide
		}
		if l.To == name {
			used |= l.ToSide
		}
	}
	return used
}

// Link joins a and b through the closest pair of free, permitted sides.
func (d *Document) Link(a, b Entity) (Link, error) {
	if a == nil || b == nil || d.index(a.Name()) < 0 || d.index(b.Name()) < 0 {
		return Link{}, ErrUnknownEntity
	}
	if a.Name() == b.Name() {
		return Link{}, fmt.Errorf("%w: cannot link an entity to itself", ErrNotLinkable)
	}
	for _, l := range d.links {
		if l.Joins(a.Name(), b.Name()) {
			return Link{}, ErrAlreadyLinked
		}
	}
	freeA := a.LinkSides() &^ d.usedSides(a.Name())
	freeB := b.LinkSides() &^ d.usedSides(b.Name())
	best := math.Inf(1)
	var link Link
	for _, sa := range freeA.Sides() {
		pa, _ := LinkPoint(a, sa)
		for _, sb := range freeB.Sides() {
			pb, _ := LinkPoint(b, sb)
			if dist := distance(pa, pb); dist < best {
				best = dist
				link = Link{From: a.Name(), To: b.Name(), FromSide: sa, ToSide: sb}
			}
		}
	}
	if math.IsInf(best, 1) {
		return Link{}, ErrNotLinkable
	}
	d.links = append(d.links, link)
	d.adjustLinkedLines()
	d.logger.Debug("linked entities",
		zap.String("from", link.From), zap.Stringer("fromSide", link.FromSide),
		zap.String("to", link.To), zap.Stringer("toSide", link.ToSide))
	return link, nil
}

// LinkSelected links the two selected entities, in z-order.
func (d *Document) LinkSelected() (Link, error) {
	sel := d.Selected()
	if len(sel) != 2 {
		return Link{}, ErrSelection
	}
	return d.Link(sel[0], sel[1])
}

// AddLink restores a link as given. Both endpoints must exist and permit
// their sides.
func (d *Document) AddLink(l Link) error {
	from, to := d.Find(l.From), d.Find(l.To)
	if from == nil || to == nil {
		return ErrUnknownEntity
	}
	if !from.LinkSides().Has(l.FromSide) || !to.LinkSides().Has(l.ToSide) {
		return ErrNotLinkable
	}
	d.links = append(d.links, l)
	d.adjustLinkedLines()
	return nil
}

// Unlink removes every link between a and b.
func (d *Document) Unlink(a, b Entity) int {
	n := 0
	links := d.links[:0]
	for _, l := range d.links {
		if l.Joins(a.Name(), b.Name()) {
			n++
			continue
		}
		links = append(links, l)
	}
	d.links = links
	return n
}

// UnlinkSelected removes links among the selection. With a single entity
// selected it removes all of that entity's links.
func (d *Document) UnlinkSelected() int {
	sel := d.Selected()
	if len(sel) == 1 {
		return d.removeLinksWhere(func(l Link) bool { return l.Involves(sel[0].Name()) })
	}
	selected := selectedNames(sel)
	return d.removeLinksWhere(func(l Link) bool { return selected[l.From] && selected[l.To] })
}

func (d *Document) removeLinksWhere(match func(Link) bool) int {
	n := 0
	links := d.links[:0]
	for _, l := range d.links {
		if match(l) {
			n++
			continue
		}
		links = append(links, l)
	}
	d.links = links
	return n
}

// FlipSelectedLinks reverses the direction of links among the selection.
func (d *Document) FlipSelectedLinks() int {
	selected := selectedNames(d.Selected())
	n := 0
	for i, l := range d.links {
		if selected[l.From] && selected[l.To] {
			d.links[i] = l.Flip()
			n++
		}
	}
	return n
}

// IsLinked reports whether the named entity takes part in any link.
func (d *Document) IsLinked(name string) bool {
	for _, l := range d.links {
		if l.Involves(name) {
			return true
		}
	}
	return false
}

func selectedNames(es []Entity) map[string]bool {
	m := make(map[string]bool, len(es))
	for _, e := range es {
		m[e.Name()] = true
	}
	return m
}

// adjustLinkedLines pulls linked segment ends onto the link points of the
// entities they are attached to. Segment-to-shape links are settled before
// segment-to-segment ones.
func (d *Document) adjustLinkedLines() {
	var chained []Link
	for _, l := range d.links {
		from, to := d.Find(l.From), d.Find(l.To)
		if from == nil || to == nil {
			continue
		}
		fs, fromSeg := from.(Segment)
		ts, toSeg := to.(Segment)
		switch {
		case fromSeg && toSeg:
			chained = append(chained, l)
		case fromSeg:
			attach(fs, l.FromSide, to, l.ToSide)
		case toSeg:
			attach(ts, l.ToSide, from, l.FromSide)
		}
	}
	for _, l := range chained {
		attach(d.Find(l.From).(Segment), l.FromSide, d.Find(l.To), l.ToSide)
	}
}

func attach(s Segment, side LinkSide, other Entity, otherSide LinkSide) {
	p, ok := LinkPoint(other, otherSide)
	if !ok {
		return
	}
	switch side {
	case LinkStart:
		s.SetStart(p)
	case LinkEnd:
		s.SetEnd(p)
	}
}

func (d *Document) ZoomIn() {
	d.Zoom = math.Min(MaxZoom, d.Zoom+ZoomStep)
}

func (d *Document) ZoomOut() {
	d.Zoom = math.Max(MinZoom, d.Zoom-ZoomStep)
}

func (d *Document) ResetZoom() {
	d.Zoom = 1
}

// Bounds is the union of every entity's rectangle.
func (d *Document) Bounds() (Rect, bool) {
	if len(d.entities) == 0 {
		return Rect{}, false
	}
	b := d.entities[0].Rect().Normalize()
	for _, e := range d.entities[1:] {
		b = b.Union(e.Rect())
	}
	return b, true
}
