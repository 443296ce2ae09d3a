package flowchart

import "github.com/fogleman/gg"

const TypeBox = "flowchart_box"

// Box is the process step.
type Box struct {
	entity
}

func NewBox() *Box {
	return &Box{entity: newEntity(TypeBox, Size{16, 16}, Size{}, LinkAll)}
}

func BoxFromString(s string) (*Box, error) {
	b := NewBox()
	if err := b.decode(s); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *Box) Contains(p Point) bool {
	return b.rect.Normalize().Contains(p)
}

func (b *Box) HitCode(p Point) HitCode { return b.hit(p, b.Contains) }

func (b *Box) Clone() Entity {
	return &Box{entity: b.cloneBase()}
}

func (b *Box) Draw(dc *gg.Context) {
	r := b.rect.Normalize()
	dc.DrawRectangle(r.Left, r.Top, r.Width(), r.Height())
	fillAndStroke(dc)
	drawTitle(dc, r, b.title)
}
