package flowchart

import "github.com/fogleman/gg"

const TypeTerminator = "flowchart_terminator"

// Terminator is the start/stop shape: a rectangle whose short ends are
// fully rounded.
type Terminator struct {
	entity
}

func NewTerminator() *Terminator {
	return &Terminator{entity: newEntity(TypeTerminator, Size{32, 16}, Size{}, LinkTop|LinkBottom)}
}

func TerminatorFromString(s string) (*Terminator, error) {
	t := NewTerminator()
	if err := t.decode(s); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Terminator) radius() float64 {
	r := t.rect.Normalize()
	return min(r.Width(), r.Height()) / 2
}

func (t *Terminator) Contains(p Point) bool {
	return inRoundedRect(p, t.rect.Normalize(), t.radius())
}

func (t *Terminator) HitCode(p Point) HitCode { return t.hit(p, t.Contains) }

func (t *Terminator) Clone() Entity {
	return &Terminator{entity: t.cloneBase()}
}

func (t *Terminator) Draw(dc *gg.Context) {
	r := t.rect.Normalize()
	dc.DrawRoundedRectangle(r.Left, r.Top, r.Width(), r.Height(), t.radius())
	fillAndStroke(dc)
	drawTitle(dc, r, t.title)
}
