package flowchart

import "github.com/fogleman/gg"

const TypeLabel = "flowchart_label"

// Label is a borderless text box. It takes no links.
type Label struct {
	entity
}

func NewLabel() *Label {
	return &Label{entity: newEntity(TypeLabel, Size{16, 16}, Size{}, LinkNone)}
}

func LabelFromString(s string) (*Label, error) {
	l := NewLabel()
	if err := l.decode(s); err != nil {
		return nil, err
	}
	return l, nil
}

func (l *Label) Contains(p Point) bool {
	return l.rect.Normalize().Contains(p)
}

func (l *Label) HitCode(p Point) HitCode { return l.hit(p, l.Contains) }

func (l *Label) Clone() Entity {
	return &Label{entity: l.cloneBase()}
}

func (l *Label) Draw(dc *gg.Context) {
	drawTitle(dc, l.rect, l.title)
}
