package flowchart

import "github.com/fogleman/gg"

const TypeCondition = "flowchart_condition"

// Condition is the decision diamond. Its corners sit on the midpoints of the
// bounding rectangle's sides.
type Condition struct {
	entity
}

func NewCondition() *Condition {
	return &Condition{entity: newEntity(TypeCondition, Size{32, 32}, Size{}, LinkAll)}
}

func ConditionFromString(s string) (*Condition, error) {
	c := NewCondition()
	if err := c.decode(s); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Condition) polygon() []Point {
	r := c.rect.Normalize()
	m := r.Center()
	return []Point{
		{m.X, r.Top},
		{r.Right, m.Y},
		{m.X, r.Bottom},
		{r.Left, m.Y},
	}
}

func (c *Condition) Contains(p Point) bool {
	return pointInPolygon(p, c.polygon())
}

func (c *Condition) HitCode(p Point) HitCode { return c.hit(p, c.Contains) }

func (c *Condition) Clone() Entity {
	return &Condition{entity: c.cloneBase()}
}

func (c *Condition) Draw(dc *gg.Context) {
	drawPolygon(dc, c.polygon())
	fillAndStroke(dc)
	// keep the title inside the diamond's inscribed rectangle
	r := c.rect.Normalize()
	inner := Rect{
		Left:   r.Left + r.Width()/4,
		Top:    r.Top + r.Height()/4,
		Right:  r.Right - r.Width()/4,
		Bottom: r.Bottom - r.Height()/4,
	}
	drawTitle(dc, inner, c.title)
}
