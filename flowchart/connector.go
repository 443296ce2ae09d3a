package flowchart

import "github.com/fogleman/gg"

const (
	TypeConnector = "flowchart_connector"

	connectorSize = 32
)

// Connector is the small on-page reference circle. Its size is fixed.
type Connector struct {
	entity
}

func NewConnector() *Connector {
	s := Size{connectorSize, connectorSize}
	return &Connector{entity: newEntity(TypeConnector, s, s, LinkAll)}
}

func ConnectorFromString(s string) (*Connector, error) {
	c := NewConnector()
	if err := c.decode(s); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Connector) Contains(p Point) bool {
	return inEllipse(p, c.rect.Normalize())
}

func (c *Connector) HitCode(p Point) HitCode { return c.hit(p, c.Contains) }

func (c *Connector) Clone() Entity {
	return &Connector{entity: c.cloneBase()}
}

func (c *Connector) Draw(dc *gg.Context) {
	r := c.rect.Normalize()
	m := r.Center()
	dc.DrawEllipse(m.X, m.Y, r.Width()/2, r.Height()/2)
	fillAndStroke(dc)
	drawTitle(dc, r, c.title)
}
