package flowchart

import "github.com/fogleman/gg"

const TypeIO = "flowchart_io"

// IO is the input/output parallelogram, slanted to the right by a quarter of
// its width.
type IO struct {
	entity
}

func NewIO() *IO {
	return &IO{entity: newEntity(TypeIO, Size{32, 16}, Size{}, LinkTop|LinkBottom)}
}

func IOFromString(s string) (*IO, error) {
	e := NewIO()
	if err := e.decode(s); err != nil {
		return nil, err
	}
	return e, nil
}

func (e *IO) polygon() []Point {
	r := e.rect.Normalize()
	skew := r.Width() / 4
	return []Point{
		{r.Left + skew, r.Top},
		{r.Right, r.Top},
		{r.Right - skew, r.Bottom},
		{r.Left, r.Bottom},
	}
}

func (e *IO) Contains(p Point) bool {
	return pointInPolygon(p, e.polygon())
}

func (e *IO) HitCode(p Point) HitCode { return e.hit(p, e.Contains) }

func (e *IO) Clone() Entity {
	return &IO{entity: e.cloneBase()}
}

func (e *IO) Draw(dc *gg.Context) {
	drawPolygon(dc, e.polygon())
	fillAndStroke(dc)
	r := e.rect.Normalize()
	skew := r.Width() / 4
	drawTitle(dc, Rect{r.Left + skew/2, r.Top, r.Right - skew/2, r.Bottom}, e.title)
}
