package flowchart

// HitCode classifies where a point falls relative to an entity.
type HitCode int

const (
	HitNone HitCode = iota
	HitBody
	HitTopLeft
	HitTopMiddle
	HitTopRight
	HitBottomLeft
	HitBottomMiddle
	HitBottomRight
	HitLeftMiddle
	HitRightMiddle
)

// markerSize is the side of the square selection marker, in document units.
const markerSize = 8

func (h HitCode) String() string {
	switch h {
	case HitNone:
		return "none"
	case HitBody:
		return "body"
	case HitTopLeft:
		return "top-left"
	case HitTopMiddle:
		return "top-middle"
	case HitTopRight:
		return "top-right"
	case HitBottomLeft:
		return "bottom-left"
	case HitBottomMiddle:
		return "bottom-middle"
	case HitBottomRight:
		return "bottom-right"
	case HitLeftMiddle:
		return "left-middle"
	case HitRightMiddle:
		return "right-middle"
	default:
		return "unknown"
	}
}

// IsMarker reports whether h is one of the selection markers.
func (h HitCode) IsMarker() bool {
	return h >= HitTopLeft && h <= HitRightMiddle
}

// markerPoint returns the centre of a selection marker on r.
func markerPoint(r Rect, h HitCode) Point {
	c := r.Center()
	switch h {
	case HitTopLeft:
		return Point{r.Left, r.Top}
	case HitTopMiddle:
		return Point{c.X, r.Top}
	case HitTopRight:
		return Point{r.Right, r.Top}
	case HitBottomLeft:
		return Point{r.Left, r.Bottom}
	case HitBottomMiddle:
		return Point{c.X, r.Bottom}
	case HitBottomRight:
		return Point{r.Right, r.Bottom}
	case HitLeftMiddle:
		return Point{r.Left, c.Y}
	case HitRightMiddle:
		return Point{r.Right, c.Y}
	}
	return c
}

func onMarker(p, m Point) bool {
	half := float64(markerSize) / 2
	return p.X >= m.X-half && p.X <= m.X+half && p.Y >= m.Y-half && p.Y <= m.Y+half
}

var shapeMarkers = []HitCode{
	HitTopLeft, HitTopMiddle, HitTopRight,
	HitLeftMiddle, HitRightMiddle,
	HitBottomLeft, HitBottomMiddle, HitBottomRight,
}
