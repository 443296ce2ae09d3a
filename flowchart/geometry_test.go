package flowchart

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRectNormalize(t *testing.T) {
	r := Rect{Left: 50, Top: 40, Right: 10, Bottom: 0}.Normalize()
	assert.Equal(t, Rect{Left: 10, Top: 0, Right: 50, Bottom: 40}, r)
	assert.Equal(t, 40.0, r.Width())
	assert.Equal(t, Point{30, 20}, r.Center())
}

func TestRectUnion(t *testing.T) {
	a := NewRect(0, 0, 10, 10)
	b := Rect{Left: 30, Top: 20, Right: 5, Bottom: -5}
	assert.Equal(t, Rect{Left: 0, Top: -5, Right: 30, Bottom: 20}, a.Union(b))
}

func TestPointInPolygon(t *testing.T) {
	square := []Point{{0, 0}, {10, 0}, {10, 10}, {0, 10}}
	tests := []struct {
		name string
		p    Point
		want bool
	}{
		{"centre", Point{5, 5}, true},
		{"outside", Point{15, 5}, false},
		{"on edge", Point{10, 5}, true},
		{"on vertex", Point{0, 0}, true},
		{"above", Point{5, -1}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pointInPolygon(tt.p, square))
		})
	}
	assert.False(t, pointInPolygon(Point{0, 0}, square[:2]))
}

func TestInEllipse(t *testing.T) {
	r := NewRect(0, 0, 40, 20)
	assert.True(t, inEllipse(Point{20, 10}, r))
	assert.True(t, inEllipse(Point{40, 10}, r))
	assert.False(t, inEllipse(Point{1, 1}, r))
	assert.False(t, inEllipse(Point{1, 1}, NewRect(0, 0, 0, 10)))
}

func TestInRoundedRect(t *testing.T) {
	r := NewRect(0, 0, 100, 40)
	assert.True(t, inRoundedRect(Point{50, 1}, r, 20))
	assert.True(t, inRoundedRect(Point{2, 20}, r, 20))
	assert.False(t, inRoundedRect(Point{2, 2}, r, 20))
	assert.True(t, inRoundedRect(Point{2, 2}, r, 0))
}

func TestSnap(t *testing.T) {
	assert.Equal(t, 16.0, snap(10, 16))
	assert.Equal(t, 0.0, snap(7, 16))
	assert.Equal(t, -16.0, snap(-9, 16))
	assert.Equal(t, 7.5, snap(7.5, 0))
}
