package flowchart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSilhouetteHitCodes(t *testing.T) {
	tests := []struct {
		name string
		e    Entity
		rect Rect
		p    Point
		want HitCode
	}{
		{"box corner is body", NewBox(), NewRect(0, 0, 100, 40), Point{1, 1}, HitBody},
		{"box outside", NewBox(), NewRect(0, 0, 100, 40), Point{101, 1}, HitNone},
		{"condition centre", NewCondition(), NewRect(0, 0, 100, 60), Point{50, 30}, HitBody},
		{"condition bounding corner", NewCondition(), NewRect(0, 0, 100, 60), Point{5, 5}, HitNone},
		{"condition near right vertex", NewCondition(), NewRect(0, 0, 100, 60), Point{95, 30}, HitBody},
		{"connector centre", NewConnector(), NewRect(0, 0, 32, 32), Point{16, 16}, HitBody},
		{"connector bounding corner", NewConnector(), NewRect(0, 0, 32, 32), Point{2, 2}, HitNone},
		{"connector top edge", NewConnector(), NewRect(0, 0, 32, 32), Point{16, 1}, HitBody},
		{"io centre", NewIO(), NewRect(0, 0, 100, 40), Point{50, 20}, HitBody},
		{"io slanted top-left", NewIO(), NewRect(0, 0, 100, 40), Point{5, 5}, HitNone},
		{"io slanted bottom-right", NewIO(), NewRect(0, 0, 100, 40), Point{95, 35}, HitNone},
		{"terminator rounded corner", NewTerminator(), NewRect(0, 0, 100, 40), Point{2, 2}, HitNone},
		{"terminator end cap", NewTerminator(), NewRect(0, 0, 100, 40), Point{2, 20}, HitBody},
		{"terminator top", NewTerminator(), NewRect(0, 0, 100, 40), Point{50, 1}, HitBody},
		{"label", NewLabel(), NewRect(0, 0, 100, 40), Point{99, 39}, HitBody},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.e.SetRect(tt.rect)
			assert.Equal(t, tt.want, tt.e.HitCode(tt.p))
		})
	}
}

func TestHitCodeNormalizesRect(t *testing.T) {
	c := NewCondition()
	c.SetRect(Rect{Left: 100, Top: 60, Right: 0, Bottom: 0})
	assert.Equal(t, NewRect(0, 0, 100, 60), c.Rect())
	assert.Equal(t, HitBody, c.HitCode(Point{50, 30}))
}

func TestMarkersOnlyWhenSelected(t *testing.T) {
	c := NewCondition()
	c.SetRect(NewRect(0, 0, 100, 60))
	assert.Equal(t, HitNone, c.HitCode(Point{0, 0}))

	c.Select(true)
	assert.Equal(t, HitTopLeft, c.HitCode(Point{0, 0}))
	assert.Equal(t, HitTopMiddle, c.HitCode(Point{50, 0}))
	assert.Equal(t, HitTopRight, c.HitCode(Point{101, -1}))
	assert.Equal(t, HitLeftMiddle, c.HitCode(Point{0, 30}))
	assert.Equal(t, HitRightMiddle, c.HitCode(Point{100, 30}))
	assert.Equal(t, HitBottomLeft, c.HitCode(Point{0, 60}))
	assert.Equal(t, HitBottomMiddle, c.HitCode(Point{50, 60}))
	assert.Equal(t, HitBottomRight, c.HitCode(Point{100, 60}))
	assert.Equal(t, HitBody, c.HitCode(Point{50, 30}))
	assert.True(t, HitBottomRight.IsMarker())
	assert.False(t, HitBody.IsMarker())
}

func TestSetRectClampsSize(t *testing.T) {
	conn := NewConnector()
	conn.SetRect(NewRect(10, 10, 100, 5))
	assert.Equal(t, NewRect(10, 10, 32, 32), conn.Rect())

	box := NewBox()
	box.SetRect(NewRect(0, 0, 4, 4))
	assert.Equal(t, NewRect(0, 0, 16, 16), box.Rect())

	box.SetRect(Rect{Left: 50, Top: 50, Right: 0, Bottom: 0})
	assert.Equal(t, NewRect(0, 0, 50, 50), box.Rect())
}

func TestCloneIsIndependent(t *testing.T) {
	for _, kind := range NewFactory().Kinds() {
		t.Run(kind.Type, func(t *testing.T) {
			e := kind.New()
			e.SetRect(NewRect(0, 0, 64, 64))
			e.SetTitle("original")
			e.Select(true)
			orig := e.Rect()

			c := e.Clone()
			require.NotNil(t, c)
			assert.Equal(t, e.Type(), c.Type())
			assert.NotEqual(t, e.Name(), c.Name())
			assert.Equal(t, e.Rect(), c.Rect())
			assert.False(t, c.Selected())

			c.SetTitle("copy")
			c.SetRect(NewRect(10, 10, 64, 64))
			assert.Equal(t, "original", e.Title())
			assert.Equal(t, orig, e.Rect())
		})
	}
}

func TestLinkSidesPerType(t *testing.T) {
	assert.Equal(t, LinkTop|LinkBottom, NewTerminator().LinkSides())
	assert.Equal(t, LinkAll, NewBox().LinkSides())
	assert.Equal(t, LinkAll, NewCondition().LinkSides())
	assert.Equal(t, LinkAll, NewConnector().LinkSides())
	assert.Equal(t, LinkTop|LinkBottom, NewIO().LinkSides())
	assert.Equal(t, LinkNone, NewLabel().LinkSides())
	assert.Equal(t, LinkNone, NewLineSegment().LinkSides())
	assert.Equal(t, LinkStart|LinkEnd, NewLinkableLineSegment().LinkSides())
}
