package flowchart

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSegmentKeepsOrientation(t *testing.T) {
	l := NewLineSegment()
	l.SetRect(Rect{Left: 100, Top: 50, Right: 0, Bottom: 0})
	assert.Equal(t, Rect{Left: 100, Top: 50, Right: 0, Bottom: 0}, l.Rect())
	assert.Equal(t, Point{100, 50}, l.Start())
	assert.Equal(t, Point{0, 0}, l.End())
}

func TestSegmentHit(t *testing.T) {
	for _, l := range []Segment{NewLineSegment(), NewLinkableLineSegment()} {
		t.Run(l.Type(), func(t *testing.T) {
			l.SetRect(Rect{Left: 0, Top: 0, Right: 100, Bottom: 50})
			assert.Equal(t, HitBody, l.HitCode(Point{50, 25}))
			assert.Equal(t, HitBody, l.HitCode(Point{52, 28}))
			assert.Equal(t, HitBody, l.HitCode(Point{102, 52}))
			assert.Equal(t, HitNone, l.HitCode(Point{50, 40}))
			assert.Equal(t, HitNone, l.HitCode(Point{110, 50}))
		})
	}
}

func TestSegmentZeroLength(t *testing.T) {
	l := NewLineSegment()
	l.SetRect(Rect{Left: 10, Top: 10, Right: 10, Bottom: 10})
	assert.Equal(t, HitBody, l.HitCode(Point{12, 12}))
	assert.Equal(t, HitNone, l.HitCode(Point{20, 10}))
}

func TestSegmentMarkers(t *testing.T) {
	l := NewLinkableLineSegment()
	l.SetRect(Rect{Left: 0, Top: 0, Right: 100, Bottom: 50})
	assert.Equal(t, HitBody, l.HitCode(Point{0, 0}))

	l.Select(true)
	assert.Equal(t, HitTopLeft, l.HitCode(Point{0, 0}))
	assert.Equal(t, HitBottomRight, l.HitCode(Point{100, 50}))
	assert.Equal(t, HitBody, l.HitCode(Point{50, 25}))
	// no middle markers on a segment
	assert.Equal(t, HitNone, l.HitCode(Point{50, 0}))
}

func TestSegmentHitFarEndpoints(t *testing.T) {
	l := NewLineSegment()
	l.SetRect(Rect{Left: 0, Top: 0, Right: 1e300, Bottom: 0})
	assert.Equal(t, HitBody, l.HitCode(Point{0, 0}))
	assert.Equal(t, HitBody, l.HitCode(Point{5e299, 2}))
	assert.Equal(t, HitNone, l.HitCode(Point{-10, 0}))

	l.SetRect(Rect{Left: 0, Top: 0, Right: 4e8, Bottom: 4e8})
	assert.Equal(t, HitBody, l.HitCode(Point{2e8, 2e8}))
	assert.Equal(t, HitNone, l.HitCode(Point{2e8, 0}))
}
