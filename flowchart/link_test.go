package flowchart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinkSideString(t *testing.T) {
	assert.Equal(t, "none", LinkNone.String())
	assert.Equal(t, "top", LinkTop.String())
	assert.Equal(t, "top|bottom", (LinkTop | LinkBottom).String())
	assert.Equal(t, []LinkSide{LinkTop, LinkRight, LinkBottom, LinkLeft}, LinkAll.Sides())
	assert.True(t, LinkAll.Has(LinkLeft))
	assert.False(t, LinkAll.Has(LinkStart))
	assert.False(t, LinkAll.Has(LinkNone))
}

func TestLinkRecord(t *testing.T) {
	l := Link{From: "a", To: "b,c", FromSide: LinkEnd, ToSide: LinkTop}
	assert.Equal(t, `flowchart_link:a,b\commac,end,top;`, l.String())

	back, err := ParseLink(l.String())
	require.NoError(t, err)
	assert.Equal(t, l, back)
	assert.Equal(t, Link{From: "b,c", To: "a", FromSide: LinkTop, ToSide: LinkEnd}, l.Flip())
}

func TestParseLinkErrors(t *testing.T) {
	_, err := ParseLink("flowchart_box:a,1,2,3,4,t,0;")
	assert.ErrorIs(t, err, ErrUnrecognized)

	_, err = ParseLink("flowchart_link:a,b,middle,top;")
	assert.ErrorIs(t, err, ErrCorrupt)

	_, err = ParseLink("flowchart_link:,b,top,top;")
	assert.ErrorIs(t, err, ErrCorrupt)
}

func TestLinkPoint(t *testing.T) {
	b := NewBox()
	b.SetRect(NewRect(0, 0, 100, 40))
	tests := []struct {
		side LinkSide
		want Point
	}{
		{LinkTop, Point{50, 0}},
		{LinkRight, Point{100, 20}},
		{LinkBottom, Point{50, 40}},
		{LinkLeft, Point{0, 20}},
	}
	for _, tt := range tests {
		t.Run(tt.side.String(), func(t *testing.T) {
			p, ok := LinkPoint(b, tt.side)
			require.True(t, ok)
			assert.Equal(t, tt.want, p)
		})
	}
	_, ok := LinkPoint(b, LinkStart)
	assert.False(t, ok)

	a := NewLinkableLineSegment()
	a.SetRect(Rect{Left: 10, Top: 20, Right: 0, Bottom: 5})
	p, ok := LinkPoint(a, LinkStart)
	require.True(t, ok)
	assert.Equal(t, Point{10, 20}, p)
	p, ok = LinkPoint(a, LinkEnd)
	require.True(t, ok)
	assert.Equal(t, Point{0, 5}, p)

	_, ok = LinkPoint(NewLabel(), LinkTop)
	assert.False(t, ok)
}
