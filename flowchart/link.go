package flowchart

import (
	"fmt"
	"strings"
)

// LinkSide is a bitmask of the places an entity accepts links.
type LinkSide int

const (
	LinkNone  LinkSide = 0
	LinkTop   LinkSide = 1 << (iota - 1)
	LinkRight
	LinkBottom
	LinkLeft
	LinkStart
	LinkEnd

	LinkAll = LinkTop | LinkRight | LinkBottom | LinkLeft
)

var linkSideNames = []struct {
	side LinkSide
	name string
}{
	{LinkTop, "top"},
	{LinkRight, "right"},
	{LinkBottom, "bottom"},
	{LinkLeft, "left"},
	{LinkStart, "start"},
	{LinkEnd, "end"},
}

func (s LinkSide) String() string {
	if s == LinkNone {
		return "none"
	}
	var parts []string
	for _, n := range linkSideNames {
		if s&n.side != 0 {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, "|")
}

// Has reports whether every side in o is permitted by s.
func (s LinkSide) Has(o LinkSide) bool {
	return o != LinkNone && s&o == o
}

// Sides splits the mask into single sides, in a stable order.
func (s LinkSide) Sides() []LinkSide {
	var out []LinkSide
	for _, n := range linkSideNames {
		if s&n.side != 0 {
			out = append(out, n.side)
		}
	}
	return out
}

func parseLinkSide(name string) (LinkSide, error) {
	for _, n := range linkSideNames {
		if n.name == name {
			return n.side, nil
		}
	}
	return LinkNone, fmt.Errorf("%w: unknown link side %q", ErrCorrupt, name)
}

// LinkPoint returns where a link attaches to e on the given side.
func LinkPoint(e Entity, side LinkSide) (Point, bool) {
	if !e.LinkSides().Has(side) {
		return Point{}, false
	}
	r := e.Rect()
	switch side {
	case LinkStart:
		return Point{r.Left, r.Top}, true
	case LinkEnd:
		return Point{r.Right, r.Bottom}, true
	}
	r = r.Normalize()
	c := r.Center()
	switch side {
	case LinkTop:
		return Point{c.X, r.Top}, true
	case LinkRight:
		return Point{r.Right, c.Y}, true
	case LinkBottom:
		return Point{c.X, r.Bottom}, true
	case LinkLeft:
		return Point{r.Left, c.Y}, true
	}
	return Point{}, false
}

const linkType = "flowchart_link"

// Link joins a side of one entity to a side of another, by name.
type Link struct {
	From     string
	To       string
	FromSide LinkSide
	ToSide   LinkSide
}

func (l Link) String() string {
	return formatRecord(linkType,
		escapeField(l.From),
		escapeField(l.To),
		l.FromSide.String(),
		l.ToSide.String(),
	)
}

// Flip returns the link with its direction reversed.
func (l Link) Flip() Link {
	return Link{From: l.To, To: l.From, FromSide: l.ToSide, ToSide: l.FromSide}
}

// Involves reports whether the link touches the named entity.
func (l Link) Involves(name string) bool {
	return l.From == name || l.To == name
}

// Joins reports whether the link connects a and b in either direction.
func (l Link) Joins(a, b string) bool {
	return (l.From == a && l.To == b) || (l.From == b && l.To == a)
}

// ParseLink decodes a link record.
func ParseLink(s string) (Link, error) {
	fields, err := parseRecord(s, linkType, 4)
	if err != nil {
		if err == errWrongType {
			return Link{}, ErrUnrecognized
		}
		return Link{}, err
	}
	from, err := parseLinkSide(fields[2])
	if err != nil {
		return Link{}, err
	}
	to, err := parseLinkSide(fields[3])
	if err != nil {
		return Link{}, err
	}
	l := Link{
		From:     unescapeField(fields[0]),
		To:       unescapeField(fields[1]),
		FromSide: from,
		ToSide:   to,
	}
	if l.From == "" || l.To == "" {
		return Link{}, fmt.Errorf("%w: %s: empty endpoint", ErrCorrupt, linkType)
	}
	return l, nil
}
