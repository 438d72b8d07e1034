// Package annotate keeps the strokes drawn over a capture: finalized strokes
// in paint order plus at most one stroke still being drawn.
package annotate

import (
	"image/color"

	"github.com/example/regionshot/internal/geom"
)

// Kind is the shape a stroke draws.
type Kind int

const (
	Freehand Kind = iota
	Line
	Rectangle
)

func (k Kind) String() string {
	switch k {
	case Freehand:
		return "freehand"
	case Line:
		return "line"
	case Rectangle:
		return "rectangle"
	}
	return "unknown"
}

// Style is the pen a stroke is painted with.
type Style struct {
	Color color.RGBA
	Width int
}

// DefaultStyle is opaque red at 3px.
func DefaultStyle() Style {
	return Style{Color: color.RGBA{R: 0xff, A: 0xff}, Width: 3}
}

// Stroke is a finalized annotation. Its points cannot be changed once built.
type Stroke struct {
	kind   Kind
	style  Style
	points []geom.Point
}

// NewStroke builds a stroke directly. Line and Rectangle use the first and
// last points.
func NewStroke(kind Kind, style Style, points ...geom.Point) Stroke {
	return Stroke{kind: kind, style: style, points: append([]geom.Point(nil), points...)}
}

func (s Stroke) Kind() Kind   { return s.kind }
func (s Stroke) Style() Style { return s.style }

// Points returns a copy of the stroke's vertices.
func (s Stroke) Points() []geom.Point { return append([]geom.Point(nil), s.points...) }

// Len is the number of vertices.
func (s Stroke) Len() int { return len(s.points) }

// Ends returns the first and last vertex.
func (s Stroke) Ends() (geom.Point, geom.Point) {
	if len(s.points) == 0 {
		return geom.Point{}, geom.Point{}
	}
	return s.points[0], s.points[len(s.points)-1]
}

// Bounds is the box spanned by the vertices, grown by half the pen width.
func (s Stroke) Bounds() geom.Rect {
	if len(s.points) == 0 {
		return geom.Rect{}
	}
	minP, maxP := s.points[0], s.points[0]
	for _, p := range s.points[1:] {
		minP.X, minP.Y = min(minP.X, p.X), min(minP.Y, p.Y)
		maxP.X, maxP.Y = max(maxP.X, p.X), max(maxP.Y, p.Y)
	}
	pad := s.style.Width / 2
	return geom.Rect{X: minP.X - pad, Y: minP.Y - pad, Width: maxP.X - minP.X + 1 + 2*pad, Height: maxP.Y - minP.Y + 1 + 2*pad}
}

// LiveStroke is the stroke under the pointer. Line and Rectangle keep their
// anchor and are redefined on each Extend; Freehand accumulates vertices.
type LiveStroke struct {
	kind   Kind
	style  Style
	anchor geom.Point
	points []geom.Point
}

func newLive(kind Kind, pos geom.Point, style Style) *LiveStroke {
	l := &LiveStroke{kind: kind, style: style, anchor: pos}
	switch kind {
	case Freehand:
		l.points = []geom.Point{pos}
	default:
		l.points = []geom.Point{pos, pos}
	}
	return l
}

func (l *LiveStroke) extend(pos geom.Point) {
	switch l.kind {
	case Freehand:
		l.points = append(l.points, pos)
	default:
		l.points = []geom.Point{l.anchor, pos}
	}
}

// Anchor is the press position the stroke started from.
func (l *LiveStroke) Anchor() geom.Point { return l.anchor }

// Snapshot returns the live stroke as it stands, as an immutable Stroke.
func (l *LiveStroke) Snapshot() Stroke {
	return NewStroke(l.kind, l.style, l.points...)
}
