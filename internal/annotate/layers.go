package annotate

import "github.com/example/regionshot/internal/geom"

// Layers is the ordered stroke stack for one session. Earlier strokes are
// painted first.
type Layers struct {
	strokes []Stroke
	live    *LiveStroke
}

// Begin starts a live stroke at pos. A live stroke that was never finalized
// is finalized first so nothing the user drew is lost.
func (l *Layers) Begin(kind Kind, pos geom.Point, style Style) {
	if l.live != nil {
		l.Finalize()
	}
	l.live = newLive(kind, pos, style)
}

// Extend updates the live stroke. It is a no-op without one.
func (l *Layers) Extend(pos geom.Point) {
	if l.live == nil {
		return
	}
	l.live.extend(pos)
}

// Finalize appends the live stroke to the stack and returns it.
func (l *Layers) Finalize() (Stroke, bool) {
	if l.live == nil {
		return Stroke{}, false
	}
	s := l.live.Snapshot()
	l.strokes = append(l.strokes, s)
	l.live = nil
	return s, true
}

// Cancel drops the live stroke and reports whether there was one.
func (l *Layers) Cancel() bool {
	had := l.live != nil
	l.live = nil
	return had
}

// Live returns a snapshot of the stroke being drawn.
func (l *Layers) Live() (Stroke, bool) {
	if l.live == nil {
		return Stroke{}, false
	}
	return l.live.Snapshot(), true
}

// Drawing reports whether a live stroke exists.
func (l *Layers) Drawing() bool { return l.live != nil }

// Strokes returns the finalized strokes in paint order.
func (l *Layers) Strokes() []Stroke { return append([]Stroke(nil), l.strokes...) }

// Len is the number of finalized strokes.
func (l *Layers) Len() int { return len(l.strokes) }

// Clear drops every stroke, live or finalized.
func (l *Layers) Clear() {
	l.strokes = nil
	l.live = nil
}
