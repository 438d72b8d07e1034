// Package selection turns pointer events into a selection rectangle: drag to
// create, drag the inside to move, drag an edge or corner to resize.
package selection

import (
	"github.com/example/regionshot/internal/geom"
)

// Mode is the current interaction.
type Mode int

const (
	Idle Mode = iota
	Dragging
	Moving
	Resizing
)

func (m Mode) String() string {
	switch m {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	case Moving:
		return "moving"
	case Resizing:
		return "resizing"
	}
	return "unknown"
}

// State owns the selection rectangle for one capture session. It is not safe
// for concurrent use; all calls come from the window's event loop.
type State struct {
	canvas geom.Rect
	margin int

	rect    geom.Rect
	hasRect bool
	mode    Mode
	edge    geom.Zone
	anchor  geom.Point
}

// Option configures a State.
type Option func(*State)

// WithMargin sets the width of the edge and corner grab bands.
func WithMargin(m int) Option { return func(s *State) { s.margin = m } }

// WithRect starts the state with an existing selection.
func WithRect(r geom.Rect) Option {
	return func(s *State) {
		s.rect = r.Normalize()
		s.hasRect = true
	}
}

// New returns an idle State with no selection over the given canvas.
func New(canvas geom.Rect, opts ...Option) *State {
	s := &State{canvas: canvas.Normalize(), margin: geom.DefaultMargin}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Rect returns the current selection, if any. The value is a copy.
func (s *State) Rect() (geom.Rect, bool) { return s.rect, s.hasRect }

// Mode returns the current interaction.
func (s *State) Mode() Mode { return s.mode }

// Edge returns the zone being dragged. It is Outside unless Mode is Resizing.
func (s *State) Edge() geom.Zone { return s.edge }

// Canvas returns the area selections are clamped to.
func (s *State) Canvas() geom.Rect { return s.canvas }

// Margin returns the grab band width.
func (s *State) Margin() int { return s.margin }

// SetCanvas replaces the clamp area. The current selection is left as is.
func (s *State) SetCanvas(c geom.Rect) { s.canvas = c.Normalize() }

// Reset drops the selection and returns to Idle.
func (s *State) Reset() {
	s.rect = geom.Rect{}
	s.hasRect = false
	s.idle()
}

func (s *State) idle() {
	s.mode = Idle
	s.edge = geom.Outside
	s.anchor = geom.Point{}
}

// Handle dispatches ev to the matching transition.
func (s *State) Handle(ev PointerEvent) {
	switch ev.Type {
	case Down:
		s.PointerDown(ev)
	case Move:
		s.PointerMove(ev)
	case Up:
		s.PointerUp(ev)
	case DoubleClick:
		s.DoubleClick(ev)
	}
}

// PointerDown starts a drag, move or resize, or cancels the selection on a
// right press.
func (s *State) PointerDown(ev PointerEvent) {
	switch ev.Button {
	case ButtonRight:
		if s.hasRect {
			s.Reset()
		}
	case ButtonLeft:
		if s.hasRect && s.rect.Contains(ev.Pos) {
			zone := geom.HitZone(s.rect, ev.Pos, s.margin)
			if zone == geom.Inside {
				s.mode = Moving
				s.edge = geom.Outside
				s.anchor = ev.Pos.Sub(s.rect.Origin())
				return
			}
			s.mode = Resizing
			s.edge = zone
			s.anchor = ev.Pos
			return
		}
		s.mode = Dragging
		s.edge = geom.Outside
		s.anchor = ev.Pos
		s.rect = geom.Rect{X: ev.Pos.X, Y: ev.Pos.Y}
		s.hasRect = true
	}
}

// DoubleClick selects the whole canvas when it lands inside the selection.
func (s *State) DoubleClick(ev PointerEvent) {
	if ev.Button != ButtonLeft || !s.hasRect || !s.rect.Contains(ev.Pos) {
		return
	}
	s.rect = s.canvas
	s.idle()
}

// PointerMove advances the active interaction. It is a no-op when Idle.
func (s *State) PointerMove(ev PointerEvent) {
	switch s.mode {
	case Dragging:
		s.rect = geom.RectFromPoints(s.anchor, ev.Pos)
	case Moving:
		s.rect = s.clampedMove(ev.Pos.Sub(s.anchor))
	case Resizing:
		s.rect, s.edge = resize(s.rect, s.edge, ev.Pos)
	}
}

// PointerUp ends any interaction on a left release. The selection stays.
func (s *State) PointerUp(ev PointerEvent) {
	if ev.Button != ButtonLeft {
		return
	}
	s.idle()
}

func (s *State) clampedMove(origin geom.Point) geom.Rect {
	r := s.rect.Normalize()
	origin.X = max(s.canvas.X, min(origin.X, s.canvas.Right()-r.Width))
	origin.Y = max(s.canvas.Y, min(origin.Y, s.canvas.Bottom()-r.Height))
	return r.MoveTo(origin)
}

// resize moves the bounds zone grabs to p. A bound dragged past its opposite
// swaps with it and the zone flips, so the drag carries on from the other side.
func resize(r geom.Rect, zone geom.Zone, p geom.Point) (geom.Rect, geom.Zone) {
	l, t, rt, b := r.Left(), r.Top(), r.Right(), r.Bottom()
	gl, gt, gr, gb := zone.Grabs()
	if gl {
		l = p.X
	}
	if gr {
		rt = p.X
	}
	if gt {
		t = p.Y
	}
	if gb {
		b = p.Y
	}
	if l > rt {
		l, rt = rt, l
		zone = zone.FlipHorizontal()
	}
	if t > b {
		t, b = b, t
		zone = zone.FlipVertical()
	}
	return geom.Rect{X: l, Y: t, Width: rt - l, Height: b - t}, zone
}
