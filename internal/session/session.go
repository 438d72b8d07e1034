// Package session ties one capture to its selection, its annotation strokes
// and the active tool, and turns the result into a clipboard bitmap.
package session

import (
	"errors"
	"fmt"
	"image"

	"github.com/example/regionshot/internal/annotate"
	"github.com/example/regionshot/internal/geom"
	"github.com/example/regionshot/internal/render"
	"github.com/example/regionshot/internal/selection"
	"github.com/example/regionshot/internal/theme"
)

var (
	// ErrNoActiveSession is returned by commit and cancel when nothing is
	// being captured.
	ErrNoActiveSession = errors.New("no active capture session")
	// ErrInvalidCrop is returned by Commit when there is no usable selection.
	ErrInvalidCrop = render.ErrInvalidCrop
)

// Style holds the per-session drawing defaults supplied by configuration.
type Style struct {
	Stroke   annotate.Style
	DimAlpha uint8
	Margin   int
}

// DefaultStyle is red 3px strokes over a 150 dim with 8px grab bands.
func DefaultStyle() Style {
	return Style{
		Stroke:   annotate.DefaultStyle(),
		DimAlpha: render.DefaultDimAlpha,
		Margin:   geom.DefaultMargin,
	}
}

// Session is one capture-to-commit interaction. Its methods must be called
// from a single goroutine.
type Session struct {
	capture *image.RGBA
	canvas  geom.Rect
	sel     *selection.State
	layers  annotate.Layers
	tool    Tool
	style   Style
	theme   *theme.Theme
	preview *image.RGBA
	closed  bool
}

// Option configures a Session.
type Option func(*Session)

// WithStyle sets the stroke style, dim level and grab margin.
func WithStyle(st Style) Option { return func(s *Session) { s.style = st } }

// WithTool sets the initial tool.
func WithTool(t Tool) Option { return func(s *Session) { s.tool = t } }

// WithTheme sets the overlay colours used by Frame.
func WithTheme(t *theme.Theme) Option { return func(s *Session) { s.theme = t } }

// New starts a session over capture. The capture is treated as read-only.
func New(capture *image.RGBA, opts ...Option) (*Session, error) {
	if capture == nil || capture.Bounds().Empty() {
		return nil, fmt.Errorf("new session: empty capture")
	}
	s := &Session{
		capture: capture,
		canvas:  geom.FromImage(capture.Bounds()),
		style:   DefaultStyle(),
		theme:   theme.Default(),
	}
	for _, o := range opts {
		o(s)
	}
	if s.style.Margin <= 0 {
		s.style.Margin = geom.DefaultMargin
	}
	s.sel = selection.New(s.canvas, selection.WithMargin(s.style.Margin))
	return s, nil
}

// Canvas is the capture's bounds.
func (s *Session) Canvas() geom.Rect { return s.canvas }

// Capture returns the captured image. It is nil once the session is closed.
func (s *Session) Capture() *image.RGBA { return s.capture }

// Tool returns the active tool.
func (s *Session) Tool() Tool { return s.tool }

// Style returns the session's drawing style.
func (s *Session) Style() Style { return s.style }

// Closed reports whether Close has been called.
func (s *Session) Closed() bool { return s.closed }

// SetTool switches tools. A stroke in progress is kept and any selection
// drag is ended.
func (s *Session) SetTool(t Tool) {
	if s.closed || t == s.tool {
		return
	}
	s.layers.Finalize()
	s.sel.PointerUp(selection.PointerEvent{Button: selection.ButtonLeft, Type: selection.Up})
	s.tool = t
}

// ToggleTool selects t, or goes back to ToolSelect when t is already active.
func (s *Session) ToggleTool(t Tool) Tool {
	if s.tool == t {
		s.SetTool(ToolSelect)
	} else {
		s.SetTool(t)
	}
	return s.tool
}

// SetStrokeStyle changes the pen for strokes started from now on.
func (s *Session) SetStrokeStyle(st annotate.Style) { s.style.Stroke = st }

// Handle routes a pointer event to the selection or the stroke stack
// depending on the active tool.
func (s *Session) Handle(ev selection.PointerEvent) {
	if s.closed {
		return
	}
	kind, drawing := s.tool.strokeKind()
	if !drawing {
		s.sel.Handle(ev)
		return
	}
	switch ev.Type {
	case selection.Down, selection.DoubleClick:
		switch ev.Button {
		case selection.ButtonLeft:
			s.layers.Begin(kind, ev.Pos, s.style.Stroke)
		case selection.ButtonRight:
			if !s.layers.Cancel() {
				s.sel.PointerDown(ev)
			}
		}
	case selection.Move:
		s.layers.Extend(ev.Pos)
	case selection.Up:
		if ev.Button == selection.ButtonLeft {
			s.layers.Finalize()
		}
	}
}

// SelectionRect returns the current selection for overlay rendering.
func (s *Session) SelectionRect() (geom.Rect, bool) {
	if s.closed {
		return geom.Rect{}, false
	}
	return s.sel.Rect()
}

// Selection exposes the selection state for inspection.
func (s *Session) Selection() *selection.State { return s.sel }

// Strokes returns the finalized strokes in paint order.
func (s *Session) Strokes() []annotate.Stroke { return s.layers.Strokes() }

// LiveStroke returns the stroke being drawn, if any.
func (s *Session) LiveStroke() (annotate.Stroke, bool) { return s.layers.Live() }

// Preview returns the dimmed capture. It is computed once and cached.
func (s *Session) Preview() (*image.RGBA, error) {
	if s.closed {
		return nil, ErrNoActiveSession
	}
	if s.preview == nil {
		s.preview = render.Preview(s.capture, s.style.DimAlpha)
	}
	return s.preview, nil
}

// PreviewFrame composes the full overlay for the current state.
func (s *Session) PreviewFrame() (*image.RGBA, error) {
	preview, err := s.Preview()
	if err != nil {
		return nil, err
	}
	in := render.FrameInput{
		Base:    s.capture,
		Preview: preview,
		Strokes: s.layers.Strokes(),
		Theme:   s.theme,
		Status:  s.status(),
	}
	if live, ok := s.layers.Live(); ok {
		in.Live = &live
	}
	if r, ok := s.sel.Rect(); ok {
		in.Selection = &r
	}
	return render.Frame(in), nil
}

func (s *Session) status() string {
	if r, ok := s.sel.Rect(); ok && !r.Empty() {
		return fmt.Sprintf("%s  %dx%d", s.tool, r.Width, r.Height)
	}
	return s.tool.String()
}

// Commit flattens the strokes over the capture and crops to the selection.
// The session stays open; the caller decides whether to close it.
func (s *Session) Commit() (*render.RGB, error) {
	if s.closed {
		return nil, ErrNoActiveSession
	}
	r, ok := s.sel.Rect()
	if !ok {
		return nil, fmt.Errorf("%w: nothing selected", ErrInvalidCrop)
	}
	var live *annotate.Stroke
	if l, ok := s.layers.Live(); ok {
		live = &l
	}
	return render.Flatten(s.capture, s.layers.Strokes(), live, r)
}

// Close drops the strokes, the selection and the capture.
func (s *Session) Close() {
	if s.closed {
		return
	}
	s.layers.Clear()
	s.sel.Reset()
	s.capture = nil
	s.preview = nil
	s.closed = true
}
