package overlay

import (
	"time"

	"golang.org/x/mobile/event/mouse"

	"github.com/example/regionshot/internal/geom"
	"github.com/example/regionshot/internal/selection"
)

const (
	doubleClickInterval = 350 * time.Millisecond
	doubleClickSlop     = 4
)

// clickTracker turns shiny mouse events into pointer events, reporting a
// second press of the same button close in time and space as a double click.
type clickTracker struct {
	now func() time.Time

	armed  bool
	at     time.Time
	pos    geom.Point
	button selection.Button
}

func buttonOf(b mouse.Button) selection.Button {
	switch b {
	case mouse.ButtonLeft:
		return selection.ButtonLeft
	case mouse.ButtonRight:
		return selection.ButtonRight
	}
	return selection.ButtonNone
}

func (t *clickTracker) translate(e mouse.Event, pos geom.Point) (selection.PointerEvent, bool) {
	ev := selection.PointerEvent{Button: buttonOf(e.Button), Pos: pos}
	switch e.Direction {
	case mouse.DirNone:
		ev.Type = selection.Move
	case mouse.DirRelease:
		ev.Type = selection.Up
	case mouse.DirPress:
		now := time.Now()
		if t.now != nil {
			now = t.now()
		}
		d := pos.Sub(t.pos)
		if t.armed && ev.Button == t.button && now.Sub(t.at) <= doubleClickInterval &&
			abs(d.X) <= doubleClickSlop && abs(d.Y) <= doubleClickSlop {
			t.armed = false
			ev.Type = selection.DoubleClick
			return ev, true
		}
		t.armed, t.at, t.pos, t.button = true, now, pos, ev.Button
		ev.Type = selection.Down
	default:
		return ev, false
	}
	return ev, true
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
