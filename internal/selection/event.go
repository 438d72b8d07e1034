package selection

import (
	"fmt"

	"github.com/example/regionshot/internal/geom"
)

// Button identifies the pointer button that produced an event.
type Button int

const (
	ButtonNone Button = iota
	ButtonLeft
	ButtonRight
)

func (b Button) String() string {
	switch b {
	case ButtonLeft:
		return "left"
	case ButtonRight:
		return "right"
	}
	return "none"
}

// EventType is the kind of pointer transition.
type EventType int

const (
	Down EventType = iota
	Move
	Up
	DoubleClick
)

func (t EventType) String() string {
	switch t {
	case Down:
		return "down"
	case Move:
		return "move"
	case Up:
		return "up"
	case DoubleClick:
		return "double-click"
	}
	return fmt.Sprintf("EventType(%d)", int(t))
}

// PointerEvent is one pointer transition in canvas coordinates. Move events
// carry ButtonNone unless a button is held.
type PointerEvent struct {
	Button Button
	Type   EventType
	Pos    geom.Point
}

func (e PointerEvent) String() string {
	return fmt.Sprintf("%s %s at %v", e.Button, e.Type, e.Pos)
}
