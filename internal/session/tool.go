package session

import (
	"fmt"
	"strings"

	"github.com/example/regionshot/internal/annotate"
)

// Tool is what pointer events currently drive.
type Tool int

const (
	ToolSelect Tool = iota
	ToolPencil
	ToolLine
	ToolRectangle
)

func (t Tool) String() string {
	switch t {
	case ToolSelect:
		return "select"
	case ToolPencil:
		return "pencil"
	case ToolLine:
		return "line"
	case ToolRectangle:
		return "rectangle"
	}
	return "unknown"
}

// ParseTool accepts a tool name or its first letter.
func ParseTool(s string) (Tool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "select", "s":
		return ToolSelect, nil
	case "pencil", "freehand", "draw", "p":
		return ToolPencil, nil
	case "line", "l":
		return ToolLine, nil
	case "rectangle", "rect", "r":
		return ToolRectangle, nil
	}
	return ToolSelect, fmt.Errorf("unknown tool %q", s)
}

// strokeKind maps a drawing tool to the stroke it makes.
func (t Tool) strokeKind() (annotate.Kind, bool) {
	switch t {
	case ToolPencil:
		return annotate.Freehand, true
	case ToolLine:
		return annotate.Line, true
	case ToolRectangle:
		return annotate.Rectangle, true
	case ToolSelect:
		return 0, false
	}
	return 0, false
}
