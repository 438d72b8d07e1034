package overlay

import (
	"errors"
	"log"
	"unicode"

	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/mouse"

	"github.com/example/regionshot/internal/render"
	"github.com/example/regionshot/internal/session"
)

// controller applies window input to the open session. It holds no window
// state so it can be driven directly.
type controller struct {
	mgr      *session.Manager
	commitKb binding
	cancelKb binding
	clicks   clickTracker
	view     viewport
	onCommit func(*render.RGB) error

	result *render.RGB
	done   bool
}

// pointer forwards a mouse event and reports whether a repaint is needed.
func (c *controller) pointer(e mouse.Event) bool {
	s, err := c.mgr.Current()
	if err != nil {
		return false
	}
	ev, ok := c.clicks.translate(e, c.view.toCanvas(e.X, e.Y))
	if !ok {
		return false
	}
	s.Handle(ev)
	return true
}

// key handles commit, cancel and tool shortcuts.
func (c *controller) key(e key.Event) bool {
	if e.Direction == key.DirRelease {
		return false
	}
	switch {
	case c.commitKb.matches(e):
		c.commit()
		return true
	case c.cancelKb.matches(e):
		c.cancel()
		return true
	}
	if e.Modifiers&(key.ModControl|key.ModAlt|key.ModMeta) != 0 {
		return false
	}
	s, err := c.mgr.Current()
	if err != nil {
		return false
	}
	var t session.Tool
	switch unicode.ToLower(e.Rune) {
	case 's':
		t = session.ToolSelect
	case 'p':
		t = session.ToolPencil
	case 'l':
		t = session.ToolLine
	case 'r':
		t = session.ToolRectangle
	default:
		return false
	}
	log.Printf("tool %s", s.ToggleTool(t))
	return true
}

// commit flattens the selection. An unusable selection is logged and the
// overlay stays open.
func (c *controller) commit() {
	img, err := c.mgr.Commit()
	switch {
	case errors.Is(err, session.ErrInvalidCrop):
		log.Printf("commit ignored: %v", err)
		return
	case err != nil:
		log.Printf("commit: %v", err)
		c.done = true
		return
	}
	c.result = img
	c.done = true
	if c.onCommit != nil {
		if err := c.onCommit(img); err != nil {
			log.Printf("commit: %v", err)
		}
	}
}

func (c *controller) cancel() {
	if err := c.mgr.Cancel(); err != nil && !errors.Is(err, session.ErrNoActiveSession) {
		log.Printf("cancel: %v", err)
	}
	c.done = true
}
