package overlay

import (
	"image"
	"testing"
	"time"

	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/mouse"

	"github.com/example/regionshot/internal/geom"
	"github.com/example/regionshot/internal/render"
	"github.com/example/regionshot/internal/selection"
	"github.com/example/regionshot/internal/session"
)

func TestParseBinding(t *testing.T) {
	tests := []struct {
		in   string
		code key.Code
		mods key.Modifiers
	}{
		{"ctrl+c", key.CodeC, key.ModControl},
		{"Esc", key.CodeEscape, 0},
		{"ctrl+shift+enter", key.CodeReturnEnter, key.ModControl | key.ModShift},
		{"f3", key.CodeF3, 0},
		{"alt+1", key.Code1, key.ModAlt},
		{"super+0", key.Code0, key.ModMeta},
	}
	for _, tc := range tests {
		b, err := parseBinding(tc.in)
		if err != nil {
			t.Errorf("parseBinding(%q): %v", tc.in, err)
			continue
		}
		if b.code != tc.code || b.mods != tc.mods {
			t.Errorf("parseBinding(%q) = %v/%v, want %v/%v", tc.in, b.code, b.mods, tc.code, tc.mods)
		}
	}
	for _, bad := range []string{"", "ctrl", "c+ctrl", "hyper+x", "f13"} {
		if _, err := parseBinding(bad); err == nil {
			t.Errorf("parseBinding(%q) succeeded", bad)
		}
	}
}

func TestBindingMatchesExactModifiers(t *testing.T) {
	b, _ := parseBinding("ctrl+c")
	if !b.matches(key.Event{Code: key.CodeC, Modifiers: key.ModControl}) {
		t.Fatalf("ctrl+c not matched")
	}
	if b.matches(key.Event{Code: key.CodeC}) {
		t.Fatalf("bare c matched")
	}
	if b.matches(key.Event{Code: key.CodeC, Modifiers: key.ModControl | key.ModShift}) {
		t.Fatalf("ctrl+shift+c matched")
	}
}

func TestClickTrackerDoubleClick(t *testing.T) {
	now := time.Unix(0, 0)
	ct := clickTracker{now: func() time.Time { return now }}
	press := mouse.Event{Button: mouse.ButtonLeft, Direction: mouse.DirPress}

	ev, _ := ct.translate(press, geom.Pt(10, 10))
	if ev.Type != selection.Down {
		t.Fatalf("first press = %v", ev.Type)
	}
	now = now.Add(200 * time.Millisecond)
	ev, _ = ct.translate(press, geom.Pt(12, 11))
	if ev.Type != selection.DoubleClick || ev.Button != selection.ButtonLeft {
		t.Fatalf("second press = %v", ev)
	}
	now = now.Add(100 * time.Millisecond)
	if ev, _ = ct.translate(press, geom.Pt(12, 11)); ev.Type != selection.Down {
		t.Fatalf("third press = %v", ev.Type)
	}
	now = now.Add(time.Second)
	if ev, _ = ct.translate(press, geom.Pt(12, 11)); ev.Type != selection.Down {
		t.Fatalf("slow press = %v", ev.Type)
	}
	now = now.Add(10 * time.Millisecond)
	if ev, _ = ct.translate(press, geom.Pt(30, 11)); ev.Type != selection.Down {
		t.Fatalf("distant press = %v", ev.Type)
	}
	if _, ok := ct.translate(mouse.Event{Direction: mouse.DirStep, Button: mouse.ButtonWheelUp}, geom.Pt(0, 0)); ok {
		t.Fatalf("wheel events should be ignored")
	}
}

func TestViewport(t *testing.T) {
	v := newViewport(image.Pt(200, 100), image.Pt(200, 100))
	if v.zoom != 1 || v.dst != image.Rect(0, 0, 200, 100) {
		t.Fatalf("1:1 viewport = %+v", v)
	}
	if p := v.toCanvas(15.7, 3.2); p != geom.Pt(15, 3) {
		t.Fatalf("toCanvas = %v", p)
	}

	v = newViewport(image.Pt(400, 200), image.Pt(200, 200))
	if v.zoom != 0.5 || v.dst != image.Rect(0, 50, 200, 150) {
		t.Fatalf("scaled viewport = %+v", v)
	}
	if p := v.toCanvas(100, 100); p != geom.Pt(200, 100) {
		t.Fatalf("scaled toCanvas = %v", p)
	}
	if p := v.toCanvas(0, 0); p != geom.Pt(0, -100) {
		t.Fatalf("letterbox point = %v", p)
	}
}

func newController(t *testing.T, w, h int) (*controller, *session.Session) {
	t.Helper()
	commit, _ := parseBinding("ctrl+c")
	cancel, _ := parseBinding("esc")
	c := &controller{
		mgr:      session.NewManager(),
		commitKb: commit,
		cancelKb: cancel,
		view:     newViewport(image.Pt(w, h), image.Pt(w, h)),
	}
	s, err := c.mgr.Start(image.NewRGBA(image.Rect(0, 0, w, h)))
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	return c, s
}

func mouseAt(dir mouse.Direction, x, y float32) mouse.Event {
	return mouse.Event{X: x, Y: y, Button: mouse.ButtonLeft, Direction: dir}
}

func TestControllerCommit(t *testing.T) {
	c, s := newController(t, 50, 40)
	var copied *render.RGB
	c.onCommit = func(img *render.RGB) error { copied = img; return nil }

	if !c.key(key.Event{Code: key.CodeC, Modifiers: key.ModControl, Direction: key.DirPress}) {
		t.Fatalf("commit key not handled")
	}
	if c.done || copied != nil {
		t.Fatalf("commit without a selection closed the overlay")
	}

	c.pointer(mouseAt(mouse.DirPress, 5, 5))
	c.pointer(mouse.Event{X: 25, Y: 20, Direction: mouse.DirNone})
	c.pointer(mouseAt(mouse.DirRelease, 25, 20))
	if r, _ := s.SelectionRect(); r != (geom.Rect{X: 5, Y: 5, Width: 20, Height: 15}) {
		t.Fatalf("selection = %v", r)
	}

	c.key(key.Event{Code: key.CodeC, Modifiers: key.ModControl, Direction: key.DirPress})
	if !c.done || c.result == nil || copied != c.result {
		t.Fatalf("commit did not finish: done=%v result=%v", c.done, c.result)
	}
	if c.result.Bounds() != image.Rect(0, 0, 20, 15) {
		t.Fatalf("result bounds = %v", c.result.Bounds())
	}
	if c.mgr.Active() {
		t.Fatalf("session left open after commit")
	}
	if c.pointer(mouseAt(mouse.DirPress, 1, 1)) {
		t.Fatalf("pointer handled without a session")
	}
}

func TestControllerCancelAndTools(t *testing.T) {
	c, s := newController(t, 20, 20)
	if !c.key(key.Event{Rune: 'L', Code: key.CodeL, Modifiers: key.ModShift, Direction: key.DirPress}) {
		t.Fatalf("tool key not handled")
	}
	if s.Tool() != session.ToolLine {
		t.Fatalf("tool = %v", s.Tool())
	}
	c.key(key.Event{Rune: 'l', Code: key.CodeL, Direction: key.DirPress})
	if s.Tool() != session.ToolSelect {
		t.Fatalf("second l should return to select, got %v", s.Tool())
	}
	if c.key(key.Event{Rune: 'l', Code: key.CodeL, Direction: key.DirRelease}) {
		t.Fatalf("release handled")
	}

	c.key(key.Event{Code: key.CodeEscape, Direction: key.DirPress})
	if !c.done || c.result != nil || c.mgr.Active() {
		t.Fatalf("escape did not cancel: done=%v active=%v", c.done, c.mgr.Active())
	}
}

func TestNewValidatesOptions(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	if _, err := New(nil); err == nil {
		t.Fatalf("expected error for nil capture")
	}
	if _, err := New(img, WithKeys("ctrl+", "esc")); err == nil {
		t.Fatalf("expected error for bad commit key")
	}
	o, err := New(img, WithKeys("enter", "q"), WithTitle("t"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if o.title != "t" || o.ctl.commitKb.code != key.CodeReturnEnter || o.ctl.cancelKb.code != key.CodeQ {
		t.Fatalf("options not applied: %+v", o.ctl)
	}
	o.post(commitRequest{})
}
