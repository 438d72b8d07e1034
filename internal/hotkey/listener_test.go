package hotkey

import (
	"errors"
	"testing"
	"time"

	gohook "github.com/robotn/gohook"
)

func fakeHook(t *testing.T) chan gohook.Event {
	t.Helper()
	events := make(chan gohook.Event, 16)
	prevStart, prevEnd := startHookFn, endHookFn
	startHookFn = func() chan gohook.Event { return events }
	endHookFn = func() { close(events) }
	t.Cleanup(func() { startHookFn, endHookFn = prevStart, prevEnd })
	return events
}

func keyEvent(kind uint8, code uint16) gohook.Event {
	return gohook.Event{Kind: kind, Keycode: code, Rawcode: code}
}

func TestListenerDispatch(t *testing.T) {
	codes := lookupKey("f3")
	if len(codes) == 0 {
		t.Skip("f3 has no key code on this platform")
	}
	events := fakeHook(t)

	l := NewListener()
	fired := make(chan struct{}, 4)
	if err := l.Bind("F3", func() { fired <- struct{}{} }); err != nil {
		t.Fatalf("Bind: %v", err)
	}
	if err := l.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := l.Bind("f4", func() {}); !errors.Is(err, ErrRunning) {
		t.Fatalf("Bind while running = %v", err)
	}
	if err := l.Start(); !errors.Is(err, ErrRunning) {
		t.Fatalf("second Start = %v", err)
	}

	events <- keyEvent(gohook.KeyHold, codes[0])
	events <- keyEvent(gohook.KeyDown, codes[0])
	events <- keyEvent(gohook.KeyUp, codes[0])
	events <- keyEvent(gohook.KeyHold, codes[0])

	for i := 0; i < 2; i++ {
		select {
		case <-fired:
		case <-time.After(time.Second):
			t.Fatalf("callback %d not called", i+1)
		}
	}
	if err := l.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	select {
	case <-fired:
		t.Fatalf("typed event after press fired a third time")
	default:
	}
	if err := l.Stop(); err != nil {
		t.Fatalf("second Stop: %v", err)
	}
}

func TestListenerHookUnavailable(t *testing.T) {
	prev := startHookFn
	startHookFn = func() chan gohook.Event { return nil }
	t.Cleanup(func() { startHookFn = prev })
	if err := NewListener().Start(); err == nil {
		t.Fatalf("expected error")
	}
}
