package hotkey

import (
	"errors"
	"log"
	"sync"

	gohook "github.com/robotn/gohook"
)

var (
	startHookFn = gohook.Start
	endHookFn   = gohook.End
)

// ErrRunning is returned by Bind once the listener has started.
var ErrRunning = errors.New("hotkey listener already running")

type binding struct {
	m  *matcher
	fn func()
}

// Listener dispatches global key combinations to callbacks. Callbacks run
// on the hook goroutine and must not block.
type Listener struct {
	mu       sync.Mutex
	bindings []*binding
	done     chan struct{}
}

// NewListener returns a stopped listener with no bindings.
func NewListener() *Listener { return &Listener{} }

// Bind registers fn for combo.
func (l *Listener) Bind(combo string, fn func()) error {
	c, err := ParseCombo(combo, lookupKey)
	if err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.done != nil {
		return ErrRunning
	}
	l.bindings = append(l.bindings, &binding{m: newMatcher(c), fn: fn})
	log.Printf("hotkey %s bound", c)
	return nil
}

// Start installs the keyboard hook.
func (l *Listener) Start() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.done != nil {
		return ErrRunning
	}
	events := startHookFn()
	if events == nil {
		return errors.New("keyboard hook unavailable")
	}
	l.done = make(chan struct{})
	go l.loop(events, l.done)
	return nil
}

// Stop removes the hook and waits for the event loop to drain.
func (l *Listener) Stop() error {
	l.mu.Lock()
	done := l.done
	l.done = nil
	l.mu.Unlock()
	if done == nil {
		return nil
	}
	endHookFn()
	<-done
	l.mu.Lock()
	for _, b := range l.bindings {
		b.m = newMatcher(b.m.combo)
	}
	l.mu.Unlock()
	return nil
}

func (l *Listener) loop(events chan gohook.Event, done chan struct{}) {
	defer close(done)
	defer func() {
		if r := recover(); r != nil {
			log.Printf("hotkey loop panic: %v", r)
		}
	}()
	for ev := range events {
		l.dispatch(ev)
	}
}

func (l *Listener) dispatch(ev gohook.Event) {
	code := eventCode(ev)
	var fire []func()
	l.mu.Lock()
	for _, b := range l.bindings {
		switch ev.Kind {
		case gohook.KeyDown, gohook.KeyHold:
			if b.m.down(code) {
				fire = append(fire, b.fn)
			}
		case gohook.KeyUp:
			b.m.up(code)
		}
	}
	l.mu.Unlock()
	for _, fn := range fire {
		fn()
	}
}
