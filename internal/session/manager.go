package session

import (
	"fmt"
	"image"
	"log"

	"github.com/example/regionshot/internal/render"
)

// Service is a process-scoped collaborator, such as global hotkeys, that
// runs only while a session is open.
type Service interface {
	Start() error
	Stop() error
}

// Manager keeps at most one session open and runs the services alongside it.
type Manager struct {
	current  *Session
	services []Service
	opts     []Option
	started  []Service
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithServices registers services started with each session.
func WithServices(svcs ...Service) ManagerOption {
	return func(m *Manager) { m.services = append(m.services, svcs...) }
}

// WithSessionOptions sets options applied to every session before the
// per-call ones.
func WithSessionOptions(opts ...Option) ManagerOption {
	return func(m *Manager) { m.opts = append(m.opts, opts...) }
}

// NewManager returns a Manager with no open session.
func NewManager(opts ...ManagerOption) *Manager {
	m := &Manager{}
	for _, o := range opts {
		o(m)
	}
	return m
}

// Start opens a session over capture, closing any previous one first.
func (m *Manager) Start(capture *image.RGBA, opts ...Option) (*Session, error) {
	if m.current != nil {
		m.teardown()
	}
	s, err := New(capture, append(append([]Option(nil), m.opts...), opts...)...)
	if err != nil {
		return nil, err
	}
	for _, svc := range m.services {
		if err := svc.Start(); err != nil {
			s.Close()
			m.stopServices()
			return nil, fmt.Errorf("start session service: %w", err)
		}
		m.started = append(m.started, svc)
	}
	m.current = s
	return s, nil
}

// Current returns the open session.
func (m *Manager) Current() (*Session, error) {
	if m.current == nil {
		return nil, ErrNoActiveSession
	}
	return m.current, nil
}

// Active reports whether a session is open.
func (m *Manager) Active() bool { return m.current != nil }

// Commit flattens the open session and, on success, tears it down. A failed
// commit such as ErrInvalidCrop leaves the session open.
func (m *Manager) Commit() (*render.RGB, error) {
	if m.current == nil {
		return nil, ErrNoActiveSession
	}
	img, err := m.current.Commit()
	if err != nil {
		return nil, err
	}
	m.teardown()
	return img, nil
}

// Cancel tears down the open session.
func (m *Manager) Cancel() error {
	if m.current == nil {
		return ErrNoActiveSession
	}
	m.teardown()
	return nil
}

func (m *Manager) teardown() {
	m.current.Close()
	m.current = nil
	m.stopServices()
}

func (m *Manager) stopServices() {
	for i := len(m.started) - 1; i >= 0; i-- {
		if err := m.started[i].Stop(); err != nil {
			log.Printf("stop session service: %v", err)
		}
	}
	m.started = nil
}
