//go:build (linux || freebsd || openbsd || netbsd || dragonfly) && !cgo

package clipboard

import (
	"os"
	"sync"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

var (
	initOnce sync.Once
	initErr  error
	owner    *x11Owner
)

func ensureInit() error {
	initOnce.Do(func() {
		if os.Getenv("DISPLAY") == "" && os.Getenv("WAYLAND_DISPLAY") == "" {
			initErr = errNoDisplay
			return
		}
		o := &x11Owner{}
		if err := o.initialize(); err != nil {
			initErr = err
			return
		}
		owner = o
	})
	return initErr
}

func writePayload(p Payload) (<-chan struct{}, error) {
	if err := ensureInit(); err != nil {
		return nil, err
	}
	return owner.publish(p)
}

// x11Owner holds the CLIPBOARD selection and answers conversion requests
// from a hidden window.
type x11Owner struct {
	conn   *xgb.Conn
	window xproto.Window
	atoms  atomSet

	mu      sync.Mutex
	payload Payload
	lost    chan struct{}
}

type atomSet struct {
	clipboard xproto.Atom
	targets   xproto.Atom
	png       xproto.Atom
	bmp       xproto.Atom
	property  xproto.Atom
}

func (o *x11Owner) initialize() error {
	conn, err := xgb.NewConn()
	if err != nil {
		return err
	}
	screen := xproto.Setup(conn).DefaultScreen(conn)
	window, err := xproto.NewWindowId(conn)
	if err != nil {
		conn.Close()
		return err
	}
	const eventMask = xproto.EventMaskPropertyChange | xproto.EventMaskStructureNotify
	if err := xproto.CreateWindowChecked(conn, screen.RootDepth, window, screen.Root, 0, 0, 1, 1, 0, xproto.WindowClassInputOutput, screen.RootVisual, xproto.CwEventMask, []uint32{eventMask}).Check(); err != nil {
		conn.Close()
		return err
	}
	atoms, err := internAtoms(conn)
	if err != nil {
		xproto.DestroyWindow(conn, window)
		conn.Close()
		return err
	}
	o.conn = conn
	o.window = window
	o.atoms = atoms
	go o.eventLoop()
	return nil
}

func internAtoms(conn *xgb.Conn) (atomSet, error) {
	names := []string{"CLIPBOARD", "TARGETS", "image/png", "image/bmp", "REGIONSHOT_CLIPBOARD"}
	atoms := make([]xproto.Atom, len(names))
	for i, name := range names {
		reply, err := xproto.InternAtom(conn, false, uint16(len(name)), name).Reply()
		if err != nil {
			return atomSet{}, err
		}
		atoms[i] = reply.Atom
	}
	return atomSet{clipboard: atoms[0], targets: atoms[1], png: atoms[2], bmp: atoms[3], property: atoms[4]}, nil
}

func (o *x11Owner) publish(p Payload) (<-chan struct{}, error) {
	o.mu.Lock()
	if o.lost != nil {
		close(o.lost)
	}
	o.payload = p
	o.lost = make(chan struct{})
	lost := o.lost
	o.mu.Unlock()
	if err := xproto.SetSelectionOwnerChecked(o.conn, o.window, o.atoms.clipboard, xproto.TimeCurrentTime).Check(); err != nil {
		return nil, err
	}
	return lost, nil
}

func (o *x11Owner) eventLoop() {
	for {
		ev, err := o.conn.WaitForEvent()
		if err != nil {
			return
		}
		switch e := ev.(type) {
		case xproto.SelectionRequestEvent:
			o.answer(e)
		case xproto.SelectionClearEvent:
			o.clear()
		}
	}
}

// reply picks the data served for a conversion target.
func (o *x11Owner) reply(target xproto.Atom, p Payload) (typ xproto.Atom, format byte, data []byte, ok bool) {
	switch target {
	case o.atoms.targets:
		targets := []xproto.Atom{o.atoms.targets}
		if len(p.PNG) > 0 {
			targets = append(targets, o.atoms.png)
		}
		if len(p.BMP) > 0 {
			targets = append(targets, o.atoms.bmp)
		}
		return xproto.AtomAtom, 32, atomsToBytes(targets), true
	case o.atoms.png:
		return o.atoms.png, 8, p.PNG, len(p.PNG) > 0
	case o.atoms.bmp:
		return o.atoms.bmp, 8, p.BMP, len(p.BMP) > 0
	}
	return xproto.AtomNone, 0, nil, false
}

func (o *x11Owner) answer(e xproto.SelectionRequestEvent) {
	property := e.Property
	if property == xproto.AtomNone {
		property = e.Target
	}
	o.mu.Lock()
	p := o.payload
	o.mu.Unlock()

	typ, format, data, ok := o.reply(e.Target, p)
	if ok {
		length := uint32(len(data))
		if format == 32 {
			length /= 4
		}
		xproto.ChangeProperty(o.conn, xproto.PropModeReplace, e.Requestor, property, typ, format, length, data)
	} else {
		property = xproto.AtomNone
	}

	notify := xproto.SelectionNotifyEvent{
		Time:      e.Time,
		Requestor: e.Requestor,
		Selection: e.Selection,
		Target:    e.Target,
		Property:  property,
	}
	_ = xproto.SendEvent(o.conn, false, e.Requestor, 0, string(notify.Bytes()))
}

func (o *x11Owner) clear() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.payload = Payload{}
	if o.lost != nil {
		close(o.lost)
		o.lost = nil
	}
}

func atomsToBytes(atoms []xproto.Atom) []byte {
	buf := make([]byte, len(atoms)*4)
	for i, atom := range atoms {
		xgb.Put32(buf[i*4:], uint32(atom))
	}
	return buf
}
