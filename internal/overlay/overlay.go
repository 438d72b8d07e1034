// Package overlay shows a capture in a window and lets the user select,
// annotate and commit a region of it.
package overlay

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log"
	"sync"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/example/regionshot/internal/hotkey"
	"github.com/example/regionshot/internal/render"
	"github.com/example/regionshot/internal/session"
)

// commitRequest and cancelRequest arrive through the window's event queue
// from global hotkeys.
type (
	commitRequest struct{}
	cancelRequest struct{}
)

// Overlay is one capture window.
type Overlay struct {
	capture  *image.RGBA
	title    string
	sessOpts []session.Option
	listener *hotkey.Listener
	ctl      *controller
	err      error

	sendMu sync.Mutex
	send   func(interface{})
}

// Option configures an Overlay.
type Option func(*Overlay) error

// WithTitle sets the window title.
func WithTitle(t string) Option {
	return func(o *Overlay) error { o.title = t; return nil }
}

// WithSessionOptions passes options to the session opened on the capture.
func WithSessionOptions(opts ...session.Option) Option {
	return func(o *Overlay) error { o.sessOpts = append(o.sessOpts, opts...); return nil }
}

// WithKeys sets the in-window commit and cancel combinations.
func WithKeys(commit, cancel string) Option {
	return func(o *Overlay) error {
		c, err := parseBinding(commit)
		if err != nil {
			return err
		}
		x, err := parseBinding(cancel)
		if err != nil {
			return err
		}
		o.ctl.commitKb, o.ctl.cancelKb = c, x
		return nil
	}
}

// WithGlobalKeys also listens for commit and cancel system-wide while the
// session is open.
func WithGlobalKeys(commit, cancel string) Option {
	return func(o *Overlay) error {
		l := hotkey.NewListener()
		if err := l.Bind(commit, func() { o.post(commitRequest{}) }); err != nil {
			return err
		}
		if err := l.Bind(cancel, func() { o.post(cancelRequest{}) }); err != nil {
			return err
		}
		o.listener = l
		return nil
	}
}

// WithOnCommit registers fn to receive the committed image, for example to
// copy it to the clipboard.
func WithOnCommit(fn func(*render.RGB) error) Option {
	return func(o *Overlay) error { o.ctl.onCommit = fn; return nil }
}

// New prepares an overlay for capture. Nothing is shown until Run.
func New(capture *image.RGBA, opts ...Option) (*Overlay, error) {
	if capture == nil || capture.Bounds().Empty() {
		return nil, fmt.Errorf("overlay: empty capture")
	}
	o := &Overlay{capture: capture, title: "RegionShot", ctl: &controller{}}
	if err := WithKeys("ctrl+c", "esc")(o); err != nil {
		return nil, err
	}
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	var mopts []session.ManagerOption
	if o.listener != nil {
		mopts = append(mopts, session.WithServices(o.listener))
	}
	o.ctl.mgr = session.NewManager(mopts...)
	return o, nil
}

// Run shows the window until the user commits or cancels. It returns the
// committed image, or nil when cancelled. It must be called from the main
// goroutine.
func (o *Overlay) Run() (*render.RGB, error) {
	driver.Main(o.Main)
	return o.ctl.result, o.err
}

func (o *Overlay) post(e interface{}) {
	o.sendMu.Lock()
	send := o.send
	o.sendMu.Unlock()
	if send != nil {
		send(e)
	}
}

func (o *Overlay) setSender(fn func(interface{})) {
	o.sendMu.Lock()
	o.send = fn
	o.sendMu.Unlock()
}

type paintState struct {
	frame *image.RGBA
	view  viewport
	win   image.Point
}

// Main runs the overlay on an existing shiny screen.
func (o *Overlay) Main(s screen.Screen) {
	canvas := o.capture.Bounds().Size()
	w, err := s.NewWindow(&screen.NewWindowOptions{Width: canvas.X, Height: canvas.Y, Title: o.title})
	if err != nil {
		o.err = fmt.Errorf("new window: %w", err)
		return
	}
	defer w.Release()

	o.setSender(w.Send)
	defer o.setSender(nil)

	sess, err := o.ctl.mgr.Start(o.capture, o.sessOpts...)
	if err != nil {
		o.err = err
		return
	}
	defer func() {
		if o.ctl.mgr.Active() {
			_ = o.ctl.mgr.Cancel()
		}
	}()
	log.Printf("overlay open on %dx%d capture", canvas.X, canvas.Y)

	win := canvas
	o.ctl.view = newViewport(canvas, win)

	ctx, cancel := context.WithCancel(context.Background())
	paintCh := make(chan paintState, 1)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case st := <-paintCh:
				drawFrame(ctx, s, w, st)
			case <-ctx.Done():
				return
			}
		}
	}()
	defer wg.Wait()
	defer cancel()

	for !o.ctl.done {
		switch e := w.NextEvent().(type) {
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				o.ctl.cancel()
			}
		case size.Event:
			win = image.Pt(e.WidthPx, e.HeightPx)
			o.ctl.view = newViewport(canvas, win)
			w.Send(paint.Event{})
		case paint.Event:
			frame, err := sess.PreviewFrame()
			if err != nil {
				continue
			}
			st := paintState{frame: frame, view: o.ctl.view, win: win}
			select {
			case paintCh <- st:
			default:
				select {
				case <-paintCh:
				default:
				}
				paintCh <- st
			}
		case mouse.Event:
			if o.ctl.pointer(e) {
				w.Send(paint.Event{})
			}
		case key.Event:
			if o.ctl.key(e) {
				w.Send(paint.Event{})
			}
		case commitRequest:
			o.ctl.commit()
			w.Send(paint.Event{})
		case cancelRequest:
			o.ctl.cancel()
		case error:
			log.Printf("overlay: %v", e)
		}
	}
}

var backdrop = color.RGBA{0, 0, 0, 255}

func drawFrame(ctx context.Context, s screen.Screen, w screen.Window, st paintState) {
	if st.win.X <= 0 || st.win.Y <= 0 {
		return
	}
	b, err := s.NewBuffer(st.win)
	if err != nil {
		log.Printf("new buffer: %v", err)
		return
	}
	defer b.Release()

	dst := b.RGBA()
	draw.Draw(dst, dst.Bounds(), &image.Uniform{backdrop}, image.Point{}, draw.Src)
	if ctx.Err() != nil {
		return
	}
	if st.view.zoom == 1 {
		draw.Draw(dst, st.view.dst, st.frame, st.frame.Bounds().Min, draw.Src)
	} else {
		xdraw.ApproxBiLinear.Scale(dst, st.view.dst, st.frame, st.frame.Bounds(), draw.Src, nil)
	}
	if ctx.Err() != nil {
		return
	}
	w.Upload(image.Point{}, b, b.Bounds())
	w.Publish()
}
