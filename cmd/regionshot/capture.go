package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"sync"
	"time"

	"github.com/example/regionshot/internal/annotate"
	"github.com/example/regionshot/internal/capture"
	"github.com/example/regionshot/internal/clipboard"
	"github.com/example/regionshot/internal/overlay"
	"github.com/example/regionshot/internal/render"
	"github.com/example/regionshot/internal/session"
)

var (
	captureScreenFn  = capture.Screen
	loadImageFn      = capture.Load
	clipboardWriteFn = clipboard.Write
	clipboardHoldFn  = clipboard.Hold
	runOverlayFn     = func(o *overlay.Overlay) (*render.RGB, error) { return o.Run() }
)

type captureCmd struct {
	*root
	fs     *flag.FlagSet
	file   string
	tool   string
	output string
	cursor bool
	hold   time.Duration

	mu   sync.Mutex
	lost <-chan struct{}
}

func (c *captureCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func parseCaptureCmd(args []string, r *root) (*captureCmd, error) {
	fs := flag.NewFlagSet("capture", flag.ExitOnError)
	c := &captureCmd{root: r.subcommand("capture"), fs: fs}
	fs.Usage = usageFunc(c)
	hold := time.Duration(0)
	if r.config != nil {
		hold = r.config.ClipboardHold
	}
	fs.StringVar(&c.file, "file", "", "open this image instead of capturing the screen")
	fs.StringVar(&c.tool, "tool", "select", "initial tool: select, pencil, line or rectangle")
	fs.StringVar(&c.output, "output", "", "also save the committed region as PNG")
	fs.BoolVar(&c.cursor, "cursor", false, "include the mouse pointer where the backend supports it")
	fs.DurationVar(&c.hold, "hold", hold, "keep serving the clipboard this long after commit")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, usageErrorf(c, "unexpected arguments: %v", fs.Args())
	}
	if _, err := session.ParseTool(c.tool); err != nil {
		return nil, usageErrorf(c, "%v", err)
	}
	return c, nil
}

func (c *captureCmd) grab() (*image.RGBA, error) {
	if c.file != "" {
		img, err := loadImageFn(c.file)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", c.file, err)
		}
		return img, nil
	}
	img, err := captureScreenFn(capture.Options{IncludeCursor: c.cursor})
	if err != nil {
		return nil, fmt.Errorf("failed to capture screen: %w", err)
	}
	return img, nil
}

func (c *captureCmd) sessionOptions() ([]session.Option, error) {
	tool, err := session.ParseTool(c.tool)
	if err != nil {
		return nil, err
	}
	st := session.DefaultStyle()
	cfg := c.config
	st.Stroke = annotate.Style{Color: cfg.DrawColor, Width: cfg.LineWidth}
	st.DimAlpha = uint8(cfg.DimAlpha)
	st.Margin = cfg.Margin
	opts := []session.Option{session.WithStyle(st), session.WithTool(tool)}
	if c.activeTheme != nil {
		opts = append(opts, session.WithTheme(c.activeTheme))
	}
	return opts, nil
}

func (c *captureCmd) overlayOptions() ([]overlay.Option, error) {
	sessOpts, err := c.sessionOptions()
	if err != nil {
		return nil, err
	}
	keys := c.config.Hotkeys
	opts := []overlay.Option{
		overlay.WithTitle("RegionShot"),
		overlay.WithSessionOptions(sessOpts...),
		overlay.WithKeys(keys.Commit, keys.Cancel),
		overlay.WithOnCommit(c.deliver),
	}
	if keys.Global {
		opts = append(opts, overlay.WithGlobalKeys(keys.Commit, keys.Cancel))
	}
	return opts, nil
}

// deliver copies the committed region to the clipboard, then saves it when
// an output file was given.
func (c *captureCmd) deliver(img *render.RGB) error {
	lost, err := clipboardWriteFn(img)
	if err != nil {
		return fmt.Errorf("failed to copy to clipboard: %w", err)
	}
	c.mu.Lock()
	c.lost = lost
	c.mu.Unlock()
	c.notifier.Copy(img)
	if c.output != "" {
		if err := writePNG(c.output, img); err != nil {
			return err
		}
		log.Printf("saved %s", c.output)
	}
	return nil
}

func (c *captureCmd) Run() error {
	img, err := c.grab()
	if err != nil {
		return err
	}
	c.notifier.Capture(img.Bounds().Size())
	opts, err := c.overlayOptions()
	if err != nil {
		return err
	}
	ov, err := overlay.New(img, opts...)
	if err != nil {
		return err
	}
	result, err := runOverlayFn(ov)
	if err != nil {
		return err
	}
	if result == nil {
		log.Printf("capture cancelled")
		return nil
	}
	c.mu.Lock()
	lost := c.lost
	c.mu.Unlock()
	if lost != nil && c.hold > 0 {
		if clipboardHoldFn(lost, c.hold) {
			log.Printf("clipboard taken over by another application")
		}
	}
	return nil
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
