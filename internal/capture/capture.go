// Package capture grabs the whole virtual desktop as a single RGBA image
// whose top-left pixel is (0,0).
package capture

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"os"
	"strings"

	_ "golang.org/x/image/bmp"
)

// Options tunes how the desktop is grabbed.
type Options struct {
	// IncludeCursor asks backends that support it to paint the pointer.
	IncludeCursor bool
}

// ErrNoBackend is returned when every capture backend failed.
var ErrNoBackend = errors.New("no screen capture backend available")

// backend is one way of obtaining the desktop pixels.
type backend struct {
	name string
	grab func(Options) (*image.RGBA, error)
}

var (
	displaysScreenshotFn = displaysScreenshot
	x11ScreenshotFn      = x11RootScreenshot
	portalScreenshotFn   = portalScreenshot
	waylandSessionFn     = runningOnWayland
)

func backends() []backend {
	direct := []backend{
		{name: "displays", grab: displaysScreenshotFn},
		{name: "x11", grab: x11ScreenshotFn},
	}
	portal := backend{name: "portal", grab: func(o Options) (*image.RGBA, error) { return portalScreenshotFn(false, o) }}
	if waylandSessionFn() {
		return append([]backend{portal}, direct...)
	}
	return append(direct, portal)
}

// Screen captures every attached display. Under Wayland the desktop portal
// is asked first; elsewhere the direct backends are tried before it.
func Screen(opts Options) (*image.RGBA, error) {
	var failures []string
	for _, b := range backends() {
		img, err := b.grab(opts)
		if err == nil && img != nil && !img.Bounds().Empty() {
			return rebase(img), nil
		}
		if err == nil {
			err = fmt.Errorf("empty image")
		}
		log.Printf("capture %s: %v", b.name, err)
		failures = append(failures, b.name+": "+err.Error())
	}
	return nil, fmt.Errorf("%w (%s)", ErrNoBackend, strings.Join(failures, "; "))
}

// Load decodes an image file, for example a saved screenshot, into an RGBA
// image rebased to the origin.
func Load(path string) (*image.RGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			log.Printf("close %s: %v", path, cerr)
		}
	}()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return toRGBA(img), nil
}

// toRGBA copies img into a fresh RGBA image at the origin.
func toRGBA(img image.Image) *image.RGBA {
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}

// rebase shifts img so its bounds start at (0,0). Displays left of or above
// the primary one give negative origins.
func rebase(img *image.RGBA) *image.RGBA {
	if img.Rect.Min == (image.Point{}) {
		return img
	}
	out := *img
	out.Rect = image.Rect(0, 0, img.Rect.Dx(), img.Rect.Dy())
	return &out
}
