//go:build linux || freebsd || openbsd || netbsd || dragonfly

package capture

import (
	"fmt"
	"image"
	"os"
	"strings"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

func runningOnWayland() bool {
	if strings.EqualFold(strings.TrimSpace(os.Getenv("XDG_SESSION_TYPE")), "wayland") {
		return true
	}
	return os.Getenv("WAYLAND_DISPLAY") != ""
}

// x11RootScreenshot reads the root window of the default screen, which
// spans every monitor of the X display.
func x11RootScreenshot(Options) (*image.RGBA, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, fmt.Errorf("connect X server: %w", err)
	}
	defer conn.Close()

	setup := xproto.Setup(conn)
	if setup == nil {
		return nil, fmt.Errorf("xproto setup unavailable")
	}
	screen := setup.DefaultScreen(conn)
	if screen == nil {
		return nil, fmt.Errorf("xproto screen unavailable")
	}
	w, h := screen.WidthInPixels, screen.HeightInPixels
	reply, err := xproto.GetImage(conn, xproto.ImageFormatZPixmap, xproto.Drawable(screen.Root), 0, 0, w, h, ^uint32(0)).Reply()
	if err != nil {
		return nil, fmt.Errorf("root pixels: %w", err)
	}
	return zPixmapToRGBA(bitsPerPixel(setup, reply.Depth), reply.Data, int(w), int(h))
}

func bitsPerPixel(setup *xproto.SetupInfo, depth byte) int {
	for _, f := range setup.PixmapFormats {
		if f.Depth == depth {
			return int(f.BitsPerPixel)
		}
	}
	return 0
}

// zPixmapToRGBA converts little-endian BGRx rows as returned by GetImage.
func zPixmapToRGBA(bpp int, data []byte, width, height int) (*image.RGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("root window has empty geometry")
	}
	if bpp < 24 {
		return nil, fmt.Errorf("unsupported pixel format %d bpp", bpp)
	}
	if len(data) == 0 || len(data)%height != 0 {
		return nil, fmt.Errorf("root pixels: unexpected stride")
	}
	stride := len(data) / height
	bytesPer := bpp / 8
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		row := data[y*stride : (y+1)*stride]
		for x := 0; x < width; x++ {
			off := x * bytesPer
			if off+3 > len(row) {
				break
			}
			p := img.PixOffset(x, y)
			img.Pix[p+0] = row[off+2]
			img.Pix[p+1] = row[off+1]
			img.Pix[p+2] = row[off]
			img.Pix[p+3] = 0xff
		}
	}
	return img, nil
}
