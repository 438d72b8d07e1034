// Package clipboard publishes committed captures as PNG and bitmap data.
package clipboard

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"time"

	"github.com/example/regionshot/internal/render"
)

var errNoDisplay = errors.New("clipboard initialization requires DISPLAY or WAYLAND_DISPLAY")

// Payload is one image in every encoding we offer to other applications.
type Payload struct {
	PNG []byte
	// BMP is a complete .bmp file.
	BMP []byte
	// DIB is BMP without its 14 byte file header.
	DIB []byte
}

// Encode builds a Payload for img.
func Encode(img image.Image) (Payload, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return Payload{}, fmt.Errorf("encode png: %w", err)
	}
	bmp, err := render.EncodeBMP(img)
	if err != nil {
		return Payload{}, err
	}
	dib, err := render.EncodeDIB(img)
	if err != nil {
		return Payload{}, err
	}
	return Payload{PNG: buf.Bytes(), BMP: bmp, DIB: dib}, nil
}

// writeFn publishes a payload and returns a channel closed once another
// application takes the clipboard over.
var writeFn = writePayload

// Write copies img to the clipboard. The returned channel is closed when the
// content is replaced by someone else; on some platforms the data is only
// served while this process is alive.
func Write(img image.Image) (<-chan struct{}, error) {
	p, err := Encode(img)
	if err != nil {
		return nil, err
	}
	return writeFn(p)
}

// WriteImage copies img to the clipboard without waiting.
func WriteImage(img image.Image) error {
	_, err := Write(img)
	return err
}

// Hold blocks until lost is closed or d has elapsed. A zero d returns
// immediately.
func Hold(lost <-chan struct{}, d time.Duration) bool {
	if d <= 0 || lost == nil {
		return false
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-lost:
		return true
	case <-t.C:
		return false
	}
}
