package capture

import (
	"errors"
	"fmt"
	"image"

	"github.com/kbinani/screenshot"
)

var errNoDisplays = errors.New("no active displays found")

var (
	numDisplaysFn   = screenshot.NumActiveDisplays
	displayBoundsFn = screenshot.GetDisplayBounds
	captureRectFn   = screenshot.CaptureRect
)

// VirtualBounds is the union of all active display bounds in desktop
// coordinates.
func VirtualBounds() (image.Rectangle, error) {
	n := numDisplaysFn()
	if n <= 0 {
		return image.Rectangle{}, errNoDisplays
	}
	union := displayBoundsFn(0)
	for i := 1; i < n; i++ {
		union = union.Union(displayBoundsFn(i))
	}
	if union.Empty() {
		return image.Rectangle{}, errNoDisplays
	}
	return union, nil
}

func displaysScreenshot(Options) (*image.RGBA, error) {
	union, err := VirtualBounds()
	if err != nil {
		return nil, err
	}
	img, err := captureRectFn(union)
	if err != nil {
		return nil, fmt.Errorf("capture %v: %w", union, err)
	}
	return img, nil
}
