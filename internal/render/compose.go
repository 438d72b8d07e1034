// Package render composites captures and annotation strokes into preview
// frames and flattened output bitmaps.
package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/example/regionshot/internal/annotate"
	"github.com/example/regionshot/internal/geom"
)

// ErrInvalidCrop is returned when a crop rectangle is empty or reaches past
// the canvas.
var ErrInvalidCrop = errors.New("invalid crop rectangle")

const (
	// DefaultDimAlpha is the strength of the black fill laid over the capture.
	DefaultDimAlpha uint8 = 150
	// PreviewOpacity scales the fill once more. The two always compound, so
	// the overlay actually drawn is EffectiveDim(dimAlpha).
	PreviewOpacity = 0.5
)

// EffectiveDim is the alpha of the single black overlay a preview uses. For
// DefaultDimAlpha it is 75.
func EffectiveDim(dimAlpha uint8) uint8 {
	return uint8(math.Round(float64(dimAlpha) * PreviewOpacity))
}

// Clone copies img into a new RGBA with the same bounds.
func Clone(img image.Image) *image.RGBA {
	out := image.NewRGBA(img.Bounds())
	draw.Draw(out, out.Bounds(), img, img.Bounds().Min, draw.Src)
	return out
}

// Preview returns base darkened for the on-screen overlay.
func Preview(base image.Image, dimAlpha uint8) *image.RGBA {
	out := Clone(base)
	if a := EffectiveDim(dimAlpha); a > 0 {
		DrawMask(out, out.Bounds(), color.RGBA{A: a})
	}
	return out
}

// Flatten paints strokes, then live, over a copy of base and crops the result
// to crop. The crop is normalized first and must lie entirely inside base.
func Flatten(base image.Image, strokes []annotate.Stroke, live *annotate.Stroke, crop geom.Rect) (*RGB, error) {
	canvas := geom.FromImage(base.Bounds())
	crop = crop.Normalize()
	if crop.Empty() {
		return nil, fmt.Errorf("%w: %v is empty", ErrInvalidCrop, crop)
	}
	if !crop.In(canvas) {
		return nil, fmt.Errorf("%w: %v outside canvas %v", ErrInvalidCrop, crop, canvas)
	}
	work := Clone(base)
	PaintStrokes(work, strokes, live)
	return ToRGB(cropImage(work, crop.Image())), nil
}

// cropImage copies rect out of img into a zero-based image.
func cropImage(img *image.RGBA, rect image.Rectangle) *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	src := rect.Intersect(img.Bounds())
	if !src.Empty() {
		draw.Draw(out, src.Sub(rect.Min), img, src.Min, draw.Src)
	}
	return out
}
