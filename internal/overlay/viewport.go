package overlay

import (
	"image"
	"math"

	"github.com/example/regionshot/internal/geom"
)

// viewport places the canvas inside the window. Captures larger than the
// window are scaled down to fit and centred; smaller ones sit at the origin.
type viewport struct {
	zoom float64
	dst  image.Rectangle
}

func fitZoom(canvas, win image.Point) float64 {
	if canvas.X <= 0 || canvas.Y <= 0 || win.X <= 0 || win.Y <= 0 {
		return 1
	}
	return math.Min(1, math.Min(float64(win.X)/float64(canvas.X), float64(win.Y)/float64(canvas.Y)))
}

func newViewport(canvas, win image.Point) viewport {
	z := fitZoom(canvas, win)
	w := int(math.Round(float64(canvas.X) * z))
	h := int(math.Round(float64(canvas.Y) * z))
	min := image.Point{}
	if z < 1 {
		min = image.Pt((win.X-w)/2, (win.Y-h)/2)
	}
	return viewport{zoom: z, dst: image.Rectangle{Min: min, Max: min.Add(image.Pt(w, h))}}
}

// toCanvas maps window coordinates back to capture pixels.
func (v viewport) toCanvas(x, y float32) geom.Point {
	return geom.Pt(
		int(math.Floor((float64(x)-float64(v.dst.Min.X))/v.zoom)),
		int(math.Floor((float64(y)-float64(v.dst.Min.Y))/v.zoom)),
	)
}
