package render

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/example/regionshot/internal/annotate"
	"github.com/example/regionshot/internal/geom"
)

// handleSize is the side of the square grab handles drawn on a selection.
const handleSize = 8

func setThickPixel(img *image.RGBA, x, y, thick int, col color.RGBA) {
	r := thick / 2
	b := img.Bounds()
	for dx := -r; dx <= r; dx++ {
		for dy := -r; dy <= r; dy++ {
			px := x + dx
			py := y + dy
			if image.Pt(px, py).In(b) {
				img.SetRGBA(px, py, col)
			}
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func drawLine(img *image.RGBA, x0, y0, x1, y1 int, col color.RGBA, thick int) {
	dx := abs(x1 - x0)
	dy := abs(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy
	for {
		setThickPixel(img, x0, y0, thick, col)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func drawPolyline(img *image.RGBA, pts []geom.Point, col color.RGBA, thick int) {
	if len(pts) == 1 {
		setThickPixel(img, pts[0].X, pts[0].Y, thick, col)
		return
	}
	for i := 1; i < len(pts); i++ {
		drawLine(img, pts[i-1].X, pts[i-1].Y, pts[i].X, pts[i].Y, col, thick)
	}
}

// drawBox outlines the box whose opposite corners are a and b, both inclusive.
func drawBox(img *image.RGBA, a, b geom.Point, col color.RGBA, thick int) {
	drawLine(img, a.X, a.Y, b.X, a.Y, col, thick)
	drawLine(img, b.X, a.Y, b.X, b.Y, col, thick)
	drawLine(img, b.X, b.Y, a.X, b.Y, col, thick)
	drawLine(img, a.X, b.Y, a.X, a.Y, col, thick)
}

// drawRect outlines rect with its right and bottom edges at Max-1.
func drawRect(img *image.RGBA, rect image.Rectangle, col color.RGBA, thick int) {
	if rect.Empty() {
		return
	}
	drawBox(img, geom.Pt(rect.Min.X, rect.Min.Y), geom.Pt(rect.Max.X-1, rect.Max.Y-1), col, thick)
}

// PaintStroke draws s onto dst. Pixels outside dst are clipped.
func PaintStroke(dst *image.RGBA, s annotate.Stroke) {
	st := s.Style()
	width := max(st.Width, 1)
	switch s.Kind() {
	case annotate.Freehand:
		drawPolyline(dst, s.Points(), st.Color, width)
	case annotate.Line:
		a, b := s.Ends()
		drawLine(dst, a.X, a.Y, b.X, b.Y, st.Color, width)
	case annotate.Rectangle:
		a, b := s.Ends()
		drawBox(dst, a, b, st.Color, width)
	}
}

// PaintStrokes draws strokes in order, then live on top when present.
func PaintStrokes(dst *image.RGBA, strokes []annotate.Stroke, live *annotate.Stroke) {
	for _, s := range strokes {
		PaintStroke(dst, s)
	}
	if live != nil {
		PaintStroke(dst, *live)
	}
}

// DrawMask blends col over rect. The colour's alpha sets the strength.
func DrawMask(img *image.RGBA, rect image.Rectangle, col color.Color) {
	draw.Draw(img, rect, image.NewUniform(col), image.Point{}, draw.Over)
}

// handleRects returns the eight grab handles of rect, clockwise from the
// top-left corner.
func handleRects(rect image.Rectangle) []image.Rectangle {
	hs := handleSize / 2
	cx := (rect.Min.X + rect.Max.X) / 2
	cy := (rect.Min.Y + rect.Max.Y) / 2
	return []image.Rectangle{
		image.Rect(rect.Min.X-hs, rect.Min.Y-hs, rect.Min.X+hs, rect.Min.Y+hs), // tl
		image.Rect(cx-hs, rect.Min.Y-hs, cx+hs, rect.Min.Y+hs),                 // t
		image.Rect(rect.Max.X-hs, rect.Min.Y-hs, rect.Max.X+hs, rect.Min.Y+hs), // tr
		image.Rect(rect.Max.X-hs, cy-hs, rect.Max.X+hs, cy+hs),                 // r
		image.Rect(rect.Max.X-hs, rect.Max.Y-hs, rect.Max.X+hs, rect.Max.Y+hs), // br
		image.Rect(cx-hs, rect.Max.Y-hs, cx+hs, rect.Max.Y+hs),                 // b
		image.Rect(rect.Min.X-hs, rect.Max.Y-hs, rect.Min.X+hs, rect.Max.Y+hs), // bl
		image.Rect(rect.Min.X-hs, cy-hs, rect.Min.X+hs, cy+hs),                 // l
	}
}
