// Package geom holds the integer rectangle and hit-testing helpers shared by
// the selection and compositing code.
package geom

import (
	"fmt"
	"image"
)

// Point is a position in canvas pixels.
type Point struct {
	X, Y int
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y int) Point { return Point{X: x, Y: y} }

func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

func (p Point) String() string { return fmt.Sprintf("(%d,%d)", p.X, p.Y) }

// Image converts p to an image.Point.
func (p Point) Image() image.Point { return image.Pt(p.X, p.Y) }

// Rect is an axis-aligned rectangle stored as origin plus size. Width and
// Height may be negative while a rectangle is being built; call Normalize
// before hit-testing or cropping.
type Rect struct {
	X, Y          int
	Width, Height int
}

// RectFromPoints returns the normalized bounding box of a and b.
func RectFromPoints(a, b Point) Rect {
	return Rect{X: a.X, Y: a.Y, Width: b.X - a.X, Height: b.Y - a.Y}.Normalize()
}

// FromImage converts an image.Rectangle.
func FromImage(r image.Rectangle) Rect {
	r = r.Canon()
	return Rect{X: r.Min.X, Y: r.Min.Y, Width: r.Dx(), Height: r.Dy()}
}

// Image returns the normalized rectangle as an image.Rectangle.
func (r Rect) Image() image.Rectangle {
	n := r.Normalize()
	return image.Rect(n.X, n.Y, n.X+n.Width, n.Y+n.Height)
}

// Normalize returns the same area with non-negative width and height.
func (r Rect) Normalize() Rect {
	if r.Width < 0 {
		r.X += r.Width
		r.Width = -r.Width
	}
	if r.Height < 0 {
		r.Y += r.Height
		r.Height = -r.Height
	}
	return r
}

func (r Rect) Left() int   { return r.Normalize().X }
func (r Rect) Top() int    { return r.Normalize().Y }
func (r Rect) Right() int  { n := r.Normalize(); return n.X + n.Width }
func (r Rect) Bottom() int { n := r.Normalize(); return n.Y + n.Height }

// Origin is the top-left corner of the normalized rectangle.
func (r Rect) Origin() Point { n := r.Normalize(); return Point{n.X, n.Y} }

// Empty reports whether the rectangle covers no pixels.
func (r Rect) Empty() bool { return r.Width == 0 || r.Height == 0 }

// Contains reports whether p lies inside the rectangle. Right and bottom are
// exclusive.
func (r Rect) Contains(p Point) bool {
	n := r.Normalize()
	return p.X >= n.X && p.X < n.X+n.Width && p.Y >= n.Y && p.Y < n.Y+n.Height
}

// Intersects reports whether r and o share at least one pixel.
func (r Rect) Intersects(o Rect) bool {
	return !r.Intersect(o).Empty()
}

// Intersect returns the overlap of r and o, or the zero Rect.
func (r Rect) Intersect(o Rect) Rect {
	return FromImage(r.Image().Intersect(o.Image()))
}

// In reports whether every pixel of r lies inside o. An empty r is never in o.
func (r Rect) In(o Rect) bool {
	if r.Empty() {
		return false
	}
	return r.Left() >= o.Left() && r.Top() >= o.Top() && r.Right() <= o.Right() && r.Bottom() <= o.Bottom()
}

// Translate moves the rectangle by d.
func (r Rect) Translate(d Point) Rect {
	r.X += d.X
	r.Y += d.Y
	return r
}

// MoveTo places the normalized rectangle's origin at p.
func (r Rect) MoveTo(p Point) Rect {
	n := r.Normalize()
	n.X, n.Y = p.X, p.Y
	return n
}

func (r Rect) String() string {
	return fmt.Sprintf("{%d,%d %dx%d}", r.X, r.Y, r.Width, r.Height)
}
