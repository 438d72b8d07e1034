package render

import (
	"image"
	"image/color"
	"image/draw"
)

// RGB is an opaque 24-bit image, 3 bytes per pixel in R, G, B order. It is the
// output format of Flatten and what clipboard bitmaps are built from.
type RGB struct {
	Pix    []uint8
	Stride int
	Rect   image.Rectangle
}

// NewRGB allocates a black RGB image.
func NewRGB(r image.Rectangle) *RGB {
	w, h := r.Dx(), r.Dy()
	return &RGB{Pix: make([]uint8, 3*w*h), Stride: 3 * w, Rect: r}
}

// ToRGB converts img, compositing any translucency over black.
func ToRGB(img image.Image) *RGB {
	b := img.Bounds()
	out := NewRGB(b)
	src, ok := img.(*image.RGBA)
	if !ok {
		src = image.NewRGBA(b)
		draw.Draw(src, b, img, b.Min, draw.Src)
	}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		si := src.PixOffset(b.Min.X, y)
		di := out.PixOffset(b.Min.X, y)
		for x := b.Min.X; x < b.Max.X; x++ {
			// RGBA is premultiplied, so over black is the stored value.
			out.Pix[di+0] = src.Pix[si+0]
			out.Pix[di+1] = src.Pix[si+1]
			out.Pix[di+2] = src.Pix[si+2]
			si += 4
			di += 3
		}
	}
	return out
}

func (p *RGB) ColorModel() color.Model { return color.RGBAModel }

func (p *RGB) Bounds() image.Rectangle { return p.Rect }

func (p *RGB) At(x, y int) color.Color { return p.RGBAt(x, y) }

// RGBAt returns the pixel at (x, y) with A always 0xff.
func (p *RGB) RGBAt(x, y int) color.RGBA {
	if !(image.Point{x, y}.In(p.Rect)) {
		return color.RGBA{}
	}
	i := p.PixOffset(x, y)
	return color.RGBA{R: p.Pix[i], G: p.Pix[i+1], B: p.Pix[i+2], A: 0xff}
}

// SetRGB writes the colour channels of c at (x, y). Alpha is ignored.
func (p *RGB) SetRGB(x, y int, c color.RGBA) {
	if !(image.Point{x, y}.In(p.Rect)) {
		return
	}
	i := p.PixOffset(x, y)
	p.Pix[i], p.Pix[i+1], p.Pix[i+2] = c.R, c.G, c.B
}

// PixOffset returns the index of the first byte of pixel (x, y).
func (p *RGB) PixOffset(x, y int) int {
	return (y-p.Rect.Min.Y)*p.Stride + (x-p.Rect.Min.X)*3
}

// Opaque is always true.
func (p *RGB) Opaque() bool { return true }

// RGBA expands the image back to RGBA, for encoders that want one.
func (p *RGB) RGBA() *image.RGBA {
	out := image.NewRGBA(p.Rect)
	for y := p.Rect.Min.Y; y < p.Rect.Max.Y; y++ {
		si := p.PixOffset(p.Rect.Min.X, y)
		di := out.PixOffset(p.Rect.Min.X, y)
		for x := p.Rect.Min.X; x < p.Rect.Max.X; x++ {
			out.Pix[di+0] = p.Pix[si+0]
			out.Pix[di+1] = p.Pix[si+1]
			out.Pix[di+2] = p.Pix[si+2]
			out.Pix[di+3] = 0xff
			si += 3
			di += 4
		}
	}
	return out
}
