// Package assets provides the application icon in the encodings the tray
// and notification backends expect.
package assets

import (
	"bytes"
	_ "embed"
	"encoding/binary"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"sync"

	xdraw "golang.org/x/image/draw"
)

//go:embed icons/regionshot.svg
var svgData []byte

// IconSizes are the square sizes IconPNG renders.
var IconSizes = []int{16, 22, 24, 32, 48, 64}

const masterSize = 32

var (
	background = color.RGBA{0x3c, 0x3c, 0x46, 0xff}
	lavender   = color.RGBA{0xdc, 0xbe, 0xe6, 0xff}
	tint       = color.RGBA{0x63, 0x55, 0x67, 0x73}
	pen        = color.RGBA{0xff, 0x00, 0x00, 0xff}

	masterOnce sync.Once
	master     *image.RGBA
)

// drawMaster paints the 32px icon: a lavender selection with four handles
// and a red stroke across it, the same picture as the embedded SVG.
func drawMaster() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, masterSize, masterSize))
	draw.Draw(img, img.Bounds(), &image.Uniform{background}, image.Point{}, draw.Src)
	sel := image.Rect(6, 8, 26, 24)
	draw.Draw(img, sel, &image.Uniform{tint}, image.Point{}, draw.Over)
	for _, edge := range []image.Rectangle{
		image.Rect(sel.Min.X, sel.Min.Y, sel.Max.X, sel.Min.Y+2),
		image.Rect(sel.Min.X, sel.Max.Y-2, sel.Max.X, sel.Max.Y),
		image.Rect(sel.Min.X, sel.Min.Y, sel.Min.X+2, sel.Max.Y),
		image.Rect(sel.Max.X-2, sel.Min.Y, sel.Max.X, sel.Max.Y),
	} {
		draw.Draw(img, edge, &image.Uniform{lavender}, image.Point{}, draw.Src)
	}
	for x := 10; x <= 21; x++ {
		y := 20 - (x-10)*8/11
		img.SetRGBA(x, y, pen)
		img.SetRGBA(x, y+1, pen)
	}
	for _, c := range []image.Point{{4, 6}, {24, 6}, {4, 22}, {24, 22}} {
		h := image.Rect(c.X, c.Y, c.X+4, c.Y+4)
		draw.Draw(img, h, &image.Uniform{color.Black}, image.Point{}, draw.Src)
		draw.Draw(img, h.Inset(1), &image.Uniform{color.White}, image.Point{}, draw.Src)
	}
	return img
}

// IconImage renders the icon at size x size pixels.
func IconImage(size int) (image.Image, error) {
	if size <= 0 {
		return nil, fmt.Errorf("icon size must be positive, got %d", size)
	}
	masterOnce.Do(func() { master = drawMaster() })
	if size == masterSize {
		return master, nil
	}
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), master, master.Bounds(), xdraw.Src, nil)
	return dst, nil
}

// IconPNG returns the icon encoded as PNG.
func IconPNG(size int) ([]byte, error) {
	img, err := IconImage(size)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// IconICO wraps a PNG icon in a single-image ICO container, which Windows
// accepts for tray icons.
func IconICO(size int) ([]byte, error) {
	data, err := IconPNG(size)
	if err != nil {
		return nil, err
	}
	dim := byte(size)
	if size >= 256 {
		dim = 0
	}
	var buf bytes.Buffer
	le := binary.LittleEndian
	_ = binary.Write(&buf, le, [3]uint16{0, 1, 1})
	buf.Write([]byte{dim, dim, 0, 0})
	_ = binary.Write(&buf, le, [2]uint16{1, 32})
	_ = binary.Write(&buf, le, [2]uint32{uint32(len(data)), 22})
	buf.Write(data)
	return buf.Bytes(), nil
}

// IconSVG returns the scalable icon.
func IconSVG() []byte {
	return append([]byte(nil), svgData...)
}
