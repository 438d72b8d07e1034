package render

import (
	"bytes"
	"encoding/binary"
	"errors"
	"image"
	"image/color"
	"testing"

	"golang.org/x/image/bmp"

	"github.com/example/regionshot/internal/annotate"
	"github.com/example/regionshot/internal/geom"
	"github.com/example/regionshot/internal/theme"
)

func gradient(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{R: uint8(x * 7), G: uint8(y * 5), B: uint8(x + y), A: 255})
		}
	}
	return img
}

func near(a, b uint8) bool {
	d := int(a) - int(b)
	return d >= -1 && d <= 1
}

func TestEffectiveDim(t *testing.T) {
	if got := EffectiveDim(DefaultDimAlpha); got != 75 {
		t.Fatalf("EffectiveDim(150) = %d, want 75", got)
	}
	if got := EffectiveDim(0); got != 0 {
		t.Fatalf("EffectiveDim(0) = %d", got)
	}
	if got := EffectiveDim(255); got != 128 {
		t.Fatalf("EffectiveDim(255) = %d", got)
	}
}

func TestPreviewDimsEveryPixel(t *testing.T) {
	base := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for i := 0; i < len(base.Pix); i += 4 {
		base.Pix[i], base.Pix[i+1], base.Pix[i+2], base.Pix[i+3] = 200, 100, 50, 255
	}
	out := Preview(base, DefaultDimAlpha)
	want := color.RGBA{R: 141, G: 70, B: 35, A: 255}
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			got := out.RGBAAt(x, y)
			if !near(got.R, want.R) || !near(got.G, want.G) || !near(got.B, want.B) || got.A != 255 {
				t.Fatalf("pixel (%d,%d) = %v, want ~%v", x, y, got, want)
			}
		}
	}
	if base.RGBAAt(0, 0).R != 200 {
		t.Fatalf("Preview modified its input")
	}
	if same := Preview(base, 0); same.RGBAAt(1, 1) != base.RGBAAt(1, 1) {
		t.Fatalf("zero dim changed pixels")
	}
}

func TestFlattenWithoutStrokesMatchesBase(t *testing.T) {
	base := gradient(16, 12)
	out, err := Flatten(base, nil, nil, geom.FromImage(base.Bounds()))
	if err != nil {
		t.Fatalf("Flatten: %v", err)
	}
	want := ToRGB(base)
	if out.Rect != want.Rect || !bytes.Equal(out.Pix, want.Pix) {
		t.Fatalf("flatten of an empty stack differs from the base")
	}
}

func TestFlattenLaterStrokeWins(t *testing.T) {
	base := image.NewRGBA(image.Rect(0, 0, 20, 20))
	red := annotate.Style{Color: color.RGBA{R: 255, A: 255}, Width: 3}
	blue := annotate.Style{Color: color.RGBA{B: 255, A: 255}, Width: 3}
	a := annotate.NewStroke(annotate.Line, red, geom.Pt(0, 10), geom.Pt(19, 10))
	b := annotate.NewStroke(annotate.Line, blue, geom.Pt(10, 0), geom.Pt(10, 19))

	out, err := Flatten(base, []annotate.Stroke{a, b}, nil, geom.Rect{Width: 20, Height: 20})
	if err != nil {
		t.Fatalf("Flatten: %v", err)
	}
	if got := out.RGBAt(10, 10); got != (color.RGBA{B: 255, A: 255}) {
		t.Fatalf("crossing pixel = %v, want blue", got)
	}
	if got := out.RGBAt(2, 10); got != (color.RGBA{R: 255, A: 255}) {
		t.Fatalf("red line pixel = %v", got)
	}

	out, _ = Flatten(base, []annotate.Stroke{b, a}, nil, geom.Rect{Width: 20, Height: 20})
	if got := out.RGBAt(10, 10); got != (color.RGBA{R: 255, A: 255}) {
		t.Fatalf("reversed order crossing pixel = %v, want red", got)
	}
}

func TestFlattenLiveStrokeOnTop(t *testing.T) {
	base := image.NewRGBA(image.Rect(0, 0, 10, 10))
	green := annotate.Style{Color: color.RGBA{G: 255, A: 255}, Width: 1}
	red := annotate.Style{Color: color.RGBA{R: 255, A: 255}, Width: 1}
	done := annotate.NewStroke(annotate.Line, green, geom.Pt(0, 5), geom.Pt(9, 5))
	live := annotate.NewStroke(annotate.Line, red, geom.Pt(5, 0), geom.Pt(5, 9))
	out, err := Flatten(base, []annotate.Stroke{done}, &live, geom.Rect{Width: 10, Height: 10})
	if err != nil {
		t.Fatalf("Flatten: %v", err)
	}
	if got := out.RGBAt(5, 5); got.R != 255 || got.G != 0 {
		t.Fatalf("live stroke not painted last: %v", got)
	}
}

func TestFlattenCropsAndNormalizes(t *testing.T) {
	base := gradient(30, 30)
	out, err := Flatten(base, nil, nil, geom.Rect{X: 15, Y: 20, Width: -10, Height: -5})
	if err != nil {
		t.Fatalf("Flatten: %v", err)
	}
	if out.Bounds() != image.Rect(0, 0, 10, 5) {
		t.Fatalf("bounds = %v", out.Bounds())
	}
	want := base.RGBAAt(5, 15)
	if got := out.RGBAt(0, 0); got != want {
		t.Fatalf("origin pixel = %v, want %v", got, want)
	}
}

func TestFlattenRejectsBadCrops(t *testing.T) {
	base := image.NewRGBA(image.Rect(0, 0, 10, 10))
	crops := []geom.Rect{
		{X: 0, Y: 0, Width: 20, Height: 20},
		{X: 2, Y: 2, Width: 0, Height: 5},
		{X: 2, Y: 2, Width: 5, Height: 0},
		{X: 20, Y: 20, Width: 5, Height: 5},
		{X: -1, Y: 0, Width: 5, Height: 5},
	}
	for _, c := range crops {
		if _, err := Flatten(base, nil, nil, c); !errors.Is(err, ErrInvalidCrop) {
			t.Errorf("Flatten(crop %v) error = %v, want ErrInvalidCrop", c, err)
		}
	}
}

func TestRectangleStrokeOutline(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 20, 20))
	s := annotate.NewStroke(annotate.Rectangle, annotate.Style{Color: color.RGBA{R: 255, A: 255}, Width: 1}, geom.Pt(15, 15), geom.Pt(5, 5))
	PaintStroke(img, s)
	for _, p := range []image.Point{{5, 5}, {15, 5}, {15, 15}, {5, 15}, {10, 5}, {5, 10}} {
		if img.RGBAAt(p.X, p.Y).R != 255 {
			t.Errorf("edge pixel %v not painted", p)
		}
	}
	if img.RGBAAt(10, 10).A != 0 {
		t.Fatalf("rectangle stroke filled its interior")
	}
}

func TestStrokesClipAtCanvasEdge(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 5, 5))
	s := annotate.NewStroke(annotate.Freehand, annotate.DefaultStyle(), geom.Pt(-10, 2), geom.Pt(20, 2))
	PaintStroke(img, s)
	if img.RGBAAt(0, 2).R != 255 || img.RGBAAt(4, 2).R != 255 {
		t.Fatalf("visible part of stroke not painted")
	}
}

func TestToRGBCompositesOverBlack(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	img.Set(0, 0, color.NRGBA{R: 200, A: 128})
	out := ToRGB(img)
	if got := out.RGBAt(0, 0); !near(got.R, 100) || got.A != 255 {
		t.Fatalf("pixel = %v, want ~100 red", got)
	}
	if len(out.Pix) != 3 {
		t.Fatalf("expected 3 bytes per pixel, got %d", len(out.Pix))
	}
}

func TestEncodeDIB(t *testing.T) {
	img := NewRGB(image.Rect(0, 0, 3, 2))
	img.SetRGB(0, 0, color.RGBA{R: 10, G: 20, B: 30})
	full, err := EncodeBMP(img)
	if err != nil {
		t.Fatalf("EncodeBMP: %v", err)
	}
	dib, err := EncodeDIB(img)
	if err != nil {
		t.Fatalf("EncodeDIB: %v", err)
	}
	if len(full)-len(dib) != 14 || string(full[:2]) != "BM" {
		t.Fatalf("expected the 14 byte file header to be stripped")
	}
	if size := binary.LittleEndian.Uint32(dib[0:4]); size != 40 {
		t.Fatalf("info header size = %d, want 40", size)
	}
	if w := int32(binary.LittleEndian.Uint32(dib[4:8])); w != 3 {
		t.Fatalf("width = %d", w)
	}
	if bpp := binary.LittleEndian.Uint16(dib[14:16]); bpp != 24 {
		t.Fatalf("bits per pixel = %d, want 24", bpp)
	}
	back, err := bmp.Decode(bytes.NewReader(full))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	r, g, b, _ := back.At(0, 0).RGBA()
	if r>>8 != 10 || g>>8 != 20 || b>>8 != 30 {
		t.Fatalf("decoded pixel = %d,%d,%d", r>>8, g>>8, b>>8)
	}
}

func TestFrameShowsSelectionUndimmed(t *testing.T) {
	base := image.NewRGBA(image.Rect(0, 0, 40, 40))
	for i := 0; i < len(base.Pix); i += 4 {
		base.Pix[i], base.Pix[i+1], base.Pix[i+2], base.Pix[i+3] = 200, 200, 200, 255
	}
	th := theme.Default()
	th.SelectionFill = color.RGBA{}
	sel := geom.Rect{X: 10, Y: 10, Width: 20, Height: 20}
	out := Frame(FrameInput{Base: base, Selection: &sel, Theme: th})
	if got := out.RGBAAt(20, 20); got.R != 200 {
		t.Fatalf("selection interior = %v, want undimmed", got)
	}
	if got := out.RGBAAt(2, 38); got.R >= 200 {
		t.Fatalf("outside pixel = %v, want dimmed", got)
	}
	if got := out.RGBAAt(15, 10); got != th.SelectionBorder {
		t.Fatalf("border pixel = %v, want %v", got, th.SelectionBorder)
	}
	if got := out.RGBAAt(10, 10); got != th.HandleBorder && got != th.Handle {
		t.Fatalf("corner handle missing at (10,10): %v", got)
	}
}

func TestFrameStatusLabel(t *testing.T) {
	base := image.NewRGBA(image.Rect(0, 0, 80, 40))
	for i := 0; i < len(base.Pix); i += 4 {
		base.Pix[i], base.Pix[i+1], base.Pix[i+2], base.Pix[i+3] = 200, 200, 200, 255
	}
	preview := Preview(base, DefaultDimAlpha)
	out := Frame(FrameInput{Base: base, Preview: preview, Status: "select"})
	if got, dim := out.RGBAAt(5, 5), preview.RGBAAt(5, 5); got.R >= dim.R {
		t.Fatalf("status background not drawn: %v vs %v", got, dim)
	}
	if out.RGBAAt(70, 35) != preview.RGBAAt(70, 35) {
		t.Fatalf("pixels away from the label changed")
	}
	if preview.RGBAAt(5, 5).R == 0 {
		t.Fatalf("Frame drew into the cached preview")
	}
}

func TestFrameDefaultTintOverWhite(t *testing.T) {
	base := image.NewRGBA(image.Rect(0, 0, 40, 40))
	for i := range base.Pix {
		base.Pix[i] = 255
	}
	sel := geom.Rect{X: 5, Y: 5, Width: 30, Height: 30}
	out := Frame(FrameInput{Base: base, Selection: &sel})
	got := out.RGBAAt(20, 20)
	if got.R < 245 || got.G < 240 || got.B < 247 || got.A != 255 {
		t.Fatalf("tinted white = %v, want close to (250,245,252)", got)
	}
	if got.R == 255 && got.G == 255 && got.B == 255 {
		t.Fatalf("selection tint not applied")
	}
	if got := out.RGBAAt(12, 5); got != theme.Default().SelectionBorder {
		t.Fatalf("border pixel = %v", got)
	}
}
