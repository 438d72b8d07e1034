package render

import (
	"image"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/example/regionshot/internal/annotate"
	"github.com/example/regionshot/internal/geom"
	"github.com/example/regionshot/internal/theme"
)

// FrameInput is everything drawn in one overlay frame.
type FrameInput struct {
	Base      image.Image
	Preview   *image.RGBA
	Strokes   []annotate.Stroke
	Live      *annotate.Stroke
	Selection *geom.Rect
	Status    string
	Theme     *theme.Theme
}

// Frame draws the overlay: the dimmed preview, the selection shown at full
// brightness with its tint, border and handles, every stroke, and an optional
// status label.
func Frame(in FrameInput) *image.RGBA {
	t := in.Theme
	if t == nil {
		t = theme.Default()
	}
	t = t.Premultiplied()
	var dst *image.RGBA
	if in.Preview != nil {
		dst = Clone(in.Preview)
	} else {
		dst = Preview(in.Base, DefaultDimAlpha)
	}

	var sel image.Rectangle
	if in.Selection != nil {
		sel = in.Selection.Image().Intersect(dst.Bounds())
		if !sel.Empty() {
			draw.Draw(dst, sel, in.Base, sel.Min, draw.Src)
			DrawMask(dst, sel, t.SelectionFill)
		}
	}

	PaintStrokes(dst, in.Strokes, in.Live)

	if in.Selection != nil {
		r := in.Selection.Image()
		drawRect(dst, r, t.SelectionBorder, 1)
		for _, hr := range handleRects(r) {
			draw.Draw(dst, hr, image.NewUniform(t.Handle), image.Point{}, draw.Src)
			drawRect(dst, hr, t.HandleBorder, 1)
		}
	}

	if in.Status != "" {
		drawStatus(dst, in.Status, statusAnchor(dst.Bounds(), sel), t)
	}
	return dst
}

// statusAnchor puts the label just above the selection, or inside its top
// edge when there is no room, or at the canvas corner with no selection.
func statusAnchor(canvas, sel image.Rectangle) image.Point {
	face := basicfont.Face7x13
	h := face.Metrics().Height.Ceil() + 4
	if sel.Empty() {
		return image.Pt(canvas.Min.X+4, canvas.Min.Y+4)
	}
	if sel.Min.Y-h-2 >= canvas.Min.Y {
		return image.Pt(sel.Min.X, sel.Min.Y-h-2)
	}
	return image.Pt(sel.Min.X+4, sel.Min.Y+4)
}

func drawStatus(dst *image.RGBA, text string, at image.Point, t *theme.Theme) {
	face := basicfont.Face7x13
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(t.StatusText), Face: face}
	w := d.MeasureString(text).Ceil()
	ascent := face.Metrics().Ascent.Ceil()
	descent := face.Metrics().Descent.Ceil()
	box := image.Rect(at.X, at.Y, at.X+w+8, at.Y+ascent+descent+4)
	DrawMask(dst, box, t.StatusBackground)
	d.Dot = fixed.P(at.X+4, at.Y+2+ascent)
	d.DrawString(text)
}
