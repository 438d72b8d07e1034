package theme

import (
	"image/color"
	"sort"
)

// Theme defines the colours of the selection overlay. Colours are stored
// with straight (non-premultiplied) alpha, as written in theme files; use
// Premultiplied before drawing with them.
type Theme struct {
	Name string

	// Selection
	SelectionFill   color.RGBA // Tint laid over the selected area
	SelectionBorder color.RGBA
	Handle          color.RGBA // Resize handle fill
	HandleBorder    color.RGBA

	// Status label
	StatusText       color.RGBA
	StatusBackground color.RGBA
}

// Default returns the built-in light lavender theme.
func Default() *Theme {
	return &Theme{
		Name:             "Default",
		SelectionFill:    color.RGBA{220, 190, 230, 40},
		SelectionBorder:  color.RGBA{220, 190, 230, 255},
		Handle:           color.RGBA{255, 255, 255, 255},
		HandleBorder:     color.RGBA{0, 0, 0, 255},
		StatusText:       color.RGBA{255, 255, 255, 255},
		StatusBackground: color.RGBA{0, 0, 0, 180},
	}
}

var builtin = map[string]func() *Theme{
	"default": Default,
	"dark": func() *Theme {
		t := Default()
		t.Name = "Dark"
		t.SelectionFill = color.RGBA{0, 0, 0, 0}
		t.SelectionBorder = color.RGBA{90, 90, 90, 255}
		t.Handle = color.RGBA{40, 40, 40, 255}
		t.HandleBorder = color.RGBA{200, 200, 200, 255}
		return t
	},
	"high_contrast": func() *Theme {
		t := Default()
		t.Name = "High Contrast"
		t.SelectionFill = color.RGBA{0, 0, 0, 0}
		t.SelectionBorder = color.RGBA{255, 255, 0, 255}
		t.Handle = color.RGBA{255, 255, 0, 255}
		t.HandleBorder = color.RGBA{0, 0, 0, 255}
		t.StatusText = color.RGBA{255, 255, 0, 255}
		t.StatusBackground = color.RGBA{0, 0, 0, 255}
		return t
	},
}

// Builtin returns a fresh copy of a built-in theme.
func Builtin(name string) (*Theme, bool) {
	fn, ok := builtin[name]
	if !ok {
		return nil, false
	}
	return fn(), true
}

// BuiltinNames lists the built-in themes in sorted order.
func BuiltinNames() []string {
	names := make([]string, 0, len(builtin))
	for n := range builtin {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// premultiply converts a straight-alpha colour to the premultiplied form
// image/draw expects.
func premultiply(c color.RGBA) color.RGBA {
	if c.A == 0xff {
		return c
	}
	return color.RGBAModel.Convert(color.NRGBA(c)).(color.RGBA)
}

// Premultiplied returns a copy of t with every colour premultiplied.
func (t *Theme) Premultiplied() *Theme {
	p := *t
	for _, c := range []*color.RGBA{&p.SelectionFill, &p.SelectionBorder, &p.Handle, &p.HandleBorder, &p.StatusText, &p.StatusBackground} {
		*c = premultiply(*c)
	}
	return &p
}
