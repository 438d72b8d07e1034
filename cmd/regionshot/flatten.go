package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/example/regionshot/internal/annotate"
	"github.com/example/regionshot/internal/geom"
	"github.com/example/regionshot/internal/render"
	"github.com/example/regionshot/internal/theme"
)

// flattenCmd is the windowless path: strokes given as flags are painted over
// an image file which is then cropped exactly as a commit would.
type flattenCmd struct {
	*root
	fs          *flag.FlagSet
	file        string
	rect        string
	color       string
	width       int
	output      string
	dib         string
	toClipboard bool
	stdout      io.Writer

	crop    geom.Rect
	style   annotate.Style
	strokes []annotate.Stroke
}

func (f *flattenCmd) FlagSet() *flag.FlagSet {
	return f.fs
}

func parseFlattenCmd(args []string, r *root) (*flattenCmd, error) {
	fs := flag.NewFlagSet("flatten", flag.ExitOnError)
	f := &flattenCmd{root: r.subcommand("flatten"), fs: fs, stdout: os.Stdout, style: annotate.DefaultStyle()}
	if r.config != nil {
		f.style = annotate.Style{Color: r.config.DrawColor, Width: r.config.LineWidth}
	}
	fs.Usage = usageFunc(f)
	fs.StringVar(&f.file, "file", "", "image to annotate")
	fs.StringVar(&f.rect, "rect", "", "selection as x,y,w,h")
	fs.StringVar(&f.color, "color", "", "pen colour for the strokes that follow, #rrggbb or a name")
	fs.IntVar(&f.width, "width", 0, "pen width for the strokes that follow")
	fs.Func("line", "line stroke x1,y1,x2,y2 (repeatable)", f.addStroke(annotate.Line))
	fs.Func("box", "rectangle stroke x,y,w,h (repeatable)", f.addBox)
	fs.Func("path", "freehand stroke x,y;x,y;... (repeatable)", f.addStroke(annotate.Freehand))
	fs.StringVar(&f.output, "output", "", "write the result as PNG, or BMP when the name ends in .bmp")
	fs.StringVar(&f.dib, "dib", "", "write the result as a headerless device independent bitmap")
	fs.BoolVar(&f.toClipboard, "to-clipboard", false, "copy the result to the clipboard")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if f.file == "" || f.rect == "" {
		return nil, &UsageError{of: f}
	}
	crop, err := parseRect(f.rect)
	if err != nil {
		return nil, usageErrorf(f, "-rect: %v", err)
	}
	f.crop = crop
	if f.output == "" && f.dib == "" && !f.toClipboard {
		return nil, usageErrorf(f, "one of -output, -dib or -to-clipboard is required")
	}
	return f, nil
}

// pen applies -color and -width as they currently stand.
func (f *flattenCmd) pen() (annotate.Style, error) {
	st := f.style
	if f.color != "" {
		c, err := theme.ParseColor(f.color)
		if err != nil {
			return st, err
		}
		if c.A != 0xff {
			return st, fmt.Errorf("pen colour %s must be opaque", f.color)
		}
		st.Color = c
	}
	if f.width > 0 {
		st.Width = f.width
	}
	return st, nil
}

func (f *flattenCmd) addStroke(kind annotate.Kind) func(string) error {
	return func(v string) error {
		pts, err := parsePoints(v)
		if err != nil {
			return err
		}
		if kind == annotate.Line && len(pts) != 2 {
			return fmt.Errorf("line needs two points, got %d", len(pts))
		}
		st, err := f.pen()
		if err != nil {
			return err
		}
		f.strokes = append(f.strokes, annotate.NewStroke(kind, st, pts...))
		return nil
	}
}

func (f *flattenCmd) addBox(v string) error {
	r, err := parseRect(v)
	if err != nil {
		return err
	}
	st, err := f.pen()
	if err != nil {
		return err
	}
	n := r.Normalize()
	a := n.Origin()
	b := geom.Pt(n.X+n.Width-1, n.Y+n.Height-1)
	f.strokes = append(f.strokes, annotate.NewStroke(annotate.Rectangle, st, a, b))
	return nil
}

func (f *flattenCmd) Run() error {
	base, err := loadImageFn(f.file)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", f.file, err)
	}
	out, err := render.Flatten(base, f.strokes, nil, f.crop)
	if err != nil {
		if errors.Is(err, render.ErrInvalidCrop) {
			return fmt.Errorf("selection %v does not fit the %dx%d image: %w", f.crop, base.Bounds().Dx(), base.Bounds().Dy(), err)
		}
		return err
	}
	if f.output != "" {
		if err := writeImageFile(f.output, out); err != nil {
			return err
		}
		fmt.Fprintf(f.stdout, "%s %dx%d\n", f.output, out.Rect.Dx(), out.Rect.Dy())
	}
	if f.dib != "" {
		data, err := render.EncodeDIB(out)
		if err != nil {
			return fmt.Errorf("failed to encode DIB: %w", err)
		}
		if err := os.WriteFile(f.dib, data, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", f.dib, err)
		}
	}
	if f.toClipboard {
		lost, err := clipboardWriteFn(out)
		if err != nil {
			return fmt.Errorf("failed to copy to clipboard: %w", err)
		}
		f.notifier.Copy(out)
		if f.config != nil && clipboardHoldFn(lost, f.config.ClipboardHold) {
			log.Printf("clipboard taken over by another application")
		}
	}
	return nil
}

func writeImageFile(path string, img *render.RGB) error {
	if !strings.EqualFold(filepath.Ext(path), ".bmp") {
		return writePNG(path, img)
	}
	data, err := render.EncodeBMP(img)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func parseInts(s string, n int) ([]int, error) {
	parts := strings.Split(s, ",")
	if len(parts) != n {
		return nil, fmt.Errorf("expected %d comma separated numbers, got %q", n, s)
	}
	out := make([]int, n)
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", p)
		}
		out[i] = v
	}
	return out, nil
}

// parseRect reads x,y,w,h. Negative sizes are normalized.
func parseRect(s string) (geom.Rect, error) {
	v, err := parseInts(s, 4)
	if err != nil {
		return geom.Rect{}, err
	}
	return geom.Rect{X: v[0], Y: v[1], Width: v[2], Height: v[3]}.Normalize(), nil
}

// parsePoints reads either x1,y1,x2,y2 or x,y;x,y;...
func parsePoints(s string) ([]geom.Point, error) {
	var groups []string
	if strings.Contains(s, ";") {
		groups = strings.Split(strings.Trim(s, ";"), ";")
	} else {
		fields := strings.Split(s, ",")
		if len(fields)%2 != 0 {
			return nil, fmt.Errorf("odd number of coordinates in %q", s)
		}
		for i := 0; i < len(fields); i += 2 {
			groups = append(groups, fields[i]+","+fields[i+1])
		}
	}
	pts := make([]geom.Point, 0, len(groups))
	for _, g := range groups {
		v, err := parseInts(g, 2)
		if err != nil {
			return nil, err
		}
		pts = append(pts, geom.Pt(v[0], v[1]))
	}
	if len(pts) == 0 {
		return nil, fmt.Errorf("no points in %q", s)
	}
	return pts, nil
}
