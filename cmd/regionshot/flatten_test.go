package main

import (
	"bytes"
	"encoding/binary"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/regionshot/internal/geom"
	"github.com/example/regionshot/internal/render"
)

func writeTestImage(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = 0, 0, 200, 255
	}
	path := filepath.Join(t.TempDir(), "in.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode: %v", err)
	}
	return path
}

func TestParseRect(t *testing.T) {
	tests := []struct {
		in      string
		want    geom.Rect
		wantErr bool
	}{
		{in: "1,2,3,4", want: geom.Rect{X: 1, Y: 2, Width: 3, Height: 4}},
		{in: " 10, 10, -5, -5", want: geom.Rect{X: 5, Y: 5, Width: 5, Height: 5}},
		{in: "1,2,3", wantErr: true},
		{in: "a,b,c,d", wantErr: true},
	}
	for _, tt := range tests {
		got, err := parseRect(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("parseRect(%q) expected error", tt.in)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("parseRect(%q) = %v, %v; want %v", tt.in, got, err, tt.want)
		}
	}
}

func TestParsePoints(t *testing.T) {
	pts, err := parsePoints("0,0;5,5;10,0;")
	if err != nil || len(pts) != 3 || pts[2] != geom.Pt(10, 0) {
		t.Fatalf("parsePoints = %v, %v", pts, err)
	}
	pts, err = parsePoints("1,2,3,4")
	if err != nil || len(pts) != 2 || pts[1] != geom.Pt(3, 4) {
		t.Fatalf("parsePoints pairs = %v, %v", pts, err)
	}
	if _, err := parsePoints("1,2,3"); err == nil {
		t.Fatalf("expected error for odd coordinates")
	}
}

func TestParseFlattenRequiresInputs(t *testing.T) {
	cases := [][]string{
		{"-rect", "0,0,1,1", "-output", "x.png"},
		{"-file", "in.png", "-output", "x.png"},
		{"-file", "in.png", "-rect", "0,0,1,1"},
	}
	for _, args := range cases {
		_, err := parseFlattenCmd(args, testRoot())
		var uerr *UsageError
		if !errors.As(err, &uerr) {
			t.Errorf("parseFlattenCmd(%v) = %v, want usage error", args, err)
		}
	}
}

func TestFlattenWritesCroppedPNG(t *testing.T) {
	in := writeTestImage(t, 20, 20)
	out := filepath.Join(t.TempDir(), "out.png")
	var stdout bytes.Buffer
	cmd, err := parseFlattenCmd([]string{
		"-file", in, "-rect", "5,5,10,8",
		"-color", "#00ff00", "-width", "1", "-line", "5,6,14,6",
		"-output", out,
	}, testRoot())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	cmd.stdout = &stdout
	if err := cmd.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	f, err := os.Open(out)
	if err != nil {
		t.Fatalf("open output: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if img.Bounds() != image.Rect(0, 0, 10, 8) {
		t.Fatalf("bounds = %v", img.Bounds())
	}
	if got := color.RGBAModel.Convert(img.At(3, 1)).(color.RGBA); got != (color.RGBA{0, 255, 0, 255}) {
		t.Fatalf("line pixel = %v", got)
	}
	if got := color.RGBAModel.Convert(img.At(3, 4)).(color.RGBA); got != (color.RGBA{0, 0, 200, 255}) {
		t.Fatalf("background pixel = %v", got)
	}
	if !strings.Contains(stdout.String(), "10x8") {
		t.Fatalf("stdout = %q", stdout.String())
	}
}

func TestFlattenWritesDIB(t *testing.T) {
	in := writeTestImage(t, 6, 6)
	out := filepath.Join(t.TempDir(), "out.dib")
	cmd, err := parseFlattenCmd([]string{"-file", in, "-rect", "1,1,3,2", "-dib", out}, testRoot())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := cmd.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(data) < 40 {
		t.Fatalf("dib too short: %d bytes", len(data))
	}
	if size := binary.LittleEndian.Uint32(data[0:4]); size != 40 {
		t.Fatalf("header size = %d", size)
	}
	if w := int32(binary.LittleEndian.Uint32(data[4:8])); w != 3 {
		t.Fatalf("width = %d", w)
	}
}

func TestFlattenInvalidCrop(t *testing.T) {
	in := writeTestImage(t, 10, 10)
	cmd, err := parseFlattenCmd([]string{"-file", in, "-rect", "5,5,10,10", "-output", filepath.Join(t.TempDir(), "o.png")}, testRoot())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := cmd.Run(); !errors.Is(err, render.ErrInvalidCrop) {
		t.Fatalf("Run = %v, want ErrInvalidCrop", err)
	}
}

func TestFlattenBoxUsesInclusiveCorners(t *testing.T) {
	cmd, err := parseFlattenCmd([]string{"-file", "x.png", "-rect", "0,0,4,4", "-box", "1,1,3,3", "-output", "o.png"}, testRoot())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(cmd.strokes) != 1 {
		t.Fatalf("strokes = %d", len(cmd.strokes))
	}
	a, b := cmd.strokes[0].Ends()
	if a != geom.Pt(1, 1) || b != geom.Pt(3, 3) {
		t.Fatalf("box corners = %v %v", a, b)
	}
}

func TestFlattenRejectsTranslucentPen(t *testing.T) {
	cmd, err := parseFlattenCmd([]string{"-file", "x.png", "-rect", "0,0,4,4", "-output", "o.png"}, testRoot())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	cmd.color = "#ff000080"
	if _, err := cmd.pen(); err == nil || !strings.Contains(err.Error(), "opaque") {
		t.Fatalf("pen = %v, want opaque pen error", err)
	}
	cmd.color = "#ff0000"
	if st, err := cmd.pen(); err != nil || st.Color != (color.RGBA{255, 0, 0, 255}) {
		t.Fatalf("pen = %v, %v", st, err)
	}
}
