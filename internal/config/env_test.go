package config

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"
)

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvDrawColor:     "#0000ff",
		EnvLineWidth:     "4",
		EnvDimAlpha:      " 90 ",
		EnvCaptureHotkey: "ctrl+alt+a",
		EnvTheme:         "",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}
	cfg := New()
	cfg.Theme = "dark"
	if err := cfg.ApplyEnv(lookup); err != nil {
		t.Fatalf("ApplyEnv: %v", err)
	}
	if cfg.DrawColor != (color.RGBA{B: 255, A: 255}) {
		t.Errorf("DrawColor = %v", cfg.DrawColor)
	}
	if cfg.LineWidth != 4 || cfg.DimAlpha != 90 {
		t.Errorf("LineWidth/DimAlpha = %d/%d", cfg.LineWidth, cfg.DimAlpha)
	}
	if cfg.Hotkeys.Capture != "ctrl+alt+a" {
		t.Errorf("capture hotkey = %q", cfg.Hotkeys.Capture)
	}
	if cfg.Theme != "dark" {
		t.Errorf("empty variable replaced theme: %q", cfg.Theme)
	}

	env[EnvLineWidth] = "wide"
	if err := New().ApplyEnv(lookup); err == nil {
		t.Fatalf("expected error for bad line width")
	}
}

func TestResolveEnvPath(t *testing.T) {
	exeDir := t.TempDir()
	prev := executableFn
	executableFn = func() (string, error) { return filepath.Join(exeDir, "regionshot"), nil }
	t.Cleanup(func() { executableFn = prev })

	alt := filepath.Join(t.TempDir(), "alt.env")
	if err := os.WriteFile(alt, []byte("REGIONSHOT_LINE_WIDTH=6\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvFile, alt)
	if got := ResolveEnvPath(); got != alt {
		t.Fatalf("ResolveEnvPath = %q, want %q", got, alt)
	}

	local := filepath.Join(exeDir, ".env")
	if err := os.WriteFile(local, []byte("REGIONSHOT_LINE_WIDTH=2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if got := ResolveEnvPath(); got != local {
		t.Fatalf("executable .env not preferred: %q", got)
	}

	t.Setenv(EnvLineWidth, "")
	os.Unsetenv(EnvLineWidth)
	if _, err := LoadEnv(); err != nil {
		t.Fatalf("LoadEnv: %v", err)
	}
	cfg := New()
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		t.Fatal(err)
	}
	if cfg.LineWidth != 2 {
		t.Fatalf("LineWidth from .env = %d", cfg.LineWidth)
	}
}
