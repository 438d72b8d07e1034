package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/example/regionshot/internal/theme"
)

// Environment variables that override the configuration file.
const (
	EnvFile          = "REGIONSHOT_ENV"
	EnvDrawColor     = "REGIONSHOT_DRAW_COLOR"
	EnvLineWidth     = "REGIONSHOT_LINE_WIDTH"
	EnvDimAlpha      = "REGIONSHOT_DIM_ALPHA"
	EnvCaptureHotkey = "REGIONSHOT_CAPTURE_HOTKEY"
	EnvTheme         = "REGIONSHOT_THEME"
	EnvLogFile       = "REGIONSHOT_LOG_FILE"
)

var executableFn = os.Executable

// ResolveEnvPath finds the .env file: next to the executable first, then the
// path named by $REGIONSHOT_ENV. It returns "" when neither exists.
func ResolveEnvPath() string {
	if exe, err := executableFn(); err == nil {
		p := filepath.Join(filepath.Dir(exe), ".env")
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	if alt := os.Getenv(EnvFile); alt != "" {
		if _, err := os.Stat(alt); err == nil {
			return alt
		}
	}
	return ""
}

// LoadEnv reads the .env file into the process environment without
// replacing variables that are already set.
func LoadEnv() (string, error) {
	path := ResolveEnvPath()
	if path == "" {
		return "", nil
	}
	if err := godotenv.Load(path); err != nil {
		return path, fmt.Errorf("load %s: %w", path, err)
	}
	return path, nil
}

// ApplyEnv overlays REGIONSHOT_* variables from lookup onto cfg.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	get := func(k string) (string, bool) {
		v, ok := lookup(k)
		v = strings.TrimSpace(v)
		return v, ok && v != ""
	}
	if v, ok := get(EnvDrawColor); ok {
		col, err := theme.ParseColor(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvDrawColor, err)
		}
		c.DrawColor = col
	}
	if v, ok := get(EnvLineWidth); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvLineWidth, err)
		}
		c.LineWidth = n
	}
	if v, ok := get(EnvDimAlpha); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvDimAlpha, err)
		}
		c.DimAlpha = n
	}
	if v, ok := get(EnvCaptureHotkey); ok {
		c.Hotkeys.Capture = v
	}
	if v, ok := get(EnvTheme); ok {
		c.Theme = v
	}
	if v, ok := get(EnvLogFile); ok {
		c.LogFile = v
	}
	return nil
}
