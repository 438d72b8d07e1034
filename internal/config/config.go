package config

import (
	"fmt"
	"image/color"
	"sort"
	"strings"
	"time"

	"github.com/example/regionshot/internal/theme"
)

// Defaults match the stock settings file written by "config save".
const (
	DefaultLineWidth     = 3
	DefaultDimAlpha      = 150
	DefaultMargin        = 8
	DefaultClipboardHold = 5 * time.Minute
)

// DefaultDrawColor is pure red.
var DefaultDrawColor = color.RGBA{R: 255, A: 255}

// Hotkeys holds key combinations such as "ctrl+c".
type Hotkeys struct {
	// Capture opens a new overlay from the tray daemon.
	Capture string
	Commit  string
	Cancel  string
	// Global also listens for Commit and Cancel outside the overlay window.
	Global bool
}

// Notify holds notification settings.
type Notify struct {
	Capture bool
	Copy    bool
}

// Config holds the application configuration.
type Config struct {
	DrawColor     color.RGBA
	LineWidth     int
	DimAlpha      int
	Margin        int
	Theme         string
	LogFile       string
	ClipboardHold time.Duration
	Hotkeys       Hotkeys
	Notify        Notify
	Themes        map[string]*theme.Theme
}

// New creates a new Config with defaults.
func New() *Config {
	return &Config{
		DrawColor:     DefaultDrawColor,
		LineWidth:     DefaultLineWidth,
		DimAlpha:      DefaultDimAlpha,
		Margin:        DefaultMargin,
		ClipboardHold: DefaultClipboardHold,
		Hotkeys: Hotkeys{
			Capture: "f3",
			Commit:  "ctrl+c",
			Cancel:  "esc",
		},
		Notify: Notify{Copy: true},
		Themes: make(map[string]*theme.Theme),
	}
}

// Validate reports values the overlay cannot use.
func (c *Config) Validate() error {
	if c.DrawColor.A != 0xff {
		return fmt.Errorf("draw_color must be opaque, got %s", theme.FormatColor(c.DrawColor))
	}
	if c.LineWidth < 1 {
		return fmt.Errorf("line_width must be at least 1, got %d", c.LineWidth)
	}
	if c.DimAlpha < 0 || c.DimAlpha > 255 {
		return fmt.Errorf("dim_alpha must be within 0..255, got %d", c.DimAlpha)
	}
	if c.Margin < 0 {
		return fmt.Errorf("margin must not be negative, got %d", c.Margin)
	}
	if c.ClipboardHold < 0 {
		return fmt.Errorf("clipboard_hold must not be negative, got %v", c.ClipboardHold)
	}
	return nil
}

// ResolveTheme returns the named theme from [theme.*] sections, then the
// loader, falling back to the default theme when the name is empty.
func (c *Config) ResolveTheme(l *theme.Loader) (*theme.Theme, error) {
	if c.Theme == "" {
		return theme.Default(), nil
	}
	if t, ok := c.Themes[c.Theme]; ok {
		return t, nil
	}
	if l == nil {
		l = theme.NewLoader()
	}
	return l.Load(c.Theme)
}

// String implements fmt.Stringer and returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "draw_color = %s\n", theme.FormatColor(c.DrawColor))
	fmt.Fprintf(&sb, "line_width = %d\n", c.LineWidth)
	fmt.Fprintf(&sb, "dim_alpha = %d\n", c.DimAlpha)
	fmt.Fprintf(&sb, "margin = %d\n", c.Margin)
	fmt.Fprintf(&sb, "clipboard_hold = %s\n", c.ClipboardHold)
	if c.Theme != "" {
		fmt.Fprintf(&sb, "theme = %s\n", c.Theme)
	}
	if c.LogFile != "" {
		fmt.Fprintf(&sb, "log_file = %s\n", c.LogFile)
	}
	sb.WriteString("\n")

	sb.WriteString("[hotkeys]\n")
	fmt.Fprintf(&sb, "capture = %s\n", c.Hotkeys.Capture)
	fmt.Fprintf(&sb, "commit = %s\n", c.Hotkeys.Commit)
	fmt.Fprintf(&sb, "cancel = %s\n", c.Hotkeys.Cancel)
	fmt.Fprintf(&sb, "global = %v\n", c.Hotkeys.Global)
	sb.WriteString("\n")

	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "capture = %v\n", c.Notify.Capture)
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)
	sb.WriteString("\n")

	var names []string
	for name := range c.Themes {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		t := c.Themes[name]
		fmt.Fprintf(&sb, "[theme.%s]\n", name)
		fmt.Fprintf(&sb, "Name: %s\n", t.Name)
		fmt.Fprintf(&sb, "SelectionFill: %s\n", theme.FormatColor(t.SelectionFill))
		fmt.Fprintf(&sb, "SelectionBorder: %s\n", theme.FormatColor(t.SelectionBorder))
		fmt.Fprintf(&sb, "Handle: %s\n", theme.FormatColor(t.Handle))
		fmt.Fprintf(&sb, "HandleBorder: %s\n", theme.FormatColor(t.HandleBorder))
		fmt.Fprintf(&sb, "StatusText: %s\n", theme.FormatColor(t.StatusText))
		fmt.Fprintf(&sb, "StatusBackground: %s\n", theme.FormatColor(t.StatusBackground))
		sb.WriteString("\n")
	}

	return sb.String()
}
