package theme

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
)

const themeExt = ".theme"

// Loader resolves theme names to files in a list of directories.
type Loader struct {
	// Dirs are searched in order after the built-in themes.
	Dirs []string
}

// NewLoader searches $XDG_CONFIG_HOME/regionshot/themes (or
// ~/.config/regionshot/themes) and then /usr/share/regionshot/themes.
func NewLoader() *Loader {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		if home, err := os.UserHomeDir(); err == nil {
			base = filepath.Join(home, ".config")
		}
	}
	var dirs []string
	if base != "" {
		dirs = append(dirs, filepath.Join(base, "regionshot", "themes"))
	}
	dirs = append(dirs, "/usr/share/regionshot/themes")
	return &Loader{Dirs: dirs}
}

// builtinKey maps "High Contrast", "high-contrast" and "high_contrast" to the
// same built-in.
func builtinKey(name string) string {
	return strings.NewReplacer(" ", "_", "-", "_").Replace(strings.ToLower(strings.TrimSpace(name)))
}

// Load resolves name as an existing file path, then a built-in, then
// <name>.theme in each of Dirs. An empty name is the default theme.
func (l *Loader) Load(name string) (*Theme, error) {
	if name == "" {
		return Default(), nil
	}
	if fi, err := os.Stat(name); err == nil && !fi.IsDir() {
		return loadFile(name)
	}
	if t, ok := Builtin(builtinKey(name)); ok {
		return t, nil
	}
	file := name
	if filepath.Ext(file) != themeExt {
		file += themeExt
	}
	for _, dir := range l.Dirs {
		path := filepath.Join(dir, file)
		if _, err := os.Stat(path); err == nil {
			return loadFile(path)
		}
	}
	return nil, fmt.Errorf("theme %q not found in built-ins or %s", name, strings.Join(l.Dirs, ", "))
}

func loadFile(path string) (*Theme, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			log.Printf("close %s: %v", path, cerr)
		}
	}()
	t, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}
