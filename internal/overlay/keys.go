package overlay

import (
	"fmt"
	"strings"

	"golang.org/x/mobile/event/key"
)

const modifierMask = key.ModShift | key.ModControl | key.ModAlt | key.ModMeta

// binding is an in-window key combination such as ctrl+c.
type binding struct {
	text string
	code key.Code
	mods key.Modifiers
}

func (b binding) String() string { return b.text }

func (b binding) matches(e key.Event) bool {
	return b.code != key.CodeUnknown && e.Code == b.code && e.Modifiers&modifierMask == b.mods
}

// parseBinding reads the same "ctrl+shift+x" syntax as the global hotkeys.
func parseBinding(s string) (binding, error) {
	b := binding{text: strings.ToLower(strings.TrimSpace(s))}
	parts := strings.Split(b.text, "+")
	for i, p := range parts {
		p = strings.TrimSpace(p)
		last := i == len(parts)-1
		switch p {
		case "ctrl", "control":
			b.mods |= key.ModControl
		case "shift":
			b.mods |= key.ModShift
		case "alt":
			b.mods |= key.ModAlt
		case "cmd", "win", "super", "meta":
			b.mods |= key.ModMeta
		default:
			if !last {
				return binding{}, fmt.Errorf("key %q: %q must come last", s, p)
			}
			code, ok := keyCode(p)
			if !ok {
				return binding{}, fmt.Errorf("key %q: unknown key %q", s, p)
			}
			b.code = code
		}
	}
	if b.code == key.CodeUnknown {
		return binding{}, fmt.Errorf("key %q: no key after modifiers", s)
	}
	return b, nil
}

func keyCode(name string) (key.Code, bool) {
	switch name {
	case "esc", "escape":
		return key.CodeEscape, true
	case "enter", "return":
		return key.CodeReturnEnter, true
	case "space":
		return key.CodeSpacebar, true
	case "tab":
		return key.CodeTab, true
	case "backspace":
		return key.CodeDeleteBackspace, true
	case "delete", "del":
		return key.CodeDeleteForward, true
	case "0":
		return key.Code0, true
	}
	if len(name) == 1 {
		switch c := name[0]; {
		case c >= 'a' && c <= 'z':
			return key.CodeA + key.Code(c-'a'), true
		case c >= '1' && c <= '9':
			return key.Code1 + key.Code(c-'1'), true
		}
	}
	var n int
	if _, err := fmt.Sscanf(name, "f%d", &n); err == nil && n >= 1 && n <= 12 && name == fmt.Sprintf("f%d", n) {
		return key.CodeF1 + key.Code(n-1), true
	}
	return key.CodeUnknown, false
}
