// Package hotkey listens for global key combinations such as "ctrl+c" or
// "f3" through a system-wide keyboard hook.
package hotkey

import (
	"fmt"
	"strings"
)

// key is one member of a combination together with every code that counts
// as that key, for example both the left and right control keys.
type key struct {
	name  string
	codes []uint16
}

// Combo is a parsed key combination.
type Combo struct {
	text string
	keys []key
}

func (c Combo) String() string { return c.text }

// parseHotkey splits "Ctrl+Alt+q" into normalized key names.
func parseHotkey(s string) []string {
	var keys []string
	for _, part := range strings.Split(strings.ToLower(s), "+") {
		part = strings.TrimSpace(part)
		switch part {
		case "":
			continue
		case "control":
			part = "ctrl"
		case "win", "super", "meta":
			part = "cmd"
		case "escape":
			part = "esc"
		case "return":
			part = "enter"
		}
		keys = append(keys, part)
	}
	return keys
}

// ParseCombo resolves every key of s with lookup. It fails when s is empty
// or names a key lookup does not know.
func ParseCombo(s string, lookup func(string) []uint16) (Combo, error) {
	names := parseHotkey(s)
	if len(names) == 0 {
		return Combo{}, fmt.Errorf("empty hotkey %q", s)
	}
	c := Combo{text: strings.Join(names, "+")}
	for _, n := range names {
		codes := lookup(n)
		if len(codes) == 0 {
			return Combo{}, fmt.Errorf("hotkey %q: unknown key %q", s, n)
		}
		c.keys = append(c.keys, key{name: n, codes: codes})
	}
	return c, nil
}

// matcher tracks which keys of a combo are held. It fires once when the last
// key goes down and not again until one of them is released, so auto-repeat
// and typed events do not retrigger it.
type matcher struct {
	combo   Combo
	pressed []bool
	latched bool
}

func newMatcher(c Combo) *matcher {
	return &matcher{combo: c, pressed: make([]bool, len(c.keys))}
}

func (m *matcher) index(code uint16) int {
	for i, k := range m.combo.keys {
		for _, kc := range k.codes {
			if kc == code {
				return i
			}
		}
	}
	return -1
}

// down records a key press and reports whether the combo just completed.
func (m *matcher) down(code uint16) bool {
	i := m.index(code)
	if i < 0 {
		return false
	}
	m.pressed[i] = true
	if m.latched {
		return false
	}
	for _, p := range m.pressed {
		if !p {
			return false
		}
	}
	m.latched = true
	return true
}

func (m *matcher) up(code uint16) {
	if i := m.index(code); i >= 0 {
		m.pressed[i] = false
		m.latched = false
	}
}
