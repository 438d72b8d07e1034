//go:build !windows

package hotkey

import gohook "github.com/robotn/gohook"

// lookupKey resolves names through the hook's portable key codes, adding the
// right-hand variant of modifiers.
func lookupKey(name string) []uint16 {
	var codes []uint16
	if c, ok := gohook.Keycode[name]; ok {
		codes = append(codes, c)
	}
	switch name {
	case "ctrl", "alt", "shift", "cmd":
		if c, ok := gohook.Keycode["r"+name]; ok {
			codes = append(codes, c)
		}
	}
	return codes
}

func eventCode(ev gohook.Event) uint16 { return ev.Keycode }
