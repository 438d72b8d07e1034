//go:build windows

package hotkey

import gohook "github.com/robotn/gohook"

func lookupKey(name string) []uint16 { return virtualKeyCodes(name) }

func eventCode(ev gohook.Event) uint16 { return ev.Rawcode }
