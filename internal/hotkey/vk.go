package hotkey

// virtualKeyCodes maps key names to Windows virtual-key codes, which the
// keyboard hook reports as raw codes on Windows.
func virtualKeyCodes(name string) []uint16 {
	switch name {
	case "ctrl":
		return []uint16{162, 163}
	case "alt":
		return []uint16{164, 165}
	case "shift":
		return []uint16{160, 161}
	case "cmd":
		return []uint16{91, 92}
	case "space":
		return []uint16{32}
	case "enter":
		return []uint16{13}
	case "esc":
		return []uint16{27}
	case "tab":
		return []uint16{9}
	case "backspace":
		return []uint16{8}
	case "delete", "del":
		return []uint16{46}
	case "insert", "ins":
		return []uint16{45}
	case "home":
		return []uint16{36}
	case "end":
		return []uint16{35}
	case "pageup", "pgup":
		return []uint16{33}
	case "pagedown", "pgdn":
		return []uint16{34}
	case "left":
		return []uint16{37}
	case "up":
		return []uint16{38}
	case "right":
		return []uint16{39}
	case "down":
		return []uint16{40}
	case "printscreen", "print":
		return []uint16{44}
	}
	if len(name) == 1 {
		switch c := name[0]; {
		case c >= 'a' && c <= 'z':
			return []uint16{uint16(c-'a') + 65}
		case c >= '0' && c <= '9':
			return []uint16{uint16(c-'0') + 48}
		}
	}
	if n, ok := functionKey(name); ok {
		return []uint16{uint16(111 + n)}
	}
	return nil
}

// functionKey parses "f1" through "f24".
func functionKey(name string) (int, bool) {
	if len(name) < 2 || len(name) > 3 || name[0] != 'f' {
		return 0, false
	}
	n := 0
	for _, c := range name[1:] {
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
	}
	return n, n >= 1 && n <= 24
}
