//go:build cgo || windows

package clipboard

import (
	"os"
	"runtime"
	"sync"

	"golang.design/x/clipboard"
)

var (
	initOnce sync.Once
	initErr  error
)

func needsDisplay() bool {
	switch runtime.GOOS {
	case "windows", "darwin":
		return false
	}
	return true
}

func ensureInit() error {
	initOnce.Do(func() {
		if needsDisplay() && os.Getenv("DISPLAY") == "" && os.Getenv("WAYLAND_DISPLAY") == "" {
			initErr = errNoDisplay
			return
		}
		initErr = clipboard.Init()
	})
	return initErr
}

// writePayload hands the PNG to the system clipboard, which converts it to
// the native bitmap format where one exists.
func writePayload(p Payload) (<-chan struct{}, error) {
	if err := ensureInit(); err != nil {
		return nil, err
	}
	return clipboard.Write(clipboard.FmtImage, p.PNG), nil
}
