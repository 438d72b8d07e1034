// Package tray shows the notification-area icon of the capture daemon.
package tray

import (
	"log"

	"github.com/getlantern/systray"
)

// Options wires tray menu entries to actions.
type Options struct {
	Title   string
	Tooltip string
	// OnCapture runs when the Capture entry is clicked.
	OnCapture func()
	// OnReady runs once the icon is shown, for example to start hotkeys.
	OnReady func()
	// OnExit runs after the tray loop ends.
	OnExit func()
}

// Run shows the icon and blocks until Quit is called. It must be called from
// the main goroutine.
func Run(opts Options) {
	systray.Run(func() { onReady(opts) }, func() {
		if opts.OnExit != nil {
			opts.OnExit()
		}
	})
}

// Quit ends Run.
func Quit() { systray.Quit() }

func onReady(opts Options) {
	if icon, err := iconBytes(); err != nil {
		log.Printf("tray icon: %v", err)
	} else {
		systray.SetIcon(icon)
	}
	title := opts.Title
	if title == "" {
		title = "RegionShot"
	}
	tooltip := opts.Tooltip
	if tooltip == "" {
		tooltip = title
	}
	systray.SetTitle(title)
	systray.SetTooltip(tooltip)

	mCapture := systray.AddMenuItem("Capture Region", "Capture the screen and select a region")
	systray.AddSeparator()
	mQuit := systray.AddMenuItem("Quit", "Quit RegionShot")

	go func() {
		for {
			select {
			case <-mCapture.ClickedCh:
				if opts.OnCapture != nil {
					opts.OnCapture()
				}
			case <-mQuit.ClickedCh:
				systray.Quit()
				return
			}
		}
	}()

	if opts.OnReady != nil {
		opts.OnReady()
	}
}
