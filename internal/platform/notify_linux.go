//go:build linux

package platform

import (
	"github.com/godbus/dbus/v5"
)

const (
	notifyDest   = "org.freedesktop.Notifications"
	notifyPath   = dbus.ObjectPath("/org/freedesktop/Notifications")
	notifyCall   = notifyDest + ".Notify"
	urgencyLow   = byte(0)
	copyCategory = "transfer.complete"
)

// hints carries the image path as image-path so servers that ignore app_icon
// for arbitrary files still show the preview.
func hints(opts Options) map[string]dbus.Variant {
	h := map[string]dbus.Variant{
		"urgency":  dbus.MakeVariant(urgencyLow),
		"category": dbus.MakeVariant(copyCategory),
	}
	if opts.IconPath != "" {
		h["image-path"] = dbus.MakeVariant("file://" + opts.IconPath)
	}
	return h
}

// Notify sends a desktop notification over the Freedesktop.org notifications
// D-Bus interface on the session bus.
func Notify(title, body string, opts Options) error {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return err
	}
	defer conn.Close()

	return conn.Object(notifyDest, notifyPath).Call(notifyCall, 0,
		opts.appName(), uint32(0), opts.IconPath, title, body,
		[]string{}, hints(opts), opts.timeoutMillis()).Err
}
