package platform

import (
	"strconv"
	"time"
)

// DefaultAppName is reported to the notification center when Options.AppName
// is empty.
const DefaultAppName = "RegionShot"

// Options configures how a notification is displayed on the host platform.
type Options struct {
	// AppName identifies the sender.
	AppName string
	// IconPath, when non-empty, points to an image file the notification center
	// should display with the notification if supported by the platform.
	IconPath string
	// Timeout is how long the notification stays visible where the platform
	// lets the sender choose. Zero uses five seconds.
	Timeout time.Duration
}

func (o Options) appName() string {
	if o.AppName == "" {
		return DefaultAppName
	}
	return o.AppName
}

func (o Options) timeoutMillis() int32 {
	if o.Timeout <= 0 {
		return 5000
	}
	return int32(o.Timeout / time.Millisecond)
}

func itoa(n int32) string { return strconv.FormatInt(int64(n), 10) }
