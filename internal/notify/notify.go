// Package notify shows desktop notifications for capture and copy events.
package notify

import (
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"strings"

	"github.com/example/regionshot/internal/platform"
)

// Event identifies a notification trigger.
type Event string

const (
	// EventCapture fires when the overlay opens on a new capture.
	EventCapture Event = "capture"
	// EventCopy fires when a committed region reaches the clipboard.
	EventCopy Event = "copy"
)

// envTemplates maps each event to the variable overriding its text.
var envTemplates = map[Event]string{
	EventCapture: "REGIONSHOT_NOTIFY_CAPTURE_TEXT",
	EventCopy:    "REGIONSHOT_NOTIFY_COPY_TEXT",
}

const envTitle = "REGIONSHOT_NOTIFY_TITLE"

// Preferences holds the notification title and one body template per event.
// A template containing a verb receives the image size, such as "30x20".
type Preferences struct {
	Title     string
	Templates map[Event]string
}

// DefaultPreferences returns the built-in texts.
func DefaultPreferences() Preferences {
	return Preferences{
		Title: platform.DefaultAppName,
		Templates: map[Event]string{
			EventCapture: "Captured %s",
			EventCopy:    "Screenshot copied (%s)",
		},
	}
}

// LoadPreferences starts from the defaults and applies REGIONSHOT_NOTIFY_*
// variables.
func LoadPreferences() Preferences {
	prefs := DefaultPreferences()
	if v := strings.TrimSpace(os.Getenv(envTitle)); v != "" {
		prefs.Title = v
	}
	for event, key := range envTemplates {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			prefs.Templates[event] = v
		}
	}
	return prefs
}

var sendFn = platform.Notify

// Notifier sends notifications for the events enabled on it. A nil Notifier
// is valid and silent.
type Notifier struct {
	prefs   Preferences
	enabled map[Event]bool
}

// New returns a Notifier with every event disabled.
func New(prefs Preferences) *Notifier {
	templates := make(map[Event]string, len(prefs.Templates))
	for k, v := range prefs.Templates {
		templates[k] = v
	}
	return &Notifier{
		prefs:   Preferences{Title: prefs.Title, Templates: templates},
		enabled: make(map[Event]bool),
	}
}

// Enable turns event on or off.
func (n *Notifier) Enable(event Event, on bool) {
	if n == nil {
		return
	}
	n.enabled[event] = on
}

func (n *Notifier) on(event Event) bool {
	return n != nil && n.enabled[event]
}

// Capture announces a new capture of the given size.
func (n *Notifier) Capture(size image.Point) {
	if !n.on(EventCapture) {
		return
	}
	n.send(EventCapture, sizeText(size), platform.Options{})
}

// Copy announces that img was copied, showing it as the notification image
// where the platform supports one.
func (n *Notifier) Copy(img image.Image) {
	if !n.on(EventCopy) {
		return
	}
	if img == nil {
		n.send(EventCopy, "image", platform.Options{})
		return
	}
	opts := platform.Options{}
	path, err := writePreview(img)
	if err != nil {
		log.Printf("notification preview: %v", err)
	} else {
		defer removePreview(path)
		opts.IconPath = path
	}
	n.send(EventCopy, sizeText(img.Bounds().Size()), opts)
}

func sizeText(p image.Point) string { return fmt.Sprintf("%dx%d", p.X, p.Y) }

func (n *Notifier) send(event Event, detail string, opts platform.Options) {
	body := strings.TrimSpace(n.prefs.Templates[event])
	if body == "" {
		return
	}
	if strings.Contains(body, "%") {
		body = fmt.Sprintf(body, detail)
	}
	if err := sendFn(n.prefs.Title, body, opts); err != nil {
		log.Printf("notification %s: %v", event, err)
	}
}

// writePreview saves img as a temporary PNG for the notification icon.
func writePreview(img image.Image) (string, error) {
	f, err := os.CreateTemp("", "regionshot-preview-*.png")
	if err != nil {
		return "", err
	}
	path := f.Name()
	err = png.Encode(f, img)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		removePreview(path)
		return "", err
	}
	return path, nil
}

func removePreview(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		log.Printf("remove preview: %v", err)
	}
}
