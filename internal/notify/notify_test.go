package notify

import (
	"image"
	"os"
	"testing"

	"github.com/example/regionshot/internal/platform"
)

type sent struct {
	title, body string
	opts        platform.Options
	iconExisted bool
}

func captureSends(t *testing.T) *[]sent {
	t.Helper()
	var got []sent
	prev := sendFn
	sendFn = func(title, body string, opts platform.Options) error {
		_, err := os.Stat(opts.IconPath)
		got = append(got, sent{title, body, opts, opts.IconPath != "" && err == nil})
		return nil
	}
	t.Cleanup(func() { sendFn = prev })
	return &got
}

func TestDisabledEventsAreSilent(t *testing.T) {
	got := captureSends(t)
	n := New(DefaultPreferences())
	n.Capture(image.Pt(10, 10))
	n.Copy(nil)
	var nilNotifier *Notifier
	nilNotifier.Copy(nil)
	if len(*got) != 0 {
		t.Fatalf("unexpected notifications: %v", *got)
	}
}

func TestCopyNotification(t *testing.T) {
	got := captureSends(t)
	n := New(DefaultPreferences())
	n.Enable(EventCopy, true)
	n.Copy(image.NewRGBA(image.Rect(0, 0, 30, 20)))
	if len(*got) != 1 {
		t.Fatalf("sent %d notifications", len(*got))
	}
	s := (*got)[0]
	if s.title != "RegionShot" || s.body != "Screenshot copied (30x20)" {
		t.Fatalf("notification = %q / %q", s.title, s.body)
	}
	if !s.iconExisted {
		t.Fatalf("preview icon missing while notifying")
	}
	if _, err := os.Stat(s.opts.IconPath); !os.IsNotExist(err) {
		t.Fatalf("preview icon not cleaned up: %v", err)
	}
}

func TestLoadPreferencesFromEnv(t *testing.T) {
	t.Setenv("REGIONSHOT_NOTIFY_TITLE", "Shots")
	t.Setenv("REGIONSHOT_NOTIFY_CAPTURE_TEXT", "ready")
	got := captureSends(t)
	n := New(LoadPreferences())
	n.Enable(EventCapture, true)
	n.Capture(image.Pt(1, 1))
	if len(*got) != 1 || (*got)[0].title != "Shots" || (*got)[0].body != "ready" {
		t.Fatalf("notifications = %v", *got)
	}
}
