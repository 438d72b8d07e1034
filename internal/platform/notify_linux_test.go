//go:build linux

package platform

import "testing"

func TestHintsImagePath(t *testing.T) {
	h := hints(Options{})
	if _, ok := h["image-path"]; ok {
		t.Fatalf("image-path set without an icon")
	}
	h = hints(Options{IconPath: "/tmp/p.png"})
	if got := h["image-path"].Value(); got != "file:///tmp/p.png" {
		t.Fatalf("image-path = %v", got)
	}
	if got := h["urgency"].Value(); got != byte(0) {
		t.Fatalf("urgency = %v", got)
	}
}
