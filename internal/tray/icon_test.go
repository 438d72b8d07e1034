package tray

import "testing"

func TestIconBytes(t *testing.T) {
	data, err := iconBytes()
	if err != nil {
		t.Fatalf("iconBytes: %v", err)
	}
	if len(data) < 8 {
		t.Fatalf("icon too short: %d bytes", len(data))
	}
}
