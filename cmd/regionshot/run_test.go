package main

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/example/regionshot/internal/tray"
)

func TestRunCaptureArgsForwardGlobals(t *testing.T) {
	r := testRoot()
	r.configPath = "/tmp/rc"
	r.themeName = "dark"
	cmd, err := parseRunCmd(nil, r)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	got := strings.Join(cmd.captureArgs(), " ")
	if want := "-config /tmp/rc -theme dark capture"; got != want {
		t.Fatalf("captureArgs = %q, want %q", got, want)
	}
	if cmd.hotkey != "f3" {
		t.Fatalf("default hotkey = %q", cmd.hotkey)
	}
}

func TestRunTriggerOneAtATime(t *testing.T) {
	original := spawnFn
	t.Cleanup(func() { spawnFn = original })
	release := make(chan struct{})
	var mu sync.Mutex
	calls := 0
	spawnFn = func([]string) error {
		mu.Lock()
		calls++
		mu.Unlock()
		<-release
		return nil
	}
	cmd, err := parseRunCmd(nil, testRoot())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	cmd.trigger()
	cmd.trigger()
	close(release)
	deadline := time.Now().Add(time.Second)
	for cmd.busy.Load() && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	mu.Lock()
	defer mu.Unlock()
	if calls != 1 {
		t.Fatalf("spawned %d captures, want 1", calls)
	}
}

func TestRunRejectsBadHotkey(t *testing.T) {
	original := runTrayFn
	t.Cleanup(func() { runTrayFn = original })
	ran := false
	runTrayFn = func(tray.Options) { ran = true }
	cmd, err := parseRunCmd([]string{"-hotkey", "ctrl+nosuchkey"}, testRoot())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := cmd.Run(); err == nil {
		t.Fatalf("expected error")
	}
	if ran {
		t.Fatalf("tray started with a broken hotkey")
	}
}

func TestConfigPrint(t *testing.T) {
	cmd, err := parseConfigCmd([]string{"print"}, testRoot())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	var out bytes.Buffer
	cmd.stdout = &out
	if err := cmd.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.Contains(out.String(), "line_width = 3") {
		t.Fatalf("config print = %q", out.String())
	}
}

func TestConfigUnknownSubcommand(t *testing.T) {
	cmd, err := parseConfigCmd([]string{"explode"}, testRoot())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := cmd.Run(); err == nil || !strings.Contains(err.Error(), "unknown config command") {
		t.Fatalf("Run = %v", err)
	}
}
