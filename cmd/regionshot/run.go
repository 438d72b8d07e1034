package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/exec"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/example/regionshot/internal/hotkey"
	"github.com/example/regionshot/internal/tray"
)

var (
	runTrayFn  = tray.Run
	quitTrayFn = tray.Quit
	spawnFn    = spawnCapture
)

// runCmd keeps a tray icon alive and starts one capture process at a time.
// Each overlay runs in its own process because the window toolkit owns the
// main thread for as long as it runs.
type runCmd struct {
	*root
	fs       *flag.FlagSet
	hotkey   string
	noHotkey bool
	busy     atomic.Bool
}

func (c *runCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func parseRunCmd(args []string, r *root) (*runCmd, error) {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	c := &runCmd{root: r.subcommand("run"), fs: fs}
	fs.Usage = usageFunc(c)
	combo := ""
	if r.config != nil {
		combo = r.config.Hotkeys.Capture
	}
	fs.StringVar(&c.hotkey, "hotkey", combo, "global key combination that starts a capture")
	fs.BoolVar(&c.noHotkey, "no-hotkey", false, "only capture from the tray menu")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, usageErrorf(c, "unexpected arguments: %v", fs.Args())
	}
	return c, nil
}

// captureArgs forwards the global flags that change what the child sees.
func (c *runCmd) captureArgs() []string {
	var args []string
	if c.configPath != "" {
		args = append(args, "-config", c.configPath)
	}
	if c.themeName != "" {
		args = append(args, "-theme", c.themeName)
	}
	if c.logFile != "" {
		args = append(args, "-log-file", c.logFile)
	}
	return append(args, "capture")
}

// trigger starts a capture unless one is already open.
func (c *runCmd) trigger() {
	if !c.busy.CompareAndSwap(false, true) {
		log.Printf("capture already in progress")
		return
	}
	go func() {
		defer c.busy.Store(false)
		if err := spawnFn(c.captureArgs()); err != nil {
			log.Printf("capture: %v", err)
		}
	}()
}

func (c *runCmd) Run() error {
	var l *hotkey.Listener
	if !c.noHotkey && c.hotkey != "" {
		l = hotkey.NewListener()
		if err := l.Bind(c.hotkey, c.trigger); err != nil {
			return fmt.Errorf("invalid capture hotkey: %w", err)
		}
	}
	runTrayFn(tray.Options{
		Title:     "RegionShot",
		Tooltip:   "RegionShot " + version,
		OnCapture: c.trigger,
		OnReady: func() {
			go quitOnSignal()
			if l == nil {
				return
			}
			if err := l.Start(); err != nil {
				log.Printf("hotkey %s: %v", c.hotkey, err)
				return
			}
			log.Printf("listening for %s", c.hotkey)
		},
		OnExit: func() {
			if l == nil {
				return
			}
			if err := l.Stop(); err != nil {
				log.Printf("stop hotkey: %v", err)
			}
		},
	})
	return nil
}

func quitOnSignal() {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig
	signal.Stop(sig)
	quitTrayFn()
}

func spawnCapture(args []string) error {
	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("locate executable: %w", err)
	}
	cmd := exec.Command(exe, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s %v: %w", exe, args, err)
	}
	return nil
}
