package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/example/regionshot/internal/config"
	"github.com/example/regionshot/internal/logutil"
	"github.com/example/regionshot/internal/notify"
	"github.com/example/regionshot/internal/theme"
)

var (
	version            = "dev"
	commit             = ""
	date               = ""
	configPathOverride = ""
)

type runnable interface{ Run() error }

type root struct {
	fs          *flag.FlagSet
	program     string
	notifier    *notify.Notifier
	config      *config.Config
	configPath  string
	logFile     string
	themeName   string
	activeTheme *theme.Theme

	captureAlerts bool
	copyAlerts    bool
}

func (r *root) Program() string {
	return r.program
}

func (r *root) FlagSet() *flag.FlagSet {
	return r.fs
}

func (r *root) subcommand(name string) *root {
	program := strings.TrimSpace(strings.Join([]string{r.program, name}, " "))
	return &root{
		program:       program,
		notifier:      r.notifier,
		config:        r.config,
		configPath:    r.configPath,
		logFile:       r.logFile,
		themeName:     r.themeName,
		activeTheme:   r.activeTheme,
		captureAlerts: r.captureAlerts,
		copyAlerts:    r.copyAlerts,
	}
}

func newRoot() *root {
	r := &root{
		fs:       flag.NewFlagSet("regionshot", flag.ExitOnError),
		program:  "regionshot",
		notifier: notify.New(notify.LoadPreferences()),
		config:   config.New(),
	}
	defaults := r.config
	r.fs.StringVar(&r.configPath, "config", configPathOverride, "path to the configuration file")
	r.fs.StringVar(&r.logFile, "log-file", "", "write logs to this file, rotated at 10MB")
	r.fs.StringVar(&r.themeName, "theme", "", "overlay theme (default, dark, high_contrast or a [theme.name] section)")
	r.fs.BoolVar(&r.captureAlerts, "notify-capture", defaults.Notify.Capture, "show a desktop notification after capturing the screen")
	r.fs.BoolVar(&r.copyAlerts, "notify-copy", defaults.Notify.Copy, "show a desktop notification after copying to the clipboard")
	r.fs.Usage = usageFunc(r)
	return r
}

// loadConfig applies, lowest first: defaults, the RC file, .env and the
// process environment, then command line flags.
func (r *root) loadConfig() error {
	if path, err := config.LoadEnv(); err != nil {
		log.Printf("warning: %v", err)
	} else if path != "" {
		log.Printf("loaded environment from %s", path)
	}
	loader := config.NewLoader(version, r.configPath)
	cfg, err := loader.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return fmt.Errorf("invalid environment: %w", err)
	}

	set := map[string]bool{}
	r.fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if set["theme"] {
		cfg.Theme = r.themeName
	}
	if set["log-file"] {
		cfg.LogFile = r.logFile
	}
	if set["notify-capture"] {
		cfg.Notify.Capture = r.captureAlerts
	}
	if set["notify-copy"] {
		cfg.Notify.Copy = r.copyAlerts
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	r.config = cfg
	return nil
}

func (r *root) resolveTheme() *theme.Theme {
	t, err := r.config.ResolveTheme(theme.NewLoader())
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to load theme '%s': %v. using default.\n", r.config.Theme, err)
		return theme.Default()
	}
	return t
}

func (r *root) Run(args []string) error {
	if err := r.fs.Parse(args); err != nil {
		return err
	}
	if r.fs.NArg() < 1 {
		return &UsageError{of: r}
	}
	if err := r.loadConfig(); err != nil {
		return err
	}
	logs, err := logutil.Setup(r.config.LogFile)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer closeQuietly(logs)

	if r.notifier != nil {
		r.notifier.Enable(notify.EventCapture, r.config.Notify.Capture)
		r.notifier.Enable(notify.EventCopy, r.config.Notify.Copy)
	}
	r.activeTheme = r.resolveTheme()

	cmdName := r.fs.Arg(0)
	subArgs := r.fs.Args()[1:]

	var cmd runnable
	switch cmdName {
	case "capture":
		cmd, err = parseCaptureCmd(subArgs, r)
	case "run", "tray":
		cmd, err = parseRunCmd(subArgs, r)
	case "flatten":
		cmd, err = parseFlattenCmd(subArgs, r)
	case "config":
		cmd, err = parseConfigCmd(subArgs, r)
	case "version":
		cmd = &versionCmd{r: r}
	case "help":
		err = &UsageError{of: r}
	default:
		err = &UsageError{of: r}
	}
	if err != nil {
		return err
	}
	return cmd.Run()
}

func closeQuietly(c io.Closer) {
	if c == nil {
		return
	}
	if err := c.Close(); err != nil {
		log.Printf("close: %v", err)
	}
}

func main() {
	r := newRoot()
	if err := r.Run(os.Args[1:]); err != nil {
		var uerr *UsageError
		if errors.As(err, &uerr) {
			fmt.Fprintln(os.Stderr, uerr.Error())
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
