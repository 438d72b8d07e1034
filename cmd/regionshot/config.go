package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/example/regionshot/internal/config"
)

type configCmd struct {
	*root
	fs     *flag.FlagSet
	stdout io.Writer
}

func (c *configCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func parseConfigCmd(args []string, r *root) (*configCmd, error) {
	fs := flag.NewFlagSet("config", flag.ExitOnError)
	c := &configCmd{root: r.subcommand("config"), fs: fs, stdout: os.Stdout}
	fs.Usage = usageFunc(c)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() < 1 {
		return nil, &UsageError{of: c}
	}
	return c, nil
}

func (c *configCmd) Run() error {
	switch sub := c.fs.Arg(0); sub {
	case "print":
		fmt.Fprint(c.stdout, c.config.String())
		return nil
	case "save":
		path, err := config.NewLoader(version, c.configPath).Save(c.config)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Configuration saved to %s\n", path)
		return nil
	case "path":
		loader := config.NewLoader(version, c.configPath)
		path := loader.GetConfigPath()
		if path == "" {
			path = loader.DefaultPath() + " (not created)"
		}
		fmt.Fprintln(c.stdout, path)
		return nil
	default:
		return usageErrorf(c, "unknown config command: %s", sub)
	}
}
