package config

import (
	"os"
	"strings"

	"github.com/urfave/cli/v2"
)

// CLIOptions represents command-line configuration options.
type CLIOptions struct {
	Backend  string
	Duration string
	NoColor  bool
}

// WithCLIConfig returns an Option that applies command-line flags on top of
// the file settings.
func WithCLIConfig(ctx *cli.Context) Option {
	return func(c *Config) error {
		opts := CLIOptions{
			Backend:  ctx.String("backend"),
			Duration: ctx.String("duration"),
			NoColor:  ctx.Bool("no-color"),
		}

		return applyCLIOptions(c, opts)
	}
}

// applyCLIOptions applies CLI options to the config.
func applyCLIOptions(c *Config, opts CLIOptions) error {
	if opts.Backend != "" {
		c.Settings.Backend = strings.ToLower(opts.Backend)
	}

	if opts.Duration != "" {
		dur, err := parseDuration(opts.Duration)
		if err != nil {
			return err
		}

		c.Timer.Default = dur
	}

	c.Display.NoColor = opts.NoColor || colorDisabledByEnv()

	return nil
}

func colorDisabledByEnv() bool {
	_, noColor := os.LookupEnv("NO_COLOR")
	_, appNoColor := os.LookupEnv("FOCUSTODO_NO_COLOR")

	return noColor || appNoColor
}
