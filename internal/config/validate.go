package config

import (
	"log/slog"
	"strings"
	"time"

	"github.com/ayoisaiah/focustodo/store"
)

var (
	minSessionDuration = 1 * time.Second
	maxSessionDuration = 720 * time.Minute // 12 hours
)

// Validate performs validation checks on the Config struct and its fields.
func (c *Config) Validate() error {
	if err := validateDuration("default", c.Timer.Default); err != nil {
		return err
	}

	if len(c.Timer.Presets) == 0 {
		return errNoPresets
	}

	for _, p := range c.Timer.Presets {
		if err := validateDuration("preset", p); err != nil {
			return err
		}
	}

	switch c.Settings.Backend {
	case store.BackendBolt, store.BackendSQLite:
	default:
		return errUnknownBackend.Fmt(c.Settings.Backend)
	}

	var level slog.Level

	err := level.UnmarshalText([]byte(strings.TrimSpace(c.Settings.LogLevel)))
	if err != nil {
		return errInvalidLogLevel.Fmt(c.Settings.LogLevel)
	}

	return nil
}

func validateDuration(name string, d time.Duration) error {
	if d < minSessionDuration || d > maxSessionDuration {
		return errInvalidDuration.Fmt(
			name,
			minSessionDuration,
			maxSessionDuration,
			d,
		)
	}

	return nil
}
