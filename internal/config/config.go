// Package config loads application settings from the config file and the
// command line
package config

import (
	"time"

	"github.com/ayoisaiah/focustodo/store"
)

type (
	// Config holds all configuration settings.
	Config struct {
		Timer    TimerConfig
		Settings SettingsConfig
		Display  DisplayConfig
		System   SystemConfig
	}

	// TimerConfig holds the focus timer lengths.
	TimerConfig struct {
		Presets []time.Duration
		Default time.Duration
	}

	// SettingsConfig holds general settings.
	SettingsConfig struct {
		Backend    string
		SessionCmd string
		LogLevel   string
	}

	// DisplayConfig holds display-related settings.
	DisplayConfig struct {
		DarkTheme bool
		NoColor   bool
	}

	// SystemConfig holds file locations.
	SystemConfig struct {
		ConfigPath string
		DBPath     string
		LogPath    string
	}

	// Option is a function that modifies Config.
	Option func(*Config) error
)

// Version is the application version.
const Version = "v0.1.0"

// New creates a new Config with default values, applies opts in order and
// validates the result.
func New(opts ...Option) (*Config, error) {
	cfg := Default()

	if err := cfg.Apply(opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Apply runs opts against c and validates the result.
func (c *Config) Apply(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return errConfigOption.Wrap(err)
		}
	}

	if err := c.Validate(); err != nil {
		return errConfigValidation.Wrap(err)
	}

	return nil
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Timer: TimerConfig{
			Default: defaultDuration,
			Presets: []time.Duration{
				15 * time.Minute,
				25 * time.Minute,
				45 * time.Minute,
			},
		},
		Settings: SettingsConfig{
			Backend:  store.BackendBolt,
			LogLevel: "info",
		},
		Display: DisplayConfig{
			DarkTheme: true,
		},
	}
}
