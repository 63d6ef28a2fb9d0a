package config

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/ayoisaiah/focustodo/store"
)

const (
	keyTimerDefault = "timer.default"
	keyTimerPresets = "timer.presets"
	keyBackend      = "settings.backend"
	keySessionCmd   = "settings.session_cmd"
	keyLogLevel     = "settings.log_level"
	keyDarkTheme    = "display.dark_theme"
)

const defaultDuration = 25 * time.Minute

// WithViperConfig returns an Option that loads configuration from the YAML
// file at configPath. A file holding the defaults is written if none exists.
func WithViperConfig(configPath string) Option {
	return func(c *Config) error {
		v := viper.New()

		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")

		setupViper(v)

		err := v.ReadInConfig()
		if err == nil {
			c.System.ConfigPath = configPath
			return loadViperConfig(v, c)
		}

		if !errors.Is(err, os.ErrNotExist) {
			return errReadConfig.Wrap(err)
		}

		if err := v.WriteConfig(); err != nil {
			return errWriteConfig.Wrap(err)
		}

		c.System.ConfigPath = configPath

		return loadViperConfig(v, c)
	}
}

func setupViper(v *viper.Viper) {
	v.SetDefault(keyTimerDefault, defaultDuration.String())
	v.SetDefault(keyTimerPresets, []string{"15m", "25m", "45m"})
	v.SetDefault(keyBackend, store.BackendBolt)
	v.SetDefault(keySessionCmd, "")
	v.SetDefault(keyLogLevel, "info")
	v.SetDefault(keyDarkTheme, true)
}

// loadViperConfig copies the values held by v into c.
func loadViperConfig(v *viper.Viper, c *Config) error {
	dur, err := parseDuration(v.GetString(keyTimerDefault))
	if err != nil {
		return err
	}

	c.Timer.Default = dur

	presets := v.GetStringSlice(keyTimerPresets)

	c.Timer.Presets = make([]time.Duration, 0, len(presets))

	for _, s := range presets {
		p, err := parseDuration(s)
		if err != nil {
			return err
		}

		c.Timer.Presets = append(c.Timer.Presets, p)
	}

	c.Settings.Backend = strings.ToLower(v.GetString(keyBackend))
	c.Settings.SessionCmd = v.GetString(keySessionCmd)
	c.Settings.LogLevel = v.GetString(keyLogLevel)
	c.Display.DarkTheme = v.GetBool(keyDarkTheme)

	return nil
}

// parseDuration accepts Go duration strings as well as bare numbers, which
// are read as minutes.
func parseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)

	dur, err := time.ParseDuration(s)
	if err == nil {
		return dur, nil
	}

	mins, err := time.ParseDuration(s + "m")
	if err != nil {
		return 0, errParseDuration.Fmt(s)
	}

	return mins, nil
}
