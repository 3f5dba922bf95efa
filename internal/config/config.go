package config

import (
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/text/language"
)

// Config holds every setting of the wallet UI.
type Config struct {
	Logging    LoggingConfig    `toml:"logging" yaml:"logging"`
	Appearance AppearanceConfig `toml:"appearance" yaml:"appearance"`
	UI         UIConfig         `toml:"ui" yaml:"ui"`
	Metrics    MetricsConfig    `toml:"metrics" yaml:"metrics"`
	Device     DeviceConfig     `toml:"device" yaml:"device"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	// Level is a zerolog level name: trace, debug, info, warn, error.
	Level string `toml:"level" yaml:"level"`

	// Format is "console" for human readable output or "json".
	Format string `toml:"format" yaml:"format"`
}

// AppearanceConfig holds user facing preferences.
type AppearanceConfig struct {
	// Locale is a BCP 47 tag such as "en" or "de-AT".
	Locale string `toml:"locale" yaml:"locale"`

	// CloudBackupLocation is the folder offered for cloud backups.
	CloudBackupLocation string `toml:"cloud_backup_location" yaml:"cloud_backup_location"`
}

// UIConfig controls the UI loop.
type UIConfig struct {
	// StrictThreadChecks panics on UI access from outside the UI loop
	// instead of logging a warning.
	StrictThreadChecks bool `toml:"strict_thread_checks" yaml:"strict_thread_checks"`

	// QueueSize bounds the number of pending UI tasks.
	QueueSize int `toml:"queue_size" yaml:"queue_size"`
}

// MetricsConfig controls Prometheus collectors.
type MetricsConfig struct {
	Enabled bool `toml:"enabled" yaml:"enabled"`
}

// DeviceConfig controls the hardware wallet stand-in.
type DeviceConfig struct {
	// Name is shown in the wizard report.
	Name string `toml:"name" yaml:"name"`

	// ConfirmDelayMS is how long the simulated device takes per step.
	ConfirmDelayMS int `toml:"confirm_delay_ms" yaml:"confirm_delay_ms"`

	// Outcome is what the simulated device answers: confirmed, rejected
	// or failed.
	Outcome string `toml:"outcome" yaml:"outcome"`

	// Terminal draws the device screen with tcell instead of logging it.
	Terminal bool `toml:"terminal" yaml:"terminal"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Appearance: AppearanceConfig{
			Locale: "en",
		},
		UI: UIConfig{
			StrictThreadChecks: true,
			QueueSize:          1024,
		},
		Device: DeviceConfig{
			Name:           "Trezor",
			ConfirmDelayMS: 500,
			Outcome:        "confirmed",
		},
	}
}

// Validate checks every setting and returns the first problem found.
func (c *Config) Validate() error {
	if _, err := zerolog.ParseLevel(strings.ToLower(c.Logging.Level)); err != nil || c.Logging.Level == "" {
		return &ValidationError{Setting: "logging.level", Value: c.Logging.Level, Message: "unknown level"}
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return &ValidationError{Setting: "logging.format", Value: c.Logging.Format, Message: `must be "console" or "json"`}
	}
	if _, err := language.Parse(c.Appearance.Locale); err != nil {
		return &ValidationError{Setting: "appearance.locale", Value: c.Appearance.Locale, Message: err.Error()}
	}
	if c.UI.QueueSize <= 0 {
		return &ValidationError{Setting: "ui.queue_size", Value: c.UI.QueueSize, Message: "must be positive"}
	}
	if c.Device.ConfirmDelayMS < 0 {
		return &ValidationError{Setting: "device.confirm_delay_ms", Value: c.Device.ConfirmDelayMS, Message: "must not be negative"}
	}
	switch c.Device.Outcome {
	case "confirmed", "rejected", "failed":
	default:
		return &ValidationError{Setting: "device.outcome", Value: c.Device.Outcome, Message: "must be confirmed, rejected or failed"}
	}
	return nil
}

// Diff returns the names of the settings that differ between c and other.
func (c *Config) Diff(other *Config) []string {
	var changed []string
	add := func(name string, differs bool) {
		if differs {
			changed = append(changed, name)
		}
	}
	add("logging.level", c.Logging.Level != other.Logging.Level)
	add("logging.format", c.Logging.Format != other.Logging.Format)
	add("appearance.locale", c.Appearance.Locale != other.Appearance.Locale)
	add("appearance.cloud_backup_location", c.Appearance.CloudBackupLocation != other.Appearance.CloudBackupLocation)
	add("ui.strict_thread_checks", c.UI.StrictThreadChecks != other.UI.StrictThreadChecks)
	add("ui.queue_size", c.UI.QueueSize != other.UI.QueueSize)
	add("metrics.enabled", c.Metrics.Enabled != other.Metrics.Enabled)
	add("device.name", c.Device.Name != other.Device.Name)
	add("device.confirm_delay_ms", c.Device.ConfirmDelayMS != other.Device.ConfirmDelayMS)
	add("device.outcome", c.Device.Outcome != other.Device.Outcome)
	add("device.terminal", c.Device.Terminal != other.Device.Terminal)
	return changed
}
