package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "WALLETVIEW_"

// LookupFunc looks up an environment variable.
type LookupFunc func(key string) (string, bool)

// Load reads the configuration file at path over the defaults, applies
// environment overrides and validates the result. An empty path or a
// missing file yields the defaults.
func Load(path string) (*Config, error) {
	return LoadWithEnv(path, os.LookupEnv)
}

// LoadWithEnv is Load with a custom environment.
func LoadWithEnv(path string, lookup LookupFunc) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := decodeFile(path, cfg); err != nil {
			return nil, err
		}
	}

	if err := ApplyEnv(cfg, lookup); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// decodeFile decodes path into cfg, choosing the format by extension.
func decodeFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("reading config file %s: %w", path, err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		err = toml.Unmarshal(data, cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return &ParseError{Path: path, Message: err.Error(), Err: err}
	}
	return nil
}

type envSetter func(cfg *Config, value string) error

// envSettings maps environment variables to the settings they override.
var envSettings = map[string]envSetter{
	EnvPrefix + "LOG_LEVEL": func(c *Config, v string) error {
		c.Logging.Level = v
		return nil
	},
	EnvPrefix + "LOG_FORMAT": func(c *Config, v string) error {
		c.Logging.Format = v
		return nil
	},
	EnvPrefix + "LOCALE": func(c *Config, v string) error {
		c.Appearance.Locale = v
		return nil
	},
	EnvPrefix + "CLOUD_BACKUP_LOCATION": func(c *Config, v string) error {
		c.Appearance.CloudBackupLocation = v
		return nil
	},
	EnvPrefix + "STRICT_THREAD_CHECKS": func(c *Config, v string) (err error) {
		c.UI.StrictThreadChecks, err = parseBool(v)
		return err
	},
	EnvPrefix + "QUEUE_SIZE": func(c *Config, v string) (err error) {
		c.UI.QueueSize, err = strconv.Atoi(v)
		return err
	},
	EnvPrefix + "METRICS_ENABLED": func(c *Config, v string) (err error) {
		c.Metrics.Enabled, err = parseBool(v)
		return err
	},
	EnvPrefix + "DEVICE_NAME": func(c *Config, v string) error {
		c.Device.Name = v
		return nil
	},
	EnvPrefix + "DEVICE_CONFIRM_DELAY_MS": func(c *Config, v string) (err error) {
		c.Device.ConfirmDelayMS, err = strconv.Atoi(v)
		return err
	},
	EnvPrefix + "DEVICE_OUTCOME": func(c *Config, v string) error {
		c.Device.Outcome = v
		return nil
	},
	EnvPrefix + "DEVICE_TERMINAL": func(c *Config, v string) (err error) {
		c.Device.Terminal, err = parseBool(v)
		return err
	},
}

// EnvVars returns the supported environment variables, sorted.
func EnvVars() []string {
	names := make([]string, 0, len(envSettings))
	for name := range envSettings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ApplyEnv overrides settings from the environment. Empty values are
// applied as given.
func ApplyEnv(cfg *Config, lookup LookupFunc) error {
	for _, name := range EnvVars() {
		value, ok := lookup(name)
		if !ok {
			continue
		}
		if err := envSettings[name](cfg, value); err != nil {
			return fmt.Errorf("environment %s=%q: %w", name, value, err)
		}
	}
	return nil
}

// parseBool accepts the usual spellings of a switch.
func parseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "true", "yes", "on", "1":
		return true, nil
	case "false", "no", "off", "0", "":
		return false, nil
	}
	return false, fmt.Errorf("not a boolean: %q", s)
}
