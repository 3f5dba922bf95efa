package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noEnv(string) (string, bool) { return "", false }

func envOf(vars map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		v, ok := vars[key]
		return v, ok
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "en", cfg.Appearance.Locale)
	assert.True(t, cfg.UI.StrictThreadChecks)
	assert.Equal(t, 1024, cfg.UI.QueueSize)
}

func TestLoad_ByExtension(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{
			name: "toml",
			file: "walletview.toml",
			content: `
[appearance]
locale = "de"
cloud_backup_location = "/home/alice/cloud"

[ui]
queue_size = 64
`,
		},
		{
			name: "yaml",
			file: "walletview.yaml",
			content: `
appearance:
  locale: de
  cloud_backup_location: /home/alice/cloud
ui:
  queue_size: 64
`,
		},
		{
			name: "yml",
			file: "walletview.yml",
			content: `
appearance: {locale: de, cloud_backup_location: /home/alice/cloud}
ui: {queue_size: 64}
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadWithEnv(writeFile(t, tt.file, tt.content), noEnv)
			require.NoError(t, err)

			assert.Equal(t, "de", cfg.Appearance.Locale)
			assert.Equal(t, "/home/alice/cloud", cfg.Appearance.CloudBackupLocation)
			assert.Equal(t, 64, cfg.UI.QueueSize)

			// Untouched settings keep their defaults.
			assert.Equal(t, "info", cfg.Logging.Level)
			assert.True(t, cfg.UI.StrictThreadChecks)
		})
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadWithEnv(filepath.Join(t.TempDir(), "absent.toml"), noEnv)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	cfg, err = LoadWithEnv("", noEnv)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_Errors(t *testing.T) {
	_, err := LoadWithEnv(writeFile(t, "walletview.json", "{}"), noEnv)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = LoadWithEnv(writeFile(t, "walletview.toml", "[ui\nqueue_size = 1"), noEnv)
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Contains(t, parseErr.Path, "walletview.toml")

	_, err = LoadWithEnv(writeFile(t, "walletview.toml", "[ui]\nqueue_size = 0\n"), noEnv)
	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "ui.queue_size", valErr.Setting)
	assert.ErrorIs(t, err, ErrValidationFailed)
}

func TestApplyEnv(t *testing.T) {
	path := writeFile(t, "walletview.toml", "[appearance]\nlocale = \"de\"\n")

	cfg, err := LoadWithEnv(path, envOf(map[string]string{
		"WALLETVIEW_LOCALE":                  "fr",
		"WALLETVIEW_STRICT_THREAD_CHECKS":    "off",
		"WALLETVIEW_QUEUE_SIZE":              "16",
		"WALLETVIEW_METRICS_ENABLED":         "yes",
		"WALLETVIEW_DEVICE_OUTCOME":          "failed",
		"WALLETVIEW_DEVICE_CONFIRM_DELAY_MS": "10",
		"WALLETVIEW_LOG_FORMAT":              "json",
	}))
	require.NoError(t, err)

	assert.Equal(t, "fr", cfg.Appearance.Locale)
	assert.False(t, cfg.UI.StrictThreadChecks)
	assert.Equal(t, 16, cfg.UI.QueueSize)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "failed", cfg.Device.Outcome)
	assert.Equal(t, 10, cfg.Device.ConfirmDelayMS)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestApplyEnv_BadValue(t *testing.T) {
	err := ApplyEnv(Default(), envOf(map[string]string{"WALLETVIEW_QUEUE_SIZE": "many"}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "WALLETVIEW_QUEUE_SIZE")

	err = ApplyEnv(Default(), envOf(map[string]string{"WALLETVIEW_DEVICE_TERMINAL": "maybe"}))
	assert.Error(t, err)
}

func TestLoad_ReadsProcessEnvironment(t *testing.T) {
	t.Setenv("WALLETVIEW_LOCALE", "de-AT")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "de-AT", cfg.Appearance.Locale)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		setting string
	}{
		{"level", func(c *Config) { c.Logging.Level = "loud" }, "logging.level"},
		{"empty level", func(c *Config) { c.Logging.Level = "" }, "logging.level"},
		{"format", func(c *Config) { c.Logging.Format = "xml" }, "logging.format"},
		{"locale", func(c *Config) { c.Appearance.Locale = "not a locale!" }, "appearance.locale"},
		{"delay", func(c *Config) { c.Device.ConfirmDelayMS = -1 }, "device.confirm_delay_ms"},
		{"outcome", func(c *Config) { c.Device.Outcome = "exploded" }, "device.outcome"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			var valErr *ValidationError
			require.ErrorAs(t, cfg.Validate(), &valErr)
			assert.Equal(t, tt.setting, valErr.Setting)
		})
	}
}

func TestDiff(t *testing.T) {
	a := Default()
	b := Default()
	assert.Empty(t, a.Diff(b))

	b.Appearance.Locale = "de"
	b.Device.Terminal = true
	assert.Equal(t, []string{"appearance.locale", "device.terminal"}, a.Diff(b))
}

func TestEnvVars(t *testing.T) {
	vars := EnvVars()
	assert.Contains(t, vars, "WALLETVIEW_LOCALE")
	assert.IsIncreasing(t, vars)
}
