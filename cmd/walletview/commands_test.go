package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVersionCmd(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "walletview dev (commit: unknown, built: unknown)\n", out)
}

func TestLocalesCmd(t *testing.T) {
	out, err := execute(t, "locales")
	require.NoError(t, err)
	assert.Equal(t, "en\nde\nfr\n", out)
}

func TestEnvCmd(t *testing.T) {
	t.Setenv("WALLETVIEW_LOG_LEVEL", "debug")

	out, err := execute(t, "env")
	require.NoError(t, err)
	assert.Contains(t, out, "WALLETVIEW_LOG_LEVEL=debug\n")
}

func TestRunCmd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "walletview.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
logging:
  level: error
metrics:
  enabled: true
device:
  confirm_delay_ms: 5
appearance:
  cloud_backup_location: /srv/backups
`), 0o644))

	out, err := execute(t, "run", "--config", path, "--print-metrics")
	require.NoError(t, err)
	assert.Contains(t, out, "wizard finished\n")
	assert.Contains(t, out, "wallet created: true\n")
	assert.Contains(t, out, "cloud backups: /srv/backups\n")
	assert.Contains(t, out, "walletview_event_bus_events_posted_total")
}

func TestRunCmd_BadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "walletview.ini")
	require.NoError(t, os.WriteFile(path, []byte("x=1"), 0o644))

	_, err := execute(t, "run", "-c", path)
	assert.ErrorContains(t, err, "failed to initialize")
}
