package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "castromotors", cfg.ServiceName)
	assert.Equal(t, 5*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 1.0, cfg.Tracing.Probability)
	assert.False(t, cfg.TLSEnabled())
}

func TestLoadFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `
addr: ":9000"
log_level: debug
shutdown_timeout: 10s
tracing:
  host: collector:4317
  probability: 0.5
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Addr)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "collector:4317", cfg.Tracing.Host)
	assert.Equal(t, 0.5, cfg.Tracing.Probability)
}

func TestLoadRejectsBadEnv(t *testing.T) {
	t.Setenv("OTEL_PROBABILITY", "lots")
	_, err := Load()
	assert.ErrorContains(t, err, "OTEL_PROBABILITY")
}

func TestLoadMissingConfigFile(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "nope.yaml"))
	_, err := Load()
	assert.Error(t, err)
}

func TestTLSEnabled(t *testing.T) {
	t.Setenv("TLS_CERT", "certs/server.crt")
	t.Setenv("TLS_KEY", "certs/server.key")
	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.TLSEnabled())
}
