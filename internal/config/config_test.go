package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theiron97/hwopusd/internal/config"
)

func writeConfigFile(t *testing.T, contents string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))

	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfigFile(t, `
server:
  listen_addr: ":9000"
  max_message_bytes: 65536
  max_output_bytes: 32768
decoder:
  max_sessions: 4
log_level: debug
`)

	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Server.ListenAddr)
	assert.Equal(t, int64(65536), cfg.Server.MaxMessageBytes)
	assert.Equal(t, int64(32768), cfg.Server.MaxOutputBytes)
	assert.Equal(t, 4, cfg.Decoder.MaxSessions)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfigFile(t, "log_level: info\n")

	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, ":8722", cfg.Server.ListenAddr)
	assert.Equal(t, int64(1<<20), cfg.Server.MaxMessageBytes)
	assert.Equal(t, int64(1<<20), cfg.Server.MaxOutputBytes)
	assert.Equal(t, 16, cfg.Decoder.MaxSessions)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := config.LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
