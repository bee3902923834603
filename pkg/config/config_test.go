package config

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	t.Setenv(EnvServerURL, "")
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_File(t *testing.T) {
	t.Setenv(EnvServerURL, "")
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server_url: http://api.internal/api\noutput_format: json\ntimeout: 3s\npage_size: 25\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://api.internal/api", cfg.ServerURL)
	assert.Equal(t, "json", cfg.OutputFormat)
	assert.Equal(t, 3*time.Second, cfg.Timeout)
	assert.Equal(t, 25, cfg.PageSize)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server_url: http://file/api\npage_size: 0\n"), 0o600))
	t.Setenv(EnvServerURL, "http://env/api")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://env/api", cfg.ServerURL)
	assert.Equal(t, 10, cfg.PageSize)
}

func TestLoad_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server_url: [unterminated\n"), 0o600))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	t.Setenv(EnvServerURL, "")
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := Default()
	cfg.OutputFormat = "yaml"
	require.NoError(t, cfg.Save(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLogger_Level(t *testing.T) {
	cfg := Default()
	cfg.LogLevel = "debug"
	assert.True(t, cfg.Logger(io.Discard).Enabled(context.Background(), slog.LevelDebug))

	cfg.LogLevel = "error"
	assert.False(t, cfg.Logger(io.Discard).Enabled(context.Background(), slog.LevelWarn))
}
