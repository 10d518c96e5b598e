package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := LoadConfig(New(), nil)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(home, "Documents", "employees.json"), cfg.Document.Path)
	require.Equal(t, 8080, cfg.Server.Port)
	require.Equal(t, ":8080", cfg.Server.Addr())
	require.Equal(t, "http://localhost:8080", cfg.Server.BrowserURL())
	require.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
	require.Equal(t, "info", cfg.Log.Level)
	require.False(t, cfg.RateLimit.Enabled)
	require.False(t, cfg.MinIO.Enabled())
	require.Empty(t, cfg.Server.AdminAddr)
}

func TestLoadConfigPositionalArgs(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("EDITOR_SERVER_PORT", "7000")

	cfg, err := LoadConfig(New(), []string{"~/data/staff.json", "9001"})
	require.NoError(t, err)
	require.Equal(t, filepath.Join(home, "data", "staff.json"), cfg.Document.Path)
	require.Equal(t, filepath.Join(home, "data"), cfg.Document.Dir())
	require.Equal(t, 9001, cfg.Server.Port)

	cfg, err = LoadConfig(New(), []string{"/tmp/employees.json"})
	require.NoError(t, err)
	require.Equal(t, "/tmp/employees.json", cfg.Document.Path)
	require.Equal(t, 7000, cfg.Server.Port)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("EDITOR_DOCUMENT_PATH", "/srv/employees.json")
	t.Setenv("EDITOR_SERVER_HOST", "127.0.0.1")
	t.Setenv("EDITOR_SERVER_ADMIN_ADDR", "127.0.0.1:9090")
	t.Setenv("EDITOR_LOG_LEVEL", "debug")
	t.Setenv("EDITOR_RATE_LIMIT_ENABLED", "true")
	t.Setenv("EDITOR_RATE_LIMIT_RPS", "2.5")
	t.Setenv("EDITOR_RATE_LIMIT_USE_REDIS", "true")
	t.Setenv("EDITOR_REDIS_HOST", "localhost")
	t.Setenv("EDITOR_MINIO_ENDPOINT", "localhost:9000")
	t.Setenv("EDITOR_MINIO_USE_SSL", "true")

	cfg, err := LoadConfig(New(), nil)
	require.NoError(t, err)
	require.Equal(t, "/srv/employees.json", cfg.Document.Path)
	require.Equal(t, "127.0.0.1:8080", cfg.Server.Addr())
	require.Equal(t, "127.0.0.1:9090", cfg.Server.AdminAddr)
	require.Equal(t, "debug", cfg.Log.Level)
	require.True(t, cfg.RateLimit.Enabled)
	require.Equal(t, 2.5, cfg.RateLimit.RPS)
	require.True(t, cfg.RateLimit.UseRedis)
	require.Equal(t, "localhost:6379", cfg.Redis.Addr())
	require.True(t, cfg.MinIO.Enabled())
	require.True(t, cfg.MinIO.UseSSL)
}

func TestLoadConfigRejectsBadArgs(t *testing.T) {
	_, err := LoadConfig(New(), []string{"/tmp/e.json", "eighty"})
	require.Error(t, err)

	_, err = LoadConfig(New(), []string{"/tmp/e.json", "70000"})
	require.Error(t, err)

	_, err = LoadConfig(New(), []string{"a", "1", "extra"})
	require.Error(t, err)
}
