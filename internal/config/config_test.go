package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	require.Equal(t, ":8080", cfg.Server.Address)
	require.Equal(t, time.Hour, cfg.JWT.Expiration)
	require.Equal(t, 15*time.Minute, cfg.Media.URLExpiry)
	require.Equal(t, 1, cfg.Stats.Concurrency)
	require.True(t, cfg.Metrics.Enabled)
	require.False(t, cfg.S3.Enabled())
	require.False(t, cfg.Database.InMemory())
}

func TestLoadConfigFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	yaml := []byte("database:\n  uri: memory://\nstats:\n  concurrency: 0\nmedia:\n  url_expiry: 5m\ns3:\n  bucket_name: covers\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0o600))
	t.Setenv("JWT_SECRET", "from-env")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	require.True(t, cfg.Database.InMemory())
	require.Equal(t, 1, cfg.Stats.Concurrency, "non-positive concurrency runs sequentially")
	require.Equal(t, 5*time.Minute, cfg.Media.URLExpiry)
	require.True(t, cfg.S3.Enabled())
	require.Equal(t, "from-env", cfg.JWT.Secret)
}
