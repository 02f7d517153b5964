package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFrom_FileEnvAndDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 9000
  api_host: "https://lookhub.example.com/"
database:
  driver: mysql
  url: "user:pass@tcp(db:3306)/lookhub"
poster:
  platforms: [telegram]
`), 0o600))

	t.Setenv("TELEGRAM_CHANNEL_ID", "@lookhub")
	t.Setenv("POSTER_PLATFORMS", "telegram, instagram")

	cfg, err := LoadFrom(path)
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "https://lookhub.example.com", cfg.Server.APIHost)
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, "@lookhub", cfg.Telegram.ChannelID)
	assert.Equal(t, []string{"telegram", "instagram"}, cfg.Poster.Platforms)
	assert.Equal(t, "nginx:80", cfg.Poster.InternalHostAlias)
	assert.Same(t, cfg, AppConfig)
}

func TestLoadFrom_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, "http://localhost:8000", cfg.Server.APIHost)
	assert.Equal(t, 3, cfg.Poster.MaxAttempts)
	assert.Equal(t, 5, cfg.Poster.RetryDelay)
	assert.Equal(t, 50, cfg.Scheduler.ProducerBatch)
	assert.Equal(t, 100, cfg.Scheduler.CollectorBatch)
}

func TestLoadFrom_BrokenYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [oops"), 0o600))

	_, err := LoadFrom(path)
	assert.Error(t, err)
}
