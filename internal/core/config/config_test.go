package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWithoutFile(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 5000, c.App.HTTP.Port)
	assert.Equal(t, "mongo", c.DB.Driver)
	assert.Equal(t, "gpt-4o-mini", c.Chat.Model)
	assert.Equal(t, 15*time.Minute, c.RateLimit.Window())
	assert.Equal(t, 100, c.RateLimit.MaxRequests)
	assert.Equal(t, 24*time.Hour, c.JWT.TTL())
}

func TestLoadFileAndEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := []byte(`
app:
  http:
    port: 8080
db:
  driver: postgres
  dsn: postgres://localhost/glimmr
chat:
  provider: gemini
  model: gemini-2.5-flash
`)
	require.NoError(t, os.WriteFile(path, yaml, 0o600))

	t.Setenv("JWT_SECRET", "from-legacy-env")
	t.Setenv("RATE_LIMIT_MAX_REQUESTS", "7")
	t.Setenv("FRONTEND_URL", "https://shop.example")
	t.Setenv("APP_LOG_LEVEL", "debug")

	c, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, c.App.HTTP.Port)
	assert.Equal(t, "postgres", c.DB.Driver)
	assert.Equal(t, "gemini", c.Chat.Provider)
	assert.Equal(t, "gemini-2.5-flash", c.Chat.Model)
	assert.Equal(t, "from-legacy-env", c.JWT.Secret)
	assert.Equal(t, 7, c.RateLimit.MaxRequests)
	assert.Equal(t, []string{"https://shop.example"}, c.CORS.Origins)
	assert.Equal(t, "debug", c.Log.Level)
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	t.Setenv("APP_DB_DRIVER", "cassandra")
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "db.driver")
}
