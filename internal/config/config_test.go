package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_DefaultsAndOverrides(t *testing.T) {
	path := writeConfig(t, `
[server]
http_port = 9090

[database]
host = "db"
user = "reva"
dbname = "reva"

[calendar]
week_start = "monday"
coalesce_default_override = true
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, 10, cfg.Server.ShutdownTimeout)
	assert.Equal(t, BackendPostgres, cfg.Calendar.Backend)
	assert.Equal(t, 15, cfg.Calendar.FetchTimeout)
	assert.True(t, cfg.Calendar.CoalesceDefaultOverride)
	assert.False(t, cfg.Redis.Enabled())

	wd, err := cfg.Calendar.FirstWeekday()
	require.NoError(t, err)
	assert.Equal(t, time.Monday, wd)

	loc, err := cfg.Calendar.Location()
	require.NoError(t, err)
	assert.Equal(t, "Asia/Amman", loc.String())

	assert.Equal(t, "host=db port=5432 user=reva password= dbname=reva sslmode=disable", cfg.Database.DSN())
}

func TestLoad_EnvOverridesSecrets(t *testing.T) {
	path := writeConfig(t, `
[database]
password = "from-file"
`)
	t.Setenv("DB_PASSWORD", "from-env")
	t.Setenv("REDIS_ADDR", "localhost:6379")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Database.Password)
	assert.True(t, cfg.Redis.Enabled())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"unknown backend", func(c *Config) { c.Calendar.Backend = "mysql" }},
		{"supabase without key", func(c *Config) {
			c.Calendar.Backend = BackendSupabase
			c.Supabase.URL = "https://example.supabase.co"
		}},
		{"bad time zone", func(c *Config) { c.Calendar.TimeZone = "Mars/Olympus" }},
		{"bad week start", func(c *Config) { c.Calendar.WeekStart = "funday" }},
		{"zero fetch timeout", func(c *Config) { c.Calendar.FetchTimeout = 0 }},
		{"negative retries", func(c *Config) { c.Calendar.FetchRetries = -1 }},
		{"zero session ttl", func(c *Config) { c.Calendar.SessionTTL = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaults()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}

	assert.NoError(t, defaults().Validate())
}
