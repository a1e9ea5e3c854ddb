package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stitchbook-dev/stitchbook/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"PORT", "DATABASE_DRIVER", "DATABASE_URL", "JWT_SECRET", "TOKEN_TTL",
	"UPLOAD_DIR", "MAX_UPLOAD_BYTES", "AUTH_RATE_LIMIT", "AUTH_RATE_BURST",
	"LOG_LEVEL", "LOG_FORMAT", "EXPORT_OWNED_TRUE", "EXPORT_OWNED_FALSE",
	"CLIENT_URL", "ALLOWED_ORIGINS", "TRUSTED_PROXIES",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range envKeys {
		t.Setenv(key, "")
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "stitchbook.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "3001", cfg.Port)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "threads.db", cfg.Database.URL)
	assert.Equal(t, 168*time.Hour, cfg.TokenTTL)
	assert.Equal(t, types.DefaultOrigins, cfg.AllowedOrigins)
	assert.Equal(t, "1", cfg.Export.OwnedTrue)
	assert.Equal(t, "0", cfg.Export.OwnedFalse)
	assert.Empty(t, cfg.TrustedProxies)

	assert.EqualError(t, cfg.Validate(), "JWT_SECRET is not set")
}

func TestLoadFile(t *testing.T) {
	clearEnv(t)

	path := writeConfig(t, `
port: "8080"
jwt_secret: from-file
token_ttl: 24h
database:
  driver: postgres
  url: postgres://stitch@localhost/stitchbook
  slow_threshold: 250ms
auth_rate_limit:
  per_minute: 5
  burst: 2
export:
  owned_true: "yes"
  owned_false: "no"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "from-file", cfg.JWTSecret)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, 250*time.Millisecond, cfg.Database.SlowThreshold)
	assert.Equal(t, RateLimit{PerMinute: 5, Burst: 2}, cfg.AuthRateLimit)
	assert.Equal(t, "yes", cfg.Export.OwnedTrue)
	assert.Equal(t, "uploads", cfg.UploadDir)
	assert.NoError(t, cfg.Validate())
}

func TestEnvironmentOverridesFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("DATABASE_DRIVER", "SQLite")
	t.Setenv("TOKEN_TTL", "not-a-duration")
	t.Setenv("MAX_UPLOAD_BYTES", "1048576")
	t.Setenv("AUTH_RATE_LIMIT", "lots")
	t.Setenv("CLIENT_URL", "https://stitch.example")
	t.Setenv("ALLOWED_ORIGINS", " https://a.example , ,https://b.example")
	t.Setenv("TRUSTED_PROXIES", "10.0.0.1, 10.1.0.0/16")

	path := writeConfig(t, "port: \"8080\"\njwt_secret: from-file\ntoken_ttl: 2h\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "from-env", cfg.JWTSecret)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, 2*time.Hour, cfg.TokenTTL)
	assert.Equal(t, int64(1048576), cfg.MaxUploadBytes)
	assert.Equal(t, 20, cfg.AuthRateLimit.PerMinute)
	assert.Subset(t, cfg.AllowedOrigins, []string{"https://stitch.example", "https://a.example", "https://b.example"})
	assert.Len(t, cfg.AllowedOrigins, len(types.DefaultOrigins)+3)
	assert.Equal(t, []string{"10.0.0.1", "10.1.0.0/16"}, cfg.TrustedProxies)
}

func TestLoadErrors(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read config file")

	_, err = Load(writeConfig(t, "port: [unterminated"))
	assert.ErrorContains(t, err, "failed to parse config file")
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.JWTSecret = "secret"
	require.NoError(t, cfg.Validate())

	cfg.Database.Driver = "mysql"
	assert.ErrorContains(t, cfg.Validate(), "unsupported database driver")

	cfg.Database.Driver = DriverSQLite
	cfg.UploadDir = ""
	assert.EqualError(t, cfg.Validate(), "UPLOAD_DIR is not set")
}
