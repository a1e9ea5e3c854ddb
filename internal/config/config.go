package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/stitchbook-dev/stitchbook/internal/types"
	"gopkg.in/yaml.v3"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	Port           string         `yaml:"port"`
	Database       DatabaseConfig `yaml:"database"`
	JWTSecret      string         `yaml:"jwt_secret"`
	TokenTTL       time.Duration  `yaml:"token_ttl"`
	UploadDir      string         `yaml:"upload_dir"`
	MaxUploadBytes int64          `yaml:"max_upload_bytes"`
	AllowedOrigins []string       `yaml:"allowed_origins"`
	TrustedProxies []string       `yaml:"trusted_proxies"`
	AuthRateLimit  RateLimit      `yaml:"auth_rate_limit"`
	Log            LogConfig      `yaml:"log"`
	Export         ExportConfig   `yaml:"export"`
}

type DatabaseConfig struct {
	Driver        string        `yaml:"driver"`
	URL           string        `yaml:"url"`
	SlowThreshold time.Duration `yaml:"slow_threshold"`
}

// RateLimit bounds register/login attempts per client address.
type RateLimit struct {
	PerMinute int `yaml:"per_minute"`
	Burst     int `yaml:"burst"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "console" or "json"
}

// ExportConfig controls how the owned flag is written in CSV exports.
type ExportConfig struct {
	OwnedTrue  string `yaml:"owned_true"`
	OwnedFalse string `yaml:"owned_false"`
}

func Default() *Config {
	return &Config{
		Port: "3001",
		Database: DatabaseConfig{
			Driver:        DriverSQLite,
			URL:           "threads.db",
			SlowThreshold: 1500 * time.Millisecond,
		},
		TokenTTL:       168 * time.Hour,
		UploadDir:      "uploads",
		MaxUploadBytes: 32 << 20,
		AllowedOrigins: append([]string(nil), types.DefaultOrigins...),
		AuthRateLimit: RateLimit{
			PerMinute: 20,
			Burst:     5,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
		Export: ExportConfig{
			OwnedTrue:  "1",
			OwnedFalse: "0",
		},
	}
}

// Load builds the configuration from defaults, an optional YAML file, an
// optional .env file and finally the process environment.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	cfg.applyEnv()

	return cfg, nil
}

func (c *Config) applyEnv() {
	c.Port = envString("PORT", c.Port)
	c.Database.Driver = strings.ToLower(envString("DATABASE_DRIVER", c.Database.Driver))
	c.Database.URL = envString("DATABASE_URL", c.Database.URL)
	c.JWTSecret = envString("JWT_SECRET", c.JWTSecret)
	c.TokenTTL = envDuration("TOKEN_TTL", c.TokenTTL)
	c.UploadDir = envString("UPLOAD_DIR", c.UploadDir)
	c.MaxUploadBytes = envInt64("MAX_UPLOAD_BYTES", c.MaxUploadBytes)
	c.AuthRateLimit.PerMinute = envInt("AUTH_RATE_LIMIT", c.AuthRateLimit.PerMinute)
	c.AuthRateLimit.Burst = envInt("AUTH_RATE_BURST", c.AuthRateLimit.Burst)
	c.Log.Level = envString("LOG_LEVEL", c.Log.Level)
	c.Log.Format = envString("LOG_FORMAT", c.Log.Format)
	c.Export.OwnedTrue = envString("EXPORT_OWNED_TRUE", c.Export.OwnedTrue)
	c.Export.OwnedFalse = envString("EXPORT_OWNED_FALSE", c.Export.OwnedFalse)

	if clientURL := os.Getenv("CLIENT_URL"); clientURL != "" {
		c.AllowedOrigins = append(c.AllowedOrigins, clientURL)
	}

	c.AllowedOrigins = append(c.AllowedOrigins, splitList(os.Getenv("ALLOWED_ORIGINS"))...)

	// Forwarded client addresses are only believed from these peers.
	if proxies := os.Getenv("TRUSTED_PROXIES"); proxies != "" {
		c.TrustedProxies = splitList(proxies)
	}
}

func splitList(raw string) []string {
	var items []string
	for _, item := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}

func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is not set")
	}

	switch c.Database.Driver {
	case DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}

	if c.Database.URL == "" {
		return errors.New("DATABASE_URL is not set")
	}

	if c.UploadDir == "" {
		return errors.New("UPLOAD_DIR is not set")
	}

	return nil
}
