package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the application configuration.
type Config struct {
	DatabaseDriver string `mapstructure:"DATABASE_DRIVER"`
	DatabaseURL    string `mapstructure:"DATABASE_URL"`
	HTTPPort       int    `mapstructure:"HTTP_PORT"`
	JWTSecret      string `mapstructure:"JWT_SECRET"`
	CORSOrigins    string `mapstructure:"CORS_ORIGINS"`

	LogLevel      string `mapstructure:"LOG_LEVEL"`
	LogDir        string `mapstructure:"LOG_DIR"`
	LogMaxSizeMB  int    `mapstructure:"LOG_MAX_SIZE_MB"`
	LogMaxBackups int    `mapstructure:"LOG_MAX_BACKUPS"`
	LogMaxAgeDays int    `mapstructure:"LOG_MAX_AGE_DAYS"`

	CacheURL        string `mapstructure:"CACHE_URL"`
	CacheTTLSeconds int    `mapstructure:"CACHE_TTL_SECONDS"`

	SteamLibraryPath       string `mapstructure:"STEAM_LIBRARY_PATH"`
	EpicManifestPath       string `mapstructure:"EPIC_MANIFEST_PATH"`
	SyncMinIntervalSeconds int    `mapstructure:"SYNC_MIN_INTERVAL_SECONDS"`

	OTelEnabled     bool   `mapstructure:"OTEL_ENABLED"`
	OTelEndpoint    string `mapstructure:"OTEL_ENDPOINT"`
	OTelServiceName string `mapstructure:"OTEL_SERVICE_NAME"`
}

var AppConfig *Config

var keys = []string{
	"DATABASE_DRIVER", "DATABASE_URL", "HTTP_PORT", "JWT_SECRET", "CORS_ORIGINS",
	"LOG_LEVEL", "LOG_DIR", "LOG_MAX_SIZE_MB", "LOG_MAX_BACKUPS", "LOG_MAX_AGE_DAYS",
	"CACHE_URL", "CACHE_TTL_SECONDS",
	"STEAM_LIBRARY_PATH", "EPIC_MANIFEST_PATH", "SYNC_MIN_INTERVAL_SECONDS",
	"OTEL_ENABLED", "OTEL_ENDPOINT", "OTEL_SERVICE_NAME",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("DATABASE_DRIVER", "postgres")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("HTTP_PORT", 8080)
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_DIR", "")
	v.SetDefault("LOG_MAX_SIZE_MB", 10)
	v.SetDefault("LOG_MAX_BACKUPS", 5)
	v.SetDefault("LOG_MAX_AGE_DAYS", 14)
	v.SetDefault("CACHE_URL", "")
	v.SetDefault("CACHE_TTL_SECONDS", 300)
	v.SetDefault("STEAM_LIBRARY_PATH", "")
	v.SetDefault("EPIC_MANIFEST_PATH", "")
	v.SetDefault("SYNC_MIN_INTERVAL_SECONDS", 30)
	v.SetDefault("OTEL_ENABLED", false)
	v.SetDefault("OTEL_ENDPOINT", "localhost:4317")
	v.SetDefault("OTEL_SERVICE_NAME", "gamevault")
}

// LoadConfig loads the configuration from a .env file in dir and environment variables.
// Environment variables take precedence over the file.
func LoadConfig(dir string) (*Config, error) {
	v := viper.New()
	v.AddConfigPath(dir)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	setDefaults(v)

	v.AutomaticEnv()
	// AutomaticEnv only resolves keys viper already knows about.
	for _, key := range keys {
		_ = v.BindEnv(key)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
		slog.Warn("env_file_not_found", "dir", dir)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	AppConfig = &cfg
	return &cfg, nil
}

// Validate checks the values that would otherwise fail later at startup.
func (c *Config) Validate() error {
	switch strings.ToLower(c.DatabaseDriver) {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported DATABASE_DRIVER %q", c.DatabaseDriver)
	}
	if strings.TrimSpace(c.DatabaseURL) == "" {
		return errors.New("DATABASE_URL is required")
	}
	if c.HTTPPort <= 0 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP_PORT %d", c.HTTPPort)
	}
	return nil
}

// CacheTTL returns the cache entry lifetime.
func (c *Config) CacheTTL() time.Duration {
	if c.CacheTTLSeconds <= 0 {
		return time.Minute
	}
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

// SyncMinInterval returns the minimum delay between two sync runs.
func (c *Config) SyncMinInterval() time.Duration {
	if c.SyncMinIntervalSeconds <= 0 {
		return 0
	}
	return time.Duration(c.SyncMinIntervalSeconds) * time.Second
}

// AllowedOrigins splits CORS_ORIGINS on commas.
func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, part := range strings.Split(c.CORSOrigins, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

// Addr returns the listen address of the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}
