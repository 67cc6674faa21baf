package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfigReadsEnvFile(t *testing.T) {
	dir := t.TempDir()
	content := "DATABASE_DRIVER=sqlite\nDATABASE_URL=file::memory:\nHTTP_PORT=9090\nCACHE_TTL_SECONDS=12\nCORS_ORIGINS=http://a.test, http://b.test\n"
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(content), 0o644); err != nil {
		t.Fatalf("write env file: %v", err)
	}

	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.DatabaseDriver != "sqlite" {
		t.Fatalf("expected sqlite driver, got %q", cfg.DatabaseDriver)
	}
	if cfg.Addr() != ":9090" {
		t.Fatalf("expected :9090, got %q", cfg.Addr())
	}
	if cfg.CacheTTL() != 12*time.Second {
		t.Fatalf("expected 12s ttl, got %s", cfg.CacheTTL())
	}
	origins := cfg.AllowedOrigins()
	if len(origins) != 2 || origins[1] != "http://b.test" {
		t.Fatalf("unexpected origins: %v", origins)
	}
	if AppConfig != cfg {
		t.Fatalf("expected AppConfig to be set")
	}
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	content := "DATABASE_DRIVER=sqlite\nDATABASE_URL=file::memory:\nLOG_LEVEL=info\n"
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(content), 0o644); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("expected env to win, got %q", cfg.LogLevel)
	}
}

func TestValidateRejectsUnknownDriver(t *testing.T) {
	cfg := &Config{DatabaseDriver: "mysql", DatabaseURL: "x", HTTPPort: 8080}
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error for unsupported driver")
	}
}

func TestValidateRequiresDatabaseURL(t *testing.T) {
	cfg := &Config{DatabaseDriver: "postgres", HTTPPort: 8080}
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error for missing url")
	}
}
