package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadUsesDefaultsAndYAMLOverrides(t *testing.T) {
	clearConfigEnv(t)

	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.yaml")
	yaml := `
http:
  addr: ":9090"
log:
  level: info
s3:
  bucket: fan-docs-test
  base_url: https://cdn.example.com
auth:
  login_per_minute: 3
fans:
  cache_ttl: 90s
verification:
  oracle_seed: 7
`
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatalf("write temp config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.HTTP.Addr != ":9090" {
		t.Fatalf("unexpected http addr: %s", cfg.HTTP.Addr)
	}
	if cfg.Log.Level != "info" {
		t.Fatalf("unexpected log level: %s", cfg.Log.Level)
	}
	if cfg.S3.Bucket != "fan-docs-test" {
		t.Fatalf("unexpected s3 bucket: %s", cfg.S3.Bucket)
	}
	if cfg.S3.BaseURL != "https://cdn.example.com" {
		t.Fatalf("unexpected s3 base url: %s", cfg.S3.BaseURL)
	}
	if cfg.Auth.LoginPerMinute != 3 {
		t.Fatalf("unexpected login_per_minute: %d", cfg.Auth.LoginPerMinute)
	}
	if cfg.Fans.CacheTTL != 90*time.Second {
		t.Fatalf("unexpected fan cache ttl: %s", cfg.Fans.CacheTTL)
	}
	if cfg.Verify.OracleSeed != 7 {
		t.Fatalf("unexpected oracle seed: %d", cfg.Verify.OracleSeed)
	}

	if cfg.HTTP.ReadTimeout != 5*time.Second {
		t.Fatalf("http read timeout default should stay 5s, got %s", cfg.HTTP.ReadTimeout)
	}
	if cfg.Auth.LoginPerHour != 30 {
		t.Fatalf("login_per_hour default should stay 30, got %d", cfg.Auth.LoginPerHour)
	}
	if cfg.Auth.JWTAccessTTL != 15*time.Minute {
		t.Fatalf("jwt access ttl default should stay 15m, got %s", cfg.Auth.JWTAccessTTL)
	}
}

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	clearConfigEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load config with missing file: %v", err)
	}

	if cfg.HTTP.Addr != ":8080" {
		t.Fatalf("unexpected default http addr: %s", cfg.HTTP.Addr)
	}
	if cfg.S3.Bucket != "fan-documents" {
		t.Fatalf("unexpected default s3 bucket: %s", cfg.S3.Bucket)
	}
	if cfg.Fans.CacheTTL != 5*time.Minute {
		t.Fatalf("unexpected default fan cache ttl: %s", cfg.Fans.CacheTTL)
	}
	if cfg.Auth.RefreshTTL != 720*time.Hour {
		t.Fatalf("unexpected default refresh ttl: %s", cfg.Auth.RefreshTTL)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("HTTP_ADDR", ":7070")
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("FAN_CACHE_TTL", "2m")
	t.Setenv("LOGIN_PER_HOUR", "12")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.HTTP.Addr != ":7070" {
		t.Fatalf("env http addr not applied: %s", cfg.HTTP.Addr)
	}
	if cfg.Auth.JWTSecret != "env-secret" {
		t.Fatalf("env jwt secret not applied")
	}
	if cfg.Fans.CacheTTL != 2*time.Minute {
		t.Fatalf("env fan cache ttl not applied: %s", cfg.Fans.CacheTTL)
	}
	if cfg.Auth.LoginPerHour != 12 {
		t.Fatalf("env login_per_hour not applied: %d", cfg.Auth.LoginPerHour)
	}
}

func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"APP_ENV",
		"HTTP_ADDR",
		"HTTP_READ_TIMEOUT",
		"HTTP_WRITE_TIMEOUT",
		"HTTP_IDLE_TIMEOUT",
		"LOG_LEVEL",
		"POSTGRES_DSN",
		"REDIS_ADDR",
		"REDIS_PASSWORD",
		"REDIS_DB",
		"S3_ENDPOINT",
		"S3_ACCESS_KEY",
		"S3_SECRET_KEY",
		"S3_BUCKET",
		"S3_BASE_URL",
		"S3_USE_SSL",
		"JWT_SECRET",
		"JWT_ACCESS_TTL",
		"REFRESH_TTL",
		"LOGIN_PER_MINUTE",
		"LOGIN_PER_HOUR",
		"FAN_CACHE_TTL",
		"ORACLE_SEED",
	} {
		t.Setenv(key, "")
	}
}
