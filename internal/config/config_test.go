package config

import (
	"testing"
	"time"
)

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("SHELFMATE_BOOKS_API_KEY", "k1")
	t.Setenv("SHELFMATE_HTTP_TIMEOUT", "3s")
	t.Setenv("SHELFMATE_RETRY_ATTEMPTS", "5")
	t.Setenv("SHELFMATE_WORKERS", "9")
	t.Setenv("SHELFMATE_LAZY_SYNOPSIS", "true")

	cfg := FromEnv()

	if cfg.Books.APIKey != "k1" {
		t.Errorf("Books.APIKey = %q", cfg.Books.APIKey)
	}
	if cfg.Timeout != 3*time.Second {
		t.Errorf("Timeout = %s", cfg.Timeout)
	}
	if cfg.Retry.MaxAttempts != 5 {
		t.Errorf("Retry.MaxAttempts = %d", cfg.Retry.MaxAttempts)
	}
	if cfg.Workers != 6 {
		t.Errorf("Workers should clamp to 6, got %d", cfg.Workers)
	}
	if !cfg.LazySynopsis {
		t.Error("LazySynopsis should be true")
	}
}

func TestFromEnvIgnoresGarbage(t *testing.T) {
	t.Setenv("SHELFMATE_HTTP_TIMEOUT", "not-a-duration")
	t.Setenv("SHELFMATE_POOL_SIZE", "xyz")

	cfg := FromEnv()
	def := Default()
	if cfg.Timeout != def.Timeout || cfg.PoolSize != def.PoolSize {
		t.Errorf("garbage env values should fall back to defaults")
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}

	bad := Default()
	bad.Workers = 0
	if err := bad.Validate(); err == nil {
		t.Error("workers=0 should fail validation")
	}

	bad = Default()
	bad.PoolSize = 1
	if err := bad.Validate(); err == nil {
		t.Error("pool size 1 should fail validation")
	}
}
