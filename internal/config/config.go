// Package config holds configuration for the recommendation pipeline and
// its external catalog clients. Everything is read from SHELFMATE_* env
// vars with sensible defaults; the LLM provider has its own config in
// internal/llm.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/daye-lim/shelfmate/internal/retry"
)

// Config is the top-level pipeline configuration.
type Config struct {
	// Books is the bibliographic search API configuration.
	Books CatalogConfig

	// Movies is the media metadata API configuration.
	Movies CatalogConfig

	// Language is the primary language tag for media lookups.
	// A secondary lookup in FallbackLanguage fills empty overviews.
	Language         string
	FallbackLanguage string

	// Timeout bounds each single outbound HTTP call.
	Timeout time.Duration

	// Retry is the shared policy for every outbound call.
	Retry retry.Policy

	// PoolSize caps the candidate pool gathered before selection.
	PoolSize int

	// Workers bounds the enrichment fan-out. Range 1-6.
	Workers int

	// SynopsisBudget is the max synopsis length in characters.
	SynopsisBudget int

	// LazySynopsis defers synopsis fetching until the user asks for it.
	LazySynopsis bool
}

// CatalogConfig configures one external catalog API.
type CatalogConfig struct {
	APIKey  string
	BaseURL string
}

// Default returns the baseline configuration.
func Default() Config {
	return Config{
		Books: CatalogConfig{
			BaseURL: "https://openlibrary.org",
		},
		Movies: CatalogConfig{
			BaseURL: "https://api.themoviedb.org/3",
		},
		Language:         "en-US",
		FallbackLanguage: "en",
		Timeout:          10 * time.Second,
		Retry:            retry.DefaultPolicy(),
		PoolSize:         30,
		Workers:          3,
		SynopsisBudget:   400,
		LazySynopsis:     false,
	}
}

// FromEnv builds a Config from environment variables, falling back to
// defaults for unset values.
func FromEnv() Config {
	cfg := Default()

	if v := os.Getenv("SHELFMATE_BOOKS_API_KEY"); v != "" {
		cfg.Books.APIKey = v
	}
	if v := os.Getenv("SHELFMATE_BOOKS_BASE_URL"); v != "" {
		cfg.Books.BaseURL = v
	}
	if v := os.Getenv("SHELFMATE_MOVIES_API_KEY"); v != "" {
		cfg.Movies.APIKey = v
	}
	if v := os.Getenv("SHELFMATE_MOVIES_BASE_URL"); v != "" {
		cfg.Movies.BaseURL = v
	}
	if v := os.Getenv("SHELFMATE_LANGUAGE"); v != "" {
		cfg.Language = v
	}

	if v := os.Getenv("SHELFMATE_HTTP_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}
	if n, ok := envInt("SHELFMATE_RETRY_ATTEMPTS"); ok && n >= 1 {
		cfg.Retry.MaxAttempts = n
	}
	if n, ok := envInt("SHELFMATE_POOL_SIZE"); ok && n > 0 {
		cfg.PoolSize = n
	}
	if n, ok := envInt("SHELFMATE_WORKERS"); ok {
		cfg.Workers = clampWorkers(n)
	}
	if n, ok := envInt("SHELFMATE_SYNOPSIS_BUDGET"); ok && n > 0 {
		cfg.SynopsisBudget = n
	}
	if v := os.Getenv("SHELFMATE_LAZY_SYNOPSIS"); v != "" {
		b, err := strconv.ParseBool(v)
		cfg.LazySynopsis = err == nil && b
	}

	return cfg
}

// Validate rejects settings the pipeline cannot run with.
func (c Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	if c.Workers < 1 || c.Workers > 6 {
		return fmt.Errorf("workers must be in 1..6, got %d", c.Workers)
	}
	if c.PoolSize < 3 {
		return fmt.Errorf("pool size must be at least 3, got %d", c.PoolSize)
	}
	return nil
}

func envInt(key string) (int, bool) {
	v := os.Getenv(key)
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

func clampWorkers(n int) int {
	if n < 1 {
		return 1
	}
	if n > 6 {
		return 6
	}
	return n
}
