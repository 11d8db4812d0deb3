// Package config resolves runtime configuration from defaults, an optional
// global YAML file, and environment variables, in that order.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds every tunable for an analytics run.
type Config struct {
	APIURL         string        // Sermon search API base URL
	OutputDir      string        // Canonical analytics data directory
	AssetsDir      string        // Web-served copy of the analytics data
	BibleDataDir   string        // Static bible reference data directory
	BatchSize      int           // Sermons fetched concurrently per batch
	RequestTimeout time.Duration // Per-request HTTP timeout
	MaxRetries     int           // Attempts per API call
	RetryDelay     time.Duration // Fixed delay between retry attempts
	BatchPause     time.Duration // Throttle between batches
}

// Environment variable names.
const (
	EnvAPIURL         = "API_URL"
	EnvOutputDir      = "OUTPUT_DIR"
	EnvAssetsDir      = "ASSETS_DIR"
	EnvBibleDataDir   = "BIBLE_DATA_DIR"
	EnvBatchSize      = "BATCH_SIZE"
	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvMaxRetries     = "MAX_RETRIES"
	EnvRetryDelay     = "RETRY_DELAY"
)

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		APIURL:         "https://sermon-search-api-8fok.onrender.com",
		OutputDir:      "_data/analytics",
		AssetsDir:      "assets/data/analytics",
		BibleDataDir:   "assets/data/bible",
		BatchSize:      5,
		RequestTimeout: 30 * time.Second,
		MaxRetries:     3,
		RetryDelay:     5 * time.Second,
		BatchPause:     time.Second,
	}
}

// FromEnv builds the effective configuration: defaults, overlaid with the
// global config file if present, overlaid with environment variables.
func FromEnv() (Config, error) {
	cfg := Default()

	global, err := LoadGlobal()
	if err != nil {
		return cfg, err
	}
	global.apply(&cfg)

	if v := os.Getenv(EnvAPIURL); v != "" {
		cfg.APIURL = v
	}
	if v := os.Getenv(EnvOutputDir); v != "" {
		cfg.OutputDir = v
	}
	if v := os.Getenv(EnvAssetsDir); v != "" {
		cfg.AssetsDir = v
	}
	if v := os.Getenv(EnvBibleDataDir); v != "" {
		cfg.BibleDataDir = v
	}
	if v := os.Getenv(EnvBatchSize); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return cfg, fmt.Errorf("invalid %s %q", EnvBatchSize, v)
		}
		cfg.BatchSize = n
	}
	if v := os.Getenv(EnvRequestTimeout); v != "" {
		d, err := parseSeconds(v)
		if err != nil {
			return cfg, fmt.Errorf("invalid %s %q", EnvRequestTimeout, v)
		}
		cfg.RequestTimeout = d
	}
	if v := os.Getenv(EnvMaxRetries); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return cfg, fmt.Errorf("invalid %s %q", EnvMaxRetries, v)
		}
		cfg.MaxRetries = n
	}
	if v := os.Getenv(EnvRetryDelay); v != "" {
		d, err := parseSeconds(v)
		if err != nil {
			return cfg, fmt.Errorf("invalid %s %q", EnvRetryDelay, v)
		}
		cfg.RetryDelay = d
	}

	return cfg, nil
}

// parseSeconds accepts either a bare number of seconds ("30") or a Go
// duration string ("30s").
func parseSeconds(v string) (time.Duration, error) {
	if n, err := strconv.Atoi(v); err == nil {
		if n < 1 {
			return 0, fmt.Errorf("non-positive duration %d", n)
		}
		return time.Duration(n) * time.Second, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("bad duration %q", v)
	}
	return d, nil
}
