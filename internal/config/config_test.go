package config

import (
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.BatchSize != 5 {
		t.Errorf("BatchSize = %d, want 5", cfg.BatchSize)
	}
	if cfg.RequestTimeout != 30*time.Second {
		t.Errorf("RequestTimeout = %v, want 30s", cfg.RequestTimeout)
	}
	if cfg.MaxRetries != 3 {
		t.Errorf("MaxRetries = %d, want 3", cfg.MaxRetries)
	}
	if cfg.RetryDelay != 5*time.Second {
		t.Errorf("RetryDelay = %v, want 5s", cfg.RetryDelay)
	}
	if cfg.OutputDir != "_data/analytics" {
		t.Errorf("OutputDir = %q", cfg.OutputDir)
	}
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir()) // isolate from any real global config
	t.Setenv(EnvAPIURL, "http://localhost:9999")
	t.Setenv(EnvBatchSize, "10")
	t.Setenv(EnvRequestTimeout, "60")
	t.Setenv(EnvRetryDelay, "2s")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv() error = %v", err)
	}
	if cfg.APIURL != "http://localhost:9999" {
		t.Errorf("APIURL = %q", cfg.APIURL)
	}
	if cfg.BatchSize != 10 {
		t.Errorf("BatchSize = %d, want 10", cfg.BatchSize)
	}
	if cfg.RequestTimeout != 60*time.Second {
		t.Errorf("RequestTimeout = %v, want 60s", cfg.RequestTimeout)
	}
	if cfg.RetryDelay != 2*time.Second {
		t.Errorf("RetryDelay = %v, want 2s", cfg.RetryDelay)
	}
}

func TestFromEnv_InvalidBatchSize(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv(EnvBatchSize, "zero")
	if _, err := FromEnv(); err == nil {
		t.Error("FromEnv() with bad BATCH_SIZE succeeded, want error")
	}
}

func TestParseSeconds(t *testing.T) {
	if d, err := parseSeconds("30"); err != nil || d != 30*time.Second {
		t.Errorf("parseSeconds(30) = %v, %v", d, err)
	}
	if d, err := parseSeconds("1m"); err != nil || d != time.Minute {
		t.Errorf("parseSeconds(1m) = %v, %v", d, err)
	}
	if _, err := parseSeconds("-5"); err == nil {
		t.Error("parseSeconds(-5) succeeded, want error")
	}
}
