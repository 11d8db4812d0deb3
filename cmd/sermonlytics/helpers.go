package main

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/jwheeler-fc/sermonlytics/internal/api"
	"github.com/jwheeler-fc/sermonlytics/internal/config"
	"github.com/jwheeler-fc/sermonlytics/internal/engine"
	"github.com/jwheeler-fc/sermonlytics/internal/store"
)

// loadConfig reads .env (if present), the optional global config file, and
// the environment. Invalid values exit with a config error.
func loadConfig() config.Config {
	_ = godotenv.Load()

	cfg, err := config.FromEnv()
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}
	return cfg
}

// newLogger returns the engine logger. Logs go to stderr so stdout stays
// clean for command output.
func newLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, nil))
}

// openStore opens the shard store under the output directory.
func openStore(cfg config.Config) *store.Store {
	st, err := store.New(cfg.OutputDir)
	if err != nil {
		exitWithError(ExitError, "opening store: %v", err)
	}
	return st
}

// newEngine wires the API client, store, and logger for a command.
func newEngine(cfg config.Config) *engine.Engine {
	client := api.New(cfg.APIURL,
		api.WithTimeout(cfg.RequestTimeout),
		api.WithRetries(cfg.MaxRetries, cfg.RetryDelay),
		api.WithLogger(newLogger()),
	)
	return engine.New(cfg, client, openStore(cfg), newLogger())
}

// cachePath returns the path of the ephemeral SQLite occurrence index,
// creating its directory.
func cachePath(cfg config.Config) string {
	dir := filepath.Join(cfg.OutputDir, "cache")
	if err := os.MkdirAll(dir, 0755); err != nil {
		exitWithError(ExitError, "creating cache directory: %v", err)
	}
	return filepath.Join(dir, "occurrences.db")
}
