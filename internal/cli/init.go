// Package cli provides common bootstrap utilities for the cmd entrypoints:
// logger setup, .env loading, config validation, and ledger initialization.
package cli

import (
	"context"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"fincoach/internal/config"
	applog "fincoach/internal/log"
	"fincoach/internal/storage"
)

// SetupLogger initializes structured logging at the given level and sets it
// as the default.
func SetupLogger(level slog.Level) *applog.Logger {
	cfg := applog.DefaultConfig()
	cfg.Level = level
	cfg.Handler = nil
	logger := applog.New(cfg)
	applog.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration and validates it.
// Returns the config or exits the process on validation failure.
func LoadAndValidateConfig(logger *applog.Logger) *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", applog.FieldError, err)
		os.Exit(1)
	}
	return cfg
}

// InitLedger opens the SQLite ledger, runs migrations, and ensures the
// one-time sample seed. Exits the process on failure: without a store there
// is nothing to do.
func InitLedger(ctx context.Context, logger *applog.Logger, dbPath string) *storage.SQLiteRepository {
	repo, err := storage.NewSQLiteRepository(dbPath)
	if err != nil {
		logger.Error("Failed to initialize ledger store", applog.FieldError, err, applog.FieldPath, dbPath)
		os.Exit(1)
	}
	if err := repo.Seed(ctx); err != nil {
		repo.Close()
		logger.Error("Failed to seed ledger store", applog.FieldError, err, applog.FieldPath, dbPath)
		os.Exit(1)
	}
	return repo
}
