// Package cli provides common initialization shared by the cmd binaries.
package cli

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"expensemanager/internal/config"
	"expensemanager/internal/log"
	"expensemanager/internal/storage"
)

// SetupLogger initializes structured logging and sets it as the default.
func SetupLogger(component string) *log.Logger {
	logger := log.New(log.Config{
		Level:     slog.LevelInfo,
		Component: component,
	})
	log.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development. Errors are ignored
// silently as the file is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration and validates it.
// Exits the process on validation failure.
func LoadAndValidateConfig(logger *log.Logger) *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", log.FieldError, err)
		os.Exit(1)
	}
	return cfg
}

// InitSQLite opens the SQLite repository at dbPath.
// Exits the process on failure.
func InitSQLite(logger *log.Logger, dbPath string) *storage.SQLiteRepository {
	repo, err := storage.NewSQLiteRepository(dbPath)
	if err != nil {
		logger.Error("Failed to initialize SQLite repository", log.FieldError, err, "path", dbPath)
		os.Exit(1)
	}
	return repo
}
