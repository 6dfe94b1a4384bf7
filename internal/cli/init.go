// Package cli holds the startup plumbing shared by the server and
// worker binaries.
package cli

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"budgetboard/internal/backend"
	"budgetboard/internal/config"
	"budgetboard/internal/log"
	"budgetboard/internal/session"
)

// SetupLogger initializes structured logging and installs it as the
// process default.
func SetupLogger(component string) *log.Logger {
	logger := log.New(component, log.Config{Level: slog.LevelInfo})
	log.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the optional .env file for local development.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration or exits on validation
// failure.
func LoadAndValidateConfig(logger *log.Logger) *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", log.FieldError, err)
		os.Exit(1)
	}
	return cfg
}

// InitBackend builds the record store for the configured backend or
// exits on failure.
func InitBackend(ctx context.Context, logger *log.Logger, cfg *config.Config) *backend.BackendResult {
	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		logger.Error("Invalid backend configuration", log.FieldError, err)
		os.Exit(1)
	}
	result, err := backend.NewFactory(logger.Logger).CreateBackend(ctx, backendCfg)
	if err != nil {
		logger.Error("Failed to initialize record store",
			log.FieldError, err, "backend", cfg.DataBackend)
		os.Exit(1)
	}
	return result
}

// InitSessions builds the session manager from the configured users or
// exits when the user list cannot be parsed.
func InitSessions(logger *log.Logger, cfg *config.Config) *session.Manager {
	users, err := cfg.UserCredentials()
	if err != nil {
		logger.Error("Failed to parse user credentials", log.FieldError, err)
		os.Exit(1)
	}
	if len(users) == 0 {
		logger.Warn("No users configured, nobody will be able to log in")
	}
	return session.NewManager(users, cfg.SessionTTL)
}

// ShutdownTimeout is how long binaries wait for graceful shutdown.
const ShutdownTimeout = 30 * time.Second
