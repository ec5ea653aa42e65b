// Package main implements the entry point for the Storyforge API server,
// which generates articles, stories, news and novels with the Gemini API,
// serves the browser UI and exports documents as RTF.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/phrazzld/storyforge-api/internal/config"
	"github.com/phrazzld/storyforge-api/internal/platform/logger"
)

// main is the entry point for the storyforge-api server.
func main() {
	if err := run(context.Background()); err != nil {
		slog.Error("Server exited with error", "error", err)
		os.Exit(1)
	}
}

// run loads configuration, wires the application and serves until a shutdown
// signal arrives.
func run(ctx context.Context) error {
	// A .env file is optional; real environment variables win over it.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to load .env file: %w", err)
	}

	cfg, err := initializeApp()
	if err != nil {
		return err
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	app, err := newGeminiApplication(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.serve(ctx, app.setupRouter())
}

// initializeApp loads and validates the configuration.
func initializeApp() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	slog.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"metrics_port", cfg.Metrics.Port)
	slog.Debug("LLM configuration",
		"fast_model", cfg.LLM.FastModel,
		"quality_model", cfg.LLM.QualityModel,
		"server_key_present", cfg.LLM.GeminiAPIKey != "")

	return cfg, nil
}
