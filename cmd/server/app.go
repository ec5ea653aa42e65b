package main

import (
	"fmt"
	"log/slog"

	"github.com/phrazzld/storyforge-api/internal/config"
	"github.com/phrazzld/storyforge-api/internal/generation"
	"github.com/phrazzld/storyforge-api/internal/platform/gemini"
	"github.com/phrazzld/storyforge-api/internal/platform/metrics"
	"github.com/phrazzld/storyforge-api/internal/service"
	"github.com/phrazzld/storyforge-api/internal/web"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// languageModel is what the application needs from a model adapter.
type languageModel interface {
	generation.ModelClient
	generation.CredentialProber
}

// application holds all the shared application dependencies.
type application struct {
	config *config.Config
	logger *slog.Logger

	registry *prometheus.Registry
	metrics  *metrics.Recorder

	generator   service.GenerationService
	credentials service.CredentialService
	ui          *web.Handler
}

// newGeminiApplication creates the application backed by the Gemini API.
func newGeminiApplication(cfg *config.Config, logger *slog.Logger) (*application, error) {
	registry := newRegistry()
	recorder := metrics.NewRecorder(registry)

	client, err := gemini.NewClient(
		logger.With("component", "gemini_client"),
		cfg.LLM,
		gemini.WithMetrics(recorder),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
	}
	logger.Info("Gemini client initialized",
		"fast_model", cfg.LLM.FastModel,
		"quality_model", cfg.LLM.QualityModel)

	return newApplication(cfg, logger, registry, recorder, client)
}

// newApplication creates a new application instance around the given model
// adapter. registry must already hold recorder's collectors.
func newApplication(
	cfg *config.Config,
	logger *slog.Logger,
	registry *prometheus.Registry,
	recorder *metrics.Recorder,
	model languageModel,
) (*application, error) {
	app := &application{
		config:   cfg,
		logger:   logger,
		registry: registry,
		metrics:  recorder,
	}

	var err error
	app.generator, err = service.NewGenerationService(model, logger, recorder)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize generation service: %w", err)
	}

	app.credentials, err = service.NewCredentialService(model, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize credential service: %w", err)
	}

	app.ui, err = web.NewHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to load UI documents: %w", err)
	}

	return app, nil
}

// newRegistry returns a registry carrying the runtime collectors.
func newRegistry() *prometheus.Registry {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return registry
}
