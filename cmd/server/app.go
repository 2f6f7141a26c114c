package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/proposalforge/proposalforge/internal/config"
	"github.com/proposalforge/proposalforge/internal/generation"
	"github.com/proposalforge/proposalforge/internal/platform/gemini"
	"github.com/proposalforge/proposalforge/internal/platform/huggingface"
	"github.com/proposalforge/proposalforge/internal/platform/openai"
	"github.com/proposalforge/proposalforge/internal/retry"
	"github.com/proposalforge/proposalforge/internal/service"
)

// application holds the shared application dependencies to simplify
// management and wiring.
type application struct {
	config *config.Config
	logger *slog.Logger

	generator       generation.Generator
	imageGenerator  generation.ImageGenerator
	proposalService *service.ProposalService
}

// newApplication creates a new application instance with all dependencies
// initialized.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
	}

	var err error
	app.generator, err = newTextGenerator(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize text generator: %w", err)
	}
	logger.Info("text generator initialized", "provider", cfg.LLM.Provider, "model", cfg.LLM.Model)

	app.imageGenerator, err = huggingface.NewClient(
		logger.With("component", "image_generator"),
		cfg.Image,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize image generator: %w", err)
	}
	logger.Info("image generator initialized", "model", cfg.Image.Model, "output_dir", cfg.Image.OutputDir)

	policy := retry.Policy{
		MaxAttempts: cfg.Retry.MaxAttempts,
		Floor:       time.Duration(cfg.Retry.FloorSeconds) * time.Second,
		Cap:         time.Duration(cfg.Retry.CapSeconds) * time.Second,
	}

	app.proposalService, err = service.NewProposalService(
		app.generator,
		app.imageGenerator,
		policy,
		logger.With("component", "proposal_service"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create proposal service: %w", err)
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// newTextGenerator selects the text backend from configuration.
func newTextGenerator(ctx context.Context, cfg *config.Config, logger *slog.Logger) (generation.Generator, error) {
	componentLogger := logger.With("component", "text_generator")

	switch cfg.LLM.Provider {
	case "openai":
		return openai.NewGenerator(componentLogger, cfg.LLM)
	case "gemini":
		return gemini.NewGenerator(ctx, componentLogger, cfg.LLM)
	default:
		return nil, fmt.Errorf("unsupported llm provider %q", cfg.LLM.Provider)
	}
}

// Run starts the application server, handling lifecycle and cleanup.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
