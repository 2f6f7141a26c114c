// Package main implements the entry point for the proposal generator
// server, which drafts proposal text with a hosted chat-completion model
// and an accompanying image with a hosted text-to-image model.
package main

import (
	"context"
	"log"
	"os"

	"github.com/proposalforge/proposalforge/internal/config"
	"github.com/proposalforge/proposalforge/internal/platform/logger"
)

func main() {
	ctx := context.Background()

	// Missing required secrets surface here and halt startup entirely.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		log.Fatalf("Failed to set up logger: %v", err)
	}

	appLogger.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"llm_provider", cfg.LLM.Provider,
		"image_model", cfg.Image.Model)

	app, err := newApplication(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Error("Failed to initialize application", "error", err)
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil {
		appLogger.Error("Server error", "error", err)
		os.Exit(1)
	}
}
