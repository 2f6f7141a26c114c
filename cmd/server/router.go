package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/proposalforge/proposalforge/internal/api"
	apiMiddleware "github.com/proposalforge/proposalforge/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	pageHandler := api.NewPageHandler(app.proposalService, app.logger)
	proposalHandler := api.NewProposalHandler(app.proposalService, app.logger)

	// HTML form flow
	r.Get("/", pageHandler.ShowForm)
	r.Post("/", pageHandler.SubmitForm)

	// JSON API
	r.Post("/api/proposals", proposalHandler.GenerateProposal)

	// Generated images. The directory is created at startup by the image
	// client on first write; serving an absent directory is harmless.
	imageServer := http.FileServer(http.Dir(app.config.Image.OutputDir))
	r.Handle("/static/images/*", http.StripPrefix("/static/images/", imageServer))

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
