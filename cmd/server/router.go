package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/storyforge-api/internal/api"
	apiMiddleware "github.com/phrazzld/storyforge-api/internal/api/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// setupRouter creates the public router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware(app.logger))
	r.Use(apiMiddleware.Metrics(app.metrics))
	r.Use(apiMiddleware.CORS)

	generationHandler := api.NewGenerationHandler(app.generator, app.credentials, app.config.LLM.GeminiAPIKey)
	exportHandler := api.NewExportHandler()

	// UI documents
	r.Get("/", app.ui.Index)
	r.Get("/index.html", app.ui.Index)
	r.Get("/settings", app.ui.Settings)

	r.Route("/api", func(r chi.Router) {
		r.Post("/generate", generationHandler.Generate)
		r.Post("/generate-chapter", generationHandler.GenerateChapter)
		r.Post("/test-key", generationHandler.TestKey)
		r.Post("/export-rtf", exportHandler.ExportRTF)
		r.Post("/export-chapter-rtf", exportHandler.ExportChapterRTF)
	})

	// Unknown paths and unsupported methods look the same to clients.
	r.NotFound(notFound)
	r.MethodNotAllowed(notFound)

	return r
}

// setupAdminRouter creates the router of the admin listener.
func (app *application) setupAdminRouter() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(app.registry, promhttp.HandlerOpts{
		Registry: app.registry,
	}))
	return r
}

func notFound(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	_, _ = w.Write([]byte("Not Found"))
}
