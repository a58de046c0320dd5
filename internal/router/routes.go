package router

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/majidyz63/ai-extractor/docs"
	"github.com/majidyz63/ai-extractor/internal/handlers"
	"github.com/majidyz63/ai-extractor/internal/middleware"
	"github.com/majidyz63/ai-extractor/internal/monitoring"
)

// Options toggles optional route groups
type Options struct {
	EnablePprof bool
}

// SetupRoutes configures all routes for the application
func SetupRoutes(apiHandlers *handlers.APIHandlers, opts Options) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", apiHandlers.HealthHandler)

	// Relay
	mux.HandleFunc("POST /api/extract", apiHandlers.ExtractHandler)
	mux.HandleFunc("POST /api/complete", apiHandlers.CompleteHandler)

	// Model registry
	mux.HandleFunc("GET /api/active-models", apiHandlers.ActiveModelsHandler)
	mux.HandleFunc("GET /api/models", apiHandlers.ListModelsHandler)
	mux.HandleFunc("POST /api/models", apiHandlers.AddModelHandler)
	mux.HandleFunc("POST /add", apiHandlers.AddModelHandler)
	mux.HandleFunc("GET /toggle", apiHandlers.ToggleModelHandler)
	mux.HandleFunc("POST /toggle", apiHandlers.ToggleModelHandler)
	mux.HandleFunc("GET /delete", apiHandlers.DeleteModelHandler)
	mux.HandleFunc("POST /delete", apiHandlers.DeleteModelHandler)

	mux.HandleFunc("GET /api/prompts", apiHandlers.PromptTypesHandler)
	mux.HandleFunc("GET /api/prompts/{type}", apiHandlers.PromptTemplateHandler)

	mux.HandleFunc("GET /api/extractions", apiHandlers.ExtractionsHandler)
	mux.HandleFunc("GET /api/extractions/{request_id}", apiHandlers.ExtractionHandler)

	mux.Handle("GET /metrics", monitoring.MetricsHandler())

	if opts.EnablePprof {
		monitoring.SetupPprofRoutes(mux)
	}

	// Serve Swagger UI with proper configuration
	mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"), // The URL pointing to API definition
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("none"),
		httpSwagger.DomID("swagger-ui"),
	))

	// Metrics must sit directly on the mux to see the matched pattern
	return middleware.RequestCorrelationMiddleware(monitoring.MetricsMiddleware(mux))
}
