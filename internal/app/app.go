package app

import (
	"context"
	"net/http"

	"github.com/majidyz63/ai-extractor/internal/config"
	"github.com/majidyz63/ai-extractor/internal/database"
	"github.com/majidyz63/ai-extractor/internal/handlers"
	"github.com/majidyz63/ai-extractor/internal/httpclient"
	"github.com/majidyz63/ai-extractor/internal/logger"
	"github.com/majidyz63/ai-extractor/internal/prompt"
	"github.com/majidyz63/ai-extractor/internal/registry"
	"github.com/majidyz63/ai-extractor/internal/router"
	"github.com/majidyz63/ai-extractor/internal/upstream"
)

// Version is overridden at build time with -ldflags "-X .../internal/app.Version=..."
var Version = "dev"

// App centralizes the application's dependencies and configuration
type App struct {
	Config      *config.Config
	Registry    *registry.Store
	Upstream    *upstream.Client
	Prompts     *prompt.Engine
	Audit       *database.AuditLogger
	APIHandlers *handlers.APIHandlers
}

// NewApp creates a new App instance with all dependencies
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	ctx = logger.WithComponent(ctx, logger.ComponentNames.App)

	if err := config.Validate(cfg); err != nil {
		return nil, err
	}

	store := registry.NewStore(cfg.Registry.ModelsFile)
	if active, err := store.Active(); err != nil {
		// The file may be fixed while running; requests report the error
		logger.Warn(ctx, "Model registry could not be read",
			"models_file", store.Path(),
			"error", err.Error(),
		)
	} else {
		logger.Info(ctx, "Model registry loaded",
			"models_file", store.Path(),
			"active_models", len(active),
		)
	}

	httpClient := httpclient.NewFactory(httpclient.Options{
		UserAgent: httpclient.DefaultUserAgent,
	}).CreateClient(httpclient.Options{Timeout: cfg.Upstream.Timeout})

	client := upstream.NewClient(upstream.Options{
		BaseURL: cfg.Upstream.BaseURL,
		APIKey:  cfg.Upstream.APIKey,
		Timeout: cfg.Upstream.Timeout,
		Referer: cfg.Upstream.Referer,
		Title:   cfg.Upstream.Title,
	}, httpClient)
	if !client.Configured() {
		logger.Warn(ctx, "No OPENROUTER_API_KEY set; completions will fail until one is configured",
			"upstream_endpoint", client.Endpoint(),
		)
	}

	prompts := prompt.NewEngine(cfg.Prompts.Dir)
	if types, err := prompts.List(); err != nil {
		logger.Warn(ctx, "Prompt templates could not be listed", "prompts_dir", cfg.Prompts.Dir, "error", err.Error())
	} else {
		logger.Info(ctx, "Prompt templates available", "prompts_dir", cfg.Prompts.Dir, "prompt_types", types)
	}

	audit := database.NewDisabledAuditLogger()
	if cfg.Database.Enabled() {
		dbConfig := database.NewDatabaseConfig(cfg.Database.URI, cfg.Environment, cfg.ServiceName, cfg.Database.Timeout)
		logger.Info(ctx, "Connecting to MongoDB", "database", dbConfig.DatabaseName, "uri", dbConfig.MaskSensitiveData().URI)
		audit = database.NewAuditLogger(ctx, dbConfig)
	}

	apiHandlers := handlers.NewAPIHandlers(store, client, prompts, audit, handlers.Options{
		DefaultPromptType: cfg.Prompts.DefaultType,
		DefaultLang:       cfg.Prompts.DefaultLang,
		Version:           Version,
		Environment:       cfg.Environment,
	})

	return &App{
		Config:      cfg,
		Registry:    store,
		Upstream:    client,
		Prompts:     prompts,
		Audit:       audit,
		APIHandlers: apiHandlers,
	}, nil
}

// SetupRoutes returns the fully wrapped HTTP handler
func (a *App) SetupRoutes() http.Handler {
	return router.SetupRoutes(a.APIHandlers, router.Options{EnablePprof: a.Config.Server.EnablePprof})
}

// Close flushes pending audit writes and disconnects from MongoDB
func (a *App) Close(ctx context.Context) error {
	return a.Audit.Close(ctx)
}
