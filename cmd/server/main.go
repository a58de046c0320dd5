package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/majidyz63/ai-extractor/internal/app"
	"github.com/majidyz63/ai-extractor/internal/config"
	"github.com/majidyz63/ai-extractor/internal/logger"
)

func main() {
	configDir := flag.String("config", "", "directory containing config.yaml (default: . and ./config)")
	printExample := flag.Bool("config-example", false, "print an example config.yaml and exit")
	flag.Parse()

	if *printExample {
		fmt.Print(config.GetConfigExample())
		return
	}

	var paths []string
	if *configDir != "" {
		paths = append(paths, *configDir)
	}

	if err := config.LoadEnvFile(); err != nil {
		// Can't use logger here as it has not been initialized
		_, _ = os.Stderr.WriteString("FATAL: Failed to load .env file: " + err.Error() + "\n")
		os.Exit(1)
	}

	loader := config.NewLoader()
	cfg, err := loader.LoadConfig(paths...)
	if err != nil {
		_, _ = os.Stderr.WriteString("FATAL: Failed to load configuration: " + err.Error() + "\n")
		os.Exit(1)
	}

	if err := logger.Init(logger.Config{
		Level:       logger.ParseLevel(cfg.Logging.Level),
		Format:      cfg.Logging.Format,
		Output:      cfg.Logging.Output,
		ServiceName: cfg.ServiceName,
		Environment: cfg.Environment,
		MaxSizeMB:   cfg.Logging.MaxSizeMB,
		MaxBackups:  cfg.Logging.MaxBackups,
		MaxAgeDays:  cfg.Logging.MaxAgeDays,
		Compress:    cfg.Logging.Compress,
	}); err != nil {
		_, _ = os.Stderr.WriteString("FATAL: Failed to initialize logger: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx := logger.WithComponent(context.Background(), logger.ComponentNames.App)

	configFile := loader.ConfigFileUsed()
	if configFile == "" {
		configFile = "none (defaults and environment)"
	}
	logger.Info(logger.WithStage(ctx, logger.LogStages.Configuration), "Configuration loaded",
		"config_file", configFile,
		"environment", cfg.Environment,
		"log_level", cfg.Logging.Level,
	)

	code := run(ctx, cfg)
	_ = logger.Close()
	os.Exit(code)
}

func run(ctx context.Context, cfg *config.Config) int {
	initCtx := logger.WithStage(ctx, logger.LogStages.Initialization)

	application, err := app.NewApp(initCtx, cfg)
	if err != nil {
		logger.Error(initCtx, "Failed to initialize application", err)
		return 1
	}

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      application.SetupRoutes(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info(initCtx, "Server starting",
			"address", srv.Addr,
			"version", app.Version,
			"swagger_url", "/swagger/index.html",
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	signalCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	exitCode := 0
	select {
	case err := <-serverErr:
		if err != nil {
			logger.Error(initCtx, "Server failed", err)
			exitCode = 1
		}
	case <-signalCtx.Done():
	}

	shutdownCtx := logger.WithStage(ctx, logger.LogStages.Shutdown)
	logger.Info(shutdownCtx, "Shutting down server", "timeout", cfg.Server.ShutdownTimeout.String())

	timeoutCtx, cancel := context.WithTimeout(shutdownCtx, cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(timeoutCtx); err != nil {
		logger.Error(shutdownCtx, "Server shutdown did not complete cleanly", err)
		exitCode = 1
	}
	if err := application.Close(timeoutCtx); err != nil {
		logger.Error(shutdownCtx, "Failed to close audit log", err)
	}

	logger.Info(shutdownCtx, "Server stopped")
	return exitCode
}
