package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	internalhttp "sorting-analytics/internal/http"
	"sorting-analytics/internal/ingestors"
	"sorting-analytics/internal/queries"
	"sorting-analytics/internal/shared/configs"
	"sorting-analytics/internal/shared/filestorages"
	"sorting-analytics/internal/shared/loggers"
	"sorting-analytics/internal/snapshots"
	"sorting-analytics/internal/stores"
)

// App holds all application dependencies and manages lifecycle.
type App struct {
	config    *configs.Config
	appLogger loggers.Logger
	server    *http.Server
	store     stores.TelemetryStore
}

// New creates and initializes a new App instance. The store and the snapshot
// directory are opened and probed here so a missing or read-only data
// location fails startup instead of the first request.
func New(config *configs.Config) (*App, error) {
	appLogger, err := loggers.New(config.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	appLogger = appLogger.With().
		Str(loggers.FieldApp, "sorting-analytics").
		Logger()

	// Initialize telemetry store (idempotent schema init)
	storeLogger := appLogger.With().Str(loggers.FieldComponent, "store").Logger()
	store, err := stores.NewTelemetryStore(
		config.Storage.Path,
		time.Duration(config.Storage.BusyTimeoutSeconds)*time.Second,
		storeLogger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize telemetry store: %w", err)
	}

	// Initialize snapshot artifact storage (writability probed eagerly)
	fileStorage, err := filestorages.NewFileStorage(config.Snapshots.RootDir)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to initialize snapshot storage: %w", err)
	}

	// Initialize ingest pipeline
	materializer := snapshots.NewSnapshotMaterializer(
		store,
		fileStorage,
		config.Snapshots.RecentEventsLimit,
		config.Snapshots.DailySeriesLimit,
	)
	validator := ingestors.NewBatchValidator(config.Ingest.APIKey, config.Ingest.MaxBatchBytes)
	processor := ingestors.NewBatchProcessor(store, materializer)

	// Initialize query service
	queryService := queries.NewQueryService(store)

	// Initialize http router
	httpLogger := appLogger.With().Str(loggers.FieldComponent, "http").Logger()
	router := internalhttp.NewRouter(validator, processor, queryService, store, httpLogger)

	// Create HTTP server
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", config.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: time.Duration(config.Server.ReadHeaderTimeout) * time.Second,
		ReadTimeout:       time.Duration(config.Server.ReadTimeout) * time.Second,
		WriteTimeout:      time.Duration(config.Server.WriteTimeout) * time.Second,
		IdleTimeout:       time.Duration(config.Server.IdleTimeout) * time.Second,
	}

	return &App{
		config:    config,
		appLogger: appLogger,
		server:    server,
		store:     store,
	}, nil
}

// Start starts the HTTP server in a blocking manner.
func (app *App) Start() error {
	app.appLogger.Info().
		Msgf("Starting sorting-analytics service on port %d (log_level=%s, storage_path=%s, snapshot_dir=%s)",
			app.config.Server.Port,
			app.config.Log.Level,
			app.config.Storage.Path,
			app.config.Snapshots.RootDir)

	return app.server.ListenAndServe()
}

// Shutdown gracefully shuts down the application.
func (app *App) Shutdown(ctx context.Context) error {
	app.appLogger.Info().Msg("Shutting down server...")
	if err := app.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	app.appLogger.Info().Msg("Server stopped")

	if err := app.store.Close(); err != nil {
		return fmt.Errorf("store close failed: %w", err)
	}
	app.appLogger.Info().Msg("Telemetry store closed")

	return nil
}
