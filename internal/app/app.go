// Package app wires configuration, services, and the HTTP transport
// into a runnable explorer server.
package app

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"cordscope/internal/config"
	"cordscope/internal/errors"
	"cordscope/internal/infrastructure"
	custommw "cordscope/internal/middleware"
	"cordscope/internal/services"
	handlers "cordscope/internal/transport/http"
)

const (
	// Version is the application version reported by the health endpoint.
	Version = "1.0.0"
	// AppName identifies the server in startup logs.
	AppName = "cordscope explorer"
)

// Application is the explorer server container.
type Application struct {
	Config          *config.Config
	Router          *chi.Mux
	Server          *http.Server
	ExplorerService *services.ExplorerService
	HealthService   *services.HealthService
	Logger          *slog.Logger
	FrontendFS      fs.FS
}

// New creates the application with its full dependency graph. The
// frontend filesystem must contain index.html at its root.
func New(frontendFS fs.FS) (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Info("application starting",
		slog.String("name", AppName),
		slog.String("version", Version),
		slog.String("metadata_csv", cfg.Paths.MetadataCSV))

	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to ensure directories: %w", err)
	}

	app := &Application{
		Config:     cfg,
		Logger:     logger,
		FrontendFS: frontendFS,
	}

	app.ExplorerService = services.NewExplorerService(cfg, logger)
	app.HealthService = services.NewHealthService(Version, app.ExplorerService, logger)

	app.setupRouter()
	app.createServer()

	return app, nil
}

// setupRouter configures the HTTP router with all routes.
func (a *Application) setupRouter() {
	r := chi.NewRouter()

	r.Use(custommw.RequestID)
	r.Use(custommw.RealIP)

	// Metrics endpoint stays outside the middleware group so scrapes
	// are not logged or rate limited.
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(custommw.StructuredLogger(a.Logger))
		r.Use(custommw.Recoverer(a.Logger))
		r.Use(custommw.SecurityHeaders)

		if a.Config.Security.EnableCORS {
			r.Use(custommw.CORS(custommw.CORSConfig{
				AllowedOrigins: a.Config.Security.AllowedOrigins,
				AllowedMethods: []string{"GET", "OPTIONS"},
				AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
			}))
		}

		if a.Config.Security.RateLimit.Enabled {
			r.Use(custommw.NewRateLimiter(
				a.Config.Security.RateLimit.RPS,
				a.Config.Security.RateLimit.Burst,
				a.Logger,
			).Handler)
		}

		r.Use(custommw.Metrics)

		errorHandler := errors.NewErrorHandler(a.Logger)

		r.Route("/api", func(r chi.Router) {
			r.Mount("/", handlers.NewExplorerHandler(a.ExplorerService, a.Logger, errorHandler).Routes())
			r.Mount("/health", handlers.NewHealthHandler(a.HealthService, a.Logger).Routes())
		})

		if a.FrontendFS != nil {
			r.Mount("/", handlers.NewWebHandler(a.FrontendFS, a.Logger).Routes())
		}
	})

	a.Router = r
}

// createServer builds the HTTP server from configuration.
func (a *Application) createServer() {
	a.Server = &http.Server{
		Addr:           fmt.Sprintf(":%d", a.Config.Server.Port),
		Handler:        a.Router,
		ReadTimeout:    a.Config.Server.ReadTimeout,
		WriteTimeout:   a.Config.Server.WriteTimeout,
		IdleTimeout:    a.Config.Server.IdleTimeout,
		MaxHeaderBytes: a.Config.Server.MaxHeaderBytes,
	}
}

// Start starts the HTTP server and warms the dataset cache.
func (a *Application) Start(ctx context.Context, cancel context.CancelFunc) error {
	a.Logger.InfoContext(ctx, "starting server",
		slog.Int("port", a.Config.Server.Port),
		slog.String("level", a.Config.Logging.Level))

	go func() {
		if err := a.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.Logger.ErrorContext(ctx, "server error", slog.String("error", err.Error()))
			cancel()
		}
	}()

	// Warm the cache so the first dashboard request does not pay the
	// CSV parse. A missing file is reported but not fatal; the health
	// endpoint surfaces it as degraded.
	go func() {
		if _, err := a.ExplorerService.Cleaned(ctx); err != nil {
			a.Logger.WarnContext(ctx, "dataset not available at startup",
				slog.String("path", a.Config.Paths.MetadataCSV),
				slog.String("error", err.Error()))
		}
	}()

	a.Logger.InfoContext(ctx, "server started",
		slog.String("address", fmt.Sprintf("http://localhost:%d", a.Config.Server.Port)))

	return nil
}

// Stop gracefully stops the application.
func (a *Application) Stop(ctx context.Context) error {
	a.Logger.InfoContext(ctx, "shutting down")

	shutdownCtx, cancel := context.WithTimeout(ctx, a.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	if err := infrastructure.CloseLogFile(); err != nil {
		a.Logger.ErrorContext(ctx, "error closing log file", slog.String("error", err.Error()))
	}

	a.Logger.InfoContext(ctx, "shutdown complete")
	return nil
}

// Run runs the application until interrupted.
func (a *Application) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	if err := a.Start(ctx, cancel); err != nil {
		return err
	}

	select {
	case sig := <-sigChan:
		a.Logger.InfoContext(ctx, "received signal", slog.String("signal", sig.String()))
	case <-ctx.Done():
	}

	return a.Stop(context.Background())
}
