// Package app wires configuration, observability, services and the HTTP
// router into a runnable application.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"

	"adpulse/internal/config"
	apperrors "adpulse/internal/errors"
	"adpulse/internal/infrastructure"
	custommw "adpulse/internal/middleware"
	"adpulse/internal/services"
	httptransport "adpulse/internal/transport/http"
	"adpulse/internal/validation"
)

// Application holds the assembled service.
type Application struct {
	cfg       *config.Config
	logger    *slog.Logger
	providers *infrastructure.OTelProviders
	router    chi.Router
	server    *http.Server
}

// NewApplication loads configuration and assembles the full application.
func NewApplication() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	otelCfg := infrastructure.DefaultOTelConfig()
	otelCfg.EnableTracing = cfg.Logging.Development
	providers, err := infrastructure.InitializeOTel(otelCfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize observability: %w", err)
	}

	app := &Application{
		cfg:       cfg,
		logger:    logger,
		providers: providers,
	}

	if err := app.setupRouter(); err != nil {
		return nil, err
	}

	app.server = &http.Server{
		Addr:           fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:        app.router,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
	}

	return app, nil
}

// setupRouter builds the middleware chain and mounts the route tree.
func (a *Application) setupRouter() error {
	r := chi.NewRouter()

	// Order matters: request identity first, then logging, then recovery,
	// then policy.
	r.Use(custommw.RequestID)
	r.Use(custommw.RealIP)
	r.Use(custommw.StructuredLogger(a.logger))
	r.Use(custommw.Recoverer(a.logger))
	r.Use(custommw.SecurityHeaders)

	if a.cfg.Security.EnableCORS {
		r.Use(custommw.CORS(custommw.CORSConfig{
			AllowedOrigins: a.cfg.Security.AllowedOrigins,
			Logger:         a.logger,
		}))
	}

	if a.cfg.Security.RateLimit.Enabled {
		limiter := custommw.NewRateLimiter(a.cfg.Security.RateLimit.RPS, a.cfg.Security.RateLimit.Burst, a.logger)
		r.Use(limiter.Handler)
	}

	r.Use(custommw.Compress(5))

	var metrics *infrastructure.BusinessMetrics
	if a.providers.Meter != nil {
		otelMW, err := custommw.NewOTelMiddleware(a.providers)
		if err != nil {
			return fmt.Errorf("failed to create otel middleware: %w", err)
		}
		r.Use(otelMW.Handler)
		metrics = otelMW.Metrics()
	}

	errorHandler := apperrors.NewErrorHandler(a.logger, a.cfg.Logging.Development)
	r.NotFound(errorHandler.NotFound)
	r.MethodNotAllowed(errorHandler.MethodNotAllowed)

	analyticsService := services.NewAnalyticsService(a.logger, metrics)
	uploadValidator := validation.NewUploadValidator(a.cfg.Upload.MaxSizeBytes, a.logger)

	analyticsHandler := httptransport.NewAnalyticsHandler(analyticsService, uploadValidator, a.logger, errorHandler)
	healthHandler := httptransport.NewHealthHandler(a.logger)

	r.Route("/api", func(api chi.Router) {
		api.Use(custommw.Timeout(a.cfg.Server.RequestTimeout, a.logger))
		api.Mount("/health", healthHandler.Routes())
		api.Mount("/analytics", analyticsHandler.Routes())
	})

	if a.providers.PrometheusHTTP != nil {
		r.Handle("/metrics", a.providers.PrometheusHTTP)
	}

	a.router = r
	return nil
}

// Router exposes the route tree, mainly for tests.
func (a *Application) Router() chi.Router {
	return a.router
}

// Run starts the HTTP server and blocks until shutdown.
func (a *Application) Run() error {
	ctx := context.Background()

	errCh := make(chan error, 1)
	go func() {
		a.logger.InfoContext(ctx, "server starting",
			slog.Int("port", a.cfg.Server.Port),
			slog.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case sig := <-quit:
		a.logger.InfoContext(ctx, "shutdown signal received", slog.String("signal", sig.String()))
	}

	return a.Shutdown()
}

// Shutdown drains in-flight requests and releases resources.
func (a *Application) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		a.logger.ErrorContext(ctx, "server shutdown failed", slog.String("error", err.Error()))
		return err
	}

	if a.providers != nil {
		if err := a.providers.Shutdown(ctx); err != nil {
			a.logger.ErrorContext(ctx, "observability shutdown failed", slog.String("error", err.Error()))
		}
	}

	infrastructure.CloseLogFile()
	a.logger.InfoContext(ctx, "server stopped")
	return nil
}
