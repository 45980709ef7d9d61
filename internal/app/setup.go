// Package app contains the application setup for the maintenance service.
package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/okorolev/shopmaint/internal/config"
	"github.com/okorolev/shopmaint/internal/maintenance"
	"github.com/okorolev/shopmaint/internal/shopify"
	"github.com/okorolev/shopmaint/internal/transport/rest"
	"github.com/okorolev/shopmaint/pkg/messaging"
	"github.com/okorolev/shopmaint/pkg/server"
)

type Dependencies struct {
	Maintenance rest.MaintenanceService
	Secret      string
	Logger      *slog.Logger
}

// SetupDependencies wires the engine. When the remote API credentials are
// absent the engine gets no catalog client and reports "not configured" on
// every run instead of failing at startup: the service still serves health
// checks and webhook acknowledgments.
func SetupDependencies(cfg *config.Config, events messaging.Publisher, logger *slog.Logger) *Dependencies {
	var catalog maintenance.CatalogClient
	if cfg.Shopify.Configured() {
		catalog = shopify.NewClient(cfg.Shopify, cfg.CircuitBreaker)
	} else {
		logger.Warn("Shopify credentials are absent; maintenance runs will be rejected as not configured")
	}

	svc := maintenance.NewService(catalog, events, maintenance.Config{
		PageSize:         cfg.Runner.PageSize,
		WriteConcurrency: cfg.Runner.WriteConcurrency,
		FallbackVendor:   cfg.Runner.FallbackVendor,
	}, logger)

	return &Dependencies{
		Maintenance: svc,
		Secret:      cfg.Shopify.SharedSecret,
		Logger:      logger,
	}
}

// SetupHttpHandler initializes the HTTP routes for the maintenance service.
// Used by E2E tests to set up the handler without a listening server.
func SetupHttpHandler(deps *Dependencies) http.Handler {
	mux := server.NewChiRouter(deps.Logger)
	wireRoutes(mux, deps)
	return mux
}

// wireRoutes sets up the HTTP routes for the maintenance service.
func wireRoutes(mux *chi.Mux, deps *Dependencies) {
	handler := rest.NewHandler(deps.Maintenance, deps.Secret, deps.Logger)
	handler.RegisterRoutes(mux)
}

// SetupHttpServer creates and configures an HTTP server for the maintenance service.
func SetupHttpServer(deps *Dependencies, cfg *config.Config) *http.Server {
	mux := SetupHttpHandler(deps)

	httpCfg := server.HTTPConfig{
		Port:           cfg.HTTPServer.Port,
		MaxHeaderBytes: cfg.HTTPServer.MaxHeaderBytes,
		ReadTimeout:    cfg.HTTPServer.Timeout.Read,
		WriteTimeout:   cfg.HTTPServer.Timeout.Write,
		IdleTimeout:    cfg.HTTPServer.Timeout.Idle,
		ReadHeader:     cfg.HTTPServer.Timeout.ReadHeader,
	}

	return server.NewHTTPServer(httpCfg, mux)
}
