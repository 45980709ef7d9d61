// Package rest exposes the maintenance operations over HTTP and translates
// engine errors into structured failure responses.
package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/okorolev/shopmaint/internal/maintenance"
	"github.com/okorolev/shopmaint/internal/shopify"
	"github.com/okorolev/shopmaint/pkg/web"
)

// MaintenanceService defines the operations the control surface exposes.
type MaintenanceService interface {
	// RewriteDescriptions rewrites product descriptions; with apply=false it
	// only previews the products that would change.
	RewriteDescriptions(ctx context.Context, apply bool) (*maintenance.DescriptionResult, error)

	// HideOutOfStock moves fully out-of-stock products to draft status.
	HideOutOfStock(ctx context.Context) (*maintenance.HideResult, error)

	// Reprice adjusts every variant price by the given percent.
	Reprice(ctx context.Context, percent float64) (*maintenance.RepriceResult, error)
}

type Handler struct {
	service  MaintenanceService
	secret   string
	validate *validator.Validate
	logger   *slog.Logger
}

// NewHandler creates the maintenance API handler. secret is the shared
// secret authorizing maintenance routes; an empty value makes every
// maintenance request fail with "not configured".
func NewHandler(service MaintenanceService, secret string, logger *slog.Logger) *Handler {
	return &Handler{
		service:  service,
		secret:   secret,
		validate: validator.New(),
		logger:   logger.With("component", "rest"),
	}
}

// RegisterRoutes registers the HTTP routes for the maintenance service.
func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/maintenance", func(r chi.Router) {
		r.Use(web.SecretAuth(h.secret, h.logger))
		r.Post("/descriptions", h.RewriteDescriptions)
		r.Post("/hide-out-of-stock", h.HideOutOfStock)
		r.Post("/reprice", h.Reprice)
	})

	// Webhook deliveries are acknowledged and dropped; order events carry
	// nothing this service acts on.
	r.Post("/webhooks/orders", h.AcknowledgeWebhook)

	r.Get("/healthz", h.HealthCheck)
}

// descriptionsRequest is the optional body of a description rewrite request.
type descriptionsRequest struct {
	Apply bool `json:"apply"`
}

// repriceRequest is the optional body of a reprice request. Percent bounds
// keep a typo like 11000 from multiplying the whole catalog.
type repriceRequest struct {
	Percent float64 `json:"percent" validate:"gte=-100,lte=1000"`
}

// RewriteDescriptions runs the description rewrite operation. Without a body,
// or with {"apply": false}, it returns a preview and issues no writes.
func (h *Handler) RewriteDescriptions(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	var req descriptionsRequest
	if !h.decodeOptionalBody(w, r, mLogger, &req) {
		return
	}

	mLogger.DebugContext(r.Context(), "Received description rewrite request", "apply", req.Apply)
	result, err := h.service.RewriteDescriptions(r.Context(), req.Apply)
	if err != nil {
		h.respondOperationError(w, r, mLogger, "description rewrite", err)
		return
	}

	if result.Applied {
		web.RespondJSON(w, mLogger, http.StatusOK, map[string]int{"updated": result.Updated})
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, map[string]any{
		"preview_count": len(result.Preview),
		"preview":       result.Preview,
	})
}

// HideOutOfStock runs the stock-hide operation.
func (h *Handler) HideOutOfStock(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	mLogger.DebugContext(r.Context(), "Received stock-hide request")
	result, err := h.service.HideOutOfStock(r.Context())
	if err != nil {
		h.respondOperationError(w, r, mLogger, "stock-hide", err)
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, map[string]int{"hidden": result.Hidden})
}

// Reprice runs the reprice operation. Without a body the percent defaults to
// zero, which never issues a write for canonically formatted prices.
func (h *Handler) Reprice(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	var req repriceRequest
	if !h.decodeOptionalBody(w, r, mLogger, &req) {
		return
	}
	if err := h.validate.Struct(req); err != nil {
		mLogger.WarnContext(r.Context(), "Invalid reprice request", "percent", req.Percent, "error", err)
		web.RespondError(w, mLogger, http.StatusBadRequest, "percent must be between -100 and 1000")
		return
	}

	mLogger.DebugContext(r.Context(), "Received reprice request", "percent", req.Percent)
	result, err := h.service.Reprice(r.Context(), req.Percent)
	if err != nil {
		h.respondOperationError(w, r, mLogger, "reprice", err)
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, map[string]int{"changed": result.Changed})
}

// AcknowledgeWebhook accepts webhook deliveries without processing them.
func (h *Handler) AcknowledgeWebhook(w http.ResponseWriter, r *http.Request) {
	h.loggerWithReqID(r).DebugContext(r.Context(), "Webhook acknowledged", "topic", r.Header.Get("X-Shopify-Topic"))
	w.WriteHeader(http.StatusOK)
}

// HealthCheck is a simple health check endpoint.
func (h *Handler) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// decodeOptionalBody decodes a JSON body into dst, treating an empty body as
// the zero value. Returns false after responding when the body is malformed.
func (h *Handler) decodeOptionalBody(w http.ResponseWriter, r *http.Request, mLogger *slog.Logger, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		mLogger.ErrorContext(r.Context(), "Error decoding request body", "error", err)
		web.RespondError(w, mLogger, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

// respondOperationError translates engine errors: missing configuration is a
// distinct 503, a remote API failure is a 502 carrying the failed call's
// detail, anything else is a 500.
func (h *Handler) respondOperationError(w http.ResponseWriter, r *http.Request, mLogger *slog.Logger, operation string, err error) {
	if errors.Is(err, maintenance.ErrNotConfigured) {
		mLogger.WarnContext(r.Context(), "Operation rejected: service not configured", "operation", operation)
		web.RespondError(w, mLogger, http.StatusServiceUnavailable, maintenance.ErrNotConfigured.Error())
		return
	}
	var apiErr *shopify.APIError
	if errors.As(err, &apiErr) {
		mLogger.ErrorContext(r.Context(), "Operation failed against the remote API",
			"operation", operation, "status", apiErr.StatusCode, "path", apiErr.Path)
		web.RespondError(w, mLogger, http.StatusBadGateway, err.Error())
		return
	}
	mLogger.ErrorContext(r.Context(), "Operation failed", "operation", operation, "error", err)
	web.RespondError(w, mLogger, http.StatusInternalServerError, err.Error())
}

// loggerWithReqID creates a logger with the request ID from the context.
func (h *Handler) loggerWithReqID(r *http.Request) *slog.Logger {
	reqID := middleware.GetReqID(r.Context())
	return h.logger.With("request_id", reqID)
}
