// Package handler exposes the address search proxy endpoint.
package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"shulchan/internal/geocode"
	"shulchan/internal/platform/metrics"
	"shulchan/pkg/httputil"
)

type Handler struct {
	client  *geocode.Client
	logger  *slog.Logger
	metrics *metrics.Metrics
}

type Option func(*Handler)

func WithMetrics(m *metrics.Metrics) Option {
	return func(h *Handler) { h.metrics = m }
}

func New(client *geocode.Client, logger *slog.Logger, opts ...Option) *Handler {
	h := &Handler{client: client, logger: logger}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Register registers the geocode routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/api/geocode", h.handleSearch)
}

func (h *Handler) handleSearch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	places, err := h.client.Search(ctx, r.URL.Query().Get("q"))
	if err != nil {
		h.logger.ErrorContext(ctx, "address search failed", "error", err.Error())
		httputil.WriteError(w, err)
		return
	}

	if h.metrics != nil {
		h.metrics.IncrementGeocodeLookups()
	}
	httputil.WriteJSON(w, http.StatusOK, places)
}
