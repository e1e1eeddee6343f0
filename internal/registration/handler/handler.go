// Package handler exposes the registration intake endpoint.
package handler

import (
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"shulchan/internal/registration/models"
	"shulchan/internal/registration/service"

	dErrors "shulchan/pkg/errors"
	"shulchan/pkg/httputil"
)

type registerResponse struct {
	Success        bool   `json:"success"`
	Message        string `json:"message"`
	ID             string `json:"id"`
	AccountCreated bool   `json:"accountCreated"`
}

type Handler struct {
	service *service.Service
	logger  *slog.Logger
}

func New(svc *service.Service, logger *slog.Logger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// Register registers the intake routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/api/register", h.handleRegister)
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req models.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "Invalid request body"))
		return
	}

	result, err := h.service.Register(ctx, req, clientIP(r))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, registerResponse{
		Success:        true,
		Message:        "Registration successful",
		ID:             result.ID,
		AccountCreated: result.AccountCreated,
	})
}

// clientIP resolves the caller's network identity for rate limiting. The
// service sits behind a proxy in production, so forwarded headers win over
// the socket address.
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if first, _, found := strings.Cut(fwd, ","); found {
			return strings.TrimSpace(first)
		}
		return strings.TrimSpace(fwd)
	}
	if real := r.Header.Get("X-Real-IP"); real != "" {
		return strings.TrimSpace(real)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
