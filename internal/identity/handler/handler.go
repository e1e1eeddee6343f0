// Package handler exposes login for registrants who created an account.
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"shulchan/internal/identity"
	"shulchan/pkg/sentinel"

	dErrors "shulchan/pkg/errors"
	"shulchan/pkg/httputil"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token  string `json:"token"`
	UserID string `json:"user_id"`
}

type Handler struct {
	provider identity.Provider
	tokens   *identity.TokenIssuer
	logger   *slog.Logger
}

func New(provider identity.Provider, tokens *identity.TokenIssuer, logger *slog.Logger) *Handler {
	return &Handler{provider: provider, tokens: tokens, logger: logger}
}

// Register registers the auth routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/auth/login", h.handleLogin)
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	if req.Email == "" || req.Password == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "email and password are required"))
		return
	}

	cred, err := h.provider.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "invalid email or password"))
			return
		}
		h.logger.ErrorContext(ctx, "login failed", "error", err.Error())
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeProvider, "failed to authenticate"))
		return
	}

	token, err := h.tokens.Issue(cred)
	if err != nil {
		h.logger.ErrorContext(ctx, "token issue failed", "error", err.Error())
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "failed to issue token"))
		return
	}

	httputil.WriteJSON(w, http.StatusOK, loginResponse{Token: token, UserID: cred.ID})
}
