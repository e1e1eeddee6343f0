// Package httputil centralizes JSON response writing so every handler emits
// the same envelopes.
package httputil

import (
	"encoding/json"
	"net/http"

	dErrors "shulchan/pkg/errors"
)

type errorResponse struct {
	Error string `json:"error"`
}

// WriteJSON writes v with the given status. Encoding failures are swallowed;
// by then the status line is already on the wire.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError translates a domain error into the `{error: message}` envelope.
// Only the domain message crosses the wire; wrapped causes stay server-side.
func WriteError(w http.ResponseWriter, err error) {
	msg := dErrors.MessageOf(err)
	if msg == "" {
		msg = "An unexpected error occurred"
	}
	WriteJSON(w, dErrors.ToHTTPStatus(dErrors.CodeOf(err)), errorResponse{Error: msg})
}
