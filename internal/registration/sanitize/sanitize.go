// Package sanitize normalizes validated text before persistence: whitespace
// trimmed, angle brackets stripped against naive HTML injection, lengths
// capped. Applied after validation, before any store sees the data.
package sanitize

import (
	"strings"

	"shulchan/internal/registration/models"
)

const (
	// MaxNameLength caps name fields.
	MaxNameLength = 100
	// MaxTextLength caps address and other free-text fields.
	MaxTextLength = 500
)

// String trims, strips '<' and '>', caps at max runes, and trims again so the
// cap cannot expose trailing whitespace. Idempotent by construction.
func String(s string, max int) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "<", "")
	s = strings.ReplaceAll(s, ">", "")
	if runes := []rune(s); len(runes) > max {
		s = string(runes[:max])
	}
	return strings.TrimSpace(s)
}

// Apply derives the persistable registration from a validated request. The
// password is deliberately untouched; it goes to the credential provider
// verbatim and is never stored here.
func Apply(req models.Request) models.Registration {
	return models.Registration{
		FirstName: String(req.FirstName, MaxNameLength),
		LastName:  String(req.LastName, MaxNameLength),
		BirthDate: strings.TrimSpace(req.BirthDate),
		Address:   String(req.Address, MaxTextLength),
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:     strings.TrimSpace(req.Phone),
		Origin:    req.Origin,
		Gender:    req.Gender,
		Status:    models.StatusPending,
	}
}
