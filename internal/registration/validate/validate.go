// Package validate holds the ordered request rules. Rules short-circuit on
// the first failure and each maps to one user-actionable message; nothing here
// touches a store, so a rejected request has no side effects.
package validate

import (
	"regexp"
	"strings"

	"shulchan/internal/registration/models"
	dErrors "shulchan/pkg/errors"
)

var (
	emailPattern = regexp.MustCompile(`(?i)^[A-Z0-9._%+-]+@[A-Z0-9.-]+\.[A-Z]{2,}$`)
	phonePattern = regexp.MustCompile(`^[0-9\-\+\s\(\)]+$`)
)

const (
	minPasswordLength = 6
	minPhoneLength    = 9
	maxPhoneLength    = 20
)

// Request applies the rules in order and returns the first failure as a
// bad-request domain error.
func Request(req models.Request) error {
	if strings.TrimSpace(req.FirstName) == "" {
		return dErrors.New(dErrors.CodeBadRequest, "First name is required")
	}
	if strings.TrimSpace(req.LastName) == "" {
		return dErrors.New(dErrors.CodeBadRequest, "Last name is required")
	}
	if !req.Origin.IsValid() {
		return dErrors.New(dErrors.CodeBadRequest, "Invalid origin selection")
	}
	if !req.Gender.IsValid() {
		return dErrors.New(dErrors.CodeBadRequest, "Invalid gender selection")
	}
	if req.Email != "" && !emailPattern.MatchString(req.Email) {
		return dErrors.New(dErrors.CodeBadRequest, "Invalid email format")
	}
	if req.Phone != "" && !validPhone(req.Phone) {
		return dErrors.New(dErrors.CodeBadRequest, "Invalid phone format")
	}
	if req.CreateAccount {
		if req.Email == "" {
			return dErrors.New(dErrors.CodeBadRequest, "Email is required for account creation")
		}
		if len(req.Password) < minPasswordLength {
			return dErrors.New(dErrors.CodeBadRequest, "Password must be at least 6 characters")
		}
	}
	return nil
}

func validPhone(phone string) bool {
	return phonePattern.MatchString(phone) &&
		len(phone) >= minPhoneLength &&
		len(phone) <= maxPhoneLength
}
