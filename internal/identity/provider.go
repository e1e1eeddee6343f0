// Package identity owns credential accounts: provisioning during
// registration, the compensating delete, and password verification for login.
package identity

import (
	"context"
	"errors"
	"time"
)

// ErrEmailTaken signals the email already has a credential.
var ErrEmailTaken = errors.New("identity: email already registered")

// Credential is a provisioned account. Password hashes never leave the
// provider.
type Credential struct {
	ID        string
	Email     string
	CreatedAt time.Time
}

// Provider is the credential store contract consumed by the registration
// orchestrator and the login handler.
type Provider interface {
	// CreateUser provisions a credential. Fails with ErrEmailTaken when the
	// email is already registered.
	CreateUser(ctx context.Context, email, password string) (Credential, error)
	// DeleteUser removes a credential by id. Used as the compensating action
	// when a record insert fails after provisioning.
	DeleteUser(ctx context.Context, id string) error
	// Authenticate verifies email and password, returning the credential.
	// Fails with sentinel.ErrNotFound for unknown emails and wrong passwords
	// alike so callers cannot distinguish the two.
	Authenticate(ctx context.Context, email, password string) (Credential, error)
}
