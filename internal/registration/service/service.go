// Package service orchestrates a registration: rate-limit check, validation,
// optional credential provisioning, sanitization, record insert, and the
// compensating credential delete when the insert fails.
package service

import (
	"context"
	"errors"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"shulchan/internal/identity"
	"shulchan/internal/platform/metrics"
	"shulchan/internal/registration/models"
	"shulchan/internal/registration/sanitize"
	"shulchan/internal/registration/validate"
	rlmodels "shulchan/internal/ratelimit/models"
	dErrors "shulchan/pkg/errors"
)

//go:generate mockgen -source=service.go -destination=mock_ports_test.go -package=service

// RateLimiter decides allow/deny for a caller identity and durably updates
// the counter before the pipeline proceeds.
type RateLimiter interface {
	Allow(ctx context.Context, callerIdentity string) (*rlmodels.Decision, error)
}

// CredentialProvider is the slice of the identity provider the orchestrator
// needs: provisioning and the compensating delete.
type CredentialProvider interface {
	CreateUser(ctx context.Context, email, password string) (identity.Credential, error)
	DeleteUser(ctx context.Context, id string) error
}

// RecordStore persists the sanitized registration.
type RecordStore interface {
	Insert(ctx context.Context, reg models.Registration) (models.Registration, error)
}

// Result is returned on success.
type Result struct {
	ID             string
	AccountCreated bool
}

type Service struct {
	limiter  RateLimiter
	provider CredentialProvider
	records  RecordStore
	logger   *slog.Logger
	metrics  *metrics.Metrics
	tracer   trace.Tracer
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func New(limiter RateLimiter, provider CredentialProvider, records RecordStore, opts ...Option) (*Service, error) {
	if limiter == nil {
		return nil, errors.New("rate limiter is required")
	}
	if provider == nil {
		return nil, errors.New("credential provider is required")
	}
	if records == nil {
		return nil, errors.New("record store is required")
	}

	svc := &Service{
		limiter:  limiter,
		provider: provider,
		records:  records,
		logger:   slog.Default(),
		tracer:   otel.Tracer("shulchan/registration"),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// Register runs the intake pipeline for one submission. Each step gates the
// next; the only partial state a failed request can leave behind is the
// already-consumed rate-limit slot, which is deliberate. callerIdentity is
// the network identity used for rate limiting only; it is hashed before it
// reaches any store and never logged raw.
func (s *Service) Register(ctx context.Context, req models.Request, callerIdentity string) (*Result, error) {
	ctx, span := s.tracer.Start(ctx, "registration.Register")
	defer span.End()

	decision, err := s.limiter.Allow(ctx, callerIdentity)
	if err != nil {
		s.record("error")
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "An unexpected error occurred")
	}
	if !decision.Allowed {
		s.record("rate_limited")
		return nil, dErrors.New(dErrors.CodeRateLimited, "Too many registration attempts. Please try again later.")
	}

	if err := validate.Request(req); err != nil {
		s.record("validation_failed")
		return nil, err
	}

	reg := sanitize.Apply(req)

	if req.CreateAccount {
		// The raw password goes to the provider; only the provider ever
		// holds password material.
		cred, err := s.provider.CreateUser(ctx, reg.Email, req.Password)
		if err != nil {
			if errors.Is(err, identity.ErrEmailTaken) {
				s.record("validation_failed")
				return nil, dErrors.New(dErrors.CodeDuplicateEmail, "This email is already registered")
			}
			s.record("error")
			s.logger.ErrorContext(ctx, "credential creation failed", "error", err.Error())
			return nil, dErrors.Wrap(err, dErrors.CodeProvider, "Failed to create account")
		}
		reg.CredentialID = cred.ID
		if s.metrics != nil {
			s.metrics.IncrementAccountsCreated()
		}
		s.logger.InfoContext(ctx, "credential provisioned", "credential_id", cred.ID)
	}

	inserted, err := s.records.Insert(ctx, reg)
	if err != nil {
		s.record("error")
		s.logger.ErrorContext(ctx, "record insert failed", "error", err.Error())
		if reg.CredentialID != "" {
			s.compensate(ctx, reg.CredentialID)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeStorage, "Failed to register. Please try again.")
	}

	s.record("accepted")
	span.SetAttributes(
		attribute.Bool("registration.account_created", reg.CredentialID != ""),
	)
	s.logger.InfoContext(ctx, "registration accepted",
		"registration_id", inserted.ID,
		"account_created", reg.CredentialID != "",
	)

	return &Result{ID: inserted.ID, AccountCreated: reg.CredentialID != ""}, nil
}

// compensate deletes a credential provisioned earlier in the same request so
// a failed insert cannot strand an account. Best-effort: a failed delete is
// logged for operator reconciliation and the original storage error still
// goes to the caller.
func (s *Service) compensate(ctx context.Context, credentialID string) {
	if s.metrics != nil {
		s.metrics.IncrementCompensations()
	}
	if err := s.provider.DeleteUser(ctx, credentialID); err != nil {
		s.logger.ErrorContext(ctx, "compensating credential delete failed; credential may be orphaned",
			"credential_id", credentialID,
			"error", err.Error(),
		)
		return
	}
	s.logger.InfoContext(ctx, "credential deleted after failed record insert",
		"credential_id", credentialID,
	)
}

func (s *Service) record(outcome string) {
	if s.metrics != nil {
		s.metrics.RecordRegistration(outcome)
	}
}
