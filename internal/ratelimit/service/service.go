// Package service decides allow/deny for registration attempts using a fixed
// window counter keyed by a one-way hash of the caller identity.
package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"log/slog"
	"time"

	"shulchan/internal/platform/metrics"
	"shulchan/internal/ratelimit/models"
	dErrors "shulchan/pkg/errors"
)

// CounterStore is the persistence contract for rate-limit counters.
// Get returns nil when no counter exists for the hash.
type CounterStore interface {
	Get(ctx context.Context, idHash string) (*models.Counter, error)
	Insert(ctx context.Context, c models.Counter) error
	Update(ctx context.Context, c models.Counter) error
}

// AtomicCounterStore is an optional extension: one call that creates, resets,
// or increments the counter atomically. Backends that implement it get a hard
// ceiling instead of the documented read-then-write soft limit.
type AtomicCounterStore interface {
	Bump(ctx context.Context, idHash string, now, windowCutoff time.Time) (*models.Counter, error)
}

type Service struct {
	store   CounterStore
	secret  string
	max     int
	window  time.Duration
	logger  *slog.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func New(store CounterStore, secret string, max int, window time.Duration, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, errors.New("counter store is required")
	}
	if secret == "" {
		return nil, errors.New("rate limit secret is required")
	}
	if max < 1 || window <= 0 {
		return nil, errors.New("rate limit ceiling and window must be positive")
	}

	svc := &Service{
		store:  store,
		secret: secret,
		max:    max,
		window: window,
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// Allow checks and durably updates the counter for callerIdentity. The counter
// moves before the caller proceeds, so a request that later fails validation
// still consumed its slot. Two requests racing the read-then-write path may
// briefly exceed the ceiling by one; that soft limit is accepted rather than
// serializing unrelated requests.
func (s *Service) Allow(ctx context.Context, callerIdentity string) (*models.Decision, error) {
	idHash := s.HashIdentity(callerIdentity)
	now := s.now()

	if atomic, ok := s.store.(AtomicCounterStore); ok {
		c, err := atomic.Bump(ctx, idHash, now, now.Add(-s.window))
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update rate limit counter")
		}
		return s.decide(c.RequestCount, c.WindowStart, idHash), nil
	}

	c, err := s.store.Get(ctx, idHash)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to read rate limit counter")
	}

	switch {
	case c == nil:
		c = &models.Counter{IDHash: idHash, RequestCount: 1, WindowStart: now}
		if err := s.store.Insert(ctx, *c); err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create rate limit counter")
		}
	case now.Sub(c.WindowStart) >= s.window:
		c.RequestCount = 1
		c.WindowStart = now
		if err := s.store.Update(ctx, *c); err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to reset rate limit counter")
		}
	case c.RequestCount >= s.max:
		return s.decide(c.RequestCount+1, c.WindowStart, idHash), nil
	default:
		c.RequestCount++
		if err := s.store.Update(ctx, *c); err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to increment rate limit counter")
		}
	}

	return s.decide(c.RequestCount, c.WindowStart, idHash), nil
}

// HashIdentity derives the storage key for an identity. The secret is mixed in
// so stored hashes cannot be matched against candidate addresses offline.
func (s *Service) HashIdentity(identity string) string {
	sum := sha256.Sum256([]byte(identity + s.secret))
	return hex.EncodeToString(sum[:])
}

func (s *Service) decide(count int, windowStart time.Time, idHash string) *models.Decision {
	if count > s.max {
		if s.metrics != nil {
			s.metrics.IncrementRateLimitRejections()
		}
		s.logger.Warn("rate limit exceeded", "id_hash_prefix", idHash[:8])
		return &models.Decision{
			Allowed:    false,
			Remaining:  0,
			RetryAfter: windowStart.Add(s.window).Sub(s.now()),
		}
	}
	return &models.Decision{Allowed: true, Remaining: s.max - count}
}
