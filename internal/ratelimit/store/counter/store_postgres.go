package counter

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"shulchan/internal/ratelimit/models"
)

// PostgresStore persists counters in the registration_rate_limits table.
// Pure I/O; window arithmetic belongs in the service.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Get(ctx context.Context, idHash string) (*models.Counter, error) {
	query := `
		SELECT id_hash, request_count, window_start
		FROM registration_rate_limits
		WHERE id_hash = $1
	`
	var c models.Counter
	err := s.db.QueryRowContext(ctx, query, idHash).Scan(&c.IDHash, &c.RequestCount, &c.WindowStart)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get rate limit counter: %w", err)
	}
	return &c, nil
}

func (s *PostgresStore) Insert(ctx context.Context, c models.Counter) error {
	query := `
		INSERT INTO registration_rate_limits (id_hash, request_count, window_start)
		VALUES ($1, $2, $3)
		ON CONFLICT (id_hash) DO UPDATE SET
			request_count = EXCLUDED.request_count,
			window_start = EXCLUDED.window_start
	`
	if _, err := s.db.ExecContext(ctx, query, c.IDHash, c.RequestCount, c.WindowStart); err != nil {
		return fmt.Errorf("insert rate limit counter: %w", err)
	}
	return nil
}

func (s *PostgresStore) Update(ctx context.Context, c models.Counter) error {
	query := `
		UPDATE registration_rate_limits
		SET request_count = $2, window_start = $3
		WHERE id_hash = $1
	`
	if _, err := s.db.ExecContext(ctx, query, c.IDHash, c.RequestCount, c.WindowStart); err != nil {
		return fmt.Errorf("update rate limit counter: %w", err)
	}
	return nil
}

// Bump atomically creates, resets, or increments the counter in one upsert,
// closing the read-then-write race the memory store accepts. Counters past
// the ceiling keep counting; the service treats count > max as denied.
func (s *PostgresStore) Bump(ctx context.Context, idHash string, now, windowCutoff time.Time) (*models.Counter, error) {
	query := `
		INSERT INTO registration_rate_limits (id_hash, request_count, window_start)
		VALUES ($1, 1, $2)
		ON CONFLICT (id_hash) DO UPDATE SET
			request_count = CASE
				WHEN registration_rate_limits.window_start <= $3 THEN 1
				ELSE registration_rate_limits.request_count + 1
			END,
			window_start = CASE
				WHEN registration_rate_limits.window_start <= $3 THEN $2
				ELSE registration_rate_limits.window_start
			END
		RETURNING id_hash, request_count, window_start
	`
	var c models.Counter
	err := s.db.QueryRowContext(ctx, query, idHash, now, windowCutoff).
		Scan(&c.IDHash, &c.RequestCount, &c.WindowStart)
	if err != nil {
		return nil, fmt.Errorf("bump rate limit counter: %w", err)
	}
	return &c, nil
}
