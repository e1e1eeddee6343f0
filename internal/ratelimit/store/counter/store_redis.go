package counter

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"shulchan/internal/ratelimit/models"
)

const keyPrefix = "ratelimit:registration:"

// RedisStore keeps counters in a Redis hash per identity, expiring a little
// after the window so stale entries clean themselves up.
type RedisStore struct {
	client *redis.Client
	// ttl bounds entry lifetime; must be >= the service window.
	ttl time.Duration
}

func NewRedis(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Get(ctx context.Context, idHash string) (*models.Counter, error) {
	vals, err := s.client.HGetAll(ctx, keyPrefix+idHash).Result()
	if err != nil {
		return nil, fmt.Errorf("get rate limit counter: %w", err)
	}
	if len(vals) == 0 {
		return nil, nil
	}

	count, err := strconv.Atoi(vals["request_count"])
	if err != nil {
		return nil, fmt.Errorf("parse request_count: %w", err)
	}
	windowStart, err := time.Parse(time.RFC3339Nano, vals["window_start"])
	if err != nil {
		return nil, fmt.Errorf("parse window_start: %w", err)
	}

	return &models.Counter{IDHash: idHash, RequestCount: count, WindowStart: windowStart}, nil
}

func (s *RedisStore) Insert(ctx context.Context, c models.Counter) error {
	return s.write(ctx, c)
}

func (s *RedisStore) Update(ctx context.Context, c models.Counter) error {
	return s.write(ctx, c)
}

func (s *RedisStore) write(ctx context.Context, c models.Counter) error {
	key := keyPrefix + c.IDHash
	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, key,
		"request_count", strconv.Itoa(c.RequestCount),
		"window_start", c.WindowStart.Format(time.RFC3339Nano),
	)
	pipe.Expire(ctx, key, s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("write rate limit counter: %w", err)
	}
	return nil
}
