package counter

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shulchan/internal/ratelimit/models"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	c, err := store.Get(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, c, "unknown hash returns nil, not an error")

	windowStart := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, store.Insert(ctx, models.Counter{
		IDHash:       "abc",
		RequestCount: 1,
		WindowStart:  windowStart,
	}))

	c, err = store.Get(ctx, "abc")
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, 1, c.RequestCount)
	assert.True(t, c.WindowStart.Equal(windowStart))

	c.RequestCount = 3
	require.NoError(t, store.Update(ctx, *c))

	c, err = store.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, 3, c.RequestCount)
}

func TestMemoryStore_GetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.Insert(ctx, models.Counter{IDHash: "abc", RequestCount: 1, WindowStart: time.Now()}))

	c, err := store.Get(ctx, "abc")
	require.NoError(t, err)
	c.RequestCount = 99

	again, err := store.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, 1, again.RequestCount, "mutating a returned counter must not affect the store")
}
