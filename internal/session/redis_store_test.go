package session

import (
	"context"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Raymond9734/customer-dashboard-backend/internal/models"
)

// newRedisTestStore connects to REDIS_URL or skips the test
func newRedisTestStore(t *testing.T, ttl time.Duration) Store {
	t.Helper()

	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("REDIS_URL not set")
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store, err := NewRedisStore(RedisConfig{
		URL:       url,
		KeyPrefix: "dashboard:test:" + t.Name() + ":",
		TTL:       ttl,
	}, logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	return store
}

func TestRedisStore_Lifecycle(t *testing.T) {
	ctx := context.Background()
	store := newRedisTestStore(t, time.Minute)

	require.NoError(t, store.Health(ctx))

	hi := int64(500000)
	state, err := models.NewQueryState(20).WithFilterOptions(models.FilterOptions{
		Level:          []models.Level{models.LevelSultan},
		MaxTransaction: &hi,
	})
	require.NoError(t, err)

	id, err := store.Create(ctx, state)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Delete(context.Background(), id) })

	got, err := store.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, state, got)

	next, err := got.WithSorting(models.SortByName, models.SortDesc)
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, id, next))

	got, err = store.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, models.SortDesc, got.SortOrder)

	require.NoError(t, store.Delete(ctx, id))
	_, err = store.Get(ctx, id)
	assert.ErrorIs(t, err, models.ErrNotFound)

	err = store.Save(ctx, id, next)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestRedisStore_Expiry(t *testing.T) {
	ctx := context.Background()
	store := newRedisTestStore(t, time.Second)

	id, err := store.Create(ctx, models.NewQueryState(10))
	require.NoError(t, err)

	time.Sleep(1500 * time.Millisecond)

	_, err = store.Get(ctx, id)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestNewRedisStore_BadURL(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	_, err := NewRedisStore(RedisConfig{URL: "not-a-url"}, logger)
	assert.Error(t, err)
}
