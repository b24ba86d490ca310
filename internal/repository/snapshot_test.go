package repository

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tempizhere/shortdash/internal/models"
	"go.uber.org/zap"
)

func testLinks() []models.LinkRecord {
	expires := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)
	return []models.LinkRecord{
		{
			ID:          "1",
			OriginalURL: "https://example.com/a",
			ShortURL:    "https://sho.rt/a",
			CreatedAt:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			Tags:        []string{"work"},
			Clicks:      5,
		},
		{
			ID:          "2",
			OriginalURL: "https://example.com/b",
			ShortURL:    "https://sho.rt/b",
			CreatedAt:   time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
			ExpiresAt:   &expires,
			IsPrivate:   true,
		},
	}
}

func TestMemorySnapshotStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemorySnapshotStore()

	_, ok, err := store.Get(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, ok)

	links := testLinks()
	require.NoError(t, store.Put(ctx, "u1", links))

	// Изменение исходного среза не влияет на сохранённую коллекцию
	links[0].Clicks = 100

	got, ok, err := store.Get(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(5), got[0].Clicks)

	got[1].ID = "changed"
	again, _, _ := store.Get(ctx, "u1")
	assert.Equal(t, "2", again[1].ID)

	assert.ErrorIs(t, store.Put(ctx, "", links), ErrEmptyID)
}

func TestRedisSnapshotStore(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis is not available: %v", err)
	}

	prefix := "shortdash-test:" + time.Now().Format("150405.000000") + ":"
	store := NewRedisSnapshotStore(client, prefix, time.Minute, zap.NewNop())
	t.Cleanup(func() {
		client.Del(context.Background(), prefix+"snapshot:u1")
	})

	_, ok, err := store.Get(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Put(ctx, "u1", testLinks()))

	got, ok, err := store.Get(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, ok)
	require.Len(t, got, 2)
	assert.Equal(t, "https://example.com/a", got[0].OriginalURL)
	assert.True(t, got[1].ExpiresAt.Equal(*testLinks()[1].ExpiresAt))

	ttl, err := client.TTL(ctx, prefix+"snapshot:u1").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
}

func TestSnapshotEncoding_OmitsPassword(t *testing.T) {
	links := testLinks()
	links[1].Password = "hunter2"

	data, err := encodeSnapshot(links)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "hunter2")
	assert.NotContains(t, string(data), `"password"`)

	got, err := decodeSnapshot(data)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Empty(t, got[0].Password)
	assert.Equal(t, maskedPassword, got[1].Password)
	assert.Equal(t, "https://sho.rt/b", got[1].ShortURL)
	assert.True(t, got[1].ExpiresAt.Equal(*links[1].ExpiresAt))
	assert.True(t, got[1].IsPrivate)
	assert.Equal(t, "hunter2", links[1].Password, "исходная коллекция не изменяется")
}
