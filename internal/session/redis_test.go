package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := NewRedisClient(mr.Addr(), "", 0)
	t.Cleanup(func() { client.Close() })
	return NewRedisStore(client), mr
}

func TestRedisStore_PutGetDelete(t *testing.T) {
	store, mr := setupRedisStore(t)
	ctx := context.Background()

	s := &Session{ID: "sess-1", Identity: jane, CreatedAt: time.Now().UTC().Truncate(time.Second)}
	require.NoError(t, store.Put(ctx, s, 30*time.Minute))
	assert.True(t, mr.Exists(redisKeyPrefix+"sess-1"))
	assert.Equal(t, 30*time.Minute, mr.TTL(redisKeyPrefix+"sess-1"))

	got, err := store.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, jane, got.Identity)
	assert.True(t, s.CreatedAt.Equal(got.CreatedAt))

	require.NoError(t, store.Delete(ctx, "sess-1"))
	_, err = store.Get(ctx, "sess-1")
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestRedisStore_Expires(t *testing.T) {
	store, mr := setupRedisStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, &Session{ID: "sess-2", Identity: jane}, time.Minute))
	mr.FastForward(2 * time.Minute)

	_, err := store.Get(ctx, "sess-2")
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestManager_WithRedisStore(t *testing.T) {
	store, _ := setupRedisStore(t)
	m := NewManager(store, 30*time.Minute, time.Hour)
	ctx := context.Background()

	s, err := m.Create(ctx, jane)
	require.NoError(t, err)
	got, err := m.Resolve(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, s.ID, got.ID)
}
