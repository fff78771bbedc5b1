package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *MemoryStore {
	t.Helper()
	store := NewMemoryStore()
	t.Cleanup(store.Close)
	return store
}

func TestMemoryStore_CreateGet(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()

	sess := Session{
		SessionID: "sid-1",
		UserID:    42,
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(time.Hour),
	}
	require.NoError(t, store.Create(ctx, sess))

	got, err := store.Get(ctx, "sid-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, int64(42), got.UserID)
}

func TestMemoryStore_GetMissing(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)

	got, err := store.Get(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemoryStore_GetExpired(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()

	sess := Session{
		SessionID: "sid-exp",
		ExpiresAt: time.Now().Add(30 * time.Millisecond),
	}
	require.NoError(t, store.Create(ctx, sess))

	time.Sleep(60 * time.Millisecond)

	got, err := store.Get(ctx, "sid-exp")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemoryStore_CreateRejectsPastExpiry(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)

	err := store.Create(context.Background(), Session{
		SessionID: "sid-past",
		ExpiresAt: time.Now().Add(-time.Minute),
	})
	require.Error(t, err)
}

func TestMemoryStore_UpdateAndDelete(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()

	sess := Session{
		SessionID: "sid-2",
		ExpiresAt: time.Now().Add(time.Hour),
	}
	require.NoError(t, store.Create(ctx, sess))

	sess.UserID = 7
	sess.OTPCode = "123456"
	require.NoError(t, store.Update(ctx, sess))

	got, err := store.Get(ctx, "sid-2")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, int64(7), got.UserID)
	assert.Equal(t, "123456", got.OTPCode)

	require.NoError(t, store.Delete(ctx, "sid-2"))

	got, err = store.Get(ctx, "sid-2")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemoryStore_GetReturnsCopy(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, Session{
		SessionID: "sid-3",
		ExpiresAt: time.Now().Add(time.Hour),
	}))

	first, err := store.Get(ctx, "sid-3")
	require.NoError(t, err)
	first.OTPCode = "mutated"

	second, err := store.Get(ctx, "sid-3")
	require.NoError(t, err)
	assert.Empty(t, second.OTPCode)
}
