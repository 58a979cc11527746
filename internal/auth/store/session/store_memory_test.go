package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"session-server/internal/auth/models"
	"session-server/pkg/sentinel"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Hour)

	data := models.SessionData{UserID: 7, Username: "alice123"}
	require.NoError(t, store.Save(ctx, "abc", data))

	got, err := store.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, data, *got)
	assert.Equal(t, 1, store.Len())
}

func TestMemoryStoreGetMissing(t *testing.T) {
	store := NewMemoryStore(time.Hour)

	_, err := store.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
}

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Minute)

	base := time.Now()
	store.now = func() time.Time { return base }
	require.NoError(t, store.Save(ctx, "abc", models.SessionData{UserID: 7}))

	store.now = func() time.Time { return base.Add(2 * time.Minute) }

	_, err := store.Get(ctx, "abc")
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
	assert.Zero(t, store.Len())
}

func TestMemoryStoreSaveRefreshesExpiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Minute)

	base := time.Now()
	store.now = func() time.Time { return base }
	require.NoError(t, store.Save(ctx, "abc", models.SessionData{UserID: 7}))

	store.now = func() time.Time { return base.Add(45 * time.Second) }
	require.NoError(t, store.Save(ctx, "abc", models.SessionData{UserID: 7}))

	store.now = func() time.Time { return base.Add(90 * time.Second) }
	_, err := store.Get(ctx, "abc")
	assert.NoError(t, err)
}

func TestMemoryStoreDestroy(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Hour)

	require.NoError(t, store.Save(ctx, "abc", models.SessionData{UserID: 7}))
	require.NoError(t, store.Destroy(ctx, "abc"))

	_, err := store.Get(ctx, "abc")
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
	assert.NoError(t, store.Destroy(ctx, "abc"))
}
