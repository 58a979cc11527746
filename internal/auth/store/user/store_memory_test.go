package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"session-server/internal/auth/models"
	"session-server/pkg/sentinel"
)

func seedUser(t *testing.T, store *MemoryStore) *models.User {
	t.Helper()
	created, err := store.Create(context.Background(), models.User{
		Username: "alice123",
		Email:    "a@x.com",
		Phone:    "01012345678",
		Password: "hashed",
	})
	require.NoError(t, err)
	return created
}

func TestMemoryStoreCreateAssignsIDs(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	first := seedUser(t, store)
	second, err := store.Create(ctx, models.User{
		Username: "bob456", Email: "b@x.com", Phone: "01087654321", Password: "hashed",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, int64(2), second.ID)
	assert.False(t, first.CreatedAt.IsZero())
}

func TestMemoryStoreCreateRejectsDuplicates(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	seedUser(t, store)

	for _, u := range []models.User{
		{Username: "alice123", Email: "new@x.com", Phone: "01011112222", Password: "hashed"},
		{Username: "newname", Email: "a@x.com", Phone: "01011112222", Password: "hashed"},
		{Username: "newname", Email: "new@x.com", Phone: "01012345678", Password: "hashed"},
	} {
		_, err := store.Create(ctx, u)
		assert.ErrorIs(t, err, sentinel.ErrConflict)
	}
}

func TestMemoryStoreFindByAny(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	seedUser(t, store)

	matches, err := store.FindByAny(ctx, "alice123", "other@x.com", "00000000000")
	require.NoError(t, err)
	assert.Len(t, matches, 1)

	matches, err = store.FindByAny(ctx, "nobody", "other@x.com", "00000000000")
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestMemoryStoreFindByUsername(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	created := seedUser(t, store)

	got, err := store.FindByUsername(ctx, "alice123")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	_, err = store.FindByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
}

func TestMemoryStoreFindByID(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	created := seedUser(t, store)

	got, err := store.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice123", got.Username)

	_, err = store.FindByID(ctx, 999)
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
}

func TestMemoryStoreDelete(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	created := seedUser(t, store)

	require.NoError(t, store.Delete(ctx, created.ID))

	_, err := store.FindByID(ctx, created.ID)
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
	assert.ErrorIs(t, store.Delete(ctx, created.ID), sentinel.ErrNotFound)
}
