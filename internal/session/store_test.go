package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"transitpay/internal/models"
)

func TestStoreSaveAndRead(t *testing.T) {
	ctx := context.Background()
	storage := NewMemoryStorage()
	store := NewStore(storage, nil)

	assert.False(t, store.IsAuthenticated(ctx))
	_, err := store.UserID(ctx)
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	user := models.User{ID: 7, FirstName: "Ada", LastName: "Lovelace", Email: "a@b.com"}
	require.NoError(t, store.Save(ctx, "t1", user))

	assert.True(t, store.IsAuthenticated(ctx))
	token, err := store.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "t1", token)

	id, err := store.UserID(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)

	cached, err := store.User(ctx)
	require.NoError(t, err)
	require.NotNil(t, cached)
	assert.Equal(t, "Ada Lovelace", cached.FullName())

	raw, ok, _ := storage.Get(ctx, KeyUserID)
	assert.True(t, ok)
	assert.Equal(t, "7", raw)
}

func TestStoreClearRemovesAllKeysAndRunsHook(t *testing.T) {
	ctx := context.Background()
	storage := NewMemoryStorage()
	calls := 0
	store := NewStore(storage, nil, WithLogoutHook(func() { calls++ }))

	require.NoError(t, store.Save(ctx, "t1", models.User{ID: 1}))
	require.Equal(t, 3, storage.Len())

	require.NoError(t, store.Clear(ctx))
	assert.Zero(t, storage.Len())
	assert.Equal(t, 1, calls)
	assert.False(t, store.IsAuthenticated(ctx))

	user, err := store.User(ctx)
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestStoreSetUserUpdatesMirroredID(t *testing.T) {
	ctx := context.Background()
	store := NewStore(NewMemoryStorage(), nil)

	require.NoError(t, store.SetUser(ctx, models.User{ID: 3}))
	require.NoError(t, store.SetUser(ctx, models.User{ID: 4}))

	id, err := store.UserID(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(4), id)
	assert.False(t, store.IsAuthenticated(ctx), "user without token is not a login")
}
