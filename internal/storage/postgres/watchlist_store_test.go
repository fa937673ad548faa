package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finance-tracker/internal/domain"
	"finance-tracker/internal/storage"
)

func TestWatchlistStore_AddAndList(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := NewWatchlistStore(pool)

	require.NoError(t, store.Add(ctx, &domain.WatchlistEntry{CoinID: 3, AddedAt: 20}))
	require.NoError(t, store.Add(ctx, &domain.WatchlistEntry{CoinID: 1, AddedAt: 30}))
	require.NoError(t, store.Add(ctx, &domain.WatchlistEntry{CoinID: 2, AddedAt: 20}))

	list, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)

	assert.Equal(t, int64(2), list[0].CoinID)
	assert.Equal(t, int64(3), list[1].CoinID)
	assert.Equal(t, int64(1), list[2].CoinID)
}

func TestWatchlistStore_AddDuplicate(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := NewWatchlistStore(pool)

	require.NoError(t, store.Add(ctx, &domain.WatchlistEntry{CoinID: 1, AddedAt: 10}))

	err := store.Add(ctx, &domain.WatchlistEntry{CoinID: 1, AddedAt: 20})
	assert.ErrorIs(t, err, storage.ErrDuplicateKey)
}

func TestWatchlistStore_Remove(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := NewWatchlistStore(pool)

	err := store.Remove(ctx, 1)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	require.NoError(t, store.Add(ctx, &domain.WatchlistEntry{CoinID: 1, AddedAt: 10}))
	require.NoError(t, store.Remove(ctx, 1))

	list, err := store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}
