package clickhouse

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finance-tracker/internal/domain"
	"finance-tracker/internal/storage"
)

func TestSnapshotHistoryStore_InsertBulkAndGetByCoinID(t *testing.T) {
	conn, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := NewSnapshotHistoryStore(conn)

	err := store.InsertBulk(ctx, []*domain.CoinSnapshot{
		{
			ID: 1, Name: "Bitcoin", Symbol: "BTC", Rank: 1, PriceUSD: 64000,
			PercentChange1h:  ptr(0.2),
			PercentChange24h: ptr(-1.4),
			PercentChange7d:  ptr(3.1),
			MarketCap:        ptr(1.2e12),
			Volume24h:        ptr(3.4e10),
			LogoURL:          "https://example.com/btc.png",
			FetchedAt:        1700000002000,
		},
		{ID: 2, Name: "Ethereum", Symbol: "ETH", Rank: 2, PriceUSD: 3100, FetchedAt: 1700000002000},
		{ID: 1, Name: "Bitcoin", Symbol: "BTC", Rank: 1, PriceUSD: 63000, FetchedAt: 1700000001000},
	})
	require.NoError(t, err)

	rows, err := store.GetByCoinID(ctx, 1)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// Ordered by fetch time ASC.
	assert.Equal(t, int64(1700000001000), rows[0].FetchedAt)
	assert.Equal(t, int64(1700000002000), rows[1].FetchedAt)

	got := rows[1]
	assert.Equal(t, "Bitcoin", got.Name)
	assert.Equal(t, "BTC", got.Symbol)
	assert.Equal(t, 1, got.Rank)
	assert.InDelta(t, 64000, got.PriceUSD, 0.0001)
	require.NotNil(t, got.PercentChange24h)
	assert.InDelta(t, -1.4, *got.PercentChange24h, 0.0001)
	require.NotNil(t, got.MarketCap)
	assert.InDelta(t, 1.2e12, *got.MarketCap, 1)
	assert.Equal(t, "https://example.com/btc.png", got.LogoURL)

	// Omitted provider stats come back as nil, not zero.
	assert.Nil(t, rows[0].PercentChange24h)
	assert.Nil(t, rows[0].MarketCap)
}

func TestSnapshotHistoryStore_Latest(t *testing.T) {
	conn, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := NewSnapshotHistoryStore(conn)

	err := store.InsertBulk(ctx, []*domain.CoinSnapshot{
		{ID: 2, Symbol: "ETH", PriceUSD: 3000, FetchedAt: 10},
		{ID: 1, Symbol: "BTC", PriceUSD: 63000, FetchedAt: 10},
		{ID: 1, Symbol: "BTC", PriceUSD: 64000, FetchedAt: 20},
		{ID: 2, Symbol: "ETH", PriceUSD: 3100, FetchedAt: 20},
	})
	require.NoError(t, err)

	latest, err := store.Latest(ctx)
	require.NoError(t, err)
	require.Len(t, latest, 2)

	assert.Equal(t, int64(1), latest[0].ID)
	assert.InDelta(t, 64000, latest[0].PriceUSD, 0.0001)
	assert.Equal(t, int64(2), latest[1].ID)
	assert.InDelta(t, 3100, latest[1].PriceUSD, 0.0001)
}

func TestSnapshotHistoryStore_InsertBulkEmpty(t *testing.T) {
	conn, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewSnapshotHistoryStore(conn)
	assert.NoError(t, store.InsertBulk(context.Background(), nil))
}

func TestSnapshotHistoryStore_InsertBulkInvalid(t *testing.T) {
	conn, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewSnapshotHistoryStore(conn)
	err := store.InsertBulk(context.Background(), []*domain.CoinSnapshot{{ID: 0}})
	assert.ErrorIs(t, err, storage.ErrInvalidInput)
}
