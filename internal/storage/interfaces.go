// Package storage defines the persistence interfaces for user-owned
// state (holdings, watchlist) and the refresh history sink. The core
// aggregation pipeline never touches these directly; it receives and
// returns in-memory collections.
package storage

import (
	"context"

	"finance-tracker/internal/domain"
)

// HoldingStore provides access to persisted holdings.
type HoldingStore interface {
	// Insert adds a new holding. Returns ErrDuplicateKey if the id exists,
	// ErrInvalidInput if amount or cost per unit is not positive.
	Insert(ctx context.Context, h *domain.Holding) error

	// Update replaces an existing holding. Returns ErrNotFound if the id
	// does not exist.
	Update(ctx context.Context, h *domain.Holding) error

	// Delete removes a holding. Returns ErrNotFound if the id does not exist.
	Delete(ctx context.Context, id string) error

	// GetByID retrieves one holding. Returns ErrNotFound if not exists.
	GetByID(ctx context.Context, id string) (*domain.Holding, error)

	// List retrieves all holdings ordered by creation time ASC.
	List(ctx context.Context) ([]*domain.Holding, error)
}

// WatchlistStore provides access to the persisted watchlist.
type WatchlistStore interface {
	// Add marks a coin as watched. Returns ErrDuplicateKey if already watched.
	Add(ctx context.Context, e *domain.WatchlistEntry) error

	// Remove unwatches a coin. Returns ErrNotFound if not watched.
	Remove(ctx context.Context, coinID int64) error

	// List retrieves all entries ordered by added time ASC.
	List(ctx context.Context) ([]*domain.WatchlistEntry, error)
}

// SnapshotHistoryStore records the coin snapshots of each listings
// refresh. Append-only.
type SnapshotHistoryStore interface {
	// InsertBulk appends one refresh's snapshots.
	InsertBulk(ctx context.Context, snapshots []*domain.CoinSnapshot) error

	// GetByCoinID retrieves all recorded snapshots for a coin, ordered by
	// fetch time ASC.
	GetByCoinID(ctx context.Context, coinID int64) ([]*domain.CoinSnapshot, error)

	// Latest retrieves the most recently fetched snapshot per coin.
	Latest(ctx context.Context) ([]*domain.CoinSnapshot, error)
}
