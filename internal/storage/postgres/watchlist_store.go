package postgres

import (
	"context"
	"fmt"

	"finance-tracker/internal/domain"
	"finance-tracker/internal/storage"
)

// WatchlistStore implements storage.WatchlistStore using PostgreSQL.
type WatchlistStore struct {
	pool *Pool
}

// NewWatchlistStore creates a new WatchlistStore.
func NewWatchlistStore(pool *Pool) *WatchlistStore {
	return &WatchlistStore{pool: pool}
}

// Compile-time interface check.
var _ storage.WatchlistStore = (*WatchlistStore)(nil)

// Add marks a coin as watched.
func (s *WatchlistStore) Add(ctx context.Context, e *domain.WatchlistEntry) error {
	if e == nil || e.CoinID == 0 {
		return storage.ErrInvalidInput
	}

	_, err := s.pool.Exec(ctx,
		`INSERT INTO watchlist (coin_id, added_at) VALUES ($1, $2)`,
		e.CoinID, e.AddedAt,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return storage.ErrDuplicateKey
		}
		return fmt.Errorf("add watchlist entry: %w", err)
	}
	return nil
}

// Remove unwatches a coin.
func (s *WatchlistStore) Remove(ctx context.Context, coinID int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM watchlist WHERE coin_id = $1`, coinID)
	if err != nil {
		return fmt.Errorf("remove watchlist entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// List retrieves all entries ordered by added time ASC.
func (s *WatchlistStore) List(ctx context.Context) ([]*domain.WatchlistEntry, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT coin_id, added_at FROM watchlist ORDER BY added_at ASC, coin_id ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list watchlist: %w", err)
	}
	defer rows.Close()

	var out []*domain.WatchlistEntry
	for rows.Next() {
		var e domain.WatchlistEntry
		if err := rows.Scan(&e.CoinID, &e.AddedAt); err != nil {
			return nil, fmt.Errorf("scan watchlist entry: %w", err)
		}
		out = append(out, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate watchlist: %w", err)
	}
	return out, nil
}
