package memory

import (
	"context"
	"sort"
	"sync"

	"finance-tracker/internal/domain"
	"finance-tracker/internal/storage"
)

// WatchlistStore is an in-memory implementation of storage.WatchlistStore.
type WatchlistStore struct {
	mu   sync.RWMutex
	data map[int64]*domain.WatchlistEntry
}

// NewWatchlistStore creates a new in-memory watchlist store.
func NewWatchlistStore() *WatchlistStore {
	return &WatchlistStore{data: make(map[int64]*domain.WatchlistEntry)}
}

// Compile-time interface check.
var _ storage.WatchlistStore = (*WatchlistStore)(nil)

// Add marks a coin as watched.
func (s *WatchlistStore) Add(_ context.Context, e *domain.WatchlistEntry) error {
	if e == nil || e.CoinID == 0 {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[e.CoinID]; exists {
		return storage.ErrDuplicateKey
	}
	cp := *e
	s.data[e.CoinID] = &cp
	return nil
}

// Remove unwatches a coin.
func (s *WatchlistStore) Remove(_ context.Context, coinID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[coinID]; !exists {
		return storage.ErrNotFound
	}
	delete(s.data, coinID)
	return nil
}

// List retrieves all entries ordered by added time ASC, coin id ASC for
// equal times.
func (s *WatchlistStore) List(_ context.Context) ([]*domain.WatchlistEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.WatchlistEntry, 0, len(s.data))
	for _, e := range s.data {
		cp := *e
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].AddedAt != out[j].AddedAt {
			return out[i].AddedAt < out[j].AddedAt
		}
		return out[i].CoinID < out[j].CoinID
	})
	return out, nil
}
