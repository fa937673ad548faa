package memory

import (
	"context"
	"sort"
	"sync"

	"finance-tracker/internal/domain"
	"finance-tracker/internal/storage"
)

// SnapshotHistoryStore is an in-memory implementation of
// storage.SnapshotHistoryStore.
type SnapshotHistoryStore struct {
	mu   sync.RWMutex
	data []*domain.CoinSnapshot
}

// NewSnapshotHistoryStore creates a new in-memory history store.
func NewSnapshotHistoryStore() *SnapshotHistoryStore {
	return &SnapshotHistoryStore{}
}

// Compile-time interface check.
var _ storage.SnapshotHistoryStore = (*SnapshotHistoryStore)(nil)

// InsertBulk appends one refresh's snapshots.
func (s *SnapshotHistoryStore) InsertBulk(_ context.Context, snapshots []*domain.CoinSnapshot) error {
	if len(snapshots) == 0 {
		return nil
	}
	for _, snap := range snapshots {
		if snap == nil || snap.ID == 0 {
			return storage.ErrInvalidInput
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, snap := range snapshots {
		cp := *snap
		s.data = append(s.data, &cp)
	}
	return nil
}

// GetByCoinID retrieves all recorded snapshots for a coin, ordered by
// fetch time ASC.
func (s *SnapshotHistoryStore) GetByCoinID(_ context.Context, coinID int64) ([]*domain.CoinSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*domain.CoinSnapshot
	for _, snap := range s.data {
		if snap.ID == coinID {
			cp := *snap
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].FetchedAt < out[j].FetchedAt
	})
	return out, nil
}

// Latest retrieves the most recently fetched snapshot per coin, ordered
// by coin id ASC.
func (s *SnapshotHistoryStore) Latest(_ context.Context) ([]*domain.CoinSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	latest := make(map[int64]*domain.CoinSnapshot)
	for _, snap := range s.data {
		cur, ok := latest[snap.ID]
		if !ok || snap.FetchedAt > cur.FetchedAt {
			latest[snap.ID] = snap
		}
	}

	out := make([]*domain.CoinSnapshot, 0, len(latest))
	for _, snap := range latest {
		cp := *snap
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ID < out[j].ID
	})
	return out, nil
}
