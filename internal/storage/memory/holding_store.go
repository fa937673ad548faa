// Package memory provides in-memory store implementations, used by
// tests and DSN-less runs.
package memory

import (
	"context"
	"sort"
	"sync"

	"finance-tracker/internal/domain"
	"finance-tracker/internal/storage"
)

// HoldingStore is an in-memory implementation of storage.HoldingStore.
type HoldingStore struct {
	mu   sync.RWMutex
	data map[string]*domain.Holding
}

// NewHoldingStore creates a new in-memory holding store.
func NewHoldingStore() *HoldingStore {
	return &HoldingStore{data: make(map[string]*domain.Holding)}
}

// Compile-time interface check.
var _ storage.HoldingStore = (*HoldingStore)(nil)

// Insert adds a new holding.
func (s *HoldingStore) Insert(_ context.Context, h *domain.Holding) error {
	if h == nil || h.ID == "" || h.Amount <= 0 || h.CostPerUnit <= 0 {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[h.ID]; exists {
		return storage.ErrDuplicateKey
	}
	cp := *h
	s.data[h.ID] = &cp
	return nil
}

// Update replaces an existing holding.
func (s *HoldingStore) Update(_ context.Context, h *domain.Holding) error {
	if h == nil || h.ID == "" || h.Amount <= 0 || h.CostPerUnit <= 0 {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[h.ID]; !exists {
		return storage.ErrNotFound
	}
	cp := *h
	s.data[h.ID] = &cp
	return nil
}

// Delete removes a holding.
func (s *HoldingStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[id]; !exists {
		return storage.ErrNotFound
	}
	delete(s.data, id)
	return nil
}

// GetByID retrieves one holding.
func (s *HoldingStore) GetByID(_ context.Context, id string) (*domain.Holding, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	h, ok := s.data[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	cp := *h
	return &cp, nil
}

// List retrieves all holdings ordered by creation time ASC, id ASC for
// equal times.
func (s *HoldingStore) List(_ context.Context) ([]*domain.Holding, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Holding, 0, len(s.data))
	for _, h := range s.data {
		cp := *h
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt != out[j].CreatedAt {
			return out[i].CreatedAt < out[j].CreatedAt
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}
