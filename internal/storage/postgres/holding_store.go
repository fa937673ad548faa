package postgres

import (
	"context"
	"fmt"

	"finance-tracker/internal/domain"
	"finance-tracker/internal/storage"
)

// HoldingStore implements storage.HoldingStore using PostgreSQL.
type HoldingStore struct {
	pool *Pool
}

// NewHoldingStore creates a new HoldingStore.
func NewHoldingStore(pool *Pool) *HoldingStore {
	return &HoldingStore{pool: pool}
}

// Compile-time interface check.
var _ storage.HoldingStore = (*HoldingStore)(nil)

// Insert adds a new holding.
func (s *HoldingStore) Insert(ctx context.Context, h *domain.Holding) error {
	if h == nil || h.ID == "" || h.Amount <= 0 || h.CostPerUnit <= 0 {
		return storage.ErrInvalidInput
	}

	query := `
		INSERT INTO holdings (
			id, coin_id, amount, cost_per_unit, note, acquired_at, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := s.pool.Exec(ctx, query,
		h.ID, h.CoinID, h.Amount, h.CostPerUnit, h.Note, h.AcquiredAt, h.CreatedAt,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return storage.ErrDuplicateKey
		}
		return fmt.Errorf("insert holding: %w", err)
	}
	return nil
}

// Update replaces an existing holding.
func (s *HoldingStore) Update(ctx context.Context, h *domain.Holding) error {
	if h == nil || h.ID == "" || h.Amount <= 0 || h.CostPerUnit <= 0 {
		return storage.ErrInvalidInput
	}

	query := `
		UPDATE holdings
		SET coin_id = $2, amount = $3, cost_per_unit = $4, note = $5, acquired_at = $6
		WHERE id = $1
	`

	tag, err := s.pool.Exec(ctx, query,
		h.ID, h.CoinID, h.Amount, h.CostPerUnit, h.Note, h.AcquiredAt,
	)
	if err != nil {
		return fmt.Errorf("update holding: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// Delete removes a holding.
func (s *HoldingStore) Delete(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM holdings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete holding: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// GetByID retrieves one holding.
func (s *HoldingStore) GetByID(ctx context.Context, id string) (*domain.Holding, error) {
	query := `
		SELECT id, coin_id, amount, cost_per_unit, note, acquired_at, created_at
		FROM holdings
		WHERE id = $1
	`

	var h domain.Holding
	err := s.pool.QueryRow(ctx, query, id).Scan(
		&h.ID, &h.CoinID, &h.Amount, &h.CostPerUnit, &h.Note, &h.AcquiredAt, &h.CreatedAt,
	)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get holding by id: %w", err)
	}
	return &h, nil
}

// List retrieves all holdings ordered by creation time ASC.
func (s *HoldingStore) List(ctx context.Context) ([]*domain.Holding, error) {
	query := `
		SELECT id, coin_id, amount, cost_per_unit, note, acquired_at, created_at
		FROM holdings
		ORDER BY created_at ASC, id ASC
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list holdings: %w", err)
	}
	defer rows.Close()

	var out []*domain.Holding
	for rows.Next() {
		var h domain.Holding
		if err := rows.Scan(
			&h.ID, &h.CoinID, &h.Amount, &h.CostPerUnit, &h.Note, &h.AcquiredAt, &h.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan holding: %w", err)
		}
		out = append(out, &h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate holdings: %w", err)
	}
	return out, nil
}
