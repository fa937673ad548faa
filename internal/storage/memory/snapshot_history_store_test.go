package memory

import (
	"context"
	"errors"
	"testing"

	"finance-tracker/internal/domain"
	"finance-tracker/internal/storage"
)

func snapshot(id int64, price float64, fetchedAt int64) *domain.CoinSnapshot {
	return &domain.CoinSnapshot{ID: id, PriceUSD: price, FetchedAt: fetchedAt}
}

func TestHistoryInsertBulkAndGet(t *testing.T) {
	ctx := context.Background()
	s := NewSnapshotHistoryStore()

	err := s.InsertBulk(ctx, []*domain.CoinSnapshot{
		snapshot(1, 100, 20),
		snapshot(2, 50, 20),
		snapshot(1, 110, 10),
	})
	if err != nil {
		t.Fatalf("InsertBulk failed: %v", err)
	}

	rows, err := s.GetByCoinID(ctx, 1)
	if err != nil {
		t.Fatalf("GetByCoinID failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].FetchedAt != 10 || rows[1].FetchedAt != 20 {
		t.Errorf("rows not ordered by fetch time: %v, %v", rows[0].FetchedAt, rows[1].FetchedAt)
	}
}

func TestHistoryInsertBulkEmpty(t *testing.T) {
	s := NewSnapshotHistoryStore()
	if err := s.InsertBulk(context.Background(), nil); err != nil {
		t.Errorf("empty insert must be a no-op, got %v", err)
	}
}

func TestHistoryInsertBulkInvalid(t *testing.T) {
	ctx := context.Background()
	s := NewSnapshotHistoryStore()

	err := s.InsertBulk(ctx, []*domain.CoinSnapshot{snapshot(1, 100, 10), {ID: 0}})
	if !errors.Is(err, storage.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	// A rejected batch writes nothing.
	rows, _ := s.GetByCoinID(ctx, 1)
	if len(rows) != 0 {
		t.Errorf("rejected batch must not be partially applied, got %d rows", len(rows))
	}
}

func TestHistoryLatest(t *testing.T) {
	ctx := context.Background()
	s := NewSnapshotHistoryStore()

	err := s.InsertBulk(ctx, []*domain.CoinSnapshot{
		snapshot(2, 50, 10),
		snapshot(1, 100, 10),
		snapshot(1, 120, 30),
		snapshot(2, 55, 20),
		snapshot(1, 110, 20),
	})
	if err != nil {
		t.Fatalf("InsertBulk failed: %v", err)
	}

	latest, err := s.Latest(ctx)
	if err != nil {
		t.Fatalf("Latest failed: %v", err)
	}
	if len(latest) != 2 {
		t.Fatalf("expected 2 coins, got %d", len(latest))
	}
	if latest[0].ID != 1 || latest[0].PriceUSD != 120 {
		t.Errorf("coin 1: expected the newest row, got %+v", latest[0])
	}
	if latest[1].ID != 2 || latest[1].PriceUSD != 55 {
		t.Errorf("coin 2: expected the newest row, got %+v", latest[1])
	}
}
