package clickhouse

import (
	"context"
	"fmt"

	"finance-tracker/internal/domain"
	"finance-tracker/internal/storage"
)

// SnapshotHistoryStore implements storage.SnapshotHistoryStore using
// ClickHouse. The backing table is a MergeTree ordered by
// (coin_id, fetched_at); rows are append-only.
type SnapshotHistoryStore struct {
	conn *Conn
}

// NewSnapshotHistoryStore creates a new SnapshotHistoryStore.
func NewSnapshotHistoryStore(conn *Conn) *SnapshotHistoryStore {
	return &SnapshotHistoryStore{conn: conn}
}

// Compile-time interface check.
var _ storage.SnapshotHistoryStore = (*SnapshotHistoryStore)(nil)

const snapshotColumns = `
	coin_id, name, symbol, rank, price_usd,
	pct_change_1h, pct_change_24h, pct_change_7d,
	market_cap, volume_24h, logo_url, fetched_at
`

// InsertBulk appends one refresh's snapshots.
func (s *SnapshotHistoryStore) InsertBulk(ctx context.Context, snapshots []*domain.CoinSnapshot) error {
	if len(snapshots) == 0 {
		return nil
	}
	for _, snap := range snapshots {
		if snap == nil || snap.ID == 0 {
			return storage.ErrInvalidInput
		}
	}

	batch, err := s.conn.PrepareBatch(ctx, `INSERT INTO snapshot_history (`+snapshotColumns+`)`)
	if err != nil {
		return fmt.Errorf("prepare batch: %w", err)
	}

	for _, snap := range snapshots {
		err = batch.Append(
			snap.ID, snap.Name, snap.Symbol, int32(snap.Rank), snap.PriceUSD,
			snap.PercentChange1h, snap.PercentChange24h, snap.PercentChange7d,
			snap.MarketCap, snap.Volume24h, snap.LogoURL, snap.FetchedAt,
		)
		if err != nil {
			return fmt.Errorf("append to batch: %w", err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("send batch: %w", err)
	}
	return nil
}

// GetByCoinID retrieves all recorded snapshots for a coin, ordered by
// fetch time ASC.
func (s *SnapshotHistoryStore) GetByCoinID(ctx context.Context, coinID int64) ([]*domain.CoinSnapshot, error) {
	query := `
		SELECT ` + snapshotColumns + `
		FROM snapshot_history
		WHERE coin_id = ?
		ORDER BY fetched_at ASC
	`

	rows, err := s.conn.Query(ctx, query, coinID)
	if err != nil {
		return nil, fmt.Errorf("query snapshots: %w", err)
	}
	defer rows.Close()

	return scanSnapshots(rows)
}

// Latest retrieves the most recently fetched snapshot per coin, ordered
// by coin id ASC.
func (s *SnapshotHistoryStore) Latest(ctx context.Context) ([]*domain.CoinSnapshot, error) {
	query := `
		SELECT ` + snapshotColumns + `
		FROM snapshot_history
		ORDER BY coin_id ASC, fetched_at DESC
		LIMIT 1 BY coin_id
	`

	rows, err := s.conn.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query latest snapshots: %w", err)
	}
	defer rows.Close()

	return scanSnapshots(rows)
}

// rowScanner matches the Scan method of driver.Rows.
type rowScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanSnapshots(rows rowScanner) ([]*domain.CoinSnapshot, error) {
	var out []*domain.CoinSnapshot
	for rows.Next() {
		var (
			snap domain.CoinSnapshot
			rank int32
		)
		err := rows.Scan(
			&snap.ID, &snap.Name, &snap.Symbol, &rank, &snap.PriceUSD,
			&snap.PercentChange1h, &snap.PercentChange24h, &snap.PercentChange7d,
			&snap.MarketCap, &snap.Volume24h, &snap.LogoURL, &snap.FetchedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		snap.Rank = int(rank)
		out = append(out, &snap)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate snapshots: %w", err)
	}
	return out, nil
}
