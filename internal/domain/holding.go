package domain

// Holding is a user-owned position. Holdings are created, edited and
// deleted by the user and persisted through a storage.HoldingStore.
type Holding struct {
	ID          string  // stable id assigned at creation
	CoinID      int64   // FK to CoinSnapshot.ID
	Amount      float64 // units held, > 0
	CostPerUnit float64 // acquisition price per unit in USD, > 0
	Note        string
	AcquiredAt  int64 // Unix timestamp in milliseconds, 0 when unknown
	CreatedAt   int64 // record creation timestamp (ms)
}

// CostBasisTotal is the derived total acquisition cost. It is never
// stored alongside the holding.
func (h *Holding) CostBasisTotal() float64 {
	return h.Amount * h.CostPerUnit
}

// WatchlistEntry marks one coin as watched.
type WatchlistEntry struct {
	CoinID  int64
	AddedAt int64 // Unix timestamp in milliseconds
}
