package domain

// CoinSnapshot is a point-in-time read of one tradable asset from the
// listings source. Snapshots are immutable once fetched and replaced
// wholesale on every refresh.
type CoinSnapshot struct {
	ID               int64    // listings-provider asset id
	Name             string   // display name, e.g. "Bitcoin"
	Symbol           string   // ticker symbol, e.g. "BTC"
	Rank             int      // market cap rank, 0 when unranked
	PriceUSD         float64  // latest quote in USD
	PercentChange1h  *float64 // nil when the provider omitted the stat
	PercentChange24h *float64
	PercentChange7d  *float64
	MarketCap        *float64
	Volume24h        *float64
	LogoURL          string // filled in from the asset-meta source
	FetchedAt        int64  // Unix timestamp in milliseconds
}

// Change24h returns the 24h percent change and whether it is known.
func (c *CoinSnapshot) Change24h() (float64, bool) {
	if c.PercentChange24h == nil {
		return 0, false
	}
	return *c.PercentChange24h, true
}

// Range identifies a chart display range.
type Range string

// Supported chart ranges.
const (
	RangeHour  Range = "1h"
	RangeDay   Range = "24h"
	RangeWeek  Range = "7d"
	RangeMonth Range = "30d"
	RangeYear  Range = "1y"
)

// Valid reports whether r is one of the supported ranges.
func (r Range) Valid() bool {
	switch r {
	case RangeHour, RangeDay, RangeWeek, RangeMonth, RangeYear:
		return true
	default:
		return false
	}
}
