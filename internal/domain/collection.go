package domain

// NFTCollection is one NFT collection row from the collections source.
// Collections share the fetch/aggregate shape of coin listings but carry
// no derived analytics.
type NFTCollection struct {
	Address     string // contract address
	Name        string
	Symbol      string
	ImageURL    string
	FloorPrice  *float64 // native units, nil when unknown
	ItemCount   int      // owned count in owned mode, collection size otherwise
	VerifiedAt  int64    // Unix timestamp in milliseconds, 0 when unverified
	FetchedAt   int64    // Unix timestamp in milliseconds
	Description string
}

// CollectionMode selects which collections the source returns.
type CollectionMode string

// Supported collection modes.
const (
	CollectionsOwned    CollectionMode = "owned"    // collections held by the configured wallet
	CollectionsTrending CollectionMode = "trending" // market-wide trending collections
)

// Valid reports whether m is one of the supported modes.
func (m CollectionMode) Valid() bool {
	switch m {
	case CollectionsOwned, CollectionsTrending:
		return true
	default:
		return false
	}
}
