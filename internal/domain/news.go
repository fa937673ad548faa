package domain

// NewsRecord is one news item from any feed, already decoded from the
// provider wire format. Records live in memory for the duration of one
// aggregation pass and are never persisted.
type NewsRecord struct {
	ID          string // source-provided id, may be empty
	Title       string
	Link        string // absolute URL or empty
	PublishedAt int64  // Unix timestamp in milliseconds, 0 when the feed gave no date
	SourceID    string // provider feed/channel id, may be empty
	SourceName  string // human-readable source, e.g. "CoinDesk"
	Language    string // locale tag, e.g. "en" or "en-US", may be empty
	ImageURL    string
	Description string
}

// HasContent reports whether the record has at least a title or a link.
// Records without either carry no identity and are dropped before
// deduplication.
func (r *NewsRecord) HasContent() bool {
	return r.Title != "" || r.Link != ""
}

// FeedCategory identifies a news feed category.
type FeedCategory string

// Supported feed categories.
const (
	CategoryCrypto   FeedCategory = "crypto"
	CategoryBusiness FeedCategory = "business"
	CategoryGeneral  FeedCategory = "general"
)

// Valid reports whether c is one of the supported categories.
func (c FeedCategory) Valid() bool {
	switch c {
	case CategoryCrypto, CategoryBusiness, CategoryGeneral:
		return true
	default:
		return false
	}
}
