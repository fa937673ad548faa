// Package sources defines the data-source collaborators the tracker
// core consumes, plus thin HTTP clients for each provider. All sources
// are stateless, idempotent GETs; failures are scoped to one source and
// never cascade into the others.
package sources

import (
	"context"

	"finance-tracker/internal/domain"
)

// AssetInfo is the auxiliary per-asset metadata returned by the meta
// source.
type AssetInfo struct {
	LogoURL string
}

// ListingsSource provides paged price/market listings.
type ListingsSource interface {
	// FetchListings returns one page of coin snapshots. Pages start at 1.
	FetchListings(ctx context.Context, page int) ([]*domain.CoinSnapshot, error)
}

// AssetMetaSource provides auxiliary per-asset metadata lookups.
type AssetMetaSource interface {
	// FetchAssetMeta returns metadata for the given asset ids. Ids the
	// provider does not know are simply absent from the result.
	FetchAssetMeta(ctx context.Context, ids []int64) (map[int64]AssetInfo, error)
}

// NewsFeedSource provides raw articles from one feed. Implementations
// must tolerate missing optional fields.
type NewsFeedSource interface {
	// Name identifies the feed in logs and error reports.
	Name() string

	// FetchNews returns the feed's current articles for a category.
	FetchNews(ctx context.Context, category domain.FeedCategory) ([]*domain.NewsRecord, error)
}

// CollectionsSource provides NFT collection listings.
type CollectionsSource interface {
	// FetchCollections returns collections for the given mode.
	FetchCollections(ctx context.Context, mode domain.CollectionMode) ([]*domain.NFTCollection, error)
}
