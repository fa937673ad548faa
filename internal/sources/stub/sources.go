// Package stub provides in-memory source implementations for tests and
// offline runs.
package stub

import (
	"context"
	"time"

	"finance-tracker/internal/domain"
	"finance-tracker/internal/sources"
)

// Listings is a stub sources.ListingsSource serving canned snapshots.
type Listings struct {
	Snapshots []*domain.CoinSnapshot
	Err       error
}

var _ sources.ListingsSource = (*Listings)(nil)

// FetchListings returns the canned snapshots for page 1 and an empty
// slice for later pages.
func (s *Listings) FetchListings(_ context.Context, page int) ([]*domain.CoinSnapshot, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if page > 1 {
		return nil, nil
	}
	return s.Snapshots, nil
}

// AssetMeta is a stub sources.AssetMetaSource.
type AssetMeta struct {
	Meta  map[int64]sources.AssetInfo
	Err   error
	Calls int // number of FetchAssetMeta invocations
}

var _ sources.AssetMetaSource = (*AssetMeta)(nil)

// FetchAssetMeta returns canned metadata for the requested ids.
func (s *AssetMeta) FetchAssetMeta(_ context.Context, ids []int64) (map[int64]sources.AssetInfo, error) {
	s.Calls++
	if s.Err != nil {
		return nil, s.Err
	}
	out := make(map[int64]sources.AssetInfo, len(ids))
	for _, id := range ids {
		if info, ok := s.Meta[id]; ok {
			out[id] = info
		}
	}
	return out, nil
}

// NewsFeed is a stub sources.NewsFeedSource.
type NewsFeed struct {
	FeedName string
	Records  []*domain.NewsRecord
	Err      error
	Delay    time.Duration // optional artificial latency
}

var _ sources.NewsFeedSource = (*NewsFeed)(nil)

// Name identifies the stub feed.
func (s *NewsFeed) Name() string {
	if s.FeedName == "" {
		return "stub"
	}
	return s.FeedName
}

// FetchNews returns the canned records after the configured delay.
func (s *NewsFeed) FetchNews(ctx context.Context, _ domain.FeedCategory) ([]*domain.NewsRecord, error) {
	if s.Delay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(s.Delay):
		}
	}
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Records, nil
}

// Collections is a stub sources.CollectionsSource.
type Collections struct {
	ByMode map[domain.CollectionMode][]*domain.NFTCollection
	Err    error
}

var _ sources.CollectionsSource = (*Collections)(nil)

// FetchCollections returns the canned collections for the given mode.
func (s *Collections) FetchCollections(_ context.Context, mode domain.CollectionMode) ([]*domain.NFTCollection, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.ByMode[mode], nil
}
