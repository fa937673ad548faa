// Package refresh coordinates fetch-and-aggregate passes over the
// external sources. Each resource class (listings, news, collections)
// refreshes independently; a refresh triggered while one for the same
// class is still pending is skipped rather than queued.
package refresh

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"finance-tracker/internal/domain"
	"finance-tracker/internal/idcache"
	"finance-tracker/internal/newsfeed"
	"finance-tracker/internal/observability"
	"finance-tracker/internal/series"
	"finance-tracker/internal/sources"
	"finance-tracker/internal/storage"
)

// Coordinator errors.
var (
	// ErrAlreadyRunning is returned when a refresh for the same resource
	// class is still in flight.
	ErrAlreadyRunning = errors.New("refresh already running")

	// ErrAllFeedsFailed is returned when no news feed contributed any
	// records.
	ErrAllFeedsFailed = errors.New("all feeds failed")
)

// Resource classes with independent refresh guards.
const (
	classListings    = "listings"
	classNews        = "news"
	classCollections = "collections"
)

// FeedError records one feed's non-fatal failure during a news refresh.
type FeedError struct {
	Feed string
	Err  error
}

func (e FeedError) Error() string {
	return fmt.Sprintf("feed %s: %v", e.Feed, e.Err)
}

func (e FeedError) Unwrap() error { return e.Err }

// NewsResult is the outcome of one news refresh. FeedErrors carries the
// non-fatal failures of individual feeds; Records is the deduplicated,
// diversity-scheduled list contributed by the feeds that succeeded.
type NewsResult struct {
	Records    []*domain.NewsRecord
	FeedErrors []FeedError
}

// Options configures a Coordinator.
type Options struct {
	Listings    sources.ListingsSource
	AssetMeta   sources.AssetMetaSource // optional
	Feeds       []sources.NewsFeedSource
	Collections sources.CollectionsSource // optional

	History   storage.SnapshotHistoryStore // optional refresh sink
	MetaCache *idcache.Cache               // optional, created when nil and AssetMeta is set
	Metrics   *observability.Metrics       // optional
	Logger    *log.Logger

	ListingPages            int                 // default 1
	NewsCategory            domain.FeedCategory // default crypto
	PreferredLanguage       string              // default "en"
	MaxConsecutivePerSource int                 // default 2
}

// Coordinator owns the refresh guards and the latest aggregation
// results. The pipeline functions it calls are pure; all retained state
// lives here, at the call site.
type Coordinator struct {
	listings    sources.ListingsSource
	assetMeta   sources.AssetMetaSource
	feeds       []sources.NewsFeedSource
	collections sources.CollectionsSource

	history   storage.SnapshotHistoryStore
	metaCache *idcache.Cache
	metrics   *observability.Metrics
	logger    *log.Logger

	listingPages            int
	newsCategory            domain.FeedCategory
	preferredLanguage       string
	maxConsecutivePerSource int

	guardMu sync.Mutex
	running map[string]bool

	stateMu         sync.RWMutex
	lastSnapshots   []*domain.CoinSnapshot
	lastNews        []*domain.NewsRecord
	lastCollections []*domain.NFTCollection
}

// New creates a Coordinator.
func New(opts Options) *Coordinator {
	listingPages := opts.ListingPages
	if listingPages < 1 {
		listingPages = 1
	}

	newsCategory := opts.NewsCategory
	if newsCategory == "" {
		newsCategory = domain.CategoryCrypto
	}

	preferredLanguage := opts.PreferredLanguage
	if preferredLanguage == "" {
		preferredLanguage = "en"
	}

	maxConsecutive := opts.MaxConsecutivePerSource
	if maxConsecutive == 0 {
		maxConsecutive = 2
	}

	metaCache := opts.MetaCache
	if metaCache == nil && opts.AssetMeta != nil {
		metaCache = idcache.New(0)
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	return &Coordinator{
		listings:                opts.Listings,
		assetMeta:               opts.AssetMeta,
		feeds:                   opts.Feeds,
		collections:             opts.Collections,
		history:                 opts.History,
		metaCache:               metaCache,
		metrics:                 opts.Metrics,
		logger:                  logger,
		listingPages:            listingPages,
		newsCategory:            newsCategory,
		preferredLanguage:       preferredLanguage,
		maxConsecutivePerSource: maxConsecutive,
		running:                 make(map[string]bool),
	}
}

// begin claims the guard for a resource class. Returns false when a
// refresh of that class is already in flight.
func (c *Coordinator) begin(class string) bool {
	c.guardMu.Lock()
	defer c.guardMu.Unlock()

	if c.running[class] {
		if c.metrics != nil {
			c.metrics.RefreshesSkipped.WithLabelValues(class).Inc()
		}
		return false
	}
	c.running[class] = true
	return true
}

func (c *Coordinator) end(class string) {
	c.guardMu.Lock()
	defer c.guardMu.Unlock()
	c.running[class] = false
}

// RefreshListings fetches the configured listing pages, resolves asset
// metadata through the TTL cache, records the snapshots in the history
// sink and replaces the cached snapshot set wholesale.
func (c *Coordinator) RefreshListings(ctx context.Context) ([]*domain.CoinSnapshot, error) {
	if !c.begin(classListings) {
		return nil, ErrAlreadyRunning
	}
	defer c.end(classListings)

	start := time.Now()
	var all []*domain.CoinSnapshot
	for page := 1; page <= c.listingPages; page++ {
		snapshots, err := c.listings.FetchListings(ctx, page)
		c.countFetch("listings", err)
		if err != nil {
			c.countRefresh(classListings, observability.OutcomeFailed, start)
			return nil, fmt.Errorf("fetch listings page %d: %w", page, err)
		}
		all = append(all, snapshots...)
		if len(snapshots) == 0 {
			break
		}
	}

	c.resolveAssetMeta(ctx, all)

	if c.history != nil && len(all) > 0 {
		if err := c.history.InsertBulk(ctx, all); err != nil {
			// The sink is auxiliary; a write failure must not lose the refresh.
			c.logger.Printf("snapshot history write failed: %v", err)
		}
	}

	c.stateMu.Lock()
	c.lastSnapshots = all
	c.stateMu.Unlock()

	c.countRefresh(classListings, observability.OutcomeOK, start)
	c.logger.Printf("listings refresh: %d snapshots", len(all))
	return all, nil
}

// resolveAssetMeta fills LogoURL from the cache, fetching only the ids
// the cache does not cover. Metadata is auxiliary: lookup failures are
// logged and the snapshots keep empty logo fields.
func (c *Coordinator) resolveAssetMeta(ctx context.Context, snapshots []*domain.CoinSnapshot) {
	if c.assetMeta == nil || len(snapshots) == 0 {
		return
	}

	var missing []int64
	for _, snap := range snapshots {
		if info, ok := c.metaCache.Get(snap.ID); ok {
			snap.LogoURL = info.LogoURL
		} else {
			missing = append(missing, snap.ID)
		}
	}
	if len(missing) == 0 {
		return
	}

	fetched, err := c.assetMeta.FetchAssetMeta(ctx, missing)
	c.countFetch("asset_meta", err)
	if err != nil {
		c.logger.Printf("asset meta lookup failed for %d ids: %v", len(missing), err)
		return
	}

	for _, snap := range snapshots {
		if info, ok := fetched[snap.ID]; ok {
			snap.LogoURL = info.LogoURL
			c.metaCache.Put(snap.ID, info)
		}
	}
}

// RefreshNews fetches every configured feed concurrently, waits for all
// of them to settle, then deduplicates and diversity-schedules the
// merged records. A failed feed contributes zero records and an entry
// in the result's FeedErrors; only when every feed fails does the
// refresh return ErrAllFeedsFailed.
func (c *Coordinator) RefreshNews(ctx context.Context) (*NewsResult, error) {
	if !c.begin(classNews) {
		return nil, ErrAlreadyRunning
	}
	defer c.end(classNews)

	start := time.Now()

	type feedResult struct {
		records []*domain.NewsRecord
		err     error
	}
	results := make([]feedResult, len(c.feeds))

	// Merge barrier: every fetch settles before aggregation runs.
	var wg sync.WaitGroup
	for i, feed := range c.feeds {
		wg.Add(1)
		go func(i int, feed sources.NewsFeedSource) {
			defer wg.Done()
			records, err := feed.FetchNews(ctx, c.newsCategory)
			results[i] = feedResult{records: records, err: err}
		}(i, feed)
	}
	wg.Wait()

	result := &NewsResult{}
	var merged []*domain.NewsRecord
	for i, r := range results {
		c.countFetch(c.feeds[i].Name(), r.err)
		if r.err != nil {
			result.FeedErrors = append(result.FeedErrors, FeedError{Feed: c.feeds[i].Name(), Err: r.err})
			continue
		}
		merged = append(merged, r.records...)
	}

	if len(c.feeds) > 0 && len(result.FeedErrors) == len(c.feeds) {
		c.countRefresh(classNews, observability.OutcomeFailed, start)
		return result, ErrAllFeedsFailed
	}

	deduped := newsfeed.Resolve(merged, c.preferredLanguage)
	result.Records = newsfeed.Schedule(deduped, c.maxConsecutivePerSource)

	if c.metrics != nil {
		c.metrics.NewsRecordsIn.Add(float64(len(merged)))
		c.metrics.NewsRecordsMerged.Add(float64(len(merged) - len(deduped)))
		c.metrics.NewsRecordsOut.Set(float64(len(result.Records)))
	}

	c.stateMu.Lock()
	c.lastNews = result.Records
	c.stateMu.Unlock()

	outcome := observability.OutcomeOK
	if len(result.FeedErrors) > 0 {
		outcome = observability.OutcomePartial
	}
	c.countRefresh(classNews, outcome, start)
	c.logger.Printf("news refresh: %d records from %d feeds (%d failed)",
		len(result.Records), len(c.feeds), len(result.FeedErrors))
	return result, nil
}

// RefreshCollections fetches NFT collections for the given mode.
func (c *Coordinator) RefreshCollections(ctx context.Context, mode domain.CollectionMode) ([]*domain.NFTCollection, error) {
	if c.collections == nil {
		return nil, nil
	}
	if !c.begin(classCollections) {
		return nil, ErrAlreadyRunning
	}
	defer c.end(classCollections)

	start := time.Now()
	collections, err := c.collections.FetchCollections(ctx, mode)
	c.countFetch("collections", err)
	if err != nil {
		c.countRefresh(classCollections, observability.OutcomeFailed, start)
		return nil, fmt.Errorf("fetch collections: %w", err)
	}

	c.stateMu.Lock()
	c.lastCollections = collections
	c.stateMu.Unlock()

	c.countRefresh(classCollections, observability.OutcomeOK, start)
	return collections, nil
}

// Snapshots returns the snapshot set of the last listings refresh.
func (c *Coordinator) Snapshots() []*domain.CoinSnapshot {
	c.stateMu.RLock()
	defer c.stateMu.RUnlock()
	return c.lastSnapshots
}

// News returns the records of the last news refresh.
func (c *Coordinator) News() []*domain.NewsRecord {
	c.stateMu.RLock()
	defer c.stateMu.RUnlock()
	return c.lastNews
}

// Collections returns the result of the last collections refresh.
func (c *Coordinator) Collections() []*domain.NFTCollection {
	c.stateMu.RLock()
	defer c.stateMu.RUnlock()
	return c.lastCollections
}

// PriceMap builds a coin id to USD price map from the last listings
// refresh.
func (c *Coordinator) PriceMap() map[int64]float64 {
	c.stateMu.RLock()
	defer c.stateMu.RUnlock()

	prices := make(map[int64]float64, len(c.lastSnapshots))
	for _, snap := range c.lastSnapshots {
		prices[snap.ID] = snap.PriceUSD
	}
	return prices
}

// Chart synthesizes the chart series for a coin from the last listings
// refresh. Returns nil when the coin is unknown or the snapshot cannot
// support a series; callers render that as a "no data" placeholder.
func (c *Coordinator) Chart(coinID int64, r domain.Range) []float64 {
	c.stateMu.RLock()
	var snap *domain.CoinSnapshot
	for _, s := range c.lastSnapshots {
		if s.ID == coinID {
			snap = s
			break
		}
	}
	c.stateMu.RUnlock()

	if snap == nil {
		return nil
	}
	points := series.Chart(snap, r)
	if points != nil && c.metrics != nil {
		c.metrics.SeriesGenerated.Inc()
	}
	return points
}

func (c *Coordinator) countFetch(source string, err error) {
	if c.metrics == nil {
		return
	}
	c.metrics.FetchesTotal.WithLabelValues(source).Inc()
	if err != nil {
		c.metrics.FetchErrors.WithLabelValues(source).Inc()
	}
}

func (c *Coordinator) countRefresh(class, outcome string, start time.Time) {
	if c.metrics == nil {
		return
	}
	c.metrics.RefreshesTotal.WithLabelValues(class, outcome).Inc()
	c.metrics.RefreshDuration.WithLabelValues(class).Observe(time.Since(start).Seconds())
}
