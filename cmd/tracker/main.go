// Package main runs the tracker service: periodic listings, news and
// collection refreshes, portfolio valuation over the stored holdings,
// and an HTTP endpoint exposing status and Prometheus metrics.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"finance-tracker/internal/domain"
	"finance-tracker/internal/observability"
	"finance-tracker/internal/portfolio"
	"finance-tracker/internal/refresh"
	"finance-tracker/internal/sources"
	"finance-tracker/internal/sources/coinmarketcap"
	"finance-tracker/internal/sources/finnhub"
	"finance-tracker/internal/sources/moralis"
	"finance-tracker/internal/sources/newsdata"
	"finance-tracker/internal/sources/stub"
	"finance-tracker/internal/storage"
	chstore "finance-tracker/internal/storage/clickhouse"
	"finance-tracker/internal/storage/memory"
	"finance-tracker/internal/storage/migrations"
	pgstore "finance-tracker/internal/storage/postgres"
)

func main() {
	// Load .env file if present; flags below default to env vars.
	_ = godotenv.Load()

	cmcKey := flag.String("cmc-api-key", os.Getenv("CMC_API_KEY"), "CoinMarketCap API key")
	newsdataKey := flag.String("newsdata-api-key", os.Getenv("NEWSDATA_API_KEY"), "NewsData API key")
	finnhubToken := flag.String("finnhub-token", os.Getenv("FINNHUB_TOKEN"), "Finnhub API token")
	moralisKey := flag.String("moralis-api-key", os.Getenv("MORALIS_API_KEY"), "Moralis API key")
	moralisWallet := flag.String("moralis-wallet", os.Getenv("MORALIS_WALLET"), "wallet address for owned NFT collections")
	postgresDSN := flag.String("postgres-dsn", os.Getenv("POSTGRES_DSN"), "PostgreSQL connection string (empty: in-memory stores)")
	clickhouseDSN := flag.String("clickhouse-dsn", os.Getenv("CLICKHOUSE_DSN"), "ClickHouse connection string (empty: in-memory history)")
	listen := flag.String("listen", ":8080", "HTTP listen address")
	listingsInterval := flag.Duration("listings-interval", time.Minute, "listings refresh interval")
	newsInterval := flag.Duration("news-interval", 5*time.Minute, "news refresh interval")
	collectionsInterval := flag.Duration("collections-interval", 10*time.Minute, "collections refresh interval")
	watch := flag.String("watch", os.Getenv("WATCH_COINS"), "comma-separated coin ids to watch")
	language := flag.String("language", "en", "preferred news language")
	maxPerSource := flag.Int("max-per-source", 2, "max consecutive news items per source")
	useStub := flag.Bool("use-stub", false, "use stub sources instead of live APIs")
	flag.Parse()

	logger := log.New(os.Stdout, "[tracker] ", log.LstdFlags)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Stores
	holdingStore, watchlistStore, closeStores, err := buildStores(ctx, *postgresDSN)
	if err != nil {
		logger.Fatalf("init stores: %v", err)
	}
	defer closeStores()

	if err := seedWatchlist(ctx, watchlistStore, *watch); err != nil {
		logger.Fatalf("seed watchlist: %v", err)
	}

	history, closeHistory, err := buildHistoryStore(ctx, *clickhouseDSN)
	if err != nil {
		logger.Fatalf("init history store: %v", err)
	}
	defer closeHistory()

	// Sources
	var (
		listingsSource    sources.ListingsSource
		metaSource        sources.AssetMetaSource
		feeds             []sources.NewsFeedSource
		collectionsSource sources.CollectionsSource
	)
	if *useStub {
		listingsSource, metaSource, feeds, collectionsSource = stubSources()
		logger.Println("using stub sources")
	} else {
		httpClient := sources.NewClient()
		cmc := coinmarketcap.NewClient("", *cmcKey, httpClient)
		listingsSource = cmc
		metaSource = cmc
		if *newsdataKey != "" {
			feeds = append(feeds, newsdata.NewClient("", *newsdataKey, *language, httpClient))
		}
		if *finnhubToken != "" {
			feeds = append(feeds, finnhub.NewClient("", *finnhubToken, httpClient))
		}
		if *moralisKey != "" {
			collectionsSource = moralis.NewClient("", *moralisKey, *moralisWallet, "", httpClient)
		}
	}

	metrics := observability.NewMetrics("")
	coordinator := refresh.New(refresh.Options{
		Listings:                listingsSource,
		AssetMeta:               metaSource,
		Feeds:                   feeds,
		Collections:             collectionsSource,
		History:                 history,
		Metrics:                 metrics,
		Logger:                  logger,
		PreferredLanguage:       *language,
		MaxConsecutivePerSource: *maxPerSource,
	})

	// HTTP endpoints
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	mux.HandleFunc("/status", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"snapshots":   len(coordinator.Snapshots()),
			"news":        len(coordinator.News()),
			"collections": len(coordinator.Collections()),
		})
	})

	server := &http.Server{Addr: *listen, Handler: mux}
	go func() {
		logger.Printf("listening on %s", *listen)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Printf("http server: %v", err)
			stop()
		}
	}()

	// Initial refresh, then periodic loops.
	runListingsPass(ctx, coordinator, holdingStore, watchlistStore, logger)
	runNewsPass(ctx, coordinator, logger)

	go loop(ctx, *listingsInterval, func() {
		runListingsPass(ctx, coordinator, holdingStore, watchlistStore, logger)
	})
	go loop(ctx, *newsInterval, func() {
		runNewsPass(ctx, coordinator, logger)
	})
	if collectionsSource != nil {
		go loop(ctx, *collectionsInterval, func() {
			if _, err := coordinator.RefreshCollections(ctx, domain.CollectionsTrending); err != nil && err != refresh.ErrAlreadyRunning {
				logger.Printf("collections refresh: %v", err)
			}
		})
	}

	<-ctx.Done()
	logger.Println("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Printf("http shutdown: %v", err)
	}
}

// loop runs fn every interval until ctx is cancelled.
func loop(ctx context.Context, interval time.Duration, fn func()) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			fn()
		}
	}
}

// runListingsPass refreshes listings, logs the resulting portfolio
// valuation and quotes the watched coins.
func runListingsPass(ctx context.Context, c *refresh.Coordinator, holdings storage.HoldingStore, watchlist storage.WatchlistStore, logger *log.Logger) {
	snapshots, err := c.RefreshListings(ctx)
	if err != nil {
		if err != refresh.ErrAlreadyRunning {
			logger.Printf("listings refresh: %v", err)
		}
		return
	}

	held, err := holdings.List(ctx)
	if err != nil {
		logger.Printf("load holdings: %v", err)
		return
	}
	if len(held) > 0 {
		summary := portfolio.Summarize(held, c.PriceMap(), snapshots)
		logger.Printf("portfolio: value=%.2f cost=%.2f pl=%.2f day=%.2f",
			summary.TotalMarketValue, summary.TotalCostBasis, summary.UnrealizedPL, summary.DayChange)
	}

	watched, err := watchlist.List(ctx)
	if err != nil {
		logger.Printf("load watchlist: %v", err)
		return
	}
	for _, entry := range watched {
		for _, snap := range snapshots {
			if snap.ID != entry.CoinID {
				continue
			}
			if chg, ok := snap.Change24h(); ok {
				logger.Printf("watch %s: %.2f (%+.2f%% 24h)", snap.Symbol, snap.PriceUSD, chg)
			} else {
				logger.Printf("watch %s: %.2f", snap.Symbol, snap.PriceUSD)
			}
			break
		}
	}
}

// seedWatchlist adds the coin ids from the -watch flag, skipping ones
// already present.
func seedWatchlist(ctx context.Context, store storage.WatchlistStore, ids string) error {
	if ids == "" {
		return nil
	}
	now := time.Now().UnixMilli()
	for _, field := range strings.Split(ids, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		id, err := strconv.ParseInt(field, 10, 64)
		if err != nil {
			return fmt.Errorf("bad coin id %q: %w", field, err)
		}
		err = store.Add(ctx, &domain.WatchlistEntry{CoinID: id, AddedAt: now})
		if err != nil && !errors.Is(err, storage.ErrDuplicateKey) {
			return err
		}
	}
	return nil
}

// runNewsPass refreshes news, surfacing per-feed failures as warnings.
func runNewsPass(ctx context.Context, c *refresh.Coordinator, logger *log.Logger) {
	result, err := c.RefreshNews(ctx)
	if err != nil {
		if err != refresh.ErrAlreadyRunning {
			logger.Printf("news refresh: %v", err)
		}
		return
	}
	for _, fe := range result.FeedErrors {
		logger.Printf("warning: %v", fe)
	}
}

// buildStores selects the postgres stores when a DSN is given and falls
// back to the in-memory stores otherwise.
func buildStores(ctx context.Context, dsn string) (storage.HoldingStore, storage.WatchlistStore, func(), error) {
	if dsn == "" {
		return memory.NewHoldingStore(), memory.NewWatchlistStore(), func() {}, nil
	}

	pool, err := pgstore.NewPool(ctx, dsn)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := migrations.RunPostgresMigrations(ctx, pool); err != nil {
		pool.Close()
		return nil, nil, nil, fmt.Errorf("postgres migrations: %w", err)
	}
	return pgstore.NewHoldingStore(pool), pgstore.NewWatchlistStore(pool), pool.Close, nil
}

// buildHistoryStore selects the clickhouse sink when a DSN is given and
// falls back to the in-memory history otherwise.
func buildHistoryStore(ctx context.Context, dsn string) (storage.SnapshotHistoryStore, func(), error) {
	if dsn == "" {
		return memory.NewSnapshotHistoryStore(), func() {}, nil
	}

	conn, err := chstore.EnsureDatabase(ctx, dsn)
	if err != nil {
		return nil, nil, err
	}
	if err := migrations.RunClickhouseMigrations(ctx, conn); err != nil {
		conn.Close()
		return nil, nil, fmt.Errorf("clickhouse migrations: %w", err)
	}
	return chstore.NewSnapshotHistoryStore(conn), func() { conn.Close() }, nil
}

// stubSources builds canned sources for offline runs.
func stubSources() (sources.ListingsSource, sources.AssetMetaSource, []sources.NewsFeedSource, sources.CollectionsSource) {
	now := time.Now().UnixMilli()
	pct := func(v float64) *float64 { return &v }

	listings := &stub.Listings{Snapshots: []*domain.CoinSnapshot{
		{ID: 1, Name: "Bitcoin", Symbol: "BTC", Rank: 1, PriceUSD: 64250.12,
			PercentChange1h: pct(0.2), PercentChange24h: pct(-1.4), PercentChange7d: pct(3.1), FetchedAt: now},
		{ID: 1027, Name: "Ethereum", Symbol: "ETH", Rank: 2, PriceUSD: 3120.55,
			PercentChange1h: pct(-0.1), PercentChange24h: pct(2.3), PercentChange7d: pct(-0.8), FetchedAt: now},
	}}
	meta := &stub.AssetMeta{Meta: map[int64]sources.AssetInfo{
		1:    {LogoURL: "https://example.com/btc.png"},
		1027: {LogoURL: "https://example.com/eth.png"},
	}}
	feed := &stub.NewsFeed{FeedName: "sample", Records: []*domain.NewsRecord{
		{Title: "Bitcoin steadies after volatile week", Link: "https://example.com/btc-steadies",
			SourceName: "Sample Wire", Language: "en", PublishedAt: now},
	}}
	return listings, meta, []sources.NewsFeedSource{feed}, nil
}
