// Package main renders a one-shot portfolio report from the stored
// holdings and a fresh listings fetch.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"finance-tracker/internal/domain"
	"finance-tracker/internal/reporting"
	"finance-tracker/internal/sources"
	"finance-tracker/internal/sources/coinmarketcap"
	"finance-tracker/internal/storage"
	"finance-tracker/internal/storage/memory"
	"finance-tracker/internal/storage/migrations"
	pgstore "finance-tracker/internal/storage/postgres"
)

func main() {
	_ = godotenv.Load()

	cmcKey := flag.String("cmc-api-key", os.Getenv("CMC_API_KEY"), "CoinMarketCap API key")
	postgresDSN := flag.String("postgres-dsn", os.Getenv("POSTGRES_DSN"), "PostgreSQL connection string")
	currency := flag.String("currency", "USD", "display currency (USD, EUR, GBP, JPY)")
	format := flag.String("format", "markdown", "output format: markdown or csv")
	flag.Parse()

	logger := log.New(os.Stderr, "[report] ", log.LstdFlags)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	holdingStore, closeStore, err := openHoldingStore(ctx, *postgresDSN)
	if err != nil {
		logger.Fatalf("init holding store: %v", err)
	}
	defer closeStore()

	holdings, err := holdingStore.List(ctx)
	if err != nil {
		logger.Fatalf("load holdings: %v", err)
	}
	if len(holdings) == 0 {
		logger.Println("no holdings stored; report will be empty")
	}

	var snapshots []*domain.CoinSnapshot
	if *cmcKey != "" {
		cmc := coinmarketcap.NewClient("", *cmcKey, sources.NewClient())
		snapshots, err = cmc.FetchListings(ctx, 1)
		if err != nil {
			logger.Fatalf("fetch listings: %v", err)
		}
	} else {
		logger.Println("no API key set; holdings will be unpriced")
	}

	report := reporting.Build(holdings, snapshots, domain.Currency(*currency))

	switch *format {
	case "markdown":
		fmt.Print(reporting.RenderMarkdown(report))
	case "csv":
		fmt.Print(reporting.RenderCSV(report))
	default:
		logger.Fatalf("unknown format %q", *format)
	}
}

// openHoldingStore selects the postgres store when a DSN is given and
// falls back to the in-memory store otherwise.
func openHoldingStore(ctx context.Context, dsn string) (storage.HoldingStore, func(), error) {
	if dsn == "" {
		return memory.NewHoldingStore(), func() {}, nil
	}

	pool, err := pgstore.NewPool(ctx, dsn)
	if err != nil {
		return nil, nil, err
	}
	if err := migrations.RunPostgresMigrations(ctx, pool); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("postgres migrations: %w", err)
	}
	return pgstore.NewHoldingStore(pool), pool.Close, nil
}
