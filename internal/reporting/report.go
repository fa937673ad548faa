// Package reporting renders portfolio reports as markdown and CSV.
package reporting

import (
	"time"

	"finance-tracker/internal/domain"
	"finance-tracker/internal/portfolio"
)

// Row is one holding line of a portfolio report.
type Row struct {
	HoldingID     string
	Symbol        string
	Name          string
	Amount        float64
	PriceUSD      float64
	Priced        bool // false when the coin had no quote this refresh
	MarketValue   float64
	CostBasis     float64
	UnrealizedPL  float64
	AllocationPct float64 // share of total market value, 0..100
}

// Report is a rendered-ready portfolio valuation.
type Report struct {
	GeneratedAt time.Time
	Currency    domain.Currency
	Rows        []Row
	Summary     portfolio.Summary
}

// Build derives a report from holdings and the latest snapshot set.
// Holdings without a quote appear with a zero market value and
// Priced=false.
func Build(holdings []*domain.Holding, snapshots []*domain.CoinSnapshot, currency domain.Currency) *Report {
	if !currency.Valid() {
		currency = domain.CurrencyUSD
	}

	prices := make(map[int64]float64, len(snapshots))
	names := make(map[int64]*domain.CoinSnapshot, len(snapshots))
	for _, s := range snapshots {
		prices[s.ID] = s.PriceUSD
		names[s.ID] = s
	}

	summary := portfolio.Summarize(holdings, prices, snapshots)

	rows := make([]Row, 0, len(holdings))
	for _, h := range holdings {
		mv := portfolio.HoldingMarketValue(h, prices)
		row := Row{
			HoldingID:    h.ID,
			Amount:       h.Amount,
			Priced:       mv.Priced,
			MarketValue:  mv.Value,
			CostBasis:    h.CostBasisTotal(),
			UnrealizedPL: mv.Value - h.CostBasisTotal(),
		}
		if snap, ok := names[h.CoinID]; ok {
			row.Symbol = snap.Symbol
			row.Name = snap.Name
			row.PriceUSD = snap.PriceUSD
		}
		if summary.TotalMarketValue > 0 {
			row.AllocationPct = mv.Value / summary.TotalMarketValue * 100
		}
		rows = append(rows, row)
	}

	return &Report{
		GeneratedAt: time.Now().UTC(),
		Currency:    currency,
		Rows:        rows,
		Summary:     summary,
	}
}
