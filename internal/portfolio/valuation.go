// Package portfolio derives valuation, cost-basis, P/L and allocation
// figures from holdings and the latest price data. Every function is
// pure; missing price data degrades to zero contribution instead of
// failing, because assets absent from the latest listings page are the
// expected steady state.
package portfolio

import (
	"sort"

	"finance-tracker/internal/domain"
)

// MarketValue is the current value of one holding. Priced distinguishes
// "priced at zero" from "no quote available"; the totals treat both as
// zero contribution.
type MarketValue struct {
	Value  float64
	Priced bool
}

// HoldingMarketValue values one holding against the latest price map.
func HoldingMarketValue(h *domain.Holding, prices map[int64]float64) MarketValue {
	price, ok := prices[h.CoinID]
	if !ok {
		return MarketValue{}
	}
	return MarketValue{Value: h.Amount * price, Priced: true}
}

// TotalMarketValue sums the market value of all holdings.
func TotalMarketValue(holdings []*domain.Holding, prices map[int64]float64) float64 {
	var total float64
	for _, h := range holdings {
		total += HoldingMarketValue(h, prices).Value
	}
	return total
}

// TotalCostBasis sums amount * costPerUnit over all holdings.
func TotalCostBasis(holdings []*domain.Holding) float64 {
	var total float64
	for _, h := range holdings {
		total += h.CostBasisTotal()
	}
	return total
}

// UnrealizedPL is total market value minus total cost basis.
func UnrealizedPL(holdings []*domain.Holding, prices map[int64]float64) float64 {
	return TotalMarketValue(holdings, prices) - TotalCostBasis(holdings)
}

// DayChange estimates the 24h value movement of the portfolio. Holdings
// whose coin has no snapshot, or whose snapshot lacks a 24h statistic,
// are skipped.
func DayChange(holdings []*domain.Holding, prices map[int64]float64, snapshots []*domain.CoinSnapshot) float64 {
	byID := make(map[int64]*domain.CoinSnapshot, len(snapshots))
	for _, s := range snapshots {
		byID[s.ID] = s
	}

	var change float64
	for _, h := range holdings {
		snap, ok := byID[h.CoinID]
		if !ok {
			continue
		}
		pct, ok := snap.Change24h()
		if !ok {
			continue
		}
		change += HoldingMarketValue(h, prices).Value * (pct / 100)
	}
	return change
}

// Allocation is one coin's share of total portfolio value.
type Allocation struct {
	CoinID int64
	Value  float64
}

// Allocations groups holdings by coin, sums market value per group,
// drops non-positive values and sorts by value descending. The sort is
// stable so equal values keep first-appearance order, which keeps the
// rendered breakdown deterministic.
func Allocations(holdings []*domain.Holding, prices map[int64]float64) []Allocation {
	totals := make(map[int64]float64, len(holdings))
	var order []int64
	for _, h := range holdings {
		if _, seen := totals[h.CoinID]; !seen {
			order = append(order, h.CoinID)
		}
		totals[h.CoinID] += HoldingMarketValue(h, prices).Value
	}

	out := make([]Allocation, 0, len(order))
	for _, id := range order {
		if totals[id] > 0 {
			out = append(out, Allocation{CoinID: id, Value: totals[id]})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Value > out[j].Value
	})
	return out
}

// Summary bundles the derived portfolio figures for one refresh.
type Summary struct {
	TotalMarketValue float64
	TotalCostBasis   float64
	UnrealizedPL     float64
	DayChange        float64
	Allocations      []Allocation
}

// Summarize computes all derived figures in one pass.
func Summarize(holdings []*domain.Holding, prices map[int64]float64, snapshots []*domain.CoinSnapshot) Summary {
	mv := TotalMarketValue(holdings, prices)
	cb := TotalCostBasis(holdings)
	return Summary{
		TotalMarketValue: mv,
		TotalCostBasis:   cb,
		UnrealizedPL:     mv - cb,
		DayChange:        DayChange(holdings, prices, snapshots),
		Allocations:      Allocations(holdings, prices),
	}
}
