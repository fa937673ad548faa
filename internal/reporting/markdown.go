package reporting

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"finance-tracker/internal/domain"
)

// money formats a USD amount in the report currency, rounded to two
// decimal places.
func money(usd float64, currency domain.Currency) string {
	amount := decimal.NewFromFloat(currency.Convert(usd)).Round(2)
	return currency.Symbol() + amount.StringFixed(2)
}

// RenderMarkdown renders the report as a markdown document.
func RenderMarkdown(r *Report) string {
	var sb strings.Builder

	sb.WriteString("# Portfolio Report\n\n")
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", r.GeneratedAt.Format("2006-01-02 15:04:05 UTC")))

	sb.WriteString("## Summary\n\n")
	sb.WriteString(fmt.Sprintf("- Market value: %s\n", money(r.Summary.TotalMarketValue, r.Currency)))
	sb.WriteString(fmt.Sprintf("- Cost basis: %s\n", money(r.Summary.TotalCostBasis, r.Currency)))
	sb.WriteString(fmt.Sprintf("- Unrealized P/L: %s\n", money(r.Summary.UnrealizedPL, r.Currency)))
	sb.WriteString(fmt.Sprintf("- 24h change: %s\n\n", money(r.Summary.DayChange, r.Currency)))

	sb.WriteString("## Holdings\n\n")
	sb.WriteString("| Asset | Amount | Price | Value | Cost | P/L | Alloc |\n")
	sb.WriteString("|---|---|---|---|---|---|---|\n")
	for _, row := range r.Rows {
		asset := row.Symbol
		if asset == "" {
			asset = row.HoldingID
		}
		price := money(row.PriceUSD, r.Currency)
		if !row.Priced {
			price = "n/a"
		}
		sb.WriteString(fmt.Sprintf("| %s | %g | %s | %s | %s | %s | %.1f%% |\n",
			asset,
			row.Amount,
			price,
			money(row.MarketValue, r.Currency),
			money(row.CostBasis, r.Currency),
			money(row.UnrealizedPL, r.Currency),
			row.AllocationPct,
		))
	}

	return sb.String()
}
