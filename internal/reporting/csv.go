package reporting

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// RenderCSV renders the report's holding rows as a CSV string. Amounts
// stay in USD; the display currency only affects markdown output.
func RenderCSV(r *Report) string {
	var sb strings.Builder

	sb.WriteString("holding_id,symbol,name,amount,price_usd,priced,market_value,cost_basis,unrealized_pl,allocation_pct\n")

	for _, row := range r.Rows {
		sb.WriteString(fmt.Sprintf("%s,%s,%s,%s,%s,%t,%s,%s,%s,%s\n",
			row.HoldingID,
			row.Symbol,
			row.Name,
			decimal.NewFromFloat(row.Amount).String(),
			decimal.NewFromFloat(row.PriceUSD).Round(8).String(),
			row.Priced,
			decimal.NewFromFloat(row.MarketValue).Round(2).StringFixed(2),
			decimal.NewFromFloat(row.CostBasis).Round(2).StringFixed(2),
			decimal.NewFromFloat(row.UnrealizedPL).Round(2).StringFixed(2),
			decimal.NewFromFloat(row.AllocationPct).Round(2).StringFixed(2),
		))
	}

	return sb.String()
}
