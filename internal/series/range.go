package series

import (
	"math"

	"finance-tracker/internal/domain"
)

// Per-range synthesis parameters. Wider ranges get more points and a
// proportionally larger wiggle amplitude.
func rangeParams(r domain.Range) (points int, wiggleScale float64) {
	switch r {
	case domain.RangeHour:
		return 60, 0.04
	case domain.RangeDay:
		return 96, 0.06
	case domain.RangeWeek:
		return 112, 0.09
	case domain.RangeMonth:
		return 120, 0.12
	case domain.RangeYear:
		return 132, 0.16
	default:
		return 96, 0.06
	}
}

// totalChangePercent approximates the total percent movement across r
// from the snapshot's summary statistics. Ranges without a native
// statistic compound the best available shorter-period one:
// (1+w)^(targetDays/baseDays) - 1. An unknown movement reads as 0.
func totalChangePercent(c *domain.CoinSnapshot, r domain.Range) float64 {
	switch r {
	case domain.RangeHour:
		return deref(c.PercentChange1h)
	case domain.RangeDay:
		return deref(c.PercentChange24h)
	case domain.RangeWeek:
		if c.PercentChange7d != nil {
			return *c.PercentChange7d
		}
		return compound(deref(c.PercentChange24h), 7)
	case domain.RangeMonth:
		if c.PercentChange7d != nil {
			return compound(*c.PercentChange7d, 30.0/7.0)
		}
		return compound(deref(c.PercentChange24h), 30)
	case domain.RangeYear:
		if c.PercentChange7d != nil {
			return compound(*c.PercentChange7d, 365.0/7.0)
		}
		return compound(deref(c.PercentChange24h), 365)
	default:
		return 0
	}
}

// compound extrapolates a percent change over periods compounding
// steps: ((1+w)^exp - 1), in percent terms.
func compound(changePercent, exp float64) float64 {
	return (math.Pow(1+changePercent/100, exp) - 1) * 100
}

func deref(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

// Chart synthesizes the chart series for one coin over r. The series
// ends at the snapshot's current price and starts at the price implied
// by the range's percent movement. A non-positive implied start (price
// missing or a -100% move) yields nil, which callers render as a
// "no data" placeholder.
func Chart(c *domain.CoinSnapshot, r domain.Range) []float64 {
	if c == nil || c.PriceUSD <= 0 {
		return nil
	}

	change := totalChangePercent(c, r)
	growth := 1 + change/100
	if growth <= 0 || math.IsNaN(growth) || math.IsInf(growth, 0) {
		return nil
	}

	end := c.PriceUSD
	start := end / growth
	points, wiggleScale := rangeParams(r)

	return Generate(start, end, points, Seed(c.ID, r), wiggleScale)
}
