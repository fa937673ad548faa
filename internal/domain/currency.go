package domain

// Currency identifies a display currency. Conversion uses a static local
// rate table; there is no live FX lookup.
type Currency string

// Supported display currencies.
const (
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyGBP Currency = "GBP"
	CurrencyJPY Currency = "JPY"
)

// Valid reports whether c is one of the supported currencies.
func (c Currency) Valid() bool {
	switch c {
	case CurrencyUSD, CurrencyEUR, CurrencyGBP, CurrencyJPY:
		return true
	default:
		return false
	}
}

// RatePerUSD returns the static conversion rate from USD into c.
// Unknown currencies convert at 1:1.
func (c Currency) RatePerUSD() float64 {
	switch c {
	case CurrencyUSD:
		return 1.0
	case CurrencyEUR:
		return 0.92
	case CurrencyGBP:
		return 0.79
	case CurrencyJPY:
		return 147.0
	default:
		return 1.0
	}
}

// Symbol returns the display symbol for c.
func (c Currency) Symbol() string {
	switch c {
	case CurrencyUSD:
		return "$"
	case CurrencyEUR:
		return "€"
	case CurrencyGBP:
		return "£"
	case CurrencyJPY:
		return "¥"
	default:
		return "$"
	}
}

// Convert converts a USD amount into c using the static rate table.
func (c Currency) Convert(usd float64) float64 {
	return usd * c.RatePerUSD()
}
