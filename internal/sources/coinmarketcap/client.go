// Package coinmarketcap wraps the CoinMarketCap Pro REST API for coin
// listings and per-asset metadata.
package coinmarketcap

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"finance-tracker/internal/domain"
	"finance-tracker/internal/sources"
)

// DefaultBaseURL is the production API endpoint.
const DefaultBaseURL = "https://pro-api.coinmarketcap.com"

// pageSize is the number of listings requested per page.
const pageSize = 100

// Client implements sources.ListingsSource and sources.AssetMetaSource.
type Client struct {
	baseURL string
	apiKey  string
	http    *sources.Client
}

// Compile-time interface checks.
var (
	_ sources.ListingsSource  = (*Client)(nil)
	_ sources.AssetMetaSource = (*Client)(nil)
)

// NewClient creates a CoinMarketCap client. An empty baseURL selects the
// production endpoint.
func NewClient(baseURL, apiKey string, httpClient *sources.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = sources.NewClient()
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		http:    httpClient,
	}
}

// listingsResponse mirrors /v1/cryptocurrency/listings/latest.
type listingsResponse struct {
	Data []struct {
		ID     int64  `json:"id"`
		Name   string `json:"name"`
		Symbol string `json:"symbol"`
		Rank   int    `json:"cmc_rank"`
		Quote  struct {
			USD struct {
				Price            float64  `json:"price"`
				PercentChange1h  *float64 `json:"percent_change_1h"`
				PercentChange24h *float64 `json:"percent_change_24h"`
				PercentChange7d  *float64 `json:"percent_change_7d"`
				MarketCap        *float64 `json:"market_cap"`
				Volume24h        *float64 `json:"volume_24h"`
			} `json:"USD"`
		} `json:"quote"`
	} `json:"data"`
}

// FetchListings returns one page of USD-quoted listings. Pages start at 1.
func (c *Client) FetchListings(ctx context.Context, page int) ([]*domain.CoinSnapshot, error) {
	if page < 1 {
		page = 1
	}
	start := (page-1)*pageSize + 1
	url := fmt.Sprintf("%s/v1/cryptocurrency/listings/latest?start=%d&limit=%d&convert=USD",
		c.baseURL, start, pageSize)

	var resp listingsResponse
	if err := c.http.GetJSON(ctx, url, c.headers(), &resp); err != nil {
		return nil, fmt.Errorf("fetch listings page %d: %w", page, err)
	}

	now := time.Now().UnixMilli()
	out := make([]*domain.CoinSnapshot, 0, len(resp.Data))
	for _, d := range resp.Data {
		usd := d.Quote.USD
		out = append(out, &domain.CoinSnapshot{
			ID:               d.ID,
			Name:             d.Name,
			Symbol:           d.Symbol,
			Rank:             d.Rank,
			PriceUSD:         usd.Price,
			PercentChange1h:  usd.PercentChange1h,
			PercentChange24h: usd.PercentChange24h,
			PercentChange7d:  usd.PercentChange7d,
			MarketCap:        usd.MarketCap,
			Volume24h:        usd.Volume24h,
			FetchedAt:        now,
		})
	}
	return out, nil
}

// infoResponse mirrors /v2/cryptocurrency/info.
type infoResponse struct {
	Data map[string]struct {
		Logo string `json:"logo"`
	} `json:"data"`
}

// FetchAssetMeta returns logo metadata for the given ids.
func (c *Client) FetchAssetMeta(ctx context.Context, ids []int64) (map[int64]sources.AssetInfo, error) {
	if len(ids) == 0 {
		return map[int64]sources.AssetInfo{}, nil
	}

	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	url := fmt.Sprintf("%s/v2/cryptocurrency/info?id=%s", c.baseURL, strings.Join(parts, ","))

	var resp infoResponse
	if err := c.http.GetJSON(ctx, url, c.headers(), &resp); err != nil {
		return nil, fmt.Errorf("fetch asset meta: %w", err)
	}

	out := make(map[int64]sources.AssetInfo, len(resp.Data))
	for idStr, d := range resp.Data {
		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil {
			continue
		}
		out[id] = sources.AssetInfo{LogoURL: d.Logo}
	}
	return out, nil
}

func (c *Client) headers() map[string]string {
	return map[string]string{"X-CMC_PRO_API_KEY": c.apiKey}
}
