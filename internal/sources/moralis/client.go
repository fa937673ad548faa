// Package moralis wraps the Moralis NFT REST API for wallet-owned and
// market-trending collections.
package moralis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"finance-tracker/internal/domain"
	"finance-tracker/internal/sources"
)

// DefaultBaseURL is the production API endpoint.
const DefaultBaseURL = "https://deep-index.moralis.io"

// Client implements sources.CollectionsSource.
type Client struct {
	baseURL string
	apiKey  string
	wallet  string // wallet address for the owned mode
	chain   string
	http    *sources.Client
}

var _ sources.CollectionsSource = (*Client)(nil)

// NewClient creates a Moralis client. An empty baseURL selects the
// production endpoint; an empty chain selects Ethereum mainnet.
func NewClient(baseURL, apiKey, wallet, chain string, httpClient *sources.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if chain == "" {
		chain = "eth"
	}
	if httpClient == nil {
		httpClient = sources.NewClient()
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		wallet:  wallet,
		chain:   chain,
		http:    httpClient,
	}
}

// collectionsResponse mirrors /api/v2.2/{address}/nft/collections and
// /api/v2.2/market-data/nfts/top-collections.
type collectionsResponse struct {
	Result []struct {
		TokenAddress   string   `json:"token_address"`
		Name           string   `json:"name"`
		Symbol         string   `json:"symbol"`
		CollectionLogo string   `json:"collection_logo"`
		FloorPrice     *float64 `json:"floor_price,string"`
		Count          int      `json:"count"`
		VerifiedAt     string   `json:"verified_collection_at"`
	} `json:"result"`
}

// FetchCollections returns collections for the given mode.
func (c *Client) FetchCollections(ctx context.Context, mode domain.CollectionMode) ([]*domain.NFTCollection, error) {
	var url string
	switch mode {
	case domain.CollectionsOwned:
		url = fmt.Sprintf("%s/api/v2.2/%s/nft/collections?chain=%s", c.baseURL, c.wallet, c.chain)
	case domain.CollectionsTrending:
		url = fmt.Sprintf("%s/api/v2.2/market-data/nfts/top-collections?chain=%s", c.baseURL, c.chain)
	default:
		return nil, fmt.Errorf("unsupported collection mode %q", mode)
	}

	var resp collectionsResponse
	if err := c.http.GetJSON(ctx, url, map[string]string{"X-API-Key": c.apiKey}, &resp); err != nil {
		return nil, fmt.Errorf("fetch %s collections: %w", mode, err)
	}

	now := time.Now().UnixMilli()
	out := make([]*domain.NFTCollection, 0, len(resp.Result))
	for _, r := range resp.Result {
		var verifiedAt int64
		if r.VerifiedAt != "" {
			if ts, err := time.Parse(time.RFC3339, r.VerifiedAt); err == nil {
				verifiedAt = ts.UnixMilli()
			}
		}
		out = append(out, &domain.NFTCollection{
			Address:    r.TokenAddress,
			Name:       r.Name,
			Symbol:     r.Symbol,
			ImageURL:   r.CollectionLogo,
			FloorPrice: r.FloorPrice,
			ItemCount:  r.Count,
			VerifiedAt: verifiedAt,
			FetchedAt:  now,
		})
	}
	return out, nil
}
