// Package finnhub wraps the Finnhub market-news REST API.
package finnhub

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"finance-tracker/internal/domain"
	"finance-tracker/internal/sources"
)

// DefaultBaseURL is the production API endpoint.
const DefaultBaseURL = "https://finnhub.io"

// Client implements sources.NewsFeedSource.
type Client struct {
	baseURL string
	token   string
	http    *sources.Client
}

var _ sources.NewsFeedSource = (*Client)(nil)

// NewClient creates a Finnhub client. An empty baseURL selects the
// production endpoint.
func NewClient(baseURL, token string, httpClient *sources.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = sources.NewClient()
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		token:   token,
		http:    httpClient,
	}
}

// Name identifies the feed in logs and error reports.
func (c *Client) Name() string { return "finnhub" }

// article mirrors one element of the /api/v1/news array.
type article struct {
	ID       int64  `json:"id"`
	Headline string `json:"headline"`
	URL      string `json:"url"`
	Datetime int64  `json:"datetime"` // Unix seconds
	Source   string `json:"source"`
	Image    string `json:"image"`
	Summary  string `json:"summary"`
	Category string `json:"category"`
}

// newsCategory maps a feed category onto a Finnhub category tag.
func newsCategory(category domain.FeedCategory) string {
	switch category {
	case domain.CategoryCrypto:
		return "crypto"
	case domain.CategoryBusiness:
		return "merger"
	case domain.CategoryGeneral:
		return "general"
	default:
		return "general"
	}
}

// FetchNews returns the feed's current articles for a category.
// Finnhub articles carry no language tag; the field is left empty.
func (c *Client) FetchNews(ctx context.Context, category domain.FeedCategory) ([]*domain.NewsRecord, error) {
	url := fmt.Sprintf("%s/api/v1/news?category=%s&token=%s",
		c.baseURL, newsCategory(category), c.token)

	var articles []article
	if err := c.http.GetJSON(ctx, url, nil, &articles); err != nil {
		return nil, fmt.Errorf("fetch finnhub feed: %w", err)
	}

	out := make([]*domain.NewsRecord, 0, len(articles))
	for _, a := range articles {
		var id string
		if a.ID != 0 {
			id = strconv.FormatInt(a.ID, 10)
		}
		var publishedAt int64
		if a.Datetime > 0 {
			publishedAt = a.Datetime * 1000
		}
		out = append(out, &domain.NewsRecord{
			ID:          id,
			Title:       a.Headline,
			Link:        a.URL,
			PublishedAt: publishedAt,
			SourceName:  a.Source,
			ImageURL:    a.Image,
			Description: a.Summary,
		})
	}
	return out, nil
}
