// Package newsdata wraps the NewsData.io latest-news REST API.
package newsdata

import (
	"context"
	"fmt"
	"strings"
	"time"

	"finance-tracker/internal/domain"
	"finance-tracker/internal/sources"
)

// DefaultBaseURL is the production API endpoint.
const DefaultBaseURL = "https://newsdata.io"

// publishedAtLayout is NewsData's date format ("2024-01-15 08:30:00").
const publishedAtLayout = "2006-01-02 15:04:05"

// Client implements sources.NewsFeedSource.
type Client struct {
	baseURL  string
	apiKey   string
	language string
	http     *sources.Client
}

var _ sources.NewsFeedSource = (*Client)(nil)

// NewClient creates a NewsData client. An empty baseURL selects the
// production endpoint; an empty language requests English.
func NewClient(baseURL, apiKey, language string, httpClient *sources.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if language == "" {
		language = "en"
	}
	if httpClient == nil {
		httpClient = sources.NewClient()
	}
	return &Client{
		baseURL:  strings.TrimSuffix(baseURL, "/"),
		apiKey:   apiKey,
		language: language,
		http:     httpClient,
	}
}

// Name identifies the feed in logs and error reports.
func (c *Client) Name() string { return "newsdata" }

// newsResponse mirrors /api/1/latest.
type newsResponse struct {
	Results []struct {
		ArticleID   string   `json:"article_id"`
		Title       string   `json:"title"`
		Link        string   `json:"link"`
		PubDate     string   `json:"pubDate"`
		SourceID    string   `json:"source_id"`
		SourceName  string   `json:"source_name"`
		Language    string   `json:"language"`
		ImageURL    string   `json:"image_url"`
		Description string   `json:"description"`
		Creator     []string `json:"creator"`
	} `json:"results"`
}

// queryTerm maps a feed category onto a NewsData query string.
func queryTerm(category domain.FeedCategory) string {
	switch category {
	case domain.CategoryCrypto:
		return "q=cryptocurrency&category=business"
	case domain.CategoryBusiness:
		return "category=business"
	case domain.CategoryGeneral:
		return "category=top"
	default:
		return "category=top"
	}
}

// FetchNews returns the feed's current articles for a category.
// Optional fields missing from the payload decode to zero values.
func (c *Client) FetchNews(ctx context.Context, category domain.FeedCategory) ([]*domain.NewsRecord, error) {
	url := fmt.Sprintf("%s/api/1/latest?apikey=%s&language=%s&%s",
		c.baseURL, c.apiKey, c.language, queryTerm(category))

	var resp newsResponse
	if err := c.http.GetJSON(ctx, url, nil, &resp); err != nil {
		return nil, fmt.Errorf("fetch newsdata feed: %w", err)
	}

	out := make([]*domain.NewsRecord, 0, len(resp.Results))
	for _, r := range resp.Results {
		var publishedAt int64
		if r.PubDate != "" {
			if ts, err := time.Parse(publishedAtLayout, r.PubDate); err == nil {
				publishedAt = ts.UnixMilli()
			}
		}
		out = append(out, &domain.NewsRecord{
			ID:          r.ArticleID,
			Title:       r.Title,
			Link:        r.Link,
			PublishedAt: publishedAt,
			SourceID:    r.SourceID,
			SourceName:  r.SourceName,
			Language:    r.Language,
			ImageURL:    r.ImageURL,
			Description: r.Description,
		})
	}
	return out, nil
}
