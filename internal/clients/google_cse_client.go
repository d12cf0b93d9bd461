package clients

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"time"

	"github.com/acharan-13-05/Share-of-Voice-Analyzer/internal/models"
)

const (
	CSE_ENDPOINT   = "https://www.googleapis.com/customsearch/v1"
	CSE_PAGE_SIZE  = 10
	CSE_PAGE_DELAY = 100 * time.Millisecond
)

// GoogleCSEClient queries the Google Custom Search JSON API.
type GoogleCSEClient struct {
	api       apiClient
	APIKey    string
	CX        string
	Endpoint  string
	PageDelay time.Duration
}

func NewGoogleCSEClient(apiKey, cx string) *GoogleCSEClient {
	return &GoogleCSEClient{
		api:       newAPIClient("GoogleCSEClient"),
		APIKey:    apiKey,
		CX:        cx,
		Endpoint:  CSE_ENDPOINT,
		PageDelay: CSE_PAGE_DELAY,
	}
}

// Search pages through results until limit results are collected or there is
// no next page. Results gathered before a failing page are returned with the error.
func (c *GoogleCSEClient) Search(ctx context.Context, query string, limit int) ([]models.WebResult, error) {
	if c.APIKey == "" || c.CX == "" {
		return nil, fmt.Errorf("[GoogleCSEClient] CSE key or CX: %w", ErrMissingAPIKey)
	}

	if limit <= 0 {
		return nil, nil
	}

	results := make([]models.WebResult, 0, limit)
	start := 1

	for len(results) < limit {
		params := url.Values{}
		params.Set("key", c.APIKey)
		params.Set("cx", c.CX)
		params.Set("q", query)
		params.Set("start", strconv.Itoa(start))

		var page models.CSEResponse
		if err := c.api.getJSON(ctx, c.Endpoint, params, &page); err != nil {
			slog.Warn("[GoogleCSEClient] Search request failed",
				slog.String("query", query),
				slog.Int("start", start),
				slog.String("error", err.Error()))
			return results, err
		}

		for _, item := range page.Items {
			results = append(results, models.WebResult{
				Title:       item.Title,
				Snippet:     item.Snippet,
				Link:        item.Link,
				DisplayLink: item.DisplayLink,
			})
			if len(results) >= limit {
				break
			}
		}

		if len(page.Queries.NextPage) == 0 || len(page.Items) == 0 {
			break
		}
		start += CSE_PAGE_SIZE

		if err := sleepCtx(ctx, c.PageDelay); err != nil {
			return results, err
		}
	}

	slog.Info("[GoogleCSEClient] Fetched web results",
		slog.String("query", query),
		slog.Int("count", len(results)))
	return results, nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
