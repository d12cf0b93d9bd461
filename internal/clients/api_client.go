package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

// apiClient issues GET requests against a JSON API, retrying rate limits and
// server errors with exponential backoff.
type apiClient struct {
	name       string
	client     *http.Client
	maxRetries int
	backoff    time.Duration
}

func newAPIClient(name string) apiClient {
	return apiClient{
		name:       name,
		client:     &http.Client{Timeout: REQUEST_TIMEOUT},
		maxRetries: MAX_RETRIES,
		backoff:    INITIAL_BACKOFF,
	}
}

// StatusError is returned for responses that are not retried.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code %d: %s", e.StatusCode, e.Body)
}

func (a apiClient) getJSON(ctx context.Context, endpoint string, params url.Values, out any) error {
	u, err := url.Parse(endpoint)
	if err != nil {
		return fmt.Errorf("[%s] failed to parse URL: %w", a.name, err)
	}
	u.RawQuery = params.Encode()

	backoff := a.backoff
	var lastErr error

	for attempt := 1; attempt <= a.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
		if err != nil {
			return fmt.Errorf("[%s] failed to build request: %w", a.name, err)
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", USER_AGENT)

		retry, err := a.do(req, out)
		if err == nil {
			return nil
		}
		if !retry {
			return err
		}
		lastErr = err

		slog.Warn(fmt.Sprintf("[%s] Request failed, will retry", a.name),
			slog.Int("attempt", attempt),
			slog.Duration("backoff", backoff),
			slog.String("error", err.Error()))

		if attempt == a.maxRetries {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
		if backoff > MAX_BACKOFF {
			backoff = MAX_BACKOFF
		}
	}

	return fmt.Errorf("[%s] failed after %d attempts: %w", a.name, a.maxRetries, lastErr)
}

// do performs one request; the bool reports whether a failure is worth retrying.
func (a apiClient) do(req *http.Request, out any) (bool, error) {
	resp, err := a.client.Do(req)
	if err != nil {
		if req.Context().Err() != nil {
			return false, req.Context().Err()
		}
		return true, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return true, fmt.Errorf("failed to read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		if err := json.Unmarshal(body, out); err != nil {
			slog.Error(fmt.Sprintf("[%s] Failed to unmarshal response", a.name),
				slog.String("error", err.Error()),
				getPreview(body))
			return false, fmt.Errorf("failed to unmarshal response: %w", err)
		}
		return false, nil
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return true, &StatusError{StatusCode: resp.StatusCode, Body: preview(body)}
	default:
		return false, &StatusError{StatusCode: resp.StatusCode, Body: preview(body)}
	}
}

func preview(body []byte) string {
	raw := string(body)
	if len(raw) > 300 {
		raw = raw[:300]
	}
	return raw
}

func getPreview(body []byte) slog.Attr {
	return slog.String("raw_response", preview(body))
}
