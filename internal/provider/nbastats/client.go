// Package nbastats provides the HTTP client for the stats.nba.com endpoints
// used by career ingestion.
//
// Every endpoint answers with the same envelope: a list of named result sets,
// each a header row plus a row set of positional cells. Rate limiting is a
// single token bucket shared by every goroutine using the Client.
package nbastats

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"
)

var (
	// ErrResultSetMissing is returned when the response lacks the expected result set.
	ErrResultSetMissing = errors.New("result set missing")
	// ErrColumnMissing is returned when a required header is absent.
	ErrColumnMissing = errors.New("column missing")
	// ErrMalformedCell is returned when a numeric column holds a non-numeric value.
	ErrMalformedCell = errors.New("malformed cell")
)

// Client is the shared HTTP client for all stats endpoints. Safe for
// concurrent use; it holds no per-request state.
type Client struct {
	httpClient *http.Client
	baseURL    string
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// NewClient creates a stats client. requestsPerSecond <= 0 disables
// throttling; config.Validate rejects that, so only tests run unthrottled.
func NewClient(baseURL string, timeout time.Duration, requestsPerSecond float64, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	limit := rate.Inf
	if requestsPerSecond > 0 {
		limit = rate.Limit(requestsPerSecond)
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		limiter:    rate.NewLimiter(limit, 1),
		logger:     logger,
	}
}

// statsResponse is the common stats.nba.com response wrapper.
type statsResponse struct {
	Resource   string      `json:"resource"`
	ResultSets []resultSet `json:"resultSets"`
}

type resultSet struct {
	Name    string          `json:"name"`
	Headers []string        `json:"headers"`
	RowSet  [][]interface{} `json:"rowSet"`
}

// resultSet looks up a result set by name.
func (r *statsResponse) resultSet(name string) (*resultSet, error) {
	for i := range r.ResultSets {
		if r.ResultSets[i].Name == name {
			return &r.ResultSets[i], nil
		}
	}
	return nil, fmt.Errorf("%s: %w", name, ErrResultSetMissing)
}

// columns maps each required header to its position.
func (rs *resultSet) columns(required ...string) (map[string]int, error) {
	idx := make(map[string]int, len(rs.Headers))
	for i, h := range rs.Headers {
		idx[h] = i
	}
	for _, name := range required {
		if _, ok := idx[name]; !ok {
			return nil, fmt.Errorf("%s.%s: %w", rs.Name, name, ErrColumnMissing)
		}
	}
	return idx, nil
}

// get performs a rate-limited GET request to a stats endpoint.
func (c *Client) get(ctx context.Context, endpoint string, params url.Values) (*statsResponse, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	u := c.baseURL + "/" + endpoint
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	setBrowserHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("stats %s returned %d: %s", endpoint, resp.StatusCode, truncate(body, 200))
	}
	if len(body) == 0 {
		return nil, fmt.Errorf("stats %s returned an empty body", endpoint)
	}

	var result statsResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	return &result, nil
}

// setBrowserHeaders adds the headers stats.nba.com expects; requests without
// them are dropped silently and run into the client timeout.
func setBrowserHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/json, text/plain, */*")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Origin", "https://www.nba.com")
	req.Header.Set("Referer", "https://www.nba.com/")
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36")
	req.Header.Set("x-nba-stats-origin", "stats")
	req.Header.Set("x-nba-stats-token", "true")
}

// truncate returns a truncated string representation for error messages.
func truncate(b []byte, maxLen int) string {
	if len(b) <= maxLen {
		return string(b)
	}
	return string(b[:maxLen]) + "..."
}
