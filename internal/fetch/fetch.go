// Package fetch implements the retrying HTTP client used by every provider
// adapter. Retry, backoff, and Retry-After handling live here and only here;
// adapters never implement their own retry logic.
package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"newsdesk/internal/logger"
)

// HTTPClient is the interface for performing HTTP requests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Options bounds a single logical fetch.
type Options struct {
	MaxTries  int           // Total attempts, including the first
	BaseDelay time.Duration // Backoff base; attempt n waits BaseDelay * 2^n
	Timeout   time.Duration // Per-attempt timeout
	Header    http.Header   // Optional extra headers (API keys etc.)
}

// DefaultOptions returns the orchestrator's standard retry policy.
func DefaultOptions() Options {
	return Options{
		MaxTries:  3,
		BaseDelay: 500 * time.Millisecond,
		Timeout:   10 * time.Second,
	}
}

// StatusError is returned when every attempt ended with a non-2xx response.
type StatusError struct {
	StatusCode int
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("fetch %s: status %d after retries", e.URL, e.StatusCode)
}

// Client performs HTTP fetches with retry, exponential backoff, and
// Retry-After compliance on 429 responses.
type Client struct {
	http  HTTPClient
	log   *slog.Logger
	sleep func(ctx context.Context, d time.Duration) error
}

// New creates a fetch client. A nil httpClient uses http.DefaultClient.
func New(httpClient HTTPClient) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		http:  httpClient,
		log:   logger.Get(),
		sleep: sleepContext,
	}
}

// FetchWithRetry GETs url, retrying per opts. Each attempt is bounded by
// opts.Timeout; a timeout counts as a failed attempt. On 429 the wait is
// max(exponential backoff, Retry-After seconds). After MaxTries the last
// error or status is propagated to the caller.
func (c *Client) FetchWithRetry(ctx context.Context, url string, opts Options) ([]byte, error) {
	if opts.MaxTries < 1 {
		opts.MaxTries = 1
	}

	var lastErr error
	for attempt := 0; attempt < opts.MaxTries; attempt++ {
		body, retryAfter, err := c.attempt(ctx, url, opts)
		if err == nil {
			return body, nil
		}
		lastErr = err

		if attempt == opts.MaxTries-1 {
			break
		}

		delay := opts.BaseDelay * time.Duration(1<<attempt)
		if retryAfter > delay {
			delay = retryAfter
		}
		c.log.Debug("Retrying fetch", "url", url, "attempt", attempt+1, "delay", delay.String(), "error", err.Error())
		if err := c.sleep(ctx, delay); err != nil {
			return nil, err
		}
	}

	return nil, lastErr
}

// attempt performs one bounded GET. retryAfter is nonzero only for a 429
// response carrying a Retry-After header.
func (c *Client) attempt(ctx context.Context, url string, opts Options) (body []byte, retryAfter time.Duration, err error) {
	attemptCtx := ctx
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		attemptCtx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(attemptCtx, http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("create request: %w", err)
	}
	for key, values := range opts.Header {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, parseRetryAfter(resp.Header.Get("Retry-After")), &StatusError{StatusCode: resp.StatusCode, URL: url}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, 0, &StatusError{StatusCode: resp.StatusCode, URL: url}
	}

	body, err = io.ReadAll(io.LimitReader(resp.Body, 10*1024*1024))
	if err != nil {
		return nil, 0, fmt.Errorf("read body from %s: %w", url, err)
	}
	return body, 0, nil
}

// FetchJSON fetches url and decodes the response body into v.
func (c *Client) FetchJSON(ctx context.Context, url string, opts Options, v any) error {
	body, err := c.FetchWithRetry(ctx, url, opts)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("decode response from %s: %w", url, err)
	}
	return nil
}

// parseRetryAfter reads a Retry-After header given in seconds.
func parseRetryAfter(header string) time.Duration {
	if header == "" {
		return 0
	}
	seconds, err := strconv.Atoi(header)
	if err != nil || seconds < 0 {
		return 0
	}
	return time.Duration(seconds) * time.Second
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
