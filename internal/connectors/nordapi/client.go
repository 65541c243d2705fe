package nordapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/RobGruhl/nordvpn-cli/internal/logger"
)

const (
	// DefaultBaseURL is the public NordVPN API root.
	DefaultBaseURL = "https://api.nordvpn.com"

	// DefaultTimeout is the per-request HTTP timeout.
	DefaultTimeout = 15 * time.Second

	// RetryMax is how many times a failed request is retried. Transport
	// errors (timeouts, refused connections) are retried once; HTTP error
	// responses are never retried.
	RetryMax = 1

	// RetryWaitMin and RetryWaitMax bound the backoff between attempts.
	RetryWaitMin = 500 * time.Millisecond
	RetryWaitMax = 2 * time.Second

	// errorBodyLimit caps how much of an error response body is read
	// for the error message.
	errorBodyLimit = 4 << 10

	userAgent = "nordvpn-cli"
)

// Client wraps HTTP access to the public NordVPN API.
type Client struct {
	baseURL     string
	http        *retryablehttp.Client
	rateLimiter *RateLimiter
}

// NewClient creates a client for the public NordVPN API.
func NewClient() *Client {
	return NewClientWithBaseURL(DefaultBaseURL)
}

// NewClientWithBaseURL creates a client against a custom API root.
// Useful for testing.
func NewClientWithBaseURL(baseURL string) *Client {
	return &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		http:        newRetryableClient(),
		rateLimiter: NewRateLimiter(),
	}
}

// RateLimiter returns the rate limiter for external access.
func (c *Client) RateLimiter() *RateLimiter {
	return c.rateLimiter
}

// newRetryableClient builds the HTTP client used for all API calls.
func newRetryableClient() *retryablehttp.Client {
	client := retryablehttp.NewClient()
	client.RetryMax = RetryMax
	client.RetryWaitMin = RetryWaitMin
	client.RetryWaitMax = RetryWaitMax
	client.HTTPClient.Timeout = DefaultTimeout
	client.Logger = nil // Disable retryablehttp logging
	client.CheckRetry = transportRetryPolicy
	client.RequestLogHook = func(_ retryablehttp.Logger, req *http.Request, attempt int) {
		if attempt > 0 {
			logger.Warn("request to %s failed, retrying (attempt %d of %d)",
				req.URL.Path, attempt+1, RetryMax+1)
		}
	}
	return client
}

// transportRetryPolicy only retries on connection/timeout errors, not HTTP
// status errors. API error responses surface to the caller instead of
// being retried.
func transportRetryPolicy(ctx context.Context, resp *http.Response, err error) (bool, error) {
	// Do not retry if context is cancelled
	if ctx.Err() != nil {
		return false, ctx.Err()
	}

	// If we got a response, don't retry - surface the response as-is
	if resp != nil {
		return false, nil
	}

	// Only retry on a connection/timeout error (no response received).
	// retryablehttp preserves the error and reports it after the final
	// attempt.
	if err != nil {
		return true, nil //nolint:nilerr // retryablehttp handles the error
	}

	return false, nil
}

// get performs a GET request against the API and decodes the JSON
// response into out.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	requestURL := c.baseURL + path
	if len(query) > 0 {
		requestURL += "?" + query.Encode()
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	logger.Debug("GET %s", requestURL)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("get %s: %w", path, err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			logger.Warn("failed to close response body: %v", closeErr)
		}
	}()

	if err := c.rateLimiter.CheckRateLimit(resp); err != nil {
		return err
	}

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    strings.TrimSpace(string(body)),
			URL:        requestURL,
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}

	return nil
}
