package nordapi

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	// ProactiveRate is the proactive throttle rate (requests per second).
	// The public API is unauthenticated, so stay polite.
	ProactiveRate = 3

	// HeaderRetryAfter is the retry-after header (seconds).
	HeaderRetryAfter = "Retry-After"

	// DefaultBackoff applies when a 429 carries no Retry-After header.
	DefaultBackoff = 30 * time.Second
)

// RateLimiter throttles requests to the public NordVPN API.
// The API publishes no quota headers, so throttling is proactive via a
// token bucket, with reactive backoff when a 429 arrives.
type RateLimiter struct {
	mu        sync.Mutex
	resetTime time.Time
	bucket    *rate.Limiter
}

// NewRateLimiter creates a new rate limiter with proactive throttling.
func NewRateLimiter() *RateLimiter {
	return &RateLimiter{
		bucket: rate.NewLimiter(rate.Limit(ProactiveRate), 1),
	}
}

// Wait blocks until it's safe to make a request.
// It honours both the token bucket and any active 429 backoff window.
func (r *RateLimiter) Wait(ctx context.Context) error {
	if err := r.bucket.Wait(ctx); err != nil {
		return err
	}

	r.mu.Lock()
	resetTime := r.resetTime
	r.mu.Unlock()

	if time.Now().Before(resetTime) {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Until(resetTime)):
		}
	}

	return nil
}

// CheckRateLimit checks if the response indicates rate limiting.
// Returns a RateLimitError if rate limited, nil otherwise.
func (r *RateLimiter) CheckRateLimit(resp *http.Response) error {
	if resp == nil || resp.StatusCode != http.StatusTooManyRequests {
		return nil
	}

	backoff := DefaultBackoff
	if retryAfter := resp.Header.Get(HeaderRetryAfter); retryAfter != "" {
		if seconds, err := strconv.Atoi(retryAfter); err == nil {
			backoff = time.Duration(seconds) * time.Second
		}
	}

	resetAt := time.Now().Add(backoff)

	r.mu.Lock()
	r.resetTime = resetAt
	r.mu.Unlock()

	return &RateLimitError{ResetAt: resetAt}
}

// ResetTime returns when the current backoff window expires.
func (r *RateLimiter) ResetTime() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.resetTime
}
