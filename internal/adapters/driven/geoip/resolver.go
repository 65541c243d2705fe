// Package geoip discovers the machine's public IP address and geolocates
// it using free lookup services: ipify for the address echo and ipinfo.io
// for the location. Both are best-effort; callers treat failures as
// "location unknown" rather than fatal.
package geoip

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/RobGruhl/nordvpn-cli/internal/core/domain"
	"github.com/RobGruhl/nordvpn-cli/internal/core/ports/driven"
	"github.com/RobGruhl/nordvpn-cli/internal/logger"
)

const (
	// DefaultIPEchoURL returns the caller's public IP as plain text.
	DefaultIPEchoURL = "https://api.ipify.org"

	// DefaultGeoBaseURL serves per-IP geolocation documents at /{ip}/json.
	DefaultGeoBaseURL = "https://ipinfo.io"

	requestTimeout = 10 * time.Second
	retryMax       = 1
	retryWaitMin   = 500 * time.Millisecond
	retryWaitMax   = 2 * time.Second

	// maxEchoBody bounds the ipify response; a public IP is at most 45
	// bytes even as IPv6.
	maxEchoBody = 64
)

// Compile-time check that Resolver satisfies the GeoResolver port.
var _ driven.GeoResolver = (*Resolver)(nil)

// Resolver queries public lookup services for the machine's external
// address and its approximate location.
type Resolver struct {
	http       *retryablehttp.Client
	ipEchoURL  string
	geoBaseURL string
}

// NewResolver creates a Resolver backed by ipify and ipinfo.io.
func NewResolver() *Resolver {
	return NewResolverWithURLs(DefaultIPEchoURL, DefaultGeoBaseURL)
}

// NewResolverWithURLs creates a Resolver against custom endpoints.
func NewResolverWithURLs(ipEchoURL, geoBaseURL string) *Resolver {
	return &Resolver{
		http:       newLookupClient(),
		ipEchoURL:  strings.TrimRight(ipEchoURL, "/"),
		geoBaseURL: strings.TrimRight(geoBaseURL, "/"),
	}
}

// newLookupClient builds an HTTP client that retries transport failures
// once and never retries HTTP error responses.
func newLookupClient() *retryablehttp.Client {
	client := retryablehttp.NewClient()
	client.Logger = nil
	client.RetryMax = retryMax
	client.RetryWaitMin = retryWaitMin
	client.RetryWaitMax = retryWaitMax
	client.HTTPClient.Timeout = requestTimeout
	client.CheckRetry = func(ctx context.Context, resp *http.Response, err error) (bool, error) {
		if ctx.Err() != nil {
			return false, ctx.Err()
		}
		if resp != nil {
			return false, nil
		}
		if err != nil {
			return true, nil //nolint:nilerr // transport error, retry once
		}
		return false, nil
	}
	client.RequestLogHook = func(_ retryablehttp.Logger, req *http.Request, attempt int) {
		if attempt > 0 {
			logger.Warn("request to %s failed, retrying (attempt %d of %d)", req.URL.Host, attempt+1, retryMax+1)
		}
	}
	return client
}

// PublicIP returns the machine's current public IP address.
func (r *Resolver) PublicIP(ctx context.Context) (string, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, r.ipEchoURL, nil)
	if err != nil {
		return "", fmt.Errorf("geoip: create request: %w", err)
	}

	resp, err := r.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("geoip: fetch public IP: %w", err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			logger.Warn("failed to close response body: %v", cerr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("geoip: fetch public IP: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxEchoBody))
	if err != nil {
		return "", fmt.Errorf("geoip: read public IP: %w", err)
	}

	ip := strings.TrimSpace(string(body))
	if net.ParseIP(ip) == nil {
		return "", fmt.Errorf("geoip: unexpected address %q", ip)
	}

	logger.Debug("public IP resolved to %s", ip)
	return ip, nil
}

// Lookup geolocates an IP address. City and country come back empty when
// the lookup service has no data for them.
func (r *Resolver) Lookup(ctx context.Context, ip string) (*domain.GeoLocation, error) {
	ip = strings.TrimSpace(ip)
	if net.ParseIP(ip) == nil {
		return nil, fmt.Errorf("%w: invalid IP address %q", domain.ErrInvalidInput, ip)
	}

	lookupURL := fmt.Sprintf("%s/%s/json", r.geoBaseURL, url.PathEscape(ip))
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, lookupURL, nil)
	if err != nil {
		return nil, fmt.Errorf("geoip: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geoip: lookup %s: %w", ip, err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			logger.Warn("failed to close response body: %v", cerr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geoip: lookup %s: status %d", ip, resp.StatusCode)
	}

	var loc domain.GeoLocation
	if err := json.NewDecoder(resp.Body).Decode(&loc); err != nil {
		return nil, fmt.Errorf("geoip: decode lookup response: %w", err)
	}
	if loc.IP == "" {
		loc.IP = ip
	}

	logger.Debug("geolocated %s to %s, %s", ip, loc.City, loc.Country)
	return &loc, nil
}
