// Package nordapi implements a client for the public NordVPN API.
//
// The API requires no authentication and serves the server catalog used
// for country listings, server recommendations, and hostname lookups.
//
// # Architecture
//
// The client implements the [driven.ServerCatalog] port. It comprises:
//
//   - Client: handles API communication with rate limiting and retries
//   - RateLimiter: proactive throttling plus reactive 429 backoff
//
// # Endpoints
//
// Three endpoints are used:
//
//   - /v1/servers/countries: all countries with their server cities
//   - /v1/servers/recommendations: servers ranked by NordVPN's own
//     scoring, optionally filtered by country
//   - /v1/servers: raw server listing, filtered by hostname or
//     technology identifier
//
// # Rate Limiting
//
// The API publishes no quota headers, so the client throttles
// proactively with a token bucket (about 3 requests per second) and
// backs off reactively when a 429 arrives, honouring Retry-After.
//
// # Error Handling
//
//   - Transport errors (timeouts, refused connections): retried once,
//     with a warning logged before the second attempt
//   - HTTP error responses: returned as [*APIError], never retried
//   - 429 responses: returned as [*RateLimitError] and remembered so the
//     next call waits out the backoff window
package nordapi
