package nordapi

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/RobGruhl/nordvpn-cli/internal/core/domain"
	"github.com/RobGruhl/nordvpn-cli/internal/core/ports/driven"
	"github.com/RobGruhl/nordvpn-cli/internal/logger"
)

// API paths for the server catalog.
const (
	countriesPath       = "/v1/servers/countries"
	recommendationsPath = "/v1/servers/recommendations"
	serversPath         = "/v1/servers"
)

// Ensure Client implements the ServerCatalog interface.
var _ driven.ServerCatalog = (*Client)(nil)

// Countries returns every country NordVPN operates in.
func (c *Client) Countries(ctx context.Context) ([]domain.Country, error) {
	var countries []domain.Country
	if err := c.get(ctx, countriesPath, nil, &countries); err != nil {
		return nil, fmt.Errorf("list countries: %w", err)
	}

	logger.Debug("fetched %d countries", len(countries))
	return countries, nil
}

// Recommendations returns servers ordered best-first by NordVPN's own
// scoring.
func (c *Client) Recommendations(ctx context.Context, filter driven.RecommendationFilter) ([]domain.Server, error) {
	query := url.Values{}
	if filter.CountryID > 0 {
		query.Set("filters[country_id]", strconv.Itoa(filter.CountryID))
	}
	if filter.Limit > 0 {
		query.Set("limit", strconv.Itoa(filter.Limit))
	}

	var servers []domain.Server
	if err := c.get(ctx, recommendationsPath, query, &servers); err != nil {
		return nil, fmt.Errorf("list recommendations: %w", err)
	}

	logger.Debug("fetched %d recommended servers", len(servers))
	return servers, nil
}

// Servers returns servers matching the filter.
func (c *Client) Servers(ctx context.Context, filter driven.ServerFilter) ([]domain.Server, error) {
	query := url.Values{}
	if filter.CountryID > 0 {
		query.Set("filters[country_id]", strconv.Itoa(filter.CountryID))
	}
	if filter.Hostname != "" {
		query.Set("filters[hostname]", domain.NormalizeHostname(filter.Hostname))
	}
	if filter.Technology != "" {
		query.Set("filters[servers_technologies][identifier]", filter.Technology)
	}
	if filter.Limit > 0 {
		query.Set("limit", strconv.Itoa(filter.Limit))
	}

	var servers []domain.Server
	if err := c.get(ctx, serversPath, query, &servers); err != nil {
		return nil, fmt.Errorf("list servers: %w", err)
	}

	logger.Debug("fetched %d servers", len(servers))
	return servers, nil
}

// ServerByHostname returns the server with the given hostname.
// Returns domain.ErrNotFound when no such server exists.
func (c *Client) ServerByHostname(ctx context.Context, hostname string) (*domain.Server, error) {
	hostname = domain.NormalizeHostname(hostname)
	if hostname == "" {
		return nil, fmt.Errorf("%w: empty hostname", domain.ErrInvalidInput)
	}

	servers, err := c.Servers(ctx, driven.ServerFilter{Hostname: hostname, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(servers) == 0 {
		return nil, fmt.Errorf("server %q: %w", hostname, domain.ErrNotFound)
	}

	return &servers[0], nil
}
