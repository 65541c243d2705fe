package driven

import (
	"context"

	"github.com/RobGruhl/nordvpn-cli/internal/core/domain"
)

// RecommendationFilter narrows the recommendations endpoint.
type RecommendationFilter struct {
	// CountryID restricts recommendations to a country, 0 for anywhere.
	CountryID int

	// Limit caps the number of servers returned.
	Limit int
}

// ServerFilter narrows the servers endpoint.
type ServerFilter struct {
	// CountryID restricts results to a country, 0 for anywhere.
	CountryID int

	// Hostname matches a single server by its full hostname.
	Hostname string

	// Technology restricts results to a technology identifier
	// (e.g., "openvpn_udp").
	Technology string

	// Limit caps the number of servers returned.
	Limit int
}

// ServerCatalog reads countries and servers from the NordVPN public API.
type ServerCatalog interface {
	// Countries returns every country NordVPN operates in.
	Countries(ctx context.Context) ([]domain.Country, error)

	// Recommendations returns servers ordered best-first by NordVPN's
	// own scoring, which weighs load and proximity.
	Recommendations(ctx context.Context, filter RecommendationFilter) ([]domain.Server, error)

	// Servers returns servers matching the filter.
	Servers(ctx context.Context, filter ServerFilter) ([]domain.Server, error)

	// ServerByHostname returns the server with the given hostname.
	// Bare names are normalised to the full .nordvpn.com form.
	// Returns domain.ErrNotFound when no such server exists.
	ServerByHostname(ctx context.Context, hostname string) (*domain.Server, error)
}
