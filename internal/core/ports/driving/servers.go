package driving

import (
	"context"

	"github.com/RobGruhl/nordvpn-cli/internal/core/domain"
)

// ServerService answers questions about the NordVPN server catalog.
type ServerService interface {
	// Countries returns all countries with NordVPN servers, sorted by name.
	Countries(ctx context.Context) ([]domain.Country, error)

	// CountryByName finds a country by name or two-letter code.
	// Matching is case-insensitive. Returns domain.ErrNotFound when no
	// country matches.
	CountryByName(ctx context.Context, name string) (*domain.Country, error)

	// Recommended returns the servers NordVPN currently recommends for the
	// given criteria, best first.
	Recommended(ctx context.Context, criteria domain.SelectionCriteria) ([]domain.Server, error)

	// Optimal picks a single server to connect to: the first recommended
	// server at or below the load threshold, falling back to the least
	// loaded candidate. Returns domain.ErrNoServersAvailable when the
	// criteria match nothing.
	Optimal(ctx context.Context, criteria domain.SelectionCriteria) (*domain.Server, error)

	// ByHostname looks up a single server. Short names like "de750" are
	// accepted. Returns domain.ErrNotFound when the server does not exist.
	ByHostname(ctx context.Context, hostname string) (*domain.Server, error)
}
