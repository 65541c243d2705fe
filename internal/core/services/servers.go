package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/RobGruhl/nordvpn-cli/internal/core/domain"
	"github.com/RobGruhl/nordvpn-cli/internal/core/ports/driven"
	"github.com/RobGruhl/nordvpn-cli/internal/core/ports/driving"
	"github.com/RobGruhl/nordvpn-cli/internal/logger"
)

// Ensure ServerService implements the interface.
var _ driving.ServerService = (*ServerService)(nil)

// ServerService answers country and server questions from the catalog.
type ServerService struct {
	catalog driven.ServerCatalog
}

// NewServerService creates a new server service.
func NewServerService(catalog driven.ServerCatalog) *ServerService {
	return &ServerService{catalog: catalog}
}

// Countries returns every country NordVPN operates in, sorted by name.
func (s *ServerService) Countries(ctx context.Context) ([]domain.Country, error) {
	if s.catalog == nil {
		return nil, domain.ErrNotImplemented
	}

	countries, err := s.catalog.Countries(ctx)
	if err != nil {
		return nil, fmt.Errorf("list countries: %w", err)
	}

	sort.Slice(countries, func(i, j int) bool {
		return countries[i].Name < countries[j].Name
	})
	return countries, nil
}

// CountryByName finds a country by two-letter code or full name,
// case-insensitively.
func (s *ServerService) CountryByName(ctx context.Context, name string) (*domain.Country, error) {
	if s.catalog == nil {
		return nil, domain.ErrNotImplemented
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: empty country name", domain.ErrInvalidInput)
	}

	countries, err := s.catalog.Countries(ctx)
	if err != nil {
		return nil, fmt.Errorf("list countries: %w", err)
	}

	for i := range countries {
		if countries[i].Matches(name) {
			return &countries[i], nil
		}
	}
	return nil, fmt.Errorf("country %q: %w", name, domain.ErrNotFound)
}

// Recommended returns servers ordered best-first by NordVPN's scoring,
// optionally narrowed to a country.
func (s *ServerService) Recommended(ctx context.Context, criteria domain.SelectionCriteria) ([]domain.Server, error) {
	if s.catalog == nil {
		return nil, domain.ErrNotImplemented
	}
	criteria = criteria.Normalised()

	filter := driven.RecommendationFilter{Limit: criteria.Limit}
	if criteria.CountryCode != "" {
		country, err := s.CountryByName(ctx, criteria.CountryCode)
		if err != nil {
			return nil, err
		}
		filter.CountryID = country.ID
	}

	servers, err := s.catalog.Recommendations(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list recommendations: %w", err)
	}
	return servers, nil
}

// Optimal picks the best server for the criteria: the first recommendation
// at or under the load threshold, otherwise the least loaded one.
func (s *ServerService) Optimal(ctx context.Context, criteria domain.SelectionCriteria) (*domain.Server, error) {
	criteria = criteria.Normalised()

	servers, err := s.Recommended(ctx, criteria)
	if err != nil {
		return nil, err
	}

	servers = filterByCity(servers, criteria.City)
	if len(servers) == 0 {
		return nil, fmt.Errorf("no recommendations for %q: %w",
			criteria.CountryCode, domain.ErrNoServersAvailable)
	}

	// Recommendations come best-first, so the first one under the
	// threshold is the pick.
	for i := range servers {
		if servers[i].Load <= criteria.MaxLoad {
			logger.Debug("picked %s (load %d%%)", servers[i].Hostname, servers[i].Load)
			return &servers[i], nil
		}
	}

	best := &servers[0]
	for i := range servers {
		if servers[i].Load < best.Load {
			best = &servers[i]
		}
	}
	logger.Debug("all servers above %d%% load, picked least loaded %s (load %d%%)",
		criteria.MaxLoad, best.Hostname, best.Load)
	return best, nil
}

// ByHostname returns the server with the given (possibly bare) hostname.
func (s *ServerService) ByHostname(ctx context.Context, hostname string) (*domain.Server, error) {
	if s.catalog == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.catalog.ServerByHostname(ctx, hostname)
}

// filterByCity keeps servers whose city name contains the given substring,
// falling back to the full list when nothing matches.
func filterByCity(servers []domain.Server, city string) []domain.Server {
	city = strings.ToLower(strings.TrimSpace(city))
	if city == "" {
		return servers
	}

	var filtered []domain.Server
	for _, server := range servers {
		if strings.Contains(strings.ToLower(server.CityName()), city) {
			filtered = append(filtered, server)
		}
	}
	if len(filtered) == 0 {
		logger.Debug("no recommendations in city %q, considering all", city)
		return servers
	}
	return filtered
}
