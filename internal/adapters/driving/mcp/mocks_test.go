package mcp

import (
	"context"

	"github.com/RobGruhl/nordvpn-cli/internal/core/domain"
)

// mockConnectionService is a mock implementation of driving.ConnectionService.
type mockConnectionService struct {
	status *domain.ConnectionStatus
	err    error

	lastRequest  domain.ConnectRequest
	disconnected bool
}

func (m *mockConnectionService) Connect(_ context.Context, req domain.ConnectRequest) (*domain.ConnectionStatus, error) {
	m.lastRequest = req
	return m.status, m.err
}

func (m *mockConnectionService) ConnectLast(_ context.Context) (*domain.ConnectionStatus, error) {
	return m.status, m.err
}

func (m *mockConnectionService) Disconnect(_ context.Context) error {
	m.disconnected = true
	return m.err
}

func (m *mockConnectionService) Status(_ context.Context) (*domain.ConnectionStatus, error) {
	return m.status, m.err
}

func (m *mockConnectionService) Configurations(_ context.Context) ([]string, error) {
	return nil, m.err
}

// mockServerService is a mock implementation of driving.ServerService.
type mockServerService struct {
	countries []domain.Country
	servers   []domain.Server
	optimal   *domain.Server
	err       error

	lastCriteria domain.SelectionCriteria
}

func (m *mockServerService) Countries(_ context.Context) ([]domain.Country, error) {
	return m.countries, m.err
}

func (m *mockServerService) CountryByName(_ context.Context, name string) (*domain.Country, error) {
	for i := range m.countries {
		if m.countries[i].Matches(name) {
			return &m.countries[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockServerService) Recommended(_ context.Context, criteria domain.SelectionCriteria) ([]domain.Server, error) {
	m.lastCriteria = criteria
	return m.servers, m.err
}

func (m *mockServerService) Optimal(_ context.Context, criteria domain.SelectionCriteria) (*domain.Server, error) {
	m.lastCriteria = criteria
	if m.err != nil {
		return nil, m.err
	}
	if m.optimal == nil {
		return nil, domain.ErrNoServersAvailable
	}
	return m.optimal, nil
}

func (m *mockServerService) ByHostname(_ context.Context, hostname string) (*domain.Server, error) {
	hostname = domain.NormalizeHostname(hostname)
	for i := range m.servers {
		if m.servers[i].Hostname == hostname {
			return &m.servers[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func makeServer(hostname string, load int, countryCode, city string) domain.Server {
	return domain.Server{
		Hostname: hostname,
		Name:     hostname,
		Load:     load,
		Status:   "online",
		Locations: []domain.ServerLocation{{
			Country: domain.Country{
				Code: countryCode,
				City: &domain.City{Name: city},
			},
		}},
	}
}
