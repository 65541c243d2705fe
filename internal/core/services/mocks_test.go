package services

import (
	"context"

	"github.com/RobGruhl/nordvpn-cli/internal/core/domain"
	"github.com/RobGruhl/nordvpn-cli/internal/core/ports/driven"
)

// mockCatalog is a mock implementation of driven.ServerCatalog.
type mockCatalog struct {
	countries       []domain.Country
	countriesErr    error
	recommendations []domain.Server
	recommendErr    error
	servers         []domain.Server
	serversErr      error

	lastRecommendationFilter driven.RecommendationFilter
	lastServerFilter         driven.ServerFilter
}

func (m *mockCatalog) Countries(_ context.Context) ([]domain.Country, error) {
	return m.countries, m.countriesErr
}

func (m *mockCatalog) Recommendations(_ context.Context, filter driven.RecommendationFilter) ([]domain.Server, error) {
	m.lastRecommendationFilter = filter
	return m.recommendations, m.recommendErr
}

func (m *mockCatalog) Servers(_ context.Context, filter driven.ServerFilter) ([]domain.Server, error) {
	m.lastServerFilter = filter
	return m.servers, m.serversErr
}

func (m *mockCatalog) ServerByHostname(_ context.Context, hostname string) (*domain.Server, error) {
	if m.serversErr != nil {
		return nil, m.serversErr
	}
	hostname = domain.NormalizeHostname(hostname)
	for i := range m.servers {
		if m.servers[i].Hostname == hostname {
			return &m.servers[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

// mockController is a mock implementation of driven.VPNController.
// States are served from statesSeq, one element per call, holding the
// last element once the sequence is exhausted.
type mockController struct {
	installed     bool
	running       bool
	runningErr    error
	launchErr     error
	configs       []string
	configsErr    error
	statesSeq     [][]domain.ConfigState
	statesErr     error
	connectErr    error
	disconnectErr error

	calls []string
}

func (m *mockController) IsInstalled() bool {
	return m.installed
}

func (m *mockController) IsRunning(_ context.Context) (bool, error) {
	return m.running, m.runningErr
}

func (m *mockController) Launch(_ context.Context) error {
	m.calls = append(m.calls, "launch")
	if m.launchErr == nil {
		m.running = true
	}
	return m.launchErr
}

func (m *mockController) Configurations(_ context.Context) ([]string, error) {
	return m.configs, m.configsErr
}

func (m *mockController) States(_ context.Context) ([]domain.ConfigState, error) {
	if m.statesErr != nil {
		return nil, m.statesErr
	}
	if len(m.statesSeq) == 0 {
		return nil, nil
	}
	states := m.statesSeq[0]
	if len(m.statesSeq) > 1 {
		m.statesSeq = m.statesSeq[1:]
	}
	return states, nil
}

func (m *mockController) Connect(_ context.Context, configName string) error {
	m.calls = append(m.calls, "connect "+configName)
	return m.connectErr
}

func (m *mockController) Disconnect(_ context.Context, configName string) error {
	m.calls = append(m.calls, "disconnect "+configName)
	return m.disconnectErr
}

func (m *mockController) DisconnectAll(_ context.Context) error {
	m.calls = append(m.calls, "disconnect all")
	return m.disconnectErr
}

// mockInstaller is a mock implementation of driven.ProfileInstaller.
type mockInstaller struct {
	installed    []string
	installErr   error
	archiveCount int
	archiveErr   error

	installCalls []string
}

func (m *mockInstaller) Installed(_ context.Context) ([]string, error) {
	return m.installed, nil
}

func (m *mockInstaller) IsInstalled(_ context.Context, configName string) (bool, error) {
	for _, name := range m.installed {
		if name == configName {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockInstaller) Install(_ context.Context, hostname string, protocol domain.Protocol, _ domain.Credentials) error {
	if m.installErr != nil {
		return m.installErr
	}
	configName := domain.ConfigNameForHostname(hostname, protocol)
	m.installCalls = append(m.installCalls, configName)
	m.installed = append(m.installed, configName)
	return nil
}

func (m *mockInstaller) DownloadArchive(_ context.Context, _, _ string) (int, error) {
	return m.archiveCount, m.archiveErr
}

// mockCredentials is a mock implementation of driven.CredentialsProvider.
type mockCredentials struct {
	creds domain.Credentials
	err   error
}

func (m *mockCredentials) Credentials(_ context.Context) (domain.Credentials, error) {
	return m.creds, m.err
}

// mockGeo is a mock implementation of driven.GeoResolver.
type mockGeo struct {
	ip        string
	ipErr     error
	location  *domain.GeoLocation
	lookupErr error
}

func (m *mockGeo) PublicIP(_ context.Context) (string, error) {
	return m.ip, m.ipErr
}

func (m *mockGeo) Lookup(_ context.Context, _ string) (*domain.GeoLocation, error) {
	return m.location, m.lookupErr
}

// makeServer builds a server with a location for tests.
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
