package cli

import (
	"context"
	"time"

	"github.com/spf13/pflag"

	"github.com/RobGruhl/nordvpn-cli/internal/core/domain"
	"github.com/RobGruhl/nordvpn-cli/internal/core/ports/driving"
)

// setupTestServices swaps all package services for canned mocks and
// returns a cleanup restoring the originals.
func setupTestServices() func() {
	oldServer := serverService
	oldConnection := connectionService
	oldSetup := setupService
	oldHistory := historyService
	oldSettings := settingsService

	serverService = newMockServerService()
	connectionService = newMockConnectionService()
	setupService = &mockSetupService{installed: true, running: true,
		creds: domain.Credentials{Username: "svc-user-12345", Password: "svc-pass"}, countries: 60}
	historyService = &mockHistoryService{events: []domain.ConnectionEvent{testEvent()}}
	settingsService = &mockSettingsService{}

	return func() {
		serverService = oldServer
		connectionService = oldConnection
		setupService = oldSetup
		historyService = oldHistory
		settingsService = oldSettings

		// Cobra keeps each flag's Changed state across Execute calls;
		// clear it so one test's flags don't leak into the next.
		for _, cmd := range rootCmd.Commands() {
			cmd.Flags().Visit(func(f *pflag.Flag) { f.Changed = false })
		}
	}
}

func testServer(hostname string, load int, countryCode, city string) domain.Server {
	return domain.Server{
		Hostname: hostname,
		Name:     hostname,
		Station:  "192.0.2.10",
		Load:     load,
		Status:   "online",
		Locations: []domain.ServerLocation{{
			Country: domain.Country{
				Code: countryCode,
				Name: countryCode,
				City: &domain.City{Name: city},
			},
		}},
	}
}

func testEvent() domain.ConnectionEvent {
	return domain.ConnectionEvent{
		ID:          "evt-1",
		Hostname:    "de750.nordvpn.com",
		ConfigName:  "de750.nordvpn.com.udp",
		CountryCode: "DE",
		City:        "Berlin",
		ServerLoad:  12,
		Protocol:    domain.ProtocolUDP,
		Status:      domain.EventConnected,
		StartedAt:   time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		CompletedAt: time.Date(2025, 6, 1, 12, 0, 9, 0, time.UTC),
	}
}

// mockServerService implements driving.ServerService.
type mockServerService struct {
	countries []domain.Country
	servers   []domain.Server
	err       error
}

var _ driving.ServerService = (*mockServerService)(nil)

func newMockServerService() *mockServerService {
	return &mockServerService{
		countries: []domain.Country{
			{ID: 81, Name: "Germany", Code: "DE"},
			{ID: 228, Name: "United States", Code: "US"},
		},
		servers: []domain.Server{
			testServer("de750.nordvpn.com", 12, "DE", "Berlin"),
			testServer("de751.nordvpn.com", 45, "DE", "Frankfurt"),
		},
	}
}

func (m *mockServerService) Countries(_ context.Context) ([]domain.Country, error) {
	return m.countries, m.err
}

func (m *mockServerService) CountryByName(_ context.Context, name string) (*domain.Country, error) {
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.countries {
		if m.countries[i].Matches(name) {
			return &m.countries[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockServerService) Recommended(_ context.Context, _ domain.SelectionCriteria) ([]domain.Server, error) {
	return m.servers, m.err
}

func (m *mockServerService) Optimal(_ context.Context, _ domain.SelectionCriteria) (*domain.Server, error) {
	if m.err != nil {
		return nil, m.err
	}
	if len(m.servers) == 0 {
		return nil, domain.ErrNoServersAvailable
	}
	return &m.servers[0], nil
}

func (m *mockServerService) ByHostname(_ context.Context, hostname string) (*domain.Server, error) {
	if m.err != nil {
		return nil, m.err
	}
	hostname = domain.NormalizeHostname(hostname)
	for i := range m.servers {
		if m.servers[i].Hostname == hostname {
			return &m.servers[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

// mockConnectionService implements driving.ConnectionService.
type mockConnectionService struct {
	status     *domain.ConnectionStatus
	configs    []string
	connectErr error
	statusErr  error

	connectRequests []domain.ConnectRequest
	disconnected    bool
	lastUsed        bool
}

var _ driving.ConnectionService = (*mockConnectionService)(nil)

func newMockConnectionService() *mockConnectionService {
	return &mockConnectionService{
		status: &domain.ConnectionStatus{
			Connected:      true,
			State:          domain.StateConnected,
			ConfigName:     "de750.nordvpn.com.udp",
			ServerHostname: "de750.nordvpn.com",
			PublicIP:       "192.0.2.55",
			Country:        "DE",
			City:           "Berlin",
			ServerLoad:     12,
		},
		configs: []string{"de750.nordvpn.com.udp", "us9591.nordvpn.com.udp"},
	}
}

func (m *mockConnectionService) Connect(_ context.Context, req domain.ConnectRequest) (*domain.ConnectionStatus, error) {
	m.connectRequests = append(m.connectRequests, req)
	if m.connectErr != nil {
		return nil, m.connectErr
	}
	return m.status, nil
}

func (m *mockConnectionService) ConnectLast(_ context.Context) (*domain.ConnectionStatus, error) {
	m.lastUsed = true
	if m.connectErr != nil {
		return nil, m.connectErr
	}
	return m.status, nil
}

func (m *mockConnectionService) Disconnect(_ context.Context) error {
	m.disconnected = true
	return m.connectErr
}

func (m *mockConnectionService) Status(_ context.Context) (*domain.ConnectionStatus, error) {
	if m.statusErr != nil {
		return nil, m.statusErr
	}
	return m.status, nil
}

func (m *mockConnectionService) Configurations(_ context.Context) ([]string, error) {
	return m.configs, m.statusErr
}

// mockSetupService implements driving.SetupService.
type mockSetupService struct {
	installed bool
	running   bool
	creds     domain.Credentials
	credsErr  error
	countries int
	apiErr    error

	launched bool
}

var _ driving.SetupService = (*mockSetupService)(nil)

func (m *mockSetupService) ClientInstalled() bool {
	return m.installed
}

func (m *mockSetupService) ClientRunning(_ context.Context) (bool, error) {
	return m.running, nil
}

func (m *mockSetupService) LaunchClient(_ context.Context) error {
	m.launched = true
	return nil
}

func (m *mockSetupService) Credentials(_ context.Context) (domain.Credentials, error) {
	return m.creds, m.credsErr
}

func (m *mockSetupService) VerifyAPI(_ context.Context) (int, error) {
	return m.countries, m.apiErr
}

// mockHistoryService implements driving.HistoryService.
type mockHistoryService struct {
	events  []domain.ConnectionEvent
	err     error
	cleared bool
}

var _ driving.HistoryService = (*mockHistoryService)(nil)

func (m *mockHistoryService) List(_ context.Context, limit int) ([]domain.ConnectionEvent, error) {
	if m.err != nil {
		return nil, m.err
	}
	if limit > 0 && limit < len(m.events) {
		return m.events[:limit], nil
	}
	return m.events, nil
}

func (m *mockHistoryService) Last(_ context.Context) (*domain.ConnectionEvent, error) {
	if m.err != nil {
		return nil, m.err
	}
	if len(m.events) == 0 {
		return nil, domain.ErrNotFound
	}
	return &m.events[0], nil
}

func (m *mockHistoryService) Clear(_ context.Context) error {
	m.cleared = true
	return m.err
}

// mockSettingsService implements driving.SettingsService.
type mockSettingsService struct {
	settings *domain.AppSettings
}

var _ driving.SettingsService = (*mockSettingsService)(nil)

func (m *mockSettingsService) Get() (*domain.AppSettings, error) {
	if m.settings != nil {
		return m.settings, nil
	}
	defaults := domain.DefaultAppSettings()
	return &defaults, nil
}

func (m *mockSettingsService) Save(settings *domain.AppSettings) error {
	m.settings = settings
	return nil
}

func (m *mockSettingsService) SetDefaultCountry(country string) error {
	settings, _ := m.Get()
	settings.Connect.Country = country
	m.settings = settings
	return nil
}

func (m *mockSettingsService) SetDefaultProtocol(protocol domain.Protocol) error {
	settings, _ := m.Get()
	settings.Connect.Protocol = protocol
	m.settings = settings
	return nil
}

func (m *mockSettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}
