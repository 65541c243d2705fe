package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/RobGruhl/nordvpn-cli/internal/core/domain"
	"github.com/RobGruhl/nordvpn-cli/internal/core/ports/driven"
	"github.com/RobGruhl/nordvpn-cli/internal/core/ports/driving"
	"github.com/RobGruhl/nordvpn-cli/internal/logger"
)

const (
	// connectTimeout bounds how long Connect waits for the tunnel to
	// come up after issuing the connect command.
	connectTimeout = 30 * time.Second

	// connectPollInterval is how often the tunnel state is re-read
	// while waiting.
	connectPollInterval = time.Second
)

// Ensure ConnectionService implements the interface.
var _ driving.ConnectionService = (*ConnectionService)(nil)

// ConnectionService orchestrates server selection, profile installation
// and the Tunnelblick connect/disconnect lifecycle.
type ConnectionService struct {
	servers     driving.ServerService
	controller  driven.VPNController
	installer   driven.ProfileInstaller
	credentials driven.CredentialsProvider

	// Optional collaborators, set after construction.
	geo      driven.GeoResolver
	history  driven.HistoryStore
	settings driving.SettingsService

	timeout      time.Duration
	pollInterval time.Duration
}

// NewConnectionService creates a new connection service.
func NewConnectionService(
	servers driving.ServerService,
	controller driven.VPNController,
	installer driven.ProfileInstaller,
	credentials driven.CredentialsProvider,
) *ConnectionService {
	return &ConnectionService{
		servers:      servers,
		controller:   controller,
		installer:    installer,
		credentials:  credentials,
		timeout:      connectTimeout,
		pollInterval: connectPollInterval,
	}
}

// SetGeoResolver enables public IP and location fields in Status.
func (s *ConnectionService) SetGeoResolver(geo driven.GeoResolver) {
	s.geo = geo
}

// SetHistoryStore enables connection event recording.
func (s *ConnectionService) SetHistoryStore(history driven.HistoryStore) {
	s.history = history
}

// SetSettings supplies defaults for requests that omit a target.
func (s *ConnectionService) SetSettings(settings driving.SettingsService) {
	s.settings = settings
}

// Connect resolves the request to a server, makes sure its profile is
// installed, asks Tunnelblick to connect, and blocks until the tunnel is
// up or the attempt fails.
func (s *ConnectionService) Connect(ctx context.Context, req domain.ConnectRequest) (*domain.ConnectionStatus, error) {
	if s.controller == nil || s.servers == nil || s.installer == nil {
		return nil, domain.ErrNotImplemented
	}

	server, err := s.resolveTarget(ctx, req)
	if err != nil {
		return nil, err
	}

	protocol := req.Protocol
	if !protocol.IsValid() {
		protocol = s.defaultProtocol()
	}

	event := s.newEvent(server, protocol)
	status, err := s.establish(ctx, server, protocol)
	s.record(ctx, event, err)
	if err != nil {
		return nil, err
	}
	return status, nil
}

// ConnectLast reconnects to the most recently used server.
func (s *ConnectionService) ConnectLast(ctx context.Context) (*domain.ConnectionStatus, error) {
	if s.history == nil {
		return nil, domain.ErrNotImplemented
	}

	last, err := s.history.Last(ctx)
	if err != nil {
		return nil, fmt.Errorf("no previous connection: %w", err)
	}

	logger.Debug("reconnecting to %s", last.Hostname)
	return s.Connect(ctx, domain.ConnectRequest{
		Hostname: last.Hostname,
		Protocol: last.Protocol,
	})
}

// Disconnect tears down any active tunnel. It is a no-op when Tunnelblick
// is not running or nothing is connected.
func (s *ConnectionService) Disconnect(ctx context.Context) error {
	if s.controller == nil {
		return domain.ErrNotImplemented
	}

	running, err := s.controller.IsRunning(ctx)
	if err != nil {
		return fmt.Errorf("check tunnelblick: %w", err)
	}
	if !running {
		logger.Debug("tunnelblick not running, nothing to disconnect")
		return nil
	}

	states, err := s.controller.States(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrNotRunning) {
			return nil
		}
		return fmt.Errorf("read states: %w", err)
	}

	active := activeState(states)
	if active == nil {
		logger.Debug("no active configuration to disconnect")
		return nil
	}

	logger.Info("disconnecting %s", active.Name)
	if err := s.controller.DisconnectAll(ctx); err != nil {
		return fmt.Errorf("disconnect: %w", err)
	}

	s.recordDisconnect(ctx, *active)
	return nil
}

// Status reports the current connection state, the machine's public IP
// and location, and the connected server's load. Lookup failures degrade
// to missing fields rather than errors.
func (s *ConnectionService) Status(ctx context.Context) (*domain.ConnectionStatus, error) {
	if s.controller == nil {
		return nil, domain.ErrNotImplemented
	}

	status := &domain.ConnectionStatus{
		State:      domain.StateDisconnected,
		ServerLoad: -1,
	}

	running, err := s.controller.IsRunning(ctx)
	if err != nil {
		return nil, fmt.Errorf("check tunnelblick: %w", err)
	}
	if running {
		states, err := s.controller.States(ctx)
		if err != nil && !errors.Is(err, domain.ErrNotRunning) {
			return nil, fmt.Errorf("read states: %w", err)
		}
		if active := activeState(states); active != nil {
			status.State = active.State
			status.Connected = active.State == domain.StateConnected
			status.ConfigName = active.Name
			status.ServerHostname = domain.HostnameFromConfigName(active.Name)
		}
	}

	s.addLocation(ctx, status)
	s.addServerLoad(ctx, status)
	return status, nil
}

// Configurations lists the NordVPN configurations Tunnelblick knows
// about, sorted by name.
func (s *ConnectionService) Configurations(ctx context.Context) ([]string, error) {
	if s.controller == nil {
		return nil, domain.ErrNotImplemented
	}

	all, err := s.controller.Configurations(ctx)
	if err != nil {
		return nil, err
	}

	var configs []string
	for _, name := range all {
		if strings.Contains(strings.ToLower(name), "nordvpn") {
			configs = append(configs, name)
		}
	}
	sort.Strings(configs)
	return configs, nil
}

// resolveTarget turns a request into a concrete server, consulting saved
// defaults when the request names no target.
func (s *ConnectionService) resolveTarget(ctx context.Context, req domain.ConnectRequest) (*domain.Server, error) {
	if req.Hostname != "" {
		server, err := s.servers.ByHostname(ctx, req.Hostname)
		if err != nil {
			return nil, fmt.Errorf("resolve server %q: %w", req.Hostname, err)
		}
		return server, nil
	}

	criteria := domain.SelectionCriteria{
		CountryCode: req.CountryCode,
		City:        req.City,
	}
	if s.settings != nil {
		if app, err := s.settings.Get(); err == nil {
			criteria.MaxLoad = app.Connect.MaxLoad
			criteria.Limit = app.Servers.Limit
			if criteria.CountryCode == "" {
				criteria.CountryCode = app.Connect.Country
				if criteria.City == "" {
					criteria.City = app.Connect.City
				}
			}
		}
	}

	return s.servers.Optimal(ctx, criteria)
}

// establish installs the profile if needed, connects, and waits for the
// tunnel to come up.
func (s *ConnectionService) establish(ctx context.Context, server *domain.Server, protocol domain.Protocol) (*domain.ConnectionStatus, error) {
	configName := domain.ConfigNameForHostname(server.Hostname, protocol)

	if err := s.ensureClient(ctx); err != nil {
		return nil, err
	}
	if err := s.ensureProfile(ctx, server.Hostname, protocol, configName); err != nil {
		return nil, err
	}

	logger.Info("connecting %s", configName)
	if err := s.controller.Connect(ctx, configName); err != nil {
		return nil, fmt.Errorf("connect %s: %w", configName, err)
	}

	if err := s.waitConnected(ctx, configName); err != nil {
		return nil, err
	}

	return s.Status(ctx)
}

// ensureClient verifies Tunnelblick is installed and launches it when it
// is not yet running.
func (s *ConnectionService) ensureClient(ctx context.Context) error {
	if !s.controller.IsInstalled() {
		return fmt.Errorf("tunnelblick: %w", domain.ErrNotInstalled)
	}

	running, err := s.controller.IsRunning(ctx)
	if err != nil {
		return fmt.Errorf("check tunnelblick: %w", err)
	}
	if running {
		return nil
	}

	logger.Info("launching Tunnelblick")
	return s.controller.Launch(ctx)
}

// ensureProfile installs the server's profile when Tunnelblick does not
// have it yet.
func (s *ConnectionService) ensureProfile(ctx context.Context, hostname string, protocol domain.Protocol, configName string) error {
	installed, err := s.installer.IsInstalled(ctx, configName)
	if err != nil {
		return fmt.Errorf("check profile: %w", err)
	}
	if installed {
		return nil
	}

	if s.credentials == nil {
		return domain.ErrNoCredentials
	}
	creds, err := s.credentials.Credentials(ctx)
	if err != nil {
		return err
	}

	logger.Info("installing configuration %s", configName)
	if err := s.installer.Install(ctx, hostname, protocol, creds); err != nil {
		return fmt.Errorf("install profile: %w", err)
	}
	return nil
}

// waitConnected polls the configuration state until it reports CONNECTED.
// A tunnel that bounces back to DISCONNECTED after negotiating is a
// failure; running out of time is ErrConnectTimeout.
func (s *ConnectionService) waitConnected(ctx context.Context, configName string) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	sawConnecting := false
	for {
		state, err := s.stateOf(ctx, configName)
		if err != nil {
			return err
		}

		switch state {
		case domain.StateConnected:
			logger.Debug("%s is connected", configName)
			return nil
		case domain.StateConnecting:
			sawConnecting = true
		case domain.StateDisconnected, domain.StateExiting:
			if sawConnecting {
				return fmt.Errorf("connection to %s failed: tunnel reported %s (check your credentials)",
					configName, state)
			}
		}

		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return fmt.Errorf("%s did not connect within %s: %w",
					configName, s.timeout, domain.ErrConnectTimeout)
			}
			return ctx.Err()
		case <-time.After(s.pollInterval):
		}
	}
}

// stateOf reads the current state of a single configuration.
func (s *ConnectionService) stateOf(ctx context.Context, configName string) (domain.ConnectionState, error) {
	states, err := s.controller.States(ctx)
	if err != nil {
		return domain.StateUnknown, fmt.Errorf("read states: %w", err)
	}
	for _, cs := range states {
		if cs.Name == configName {
			return cs.State, nil
		}
	}
	return domain.StateUnknown, nil
}

// addLocation fills in the public IP and its geolocation, best-effort.
func (s *ConnectionService) addLocation(ctx context.Context, status *domain.ConnectionStatus) {
	if s.geo == nil {
		return
	}

	ip, err := s.geo.PublicIP(ctx)
	if err != nil {
		logger.Debug("public IP lookup failed: %v", err)
		return
	}
	status.PublicIP = ip

	loc, err := s.geo.Lookup(ctx, ip)
	if err != nil {
		logger.Debug("geolocation failed: %v", err)
		return
	}
	status.City = loc.City
	status.Country = loc.Country
}

// addServerLoad fills in the connected server's current load, best-effort.
func (s *ConnectionService) addServerLoad(ctx context.Context, status *domain.ConnectionStatus) {
	if s.servers == nil || status.ServerHostname == "" {
		return
	}

	server, err := s.servers.ByHostname(ctx, status.ServerHostname)
	if err != nil {
		logger.Debug("server load lookup failed: %v", err)
		return
	}
	status.ServerLoad = server.Load
}

// newEvent seeds a connection event for the attempt.
func (s *ConnectionService) newEvent(server *domain.Server, protocol domain.Protocol) domain.ConnectionEvent {
	return domain.ConnectionEvent{
		ID:          uuid.New().String(),
		Hostname:    server.Hostname,
		ConfigName:  domain.ConfigNameForHostname(server.Hostname, protocol),
		CountryCode: server.CountryCode(),
		City:        server.CityName(),
		ServerLoad:  server.Load,
		Protocol:    protocol,
		StartedAt:   time.Now().UTC(),
	}
}

// record persists the outcome of a connection attempt.
func (s *ConnectionService) record(ctx context.Context, event domain.ConnectionEvent, connectErr error) {
	if s.history == nil || !s.historyEnabled() {
		return
	}

	event.CompletedAt = time.Now().UTC()
	if connectErr != nil {
		event.Status = domain.EventFailed
		event.Error = connectErr.Error()
	} else {
		event.Status = domain.EventConnected
	}

	if err := s.history.Save(ctx, event); err != nil {
		logger.Warn("failed to record connection event: %v", err)
		return
	}
	if err := s.history.Prune(ctx, domain.DefaultHistoryKeep); err != nil {
		logger.Warn("failed to prune connection history: %v", err)
	}
}

// recordDisconnect persists an explicit disconnect of an active config.
func (s *ConnectionService) recordDisconnect(ctx context.Context, active domain.ConfigState) {
	if s.history == nil || !s.historyEnabled() {
		return
	}

	now := time.Now().UTC()
	event := domain.ConnectionEvent{
		ID:          uuid.New().String(),
		Hostname:    domain.HostnameFromConfigName(active.Name),
		ConfigName:  active.Name,
		ServerLoad:  -1,
		Protocol:    protocolFromConfigName(active.Name),
		Status:      domain.EventDisconnected,
		StartedAt:   now,
		CompletedAt: now,
	}
	if err := s.history.Save(ctx, event); err != nil {
		logger.Warn("failed to record disconnect event: %v", err)
	}
}

// historyEnabled reports whether event recording is switched on.
func (s *ConnectionService) historyEnabled() bool {
	if s.settings == nil {
		return true
	}
	app, err := s.settings.Get()
	if err != nil {
		return true
	}
	return app.History.Enabled
}

// defaultProtocol returns the configured protocol, or UDP.
func (s *ConnectionService) defaultProtocol() domain.Protocol {
	if s.settings != nil {
		if app, err := s.settings.Get(); err == nil && app.Connect.Protocol.IsValid() {
			return app.Connect.Protocol
		}
	}
	return domain.ProtocolUDP
}

// activeState returns the connected configuration, or a connecting one
// when nothing is fully up yet.
func activeState(states []domain.ConfigState) *domain.ConfigState {
	var connecting *domain.ConfigState
	for i := range states {
		switch states[i].State {
		case domain.StateConnected:
			return &states[i]
		case domain.StateConnecting:
			if connecting == nil {
				connecting = &states[i]
			}
		}
	}
	return connecting
}

// protocolFromConfigName recovers the transport from a configuration
// name suffix.
func protocolFromConfigName(configName string) domain.Protocol {
	if strings.HasSuffix(strings.ToLower(configName), ".tcp") {
		return domain.ProtocolTCP
	}
	return domain.ProtocolUDP
}
