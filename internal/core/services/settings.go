package services

import (
	"fmt"
	"strings"

	"github.com/RobGruhl/nordvpn-cli/internal/core/domain"
	"github.com/RobGruhl/nordvpn-cli/internal/core/ports/driven"
	"github.com/RobGruhl/nordvpn-cli/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyConnectCountry  = "connect.country"
	keyConnectCity     = "connect.city"
	keyConnectProtocol = "connect.protocol"
	keyConnectMaxLoad  = "connect.max_load"
	keyServerLimit     = "servers.limit"
	keyHistoryEnabled  = "history.enabled"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings, overlaying stored values
// on the defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()
	if s.configStore == nil {
		return &defaults, nil
	}

	settings := &domain.AppSettings{
		Connect: domain.ConnectSettings{
			Country:  s.configStore.GetString(keyConnectCountry), // no default - empty means any country
			City:     s.configStore.GetString(keyConnectCity),
			Protocol: s.getProtocol(defaults.Connect.Protocol),
			MaxLoad:  s.getInt(keyConnectMaxLoad, defaults.Connect.MaxLoad),
		},
		Servers: domain.ServerSettings{
			Limit: s.getInt(keyServerLimit, defaults.Servers.Limit),
		},
		History: domain.HistorySettings{
			Enabled: s.getBool(keyHistoryEnabled, defaults.History.Enabled),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if s.configStore == nil {
		return domain.ErrNotImplemented
	}
	if settings == nil {
		return domain.ErrInvalidInput
	}

	if err := s.configStore.Set(keyConnectCountry, settings.Connect.Country); err != nil {
		return fmt.Errorf("save default country: %w", err)
	}
	if err := s.configStore.Set(keyConnectCity, settings.Connect.City); err != nil {
		return fmt.Errorf("save default city: %w", err)
	}
	if err := s.configStore.Set(keyConnectProtocol, settings.Connect.Protocol.String()); err != nil {
		return fmt.Errorf("save default protocol: %w", err)
	}
	if err := s.configStore.Set(keyConnectMaxLoad, settings.Connect.MaxLoad); err != nil {
		return fmt.Errorf("save load threshold: %w", err)
	}
	if err := s.configStore.Set(keyServerLimit, settings.Servers.Limit); err != nil {
		return fmt.Errorf("save server limit: %w", err)
	}
	if err := s.configStore.Set(keyHistoryEnabled, settings.History.Enabled); err != nil {
		return fmt.Errorf("save history enabled: %w", err)
	}

	return nil
}

// SetDefaultCountry stores the preferred country code. An empty value
// clears the preference.
func (s *SettingsService) SetDefaultCountry(country string) error {
	if s.configStore == nil {
		return domain.ErrNotImplemented
	}
	country = strings.ToLower(strings.TrimSpace(country))
	if err := s.configStore.Set(keyConnectCountry, country); err != nil {
		return fmt.Errorf("save default country: %w", err)
	}
	return nil
}

// SetDefaultProtocol stores the preferred OpenVPN transport.
func (s *SettingsService) SetDefaultProtocol(protocol domain.Protocol) error {
	if s.configStore == nil {
		return domain.ErrNotImplemented
	}
	if !protocol.IsValid() {
		return fmt.Errorf("%w: unknown protocol %q", domain.ErrInvalidInput, protocol)
	}
	if err := s.configStore.Set(keyConnectProtocol, protocol.String()); err != nil {
		return fmt.Errorf("save default protocol: %w", err)
	}
	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getProtocol(defaultVal domain.Protocol) domain.Protocol {
	val := s.configStore.GetString(keyConnectProtocol)
	if val == "" {
		return defaultVal
	}
	protocol, ok := domain.ParseProtocol(val)
	if !ok {
		return defaultVal
	}
	return protocol
}
