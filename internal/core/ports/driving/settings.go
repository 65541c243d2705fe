package driving

import "github.com/RobGruhl/nordvpn-cli/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings, falling back to defaults
	// for anything unset.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// SetDefaultCountry updates the country used when connect is called
	// without a target.
	SetDefaultCountry(country string) error

	// SetDefaultProtocol updates the tunnel protocol for new configurations.
	SetDefaultProtocol(protocol domain.Protocol) error

	// GetDefaults returns built-in default settings.
	GetDefaults() domain.AppSettings
}
