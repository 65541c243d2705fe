package domain

const unknownDescription = "Unknown"

// Default selection values applied when nothing is configured.
const (
	// DefaultMaxLoad is the load percentage below which a recommended
	// server is accepted without scanning the rest of the list.
	DefaultMaxLoad = 30

	// DefaultServerLimit is how many recommendations to request.
	DefaultServerLimit = 20

	// DefaultHistoryKeep is how many connection events Prune retains.
	DefaultHistoryKeep = 100
)

// ConnectSettings holds default server-selection preferences.
type ConnectSettings struct {
	// Country is the preferred two-letter country code, "" for any.
	Country string

	// City is the preferred city substring filter, "" for any.
	City string

	// Protocol is the OpenVPN transport for new profiles.
	Protocol Protocol

	// MaxLoad is the acceptable load threshold for recommendations.
	MaxLoad int
}

// ServerSettings holds listing preferences.
type ServerSettings struct {
	// Limit is how many recommendations to request.
	Limit int
}

// HistorySettings holds connection-history preferences.
type HistorySettings struct {
	// Enabled toggles recording of connection events.
	Enabled bool
}

// AppSettings holds all application settings.
type AppSettings struct {
	// Connect holds server-selection defaults.
	Connect ConnectSettings

	// Servers holds listing defaults.
	Servers ServerSettings

	// History holds history recording defaults.
	History HistorySettings
}

// DefaultAppSettings returns settings with sensible defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Connect: ConnectSettings{
			Protocol: ProtocolUDP,
			MaxLoad:  DefaultMaxLoad,
		},
		Servers: ServerSettings{
			Limit: DefaultServerLimit,
		},
		History: HistorySettings{
			Enabled: true,
		},
	}
}
