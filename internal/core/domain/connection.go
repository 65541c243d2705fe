package domain

import (
	"regexp"
	"strings"
)

// ConnectionState mirrors the state words Tunnelblick reports for a
// configuration via AppleScript.
type ConnectionState string

// Tunnelblick connection states.
const (
	// StateConnected means the tunnel is up.
	StateConnected ConnectionState = "CONNECTED"

	// StateConnecting means OpenVPN is negotiating the tunnel.
	StateConnecting ConnectionState = "CONNECTING"

	// StateDisconnected means the configuration is idle.
	StateDisconnected ConnectionState = "DISCONNECTED"

	// StateExiting means the tunnel is shutting down.
	StateExiting ConnectionState = "EXITING"

	// StateSleeping means the connection is suspended (machine sleep).
	StateSleeping ConnectionState = "SLEEPING"

	// StateUnknown covers state words this tool does not recognise.
	StateUnknown ConnectionState = "UNKNOWN"
)

// IsValid returns true if the state is one Tunnelblick reports.
func (s ConnectionState) IsValid() bool {
	switch s {
	case StateConnected, StateConnecting, StateDisconnected, StateExiting, StateSleeping:
		return true
	default:
		return false
	}
}

// IsActive returns true while a tunnel is up or coming up.
func (s ConnectionState) IsActive() bool {
	return s == StateConnected || s == StateConnecting
}

// String returns the string representation.
func (s ConnectionState) String() string {
	return string(s)
}

// Description returns a human-readable description of the state.
func (s ConnectionState) Description() string {
	switch s {
	case StateConnected:
		return "Connected"
	case StateConnecting:
		return "Connecting..."
	case StateDisconnected:
		return "Disconnected"
	case StateExiting:
		return "Disconnecting..."
	case StateSleeping:
		return "Sleeping"
	default:
		return unknownDescription
	}
}

// ParseConnectionState maps a raw Tunnelblick state word to a
// ConnectionState. Unrecognised words map to StateUnknown.
func ParseConnectionState(raw string) ConnectionState {
	state := ConnectionState(strings.ToUpper(strings.TrimSpace(raw)))
	if !state.IsValid() {
		return StateUnknown
	}
	return state
}

// ConfigState pairs a Tunnelblick configuration name with its state.
type ConfigState struct {
	// Name is the Tunnelblick configuration name (e.g., "de750.nordvpn.com.udp").
	Name string

	// State is the configuration's current connection state.
	State ConnectionState
}

// ConnectionStatus is the combined connection picture shown to users.
type ConnectionStatus struct {
	// Connected is true when a configuration reports CONNECTED.
	Connected bool `json:"connected"`

	// State is the effective state across all configurations.
	State ConnectionState `json:"state"`

	// ConfigName is the active configuration, when any.
	ConfigName string `json:"config_name,omitempty"`

	// ServerHostname is the NordVPN hostname behind the configuration.
	ServerHostname string `json:"server_hostname,omitempty"`

	// PublicIP is the machine's current public address.
	PublicIP string `json:"public_ip,omitempty"`

	// Country is the geolocated country of the public address.
	Country string `json:"country,omitempty"`

	// City is the geolocated city of the public address.
	City string `json:"city,omitempty"`

	// ServerLoad is the connected server's load percentage, -1 when unknown.
	ServerLoad int `json:"server_load"`
}

// hostnamePattern matches the NordVPN hostname prefix of a Tunnelblick
// configuration name, e.g. "de750.nordvpn.com" in "de750.nordvpn.com.udp".
var hostnamePattern = regexp.MustCompile(`^([a-z]{2}\d+\.nordvpn\.com)`)

// HostnameFromConfigName extracts the server hostname from a Tunnelblick
// configuration name. Returns "" when the name is not a NordVPN profile.
func HostnameFromConfigName(configName string) string {
	m := hostnamePattern.FindStringSubmatch(strings.ToLower(configName))
	if m == nil {
		return ""
	}
	return m[1]
}

// ConfigNameForHostname returns the Tunnelblick configuration name this tool
// installs for a server, e.g. ("de750", ProtocolUDP) -> "de750.nordvpn.com.udp".
func ConfigNameForHostname(hostname string, p Protocol) string {
	return NormalizeHostname(hostname) + "." + p.ConfigSuffix()
}
