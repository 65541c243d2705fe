package domain

import "time"

// EventStatus is the outcome of a recorded connection attempt.
type EventStatus string

// Connection event outcomes.
const (
	// EventConnected means the tunnel came up.
	EventConnected EventStatus = "connected"

	// EventFailed means the tunnel never reached CONNECTED.
	EventFailed EventStatus = "failed"

	// EventDisconnected records an explicit disconnect.
	EventDisconnected EventStatus = "disconnected"
)

// IsValid returns true if the status is recognised.
func (s EventStatus) IsValid() bool {
	switch s {
	case EventConnected, EventFailed, EventDisconnected:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (s EventStatus) String() string {
	return string(s)
}

// ConnectionEvent records one connect or disconnect attempt.
type ConnectionEvent struct {
	// ID is the unique identifier (UUID).
	ID string `json:"id"`

	// Hostname is the NordVPN server hostname targeted.
	Hostname string `json:"hostname"`

	// ConfigName is the Tunnelblick configuration used.
	ConfigName string `json:"config_name"`

	// CountryCode is the server's two-letter country code, when known.
	CountryCode string `json:"country_code,omitempty"`

	// City is the server's city, when known.
	City string `json:"city,omitempty"`

	// ServerLoad is the server load at selection time, -1 when unknown.
	ServerLoad int `json:"server_load"`

	// Protocol is the transport the profile uses.
	Protocol Protocol `json:"protocol"`

	// Status is the outcome of the attempt.
	Status EventStatus `json:"status"`

	// Error holds the failure text for failed attempts.
	Error string `json:"error,omitempty"`

	// StartedAt is when the attempt began.
	StartedAt time.Time `json:"started_at"`

	// CompletedAt is when the attempt finished, zero while in flight.
	CompletedAt time.Time `json:"completed_at,omitempty"`
}
