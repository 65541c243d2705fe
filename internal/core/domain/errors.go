package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates functionality is not yet available.
	ErrNotImplemented = errors.New("not implemented")

	// VPN Client Errors.

	// ErrNotInstalled indicates Tunnelblick is not installed on this machine.
	ErrNotInstalled = errors.New("Tunnelblick is not installed")

	// ErrNotRunning indicates Tunnelblick is installed but not running.
	ErrNotRunning = errors.New("Tunnelblick is not running")

	// ErrNotConnected indicates no VPN configuration is currently connected.
	ErrNotConnected = errors.New("not connected")

	// ErrConnectTimeout indicates the connection did not reach CONNECTED
	// within the polling window.
	ErrConnectTimeout = errors.New("connection timed out")

	// Server Selection Errors.

	// ErrNoServersAvailable indicates the API returned no servers for the
	// requested criteria.
	ErrNoServersAvailable = errors.New("no servers available")

	// ErrRateLimited indicates the API rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")

	// Credential Errors.

	// ErrNoCredentials indicates NORD_USER/NORD_PASS are not set.
	// These are NordVPN service credentials, not account login credentials.
	ErrNoCredentials = errors.New("NordVPN service credentials not configured")
)
