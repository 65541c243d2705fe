package driving

import (
	"context"

	"github.com/RobGruhl/nordvpn-cli/internal/core/domain"
)

// SetupService verifies and prepares the local environment.
type SetupService interface {
	// ClientInstalled reports whether Tunnelblick is installed.
	ClientInstalled() bool

	// ClientRunning reports whether Tunnelblick is running.
	ClientRunning(ctx context.Context) (bool, error)

	// LaunchClient starts Tunnelblick if it is not already running.
	// Returns domain.ErrNotInstalled when it is not installed.
	LaunchClient(ctx context.Context) error

	// Credentials returns the configured NordVPN service credentials.
	// Returns domain.ErrNoCredentials (wrapped) when they are missing.
	Credentials(ctx context.Context) (domain.Credentials, error)

	// VerifyAPI checks that the NordVPN API is reachable and returns the
	// number of countries it reports.
	VerifyAPI(ctx context.Context) (int, error)
}
