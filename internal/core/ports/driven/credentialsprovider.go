package driven

import (
	"context"

	"github.com/RobGruhl/nordvpn-cli/internal/core/domain"
)

// CredentialsProvider supplies NordVPN service credentials.
type CredentialsProvider interface {
	// Credentials returns the configured credentials.
	// Returns domain.ErrNoCredentials (wrapped) when they are not set.
	Credentials(ctx context.Context) (domain.Credentials, error)
}
