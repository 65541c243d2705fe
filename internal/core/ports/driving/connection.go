package driving

import (
	"context"

	"github.com/RobGruhl/nordvpn-cli/internal/core/domain"
)

// ConnectionService manages the VPN tunnel lifecycle.
type ConnectionService interface {
	// Connect selects a server for the request, installs its configuration
	// if needed, and brings the tunnel up. It blocks until the tunnel is
	// established or the attempt times out (domain.ErrConnectTimeout).
	Connect(ctx context.Context, req domain.ConnectRequest) (*domain.ConnectionStatus, error)

	// ConnectLast reconnects to the most recent successfully connected
	// server. Returns domain.ErrNotFound when there is no history.
	ConnectLast(ctx context.Context) (*domain.ConnectionStatus, error)

	// Disconnect tears down all active tunnels. It is a no-op when nothing
	// is connected.
	Disconnect(ctx context.Context) error

	// Status reports the current tunnel state, enriched with the public IP
	// and its location when a geo resolver is available.
	Status(ctx context.Context) (*domain.ConnectionStatus, error)

	// Configurations lists the VPN configuration names Tunnelblick knows
	// about.
	Configurations(ctx context.Context) ([]string, error)
}
