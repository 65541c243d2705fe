package driven

import (
	"context"

	"github.com/RobGruhl/nordvpn-cli/internal/core/domain"
)

// VPNController drives the Tunnelblick application.
// All blocking calls shell out to macOS scripting and honour the context.
type VPNController interface {
	// IsInstalled reports whether Tunnelblick.app is present on disk.
	IsInstalled() bool

	// IsRunning reports whether the Tunnelblick process is alive.
	IsRunning(ctx context.Context) (bool, error)

	// Launch starts Tunnelblick and waits briefly for it to register.
	Launch(ctx context.Context) error

	// Configurations returns the names of all installed configurations.
	// Returns domain.ErrNotRunning when Tunnelblick is not running.
	Configurations(ctx context.Context) ([]string, error)

	// States returns every configuration paired with its current state,
	// in Tunnelblick's configuration order.
	States(ctx context.Context) ([]domain.ConfigState, error)

	// Connect asks Tunnelblick to connect the named configuration.
	// It returns once the command is issued; callers poll States to
	// observe progress.
	Connect(ctx context.Context, configName string) error

	// Disconnect asks Tunnelblick to disconnect the named configuration.
	Disconnect(ctx context.Context, configName string) error

	// DisconnectAll disconnects every configuration.
	DisconnectAll(ctx context.Context) error
}
