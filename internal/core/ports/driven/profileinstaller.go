package driven

import (
	"context"

	"github.com/RobGruhl/nordvpn-cli/internal/core/domain"
)

// ProfileInstaller downloads OpenVPN profiles and installs them into
// Tunnelblick as .tblk bundles with embedded service credentials.
type ProfileInstaller interface {
	// Installed returns the configuration names Tunnelblick knows about,
	// read from its Configurations and Shared directories.
	Installed(ctx context.Context) ([]string, error)

	// IsInstalled reports whether the named configuration is installed.
	IsInstalled(ctx context.Context, configName string) (bool, error)

	// Install downloads the server's profile, packages it with the
	// credentials, hands it to Tunnelblick, and waits until Tunnelblick
	// registers the configuration.
	Install(ctx context.Context, hostname string, protocol domain.Protocol, creds domain.Credentials) error

	// DownloadArchive fetches the full NordVPN profile archive and
	// extracts UDP profiles into destDir. A non-empty countryPrefix
	// (e.g., "de") keeps only that country's profiles. Returns the
	// number of profiles extracted.
	DownloadArchive(ctx context.Context, destDir, countryPrefix string) (int, error)
}
