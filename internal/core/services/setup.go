package services

import (
	"context"
	"fmt"

	"github.com/RobGruhl/nordvpn-cli/internal/core/domain"
	"github.com/RobGruhl/nordvpn-cli/internal/core/ports/driven"
	"github.com/RobGruhl/nordvpn-cli/internal/core/ports/driving"
)

// Ensure SetupService implements the interface.
var _ driving.SetupService = (*SetupService)(nil)

// SetupService checks and prepares everything a first connection needs:
// the Tunnelblick client, service credentials, and API reachability.
type SetupService struct {
	controller  driven.VPNController
	credentials driven.CredentialsProvider
	catalog     driven.ServerCatalog
}

// NewSetupService creates a new setup service.
func NewSetupService(
	controller driven.VPNController,
	credentials driven.CredentialsProvider,
	catalog driven.ServerCatalog,
) *SetupService {
	return &SetupService{
		controller:  controller,
		credentials: credentials,
		catalog:     catalog,
	}
}

// ClientInstalled reports whether Tunnelblick.app is present on disk.
func (s *SetupService) ClientInstalled() bool {
	if s.controller == nil {
		return false
	}
	return s.controller.IsInstalled()
}

// ClientRunning reports whether the Tunnelblick process is alive.
func (s *SetupService) ClientRunning(ctx context.Context) (bool, error) {
	if s.controller == nil {
		return false, domain.ErrNotImplemented
	}
	return s.controller.IsRunning(ctx)
}

// LaunchClient starts Tunnelblick.
func (s *SetupService) LaunchClient(ctx context.Context) error {
	if s.controller == nil {
		return domain.ErrNotImplemented
	}
	return s.controller.Launch(ctx)
}

// Credentials returns the configured service credentials.
func (s *SetupService) Credentials(ctx context.Context) (domain.Credentials, error) {
	if s.credentials == nil {
		return domain.Credentials{}, domain.ErrNoCredentials
	}
	return s.credentials.Credentials(ctx)
}

// VerifyAPI confirms the NordVPN API is reachable and returns the number
// of countries it reports.
func (s *SetupService) VerifyAPI(ctx context.Context) (int, error) {
	if s.catalog == nil {
		return 0, domain.ErrNotImplemented
	}

	countries, err := s.catalog.Countries(ctx)
	if err != nil {
		return 0, fmt.Errorf("verify API: %w", err)
	}
	return len(countries), nil
}
