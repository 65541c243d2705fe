package driven

import (
	"context"

	"github.com/RobGruhl/nordvpn-cli/internal/core/domain"
)

// GeoResolver discovers the machine's public address and its location.
type GeoResolver interface {
	// PublicIP returns the machine's current public IP address.
	PublicIP(ctx context.Context) (string, error)

	// Lookup geolocates an IP address. Missing city or country data
	// degrades to empty fields rather than an error.
	Lookup(ctx context.Context, ip string) (*domain.GeoLocation, error)
}
