package mcp

import (
	"github.com/RobGruhl/nordvpn-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Connection drives the tunnel lifecycle.
	Connection driving.ConnectionService

	// Servers answers catalog questions.
	Servers driving.ServerService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Connection == nil {
		return ErrMissingConnectionService
	}
	if p.Servers == nil {
		return ErrMissingServerService
	}
	return nil
}
