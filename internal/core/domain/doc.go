// Package domain defines the core business entities for the NordVPN CLI.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Server: A NordVPN server with its load and capabilities
//   - Country: A NordVPN location, optionally carrying a city
//   - ConnectionState: Tunnelblick's view of a configuration
//   - ConnectionStatus: The combined connection picture shown to users
//   - ConnectionEvent: A recorded connect/disconnect attempt
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
