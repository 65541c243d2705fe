// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - ServerCatalog: NordVPN server and country lookups (public API)
//   - VPNController: Tunnelblick process and connection control
//   - ProfileInstaller: OpenVPN configuration download and installation
//   - CredentialsProvider: NordVPN service credentials
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - GeoResolver: Public IP geolocation. Without it, status omits location.
//   - HistoryStore: Connection history persistence. Without it, history
//     commands are disabled and connections are not recorded.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
