// Package connectors holds clients for the external HTTP services the
// application talks to. Each subpackage wraps one service behind a
// driven port: nordapi implements the server catalog against the public
// NordVPN API.
package connectors
