// Package mcp provides an MCP (Model Context Protocol) server adapter
// for the nordvpn tool. It lets AI assistants like Claude inspect the
// VPN state, pick servers, and connect or disconnect.
package mcp

import "errors"

// ErrMissingConnectionService is returned when the connection service is not provided.
var ErrMissingConnectionService = errors.New("mcp: connection service is required")

// ErrMissingServerService is returned when the server service is not provided.
var ErrMissingServerService = errors.New("mcp: server service is required")
