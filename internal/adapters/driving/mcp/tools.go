package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/RobGruhl/nordvpn-cli/internal/core/domain"
)

// StatusInput is the input schema for the vpn_status tool.
type StatusInput struct{}

// StatusOutput is the output schema for the vpn_status tool.
type StatusOutput struct {
	Connected  bool   `json:"connected"`
	State      string `json:"state"`
	Server     string `json:"server,omitempty"`
	PublicIP   string `json:"public_ip,omitempty"`
	Country    string `json:"country,omitempty"`
	City       string `json:"city,omitempty"`
	ServerLoad int    `json:"server_load"`
}

// ConnectInput is the input schema for the vpn_connect tool.
type ConnectInput struct {
	Server   string `json:"server,omitempty" jsonschema:"specific server hostname to connect to (e.g. de750)"`
	Country  string `json:"country,omitempty" jsonschema:"two-letter country code or country name"`
	City     string `json:"city,omitempty" jsonschema:"city within the country"`
	Protocol string `json:"protocol,omitempty" jsonschema:"tunnel protocol, udp (default) or tcp"`
}

// ConnectOutput is the output schema for the vpn_connect tool.
type ConnectOutput struct {
	Connected bool   `json:"connected"`
	Server    string `json:"server"`
	PublicIP  string `json:"public_ip,omitempty"`
	Country   string `json:"country,omitempty"`
	City      string `json:"city,omitempty"`
}

// DisconnectInput is the input schema for the vpn_disconnect tool.
type DisconnectInput struct{}

// DisconnectOutput is the output schema for the vpn_disconnect tool.
type DisconnectOutput struct {
	Disconnected bool `json:"disconnected"`
}

// FindServerInput is the input schema for the find_server tool.
type FindServerInput struct {
	Country string `json:"country,omitempty" jsonschema:"two-letter country code or country name"`
	City    string `json:"city,omitempty" jsonschema:"city within the country"`
	MaxLoad int    `json:"max_load,omitempty" jsonschema:"acceptable load percentage threshold (default 30)"`
}

// FindServerOutput is the output schema for the find_server tool.
type FindServerOutput struct {
	Hostname string `json:"hostname"`
	Country  string `json:"country,omitempty"`
	City     string `json:"city,omitempty"`
	Load     int    `json:"load"`
	Status   string `json:"status"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "vpn_status",
		Description: "Get the current VPN connection state, public IP, and location",
	}, s.handleStatus)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "vpn_connect",
		Description: "Connect to a NordVPN server, by hostname or by picking the best server in a country",
	}, s.handleConnect)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "vpn_disconnect",
		Description: "Disconnect the VPN",
	}, s.handleDisconnect)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "find_server",
		Description: "Find the optimal (least loaded) NordVPN server for a country without connecting",
	}, s.handleFindServer)
}

// handleStatus handles the vpn_status tool invocation.
func (s *Server) handleStatus(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ StatusInput,
) (*mcp.CallToolResult, StatusOutput, error) {
	status, err := s.ports.Connection.Status(ctx)
	if err != nil {
		return nil, StatusOutput{}, err
	}

	return nil, StatusOutput{
		Connected:  status.Connected,
		State:      status.State.String(),
		Server:     status.ServerHostname,
		PublicIP:   status.PublicIP,
		Country:    status.Country,
		City:       status.City,
		ServerLoad: status.ServerLoad,
	}, nil
}

// handleConnect handles the vpn_connect tool invocation.
func (s *Server) handleConnect(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ConnectInput,
) (*mcp.CallToolResult, ConnectOutput, error) {
	req := domain.ConnectRequest{
		Hostname:    input.Server,
		CountryCode: input.Country,
		City:        input.City,
	}
	if input.Protocol != "" {
		protocol, ok := domain.ParseProtocol(input.Protocol)
		if !ok {
			return nil, ConnectOutput{}, domain.ErrInvalidInput
		}
		req.Protocol = protocol
	}

	status, err := s.ports.Connection.Connect(ctx, req)
	if err != nil {
		return nil, ConnectOutput{}, err
	}

	return nil, ConnectOutput{
		Connected: status.Connected,
		Server:    status.ServerHostname,
		PublicIP:  status.PublicIP,
		Country:   status.Country,
		City:      status.City,
	}, nil
}

// handleDisconnect handles the vpn_disconnect tool invocation.
func (s *Server) handleDisconnect(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ DisconnectInput,
) (*mcp.CallToolResult, DisconnectOutput, error) {
	if err := s.ports.Connection.Disconnect(ctx); err != nil {
		return nil, DisconnectOutput{}, err
	}
	return nil, DisconnectOutput{Disconnected: true}, nil
}

// handleFindServer handles the find_server tool invocation.
func (s *Server) handleFindServer(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input FindServerInput,
) (*mcp.CallToolResult, FindServerOutput, error) {
	server, err := s.ports.Servers.Optimal(ctx, domain.SelectionCriteria{
		CountryCode: input.Country,
		City:        input.City,
		MaxLoad:     input.MaxLoad,
	})
	if err != nil {
		return nil, FindServerOutput{}, err
	}

	return nil, FindServerOutput{
		Hostname: server.Hostname,
		Country:  server.CountryCode(),
		City:     server.CityName(),
		Load:     server.Load,
		Status:   server.Status,
	}, nil
}
