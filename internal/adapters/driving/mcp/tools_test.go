package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RobGruhl/nordvpn-cli/internal/core/domain"
)

func newTestServer(t *testing.T, connection *mockConnectionService, servers *mockServerService) *Server {
	t.Helper()
	server, err := NewServer(&Ports{Connection: connection, Servers: servers})
	require.NoError(t, err)
	return server
}

func TestServer_handleStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("returns connection status", func(t *testing.T) {
		connection := &mockConnectionService{
			status: &domain.ConnectionStatus{
				Connected:      true,
				State:          domain.StateConnected,
				ServerHostname: "de750.nordvpn.com",
				PublicIP:       "192.0.2.55",
				Country:        "DE",
				City:           "Berlin",
				ServerLoad:     12,
			},
		}
		server := newTestServer(t, connection, &mockServerService{})

		_, output, err := server.handleStatus(ctx, nil, StatusInput{})

		require.NoError(t, err)
		assert.True(t, output.Connected)
		assert.Equal(t, "CONNECTED", output.State)
		assert.Equal(t, "de750.nordvpn.com", output.Server)
		assert.Equal(t, "192.0.2.55", output.PublicIP)
		assert.Equal(t, 12, output.ServerLoad)
	})

	t.Run("returns error on status failure", func(t *testing.T) {
		connection := &mockConnectionService{err: errors.New("osascript failed")}
		server := newTestServer(t, connection, &mockServerService{})

		_, _, err := server.handleStatus(ctx, nil, StatusInput{})

		assert.Error(t, err)
	})
}

func TestServer_handleConnect(t *testing.T) {
	ctx := context.Background()

	t.Run("connects with country and protocol", func(t *testing.T) {
		connection := &mockConnectionService{
			status: &domain.ConnectionStatus{
				Connected:      true,
				State:          domain.StateConnected,
				ServerHostname: "de750.nordvpn.com",
				PublicIP:       "192.0.2.55",
			},
		}
		server := newTestServer(t, connection, &mockServerService{})

		input := ConnectInput{Country: "de", City: "berlin", Protocol: "tcp"}
		_, output, err := server.handleConnect(ctx, nil, input)

		require.NoError(t, err)
		assert.True(t, output.Connected)
		assert.Equal(t, "de750.nordvpn.com", output.Server)
		assert.Equal(t, "de", connection.lastRequest.CountryCode)
		assert.Equal(t, "berlin", connection.lastRequest.City)
		assert.Equal(t, domain.ProtocolTCP, connection.lastRequest.Protocol)
	})

	t.Run("rejects unknown protocol", func(t *testing.T) {
		connection := &mockConnectionService{}
		server := newTestServer(t, connection, &mockServerService{})

		input := ConnectInput{Server: "de750", Protocol: "quic"}
		_, _, err := server.handleConnect(ctx, nil, input)

		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("returns error on connect failure", func(t *testing.T) {
		connection := &mockConnectionService{err: domain.ErrConnectTimeout}
		server := newTestServer(t, connection, &mockServerService{})

		_, _, err := server.handleConnect(ctx, nil, ConnectInput{Server: "de750"})

		assert.ErrorIs(t, err, domain.ErrConnectTimeout)
	})
}

func TestServer_handleDisconnect(t *testing.T) {
	ctx := context.Background()

	t.Run("disconnects", func(t *testing.T) {
		connection := &mockConnectionService{}
		server := newTestServer(t, connection, &mockServerService{})

		_, output, err := server.handleDisconnect(ctx, nil, DisconnectInput{})

		require.NoError(t, err)
		assert.True(t, output.Disconnected)
		assert.True(t, connection.disconnected)
	})
}

func TestServer_handleFindServer(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the optimal server", func(t *testing.T) {
		optimal := makeServer("de750.nordvpn.com", 12, "DE", "Berlin")
		servers := &mockServerService{optimal: &optimal}
		server := newTestServer(t, &mockConnectionService{}, servers)

		input := FindServerInput{Country: "de", MaxLoad: 40}
		_, output, err := server.handleFindServer(ctx, nil, input)

		require.NoError(t, err)
		assert.Equal(t, "de750.nordvpn.com", output.Hostname)
		assert.Equal(t, "DE", output.Country)
		assert.Equal(t, "Berlin", output.City)
		assert.Equal(t, 12, output.Load)
		assert.Equal(t, "de", servers.lastCriteria.CountryCode)
		assert.Equal(t, 40, servers.lastCriteria.MaxLoad)
	})

	t.Run("returns error when nothing matches", func(t *testing.T) {
		server := newTestServer(t, &mockConnectionService{}, &mockServerService{})

		_, _, err := server.handleFindServer(ctx, nil, FindServerInput{Country: "xx"})

		assert.ErrorIs(t, err, domain.ErrNoServersAvailable)
	})
}
