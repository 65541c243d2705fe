package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/RobGruhl/nordvpn-cli/internal/core/domain"
)

var (
	connectServer   string
	connectCountry  string
	connectCity     string
	connectProtocol string
	connectLast     bool
)

var connectCmd = &cobra.Command{
	Use:   "connect",
	Short: "Connect to a NordVPN server",
	Long: `Connects to a NordVPN server through Tunnelblick.

The target is either a specific server (--server de750), the optimal
server in a country (--country de), or the last server you connected
to (--last). Without a target the configured default country is used.

The server's OpenVPN profile is downloaded and installed into
Tunnelblick on first use; this needs NORD_USER and NORD_PASS set (see
"nordvpn setup").`,
	Args: cobra.NoArgs,
	RunE: runConnect,
}

func init() {
	connectCmd.Flags().StringVarP(&connectServer, "server", "s", "", "server hostname (e.g. de750)")
	connectCmd.Flags().StringVarP(&connectCountry, "country", "c", "", "country code or name")
	connectCmd.Flags().StringVar(&connectCity, "city", "", "city within the country")
	connectCmd.Flags().StringVarP(&connectProtocol, "protocol", "p", "", "tunnel protocol (udp or tcp)")
	connectCmd.Flags().BoolVarP(&connectLast, "last", "l", false, "reconnect to the last used server")
	connectCmd.MarkFlagsMutuallyExclusive("server", "last")
	connectCmd.MarkFlagsMutuallyExclusive("country", "last")
	rootCmd.AddCommand(connectCmd)
}

func runConnect(cmd *cobra.Command, _ []string) error {
	if connectionService == nil {
		return errors.New("connection service not configured")
	}

	if connectLast {
		status, err := withSpinner(cmd.Context(), "Reconnecting...",
			func(ctx context.Context) (*domain.ConnectionStatus, error) {
				return connectionService.ConnectLast(ctx)
			})
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return errors.New("no previous connection recorded, use --server or --country")
			}
			return err
		}
		printConnected(cmd, status)
		return nil
	}

	req := domain.ConnectRequest{
		Hostname:    connectServer,
		CountryCode: connectCountry,
		City:        connectCity,
	}
	if connectProtocol != "" {
		protocol, ok := domain.ParseProtocol(connectProtocol)
		if !ok {
			return fmt.Errorf("unknown protocol %q (use udp or tcp)", connectProtocol)
		}
		req.Protocol = protocol
	}

	if !req.HasTarget() && !hasDefaultCountry() {
		return errors.New("no target: use --server, --country, or --last " +
			"(or set a default country in the config file)")
	}

	server, err := pickServer(cmd, req)
	if err != nil {
		return err
	}
	if server != nil {
		req.Hostname = server.Hostname
		target := server.Hostname
		if city := server.CityName(); city != "" {
			target = fmt.Sprintf("%s (%s, %s)", server.Hostname, city, server.CountryCode())
		}
		cmd.Printf("Selected %s, load %d%%\n", target, server.Load)
	}

	status, err := withSpinner(cmd.Context(), "Connecting...",
		func(ctx context.Context) (*domain.ConnectionStatus, error) {
			return connectionService.Connect(ctx, req)
		})
	if err != nil {
		return err
	}

	printConnected(cmd, status)
	return nil
}

// pickServer resolves a country request to a concrete server so the
// pick can be shown before connecting. Explicit hostnames and requests
// left to configured defaults are resolved by the service instead.
func pickServer(cmd *cobra.Command, req domain.ConnectRequest) (*domain.Server, error) {
	if req.Hostname != "" || req.CountryCode == "" || serverService == nil {
		return nil, nil
	}

	server, err := withSpinner(cmd.Context(), "Finding the best server...",
		func(ctx context.Context) (*domain.Server, error) {
			return serverService.Optimal(ctx, domain.SelectionCriteria{
				CountryCode: req.CountryCode,
				City:        req.City,
			})
		})
	if err != nil {
		return nil, fmt.Errorf("find server: %w", err)
	}
	return server, nil
}

// hasDefaultCountry reports whether settings provide a connect target.
func hasDefaultCountry() bool {
	if settingsService == nil {
		return false
	}
	settings, err := settingsService.Get()
	if err != nil {
		return false
	}
	return settings.Connect.Country != ""
}

func printConnected(cmd *cobra.Command, status *domain.ConnectionStatus) {
	cmd.Println(styleGood.Render("Connected."))
	printStatus(cmd, status)
}
