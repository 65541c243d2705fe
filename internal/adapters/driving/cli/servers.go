package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/RobGruhl/nordvpn-cli/internal/core/domain"
)

var (
	serversLimit    int
	serversCity     string
	serversProtocol string
)

var serversCmd = &cobra.Command{
	Use:   "servers [country]",
	Short: "List recommended servers",
	Long: `Lists the servers NordVPN currently recommends, best first.
An optional country (two-letter code or full name) narrows the list.

Load is coloured: green under 30%, yellow under 70%, red above.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runServers,
}

func init() {
	serversCmd.Flags().IntVarP(&serversLimit, "limit", "n", domain.DefaultServerLimit, "maximum number of servers")
	serversCmd.Flags().StringVar(&serversCity, "city", "", "filter by city name")
	serversCmd.Flags().StringVarP(&serversProtocol, "protocol", "p", "", "require protocol support (udp or tcp)")
	rootCmd.AddCommand(serversCmd)
}

func runServers(cmd *cobra.Command, args []string) error {
	if serverService == nil {
		return errors.New("server service not configured")
	}

	criteria := domain.SelectionCriteria{
		City:  serversCity,
		Limit: serversLimit,
	}
	if len(args) > 0 {
		criteria.CountryCode = args[0]
	}
	if serversProtocol != "" {
		protocol, ok := domain.ParseProtocol(serversProtocol)
		if !ok {
			return fmt.Errorf("unknown protocol %q (use udp or tcp)", serversProtocol)
		}
		criteria.Protocol = protocol
	}

	servers, err := withSpinner(cmd.Context(), "Fetching servers...",
		func(ctx context.Context) ([]domain.Server, error) {
			return serverService.Recommended(ctx, criteria)
		})
	if err != nil {
		return fmt.Errorf("list servers: %w", err)
	}
	servers = filterServersByCity(servers, serversCity)
	if serversProtocol != "" {
		servers = filterServersByProtocol(servers, criteria.Protocol)
	}

	if len(servers) == 0 {
		cmd.Println("No servers found.")
		return nil
	}

	rows := make([][]string, len(servers))
	for i := range servers {
		rows[i] = []string{
			servers[i].Hostname,
			servers[i].CityName(),
			formatLoad(servers[i].Load),
			servers[i].Status,
		}
	}

	cmd.Println(renderTable([]string{"Hostname", "City", "Load", "Status"}, rows))
	cmd.Printf("%d servers\n", len(servers))
	return nil
}

// filterServersByCity keeps servers whose city contains the given
// substring. An empty filter keeps everything.
func filterServersByCity(servers []domain.Server, city string) []domain.Server {
	if city == "" {
		return servers
	}
	var filtered []domain.Server
	for i := range servers {
		if containsFold(servers[i].CityName(), city) {
			filtered = append(filtered, servers[i])
		}
	}
	return filtered
}

// filterServersByProtocol keeps servers that support the protocol.
// Servers with no technology data are kept.
func filterServersByProtocol(servers []domain.Server, protocol domain.Protocol) []domain.Server {
	var filtered []domain.Server
	for i := range servers {
		if len(servers[i].Technologies) == 0 || servers[i].SupportsProtocol(protocol) {
			filtered = append(filtered, servers[i])
		}
	}
	return filtered
}
