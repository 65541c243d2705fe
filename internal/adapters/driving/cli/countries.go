package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/RobGruhl/nordvpn-cli/internal/core/domain"
)

var countriesCmd = &cobra.Command{
	Use:   "countries",
	Short: "List countries with NordVPN servers",
	Long: `Lists every country NordVPN operates servers in, with the
two-letter code used by "nordvpn connect --country" and
"nordvpn servers".`,
	Args: cobra.NoArgs,
	RunE: runCountries,
}

func init() {
	rootCmd.AddCommand(countriesCmd)
}

func runCountries(cmd *cobra.Command, _ []string) error {
	if serverService == nil {
		return errors.New("server service not configured")
	}

	countries, err := withSpinner(cmd.Context(), "Fetching countries...",
		func(ctx context.Context) ([]domain.Country, error) {
			return serverService.Countries(ctx)
		})
	if err != nil {
		return fmt.Errorf("list countries: %w", err)
	}

	rows := make([][]string, len(countries))
	for i, country := range countries {
		rows[i] = []string{country.Code, country.Name}
	}

	cmd.Println(renderTable([]string{"Code", "Country"}, rows))
	cmd.Printf("%d countries\n", len(countries))
	return nil
}
