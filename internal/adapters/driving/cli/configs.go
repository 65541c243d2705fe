package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var configsCmd = &cobra.Command{
	Use:   "configs",
	Short: "List installed NordVPN configurations",
	Long: `Lists the NordVPN configurations Tunnelblick currently has
installed. Profiles are installed automatically on first connect.`,
	Args: cobra.NoArgs,
	RunE: runConfigs,
}

func init() {
	rootCmd.AddCommand(configsCmd)
}

func runConfigs(cmd *cobra.Command, _ []string) error {
	if connectionService == nil {
		return errors.New("connection service not configured")
	}

	configs, err := withSpinner(cmd.Context(), "Reading configurations...",
		func(ctx context.Context) ([]string, error) {
			return connectionService.Configurations(ctx)
		})
	if err != nil {
		return fmt.Errorf("list configurations: %w", err)
	}

	if len(configs) == 0 {
		cmd.Println("No NordVPN configurations installed.")
		cmd.Println("Run \"nordvpn connect --country <code>\" to install one.")
		return nil
	}

	cmd.Printf("Installed configurations (%d):\n", len(configs))
	for _, name := range configs {
		cmd.Printf("  • %s\n", name)
	}
	return nil
}
