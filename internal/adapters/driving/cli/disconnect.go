package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var disconnectCmd = &cobra.Command{
	Use:   "disconnect",
	Short: "Disconnect from the VPN",
	Long: `Disconnects every Tunnelblick configuration. Does nothing when no
tunnel is up.`,
	Args: cobra.NoArgs,
	RunE: runDisconnect,
}

func init() {
	rootCmd.AddCommand(disconnectCmd)
}

func runDisconnect(cmd *cobra.Command, _ []string) error {
	if connectionService == nil {
		return errors.New("connection service not configured")
	}

	_, err := withSpinner(cmd.Context(), "Disconnecting...",
		func(ctx context.Context) (struct{}, error) {
			return struct{}{}, connectionService.Disconnect(ctx)
		})
	if err != nil {
		return fmt.Errorf("disconnect: %w", err)
	}

	cmd.Println("Disconnected.")
	return nil
}
