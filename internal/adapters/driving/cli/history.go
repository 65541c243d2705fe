package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/RobGruhl/nordvpn-cli/internal/core/domain"
)

var (
	historyLimit int
	historyClear bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent connections",
	Long: `Shows the most recent connection attempts, newest first.
"nordvpn connect --last" reconnects to the newest successful one.`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 10, "maximum number of events")
	historyCmd.Flags().BoolVar(&historyClear, "clear", false, "delete all recorded events")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	if historyService == nil {
		return errors.New("history service not configured")
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if historyClear {
		if err := historyService.Clear(ctx); err != nil {
			return fmt.Errorf("clear history: %w", err)
		}
		cmd.Println("History cleared.")
		return nil
	}

	events, err := historyService.List(ctx, historyLimit)
	if err != nil {
		return fmt.Errorf("list history: %w", err)
	}
	if len(events) == 0 {
		cmd.Println("No connections recorded yet.")
		return nil
	}

	rows := make([][]string, len(events))
	for i := range events {
		rows[i] = []string{
			events[i].StartedAt.Local().Format("2006-01-02 15:04"),
			domain.ShortHostname(events[i].Hostname),
			events[i].CountryCode,
			formatEventStatus(events[i].Status),
			formatLoad(events[i].ServerLoad),
		}
	}

	cmd.Println(renderTable([]string{"When", "Server", "Country", "Status", "Load"}, rows))
	return nil
}

func formatEventStatus(status domain.EventStatus) string {
	switch status {
	case domain.EventConnected:
		return styleGood.Render(status.String())
	case domain.EventFailed:
		return styleBad.Render(status.String())
	default:
		return styleDim.Render(status.String())
	}
}
