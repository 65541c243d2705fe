package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/RobGruhl/nordvpn-cli/internal/core/domain"
)

// watchInterval is how often the watch view refreshes.
const watchInterval = 2 * time.Second

var (
	statusJSON  bool
	statusWatch bool
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the VPN connection status",
	Long: `Shows the current Tunnelblick connection state together with the
machine's public IP, its geolocated city and country, and the connected
server's current load.`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

func init() {
	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "output status as JSON")
	statusCmd.Flags().BoolVarP(&statusWatch, "watch", "w", false, "refresh the status every 2 seconds")
	statusCmd.MarkFlagsMutuallyExclusive("json", "watch")
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	if connectionService == nil {
		return errors.New("connection service not configured")
	}

	if statusWatch {
		return runStatusWatch(cmd)
	}

	status, err := withSpinner(cmd.Context(), "Checking status...",
		func(ctx context.Context) (*domain.ConnectionStatus, error) {
			return connectionService.Status(ctx)
		})
	if err != nil {
		return fmt.Errorf("read status: %w", err)
	}

	if statusJSON {
		data, err := json.MarshalIndent(status, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal status: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	printStatus(cmd, status)
	return nil
}

// printStatus renders one status snapshot as labelled lines.
func printStatus(cmd *cobra.Command, status *domain.ConnectionStatus) {
	cmd.Printf("State:     %s\n", stateStyle(status.State).Render(status.State.Description()))
	if status.ConfigName != "" {
		cmd.Printf("Config:    %s\n", status.ConfigName)
	}
	if status.ServerHostname != "" {
		cmd.Printf("Server:    %s\n", status.ServerHostname)
	}
	if status.PublicIP != "" {
		cmd.Printf("Public IP: %s\n", status.PublicIP)
	}
	if location := formatLocation(status); location != "" {
		cmd.Printf("Location:  %s\n", location)
	}
	if status.ServerLoad >= 0 {
		cmd.Printf("Load:      %s\n", formatLoad(status.ServerLoad))
	}
}

func formatLocation(status *domain.ConnectionStatus) string {
	switch {
	case status.City != "" && status.Country != "":
		return status.City + ", " + status.Country
	case status.Country != "":
		return status.Country
	default:
		return status.City
	}
}

// Watch view.

type statusMsg struct {
	status *domain.ConnectionStatus
	err    error
}

type watchTickMsg struct{}

// watchModel is the bubbletea model behind "status --watch". It
// refetches the connection status every watchInterval.
type watchModel struct {
	service  func(context.Context) (*domain.ConnectionStatus, error)
	interval time.Duration

	status  *domain.ConnectionStatus
	err     error
	fetched bool
}

func newWatchModel(fetch func(context.Context) (*domain.ConnectionStatus, error)) watchModel {
	return watchModel{service: fetch, interval: watchInterval}
}

func (m watchModel) Init() tea.Cmd {
	return m.fetch
}

func (m watchModel) fetch() tea.Msg {
	status, err := m.service(context.Background())
	return statusMsg{status: status, err: err}
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case statusMsg:
		m.status = msg.status
		m.err = msg.err
		m.fetched = true
		return m, tea.Tick(m.interval, func(time.Time) tea.Msg {
			return watchTickMsg{}
		})
	case watchTickMsg:
		return m, m.fetch
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m watchModel) View() string {
	if !m.fetched {
		return "Checking status...\n"
	}

	view := styleHeader.Render("NordVPN status") +
		styleDim.Render("  (refreshes every "+m.interval.String()+", q to quit)") + "\n\n"
	if m.err != nil {
		return view + styleBad.Render("Error: "+m.err.Error()) + "\n"
	}

	view += fmt.Sprintf("State:     %s\n", stateStyle(m.status.State).Render(m.status.State.Description()))
	if m.status.ServerHostname != "" {
		view += fmt.Sprintf("Server:    %s\n", m.status.ServerHostname)
	}
	if m.status.PublicIP != "" {
		view += fmt.Sprintf("Public IP: %s\n", m.status.PublicIP)
	}
	if location := formatLocation(m.status); location != "" {
		view += fmt.Sprintf("Location:  %s\n", location)
	}
	if m.status.ServerLoad >= 0 {
		view += fmt.Sprintf("Load:      %s\n", formatLoad(m.status.ServerLoad))
	}
	return view
}

func runStatusWatch(cmd *cobra.Command) error {
	model := newWatchModel(connectionService.Status)
	p := tea.NewProgram(model, tea.WithOutput(cmd.OutOrStdout()))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("watch status: %w", err)
	}
	return nil
}
