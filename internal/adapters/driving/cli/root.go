// Package cli provides the cobra command surface of the nordvpn tool.
//
// Commands talk to the core through the driving port interfaces. The
// composition root injects concrete services before Execute is called;
// a nil service turns the corresponding commands into a "not
// configured" error instead of a panic.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/RobGruhl/nordvpn-cli/internal/core/ports/driving"
	"github.com/RobGruhl/nordvpn-cli/internal/logger"
)

// version is the CLI version, overridable at build time via
// -ldflags "-X .../cli.version=...".
var version = "0.1.0"

// Injected services. Set by the composition root (cmd/nordvpn) and
// swapped for mocks in tests.
var (
	serverService     driving.ServerService
	connectionService driving.ConnectionService
	setupService      driving.SetupService
	historyService    driving.HistoryService
	settingsService   driving.SettingsService
)

// Root flags.
var (
	verbose       bool
	configDirFlag string
)

var rootCmd = &cobra.Command{
	Use:   "nordvpn",
	Short: "Connect to NordVPN through Tunnelblick",
	Long: `nordvpn automates connecting to NordVPN on macOS through the
Tunnelblick OpenVPN client.

It picks the least loaded server for a country, downloads and installs
the OpenVPN profile into Tunnelblick, and drives the connection itself
via AppleScript. Run "nordvpn setup" first to verify your environment.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configDirFlag, "config", "", "config directory (default ~/.nordvpn-cli)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// SetServerService injects the server catalog service.
func SetServerService(s driving.ServerService) {
	serverService = s
}

// SetConnectionService injects the connection service.
func SetConnectionService(s driving.ConnectionService) {
	connectionService = s
}

// SetSetupService injects the setup service.
func SetSetupService(s driving.SetupService) {
	setupService = s
}

// SetHistoryService injects the history service.
func SetHistoryService(s driving.HistoryService) {
	historyService = s
}

// SetSettingsService injects the settings service.
func SetSettingsService(s driving.SettingsService) {
	settingsService = s
}
