// Command nordvpn connects macOS machines to NordVPN through the
// Tunnelblick OpenVPN client.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/RobGruhl/nordvpn-cli/internal/adapters/driven/auth"
	configfile "github.com/RobGruhl/nordvpn-cli/internal/adapters/driven/config/file"
	"github.com/RobGruhl/nordvpn-cli/internal/adapters/driven/geoip"
	"github.com/RobGruhl/nordvpn-cli/internal/adapters/driven/storage/sqlite"
	"github.com/RobGruhl/nordvpn-cli/internal/adapters/driven/tunnelblick"
	"github.com/RobGruhl/nordvpn-cli/internal/adapters/driving/cli"
	"github.com/RobGruhl/nordvpn-cli/internal/connectors/nordapi"
	"github.com/RobGruhl/nordvpn-cli/internal/core/services"
	"github.com/RobGruhl/nordvpn-cli/internal/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configDir, err := resolveConfigDir(os.Args[1:])
	if err != nil {
		return err
	}

	// Driven adapters.
	catalog := nordapi.NewClient()
	controller := tunnelblick.NewController()
	installer := tunnelblick.NewInstaller(filepath.Join(configDir, "staging"))
	credentials := auth.NewEnvProvider()
	geo := geoip.NewResolver()

	// Settings are optional: the CLI still works with defaults when the
	// config file cannot be created.
	var settingsService *services.SettingsService
	configStore, err := configfile.NewConfigStore(configDir)
	if err != nil {
		logger.Warn("config store unavailable: %v", err)
		settingsService = services.NewSettingsService(nil)
	} else {
		settingsService = services.NewSettingsService(configStore)
	}

	// History is optional too.
	store, err := sqlite.NewStore(filepath.Join(configDir, "data"))
	if err != nil {
		logger.Warn("history store unavailable: %v", err)
	} else {
		defer store.Close() //nolint:errcheck
	}

	// Core services.
	serverService := services.NewServerService(catalog)
	connectionService := services.NewConnectionService(serverService, controller, installer, credentials)
	connectionService.SetGeoResolver(geo)
	connectionService.SetSettings(settingsService)
	if store != nil {
		connectionService.SetHistoryStore(store.HistoryStore())
	}
	setupService := services.NewSetupService(controller, credentials, catalog)
	var historyService *services.HistoryService
	if store != nil {
		historyService = services.NewHistoryService(store.HistoryStore())
	}

	// Driving adapter.
	cli.SetServerService(serverService)
	cli.SetConnectionService(connectionService)
	cli.SetSetupService(setupService)
	cli.SetSettingsService(settingsService)
	if historyService != nil {
		cli.SetHistoryService(historyService)
	}

	return cli.Execute()
}

// resolveConfigDir returns the configuration directory, honouring a
// --config flag. The flag must be scanned before cobra parses it
// because the stores it points at are built before Execute runs.
func resolveConfigDir(args []string) (string, error) {
	for i, arg := range args {
		switch {
		case arg == "--config":
			if i+1 < len(args) {
				return args[i+1], nil
			}
		case strings.HasPrefix(arg, "--config="):
			return strings.TrimPrefix(arg, "--config="), nil
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".nordvpn-cli"), nil
}
