package tunnelblick

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/RobGruhl/nordvpn-cli/internal/core/domain"
	"github.com/RobGruhl/nordvpn-cli/internal/core/ports/driven"
	"github.com/RobGruhl/nordvpn-cli/internal/logger"
)

const (
	// appName is the process and application name used by pgrep and open.
	appName = "Tunnelblick"

	// launchTimeout bounds how long Launch waits for the process to
	// appear after open returns.
	launchTimeout = 15 * time.Second

	// launchPollInterval is the cadence of process checks during Launch.
	launchPollInterval = 500 * time.Millisecond
)

// AppleScript one-liners understood by Tunnelblick.
const (
	scriptListConfigs   = `tell application "Tunnelblick" to get name of configurations`
	scriptListStates    = `tell application "Tunnelblick" to get state of configurations`
	scriptDisconnectAll = `tell application "Tunnelblick" to disconnect all`
)

// applicationPaths returns the locations checked for the application
// bundle.
func applicationPaths() []string {
	paths := []string{"/Applications/Tunnelblick.app"}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, "Applications", "Tunnelblick.app"))
	}
	return paths
}

// Ensure Controller implements the VPNController interface.
var _ driven.VPNController = (*Controller)(nil)

// Controller drives the Tunnelblick application over AppleScript.
type Controller struct {
	runner   runner
	appPaths []string
}

// NewController creates a controller for the local Tunnelblick install.
func NewController() *Controller {
	return &Controller{
		runner:   execRunner{},
		appPaths: applicationPaths(),
	}
}

// IsInstalled reports whether the application bundle exists in
// /Applications or ~/Applications.
func (c *Controller) IsInstalled() bool {
	for _, path := range c.appPaths {
		if _, err := os.Stat(path); err == nil {
			return true
		}
	}
	return false
}

// IsRunning reports whether the Tunnelblick process is alive.
func (c *Controller) IsRunning(ctx context.Context) (bool, error) {
	return c.runner.processExists(ctx, appName)
}

// Launch starts Tunnelblick and waits for the process to appear.
// It is a no-op when the application is already running.
func (c *Controller) Launch(ctx context.Context) error {
	if !c.IsInstalled() {
		return domain.ErrNotInstalled
	}

	running, err := c.IsRunning(ctx)
	if err != nil {
		return err
	}
	if running {
		return nil
	}

	logger.Info("launching %s", appName)
	if _, err := c.runner.run(ctx, "open", "-a", appName); err != nil {
		return fmt.Errorf("launch %s: %w", appName, err)
	}

	// open returns before the app is scriptable, so poll for the process.
	deadline := time.Now().Add(launchTimeout)
	for time.Now().Before(deadline) {
		running, err := c.IsRunning(ctx)
		if err != nil {
			return err
		}
		if running {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(launchPollInterval):
		}
	}

	return fmt.Errorf("%s did not start within %s", appName, launchTimeout)
}

// Configurations returns the names of all installed configurations.
func (c *Controller) Configurations(ctx context.Context) ([]string, error) {
	out, err := c.osascript(ctx, scriptListConfigs)
	if err != nil {
		return nil, err
	}
	return parseAppleScriptList(out), nil
}

// States returns every configuration paired with its current state, in
// Tunnelblick's configuration order.
func (c *Controller) States(ctx context.Context) ([]domain.ConfigState, error) {
	names, err := c.Configurations(ctx)
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, nil
	}

	out, err := c.osascript(ctx, scriptListStates)
	if err != nil {
		return nil, err
	}
	raw := parseAppleScriptList(out)

	states := make([]domain.ConfigState, 0, len(names))
	for i, name := range names {
		state := domain.StateUnknown
		if i < len(raw) {
			state = domain.ParseConnectionState(raw[i])
		}
		states = append(states, domain.ConfigState{Name: name, State: state})
	}
	return states, nil
}

// Connect asks Tunnelblick to connect the named configuration.
// It returns once the command is issued; callers poll States to observe
// progress.
func (c *Controller) Connect(ctx context.Context, configName string) error {
	script, err := configScript("connect", configName)
	if err != nil {
		return err
	}

	logger.Debug("connecting configuration %s", configName)
	if _, err := c.osascript(ctx, script); err != nil {
		return fmt.Errorf("connect %s: %w", configName, err)
	}
	return nil
}

// Disconnect asks Tunnelblick to disconnect the named configuration.
func (c *Controller) Disconnect(ctx context.Context, configName string) error {
	script, err := configScript("disconnect", configName)
	if err != nil {
		return err
	}

	logger.Debug("disconnecting configuration %s", configName)
	if _, err := c.osascript(ctx, script); err != nil {
		return fmt.Errorf("disconnect %s: %w", configName, err)
	}
	return nil
}

// DisconnectAll disconnects every configuration.
func (c *Controller) DisconnectAll(ctx context.Context) error {
	logger.Debug("disconnecting all configurations")
	if _, err := c.osascript(ctx, scriptDisconnectAll); err != nil {
		return fmt.Errorf("disconnect all: %w", err)
	}
	return nil
}

// osascript runs an AppleScript one-liner. Failures caused by the
// application not running map to domain.ErrNotRunning.
func (c *Controller) osascript(ctx context.Context, script string) (string, error) {
	out, err := c.runner.run(ctx, "osascript", "-e", script)
	if err != nil {
		msg := strings.ToLower(err.Error())
		if strings.Contains(msg, "not running") || strings.Contains(msg, "isn't running") {
			return "", fmt.Errorf("%s: %w", appName, domain.ErrNotRunning)
		}
		return "", err
	}
	return out, nil
}

// configScript builds a per-configuration AppleScript command. Names
// containing quote characters are rejected rather than escaped.
func configScript(verb, configName string) (string, error) {
	if configName == "" || strings.ContainsAny(configName, `"\`) {
		return "", fmt.Errorf("%w: bad configuration name %q", domain.ErrInvalidInput, configName)
	}
	return fmt.Sprintf(`tell application "Tunnelblick" to %s "%s"`, verb, configName), nil
}

// parseAppleScriptList splits osascript's comma-separated list output.
func parseAppleScriptList(out string) []string {
	if out == "" {
		return nil
	}

	parts := strings.Split(out, ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			items = append(items, part)
		}
	}
	return items
}
