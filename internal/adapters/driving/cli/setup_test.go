package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/RobGruhl/nordvpn-cli/internal/core/domain"
)

func TestSetupCmd_Use(t *testing.T) {
	assert.Equal(t, "setup", setupCmd.Use)
}

func TestSetupCmd_AllChecksPass(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(strings.NewReader(""))
	rootCmd.SetArgs([]string{"setup"})
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "Tunnelblick is installed.")
	assert.Contains(t, buf.String(), "Tunnelblick is running.")
	assert.Contains(t, buf.String(), "Credentials found for")
	assert.Contains(t, buf.String(), "API reachable (60 countries).")
	assert.Contains(t, buf.String(), "All set.")
}

func TestSetupCmd_TunnelblickMissing(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	setupService.(*mockSetupService).installed = false

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(strings.NewReader(""))
	rootCmd.SetArgs([]string{"setup"})
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "setup incomplete")
	assert.Contains(t, buf.String(), "Tunnelblick is not installed.")
	assert.Contains(t, buf.String(), "https://tunnelblick.net")
}

func TestSetupCmd_OffersLaunchWhenNotRunning(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	mock := setupService.(*mockSetupService)
	mock.running = false

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(strings.NewReader("y\n"))
	rootCmd.SetArgs([]string{"setup"})
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.True(t, mock.launched)
	assert.Contains(t, buf.String(), "Tunnelblick launched.")
}

func TestSetupCmd_SkipsLaunchOnNo(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	mock := setupService.(*mockSetupService)
	mock.running = false

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(strings.NewReader("n\n"))
	rootCmd.SetArgs([]string{"setup"})
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.False(t, mock.launched)
	assert.Contains(t, buf.String(), "launched on first connect")
}

func TestSetupCmd_MissingCredentialsSkipped(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	mock := setupService.(*mockSetupService)
	mock.creds = domain.Credentials{}
	mock.credsErr = domain.ErrNoCredentials

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	// Decline entering credentials.
	rootCmd.SetIn(strings.NewReader("n\n"))
	rootCmd.SetArgs([]string{"setup"})
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, buf.String(), "NORD_USER / NORD_PASS are not set")
	assert.Contains(t, buf.String(), "my.nordaccount.com")
}

func TestSetupCmd_APIUnreachable(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	setupService.(*mockSetupService).apiErr = assert.AnError

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(strings.NewReader(""))
	rootCmd.SetArgs([]string{"setup"})
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, buf.String(), "API not reachable")
}
