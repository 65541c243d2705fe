package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigsCmd_Use(t *testing.T) {
	assert.Equal(t, "configs", configsCmd.Use)
}

func TestConfigsCmd_ListsConfigurations(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"configs"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "Installed configurations (2):")
	assert.Contains(t, buf.String(), "de750.nordvpn.com.udp")
	assert.Contains(t, buf.String(), "us9591.nordvpn.com.udp")
}

func TestConfigsCmd_NoneInstalled(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	connectionService.(*mockConnectionService).configs = nil

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"configs"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "No NordVPN configurations installed.")
}
