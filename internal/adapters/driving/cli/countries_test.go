package cli

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCountriesCmd_Use(t *testing.T) {
	assert.Equal(t, "countries", countriesCmd.Use)
}

func TestCountriesCmd_ListsCountries(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"countries"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "DE")
	assert.Contains(t, buf.String(), "Germany")
	assert.Contains(t, buf.String(), "United States")
	assert.Contains(t, buf.String(), "2 countries")
}

func TestCountriesCmd_RejectsArgs(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"countries", "extra"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
}

func TestCountriesCmd_ServiceNotConfigured(t *testing.T) {
	oldService := serverService
	serverService = nil
	defer func() {
		serverService = oldService
	}()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"countries"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}

func TestCountriesCmd_PropagatesServiceError(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	serverService.(*mockServerService).err = errors.New("api unreachable")

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"countries"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "api unreachable")
}
