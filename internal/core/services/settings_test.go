package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RobGruhl/nordvpn-cli/internal/adapters/driven/storage/memory"
	"github.com/RobGruhl/nordvpn-cli/internal/core/domain"
)

func TestSettingsService_Get(t *testing.T) {
	t.Run("returns defaults for an empty store", func(t *testing.T) {
		service := NewSettingsService(memory.NewConfigStore())

		settings, err := service.Get()

		require.NoError(t, err)
		defaults := domain.DefaultAppSettings()
		assert.Equal(t, &defaults, settings)
	})

	t.Run("returns defaults without a store", func(t *testing.T) {
		service := NewSettingsService(nil)

		settings, err := service.Get()

		require.NoError(t, err)
		assert.Equal(t, domain.DefaultMaxLoad, settings.Connect.MaxLoad)
	})

	t.Run("overlays stored values on defaults", func(t *testing.T) {
		store := memory.NewConfigStore()
		require.NoError(t, store.Set("connect.country", "de"))
		require.NoError(t, store.Set("connect.protocol", "openvpn_tcp"))
		require.NoError(t, store.Set("connect.max_load", 55))
		service := NewSettingsService(store)

		settings, err := service.Get()

		require.NoError(t, err)
		assert.Equal(t, "de", settings.Connect.Country)
		assert.Equal(t, domain.ProtocolTCP, settings.Connect.Protocol)
		assert.Equal(t, 55, settings.Connect.MaxLoad)
		assert.Equal(t, domain.DefaultServerLimit, settings.Servers.Limit)
	})

	t.Run("ignores an unparseable stored protocol", func(t *testing.T) {
		store := memory.NewConfigStore()
		require.NoError(t, store.Set("connect.protocol", "wireguard"))
		service := NewSettingsService(store)

		settings, err := service.Get()

		require.NoError(t, err)
		assert.Equal(t, domain.ProtocolUDP, settings.Connect.Protocol)
	})

	t.Run("a stored false overrides a true default", func(t *testing.T) {
		store := memory.NewConfigStore()
		require.NoError(t, store.Set("history.enabled", false))
		service := NewSettingsService(store)

		settings, err := service.Get()

		require.NoError(t, err)
		assert.False(t, settings.History.Enabled)
	})
}

func TestSettingsService_Save(t *testing.T) {
	t.Run("round-trips all settings", func(t *testing.T) {
		store := memory.NewConfigStore()
		service := NewSettingsService(store)

		saved := domain.AppSettings{
			Connect: domain.ConnectSettings{
				Country:  "de",
				City:     "Berlin",
				Protocol: domain.ProtocolTCP,
				MaxLoad:  40,
			},
			Servers: domain.ServerSettings{Limit: 5},
			History: domain.HistorySettings{Enabled: false},
		}
		require.NoError(t, service.Save(&saved))

		got, err := service.Get()
		require.NoError(t, err)
		assert.Equal(t, &saved, got)
	})

	t.Run("rejects nil settings", func(t *testing.T) {
		service := NewSettingsService(memory.NewConfigStore())

		assert.ErrorIs(t, service.Save(nil), domain.ErrInvalidInput)
	})

	t.Run("fails without a store", func(t *testing.T) {
		service := NewSettingsService(nil)
		settings := domain.DefaultAppSettings()

		assert.ErrorIs(t, service.Save(&settings), domain.ErrNotImplemented)
	})
}

func TestSettingsService_SetDefaultCountry(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	require.NoError(t, service.SetDefaultCountry("  DE "))

	settings, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, "de", settings.Connect.Country)
}

func TestSettingsService_SetDefaultProtocol(t *testing.T) {
	t.Run("stores a valid protocol", func(t *testing.T) {
		store := memory.NewConfigStore()
		service := NewSettingsService(store)

		require.NoError(t, service.SetDefaultProtocol(domain.ProtocolTCP))

		settings, err := service.Get()
		require.NoError(t, err)
		assert.Equal(t, domain.ProtocolTCP, settings.Connect.Protocol)
	})

	t.Run("rejects an invalid protocol", func(t *testing.T) {
		service := NewSettingsService(memory.NewConfigStore())

		err := service.SetDefaultProtocol(domain.Protocol("wireguard"))

		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestSettingsService_GetDefaults(t *testing.T) {
	service := NewSettingsService(nil)

	defaults := service.GetDefaults()

	assert.Equal(t, domain.DefaultAppSettings(), defaults)
}
