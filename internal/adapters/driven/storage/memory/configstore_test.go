package memory

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigStore_SetAndGet(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Set("connect.country", "de"))
	require.NoError(t, store.Set("connect.max_load", 30))
	require.NoError(t, store.Set("history.enabled", true))

	val, ok := store.Get("connect.country")
	assert.True(t, ok)
	assert.Equal(t, "de", val)

	_, ok = store.Get("missing")
	assert.False(t, ok)
}

func TestConfigStore_SetOverwrites(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Set("connect.country", "de"))
	require.NoError(t, store.Set("connect.country", "us"))

	assert.Equal(t, "us", store.GetString("connect.country"))
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store := NewConfigStore()
	require.NoError(t, store.Set("connect.country", "de"))
	require.NoError(t, store.Set("connect.max_load", 30))
	require.NoError(t, store.Set("history.enabled", true))

	t.Run("string", func(t *testing.T) {
		assert.Equal(t, "de", store.GetString("connect.country"))
		assert.Empty(t, store.GetString("missing"))
		assert.Empty(t, store.GetString("connect.max_load"))
	})

	t.Run("int", func(t *testing.T) {
		assert.Equal(t, 30, store.GetInt("connect.max_load"))
		assert.Zero(t, store.GetInt("missing"))
		assert.Zero(t, store.GetInt("connect.country"))
	})

	t.Run("int coerces toml number types", func(t *testing.T) {
		require.NoError(t, store.Set("as_int64", int64(45)))
		require.NoError(t, store.Set("as_float", float64(45)))
		assert.Equal(t, 45, store.GetInt("as_int64"))
		assert.Equal(t, 45, store.GetInt("as_float"))
	})

	t.Run("bool", func(t *testing.T) {
		assert.True(t, store.GetBool("history.enabled"))
		assert.False(t, store.GetBool("missing"))
		assert.False(t, store.GetBool("connect.country"))
	})
}

func TestConfigStore_SaveAndLoadAreNoOps(t *testing.T) {
	store := NewConfigStore()
	require.NoError(t, store.Set("connect.country", "de"))

	require.NoError(t, store.Save())
	require.NoError(t, store.Load())

	assert.Equal(t, "de", store.GetString("connect.country"))
}

func TestConfigStore_Path(t *testing.T) {
	assert.Equal(t, ":memory:", NewConfigStore().Path())
}

func TestConfigStore_ConcurrentAccess(t *testing.T) {
	store := NewConfigStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			_ = store.Set(fmt.Sprintf("key-%d", i), i)
		}(i)
		go func(i int) {
			defer wg.Done()
			_ = store.GetInt(fmt.Sprintf("key-%d", i))
		}(i)
	}
	wg.Wait()

	for i := 0; i < 50; i++ {
		assert.Equal(t, i, store.GetInt(fmt.Sprintf("key-%d", i)))
	}
}
