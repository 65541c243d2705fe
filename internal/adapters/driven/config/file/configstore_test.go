package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore_Success(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, filepath.Join(tmpDir, "config.toml"), store.Path())
}

func TestNewConfigStore_DefaultDir(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("Cannot determine home directory")
	}

	store, err := NewConfigStore("")

	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, filepath.Join(home, ".nordvpn-cli", "config.toml"), store.Path())
}

func TestConfigStore_SetAndGet(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	err = store.Set("connect.country", "de")
	require.NoError(t, err)

	val, ok := store.Get("connect.country")
	assert.True(t, ok)
	assert.Equal(t, "de", val)
}

func TestConfigStore_GetString(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	err = store.Set("connect.city", "Berlin")
	require.NoError(t, err)

	assert.Equal(t, "Berlin", store.GetString("connect.city"))

	// Non-existent key
	assert.Equal(t, "", store.GetString("nonexistent"))

	// Wrong type
	err = store.Set("servers.limit", 20)
	require.NoError(t, err)
	assert.Equal(t, "", store.GetString("servers.limit"))
}

func TestConfigStore_GetInt(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	err = store.Set("connect.max_load", 30)
	require.NoError(t, err)

	assert.Equal(t, 30, store.GetInt("connect.max_load"))

	// Non-existent key
	assert.Equal(t, 0, store.GetInt("nonexistent"))

	// Wrong type
	err = store.Set("connect.country", "de")
	require.NoError(t, err)
	assert.Equal(t, 0, store.GetInt("connect.country"))

	// TOML integers are parsed as int64
	store.mu.Lock()
	store.data["servers.limit"] = int64(9999)
	store.mu.Unlock()
	assert.Equal(t, 9999, store.GetInt("servers.limit"))
}

func TestConfigStore_GetBool(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	err = store.Set("history.enabled", true)
	require.NoError(t, err)
	assert.True(t, store.GetBool("history.enabled"))

	err = store.Set("history.enabled", false)
	require.NoError(t, err)
	assert.False(t, store.GetBool("history.enabled"))

	// Non-existent key
	assert.False(t, store.GetBool("nonexistent"))

	// Wrong type
	err = store.Set("connect.country", "true")
	require.NoError(t, err)
	assert.False(t, store.GetBool("connect.country"))
}

func TestConfigStore_Persistence(t *testing.T) {
	tmpDir := t.TempDir()

	store1, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store1.Set("connect.country", "de"))
	require.NoError(t, store1.Set("servers.limit", 20))
	require.NoError(t, store1.Set("history.enabled", true))

	// A new store instance loads from the same file
	store2, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "de", store2.GetString("connect.country"))
	assert.Equal(t, 20, store2.GetInt("servers.limit"))
	assert.True(t, store2.GetBool("history.enabled"))
}

func TestConfigStore_NestedTables(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store.Set("connect.country", "de"))
	require.NoError(t, store.Set("connect.max_load", 30))
	require.NoError(t, store.Set("servers.limit", 20))

	// Dotted keys are written as TOML tables, not quoted flat keys.
	raw, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Contains(t, string(raw), "[connect]")
	assert.Contains(t, string(raw), "[servers]")
	assert.NotContains(t, string(raw), "'connect.country'")

	// Loading flattens the tables back into dotted keys.
	store2, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, "de", store2.GetString("connect.country"))
	assert.Equal(t, 30, store2.GetInt("connect.max_load"))
}

func TestConfigStore_Load_NonExistent(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	val, ok := store.Get("any_key")
	assert.False(t, ok)
	assert.Nil(t, val)
}

func TestConfigStore_EmptyFile(t *testing.T) {
	tmpDir := t.TempDir()

	err := os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte{}, 0600)
	require.NoError(t, err)

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	val, ok := store.Get("any_key")
	assert.False(t, ok)
	assert.Nil(t, val)
}

func TestConfigStore_FilePermissions(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	err = store.Set("connect.country", "de")
	require.NoError(t, err)

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestConfigStore_OverwriteValue(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store.Set("connect.country", "de"))
	assert.Equal(t, "de", store.GetString("connect.country"))

	require.NoError(t, store.Set("connect.country", "us"))
	assert.Equal(t, "us", store.GetString("connect.country"))
}

func TestConfigStore_Concurrency(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	done := make(chan bool)
	for i := 0; i < 10; i++ {
		go func(id int) {
			key := "key" + string(rune('0'+id))
			_ = store.Set(key, id)
			_ = store.GetInt(key)
			_ = store.GetString(key)
			_ = store.GetBool(key)
			_, _ = store.Get(key)
			done <- true
		}(i)
	}

	for i := 0; i < 10; i++ {
		<-done
	}
}

func TestNewConfigStore_MkdirAllError(t *testing.T) {
	// A path under /dev/null cannot be created
	store, err := NewConfigStore("/dev/null/cannot/create/dirs")

	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestNewConfigStore_LoadCorruptedFile(t *testing.T) {
	tmpDir := t.TempDir()

	corrupted := []byte("this is not valid TOML {{{[[")
	err := os.WriteFile(filepath.Join(tmpDir, "config.toml"), corrupted, 0600)
	require.NoError(t, err)

	store, err := NewConfigStore(tmpDir)

	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestConfigStore_Save_WriteFileError(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store.Set("connect.country", "de"))

	// Replace the file with a directory to force a write error
	require.NoError(t, os.Remove(store.Path()))
	require.NoError(t, os.Mkdir(store.Path(), 0700))

	err = store.Set("connect.city", "Berlin")
	assert.Error(t, err)
}

func TestConfigStore_Load_ReadFileError(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store.Set("connect.country", "de"))
	require.NoError(t, os.Chmod(store.Path(), 0000))

	err = store.Load()
	assert.Error(t, err)
	assert.False(t, os.IsNotExist(err))

	// Restore permissions for cleanup
	_ = os.Chmod(store.Path(), 0600)
}
