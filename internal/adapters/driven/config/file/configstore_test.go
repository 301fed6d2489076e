package file

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore_Success(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(tmpDir, ConfigFileName), store.Path())
}

func TestNewConfigStore_DefaultDir(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	store, err := NewConfigStore("")

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, DirName, ConfigFileName), store.Path())
}

func TestConfigStore_PersistsAsNestedTables(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store.Set("backend.base_url", "http://api.internal:8000"))
	require.NoError(t, store.Set("backend.timeout_seconds", 60))

	raw, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Contains(t, string(raw), "[backend]")
	assert.Contains(t, string(raw), "base_url = ")
	assert.Contains(t, string(raw), "http://api.internal:8000")
	assert.NotContains(t, string(raw), "backend.base_url")
}

func TestConfigStore_ReloadTypes(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store.Set("backend.base_url", "http://localhost:9000"))
	require.NoError(t, store.Set("backend.timeout_seconds", 90))
	require.NoError(t, store.Set("backend.rate_per_second", 2.5))
	require.NoError(t, store.Set("chat.reveal_interval_ms", 0))
	require.NoError(t, store.Set("debug.enabled", true))

	reloaded, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9000", reloaded.GetString("backend.base_url"))
	assert.Equal(t, 90, reloaded.GetInt("backend.timeout_seconds"))
	assert.InDelta(t, 2.5, reloaded.GetFloat("backend.rate_per_second"), 1e-9)
	_, ok := reloaded.Get("chat.reveal_interval_ms")
	assert.True(t, ok, "explicit zero survives a reload")
	assert.True(t, reloaded.GetBool("debug.enabled"))
}

func TestConfigStore_HandWrittenFile(t *testing.T) {
	tmpDir := t.TempDir()
	content := "[backend]\nbase_url = \"https://lexiverse.example\"\nrate_per_second = 1\n\n[session]\nstore = \"sqlite\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, ConfigFileName), []byte(content), 0600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "https://lexiverse.example", store.GetString("backend.base_url"))
	assert.InDelta(t, 1.0, store.GetFloat("backend.rate_per_second"), 1e-9)
	assert.Equal(t, "sqlite", store.GetString("session.store"))
}

func TestConfigStore_Delete(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	require.NoError(t, store.Set("log.file", "/tmp/lexiverse.log"))

	require.NoError(t, store.Delete("log.file"))
	require.NoError(t, store.Delete("log.file"))

	reloaded, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	_, ok := reloaded.Get("log.file")
	assert.False(t, ok)
}

func TestConfigStore_MissingKeys(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	val, ok := store.Get("any_key")
	assert.False(t, ok)
	assert.Nil(t, val)
	assert.Empty(t, store.GetString("any_key"))
	assert.Zero(t, store.GetInt("any_key"))
	assert.Zero(t, store.GetFloat("any_key"))
	assert.False(t, store.GetBool("any_key"))
}

func TestConfigStore_FilePermissions(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("backend.base_url", "http://localhost:8000"))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestConfigStore_EmptyFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, ConfigFileName), []byte{}, 0600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	_, ok := store.Get("backend.base_url")
	assert.False(t, ok)
}

func TestConfigStore_Concurrency(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			key := "bucket.key" + string(rune('0'+i))
			_ = store.Set(key, i)
			_ = store.GetInt(key)
			_, _ = store.Get(key)
		}()
	}
	wg.Wait()
}

func TestNewConfigStore_MkdirAllError(t *testing.T) {
	store, err := NewConfigStore("/dev/null/cannot/create/dirs")

	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestNewConfigStore_CorruptedFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, ConfigFileName), []byte("this is not valid TOML {{{[["), 0600))

	store, err := NewConfigStore(tmpDir)

	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestConfigStore_SetWriteError(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("a.b", "value"))

	require.NoError(t, os.Remove(store.Path()))
	require.NoError(t, os.Mkdir(store.Path(), 0700))

	assert.Error(t, store.Set("a.c", "value"))
}

func TestConfigStore_Load_InvalidTOML(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("valid", "data"))

	require.NoError(t, os.WriteFile(store.Path(), []byte("invalid toml syntax ][}{"), 0600))

	assert.Error(t, store.Load())
	assert.Equal(t, "data", store.GetString("valid"), "failed reload keeps previous values")
}

func TestNestMap(t *testing.T) {
	flat := map[string]any{
		"backend.base_url":        "http://x",
		"backend.timeout_seconds": 10,
		"top":                     true,
		"log":                     "value wins",
		"log.file":                "dropped",
	}

	nested := nestMap(flat)

	assert.Equal(t, map[string]any{"base_url": "http://x", "timeout_seconds": 10}, nested["backend"])
	assert.Equal(t, true, nested["top"])
	assert.Equal(t, "value wins", nested["log"])
	assert.Equal(t, flattenMap(map[string]any{"a": map[string]any{"b": 1}}, ""), map[string]any{"a.b": 1})
}
