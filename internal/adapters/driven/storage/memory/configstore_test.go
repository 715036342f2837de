package memory

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/kwscope/internal/core/ports/driven"
)

func TestNewConfigStore(t *testing.T) {
	store := NewConfigStore()
	require.NotNil(t, store)
	assert.NotNil(t, store.values)
	assert.Equal(t, ":memory:", store.Path())
}

func TestNewConfigStore_Seeded(t *testing.T) {
	store := NewConfigStore(
		map[string]any{"engine.page_size": 40},
		map[string]any{"source.kind": "api"},
	)

	assert.Equal(t, 40, store.GetInt("engine.page_size"))
	assert.Equal(t, "api", store.GetString("source.kind"))
}

func TestConfigStore_SetAndGet(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Set("source.kind", "synthetic"))
	require.NoError(t, store.Set("source.kind", "api"))

	val, ok := store.Get("source.kind")
	assert.True(t, ok)
	assert.Equal(t, "api", val)
}

func TestConfigStore_Getters(t *testing.T) {
	store := NewConfigStore(map[string]any{
		"s":       "text",
		"i":       30,
		"i64":     int64(31),
		"u64":     uint64(32),
		"f":       33.0,
		"b":       true,
		"strs":    []string{"a", "b"},
		"anys":    []any{"a", 1, "b"},
		"invalid": struct{}{},
	})

	assert.Equal(t, "text", store.GetString("s"))
	assert.Equal(t, 30, store.GetInt("i"))
	assert.Equal(t, 31, store.GetInt("i64"))
	assert.Equal(t, 32, store.GetInt("u64"))
	assert.Equal(t, 33, store.GetInt("f"))
	assert.True(t, store.GetBool("b"))
	assert.Equal(t, []string{"a", "b"}, store.GetStringSlice("strs"))
	assert.Equal(t, []string{"a", "b"}, store.GetStringSlice("anys"))

	assert.Equal(t, "", store.GetString("i"))
	assert.Equal(t, 0, store.GetInt("s"))
	assert.False(t, store.GetBool("s"))
	assert.Nil(t, store.GetStringSlice("invalid"))
	assert.Nil(t, store.GetStringSlice("missing"))
}

func TestConfigStore_SaveAndLoad(t *testing.T) {
	store := NewConfigStore(map[string]any{"cache.backend": "none"})

	require.NoError(t, store.Set("cache.backend", "redis"))

	// Set saves, so Load keeps the value.
	require.NoError(t, store.Load())
	assert.Equal(t, "redis", store.GetString("cache.backend"))
}

func TestConfigStore_LoadRestoresSnapshot(t *testing.T) {
	store := NewConfigStore()
	require.NoError(t, store.Set("a", 1))
	require.NoError(t, store.Save())

	store.mu.Lock()
	store.values["a"] = 2
	store.mu.Unlock()

	require.NoError(t, store.Load())
	assert.Equal(t, 1, store.GetInt("a"))
}

func TestConfigStore_Concurrency(t *testing.T) {
	store := NewConfigStore()
	var wg sync.WaitGroup

	for i := range 50 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = store.Set("engine.page_size", i)
		}()
		go func() {
			defer wg.Done()
			_ = store.GetInt("engine.page_size")
			_ = store.Save()
		}()
	}
	wg.Wait()

	_, ok := store.Get("engine.page_size")
	assert.True(t, ok)
}

func TestConfigStore_InterfaceCompliance(t *testing.T) {
	var store driven.ConfigStore = NewConfigStore()
	require.NoError(t, store.Set("k", "v"))
	assert.Equal(t, "v", store.GetString("k"))
}
