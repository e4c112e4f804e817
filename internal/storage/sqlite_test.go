package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"codescope/internal/analysis"
	"codescope/internal/lang"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteStore_SaveAndLoad(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	census := analysis.Census{Nodes: 12, Comments: 2, UsefulComments: 1, Functions: 1}
	hash := Hash([]byte("fn main() {}\n"))
	require.NoError(t, store.SaveCensus(ctx, []Entry{
		{Path: "src/main.rs", Language: lang.Rust, Hash: hash, Census: census},
	}))

	t.Run("Hit", func(t *testing.T) {
		got, ok, err := store.LoadCensus(ctx, "src/main.rs", lang.Rust, hash)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, census, got)
	})

	t.Run("Content changed", func(t *testing.T) {
		_, ok, err := store.LoadCensus(ctx, "src/main.rs", lang.Rust, Hash([]byte("fn main() { }\n")))
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("Language changed", func(t *testing.T) {
		_, ok, err := store.LoadCensus(ctx, "src/main.rs", lang.Cpp, hash)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("Unknown path", func(t *testing.T) {
		_, ok, err := store.LoadCensus(ctx, "other.rs", lang.Rust, hash)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestSQLiteStore_Upsert(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()
	at := time.Unix(1_700_000_000, 0)

	require.NoError(t, store.SaveCensus(ctx, []Entry{
		{Path: "b.py", Language: lang.Python, Hash: "h1", Census: analysis.Census{Nodes: 1}, UpdatedAt: at},
		{Path: "a.py", Language: lang.Python, Hash: "h1", Census: analysis.Census{Nodes: 2}, UpdatedAt: at},
	}))
	require.NoError(t, store.SaveCensus(ctx, []Entry{
		{Path: "b.py", Language: lang.Python, Hash: "h2", Census: analysis.Census{Nodes: 3, HasErrors: true}, UpdatedAt: at},
	}))

	entries, err := store.Entries(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "a.py", entries[0].Path)
	assert.Equal(t, "b.py", entries[1].Path)
	assert.Equal(t, "h2", entries[1].Hash)
	assert.Equal(t, lang.Python, entries[1].Language)
	assert.Equal(t, analysis.Census{Nodes: 3, HasErrors: true}, entries[1].Census)
	assert.True(t, at.Equal(entries[1].UpdatedAt))
}

func TestSQLiteStore_Delete(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveCensus(ctx, []Entry{
		{Path: "a.js", Language: lang.Javascript, Hash: "h"},
		{Path: "b.js", Language: lang.Javascript, Hash: "h"},
	}))
	require.NoError(t, store.Delete(ctx, []string{"a.js", "missing.js"}))
	require.NoError(t, store.Delete(ctx, nil))

	entries, err := store.Entries(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "b.js", entries[0].Path)
}

func TestHash(t *testing.T) {
	assert.Equal(t, Hash([]byte("x")), Hash([]byte("x")))
	assert.NotEqual(t, Hash([]byte("x")), Hash([]byte("y")))
	assert.Len(t, Hash(nil), 64)
}
