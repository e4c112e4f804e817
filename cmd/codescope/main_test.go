package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"codescope/internal/analysis"
	"codescope/internal/crawler"
	"codescope/internal/lang"
	"codescope/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupCached(t *testing.T) {
	dir := t.TempDir()
	cached := filepath.Join(dir, "a.py")
	stale := filepath.Join(dir, "b.py")
	require.NoError(t, os.WriteFile(cached, []byte("x = 1\n"), 0o644))
	require.NoError(t, os.WriteFile(stale, []byte("y = 2\n"), 0o644))

	store, err := storage.NewSQLiteStore(filepath.Join(dir, "cache.db"))
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	require.NoError(t, store.SaveCensus(ctx, []storage.Entry{
		{Path: relative(cached), Language: lang.Python, Hash: storage.Hash([]byte("x = 1\n")), Census: analysis.Census{Nodes: 9}},
		{Path: relative(stale), Language: lang.Python, Hash: storage.Hash([]byte("old\n")), Census: analysis.Census{Nodes: 1}},
	}))

	sources := []crawler.Source{
		{Path: cached, Language: lang.Python},
		{Path: stale, Language: lang.Python},
		{Path: filepath.Join(dir, "missing.py"), Language: lang.Python},
	}
	reports, pending := lookupCached(ctx, store, sources)

	require.Len(t, reports, 1)
	assert.Equal(t, cached, reports[0].Path)
	assert.True(t, reports[0].Cached)
	assert.Equal(t, 9, reports[0].Census.Nodes)
	assert.Equal(t, sources[1:], pending)

	reports, pending = lookupCached(ctx, nil, sources)
	assert.Empty(t, reports)
	assert.Equal(t, sources, pending)
}

func TestInSourceOrder(t *testing.T) {
	sources := []crawler.Source{{Path: "a"}, {Path: "b"}, {Path: "c"}}
	reports := []countReport{{Path: "c"}, {Path: "a", Cached: true}}

	got := inSourceOrder(sources, reports)
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].Path)
	assert.True(t, got[0].Cached)
	assert.Equal(t, "c", got[1].Path)
}

func TestValues(t *testing.T) {
	results := []crawler.Result[int]{
		{Value: 1},
		{Value: 2, Err: assert.AnError},
		{Value: 3},
	}
	assert.Equal(t, []int{1, 3}, values(results))
}

func TestPruneMissing(t *testing.T) {
	dir := t.TempDir()
	kept := filepath.Join(dir, "kept.rs")
	require.NoError(t, os.WriteFile(kept, []byte("fn f() {}\n"), 0o644))

	store, err := storage.NewSQLiteStore(filepath.Join(dir, "cache.db"))
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	require.NoError(t, store.SaveCensus(ctx, []storage.Entry{
		{Path: relative(kept), Language: lang.Rust, Hash: "h"},
		{Path: relative(filepath.Join(dir, "deleted.rs")), Language: lang.Rust, Hash: "h"},
	}))

	pruned, err := pruneMissing(ctx, store)
	require.NoError(t, err)
	assert.Equal(t, 1, pruned)

	entries, err := store.Entries(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, relative(kept), entries[0].Path)

	pruned, err = pruneMissing(ctx, store)
	require.NoError(t, err)
	assert.Zero(t, pruned)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriteStripped(t *testing.T) {
	results := []crawler.Result[[]byte]{
		{Source: crawler.Source{Path: "a.rs"}, Value: []byte("fn a() {}\n")},
		{Source: crawler.Source{Path: "b.rs"}, Err: assert.AnError},
		{Source: crawler.Source{Path: "c.rs"}, Value: []byte("fn c() {}\n")},
	}

	t.Run("Headers between files", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeStripped(&buf, results))
		assert.Equal(t, "==> a.rs <==\nfn a() {}\n==> c.rs <==\nfn c() {}\n", buf.String())
	})

	t.Run("Single file has no header", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeStripped(&buf, results[:1]))
		assert.Equal(t, "fn a() {}\n", buf.String())
	})

	t.Run("Write failure is returned", func(t *testing.T) {
		assert.ErrorContains(t, writeStripped(failingWriter{}, results[:1]), "disk full")
	})
}
