package storage

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"codescope/internal/analysis"
	"codescope/internal/lang"
)

// Store combines census caching with resource cleanup.
type Store interface {
	CensusStore
	Close() error
}

// Entry is the cached census of one file at one content hash.
type Entry struct {
	Path      string
	Language  lang.ID
	Hash      string
	Census    analysis.Census
	UpdatedAt time.Time
}

// CensusStore persists per-file counts so unchanged files are not reparsed.
type CensusStore interface {
	// SaveCensus upserts entries keyed by path in a single transaction.
	SaveCensus(ctx context.Context, entries []Entry) error

	// LoadCensus returns the cached census for path when it was taken for the
	// same language and content hash.
	LoadCensus(ctx context.Context, path string, id lang.ID, hash string) (analysis.Census, bool, error)

	// Entries lists every cached entry ordered by path.
	Entries(ctx context.Context) ([]Entry, error)

	// Delete removes the entries of the given paths.
	Delete(ctx context.Context, paths []string) error
}

// Hash returns the content hash used as cache key.
func Hash(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}
