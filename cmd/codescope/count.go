package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"time"

	"codescope/internal/analysis"
	"codescope/internal/crawler"
	"codescope/internal/storage"

	"github.com/spf13/cobra"
)

type countReport struct {
	Path     string          `json:"path" yaml:"path" toml:"path" cbor:"path" msgpack:"path"`
	Language string          `json:"language" yaml:"language" toml:"language" cbor:"language" msgpack:"language"`
	Census   analysis.Census `json:"census" yaml:"census" toml:"census" cbor:"census" msgpack:"census"`
	Cached   bool            `json:"cached" yaml:"cached" toml:"cached" cbor:"cached" msgpack:"cached"`
}

type countSummary struct {
	Files  []countReport   `json:"files" yaml:"files" toml:"files" cbor:"files" msgpack:"files"`
	Failed int             `json:"failed" yaml:"failed" toml:"failed" cbor:"failed" msgpack:"failed"`
	Total  analysis.Census `json:"total" yaml:"total" toml:"total" cbor:"total" msgpack:"total"`
}

type counted struct {
	census analysis.Census
	hash   string
}

var countCmd = &cobra.Command{
	Use:   "count [paths...]",
	Short: "Count the nodes of every category in each source file",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := contextOf(cmd)
		s, sources := prepare(cmd, args)

		var store storage.Store
		if s.cfg.Cache.DB != "" {
			var err error
			store, err = storage.NewSQLiteStore(s.cfg.Cache.DB)
			if err != nil {
				log.Fatalf("Failed to initialize database: %v", err)
			}
			defer store.Close()
		}

		start := time.Now()
		reports, pending := lookupCached(ctx, store, sources)
		info.Fprintf(os.Stderr, "🚀 Counting %d files (%d cached)...\n", len(pending), len(sources)-len(pending))

		results, err := crawler.Run(ctx, s.crawler, pending, func(_ context.Context, _ crawler.Source, data []byte, f analysis.File) (counted, error) {
			return counted{census: f.Count(), hash: storage.Hash(data)}, nil
		})
		if err != nil {
			log.Fatalf("Count failed: %v", err)
		}
		failed := reportFailures(results)

		var fresh []storage.Entry
		for _, r := range results {
			if r.Err != nil {
				continue
			}
			reports = append(reports, countReport{Path: r.Path, Language: r.Language.String(), Census: r.Value.census})
			fresh = append(fresh, storage.Entry{Path: relative(r.Path), Language: r.Language, Hash: r.Value.hash, Census: r.Value.census})
		}
		if store != nil {
			if len(fresh) > 0 {
				if err := store.SaveCensus(ctx, fresh); err != nil {
					log.Fatalf("Failed to save counts: %v", err)
				}
			}
			pruned, err := pruneMissing(ctx, store)
			if err != nil {
				log.Fatalf("Failed to prune cache: %v", err)
			}
			if pruned > 0 {
				info.Fprintf(os.Stderr, "🗑️  Pruned %d cached files that no longer exist.\n", pruned)
			}
		}
		reports = inSourceOrder(sources, reports)

		summary := countSummary{Files: reports, Failed: failed}
		for _, r := range reports {
			summary.Total.Add(r.Census)
		}
		if err := emit(s, reports, func(r countReport) string { return r.Path }, summary); err != nil {
			log.Fatalf("Failed to write results: %v", err)
		}
		done.Fprintf(os.Stderr, "✅ Counted %d nodes in %d files in %v.\n", summary.Total.Nodes, len(reports), time.Since(start))
	},
}

// lookupCached splits sources into reports served from store and sources
// that still need parsing. A nil store caches nothing.
func lookupCached(ctx context.Context, store storage.CensusStore, sources []crawler.Source) ([]countReport, []crawler.Source) {
	if store == nil {
		return nil, sources
	}

	var reports []countReport
	var pending []crawler.Source
	for _, src := range sources {
		data, err := os.ReadFile(src.Path)
		if err != nil {
			// The crawler reports the read failure.
			pending = append(pending, src)
			continue
		}
		census, ok, err := store.LoadCensus(ctx, relative(src.Path), src.Language, storage.Hash(data))
		if err != nil || !ok {
			pending = append(pending, src)
			continue
		}
		reports = append(reports, countReport{Path: src.Path, Language: src.Language.String(), Census: census, Cached: true})
	}
	return reports, pending
}

// pruneMissing deletes the cached entries whose file is gone.
func pruneMissing(ctx context.Context, store storage.CensusStore) (int, error) {
	entries, err := store.Entries(ctx)
	if err != nil {
		return 0, err
	}
	var gone []string
	for _, e := range entries {
		if _, err := os.Stat(e.Path); errors.Is(err, fs.ErrNotExist) {
			gone = append(gone, e.Path)
		}
	}
	if err := store.Delete(ctx, gone); err != nil {
		return 0, fmt.Errorf("failed to delete cached entries: %w", err)
	}
	return len(gone), nil
}

func inSourceOrder(sources []crawler.Source, reports []countReport) []countReport {
	byPath := make(map[string]countReport, len(reports))
	for _, r := range reports {
		byPath[r.Path] = r
	}
	out := make([]countReport, 0, len(reports))
	for _, src := range sources {
		if r, ok := byPath[src.Path]; ok {
			out = append(out, r)
		}
	}
	return out
}
