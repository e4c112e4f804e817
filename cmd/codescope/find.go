package main

import (
	"context"
	"log"
	"os"

	"codescope/internal/analysis"
	"codescope/internal/crawler"
	"codescope/internal/syntax"

	"github.com/spf13/cobra"
)

var (
	findKinds      []string
	findCategories []string
)

type findReport struct {
	Path      string          `json:"path" yaml:"path" toml:"path" cbor:"path" msgpack:"path"`
	Language  string          `json:"language" yaml:"language" toml:"language" cbor:"language" msgpack:"language"`
	HasErrors bool            `json:"has_errors" yaml:"has_errors" toml:"has_errors" cbor:"has_errors" msgpack:"has_errors"`
	Nodes     []syntax.Record `json:"nodes" yaml:"nodes" toml:"nodes" cbor:"nodes" msgpack:"nodes"`
}

type dumpReport struct {
	Path      string           `json:"path" yaml:"path" toml:"path" cbor:"path" msgpack:"path"`
	Language  string           `json:"language" yaml:"language" toml:"language" cbor:"language" msgpack:"language"`
	HasErrors bool             `json:"has_errors" yaml:"has_errors" toml:"has_errors" cbor:"has_errors" msgpack:"has_errors"`
	Nodes     []analysis.Entry `json:"nodes" yaml:"nodes" toml:"nodes" cbor:"nodes" msgpack:"nodes"`
}

var findCmd = &cobra.Command{
	Use:   "find [paths...]",
	Short: "List the nodes matching kind names or categories",
	Run: func(cmd *cobra.Command, args []string) {
		q := analysis.Query{Kinds: findKinds}
		for _, name := range findCategories {
			cat, err := analysis.ParseCategory(name)
			if err != nil {
				log.Fatalf("Invalid category: %v", err)
			}
			q.Categories = append(q.Categories, cat)
		}
		if q.Empty() {
			log.Fatalf("Nothing to find: pass --kind or --category")
		}

		s, sources := prepare(cmd, args)
		results, err := crawler.Run(contextOf(cmd), s.crawler, sources, func(_ context.Context, src crawler.Source, _ []byte, f analysis.File) (findReport, error) {
			nodes := f.Find(q)
			if lines, ok := s.changedLines(src.Path); ok {
				nodes = analysis.FilterChanged(nodes, lines)
			}
			return findReport{Path: src.Path, Language: src.Language.String(), HasErrors: f.HasErrors(), Nodes: nodes}, nil
		})
		if err != nil {
			log.Fatalf("Find failed: %v", err)
		}
		reportFailures(results)

		reports := values(results)
		matched := 0
		for _, r := range reports {
			matched += len(r.Nodes)
		}
		combined := struct {
			Files []findReport `json:"files" yaml:"files" toml:"files" cbor:"files" msgpack:"files"`
		}{reports}
		if err := emit(s, reports, func(r findReport) string { return r.Path }, combined); err != nil {
			log.Fatalf("Failed to write results: %v", err)
		}
		done.Fprintf(os.Stderr, "🔍 Found %d nodes in %d files.\n", matched, len(reports))
	},
}

var dumpCmd = &cobra.Command{
	Use:   "dump [paths...]",
	Short: "Print every node of each syntax tree with its depth",
	Run: func(cmd *cobra.Command, args []string) {
		s, sources := prepare(cmd, args)
		results, err := crawler.Run(contextOf(cmd), s.crawler, sources, func(_ context.Context, src crawler.Source, _ []byte, f analysis.File) (dumpReport, error) {
			return dumpReport{Path: src.Path, Language: src.Language.String(), HasErrors: f.HasErrors(), Nodes: f.Dump()}, nil
		})
		if err != nil {
			log.Fatalf("Dump failed: %v", err)
		}
		reportFailures(results)

		reports := values(results)
		combined := struct {
			Files []dumpReport `json:"files" yaml:"files" toml:"files" cbor:"files" msgpack:"files"`
		}{reports}
		if err := emit(s, reports, func(r dumpReport) string { return r.Path }, combined); err != nil {
			log.Fatalf("Failed to write results: %v", err)
		}
	},
}

func prepare(cmd *cobra.Command, args []string) (*settings, []crawler.Source) {
	s, err := loadSettings(cmd)
	if err != nil {
		log.Fatalf("Failed to load settings: %v", err)
	}
	sources, err := s.sources(args)
	if err != nil {
		log.Fatalf("Failed to collect sources: %v", err)
	}
	return s, sources
}

// values keeps the successful results in source order.
func values[T any](results []crawler.Result[T]) []T {
	out := make([]T, 0, len(results))
	for _, r := range results {
		if r.Err == nil {
			out = append(out, r.Value)
		}
	}
	return out
}
