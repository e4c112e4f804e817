package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"codescope/internal/analysis"
	"codescope/internal/crawler"

	"github.com/spf13/cobra"
)

var inPlace bool

var stripCmd = &cobra.Command{
	Use:   "strip [paths...]",
	Short: "Remove comments that carry no directive from source files",
	Run: func(cmd *cobra.Command, args []string) {
		s, sources := prepare(cmd, args)
		results, err := crawler.Run(contextOf(cmd), s.crawler, sources, func(_ context.Context, src crawler.Source, data []byte, f analysis.File) ([]byte, error) {
			stripped := f.StripComments()
			if !inPlace || bytes.Equal(stripped, data) {
				return stripped, nil
			}
			st, err := os.Stat(src.Path)
			if err != nil {
				return nil, err
			}
			if err := os.WriteFile(src.Path, stripped, st.Mode().Perm()); err != nil {
				return nil, fmt.Errorf("failed to rewrite file: %w", err)
			}
			return stripped, nil
		})
		if err != nil {
			log.Fatalf("Strip failed: %v", err)
		}
		failed := reportFailures(results)

		if inPlace {
			done.Fprintf(os.Stderr, "🧹 Stripped %d files.\n", len(results)-failed)
			return
		}
		if err := writeStripped(cmd.OutOrStdout(), results); err != nil {
			log.Fatalf("Failed to write results: %v", err)
		}
	},
}

// writeStripped prints the successful results, each under a header when there
// is more than one.
func writeStripped(out io.Writer, results []crawler.Result[[]byte]) error {
	for _, r := range results {
		if r.Err != nil {
			continue
		}
		if len(results) > 1 {
			if _, err := fmt.Fprintf(out, "==> %s <==\n", r.Path); err != nil {
				return err
			}
		}
		if _, err := out.Write(r.Value); err != nil {
			return err
		}
	}
	return nil
}
