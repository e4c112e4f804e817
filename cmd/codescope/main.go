package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"codescope/internal/config"
	"codescope/internal/crawler"
	"codescope/internal/git"
	"codescope/internal/output"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
)

var (
	rootCmd = &cobra.Command{
		Use:   "codescope",
		Short: "Classify syntax tree nodes of C, C++, Python, Java, JavaScript, TypeScript and Rust sources",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			commonlog.Configure(verbose, nil)
		},
	}

	configPath   string
	outputFormat string
	outputDir    string
	pretty       bool
	language     string
	jobs         int
	include      []string
	exclude      []string
	changedRef   string
	verbose      int
	dbPath       string
)

var (
	info = color.New(color.FgCyan)
	done = color.New(color.FgGreen)
	warn = color.New(color.FgYellow)
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", config.DefaultPath, "Path to the configuration file")
	flags.StringVarP(&outputFormat, "output-format", "O", "json", "Output format: cbor, json, toml, yaml or msgpack")
	flags.StringVarP(&outputDir, "output", "o", "", "Write one report per source file into this directory")
	flags.BoolVar(&pretty, "pretty", false, "Indent json and toml output")
	flags.StringVarP(&language, "language", "l", "", "Force every file to this language variant")
	flags.IntVarP(&jobs, "jobs", "j", 0, "Number of files analyzed in parallel (0 = all cores)")
	flags.StringSliceVarP(&include, "include", "I", nil, "Only analyze paths matching these globs")
	flags.StringSliceVarP(&exclude, "exclude", "X", nil, "Skip paths matching these globs")
	flags.StringVar(&changedRef, "changed", "", "Only analyze files (and report nodes) changed since this git ref")
	flags.CountVarP(&verbose, "verbose", "v", "Increase log verbosity")

	countCmd.Flags().StringVar(&dbPath, "db", "", "Cache counts in this SQLite database")
	stripCmd.Flags().BoolVar(&inPlace, "in-place", false, "Rewrite the files instead of printing them")
	findCmd.Flags().StringSliceVarP(&findKinds, "kind", "k", nil, "Node kind names to report")
	findCmd.Flags().StringSliceVarP(&findCategories, "category", "c", nil, "Categories to report (see 'codescope languages')")

	rootCmd.AddCommand(countCmd)
	rootCmd.AddCommand(findCmd)
	rootCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(stripCmd)
	rootCmd.AddCommand(languagesCmd)
}

// settings is the configuration file merged with the flags given on the
// command line.
type settings struct {
	cfg     *config.Config
	writer  *output.Writer
	crawler *crawler.Crawler
	// changed maps cwd-relative paths to their changed lines. Nil unless
	// --changed was given.
	changed map[string][]int
}

func loadSettings(cmd *cobra.Command) (*settings, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("output-format") {
		cfg.Output.Format = outputFormat
	}
	if flags.Changed("output") {
		cfg.Output.Dir = outputDir
	}
	if flags.Changed("pretty") {
		cfg.Output.Pretty = pretty
	}
	if flags.Changed("language") {
		cfg.Scan.Language = language
	}
	if flags.Changed("jobs") {
		cfg.Scan.Jobs = jobs
	}
	if flags.Changed("include") {
		cfg.Scan.Include = include
	}
	if flags.Changed("exclude") {
		cfg.Scan.Exclude = exclude
	}
	if flags.Changed("db") {
		cfg.Cache.DB = dbPath
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	format, err := output.ParseFormat(cfg.Output.Format)
	if err != nil {
		return nil, err
	}
	c, err := crawler.NewCrawler(crawler.Options{
		Language: cfg.Scan.Language,
		Include:  cfg.Scan.Include,
		Exclude:  cfg.Scan.Exclude,
		Jobs:     cfg.Scan.Jobs,
	})
	if err != nil {
		return nil, err
	}

	s := &settings{
		cfg:     cfg,
		writer:  &output.Writer{Format: format, Pretty: cfg.Output.Pretty, Dir: cfg.Output.Dir, Stdout: cmd.OutOrStdout()},
		crawler: c,
	}
	if changedRef != "" {
		files, err := git.GetChangedFiles(contextOf(cmd), ".", changedRef)
		if err != nil {
			return nil, fmt.Errorf("failed to get git changes: %w", err)
		}
		s.changed = git.Lines(files)
	}
	return s, nil
}

// sources collects the files named by args, restricted to changed files when
// --changed is active.
func (s *settings) sources(args []string) ([]crawler.Source, error) {
	roots := args
	if len(roots) == 0 {
		roots = []string{"."}
	}
	info.Fprintf(os.Stderr, "📂 Scanning %v\n", roots)

	sources, err := s.crawler.Collect(roots)
	if err != nil {
		return nil, err
	}
	if s.changed == nil {
		return sources, nil
	}

	kept := sources[:0]
	for _, src := range sources {
		if _, ok := s.changed[relative(src.Path)]; ok {
			kept = append(kept, src)
		}
	}
	info.Fprintf(os.Stderr, "📝 %d of %d files changed since %s\n", len(kept), len(sources), changedRef)
	return kept, nil
}

// changedLines returns the changed lines of path, or nil when every line
// counts.
func (s *settings) changedLines(path string) ([]int, bool) {
	if s.changed == nil {
		return nil, false
	}
	return s.changed[relative(path)], true
}

func relative(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.ToSlash(filepath.Clean(path))
	}
	wd, err := os.Getwd()
	if err != nil {
		return filepath.ToSlash(abs)
	}
	rel, err := filepath.Rel(wd, abs)
	if err != nil {
		return filepath.ToSlash(abs)
	}
	return filepath.ToSlash(rel)
}

// emit writes per-file reports into the output directory, or the combined
// document to stdout when no directory is configured.
func emit[T any](s *settings, reports []T, pathOf func(T) string, combined any) error {
	if s.writer.Dir == "" {
		return s.writer.Write(combined, "")
	}
	for _, r := range reports {
		if err := s.writer.Write(r, pathOf(r)); err != nil {
			return err
		}
	}
	done.Fprintf(os.Stderr, "💾 Wrote %d reports to %s\n", len(reports), s.writer.Dir)
	return nil
}

func reportFailures[T any](results []crawler.Result[T]) int {
	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			warn.Fprintf(os.Stderr, "⚠️  %s: %v\n", r.Path, r.Err)
		}
	}
	return failed
}

func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
