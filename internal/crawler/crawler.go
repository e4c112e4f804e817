package crawler

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"slices"

	"codescope/internal/analysis"
	"codescope/internal/lang"

	"github.com/gobwas/glob"
	"github.com/tliron/commonlog"
	"golang.org/x/sync/errgroup"
)

var log = commonlog.GetLogger("codescope.crawler")

// Options controls which files are collected and how many are analyzed at once.
type Options struct {
	// Language forces every file to one variant. Empty means detect by extension.
	Language string
	Include  []string
	Exclude  []string
	// Jobs bounds parallel analysis. Zero means GOMAXPROCS.
	Jobs int
}

// Source is one file selected for analysis.
type Source struct {
	Path     string
	Language lang.ID
}

// Result is the outcome of analyzing one Source. Err is set when the file
// could not be read or parsed, or when the per-file action failed.
type Result[T any] struct {
	Source
	Value T
	Err   error
}

// Crawler scans directories for source files of the supported languages.
type Crawler struct {
	ignored  []string
	include  []glob.Glob
	exclude  []glob.Glob
	forced   bool
	language lang.ID
	jobs     int
}

// NewCrawler compiles the filters in opts.
func NewCrawler(opts Options) (*Crawler, error) {
	c := &Crawler{
		ignored: []string{".git", ".hg", ".svn", "node_modules", "vendor", "target"},
		jobs:    opts.Jobs,
	}
	if c.jobs <= 0 {
		c.jobs = runtime.GOMAXPROCS(0)
	}
	if opts.Language != "" {
		id, err := lang.ParseID(opts.Language)
		if err != nil {
			return nil, err
		}
		c.forced, c.language = true, id
	}

	var err error
	if c.include, err = compile(opts.Include); err != nil {
		return nil, err
	}
	if c.exclude, err = compile(opts.Exclude); err != nil {
		return nil, err
	}
	return c, nil
}

func compile(patterns []string) ([]glob.Glob, error) {
	out := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(p, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid glob %q: %w", p, err)
		}
		out = append(out, g)
	}
	return out, nil
}

// Collect walks roots and returns the selected files in walk order, each
// listed once. Files named directly are taken regardless of the glob filters.
func (c *Crawler) Collect(roots []string) ([]Source, error) {
	var sources []Source
	seen := make(map[string]bool)
	add := func(path string) {
		if seen[path] {
			return
		}
		id, ok := c.detect(path)
		if !ok {
			return
		}
		seen[path] = true
		sources = append(sources, Source{Path: path, Language: id})
	}

	for _, root := range roots {
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", root, err)
		}
		if !info.IsDir() {
			add(root)
			continue
		}

		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if d.IsDir() {
				if path != root && slices.Contains(c.ignored, d.Name()) {
					return filepath.SkipDir
				}
				return nil
			}

			if c.selected(filepath.ToSlash(path)) {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to walk %s: %w", root, err)
		}
	}
	return sources, nil
}

func (c *Crawler) detect(path string) (lang.ID, bool) {
	if c.forced {
		return c.language, true
	}
	id, err := lang.FromPath(path)
	return id, err == nil
}

func (c *Crawler) selected(path string) bool {
	for _, g := range c.exclude {
		if g.Match(path) {
			return false
		}
	}
	if len(c.include) == 0 {
		return true
	}
	for _, g := range c.include {
		if g.Match(path) {
			return true
		}
	}
	return false
}

// Action analyzes one opened file.
type Action[T any] func(ctx context.Context, src Source, source []byte, f analysis.File) (T, error)

// Run reads, parses and hands every source to action, at most c.jobs at a
// time. Results keep the order of sources. Per-file failures are logged and
// recorded on the result; only cancellation of ctx is returned as an error.
func Run[T any](ctx context.Context, c *Crawler, sources []Source, action Action[T]) ([]Result[T], error) {
	results := make([]Result[T], len(sources))
	if len(sources) == 0 {
		return results, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(c.jobs, len(sources)))

	for i, src := range sources {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			results[i].Source = src
			value, err := analyze(gctx, src, action)
			if err != nil {
				log.Errorf("%s: %s", src.Path, err)
				results[i].Err = err
				return nil
			}
			results[i].Value = value
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func analyze[T any](ctx context.Context, src Source, action Action[T]) (T, error) {
	var zero T
	data, err := os.ReadFile(src.Path)
	if err != nil {
		return zero, fmt.Errorf("failed to read file: %w", err)
	}

	f, err := analysis.Open(ctx, src.Language, data)
	if err != nil {
		return zero, err
	}
	defer f.Close()

	log.Debugf("analyzing %s as %s", src.Path, src.Language)
	return action(ctx, src, data, f)
}
