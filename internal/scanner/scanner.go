package scanner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/errgroup"

	"github.com/Aman-CERP/ignorelib/pkg/ignore"
)

// Scanner discovers the non-ignored files under a Manager's root.
type Scanner struct {
	manager *ignore.Manager
	logger  *slog.Logger
}

// New creates a Scanner backed by m.
func New(m *ignore.Manager, logger *slog.Logger) *Scanner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scanner{manager: m, logger: logger}
}

// candidate is a walked file waiting for inspection.
type candidate struct {
	rel string
	abs string
}

// Scan streams every kept file. Results arrive in no particular order; the
// channel is closed when scanning is complete or ctx is cancelled.
func (s *Scanner) Scan(ctx context.Context, opts *Options) (<-chan Result, error) {
	if opts == nil {
		opts = &Options{}
	}

	for _, p := range append(slices.Clone(opts.Include), opts.Exclude...) {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid glob pattern: %q", p)
		}
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	results := make(chan Result, workers*10)

	go func() {
		defer close(results)

		g, gctx := errgroup.WithContext(ctx)
		paths := make(chan candidate, workers*10)

		g.Go(func() error {
			defer close(paths)
			return s.produce(gctx, opts, paths, results)
		})

		for i := 0; i < workers; i++ {
			g.Go(func() error {
				for c := range paths {
					fi, ok := s.inspect(c, opts)
					if !ok {
						continue
					}
					select {
					case results <- Result{File: fi}:
					case <-gctx.Done():
						return gctx.Err()
					}
				}
				return nil
			})
		}

		if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
			select {
			case results <- Result{Error: err}:
			case <-ctx.Done():
			}
		}
	}()

	return results, nil
}

// ScanAll runs Scan to completion and returns the files sorted by path.
// Directory read errors are logged and skipped.
func (s *Scanner) ScanAll(ctx context.Context, opts *Options) ([]FileInfo, error) {
	ch, err := s.Scan(ctx, opts)
	if err != nil {
		return nil, err
	}

	var files []FileInfo
	for r := range ch {
		if r.Error != nil {
			s.logger.Warn("scan error", slog.String("error", r.Error.Error()))
			continue
		}
		files = append(files, *r.File)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	slices.SortFunc(files, func(a, b FileInfo) int {
		return strings.Compare(a.Path, b.Path)
	})
	return files, nil
}

// produce walks the tree and queues selected files.
func (s *Scanner) produce(ctx context.Context, opts *Options, paths chan<- candidate, results chan<- Result) error {
	var walkOpts []ignore.WalkOption
	if opts.FollowSymlinks {
		walkOpts = append(walkOpts, ignore.WithFollowSymlinks(true))
	}

	for entry, err := range s.manager.Walk(walkOpts...) {
		if err != nil {
			s.logger.Warn("failed to read directory",
				slog.String("dir", entry.Dir),
				slog.String("error", err.Error()))
			select {
			case results <- Result{Error: err}:
			case <-ctx.Done():
				return ctx.Err()
			}
			continue
		}

		for _, name := range entry.Files {
			rel := entry.Path(name)
			if !selected(rel, opts) {
				continue
			}
			select {
			case paths <- candidate{rel: rel, abs: filepath.Join(entry.AbsDir, name)}:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
	return nil
}

// selected applies the include and exclude globs.
func selected(rel string, opts *Options) bool {
	if matchesAny(rel, opts.Exclude) {
		return false
	}
	return len(opts.Include) == 0 || matchesAny(rel, opts.Include)
}

func matchesAny(rel string, patterns []string) bool {
	for _, p := range patterns {
		if ok, _ := doublestar.Match(p, rel); ok {
			return true
		}
	}
	return false
}

// inspect stats a candidate and applies the size and binary filters.
func (s *Scanner) inspect(c candidate, opts *Options) (*FileInfo, bool) {
	info, err := os.Stat(c.abs)
	if err != nil {
		s.logger.Debug("skipping unreadable file",
			slog.String("path", c.rel),
			slog.String("error", err.Error()))
		return nil, false
	}

	if opts.MaxFileSize > 0 && info.Size() > opts.MaxFileSize {
		return nil, false
	}

	binary := isBinaryFile(c.abs)
	if binary && opts.SkipBinary {
		return nil, false
	}

	return &FileInfo{
		Path:    c.rel,
		AbsPath: c.abs,
		Size:    info.Size(),
		ModTime: info.ModTime(),
		Binary:  binary,
	}, true
}

// isBinaryFile checks if a file is binary by looking for null bytes.
func isBinaryFile(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer func() { _ = f.Close() }()

	buf := make([]byte, binarySniffSize)
	n, err := f.Read(buf)
	if err != nil {
		return false
	}

	return bytes.Contains(buf[:n], []byte{0})
}
