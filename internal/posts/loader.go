package posts

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/pkg/interfaces"
	"golang.org/x/sync/errgroup"
)

// LoaderConfig configures how documents are discovered and parsed.
type LoaderConfig struct {
	// BasePath is the directory the filesystem is rooted at. It is only used
	// to turn absolute paths into filesystem-relative ones.
	BasePath string
	// Pattern limits discovered files to those matching the glob (defaults to "*.md").
	Pattern string
	// Recursive controls whether sub-directories are traversed.
	Recursive bool
	// Workers bounds concurrent document parsing. Zero uses GOMAXPROCS.
	Workers int
	Parse   ParseOptions
	Undated UndatedPolicy
	Logger  interfaces.Logger
}

// Loader turns filesystem paths into posts.
type Loader struct {
	fs        fs.FS
	basePath  string
	pattern   string
	recursive bool
	workers   int
	parse     ParseOptions
	undated   UndatedPolicy
	logger    interfaces.Logger
}

// DocumentResult carries a parsed post along with source metadata.
type DocumentResult struct {
	Path     string
	Post     Post
	Checksum []byte
	Modified time.Time
}

// SkippedDocument records a document left out of a collection.
type SkippedDocument struct {
	Path string
	Err  error
}

// LoadReport summarises a collection load.
type LoadReport struct {
	Discovered int
	Loaded     int
	Skipped    []SkippedDocument
}

// NewLoader constructs a Loader using the provided filesystem and configuration.
func NewLoader(filesystem fs.FS, cfg LoaderConfig) *Loader {
	pattern := cfg.Pattern
	if strings.TrimSpace(pattern) == "" {
		pattern = "*.md"
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	undated := cfg.Undated
	if undated == "" {
		undated = UndatedEqual
	}

	return &Loader{
		fs:        filesystem,
		basePath:  filepath.Clean(cfg.BasePath),
		pattern:   pattern,
		recursive: cfg.Recursive,
		workers:   workers,
		parse:     cfg.Parse,
		undated:   undated,
		logger:    logging.OrNoOp(cfg.Logger),
	}
}

// LoadFile reads and parses a single document.
func (l *Loader) LoadFile(ctx context.Context, path string) (*DocumentResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rel, err := l.makeRelative(path)
	if err != nil {
		return nil, err
	}
	rel = filepath.ToSlash(rel)

	data, err := fs.ReadFile(l.fs, rel)
	if err != nil {
		return nil, fmt.Errorf("posts loader read %s: %w", rel, err)
	}

	info, err := fs.Stat(l.fs, rel)
	if err != nil {
		return nil, fmt.Errorf("posts loader stat %s: %w", rel, err)
	}

	post, err := ParsePost(data, l.parse)
	if err != nil {
		return nil, fmt.Errorf("posts loader parse %s: %w", rel, err)
	}
	sum := sha256.Sum256(data)

	return &DocumentResult{
		Path:     rel,
		Post:     post,
		Checksum: sum[:],
		Modified: info.ModTime(),
	}, nil
}

// Discover lists the documents under dir that match the loader pattern, in
// lexical walk order.
func (l *Loader) Discover(ctx context.Context, dir string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	root, err := l.makeRelative(dir)
	if err != nil {
		return nil, err
	}
	root = filepath.ToSlash(filepath.Clean(root))

	var paths []string
	walkErr := fs.WalkDir(l.fs, root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			if !l.shouldRecurse(root, path) {
				return fs.SkipDir
			}
			return nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if l.matchesPattern(path) {
			paths = append(paths, path)
		}
		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("posts loader walk %s: %w", root, walkErr)
	}
	return paths, nil
}

// LoadCollection discovers and parses every document under dir. Documents are
// parsed concurrently; results are collected by discovery position before
// sorting, so the output never depends on completion order. A document that
// fails to load is logged and reported in LoadReport.Skipped. Walk errors
// and context cancellation abort the load.
func (l *Loader) LoadCollection(ctx context.Context, dir string) (*Collection, LoadReport, error) {
	paths, err := l.Discover(ctx, dir)
	if err != nil {
		return nil, LoadReport{}, err
	}

	results := make([]*DocumentResult, len(paths))
	failures := make([]error, len(paths))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(l.workers)
	for i, path := range paths {
		group.Go(func() error {
			result, err := l.LoadFile(groupCtx, path)
			if err != nil {
				if isContextError(err) {
					return err
				}
				failures[i] = err
				return nil
			}
			results[i] = result
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, LoadReport{}, err
	}
	if err := ctx.Err(); err != nil {
		return nil, LoadReport{}, err
	}

	report := LoadReport{Discovered: len(paths)}
	loaded := make([]Post, 0, len(paths))
	seen := make(map[string]string, len(paths))
	for i, path := range paths {
		if failures[i] != nil {
			l.logger.Warn("posts.load.skipped", "path", path, "error", failures[i])
			report.Skipped = append(report.Skipped, SkippedDocument{Path: path, Err: failures[i]})
			continue
		}
		post := results[i].Post
		if post.ID != "" {
			if first, dup := seen[post.ID]; dup {
				l.logger.Warn("posts.load.duplicate_id", "path", path, "post_id", post.ID, "first_path", first)
			} else {
				seen[post.ID] = path
			}
		}
		loaded = append(loaded, post)
	}
	report.Loaded = len(loaded)

	l.logger.Info("posts.load.completed", "dir", dir, "discovered", report.Discovered, "loaded", report.Loaded, "skipped", len(report.Skipped))
	return NewCollection(loaded, l.undated), report, nil
}

func (l *Loader) shouldRecurse(root, current string) bool {
	if l.recursive {
		return true
	}
	// If recursion is disabled, only walk the root directory.
	return filepath.Clean(root) == filepath.Clean(current)
}

// matchesPattern matches slash-separated paths. A leading "**/" lets the rest
// of the pattern match at any depth.
func (l *Loader) matchesPattern(name string) bool {
	pattern := filepath.ToSlash(l.pattern)
	anyDepth := strings.HasPrefix(pattern, "**/")
	pattern = strings.ReplaceAll(pattern, "**/", "")

	if !strings.Contains(pattern, "/") {
		return matchGlob(pattern, path.Base(name))
	}
	if matchGlob(pattern, name) {
		return true
	}
	if anyDepth {
		for i := range len(name) {
			if name[i] == '/' && matchGlob(pattern, name[i+1:]) {
				return true
			}
		}
	}
	return false
}

func matchGlob(pattern, name string) bool {
	match, err := path.Match(pattern, name)
	return err == nil && match
}

func (l *Loader) makeRelative(path string) (string, error) {
	clean := filepath.Clean(path)
	if !filepath.IsAbs(clean) {
		return clean, nil
	}
	if l.basePath == "" || l.basePath == "." {
		return "", fmt.Errorf("posts loader: absolute path %s provided without base path", path)
	}
	rel, err := filepath.Rel(l.basePath, clean)
	if err != nil {
		return "", fmt.Errorf("posts loader: make relative %s: %w", path, err)
	}
	return rel, nil
}

func isContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
