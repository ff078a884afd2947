package posts

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

// Config controls how the posts service discovers and parses files.
type Config struct {
	BasePath  string
	Pattern   string
	Recursive bool
	Workers   int
	Parse     ParseOptions
	Undated   UndatedPolicy
}

// Service loads posts from a directory on disk.
type Service struct {
	cfg    Config
	loader *Loader
	logger interfaces.Logger
}

// NewService constructs a posts service rooted at cfg.BasePath.
func NewService(cfg Config, logger interfaces.Logger) (*Service, error) {
	filesystem, err := prepareFilesystem(cfg.BasePath)
	if err != nil {
		return nil, err
	}
	return NewServiceFS(filesystem, cfg, logger), nil
}

// NewServiceFS constructs a posts service over an existing filesystem.
func NewServiceFS(filesystem fs.FS, cfg Config, logger interfaces.Logger) *Service {
	logger = logging.OrNoOp(logger)
	loader := NewLoader(filesystem, LoaderConfig{
		BasePath:  cfg.BasePath,
		Pattern:   cfg.Pattern,
		Recursive: cfg.Recursive,
		Workers:   cfg.Workers,
		Parse:     cfg.Parse,
		Undated:   cfg.Undated,
		Logger:    logger,
	})

	return &Service{
		cfg:    cfg,
		loader: loader,
		logger: logger,
	}
}

// Load reads a single post relative to the configured base path.
func (s *Service) Load(ctx context.Context, path string) (*DocumentResult, error) {
	result, err := s.loader.LoadFile(ctx, s.normalisePath(path))
	if err != nil {
		return nil, err
	}
	logging.WithDocumentContext(s.logger, result.Path, result.Post.ID, "load").
		Debug("posts.load.document", "blocks", len(result.Post.Content))
	return result, nil
}

// Parse parses an in-memory document with the service's parse options.
func (s *Service) Parse(source []byte) (Post, error) {
	return ParsePost(source, s.cfg.Parse)
}

// LoadCollection reads every post within dir.
func (s *Service) LoadCollection(ctx context.Context, dir string) (*Collection, LoadReport, error) {
	return s.loader.LoadCollection(ctx, s.normalisePath(dir))
}

func (s *Service) normalisePath(path string) string {
	if strings.TrimSpace(path) == "" {
		return "."
	}
	clean := filepath.Clean(path)
	if filepath.IsAbs(clean) && strings.TrimSpace(s.cfg.BasePath) != "" {
		if rel, err := filepath.Rel(s.cfg.BasePath, clean); err == nil {
			return filepath.ToSlash(rel)
		}
	}
	return filepath.ToSlash(clean)
}

func prepareFilesystem(basePath string) (fs.FS, error) {
	if strings.TrimSpace(basePath) == "" {
		basePath = "."
	}
	if _, err := os.Stat(basePath); err != nil {
		return nil, fmt.Errorf("posts service: stat base path %s: %w", basePath, err)
	}
	return os.DirFS(basePath), nil
}
