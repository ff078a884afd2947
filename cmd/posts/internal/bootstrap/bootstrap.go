package bootstrap

import (
	"fmt"
	"os"
	"strings"

	"github.com/goliatone/go-blog"
	postscmd "github.com/goliatone/go-blog/internal/commands/posts"
	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

// Options captures configuration shared by the posts CLIs.
type Options struct {
	ContentDir        string
	Pattern           string
	Recursive         bool
	Workers           int
	FrontMatterFormat string
	// SchemaFile names a JSON Schema file front matter must satisfy.
	SchemaFile        string
	Undated           string
	StrictCallouts    bool
	LogProvider       string
	LogLevel          string
	LoggerProvider    interfaces.LoggerProvider
}

// Module wraps the blog module with the handlers and logger the CLIs use.
type Module struct {
	Module   *blog.Module
	Commands *postscmd.HandlerSet
	Logger   interfaces.Logger
}

// BuildModule constructs a blog module configured from CLI options.
func BuildModule(opts Options) (*Module, error) {
	cfg := blog.DefaultConfig()
	if dir := strings.TrimSpace(opts.ContentDir); dir != "" {
		cfg.Content.Dir = dir
	}
	if pattern := strings.TrimSpace(opts.Pattern); pattern != "" {
		cfg.Content.Pattern = pattern
	}
	cfg.Content.Recursive = opts.Recursive
	cfg.Content.Workers = opts.Workers
	if format := strings.TrimSpace(opts.FrontMatterFormat); format != "" {
		cfg.Parser.FrontMatterFormat = format
	}
	cfg.Parser.StrictCallouts = opts.StrictCallouts
	if path := strings.TrimSpace(opts.SchemaFile); path != "" {
		schema, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read front matter schema: %w", err)
		}
		cfg.Parser.FrontMatterSchema = string(schema)
	}
	if undated := strings.TrimSpace(opts.Undated); undated != "" {
		cfg.Sort.Undated = undated
	}
	if provider := strings.TrimSpace(opts.LogProvider); provider != "" {
		cfg.Features.Logger = true
		cfg.Logging.Provider = provider
		if level := strings.TrimSpace(opts.LogLevel); level != "" {
			cfg.Logging.Level = level
		}
	}

	var moduleOpts []blog.Option
	if opts.LoggerProvider != nil {
		moduleOpts = append(moduleOpts, blog.WithLoggerProvider(opts.LoggerProvider))
	}

	module, err := blog.New(cfg, moduleOpts...)
	if err != nil {
		return nil, fmt.Errorf("initialise blog module: %w", err)
	}

	return &Module{
		Module:   module,
		Commands: module.Commands(),
		Logger:   logging.CLILogger(module.LoggerProvider()),
	}, nil
}
