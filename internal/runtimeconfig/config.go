package runtimeconfig

import (
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/goliatone/go-blog/internal/logging/gologger"
	"github.com/goliatone/go-blog/internal/markdown"
	"github.com/goliatone/go-blog/internal/posts"
	"github.com/goliatone/go-blog/internal/render"
)

var ErrContentDirRequired = errors.New("blog config: content directory is required")
var ErrContentPatternInvalid = errors.New("blog config: content pattern is invalid")
var ErrWorkersInvalid = errors.New("blog config: workers must be zero or positive")
var ErrFrontMatterFormatInvalid = errors.New("blog config: front matter format is invalid")
var ErrFrontMatterSchemaInvalid = errors.New("blog config: front matter schema is invalid")
var ErrUndatedPolicyInvalid = errors.New("blog config: undated sort policy is invalid")
var ErrRenderExtensionUnknown = errors.New("blog config: render extension is unknown")
var ErrLoggingProviderRequired = errors.New("blog config: logging provider is required when logging feature is enabled")
var ErrLoggingProviderUnknown = errors.New("blog config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("blog config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("blog config: logging format is invalid")

// Config aggregates the settings for loading, parsing and rendering posts.
type Config struct {
	Content  ContentConfig
	Parser   ParserConfig
	Sort     SortConfig
	Render   RenderConfig
	Logging  LoggingConfig
	Features Features
}

// ContentConfig captures where posts live and how they are discovered.
type ContentConfig struct {
	Dir       string
	Pattern   string
	Recursive bool
	// Workers bounds concurrent parsing; zero uses GOMAXPROCS.
	Workers int
}

// ParserConfig controls document parsing.
type ParserConfig struct {
	FrontMatterFormat string
	// FrontMatterSchema is an optional JSON Schema document every post's
	// front matter must satisfy. Empty disables the check.
	FrontMatterSchema string
	StrictCallouts    bool
}

// SortConfig controls collection ordering.
type SortConfig struct {
	Undated string
}

// RenderConfig mirrors interfaces.RenderOptions for runtime configuration.
// SafeMode drops raw HTML found in post bodies.
type RenderConfig struct {
	Extensions []string
	HardWraps  bool
	SafeMode   bool
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// Features toggles module functionality.
type Features struct {
	Logger bool
}

// DefaultConfig returns defaults for a flat directory of markdown posts.
func DefaultConfig() Config {
	return Config{
		Content: ContentConfig{
			Dir:       "content/posts",
			Pattern:   "*.md",
			Recursive: true,
		},
		Parser: ParserConfig{
			FrontMatterFormat: string(markdown.FrontMatterLines),
		},
		Sort: SortConfig{
			Undated: string(posts.UndatedEqual),
		},
		Render: RenderConfig{
			SafeMode: true,
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
			Format:   "",
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if strings.TrimSpace(cfg.Content.Dir) == "" {
		return ErrContentDirRequired
	}
	if pattern := strings.TrimSpace(cfg.Content.Pattern); pattern != "" && !validPattern(pattern) {
		return fmt.Errorf("%w: %s", ErrContentPatternInvalid, pattern)
	}
	if cfg.Content.Workers < 0 {
		return ErrWorkersInvalid
	}
	if _, err := cfg.FrontMatterFormat(); err != nil {
		return err
	}
	if _, err := cfg.Schema(); err != nil {
		return err
	}
	if _, err := cfg.UndatedPolicy(); err != nil {
		return err
	}
	for _, name := range cfg.Render.Extensions {
		if strings.TrimSpace(name) == "" {
			continue
		}
		if !render.KnownExtension(name) {
			return fmt.Errorf("%w: %s", ErrRenderExtensionUnknown, name)
		}
	}
	if cfg.Features.Logger {
		provider := normalizeProvider(cfg.Logging.Provider)
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if !isSupportedProvider(provider) {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !gologger.ValidLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !gologger.ValidFormat(format) {
			return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
		}
	}
	return nil
}

// FrontMatterFormat resolves the configured front matter format.
func (cfg Config) FrontMatterFormat() (markdown.FrontMatterFormat, error) {
	switch format := markdown.FrontMatterFormat(strings.ToLower(strings.TrimSpace(cfg.Parser.FrontMatterFormat))); format {
	case "", markdown.FrontMatterLines:
		return markdown.FrontMatterLines, nil
	case markdown.FrontMatterYAML:
		return format, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrFrontMatterFormatInvalid, cfg.Parser.FrontMatterFormat)
	}
}

// Schema compiles the configured front matter schema. It returns nil when no
// schema is configured.
func (cfg Config) Schema() (*posts.FrontMatterSchema, error) {
	if strings.TrimSpace(cfg.Parser.FrontMatterSchema) == "" {
		return nil, nil
	}
	schema, err := posts.CompileFrontMatterSchema(cfg.Parser.FrontMatterSchema)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFrontMatterSchemaInvalid, err)
	}
	return schema, nil
}

// UndatedPolicy resolves the configured undated sort policy.
func (cfg Config) UndatedPolicy() (posts.UndatedPolicy, error) {
	policy, err := posts.ParseUndatedPolicy(cfg.Sort.Undated)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrUndatedPolicyInvalid, cfg.Sort.Undated)
	}
	return policy, nil
}

func validPattern(pattern string) bool {
	_, err := path.Match(strings.ReplaceAll(pattern, "**/", ""), "")
	return err == nil
}

func normalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func isSupportedProvider(provider string) bool {
	_, ok := gologger.DefaultFormat(provider)
	return ok
}
