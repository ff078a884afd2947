package gologger

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"

	glog "github.com/goliatone/go-logger/glog"

	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

// Config selects how blog loggers are built on top of go-logger. Provider is
// the configured provider name; it picks the output format when Format is
// empty.
type Config struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// providerFormats maps each supported provider name onto its default output.
var providerFormats = map[string]string{
	"console":  glog.LoggerTypeConsole,
	"gologger": glog.LoggerTypeJSON,
}

var formatOptions = map[string]func() glog.Option{
	glog.LoggerTypeJSON:    glog.WithLoggerTypeJSON,
	glog.LoggerTypeConsole: glog.WithLoggerTypeConsole,
	glog.LoggerTypePretty:  glog.WithLoggerTypePretty,
}

var levelNames = map[string]string{
	"trace":   glog.Trace,
	"debug":   glog.Debug,
	"info":    glog.Info,
	"warn":    glog.Warn,
	"warning": glog.Warn,
	"error":   glog.Error,
	"fatal":   glog.Fatal,
}

// Provider hands out blog module loggers rooted at a single go-logger.
type Provider struct {
	root   *glog.BaseLogger
	format string
}

// NewProvider builds the go-logger root for cfg.
func NewProvider(cfg Config) (*Provider, error) {
	format, err := resolveFormat(cfg.Provider, cfg.Format)
	if err != nil {
		return nil, err
	}

	options := []glog.Option{formatOptions[format]()}
	if level, ok := lookupLevel(cfg.Level); ok {
		options = append(options, glog.WithLevel(level))
	}
	if cfg.AddSource {
		options = append(options, glog.WithAddSource(true))
	}

	root := glog.NewLogger(options...)
	if focus := trimmedNames(cfg.Focus); len(focus) > 0 {
		root.Focus(focus...)
	}
	return &Provider{root: root, format: format}, nil
}

// Format reports the output format the provider writes.
func (p *Provider) Format() string {
	if p == nil {
		return ""
	}
	return p.format
}

// GetLogger returns the named module logger. An empty name returns the root.
func (p *Provider) GetLogger(name string) interfaces.Logger {
	if p == nil {
		return logging.NoOp()
	}
	if name = strings.TrimSpace(name); name == "" {
		return newModuleLogger(p.root)
	}
	return newModuleLogger(p.root.GetLogger(name))
}

// DefaultFormat returns the output format a provider name selects, and
// whether the name is supported.
func DefaultFormat(provider string) (string, bool) {
	format, ok := providerFormats[strings.ToLower(strings.TrimSpace(provider))]
	return format, ok
}

// ValidFormat reports whether format names a go-logger output. Empty is valid
// and defers to the provider default.
func ValidFormat(format string) bool {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		return true
	}
	_, ok := formatOptions[format]
	return ok
}

// ValidLevel reports whether level names a go-logger level. Empty is valid.
func ValidLevel(level string) bool {
	if strings.TrimSpace(level) == "" {
		return true
	}
	_, ok := lookupLevel(level)
	return ok
}

func resolveFormat(provider, format string) (string, error) {
	if format = strings.ToLower(strings.TrimSpace(format)); format != "" {
		if _, ok := formatOptions[format]; !ok {
			return "", fmt.Errorf("logging: unsupported format %q", format)
		}
		return format, nil
	}
	if strings.TrimSpace(provider) == "" {
		return glog.LoggerTypeJSON, nil
	}
	fallback, ok := DefaultFormat(provider)
	if !ok {
		return "", fmt.Errorf("logging: unsupported provider %q", provider)
	}
	return fallback, nil
}

func lookupLevel(level string) (string, bool) {
	name, ok := levelNames[strings.ToLower(strings.TrimSpace(level))]
	return name, ok
}

func trimmedNames(names []string) []string {
	out := make([]string, 0, len(names))
	for _, name := range names {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// moduleLogger adapts a go-logger child to interfaces.Logger. Fields stored
// on a context with logging.ContextWithFields are attached by WithContext.
type moduleLogger struct {
	inner glog.Logger
}

func newModuleLogger(inner glog.Logger) interfaces.Logger {
	if inner == nil {
		return logging.NoOp()
	}
	return &moduleLogger{inner: inner}
}

func (l *moduleLogger) Trace(msg string, args ...any) { l.inner.Trace(msg, args...) }
func (l *moduleLogger) Debug(msg string, args ...any) { l.inner.Debug(msg, args...) }
func (l *moduleLogger) Info(msg string, args ...any)  { l.inner.Info(msg, args...) }
func (l *moduleLogger) Warn(msg string, args ...any)  { l.inner.Warn(msg, args...) }
func (l *moduleLogger) Error(msg string, args ...any) { l.inner.Error(msg, args...) }
func (l *moduleLogger) Fatal(msg string, args ...any) { l.inner.Fatal(msg, args...) }

func (l *moduleLogger) WithFields(fields map[string]any) interfaces.Logger {
	if len(fields) == 0 {
		return l
	}
	if with, ok := l.inner.(glog.FieldsLogger); ok {
		return newModuleLogger(with.WithFields(maps.Clone(fields)))
	}
	if base, ok := l.inner.(*glog.BaseLogger); ok {
		args := make([]any, 0, len(fields)*2)
		for _, key := range slices.Sorted(maps.Keys(fields)) {
			args = append(args, key, fields[key])
		}
		return newModuleLogger(base.With(args...))
	}
	return l
}

func (l *moduleLogger) WithContext(ctx context.Context) interfaces.Logger {
	if ctx == nil {
		return l
	}
	scoped := &moduleLogger{inner: l.inner.WithContext(ctx)}
	if fields := logging.ContextFields(ctx); len(fields) > 0 {
		return scoped.WithFields(fields)
	}
	return scoped
}
