package postscmd

import (
	"context"
	"errors"

	"github.com/goliatone/go-blog/internal/commands"
	"github.com/goliatone/go-blog/pkg/interfaces"
	command "github.com/goliatone/go-command"
)

// CommandRegistry is the minimal registration contract expected when wiring command handlers.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// CronRegistrar matches the function signature used by go-command registries.
type CronRegistrar func(command.HandlerConfig, any) error

// HandlerSet groups the handlers produced by RegisterPostCommands.
type HandlerSet struct {
	LoadCollection *LoadCollectionHandler
	Render         *RenderPostHandler
	// Cache holds the collections loaded through the set. Loading a
	// collection refreshes it and render-by-id reads from it.
	Cache *CollectionCache
}

// Option customises handler wiring during registration.
type Option func(*options)

type options struct {
	loadHandlerOpts   []commands.HandlerOption[LoadCollectionCommand]
	renderHandlerOpts []commands.HandlerOption[RenderPostCommand]
	cache             *CollectionCache
}

// WithCollectionCache shares cache between the handlers. By default each
// registration gets its own.
func WithCollectionCache(cache *CollectionCache) Option {
	return func(cfg *options) {
		cfg.cache = cache
	}
}

// WithLoadCollectionHandlerOptions forwards options to the LoadCollectionHandler constructor.
func WithLoadCollectionHandlerOptions(opts ...commands.HandlerOption[LoadCollectionCommand]) Option {
	return func(cfg *options) {
		cfg.loadHandlerOpts = append(cfg.loadHandlerOpts, opts...)
	}
}

// WithRenderHandlerOptions forwards options to the RenderPostHandler constructor.
func WithRenderHandlerOptions(opts ...commands.HandlerOption[RenderPostCommand]) Option {
	return func(cfg *options) {
		cfg.renderHandlerOpts = append(cfg.renderHandlerOpts, opts...)
	}
}

// RegisterPostCommands builds the post command handlers and registers them with reg when it
// is non-nil.
func RegisterPostCommands(reg CommandRegistry, service PostService, renderer PostRenderer, provider interfaces.LoggerProvider, opts ...Option) (*HandlerSet, error) {
	if service == nil {
		return nil, errors.New("posts command registration: service is nil")
	}
	if renderer == nil {
		return nil, errors.New("posts command registration: renderer is nil")
	}

	cfg := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	logger := commands.CommandLogger(provider, "posts")
	cached := NewCachingService(service, cfg.cache)

	loadHandler := NewLoadCollectionHandler(cached, logger, cfg.loadHandlerOpts...)
	renderHandler := NewRenderPostHandler(cached, renderer, logger, cfg.renderHandlerOpts...)

	if reg != nil {
		if err := reg.RegisterCommand(loadHandler); err != nil {
			return nil, err
		}
		if err := reg.RegisterCommand(renderHandler); err != nil {
			return nil, err
		}
	}

	return &HandlerSet{
		LoadCollection: loadHandler,
		Render:         renderHandler,
		Cache:          cached.cache,
	}, nil
}

// RegisterReloadCron schedules handler to reload msg's collection, which keeps the
// render-by-id cache fresh. The handler runs with a background context.
func RegisterReloadCron(reg CronRegistrar, handler *LoadCollectionHandler, cfg command.HandlerConfig, msg LoadCollectionCommand) error {
	if reg == nil || handler == nil {
		return nil
	}
	return reg(cfg, func() error {
		return handler.Execute(context.Background(), msg)
	})
}
