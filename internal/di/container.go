package di

import (
	"fmt"
	"io/fs"

	postscmd "github.com/goliatone/go-blog/internal/commands/posts"
	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/internal/logging/gologger"
	"github.com/goliatone/go-blog/internal/markdown"
	"github.com/goliatone/go-blog/internal/posts"
	"github.com/goliatone/go-blog/internal/render"
	"github.com/goliatone/go-blog/internal/runtimeconfig"
	"github.com/goliatone/go-blog/pkg/interfaces"
	command "github.com/goliatone/go-command"
)

// Container wires the posts service, renderer and command handlers from a
// runtime configuration.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider
	filesystem     fs.FS
	inline         interfaces.InlineRenderer
	registry       postscmd.CommandRegistry
	cron           postscmd.CronRegistrar
	cronConfig     command.HandlerConfig

	postsSvc *posts.Service
	renderer *render.HTMLRenderer
	commands *postscmd.HandlerSet
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithLoggerProvider overrides the provider built from the logging config.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithFS reads posts from the supplied filesystem instead of Content.Dir.
func WithFS(filesystem fs.FS) Option {
	return func(c *Container) {
		c.filesystem = filesystem
	}
}

// WithInlineRenderer overrides the goldmark renderer used for inline markup.
func WithInlineRenderer(renderer interfaces.InlineRenderer) Option {
	return func(c *Container) {
		c.inline = renderer
	}
}

// WithCommandRegistry registers the post command handlers with reg.
func WithCommandRegistry(reg postscmd.CommandRegistry) Option {
	return func(c *Container) {
		c.registry = reg
	}
}

// WithCronRegistrar schedules a reload of the content root through reg using
// cfg. Each reload refreshes the collection cache render-by-id reads from.
func WithCronRegistrar(reg postscmd.CronRegistrar, cfg command.HandlerConfig) Option {
	return func(c *Container) {
		c.cron = reg
		c.cronConfig = cfg
	}
}

// NewContainer validates cfg and builds the module dependencies.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{Config: cfg}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if err := c.configureLoggerProvider(); err != nil {
		return nil, err
	}
	if err := c.configurePosts(); err != nil {
		return nil, err
	}
	c.configureRenderer()
	if err := c.configureCommands(); err != nil {
		return nil, err
	}

	logging.ModuleLogger(c.loggerProvider, "blog.container").Debug("container.configured",
		"content_dir", cfg.Content.Dir,
		"pattern", cfg.Content.Pattern,
		"recursive", cfg.Content.Recursive,
	)
	return c, nil
}

// LoggerProvider returns the provider shared by every module logger. It is
// nil when logging is disabled.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// PostsService returns the configured posts service.
func (c *Container) PostsService() *posts.Service {
	return c.postsSvc
}

// Renderer returns the HTML renderer.
func (c *Container) Renderer() *render.HTMLRenderer {
	return c.renderer
}

// Commands returns the post command handlers.
func (c *Container) Commands() *postscmd.HandlerSet {
	return c.commands
}

func (c *Container) configureLoggerProvider() error {
	if c.loggerProvider != nil || !c.Config.Features.Logger {
		return nil
	}

	provider, err := gologger.NewProvider(gologger.Config{
		Provider:  c.Config.Logging.Provider,
		Level:     c.Config.Logging.Level,
		Format:    c.Config.Logging.Format,
		AddSource: c.Config.Logging.AddSource,
		Focus:     c.Config.Logging.Focus,
	})
	if err != nil {
		return fmt.Errorf("configure %s logger provider: %w", c.Config.Logging.Provider, err)
	}
	c.loggerProvider = provider
	return nil
}

func (c *Container) configurePosts() error {
	format, err := c.Config.FrontMatterFormat()
	if err != nil {
		return err
	}
	undated, err := c.Config.UndatedPolicy()
	if err != nil {
		return err
	}
	_, err = c.Config.Schema()
	if err != nil {
		return err
	}

	cfg := posts.Config{
		BasePath:  c.Config.Content.Dir,
		Pattern:   c.Config.Content.Pattern,
		Recursive: c.Config.Content.Recursive,
		Workers:   c.Config.Content.Workers,
		Parse: posts.ParseOptions{
			FrontMatterFormat: format,
			Blocks:            markdown.ParseOptions{StrictCallouts: c.Config.Parser.StrictCallouts},
		},
		Undated: undated,
	}
	logger := logging.PostsLogger(c.loggerProvider)

	if c.filesystem != nil {
		c.postsSvc = posts.NewServiceFS(c.filesystem, cfg, logger)
		return nil
	}
	svc, err := posts.NewService(cfg, logger)
	if err != nil {
		return err
	}
	c.postsSvc = svc
	return nil
}

func (c *Container) configureRenderer() {
	inline := c.inline
	if inline == nil {
		inline = render.NewGoldmarkRenderer(interfaces.RenderOptions{
			Extensions: c.Config.Render.Extensions,
			HardWraps:  c.Config.Render.HardWraps,
			SafeMode:   c.Config.Render.SafeMode,
		})
	}
	c.renderer = render.NewHTMLRenderer(inline, render.WithLogger(logging.RenderLogger(c.loggerProvider)))
}

func (c *Container) configureCommands() error {
	set, err := postscmd.RegisterPostCommands(c.registry, c.postsSvc, c.renderer, c.loggerProvider)
	if err != nil {
		return fmt.Errorf("register post commands: %w", err)
	}
	c.commands = set

	if c.cron == nil {
		return nil
	}
	if err := postscmd.RegisterReloadCron(c.cron, set.LoadCollection, c.cronConfig, postscmd.LoadCollectionCommand{Directory: "."}); err != nil {
		return fmt.Errorf("register posts reload cron: %w", err)
	}
	return nil
}
