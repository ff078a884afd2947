package blog

import (
	"context"

	postscmd "github.com/goliatone/go-blog/internal/commands/posts"
	"github.com/goliatone/go-blog/internal/di"
	"github.com/goliatone/go-blog/internal/markdown"
	"github.com/goliatone/go-blog/internal/posts"
	"github.com/goliatone/go-blog/internal/render"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

// Post exports the parsed post model.
type Post = posts.Post

// Collection exports the sorted, indexed post collection.
type Collection = posts.Collection

// CategoryGroup exports a category bucket produced by Collection.GroupByCategory.
type CategoryGroup = posts.CategoryGroup

// DocumentResult exports a single loaded document with source metadata.
type DocumentResult = posts.DocumentResult

// LoadReport exports the summary of a collection load.
type LoadReport = posts.LoadReport

// Block exports the content block contract.
type Block = markdown.Block

// FrontMatter exports the parsed post header.
type FrontMatter = markdown.FrontMatter

// TOCEntry exports a table of contents entry.
type TOCEntry = markdown.TOCEntry

// PostsService exports the posts loading service.
type PostsService = *posts.Service

// Renderer exports the HTML renderer.
type Renderer = *render.HTMLRenderer

// CommandHandlers exports the post command handler set.
type CommandHandlers = *postscmd.HandlerSet

// Option customises module construction.
type Option = di.Option

var (
	// WithLoggerProvider overrides the provider built from Config.Logging.
	WithLoggerProvider = di.WithLoggerProvider
	// WithFS reads posts from a filesystem instead of Config.Content.Dir.
	WithFS = di.WithFS
	// WithInlineRenderer overrides the inline markdown renderer.
	WithInlineRenderer = di.WithInlineRenderer
	// WithCommandRegistry registers the post command handlers with a registry.
	WithCommandRegistry = di.WithCommandRegistry
	// WithCronRegistrar schedules periodic reloads of the content root.
	WithCronRegistrar = di.WithCronRegistrar
)

// Module represents the top level blog runtime façade.
type Module struct {
	container *di.Container
}

// New constructs a blog module using the provided configuration and options.
func New(cfg Config, opts ...Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Config returns the validated configuration the module was built with.
func (m *Module) Config() Config {
	return m.container.Config
}

// Posts returns the posts service.
func (m *Module) Posts() PostsService {
	return m.container.PostsService()
}

// Renderer returns the HTML renderer.
func (m *Module) Renderer() Renderer {
	return m.container.Renderer()
}

// Commands returns the post command handlers.
func (m *Module) Commands() CommandHandlers {
	return m.container.Commands()
}

// LoggerProvider returns the provider used by module loggers, or nil when
// logging is disabled.
func (m *Module) LoggerProvider() interfaces.LoggerProvider {
	return m.container.LoggerProvider()
}

// LoadCollection loads every post under the content directory.
func (m *Module) LoadCollection(ctx context.Context) (*Collection, LoadReport, error) {
	return m.container.PostsService().LoadCollection(ctx, ".")
}

// LoadPost loads a single post by path relative to the content directory.
func (m *Module) LoadPost(ctx context.Context, path string) (*DocumentResult, error) {
	return m.container.PostsService().Load(ctx, path)
}

// RenderPost renders post as an HTML article.
func (m *Module) RenderPost(post Post) ([]byte, error) {
	return m.container.Renderer().RenderPost(post)
}

// ParsePost parses a document from memory using the module's parse settings,
// including the front matter schema when one is configured.
func (m *Module) ParsePost(source []byte) (Post, error) {
	return m.container.PostsService().Parse(source)
}
