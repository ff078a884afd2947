package postscmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-blog/internal/commands"
	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/internal/posts"
	"github.com/goliatone/go-blog/pkg/interfaces"
	command "github.com/goliatone/go-command"
)

const (
	loadCollectionOperation = "posts.load_collection"
	renderPostOperation     = "posts.render"
)

// ErrPostNotFound is returned when RenderPostCommand names an id the
// collection does not contain. It matches commands.ErrNotFound.
var ErrPostNotFound = fmt.Errorf("posts command: post %w", commands.ErrNotFound)

var (
	_ command.Commander[LoadCollectionCommand] = (*LoadCollectionHandler)(nil)
	_ command.Commander[RenderPostCommand]     = (*RenderPostHandler)(nil)
)

// PostService is the subset of posts.Service the handlers depend on.
type PostService interface {
	Load(ctx context.Context, path string) (*posts.DocumentResult, error)
	LoadCollection(ctx context.Context, dir string) (*posts.Collection, posts.LoadReport, error)
}

// PostRenderer renders a post to HTML.
type PostRenderer interface {
	RenderPost(post posts.Post) ([]byte, error)
}

// LoadCollectionHandler loads post collections via the shared command handler foundation.
type LoadCollectionHandler struct {
	inner *commands.Handler[LoadCollectionCommand]
}

// NewLoadCollectionHandler creates a handler bound to the supplied posts service.
func NewLoadCollectionHandler(service PostService, logger interfaces.Logger, opts ...commands.HandlerOption[LoadCollectionCommand]) *LoadCollectionHandler {
	baseLogger := logging.OrNoOp(logger)

	exec := func(ctx context.Context, msg LoadCollectionCommand) error {
		collection, report, err := service.LoadCollection(ctx, msg.Directory)
		if err != nil {
			return err
		}

		selected := filterPosts(collection, msg)
		logging.WithFields(baseLogger, map[string]any{
			"discovered_count": report.Discovered,
			"loaded_count":     report.Loaded,
			"skipped_count":    len(report.Skipped),
			"selected_count":   len(selected),
		}).Info("posts.command.load_collection.completed")

		if msg.ResultCallback != nil {
			msg.ResultCallback(CollectionResult{
				Collection: collection,
				Posts:      selected,
				Report:     report,
			})
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[LoadCollectionCommand]{
		commands.WithLogger[LoadCollectionCommand](baseLogger),
		commands.WithOperation[LoadCollectionCommand](loadCollectionOperation),
		commands.WithMessageFields(func(msg LoadCollectionCommand) map[string]any {
			fields := map[string]any{
				"directory": msg.Directory,
			}
			if msg.Category != "" {
				fields["category"] = msg.Category
			}
			if msg.Query != "" {
				fields["query"] = msg.Query
			}
			if msg.Recent > 0 {
				fields["recent"] = msg.Recent
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[LoadCollectionCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &LoadCollectionHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[LoadCollectionCommand].
func (h *LoadCollectionHandler) Execute(ctx context.Context, msg LoadCollectionCommand) error {
	return h.inner.Execute(ctx, msg)
}

// RenderPostHandler renders single posts via the shared command handler foundation.
type RenderPostHandler struct {
	inner *commands.Handler[RenderPostCommand]
}

// NewRenderPostHandler creates a handler bound to the supplied service and renderer.
func NewRenderPostHandler(service PostService, renderer PostRenderer, logger interfaces.Logger, opts ...commands.HandlerOption[RenderPostCommand]) *RenderPostHandler {
	baseLogger := logging.OrNoOp(logger)

	exec := func(ctx context.Context, msg RenderPostCommand) error {
		post, path, err := resolvePost(ctx, service, msg)
		if err != nil {
			return err
		}

		html, err := renderer.RenderPost(post)
		if err != nil {
			return fmt.Errorf("render post %s: %w", post.ID, err)
		}

		logging.WithDocumentContext(baseLogger, path, post.ID, "render").
			Info("posts.command.render.completed", "bytes", len(html))

		if msg.ResultCallback != nil {
			msg.ResultCallback(RenderResult{Path: path, Post: post, HTML: html})
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[RenderPostCommand]{
		commands.WithLogger[RenderPostCommand](baseLogger),
		commands.WithOperation[RenderPostCommand](renderPostOperation),
		commands.WithMessageFields(func(msg RenderPostCommand) map[string]any {
			fields := map[string]any{}
			if msg.Path != "" {
				fields["path"] = msg.Path
			}
			if msg.ID != "" {
				fields["post_id"] = msg.ID
				fields["directory"] = msg.Directory
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[RenderPostCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &RenderPostHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[RenderPostCommand].
func (h *RenderPostHandler) Execute(ctx context.Context, msg RenderPostCommand) error {
	return h.inner.Execute(ctx, msg)
}

func resolvePost(ctx context.Context, service PostService, msg RenderPostCommand) (posts.Post, string, error) {
	if path := strings.TrimSpace(msg.Path); path != "" {
		result, err := service.Load(ctx, path)
		if err != nil {
			return posts.Post{}, "", err
		}
		return result.Post, result.Path, nil
	}

	id := strings.TrimSpace(msg.ID)
	if cached, ok := service.(CachedCollections); ok {
		if collection, hit := cached.CachedCollection(msg.Directory); hit {
			if post, found := collection.Lookup(id); found {
				return post, "", nil
			}
		}
	}

	collection, _, err := service.LoadCollection(ctx, msg.Directory)
	if err != nil {
		return posts.Post{}, "", err
	}
	post, ok := collection.Lookup(id)
	if !ok {
		return posts.Post{}, "", fmt.Errorf("%w: %s", ErrPostNotFound, msg.ID)
	}
	return post, "", nil
}

func filterPosts(collection *posts.Collection, msg LoadCollectionCommand) []posts.Post {
	selected := collection.Search(msg.Query)
	if category := strings.TrimSpace(msg.Category); category != "" {
		filtered := selected[:0]
		for _, post := range selected {
			if strings.EqualFold(post.Category, category) {
				filtered = append(filtered, post)
			}
		}
		selected = filtered
	}
	if msg.Recent > 0 && len(selected) > msg.Recent {
		selected = selected[:msg.Recent]
	}
	return selected
}
