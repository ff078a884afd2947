package postscmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-blog/internal/posts"
)

const (
	loadCollectionMessageType = "blog.posts.load_collection"
	renderPostMessageType     = "blog.posts.render"
)

// CollectionResult is handed to LoadCollectionCommand callbacks.
type CollectionResult struct {
	// Collection holds every post that loaded, unfiltered.
	Collection *posts.Collection
	// Posts is the filtered selection in collection order.
	Posts  []posts.Post
	Report posts.LoadReport
}

// CollectionCallback receives the outcome of a collection load. It is invoked
// synchronously from the handler.
type CollectionCallback func(CollectionResult)

// RenderResult is handed to RenderPostCommand callbacks.
type RenderResult struct {
	Path string
	Post posts.Post
	HTML []byte
}

// RenderCallback receives a rendered post.
type RenderCallback func(RenderResult)

// LoadCollectionCommand loads every post under Directory and optionally
// narrows the result by category, title query and count.
type LoadCollectionCommand struct {
	Directory string `json:"directory"`
	// Category keeps posts whose category matches, ignoring case.
	Category string `json:"category,omitempty"`
	// Query keeps posts whose title contains the query, ignoring case.
	Query string `json:"query,omitempty"`
	// Recent limits the selection to the newest N posts when positive.
	Recent         int                `json:"recent,omitempty"`
	ResultCallback CollectionCallback `json:"-"`
}

// Type implements command.Message.
func (LoadCollectionCommand) Type() string { return loadCollectionMessageType }

// Validate ensures directory input is present before handlers execute.
func (cmd LoadCollectionCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Directory, validation.Required, validation.By(func(value any) error {
			if strings.TrimSpace(value.(string)) == "" {
				return validation.NewError("blog.posts.load_collection.directory_required", "directory is required")
			}
			return nil
		})),
		validation.Field(&cmd.Recent, validation.Min(0)),
	)
}

// RenderPostCommand renders one post to HTML. The post is read from Path, or
// looked up by ID in the collection under Directory.
type RenderPostCommand struct {
	Path           string         `json:"path,omitempty"`
	ID             string         `json:"id,omitempty"`
	Directory      string         `json:"directory,omitempty"`
	ResultCallback RenderCallback `json:"-"`
}

// Type implements command.Message.
func (RenderPostCommand) Type() string { return renderPostMessageType }

// Validate requires either a path or an id with its directory.
func (cmd RenderPostCommand) Validate() error {
	errs := validation.Errors{}
	path := strings.TrimSpace(cmd.Path)
	id := strings.TrimSpace(cmd.ID)
	switch {
	case path == "" && id == "":
		errs["path"] = validation.NewError("blog.posts.render.target_required", "path or id is required")
	case path != "" && id != "":
		errs["id"] = validation.NewError("blog.posts.render.target_ambiguous", "path and id are mutually exclusive")
	case id != "" && strings.TrimSpace(cmd.Directory) == "":
		errs["directory"] = validation.NewError("blog.posts.render.directory_required", "directory is required when rendering by id")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}
