package posts

import (
	"maps"
	"slices"

	"github.com/goliatone/go-blog/internal/identity"
	"github.com/goliatone/go-blog/internal/markdown"
	"github.com/google/uuid"
)

// Post is a parsed document: front matter fields plus content blocks in
// reading order. Required fields are not validated and may be empty.
type Post struct {
	ID       string            `json:"id"`
	Title    string            `json:"title"`
	Category string            `json:"category"`
	Date     string            `json:"date,omitempty"`
	Content  []markdown.Block  `json:"content"`
	Meta     map[string]string `json:"meta,omitempty"`
}

// ParseOptions controls how a document is turned into a Post.
type ParseOptions struct {
	FrontMatterFormat markdown.FrontMatterFormat
	Blocks            markdown.ParseOptions
	// Schema, when set, rejects documents whose front matter violates it.
	Schema *FrontMatterSchema
}

// Assemble combines front matter and blocks into a Post. The post owns copies
// of blocks and the raw front matter map.
func Assemble(fm markdown.FrontMatter, blocks []markdown.Block) Post {
	content := slices.Clone(blocks)
	if content == nil {
		content = []markdown.Block{}
	}
	return Post{
		ID:       fm.ID,
		Title:    fm.Title,
		Category: fm.Category,
		Date:     fm.Date,
		Content:  content,
		Meta:     maps.Clone(fm.Raw),
	}
}

// ParsePost parses a complete document. The only errors it returns are a
// malformed front matter block or front matter rejected by opts.Schema; body
// content never fails to parse.
func ParsePost(source []byte, opts ParseOptions) (Post, error) {
	fm, body, err := markdown.ExtractFrontMatter(source, opts.FrontMatterFormat)
	if err != nil {
		return Post{}, err
	}
	if err := opts.Schema.Validate(fm.Raw); err != nil {
		return Post{}, err
	}
	return Assemble(fm, markdown.ParseBlocksWithOptions(body, opts.Blocks)), nil
}

// HasDate reports whether the post carries a date in a recognised layout.
func (p Post) HasDate() bool {
	_, ok := ParseDate(p.Date)
	return ok
}

// ThreadKey is a stable identifier derived from the post id, suitable as a
// discussion thread key. Posts without an id return uuid.Nil.
func (p Post) ThreadKey() uuid.UUID {
	return identity.PostUUID(p.ID)
}

// TableOfContents lists the post headings with their anchors.
func (p Post) TableOfContents() []markdown.TOCEntry {
	return markdown.TableOfContents(p.Content)
}
