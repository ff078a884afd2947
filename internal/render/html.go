package render

import (
	"bytes"
	"fmt"
	"html"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/internal/markdown"
	"github.com/goliatone/go-blog/internal/posts"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

// HTMLRenderer turns posts into HTML fragments. Block structure comes from
// the segmenter; inline markup inside paragraphs, quotes, list items and
// callouts is delegated to an InlineRenderer.
type HTMLRenderer struct {
	inline interfaces.InlineRenderer
	logger interfaces.Logger
}

// Option configures an HTMLRenderer.
type Option func(*HTMLRenderer)

// WithLogger sets the renderer logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(r *HTMLRenderer) {
		r.logger = logger
	}
}

// NewHTMLRenderer builds a renderer. A nil inline renderer selects goldmark
// in safe mode.
func NewHTMLRenderer(inline interfaces.InlineRenderer, opts ...Option) *HTMLRenderer {
	if inline == nil {
		inline = NewGoldmarkRenderer(interfaces.RenderOptions{SafeMode: true})
	}
	r := &HTMLRenderer{inline: inline}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	r.logger = logging.OrNoOp(r.logger)
	return r
}

// RenderPost renders a post as an <article>. Heading ids match the post's
// table of contents.
func (r *HTMLRenderer) RenderPost(post posts.Post) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(`<article class="post"`)
	if post.ID != "" {
		fmt.Fprintf(&buf, ` id="post-%s"`, html.EscapeString(post.ID))
	}
	buf.WriteString(">\n<header>\n")
	fmt.Fprintf(&buf, "<h1>%s</h1>\n", html.EscapeString(post.Title))
	if post.Category != "" || post.Date != "" {
		buf.WriteString(`<p class="post-meta">`)
		if post.Category != "" {
			fmt.Fprintf(&buf, `<span class="post-category">%s</span>`, html.EscapeString(post.Category))
		}
		if post.Date != "" {
			fmt.Fprintf(&buf, `<time datetime="%s">%s</time>`, html.EscapeString(post.Date), html.EscapeString(post.Date))
		}
		buf.WriteString("</p>\n")
	}
	buf.WriteString("</header>\n")

	toc := post.TableOfContents()
	heading := 0
	for _, block := range post.Content {
		id := ""
		if _, ok := block.(markdown.Heading); ok {
			id = toc[heading].ID
			heading++
		}
		if err := r.writeBlock(&buf, block, id); err != nil {
			return nil, fmt.Errorf("render post %s: %w", post.ID, err)
		}
	}
	buf.WriteString("</article>\n")

	logging.WithDocumentContext(r.logger, "", post.ID, "render").
		Debug("render.post.completed", "blocks", len(post.Content), "bytes", buf.Len())
	return buf.Bytes(), nil
}

// RenderBlock renders a single block. Block types the renderer does not
// know produce no output.
func (r *HTMLRenderer) RenderBlock(block markdown.Block) ([]byte, error) {
	var buf bytes.Buffer
	id := ""
	if heading, ok := block.(markdown.Heading); ok {
		id = markdown.Anchor(heading.Text)
	}
	if err := r.writeBlock(&buf, block, id); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (r *HTMLRenderer) writeBlock(buf *bytes.Buffer, block markdown.Block, headingID string) error {
	switch b := block.(type) {
	case markdown.Paragraph:
		inline, err := r.renderInline(b.Text)
		if err != nil {
			return err
		}
		fmt.Fprintf(buf, "<p>%s</p>\n", inline)
	case markdown.Heading:
		level := strconv.Itoa(b.Level)
		fmt.Fprintf(buf, "<h%s id=\"%s\">%s</h%s>\n", level, html.EscapeString(headingID), html.EscapeString(b.Text), level)
	case markdown.Code:
		writeCode(buf, b)
	case markdown.List:
		return r.writeItems(buf, "ul", b.Items)
	case markdown.OrderedList:
		return r.writeItems(buf, "ol", b.Items)
	case markdown.Blockquote:
		inline, err := r.renderInline(b.Text)
		if err != nil {
			return err
		}
		fmt.Fprintf(buf, "<blockquote><p>%s</p></blockquote>\n", inline)
	case markdown.Divider:
		buf.WriteString("<hr>\n")
	case markdown.InlineCode:
		writeInlineCode(buf, b.Text)
	case markdown.Image:
		fmt.Fprintf(buf, "<figure><img src=\"%s\" alt=\"%s\" loading=\"lazy\"></figure>\n", html.EscapeString(b.URL), html.EscapeString(b.Alt))
	case markdown.Table:
		writeTable(buf, b)
	case markdown.Callout:
		body, err := r.inline.Parse([]byte(b.Text))
		if err != nil {
			return err
		}
		fmt.Fprintf(buf, "<aside class=\"callout callout-%s\">\n<p class=\"callout-title\">%s</p>\n<div class=\"callout-body\">\n%s</div>\n</aside>\n",
			html.EscapeString(string(b.Variant)), html.EscapeString(b.Title), body)
	}
	return nil
}

func (r *HTMLRenderer) writeItems(buf *bytes.Buffer, tag string, items []string) error {
	fmt.Fprintf(buf, "<%s>\n", tag)
	for _, item := range items {
		inline, err := r.renderInline(item)
		if err != nil {
			return err
		}
		fmt.Fprintf(buf, "<li>%s</li>\n", inline)
	}
	fmt.Fprintf(buf, "</%s>\n", tag)
	return nil
}

// renderInline renders text and unwraps the single paragraph goldmark puts
// around it.
func (r *HTMLRenderer) renderInline(text string) ([]byte, error) {
	out, err := r.inline.Parse([]byte(text))
	if err != nil {
		return nil, err
	}
	trimmed := bytes.TrimSpace(out)
	if bytes.HasPrefix(trimmed, []byte("<p>")) && bytes.HasSuffix(trimmed, []byte("</p>")) &&
		bytes.Count(trimmed, []byte("<p>")) == 1 {
		return trimmed[len("<p>") : len(trimmed)-len("</p>")], nil
	}
	return trimmed, nil
}

func writeCode(buf *bytes.Buffer, code markdown.Code) {
	buf.WriteString("<figure class=\"code\">\n")
	if code.Filename != "" {
		fmt.Fprintf(buf, "<figcaption>%s</figcaption>\n", html.EscapeString(code.Filename))
	}
	fmt.Fprintf(buf, "<pre><code class=\"language-%s\" data-label=\"%s\">%s</code></pre>\n</figure>\n",
		html.EscapeString(code.Language), html.EscapeString(CodeLabel(code.Language)), html.EscapeString(code.Text))
}

func writeInlineCode(buf *bytes.Buffer, text string) {
	buf.WriteString("<p>")
	for _, segment := range markdown.SplitInlineCode(text) {
		if segment.Code {
			fmt.Fprintf(buf, "<code>%s</code>", html.EscapeString(segment.Text))
			continue
		}
		buf.WriteString(html.EscapeString(segment.Text))
	}
	buf.WriteString("</p>\n")
}

func writeTable(buf *bytes.Buffer, table markdown.Table) {
	buf.WriteString("<table>\n<thead>\n<tr>")
	for _, header := range table.Headers {
		fmt.Fprintf(buf, "<th>%s</th>", html.EscapeString(header))
	}
	buf.WriteString("</tr>\n</thead>\n<tbody>\n")
	for _, row := range table.Rows {
		buf.WriteString("<tr>")
		for _, cell := range row {
			fmt.Fprintf(buf, "<td>%s</td>", html.EscapeString(cell))
		}
		buf.WriteString("</tr>\n")
	}
	buf.WriteString("</tbody>\n</table>\n")
}

var codeLabels = map[string]string{
	"tsx":  "TypeScript (React)",
	"jsx":  "JavaScript (React)",
	"ts":   "TypeScript",
	"js":   "JavaScript",
	"sh":   "Shell",
	"bash": "Bash",
	"yml":  "YAML",
	"yaml": "YAML",
	"json": "JSON",
	"html": "HTML",
	"css":  "CSS",
	"sql":  "SQL",
}

// CodeLabel returns the display name for a code block language.
func CodeLabel(lang string) string {
	key := strings.ToLower(strings.TrimSpace(lang))
	if label, ok := codeLabels[key]; ok {
		return label
	}
	return cases.Title(language.English).String(key)
}
