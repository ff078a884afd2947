package markdown

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/goliatone/go-slug"
)

// TOCEntry is one heading in a post's table of contents.
type TOCEntry struct {
	ID    string `json:"id"`
	Text  string `json:"text"`
	Level int    `json:"level"`
}

var (
	anchorStrip  = regexp.MustCompile(`[^a-z0-9\s-]`)
	anchorSpaces = regexp.MustCompile(`\s+`)
	anchorDashes = regexp.MustCompile(`-+`)
)

// TableOfContents lists the headings in blocks in reading order. Repeated
// anchors get a numeric suffix so every entry can be linked.
func TableOfContents(blocks []Block) []TOCEntry {
	var (
		entries []TOCEntry
		seen    = map[string]int{}
	)
	for _, block := range blocks {
		heading, ok := block.(Heading)
		if !ok {
			continue
		}
		id := Anchor(heading.Text)
		if n := seen[id]; n > 0 {
			seen[id] = n + 1
			id = id + "-" + strconv.Itoa(n+1)
		} else {
			seen[id] = 1
		}
		entries = append(entries, TOCEntry{ID: id, Text: heading.Text, Level: heading.Level})
	}
	return entries
}

// Anchor returns the URL fragment for heading text.
func Anchor(text string) string {
	if normalized, err := slug.Normalize(text); err == nil && normalized != "" {
		return normalized
	}
	if legacy := legacyAnchor(text); legacy != "" {
		return legacy
	}
	return "section"
}

// legacyAnchor lowercases text, drops everything but ASCII letters, digits,
// whitespace and dashes, then collapses whitespace and dash runs to one dash.
func legacyAnchor(text string) string {
	id := strings.ToLower(text)
	id = anchorStrip.ReplaceAllString(id, "")
	id = anchorSpaces.ReplaceAllString(id, "-")
	id = anchorDashes.ReplaceAllString(id, "-")
	return strings.TrimSpace(id)
}
