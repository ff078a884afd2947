package markdown

import (
	"fmt"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
)

// FrontMatterFormat selects how the header block between the delimiters is
// decoded.
type FrontMatterFormat string

const (
	// FrontMatterLines reads `key: value` lines, splitting on the first colon.
	FrontMatterLines FrontMatterFormat = "lines"
	// FrontMatterYAML decodes the header block as YAML.
	FrontMatterYAML FrontMatterFormat = "yaml"
)

const delimiter = "---"

// FrontMatter holds the header fields a post is assembled from. Required
// fields are not validated; a missing key leaves the field empty. Raw keeps
// every decoded key, recognised or not.
type FrontMatter struct {
	ID       string            `json:"id"`
	Title    string            `json:"title"`
	Category string            `json:"category"`
	Date     string            `json:"date,omitempty"`
	Raw      map[string]string `json:"raw,omitempty"`
}

// ParseFrontMatter splits source into front matter and body. The source must
// start with a `---` line and contain a second `---` line; everything after
// the second delimiter is the body, trimmed of surrounding whitespace. Header
// lines without a colon are ignored.
func ParseFrontMatter(source []byte) (FrontMatter, string, error) {
	header, body, err := splitDocument(source)
	if err != nil {
		return FrontMatter{}, "", err
	}

	raw := make(map[string]string, len(header))
	for _, line := range header {
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		raw[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}

	return newFrontMatter(raw), body, nil
}

// ParseYAMLFrontMatter behaves like ParseFrontMatter but decodes the header
// block as YAML. Non-string values are stringified; a YAML decode failure is
// reported as a malformed document.
func ParseYAMLFrontMatter(source []byte) (FrontMatter, string, error) {
	header, body, err := splitDocument(source)
	if err != nil {
		return FrontMatter{}, "", err
	}

	block := delimiter + "\n" + strings.Join(header, "\n") + "\n" + delimiter + "\n"

	var meta map[string]any
	if _, err := frontmatter.Parse(strings.NewReader(block), &meta); err != nil {
		return FrontMatter{}, "", &MalformedDocumentError{Reason: "decode yaml front matter", Err: err}
	}

	raw := make(map[string]string, len(meta))
	for key, value := range meta {
		raw[key] = stringifyValue(value)
	}

	return newFrontMatter(raw), body, nil
}

// ExtractFrontMatter dispatches to the parser for format. An empty format
// selects FrontMatterLines.
func ExtractFrontMatter(source []byte, format FrontMatterFormat) (FrontMatter, string, error) {
	switch format {
	case "", FrontMatterLines:
		return ParseFrontMatter(source)
	case FrontMatterYAML:
		return ParseYAMLFrontMatter(source)
	default:
		return FrontMatter{}, "", fmt.Errorf("markdown: unknown front matter format %q", format)
	}
}

func splitDocument(source []byte) ([]string, string, error) {
	text := strings.TrimPrefix(normalizeNewlines(string(source)), "\ufeff")
	lines := strings.Split(text, "\n")

	if lines[0] != delimiter {
		return nil, "", malformed("missing opening delimiter")
	}

	for i := 1; i < len(lines); i++ {
		if lines[i] != delimiter {
			continue
		}
		body := strings.Join(lines[i+1:], "\n")
		return lines[1:i], strings.TrimSpace(body), nil
	}

	return nil, "", malformed("missing closing delimiter")
}

func newFrontMatter(raw map[string]string) FrontMatter {
	return FrontMatter{
		ID:       raw["id"],
		Title:    raw["title"],
		Category: raw["category"],
		Date:     raw["date"],
		Raw:      raw,
	}
}

func stringifyValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case time.Time:
		if v.Hour() == 0 && v.Minute() == 0 && v.Second() == 0 && v.Nanosecond() == 0 {
			return v.Format(time.DateOnly)
		}
		return v.Format(time.RFC3339)
	case []any:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			parts = append(parts, stringifyValue(item))
		}
		return strings.Join(parts, ", ")
	default:
		return fmt.Sprint(v)
	}
}

func normalizeNewlines(text string) string {
	return strings.ReplaceAll(text, "\r\n", "\n")
}
