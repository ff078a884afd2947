package markdown

import "strings"

// Segment is a run of InlineCode text, either plain or code.
type Segment struct {
	Text string `json:"text"`
	Code bool   `json:"code"`
}

// SplitInlineCode splits text on backticks. Even-indexed pieces are plain
// text and odd-indexed pieces are code, so an unpaired backtick turns the
// trailing plain text into code. Empty pieces are kept to preserve indexes.
func SplitInlineCode(text string) []Segment {
	parts := strings.Split(text, "`")
	segments := make([]Segment, len(parts))
	for i, part := range parts {
		segments[i] = Segment{Text: part, Code: i%2 == 1}
	}
	return segments
}
