package markdown

import (
	"encoding/json"
	"strconv"
)

// BlockKind names a content block variant. The values double as the "type"
// discriminator in JSON output.
type BlockKind string

const (
	KindParagraph   BlockKind = "paragraph"
	KindHeading     BlockKind = "heading"
	KindCode        BlockKind = "code"
	KindList        BlockKind = "list"
	KindOrderedList BlockKind = "ordered-list"
	KindBlockquote  BlockKind = "blockquote"
	KindDivider     BlockKind = "divider"
	KindInlineCode  BlockKind = "inline-code"
	KindImage       BlockKind = "image"
	KindTable       BlockKind = "table"
	KindCallout     BlockKind = "callout"
)

// Block is one unit of post content. Each variant carries only the fields it
// needs; consumers switch on the concrete type and must ignore variants they
// do not know.
type Block interface {
	Kind() BlockKind
}

// Paragraph is plain text assembled from consecutive lines joined by a space.
type Paragraph struct {
	Text string `json:"text"`
}

// Heading is a level 1-3 heading.
type Heading struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
}

// Code is a fenced code block. Text keeps every inner line verbatim except a
// leading filename comment, which moves to Filename.
type Code struct {
	Language string `json:"language"`
	Filename string `json:"filename,omitempty"`
	Text     string `json:"text"`
}

// List is an unordered list.
type List struct {
	Items []string `json:"items"`
}

// OrderedList is a numbered list; the source numbers are not kept.
type OrderedList struct {
	Items []string `json:"items"`
}

// Blockquote joins consecutive quoted lines with a single space.
type Blockquote struct {
	Text string `json:"text"`
}

// Divider is a horizontal rule.
type Divider struct{}

// InlineCode is a paragraph containing at least one backtick. Renderers split
// Text with SplitInlineCode.
type InlineCode struct {
	Text string `json:"text"`
}

// Image is a standalone image line.
type Image struct {
	URL string `json:"url"`
	Alt string `json:"alt,omitempty"`
}

// Table holds header cells and data rows. Row widths are not checked against
// the header.
type Table struct {
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

// CalloutVariant is one of the admonition styles.
type CalloutVariant string

const (
	CalloutNote     CalloutVariant = "note"
	CalloutTip      CalloutVariant = "tip"
	CalloutWarning  CalloutVariant = "warning"
	CalloutQuestion CalloutVariant = "question"
)

// Callout is a `:::variant` fenced admonition.
type Callout struct {
	Variant CalloutVariant `json:"variant"`
	Title   string         `json:"title"`
	Text    string         `json:"text"`
}

func (Paragraph) Kind() BlockKind   { return KindParagraph }
func (Heading) Kind() BlockKind     { return KindHeading }
func (Code) Kind() BlockKind        { return KindCode }
func (List) Kind() BlockKind        { return KindList }
func (OrderedList) Kind() BlockKind { return KindOrderedList }
func (Blockquote) Kind() BlockKind  { return KindBlockquote }
func (Divider) Kind() BlockKind     { return KindDivider }
func (InlineCode) Kind() BlockKind  { return KindInlineCode }
func (Image) Kind() BlockKind       { return KindImage }
func (Table) Kind() BlockKind       { return KindTable }
func (Callout) Kind() BlockKind     { return KindCallout }

func (b Paragraph) MarshalJSON() ([]byte, error) {
	type payload Paragraph
	return marshalTagged(b.Kind(), payload(b))
}

func (b Heading) MarshalJSON() ([]byte, error) {
	type payload Heading
	return marshalTagged(b.Kind(), payload(b))
}

func (b Code) MarshalJSON() ([]byte, error) {
	type payload Code
	return marshalTagged(b.Kind(), payload(b))
}

func (b List) MarshalJSON() ([]byte, error) {
	type payload List
	return marshalTagged(b.Kind(), payload(b))
}

func (b OrderedList) MarshalJSON() ([]byte, error) {
	type payload OrderedList
	return marshalTagged(b.Kind(), payload(b))
}

func (b Blockquote) MarshalJSON() ([]byte, error) {
	type payload Blockquote
	return marshalTagged(b.Kind(), payload(b))
}

func (b Divider) MarshalJSON() ([]byte, error) {
	return marshalTagged(b.Kind(), struct{}{})
}

func (b InlineCode) MarshalJSON() ([]byte, error) {
	type payload InlineCode
	return marshalTagged(b.Kind(), payload(b))
}

func (b Image) MarshalJSON() ([]byte, error) {
	type payload Image
	return marshalTagged(b.Kind(), payload(b))
}

func (b Table) MarshalJSON() ([]byte, error) {
	type payload Table
	return marshalTagged(b.Kind(), payload(b))
}

func (b Callout) MarshalJSON() ([]byte, error) {
	type payload Callout
	return marshalTagged(b.Kind(), payload(b))
}

// marshalTagged encodes payload as a JSON object with an added "type" key.
func marshalTagged(kind BlockKind, payload any) ([]byte, error) {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(encoded, &fields); err != nil {
		return nil, err
	}
	fields["type"] = json.RawMessage(strconv.Quote(string(kind)))
	return json.Marshal(fields)
}
