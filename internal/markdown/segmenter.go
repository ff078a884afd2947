package markdown

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const fence = "```"

var (
	headingPattern     = regexp.MustCompile(`^(#{1,3})\s+(.+)$`)
	orderedItemPattern = regexp.MustCompile(`^\d+\.\s`)
	bulletItemPattern  = regexp.MustCompile(`^[-*]\s`)
	dashDivider        = regexp.MustCompile(`^---+$`)
	starDivider        = regexp.MustCompile(`^\*\*\*+$`)
	imagePattern       = regexp.MustCompile(`^!\[([^\]]*)\]\(([^)]+)\)$`)
	imageLikePattern   = regexp.MustCompile(`^!\[.*\]\(.*\)$`)
	calloutPattern     = regexp.MustCompile(`^:::(note|tip|warning|question)\s*(.*)$`)
	filenamePattern    = regexp.MustCompile(`^(#|//)\s*filename:\s*`)
)

// ParseOptions tunes block segmentation.
type ParseOptions struct {
	// StrictCallouts makes a callout fence end paragraph accumulation. By
	// default a `:::note` line directly after paragraph text is folded into
	// that paragraph.
	StrictCallouts bool
}

// ParseBlocks segments body into content blocks using the default options.
func ParseBlocks(body string) []Block {
	return ParseBlocksWithOptions(body, ParseOptions{})
}

// ParseBlocksWithOptions segments body into content blocks in reading order.
func ParseBlocksWithOptions(body string, opts ParseOptions) []Block {
	lines := SplitLines(body)
	blocks := make([]Block, 0, len(lines)/2)

	for cursor := 0; cursor < len(lines); {
		block, next, ok := NextBlock(lines, cursor, opts)
		if ok {
			blocks = append(blocks, block)
		}
		cursor = next
	}
	return blocks
}

// SplitLines splits body into lines, dropping carriage returns before line
// feeds.
func SplitLines(body string) []string {
	return strings.Split(normalizeNewlines(body), "\n")
}

// NextBlock classifies the line at cursor and consumes the lines belonging to
// that block. It returns the cursor of the first unconsumed line, which is
// always greater than cursor. ok is false when the consumed lines produce no
// block (blank lines, tables with fewer than two rows).
func NextBlock(lines []string, cursor int, opts ParseOptions) (Block, int, bool) {
	line := lines[cursor]

	switch {
	case strings.TrimSpace(line) == "":
		return nil, cursor + 1, false
	case strings.HasPrefix(line, fence):
		return scanCode(lines, cursor)
	}

	if m := headingPattern.FindStringSubmatch(line); m != nil {
		return Heading{Level: len(m[1]), Text: m[2]}, cursor + 1, true
	}

	switch {
	case strings.HasPrefix(line, "> "):
		return scanBlockquote(lines, cursor)
	case orderedItemPattern.MatchString(line):
		items, next := scanItems(lines, cursor, orderedItemPattern)
		return OrderedList{Items: items}, next, true
	case bulletItemPattern.MatchString(line):
		items, next := scanItems(lines, cursor, bulletItemPattern)
		return List{Items: items}, next, true
	case dashDivider.MatchString(line), starDivider.MatchString(line):
		return Divider{}, cursor + 1, true
	case isTableRow(line):
		return scanTable(lines, cursor)
	}

	if m := imagePattern.FindStringSubmatch(line); m != nil {
		return Image{Alt: m[1], URL: m[2]}, cursor + 1, true
	}
	if m := calloutPattern.FindStringSubmatch(line); m != nil {
		return scanCallout(lines, cursor, CalloutVariant(m[1]), m[2])
	}

	return scanParagraph(lines, cursor, opts)
}

func scanCode(lines []string, cursor int) (Block, int, bool) {
	lang := strings.TrimSpace(lines[cursor][len(fence):])
	if lang == "" {
		lang = "text"
	}

	var (
		filename string
		code     []string
	)
	i := cursor + 1
	for ; i < len(lines) && !strings.HasPrefix(lines[i], fence); i++ {
		if i == cursor+1 {
			if loc := filenamePattern.FindStringIndex(lines[i]); loc != nil {
				filename = strings.TrimSpace(lines[i][loc[1]:])
				continue
			}
		}
		code = append(code, lines[i])
	}
	if i < len(lines) {
		i++
	}

	return Code{Language: lang, Filename: filename, Text: strings.Join(code, "\n")}, i, true
}

func scanBlockquote(lines []string, cursor int) (Block, int, bool) {
	var parts []string
	i := cursor
	for ; i < len(lines) && strings.HasPrefix(lines[i], "> "); i++ {
		parts = append(parts, lines[i][2:])
	}
	return Blockquote{Text: strings.Join(parts, " ")}, i, true
}

func scanItems(lines []string, cursor int, marker *regexp.Regexp) ([]string, int) {
	var items []string
	i := cursor
	for ; i < len(lines); i++ {
		loc := marker.FindStringIndex(lines[i])
		if loc == nil {
			break
		}
		items = append(items, lines[i][loc[1]:])
	}
	return items, i
}

func scanTable(lines []string, cursor int) (Block, int, bool) {
	i := cursor
	for i < len(lines) && isTableRow(lines[i]) {
		i++
	}
	rows := lines[cursor:i]
	if len(rows) < 2 {
		return nil, i, false
	}

	table := Table{
		Headers: splitCells(rows[0]),
		Rows:    make([][]string, 0, len(rows)-2),
	}
	// rows[1] is the alignment row
	for _, row := range rows[2:] {
		table.Rows = append(table.Rows, splitCells(row))
	}
	return table, i, true
}

func scanCallout(lines []string, cursor int, variant CalloutVariant, title string) (Block, int, bool) {
	title = strings.TrimSpace(title)
	if title == "" {
		// a Caser must not be shared between goroutines
		title = cases.Title(language.English).String(string(variant))
	}

	var body []string
	i := cursor + 1
	for ; i < len(lines) && !strings.HasPrefix(lines[i], ":::"); i++ {
		body = append(body, lines[i])
	}
	if i < len(lines) {
		i++
	}

	return Callout{
		Variant: variant,
		Title:   title,
		Text:    strings.TrimSpace(strings.Join(body, "\n")),
	}, i, true
}

// scanParagraph always takes the line at cursor, so lines that look like a
// block trigger but match no block rule (`#### deep`, `#tag`) still advance.
func scanParagraph(lines []string, cursor int, opts ParseOptions) (Block, int, bool) {
	parts := []string{lines[cursor]}
	i := cursor + 1
	for ; i < len(lines) && !endsParagraph(lines[i], opts); i++ {
		parts = append(parts, lines[i])
	}

	text := strings.Join(parts, " ")
	if strings.Contains(text, "`") {
		return InlineCode{Text: text}, i, true
	}
	return Paragraph{Text: text}, i, true
}

func endsParagraph(line string, opts ParseOptions) bool {
	switch {
	case strings.TrimSpace(line) == "",
		strings.HasPrefix(line, "#"),
		strings.HasPrefix(line, fence),
		strings.HasPrefix(line, "> "),
		bulletItemPattern.MatchString(line),
		orderedItemPattern.MatchString(line),
		dashDivider.MatchString(line),
		imageLikePattern.MatchString(line),
		isTableRow(line):
		return true
	case opts.StrictCallouts:
		return calloutPattern.MatchString(line)
	default:
		return false
	}
}

func isTableRow(line string) bool {
	return strings.HasPrefix(line, "|") && strings.HasSuffix(line, "|")
}

func splitCells(row string) []string {
	inner := ""
	if len(row) >= 2 {
		inner = row[1 : len(row)-1]
	}
	cells := strings.Split(inner, "|")
	for i, cell := range cells {
		cells[i] = strings.TrimSpace(cell)
	}
	return cells
}
