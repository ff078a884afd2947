package markdown

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
)

func TestParseBlocks(t *testing.T) {
	cases := []struct {
		name string
		body string
		want []Block
	}{
		{
			name: "heading and paragraph",
			body: "# Title\n\nHello world.",
			want: []Block{
				Heading{Level: 1, Text: "Title"},
				Paragraph{Text: "Hello world."},
			},
		},
		{
			name: "code with filename",
			body: "```python\n# filename: x.py\nprint(1)\n```",
			want: []Block{
				Code{Language: "python", Filename: "x.py", Text: "print(1)"},
			},
		},
		{
			name: "unordered then ordered list",
			body: "- a\n- b\n\n1. c\n1. d",
			want: []Block{
				List{Items: []string{"a", "b"}},
				OrderedList{Items: []string{"c", "d"}},
			},
		},
		{
			name: "inline code paragraph",
			body: "Some code: `x` here.",
			want: []Block{
				InlineCode{Text: "Some code: `x` here."},
			},
		},
		{
			name: "table with ragged row",
			body: "| A | B |\n|---|---|\n| 1 | 2 | 3 |",
			want: []Block{
				Table{Headers: []string{"A", "B"}, Rows: [][]string{{"1", "2", "3"}}},
			},
		},
		{
			name: "table without data rows",
			body: "| A | B |\n| :-- | --: |",
			want: []Block{
				Table{Headers: []string{"A", "B"}, Rows: [][]string{}},
			},
		},
		{
			name: "single table row is dropped",
			body: "| lonely |\nafter",
			want: []Block{
				Paragraph{Text: "after"},
			},
		},
		{
			name: "heading levels",
			body: "# One\n## Two\n###   Three",
			want: []Block{
				Heading{Level: 1, Text: "One"},
				Heading{Level: 2, Text: "Two"},
				Heading{Level: 3, Text: "Three"},
			},
		},
		{
			name: "deep heading becomes paragraph",
			body: "#### Deep\nstill text",
			want: []Block{
				Paragraph{Text: "#### Deep still text"},
			},
		},
		{
			name: "hash without space becomes paragraph",
			body: "#tag",
			want: []Block{
				Paragraph{Text: "#tag"},
			},
		},
		{
			name: "blockquote lines joined",
			body: "> one\n> two\nafter",
			want: []Block{
				Blockquote{Text: "one two"},
				Paragraph{Text: "after"},
			},
		},
		{
			name: "dividers",
			body: "---\n\n*****",
			want: []Block{Divider{}, Divider{}},
		},
		{
			name: "star rule after paragraph text is swallowed",
			body: "text\n***",
			want: []Block{
				Paragraph{Text: "text ***"},
			},
		},
		{
			name: "mixed bullet markers form one list",
			body: "* star\n- dash",
			want: []Block{
				List{Items: []string{"star", "dash"}},
			},
		},
		{
			name: "ordered list strips numbers",
			body: "10. ten\n2. two",
			want: []Block{
				OrderedList{Items: []string{"ten", "two"}},
			},
		},
		{
			name: "image",
			body: "![Alt text](/img/a.png)\n![](b.png)",
			want: []Block{
				Image{URL: "/img/a.png", Alt: "Alt text"},
				Image{URL: "b.png"},
			},
		},
		{
			name: "image without url becomes paragraph",
			body: "![a]()",
			want: []Block{
				Paragraph{Text: "![a]()"},
			},
		},
		{
			name: "callout with title",
			body: ":::tip Pro move\nUse `go vet`.\n\nAlways.\n:::\nAfter",
			want: []Block{
				Callout{Variant: CalloutTip, Title: "Pro move", Text: "Use `go vet`.\n\nAlways."},
				Paragraph{Text: "After"},
			},
		},
		{
			name: "callout default title",
			body: ":::warning\n  Careful  \n:::",
			want: []Block{
				Callout{Variant: CalloutWarning, Title: "Warning", Text: "Careful"},
			},
		},
		{
			name: "unterminated callout absorbs the rest",
			body: ":::question\nWhy?\n\n# Not a heading",
			want: []Block{
				Callout{Variant: CalloutQuestion, Title: "Question", Text: "Why?\n\n# Not a heading"},
			},
		},
		{
			name: "unknown callout variant is text",
			body: ":::danger\nx\n:::",
			want: []Block{
				Paragraph{Text: ":::danger x :::"},
			},
		},
		{
			name: "callout fence after paragraph text is swallowed",
			body: "Intro text\n:::note\nBody\n:::",
			want: []Block{
				Paragraph{Text: "Intro text :::note Body :::"},
			},
		},
		{
			name: "paragraph lines joined with spaces",
			body: "first line\nsecond line\n\nnext paragraph",
			want: []Block{
				Paragraph{Text: "first line second line"},
				Paragraph{Text: "next paragraph"},
			},
		},
		{
			name: "paragraph stops at list marker",
			body: "lead in\n- item",
			want: []Block{
				Paragraph{Text: "lead in"},
				List{Items: []string{"item"}},
			},
		},
		{
			name: "empty body",
			body: "",
			want: []Block{},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ParseBlocks(tc.body)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("ParseBlocks mismatch\nwant: %#v\ngot:  %#v", tc.want, got)
			}
		})
	}
}

func TestParseBlocks_CodePreservesLinesVerbatim(t *testing.T) {
	body := "```go\nfunc main() {\n\n    fmt.Println(1)\n\t// done\n}\n```"

	blocks := ParseBlocks(body)
	if len(blocks) != 1 {
		t.Fatalf("expected one block, got %d", len(blocks))
	}
	code, ok := blocks[0].(Code)
	if !ok {
		t.Fatalf("expected Code, got %T", blocks[0])
	}
	want := "func main() {\n\n    fmt.Println(1)\n\t// done\n}"
	if code.Text != want || code.Language != "go" || code.Filename != "" {
		t.Fatalf("unexpected code block %#v", code)
	}
}

func TestParseBlocks_CodeDefaults(t *testing.T) {
	blocks := ParseBlocks("```\nplain\n```\n```sh\necho 1\n\n# not heading")
	want := []Block{
		Code{Language: "text", Text: "plain"},
		Code{Language: "sh", Text: "echo 1\n\n# not heading"},
	}
	if !reflect.DeepEqual(blocks, want) {
		t.Fatalf("want %#v\ngot  %#v", want, blocks)
	}
}

func TestParseBlocks_FilenameOnlyOnFirstLine(t *testing.T) {
	blocks := ParseBlocks("```go\n// filename:   main.go  \npackage main\n// filename: other.go\n```")
	want := []Block{
		Code{Language: "go", Filename: "main.go", Text: "package main\n// filename: other.go"},
	}
	if !reflect.DeepEqual(blocks, want) {
		t.Fatalf("want %#v\ngot  %#v", want, blocks)
	}
}

func TestParseBlocks_CodeRoundTrip(t *testing.T) {
	inner := []string{"#filename: tool.py", "import os", "", "    print(os.getcwd())"}
	body := "```python\n" + strings.Join(inner, "\n") + "\n```"

	code := ParseBlocks(body)[0].(Code)
	if code.Filename != "tool.py" {
		t.Fatalf("expected filename tool.py, got %q", code.Filename)
	}

	rebuilt := append([]string{inner[0]}, strings.Split(code.Text, "\n")...)
	if !reflect.DeepEqual(rebuilt, inner) {
		t.Fatalf("round trip mismatch\nwant: %q\ngot:  %q", inner, rebuilt)
	}
}

func TestParseBlocks_StrictCallouts(t *testing.T) {
	got := ParseBlocksWithOptions("Intro text\n:::note\nBody\n:::", ParseOptions{StrictCallouts: true})
	want := []Block{
		Paragraph{Text: "Intro text"},
		Callout{Variant: CalloutNote, Title: "Note", Text: "Body"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("want %#v\ngot  %#v", want, got)
	}
}

func TestParseBlocks_PreservesReadingOrder(t *testing.T) {
	body := strings.Join([]string{
		"## Setup",
		"Intro paragraph.",
		"",
		"```go",
		"x := 1",
		"```",
		"> quoted",
		"1. first",
		"- bullet",
		"---",
		"| h |",
		"|---|",
		"![pic](p.png)",
		":::note",
		"n",
		":::",
		"Uses `code`.",
	}, "\n")

	var kinds []BlockKind
	for _, block := range ParseBlocks(body) {
		kinds = append(kinds, block.Kind())
	}

	want := []BlockKind{
		KindHeading, KindParagraph, KindCode, KindBlockquote, KindOrderedList,
		KindList, KindDivider, KindTable, KindImage, KindCallout, KindInlineCode,
	}
	if !reflect.DeepEqual(kinds, want) {
		t.Fatalf("block order mismatch\nwant: %v\ngot:  %v", want, kinds)
	}
}

func TestParseBlocks_Idempotent(t *testing.T) {
	body := "# A\n\ntext `x`\n\n| a | b |\n|---|---|\n| 1 | 2 |\n\n:::tip\nt\n:::"
	first := ParseBlocks(body)
	second := ParseBlocks(body)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical results\nfirst:  %#v\nsecond: %#v", first, second)
	}
}

func TestNextBlockAlwaysAdvances(t *testing.T) {
	lines := []string{
		"", "   ", "####", "#", "# ", "#tag", "![a]()", "![x](y) tail", "|", "||",
		":::", ":::nope", "> ", ">", "1.", "-", "*", "``", "```", "plain",
	}
	for cursor := range lines {
		_, next, _ := NextBlock(lines, cursor, ParseOptions{})
		if next <= cursor {
			t.Fatalf("NextBlock did not advance at %d (%q): next=%d", cursor, lines[cursor], next)
		}
	}
}

func TestNextBlockReportsSkippedLines(t *testing.T) {
	lines := []string{"", "# H", "para"}

	block, next, ok := NextBlock(lines, 0, ParseOptions{})
	if ok || block != nil || next != 1 {
		t.Fatalf("expected blank line skip, got %#v %d %v", block, next, ok)
	}

	block, next, ok = NextBlock(lines, 1, ParseOptions{})
	if !ok || next != 2 {
		t.Fatalf("expected heading at cursor 1, got %#v %d %v", block, next, ok)
	}
	if heading, isHeading := block.(Heading); !isHeading || heading.Text != "H" {
		t.Fatalf("expected heading H, got %#v", block)
	}
}

func TestBlockJSONIncludesType(t *testing.T) {
	cases := []struct {
		block Block
		want  string
	}{
		{Heading{Level: 2, Text: "T"}, `{"level":2,"text":"T","type":"heading"}`},
		{Divider{}, `{"type":"divider"}`},
		{Code{Language: "go", Text: "x"}, `{"language":"go","text":"x","type":"code"}`},
		{Callout{Variant: CalloutTip, Title: "Tip", Text: "t"}, `{"text":"t","title":"Tip","type":"callout","variant":"tip"}`},
	}
	for _, tc := range cases {
		got, err := json.Marshal(tc.block)
		if err != nil {
			t.Fatalf("marshal %T: %v", tc.block, err)
		}
		if string(got) != tc.want {
			t.Fatalf("marshal %T\nwant: %s\ngot:  %s", tc.block, tc.want, got)
		}
	}
}
