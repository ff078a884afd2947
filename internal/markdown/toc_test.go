package markdown

import (
	"strings"
	"testing"
)

func TestLegacyAnchor(t *testing.T) {
	cases := map[string]string{
		"Hello, World!":   "hello-world",
		"A -- B":          "a-b",
		"Step 2: Install": "step-2-install",
	}
	for text, want := range cases {
		if got := legacyAnchor(text); got != want {
			t.Fatalf("legacyAnchor(%q) = %q, want %q", text, got, want)
		}
	}
}

func TestAnchor(t *testing.T) {
	if got := Anchor("Getting Started"); got != "getting-started" {
		t.Fatalf("expected getting-started, got %q", got)
	}

	for _, text := range []string{"Ünïcode Títle", "Q&A: what now?", "   "} {
		got := Anchor(text)
		if got == "" || strings.ContainsAny(got, " \t") {
			t.Fatalf("Anchor(%q) produced unusable fragment %q", text, got)
		}
	}
}

func TestTableOfContents(t *testing.T) {
	blocks := []Block{
		Heading{Level: 1, Text: "Intro"},
		Paragraph{Text: "text"},
		Heading{Level: 2, Text: "Setup"},
		Heading{Level: 2, Text: "Intro"},
		Code{Language: "md", Text: "# Intro"},
		Heading{Level: 3, Text: "Intro"},
	}

	entries := TableOfContents(blocks)
	if len(entries) != 4 {
		t.Fatalf("expected 4 entries, got %d", len(entries))
	}

	wantIDs := []string{"intro", "setup", "intro-2", "intro-3"}
	for i, entry := range entries {
		if entry.ID != wantIDs[i] {
			t.Fatalf("entry %d: expected id %q, got %q", i, wantIDs[i], entry.ID)
		}
	}
	if entries[1].Level != 2 || entries[1].Text != "Setup" {
		t.Fatalf("unexpected entry %#v", entries[1])
	}
}

func TestTableOfContents_NoHeadings(t *testing.T) {
	if entries := TableOfContents([]Block{Paragraph{Text: "x"}}); len(entries) != 0 {
		t.Fatalf("expected no entries, got %#v", entries)
	}
}
