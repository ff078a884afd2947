package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writePosts(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"a.md":      "---\nid: a\ntitle: Alpha notes\ncategory: Go\ndate: 2024-01-01\n---\nA",
		"b.md":      "---\nid: b\ntitle: Beta\ncategory: Rust\ndate: 2024-03-01\n---\nB",
		"c.md":      "---\nid: c\ntitle: Gamma notes\ncategory: Go\ndate: 2024-02-01\n---\nC",
		"broken.md": "---\nid: broken\n",
	}
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return dir
}

func TestRunListTable(t *testing.T) {
	dir := writePosts(t)
	var out bytes.Buffer

	if err := runList([]string{"-content-dir", dir}, &out); err != nil {
		t.Fatalf("runList: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header and three rows, got %q", out.String())
	}
	if !strings.HasPrefix(lines[0], "DATE") {
		t.Fatalf("expected header row, got %q", lines[0])
	}
	for i, id := range []string{" b ", " c ", " a "} {
		if !strings.Contains(lines[i+1], id) {
			t.Fatalf("row %d: expected %q in %q", i+1, id, lines[i+1])
		}
	}
}

func TestRunListJSONWithFilters(t *testing.T) {
	dir := writePosts(t)
	var out bytes.Buffer

	if err := runList([]string{"-content-dir", dir, "-json", "-category", "go", "-recent", "1"}, &out); err != nil {
		t.Fatalf("runList: %v", err)
	}

	var decoded []map[string]any
	if err := json.Unmarshal(out.Bytes(), &decoded); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out.String())
	}
	if len(decoded) != 1 || decoded[0]["id"] != "c" {
		t.Fatalf("expected only post c, got %v", decoded)
	}
}

func TestRunListGrouped(t *testing.T) {
	dir := writePosts(t)
	var out bytes.Buffer

	if err := runList([]string{"-content-dir", dir, "-group", "-query", "notes"}, &out); err != nil {
		t.Fatalf("runList: %v", err)
	}
	got := out.String()
	if !strings.HasPrefix(got, "Go (2)\n") {
		t.Fatalf("expected Go group first, got %q", got)
	}
	if strings.Contains(got, "Rust") {
		t.Fatalf("query should exclude Rust posts, got %q", got)
	}
}

func TestRunListGroupedKeepsUndatedLast(t *testing.T) {
	dir := writePosts(t)
	undated := "---\nid: u\ntitle: Undated notes\ncategory: Go\n---\nU"
	if err := os.WriteFile(filepath.Join(dir, "u.md"), []byte(undated), 0o644); err != nil {
		t.Fatalf("write u.md: %v", err)
	}
	var out bytes.Buffer

	if err := runList([]string{"-content-dir", dir, "-group", "-undated", "last", "-category", "go"}, &out); err != nil {
		t.Fatalf("runList: %v", err)
	}
	want := "Go (3)\n  2024-02-01  Gamma notes\n  2024-01-01  Alpha notes\n  -  Undated notes\n"
	if out.String() != want {
		t.Fatalf("want %q\ngot  %q", want, out.String())
	}
}

func TestRunListSchemaSkipsPosts(t *testing.T) {
	dir := writePosts(t)
	schemaPath := filepath.Join(t.TempDir(), "schema.json")
	schema := `{"properties": {"category": {"enum": ["Go"]}}}`
	if err := os.WriteFile(schemaPath, []byte(schema), 0o644); err != nil {
		t.Fatalf("write schema: %v", err)
	}
	var out bytes.Buffer

	if err := runList([]string{"-content-dir", dir, "-schema", schemaPath, "-json"}, &out); err != nil {
		t.Fatalf("runList: %v", err)
	}
	var decoded []map[string]any
	if err := json.Unmarshal(out.Bytes(), &decoded); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out.String())
	}
	if len(decoded) != 2 || decoded[0]["id"] != "c" || decoded[1]["id"] != "a" {
		t.Fatalf("expected only Go posts, got %v", decoded)
	}
}

func TestRunListInvalidUndatedPolicy(t *testing.T) {
	dir := writePosts(t)
	if err := runList([]string{"-content-dir", dir, "-undated", "first"}, &bytes.Buffer{}); err == nil {
		t.Fatal("expected bootstrap error")
	}
}
