package blog_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-blog"
	postscmd "github.com/goliatone/go-blog/internal/commands/posts"
)

func contentFS() fstest.MapFS {
	return fstest.MapFS{
		"intro.md": {Data: []byte("---\nid: intro\ntitle: Intro\ncategory: Go\ndate: 2024-01-10\n---\n# Welcome\n\nHello `world`.\n")},
		"later.md": {Data: []byte("---\nid: later\ntitle: Later\ncategory: Go\ndate: 2024-05-10\n---\n:::tip\nKeep going.\n:::\n")},
		"bad.md":   {Data: []byte("no front matter")},
	}
}

func newModule(t *testing.T) *blog.Module {
	t.Helper()
	module, err := blog.New(blog.DefaultConfig(), blog.WithFS(contentFS()))
	if err != nil {
		t.Fatalf("blog.New: %v", err)
	}
	return module
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := blog.DefaultConfig()
	cfg.Sort.Undated = "sideways"
	if _, err := blog.New(cfg, blog.WithFS(contentFS())); !errors.Is(err, blog.ErrUndatedPolicyInvalid) {
		t.Fatalf("expected ErrUndatedPolicyInvalid, got %v", err)
	}
}

func TestModuleLoadCollection(t *testing.T) {
	module := newModule(t)

	collection, report, err := module.LoadCollection(context.Background())
	if err != nil {
		t.Fatalf("LoadCollection: %v", err)
	}
	if report.Discovered != 3 || report.Loaded != 2 || len(report.Skipped) != 1 {
		t.Fatalf("unexpected report %#v", report)
	}
	if report.Skipped[0].Path != "bad.md" {
		t.Fatalf("expected bad.md skipped, got %#v", report.Skipped)
	}
	list := collection.Posts()
	if list[0].ID != "later" || list[1].ID != "intro" {
		t.Fatalf("expected newest first, got %s, %s", list[0].ID, list[1].ID)
	}
}

func TestModuleLoadAndRenderPost(t *testing.T) {
	module := newModule(t)

	result, err := module.LoadPost(context.Background(), "intro.md")
	if err != nil {
		t.Fatalf("LoadPost: %v", err)
	}
	html, err := module.RenderPost(result.Post)
	if err != nil {
		t.Fatalf("RenderPost: %v", err)
	}
	out := string(html)
	for _, want := range []string{
		`<article class="post" id="post-intro">`,
		`<h1 id="welcome">Welcome</h1>`,
		`<p>Hello <code>world</code>.</p>`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestModuleParsePostUsesStrictCallouts(t *testing.T) {
	cfg := blog.DefaultConfig()
	cfg.Parser.StrictCallouts = true
	module, err := blog.New(cfg, blog.WithFS(contentFS()))
	if err != nil {
		t.Fatalf("blog.New: %v", err)
	}

	post, err := module.ParsePost([]byte("---\nid: x\n---\nLead\n:::note\nBody\n:::"))
	if err != nil {
		t.Fatalf("ParsePost: %v", err)
	}
	if len(post.Content) != 2 {
		t.Fatalf("expected paragraph and callout, got %#v", post.Content)
	}
}

func TestModuleCommandsRenderByID(t *testing.T) {
	module := newModule(t)

	var html []byte
	err := module.Commands().Render.Execute(context.Background(), postscmd.RenderPostCommand{
		ID:        "later",
		Directory: ".",
		ResultCallback: func(result postscmd.RenderResult) {
			html = result.HTML
		},
	})
	if err != nil {
		t.Fatalf("render command: %v", err)
	}
	if !strings.Contains(string(html), `class="callout callout-tip"`) {
		t.Fatalf("expected callout in output:\n%s", html)
	}
}

func TestModuleParsePostAppliesFrontMatterSchema(t *testing.T) {
	cfg := blog.DefaultConfig()
	cfg.Parser.FrontMatterSchema = `{"type": "object", "required": ["category"]}`
	module, err := blog.New(cfg, blog.WithFS(contentFS()))
	if err != nil {
		t.Fatalf("blog.New: %v", err)
	}

	if _, err := module.ParsePost([]byte("---\nid: x\ncategory: Go\n---\nBody")); err != nil {
		t.Fatalf("expected categorised post to parse, got %v", err)
	}
	if _, err := module.ParsePost([]byte("---\nid: x\n---\nBody")); err == nil {
		t.Fatal("expected schema violation for post without category")
	}
}

func TestModuleRenderDropsRawHTMLByDefault(t *testing.T) {
	module := newModule(t)

	post, err := module.ParsePost([]byte("---\nid: x\n---\nHello <script>alert(1)</script> there\n\n#### Not a heading"))
	if err != nil {
		t.Fatalf("ParsePost: %v", err)
	}
	html, err := module.RenderPost(post)
	if err != nil {
		t.Fatalf("RenderPost: %v", err)
	}
	if strings.Contains(string(html), "<script>") {
		t.Fatalf("expected raw html to be dropped:\n%s", html)
	}
	if !strings.Contains(string(html), "<p>#### Not a heading</p>") {
		t.Fatalf("expected deep heading marker to stay literal:\n%s", html)
	}
}
