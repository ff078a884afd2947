package postscmd

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-blog/internal/markdown"
	"github.com/goliatone/go-blog/internal/posts"
	goerrors "github.com/goliatone/go-errors"
)

type stubPostService struct {
	posts       []posts.Post
	report      posts.LoadReport
	loadErr     error
	document    *posts.DocumentResult
	loadedPaths []string
	loadedDirs  []string
}

func (s *stubPostService) Load(_ context.Context, path string) (*posts.DocumentResult, error) {
	s.loadedPaths = append(s.loadedPaths, path)
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	return s.document, nil
}

func (s *stubPostService) LoadCollection(_ context.Context, dir string) (*posts.Collection, posts.LoadReport, error) {
	s.loadedDirs = append(s.loadedDirs, dir)
	if s.loadErr != nil {
		return nil, posts.LoadReport{}, s.loadErr
	}
	return posts.NewCollection(s.posts, posts.UndatedEqual), s.report, nil
}

type stubRenderer struct {
	err      error
	rendered []string
}

func (r *stubRenderer) RenderPost(post posts.Post) ([]byte, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.rendered = append(r.rendered, post.ID)
	return []byte("<article>" + post.ID + "</article>"), nil
}

func samplePosts() []posts.Post {
	return []posts.Post{
		{ID: "a", Title: "Intro to Go", Category: "Go", Date: "2024-01-01"},
		{ID: "b", Title: "Go generics", Category: "go", Date: "2024-03-01"},
		{ID: "c", Title: "Rust notes", Category: "Rust", Date: "2024-02-01"},
		{ID: "d", Title: "Go intro redux", Category: "Go", Date: "2024-04-01"},
	}
}

func postIDs(list []posts.Post) []string {
	out := make([]string, len(list))
	for i, post := range list {
		out[i] = post.ID
	}
	return out
}

func TestLoadCollectionHandlerFilters(t *testing.T) {
	cases := []struct {
		name string
		cmd  LoadCollectionCommand
		want []string
	}{
		{name: "no filters", cmd: LoadCollectionCommand{Directory: "."}, want: []string{"d", "b", "c", "a"}},
		{name: "category ignores case", cmd: LoadCollectionCommand{Directory: ".", Category: "GO"}, want: []string{"d", "b", "a"}},
		{name: "query", cmd: LoadCollectionCommand{Directory: ".", Query: "intro"}, want: []string{"d", "a"}},
		{name: "recent", cmd: LoadCollectionCommand{Directory: ".", Recent: 2}, want: []string{"d", "b"}},
		{name: "combined", cmd: LoadCollectionCommand{Directory: ".", Category: "go", Recent: 1}, want: []string{"d"}},
		{name: "recent larger than selection", cmd: LoadCollectionCommand{Directory: ".", Category: "Rust", Recent: 5}, want: []string{"c"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			service := &stubPostService{posts: samplePosts(), report: posts.LoadReport{Discovered: 4, Loaded: 4}}
			handler := NewLoadCollectionHandler(service, nil)

			var result CollectionResult
			called := false
			tc.cmd.ResultCallback = func(r CollectionResult) {
				called = true
				result = r
			}

			if err := handler.Execute(context.Background(), tc.cmd); err != nil {
				t.Fatalf("execute: %v", err)
			}
			if !called {
				t.Fatal("expected callback invoked")
			}
			got := postIDs(result.Posts)
			if len(got) != len(tc.want) {
				t.Fatalf("want %v, got %v", tc.want, got)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Fatalf("want %v, got %v", tc.want, got)
				}
			}
			if result.Collection == nil || result.Collection.Len() != 4 {
				t.Fatalf("expected unfiltered collection of 4 posts, got %#v", result.Collection)
			}
			if result.Report.Loaded != 4 {
				t.Fatalf("expected report forwarded, got %#v", result.Report)
			}
		})
	}
}

func TestLoadCollectionHandlerValidationError(t *testing.T) {
	service := &stubPostService{}
	handler := NewLoadCollectionHandler(service, nil)

	err := handler.Execute(context.Background(), LoadCollectionCommand{})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
	if len(service.loadedDirs) != 0 {
		t.Fatalf("service should not be called, got %v", service.loadedDirs)
	}
}

func TestLoadCollectionHandlerServiceError(t *testing.T) {
	sentinel := errors.New("walk failed")
	service := &stubPostService{loadErr: sentinel}
	handler := NewLoadCollectionHandler(service, nil)

	called := false
	err := handler.Execute(context.Background(), LoadCollectionCommand{
		Directory:      "posts",
		ResultCallback: func(CollectionResult) { called = true },
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected wrapped sentinel, got %v", err)
	}
	if called {
		t.Fatal("callback must not run on failure")
	}
}

func TestRenderPostHandlerByPath(t *testing.T) {
	post := posts.Post{ID: "hello", Title: "Hello", Content: []markdown.Block{markdown.Paragraph{Text: "hi"}}}
	service := &stubPostService{document: &posts.DocumentResult{Path: "hello.md", Post: post}}
	renderer := &stubRenderer{}
	handler := NewRenderPostHandler(service, renderer, nil)

	var result RenderResult
	err := handler.Execute(context.Background(), RenderPostCommand{
		Path:           "hello.md",
		ResultCallback: func(r RenderResult) { result = r },
	})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if string(result.HTML) != "<article>hello</article>" {
		t.Fatalf("unexpected html %q", result.HTML)
	}
	if result.Path != "hello.md" || result.Post.ID != "hello" {
		t.Fatalf("unexpected result %#v", result)
	}
	if len(service.loadedPaths) != 1 || service.loadedPaths[0] != "hello.md" {
		t.Fatalf("expected service load of hello.md, got %v", service.loadedPaths)
	}
}

func TestRenderPostHandlerByID(t *testing.T) {
	service := &stubPostService{posts: samplePosts()}
	renderer := &stubRenderer{}
	handler := NewRenderPostHandler(service, renderer, nil)

	var result RenderResult
	err := handler.Execute(context.Background(), RenderPostCommand{
		ID:             "c",
		Directory:      "posts",
		ResultCallback: func(r RenderResult) { result = r },
	})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if result.Post.ID != "c" || string(result.HTML) != "<article>c</article>" {
		t.Fatalf("unexpected result %#v", result)
	}
}

func TestRenderPostHandlerUnknownID(t *testing.T) {
	service := &stubPostService{posts: samplePosts()}
	handler := NewRenderPostHandler(service, &stubRenderer{}, nil)

	err := handler.Execute(context.Background(), RenderPostCommand{ID: "missing", Directory: "posts"})
	if !errors.Is(err, ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound, got %v", err)
	}
	if !goerrors.IsCategory(err, goerrors.CategoryNotFound) {
		t.Fatalf("expected not found category, got %v", err)
	}
}

func TestRenderPostHandlerRendererError(t *testing.T) {
	sentinel := errors.New("inline failed")
	service := &stubPostService{document: &posts.DocumentResult{Path: "a.md", Post: posts.Post{ID: "a"}}}
	handler := NewRenderPostHandler(service, &stubRenderer{err: sentinel}, nil)

	err := handler.Execute(context.Background(), RenderPostCommand{Path: "a.md"})
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected renderer error, got %v", err)
	}
}
