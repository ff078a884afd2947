package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/goliatone/go-blog/cmd/posts/internal/bootstrap"
	postscmd "github.com/goliatone/go-blog/internal/commands/posts"
	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/internal/posts"
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	if err := runPreview(os.Args[1:], os.Stdout); err != nil {
		log.Fatalf("posts preview: %v", err)
	}
}

func runPreview(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("posts-preview", flag.ContinueOnError)
	contentDir := fs.String("content-dir", "content/posts", "Path to the posts directory")
	pattern := fs.String("pattern", "*.md", "Glob pattern applied when looking posts up by id")
	format := fs.String("front-matter", "lines", "Front matter format: lines or yaml")
	strict := fs.Bool("strict-callouts", false, "Split callout fences out of paragraph text")
	filePath := fs.String("file", "", "Post to preview (relative to the content directory)")
	postID := fs.String("id", "", "Post id to preview (looked up in the content directory)")
	mode := fs.String("mode", "html", "Output: html, blocks or toc")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *filePath == "" && *postID == "" {
		return fmt.Errorf("-file or -id is required")
	}
	switch *mode {
	case "html", "blocks", "toc":
	default:
		return fmt.Errorf("unknown mode %q", *mode)
	}

	module, err := moduleBuilder(bootstrap.Options{
		ContentDir:        *contentDir,
		Pattern:           *pattern,
		Recursive:         true,
		FrontMatterFormat: *format,
		StrictCallouts:    *strict,
	})
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	if module == nil || module.Commands == nil {
		return fmt.Errorf("post commands not configured")
	}

	ctx := logging.ContextWithFields(context.Background(), map[string]any{"cli": "posts.preview"})

	cmd := postscmd.RenderPostCommand{Path: *filePath}
	if *postID != "" {
		cmd = postscmd.RenderPostCommand{ID: *postID, Directory: "."}
	}
	var result postscmd.RenderResult
	cmd.ResultCallback = func(r postscmd.RenderResult) {
		result = r
	}
	if err := module.Commands.Render.Execute(ctx, cmd); err != nil {
		return fmt.Errorf("execute render command: %w", err)
	}

	switch *mode {
	case "blocks":
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(result.Post.Content)
	case "toc":
		writeTOC(out, result.Post)
		return nil
	default:
		_, err := out.Write(result.HTML)
		return err
	}
}

func writeTOC(out io.Writer, post posts.Post) {
	fmt.Fprintln(out, post.Title)
	for _, entry := range post.TableOfContents() {
		indent := strings.Repeat("  ", entry.Level)
		fmt.Fprintf(out, "%s- %s (#%s)\n", indent, entry.Text, entry.ID)
	}
}
