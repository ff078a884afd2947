package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"text/tabwriter"

	"github.com/goliatone/go-blog/cmd/posts/internal/bootstrap"
	postscmd "github.com/goliatone/go-blog/internal/commands/posts"
	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/internal/posts"
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	if err := runList(os.Args[1:], os.Stdout); err != nil {
		log.Fatalf("posts list: %v", err)
	}
}

func runList(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("posts-list", flag.ContinueOnError)
	contentDir := fs.String("content-dir", "content/posts", "Path to the posts directory")
	pattern := fs.String("pattern", "*.md", "Glob pattern applied when discovering posts")
	recursive := fs.Bool("recursive", true, "Walk sub-directories of the content directory")
	workers := fs.Int("workers", 0, "Concurrent parse workers (0 uses GOMAXPROCS)")
	format := fs.String("front-matter", "lines", "Front matter format: lines or yaml")
	undated := fs.String("undated", "equal", "Undated post ordering: equal or last")
	schema := fs.String("schema", "", "JSON Schema file every post's front matter must satisfy")
	category := fs.String("category", "", "Only list posts in this category")
	query := fs.String("query", "", "Only list posts whose title contains this text")
	recent := fs.Int("recent", 0, "Only list the newest N posts")
	grouped := fs.Bool("group", false, "Group posts by category")
	asJSON := fs.Bool("json", false, "Emit posts as JSON")
	logProvider := fs.String("log", "", "Logging provider: console or gologger (disabled when empty)")
	logLevel := fs.String("log-level", "info", "Minimum log level")

	if err := fs.Parse(args); err != nil {
		return err
	}

	module, err := moduleBuilder(bootstrap.Options{
		ContentDir:        *contentDir,
		Pattern:           *pattern,
		Recursive:         *recursive,
		Workers:           *workers,
		FrontMatterFormat: *format,
		SchemaFile:        *schema,
		Undated:           *undated,
		LogProvider:       *logProvider,
		LogLevel:          *logLevel,
	})
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	if module == nil || module.Commands == nil {
		return fmt.Errorf("post commands not configured")
	}

	ctx := logging.ContextWithFields(context.Background(), map[string]any{"cli": "posts.list"})

	var result postscmd.CollectionResult
	cmd := postscmd.LoadCollectionCommand{
		Directory: ".",
		Category:  *category,
		Query:     *query,
		Recent:    *recent,
		ResultCallback: func(r postscmd.CollectionResult) {
			result = r
		},
	}
	if err := module.Commands.LoadCollection.Execute(ctx, cmd); err != nil {
		return fmt.Errorf("execute load collection command: %w", err)
	}

	for _, skipped := range result.Report.Skipped {
		module.Logger.Warn("posts.list.skipped", "path", skipped.Path, "error", skipped.Err)
	}

	switch {
	case *asJSON:
		return writeJSON(out, result.Posts)
	case *grouped:
		return writeGroups(out, posts.GroupPosts(result.Posts))
	default:
		return writeTable(out, result.Posts)
	}
}

func writeJSON(out io.Writer, list []posts.Post) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(list)
}

func writeTable(out io.Writer, list []posts.Post) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "DATE\tCATEGORY\tID\tTITLE")
	for _, post := range list {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", orDash(post.Date), orDash(post.Category), post.ID, post.Title)
	}
	return w.Flush()
}

func writeGroups(out io.Writer, groups []posts.CategoryGroup) error {
	for i, group := range groups {
		if i > 0 {
			fmt.Fprintln(out)
		}
		fmt.Fprintf(out, "%s (%d)\n", orDash(group.Category), len(group.Posts))
		for _, post := range group.Posts {
			fmt.Fprintf(out, "  %s  %s\n", orDash(post.Date), post.Title)
		}
	}
	return nil
}

func orDash(value string) string {
	if value == "" {
		return "-"
	}
	return value
}
