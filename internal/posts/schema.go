package posts

import (
	"errors"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/goliatone/go-blog/internal/markdown"
)

const frontMatterSchemaURL = "front-matter.schema.json"

// FrontMatterSchema validates decoded front matter against a JSON Schema.
// Front matter values are always strings, so type constraints other than
// "string" never match.
type FrontMatterSchema struct {
	schema *jsonschema.Schema
}

// SchemaIssue is a single front matter schema violation.
type SchemaIssue struct {
	Location string
	Message  string
}

// SchemaViolationError lists the issues found in one document.
type SchemaViolationError struct {
	Issues []SchemaIssue
}

func (e *SchemaViolationError) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		location := issue.Location
		if location == "" {
			location = "#"
		}
		parts = append(parts, fmt.Sprintf("%s: %s", location, issue.Message))
	}
	return strings.Join(parts, "; ")
}

// CompileFrontMatterSchema compiles a JSON Schema document (draft 2020-12).
func CompileFrontMatterSchema(source string) (*FrontMatterSchema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource(frontMatterSchemaURL, strings.NewReader(source)); err != nil {
		return nil, fmt.Errorf("front matter schema: %w", err)
	}
	schema, err := compiler.Compile(frontMatterSchemaURL)
	if err != nil {
		return nil, fmt.Errorf("front matter schema: %w", err)
	}
	return &FrontMatterSchema{schema: schema}, nil
}

// Validate checks raw front matter. A nil schema accepts everything.
func (s *FrontMatterSchema) Validate(raw map[string]string) error {
	if s == nil || s.schema == nil {
		return nil
	}
	instance := make(map[string]any, len(raw))
	for key, value := range raw {
		instance[key] = value
	}

	err := s.schema.Validate(instance)
	if err == nil {
		return nil
	}
	var validationErr *jsonschema.ValidationError
	if !errors.As(err, &validationErr) {
		return &markdown.MalformedDocumentError{Reason: "front matter schema", Err: err}
	}
	return &markdown.MalformedDocumentError{
		Reason: "front matter schema",
		Err:    &SchemaViolationError{Issues: schemaIssues(validationErr)},
	}
}

func schemaIssues(err *jsonschema.ValidationError) []SchemaIssue {
	var issues []SchemaIssue
	var walk func(*jsonschema.ValidationError)
	walk = func(node *jsonschema.ValidationError) {
		if len(node.Causes) == 0 {
			issues = append(issues, SchemaIssue{
				Location: strings.TrimSpace(node.InstanceLocation),
				Message:  strings.TrimSpace(node.Message),
			})
			return
		}
		for _, cause := range node.Causes {
			walk(cause)
		}
	}
	walk(err)
	return issues
}
