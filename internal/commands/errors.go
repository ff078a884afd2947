package commands

import (
	"context"
	"errors"
	"io/fs"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-blog/internal/markdown"
)

// ErrNotFound marks a command target that does not exist. Handlers wrap it
// and Execute reports it under goerrors.CategoryNotFound.
var ErrNotFound = errors.New("not found")

// failure describes how an error is reported to command callers.
type failure struct {
	target   error
	category goerrors.Category
	code     string
	message  string
}

// outcomes are checked in order against execution errors; the first match
// decides the category and text code.
var outcomes = []failure{
	{ErrNotFound, goerrors.CategoryNotFound, "POST_NOT_FOUND", "post not found"},
	{fs.ErrNotExist, goerrors.CategoryNotFound, "POST_SOURCE_NOT_FOUND", "post source not found"},
	{markdown.ErrMalformedDocument, goerrors.CategoryBadInput, "POST_MALFORMED", "post document is malformed"},
	{context.Canceled, goerrors.CategoryCommand, "COMMAND_CONTEXT_CANCELED", "command cancelled"},
	{context.DeadlineExceeded, goerrors.CategoryCommand, "COMMAND_CONTEXT_TIMEOUT", "command deadline exceeded"},
}

var (
	invalidMessage = failure{category: goerrors.CategoryValidation, code: "COMMAND_VALIDATION_FAILED", message: "command validation failed"}
	contextFailure = failure{category: goerrors.CategoryCommand, code: "COMMAND_CONTEXT_ERROR", message: "command context error"}
	executeFailure = failure{category: goerrors.CategoryCommand, code: "COMMAND_EXECUTION_FAILED", message: "command execution failed"}
)

// categorise wraps err in a go-errors Error. Errors that already carry a
// category are returned untouched.
func categorise(err error, fallback failure, meta map[string]any) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}

	rule := fallback
	if fallback.category != goerrors.CategoryValidation {
		for _, candidate := range outcomes {
			if errors.Is(err, candidate.target) {
				rule = candidate
				break
			}
		}
	}

	wrapped := goerrors.Wrap(err, rule.category, rule.message).WithTextCode(rule.code)
	if len(meta) > 0 {
		wrapped = wrapped.WithMetadata(meta)
	}
	return wrapped
}
