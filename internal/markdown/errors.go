package markdown

import (
	"errors"
	"fmt"
)

// ErrMalformedDocument reports a document whose front matter delimiters are
// missing or malformed. Match it with errors.Is.
var ErrMalformedDocument = errors.New("markdown: malformed document")

// MalformedDocumentError carries the reason a document was rejected.
type MalformedDocumentError struct {
	Reason string
	Err    error
}

func (e *MalformedDocumentError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", ErrMalformedDocument, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %s", ErrMalformedDocument, e.Reason)
}

func (e *MalformedDocumentError) Is(target error) bool {
	return target == ErrMalformedDocument
}

func (e *MalformedDocumentError) Unwrap() error {
	return e.Err
}

func malformed(reason string) error {
	return &MalformedDocumentError{Reason: reason}
}
