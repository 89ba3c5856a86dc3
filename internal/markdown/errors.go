package markdown

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMalformedDocument indicates a content file without a parseable
	// front-matter delimiter pair, or front matter that fails to decode.
	ErrMalformedDocument = errors.New("content: malformed document")
	// ErrUnterminatedFence indicates a fenced code block that is opened but
	// never closed before the end of the document body.
	ErrUnterminatedFence = errors.New("content: unterminated fenced code block")
)

// MalformedDocumentError carries the offending path alongside the decode
// failure so build drivers can report one line per failing document.
type MalformedDocumentError struct {
	Path  string
	Cause error
}

func (e *MalformedDocumentError) Error() string {
	path := strings.TrimSpace(e.Path)
	if path == "" {
		path = "<unknown>"
	}
	if e.Cause == nil {
		return fmt.Sprintf("%s: %s", ErrMalformedDocument.Error(), path)
	}
	return fmt.Sprintf("%s: %s: %v", ErrMalformedDocument.Error(), path, e.Cause)
}

func (e *MalformedDocumentError) Unwrap() error {
	return ErrMalformedDocument
}
