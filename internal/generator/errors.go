package generator

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrRender indicates a document whose body could not be expanded or
	// whose template failed. Fatal for that document only; the build
	// continues with the rest.
	ErrRender = errors.New("generator: render failed")
	// ErrContentRequired indicates the generator has no content service.
	ErrContentRequired = errors.New("generator: content service is required")
	// ErrRendererRequired indicates the generator has no template renderer.
	ErrRendererRequired = errors.New("generator: template renderer is required")
	// ErrStorageRequired indicates a non-dry-run build has nowhere to write.
	ErrStorageRequired = errors.New("generator: artifact storage is required")
)

// RenderError carries the offending document path alongside the expansion
// failure so the build driver can report one line per failing document.
type RenderError struct {
	Path  string
	Cause error
}

func (e *RenderError) Error() string {
	path := strings.TrimSpace(e.Path)
	if path == "" {
		path = "<unknown>"
	}
	if e.Cause == nil {
		return fmt.Sprintf("%s: %s", ErrRender.Error(), path)
	}
	return fmt.Sprintf("%s: %s: %v", ErrRender.Error(), path, e.Cause)
}

func (e *RenderError) Unwrap() error {
	return ErrRender
}
