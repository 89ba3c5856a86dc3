package interfaces

import (
	"context"
	"io"
)

// ArtifactStorage abstracts where build artifacts land. The default
// implementation writes to an afero filesystem rooted at the output
// directory; tests substitute an in-memory filesystem.
type ArtifactStorage interface {
	EnsureDir(ctx context.Context, path string) error
	WriteFile(ctx context.Context, path string, content io.Reader, size int64) error
	ReadFile(ctx context.Context, path string) ([]byte, error)
	RemoveAll(ctx context.Context, path string) error
}
