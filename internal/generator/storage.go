package generator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/spf13/afero"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

// FilesystemStorage implements interfaces.ArtifactStorage over an afero
// filesystem. The production build targets the OS filesystem; tests hand in an
// in-memory one.
type FilesystemStorage struct {
	fs afero.Fs
}

// NewFilesystemStorage wraps the provided filesystem; nil defaults to the OS
// filesystem.
func NewFilesystemStorage(fsys afero.Fs) *FilesystemStorage {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	return &FilesystemStorage{fs: fsys}
}

// Fs exposes the underlying filesystem, used by the preview server to serve
// what the build wrote.
func (s *FilesystemStorage) Fs() afero.Fs {
	return s.fs
}

func (s *FilesystemStorage) EnsureDir(ctx context.Context, dirPath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(dirPath) == "" || dirPath == "." {
		return nil
	}
	if err := s.fs.MkdirAll(dirPath, 0o755); err != nil {
		return fmt.Errorf("storage: ensure dir %s: %w", dirPath, err)
	}
	return nil
}

func (s *FilesystemStorage) WriteFile(ctx context.Context, filePath string, content io.Reader, size int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if content == nil {
		return errors.New("storage: write requires content reader")
	}
	filePath = strings.TrimSpace(filePath)
	if filePath == "" {
		return errors.New("storage: write requires path")
	}
	if dir := path.Dir(filePath); dir != "." {
		if err := s.EnsureDir(ctx, dir); err != nil {
			return err
		}
	}

	file, err := s.fs.Create(filePath)
	if err != nil {
		return fmt.Errorf("storage: create %s: %w", filePath, err)
	}
	if _, err := io.Copy(file, content); err != nil {
		_ = file.Close()
		return fmt.Errorf("storage: write %s: %w", filePath, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("storage: close %s: %w", filePath, err)
	}
	return nil
}

func (s *FilesystemStorage) ReadFile(ctx context.Context, filePath string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := afero.ReadFile(s.fs, filePath)
	if err != nil {
		return nil, fmt.Errorf("storage: read %s: %w", filePath, err)
	}
	return data, nil
}

func (s *FilesystemStorage) RemoveAll(ctx context.Context, dirPath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	dirPath = strings.TrimSpace(dirPath)
	if dirPath == "" || dirPath == "." || dirPath == "/" {
		return fmt.Errorf("storage: refusing to remove %q", dirPath)
	}
	if err := s.fs.RemoveAll(dirPath); err != nil {
		return fmt.Errorf("storage: remove %s: %w", dirPath, err)
	}
	return nil
}

var _ interfaces.ArtifactStorage = (*FilesystemStorage)(nil)
