package markdown

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

// Config controls how the content service discovers and parses files.
type Config struct {
	BasePath  string
	Pattern   string
	Recursive bool
	Schema    map[string]any
	Parser    interfaces.ParseOptions
}

// Service implements interfaces.ContentService for filesystem-backed documents.
type Service struct {
	cfg       Config
	parser    interfaces.MarkdownParser
	loader    *Loader
	validator *SchemaValidator
}

var _ interfaces.ContentService = (*Service)(nil)

// NewService constructs a content service using an underlying loader. When
// parser is nil, a Goldmark parser with the provided default options is created.
func NewService(cfg Config, parser interfaces.MarkdownParser) (*Service, error) {
	filesystem, err := prepareFilesystem(cfg.BasePath)
	if err != nil {
		return nil, err
	}
	return newServiceWithFS(cfg, parser, filesystem)
}

// NewServiceWithFS behaves like NewService but operates over the supplied
// filesystem. Tests use this to run against in-memory trees.
func NewServiceWithFS(cfg Config, parser interfaces.MarkdownParser, filesystem fs.FS) (*Service, error) {
	if filesystem == nil {
		return nil, errors.New("content service: filesystem is required")
	}
	return newServiceWithFS(cfg, parser, filesystem)
}

func newServiceWithFS(cfg Config, parser interfaces.MarkdownParser, filesystem fs.FS) (*Service, error) {
	if parser == nil {
		parser = NewGoldmarkParser(cfg.Parser)
	}

	validator, err := NewSchemaValidator(cfg.Schema)
	if err != nil {
		return nil, err
	}

	loader := NewLoader(filesystem, LoaderConfig{
		BasePath:  cfg.BasePath,
		Pattern:   cfg.Pattern,
		Recursive: cfg.Recursive,
	})

	return &Service{
		cfg:       cfg,
		parser:    parser,
		loader:    loader,
		validator: validator,
	}, nil
}

// Load reads a single content document relative to the configured base path.
func (s *Service) Load(ctx context.Context, path string, opts interfaces.LoadOptions) (*interfaces.Document, error) {
	result, err := s.loader.LoadFile(ctx, s.normalisePath(path), toLoaderParams(opts))
	if err != nil {
		return nil, err
	}
	if err := s.validateDocument(result.Document); err != nil {
		return nil, err
	}
	if _, err := s.RenderDocument(ctx, result.Document, opts.Parser); err != nil {
		return nil, err
	}
	return result.Document, nil
}

// LoadDirectory reads every content document within the supplied directory.
// Per-document failures (malformed front matter, schema violations) are
// returned alongside the successfully loaded documents.
func (s *Service) LoadDirectory(ctx context.Context, dir string, opts interfaces.LoadOptions) ([]*interfaces.Document, []LoadFailure, error) {
	results, failures, err := s.loader.LoadDirectory(ctx, s.normalisePath(dir), toLoaderParams(opts))
	if err != nil {
		return nil, nil, err
	}

	docs := make([]*interfaces.Document, 0, len(results))
	for _, result := range results {
		if err := s.validateDocument(result.Document); err != nil {
			failures = append(failures, LoadFailure{Path: result.Document.Path, Err: err})
			continue
		}
		docs = append(docs, result.Document)
	}

	sort.Slice(docs, func(i, j int) bool {
		return docs[i].Path < docs[j].Path
	})
	sort.Slice(failures, func(i, j int) bool {
		return failures[i].Path < failures[j].Path
	})
	return docs, failures, nil
}

// Render parses Markdown bytes into HTML using the configured parser.
func (s *Service) Render(ctx context.Context, markdown []byte, opts interfaces.ParseOptions) ([]byte, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}
	return s.parser.ParseWithOptions(markdown, mergeParseOptions(s.cfg.Parser, opts))
}

// RenderDocument converts the document's Markdown body into HTML using the configured parser.
func (s *Service) RenderDocument(ctx context.Context, doc *interfaces.Document, opts interfaces.ParseOptions) ([]byte, error) {
	if doc == nil {
		return nil, errors.New("content service: document is nil")
	}
	html, err := s.Render(ctx, doc.Body, opts)
	if err != nil {
		return nil, err
	}
	doc.BodyHTML = html
	return html, nil
}

func (s *Service) validateDocument(doc *interfaces.Document) error {
	if err := s.validator.Validate(doc.FrontMatter.Raw); err != nil {
		return &MalformedDocumentError{Path: doc.Path, Cause: err}
	}
	return nil
}

func (s *Service) normalisePath(path string) string {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "."
	}
	return trimmed
}

func toLoaderParams(opts interfaces.LoadOptions) LoadParams {
	return LoadParams{
		Pattern:   opts.Pattern,
		Recursive: opts.Recursive,
	}
}

func mergeParseOptions(base, override interfaces.ParseOptions) interfaces.ParseOptions {
	merged := base
	if len(override.Extensions) > 0 {
		merged.Extensions = override.Extensions
	}
	if override.Sanitize {
		merged.Sanitize = true
	}
	if override.HardWraps {
		merged.HardWraps = true
	}
	if override.SafeMode {
		merged.SafeMode = true
	}
	return merged
}

func prepareFilesystem(basePath string) (fs.FS, error) {
	clean := filepath.Clean(basePath)
	if clean == "" || clean == "." {
		clean = "."
	}
	info, err := os.Stat(clean)
	if err != nil {
		return nil, fmt.Errorf("content service: stat %s: %w", clean, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("content service: %s is not a directory", clean)
	}
	return os.DirFS(clean), nil
}
