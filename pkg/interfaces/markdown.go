package interfaces

import (
	"context"
	"time"
)

// MarkdownParser defines how raw Markdown bytes are converted into HTML.
// Implementations should be reusable across documents without additional
// locking so a single instance can back an entire build.
type MarkdownParser interface {
	// Parse converts Markdown into HTML using the parser's default settings.
	Parse(markdown []byte) ([]byte, error)
	// ParseWithOptions converts Markdown into HTML using the supplied overrides.
	ParseWithOptions(markdown []byte, opts ParseOptions) ([]byte, error)
}

// ParseOptions customises Markdown parsing behaviour, keeping option names
// readable for configuration unmarshalling and CLI flags.
type ParseOptions struct {
	Extensions []string
	Sanitize   bool
	HardWraps  bool
	SafeMode   bool
}

// ContentService exposes the file workflows the build pipeline depends on:
// loading documents from disk, splitting front matter, and rendering bodies.
type ContentService interface {
	Load(ctx context.Context, path string, opts LoadOptions) (*Document, error)
	LoadDirectory(ctx context.Context, dir string, opts LoadOptions) ([]*Document, []LoadFailure, error)
	Render(ctx context.Context, markdown []byte, opts ParseOptions) ([]byte, error)
	RenderDocument(ctx context.Context, doc *Document, opts ParseOptions) ([]byte, error)
}

// LoadFailure records a document that could not be loaded. Failures are
// isolated per document so a directory scan can continue past them.
type LoadFailure struct {
	Path string
	Err  error
}

// Document represents a single content unit: a Markdown file plus its
// resolved metadata. The struct is shared between the interfaces package and
// internal implementations so consumers can depend on a stable contract.
type Document struct {
	// Path uniquely identifies the document, relative to the content root.
	Path         string
	FrontMatter  FrontMatter
	Body         []byte
	BodyHTML     []byte
	LastModified time.Time
	// Checksum stores a SHA-256 digest of the original file content so
	// incremental builds can detect changes without re-rendering.
	Checksum []byte
}

// FrontMatter models the metadata block prefixed to a content file. Fields
// not recognised here are preserved in Custom so future renderers can consume
// them without a schema change.
type FrontMatter struct {
	Title        string               `yaml:"title" json:"title"`
	Date         time.Time            `yaml:"date" json:"date"`
	Draft        bool                 `yaml:"draft" json:"draft"`
	Menu         map[string]MenuEntry `yaml:"menu" json:"menu"`
	ShowTOC      bool                 `yaml:"showTOC" json:"showTOC"`
	UseComments  bool                 `yaml:"useComments" json:"useComments"`
	DisqusID     string               `yaml:"disqusIdentifier" json:"disqusIdentifier"`
	UtteranceNum int                  `yaml:"utterenceIssueNumber" json:"utterenceIssueNumber"`
	Image        string               `yaml:"image" json:"image"`
	ImageCredit  string               `yaml:"imageCredit" json:"imageCredit"`
	Keywords     []string             `yaml:"keywords" json:"keywords"`
	Custom       map[string]any       `yaml:",inline" json:"custom"`
	Raw          map[string]any       `yaml:"-" json:"raw"`
}

// MenuEntry registers the document in a named navigation menu. Weight orders
// entries ascending; ties preserve discovery order.
type MenuEntry struct {
	Name   string `yaml:"name" json:"name"`
	Weight int    `yaml:"weight" json:"weight"`
}

// LoadOptions fine-tunes how documents are discovered and parsed from disk.
type LoadOptions struct {
	Recursive *bool
	Pattern   string
	Parser    ParseOptions
}
