package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

// GoldmarkParser implements interfaces.MarkdownParser using the goldmark engine.
// The parser is intentionally stateless so callers can reuse a single instance
// across documents without additional locking.
type GoldmarkParser struct {
	defaultOptions interfaces.ParseOptions
}

// NewGoldmarkParser constructs a parser with sensible defaults (GFM
// extensions, hard wraps disabled, unsafe HTML allowed). Auto heading IDs are
// deliberately not enabled: anchor assignment belongs to the TOC pass so the
// slug policy stays in one place.
func NewGoldmarkParser(defaults interfaces.ParseOptions) *GoldmarkParser {
	return &GoldmarkParser{
		defaultOptions: defaults,
	}
}

// Parse satisfies interfaces.MarkdownParser by rendering Markdown into HTML
// using the parser's default configuration.
func (p *GoldmarkParser) Parse(markdown []byte) ([]byte, error) {
	return p.ParseWithOptions(markdown, p.defaultOptions)
}

// ParseWithOptions renders Markdown into HTML using the provided options.
// Goldmark itself accepts run-on fences (CommonMark closes them at EOF), so an
// explicit fence-balance check runs first and fails the document instead.
func (p *GoldmarkParser) ParseWithOptions(markdown []byte, opts interfaces.ParseOptions) ([]byte, error) {
	if err := checkFences(markdown); err != nil {
		return nil, err
	}

	engine := newGoldmarkEngine(opts)
	var buf bytes.Buffer
	if err := engine.Convert(markdown, &buf); err != nil {
		return nil, fmt.Errorf("markdown parse: %w", err)
	}
	return buf.Bytes(), nil
}

// checkFences reports ErrUnterminatedFence when a fenced code block is opened
// but never closed. A closing fence uses the same rune as the opener, is at
// least as long, and carries no info string.
func checkFences(markdown []byte) error {
	var (
		open     bool
		openRune byte
		openLen  int
		openLine int
	)

	lines := bytes.Split(markdown, []byte("\n"))
	for i, line := range lines {
		trimmed := bytes.TrimLeft(line, " ")
		// Indented by four or more spaces: an indented code block, not a fence.
		if len(line)-len(trimmed) >= 4 {
			continue
		}
		if len(trimmed) < 3 {
			continue
		}
		marker := trimmed[0]
		if marker != '`' && marker != '~' {
			continue
		}
		run := 0
		for run < len(trimmed) && trimmed[run] == marker {
			run++
		}
		if run < 3 {
			continue
		}
		rest := bytes.TrimSpace(trimmed[run:])

		if !open {
			// A backtick fence cannot carry backticks in its info string;
			// such a line is a paragraph with a code span.
			if marker == '`' && bytes.ContainsRune(rest, '`') {
				continue
			}
			open = true
			openRune = marker
			openLen = run
			openLine = i + 1
			continue
		}
		if marker == openRune && run >= openLen && len(rest) == 0 {
			open = false
		}
	}

	if open {
		return fmt.Errorf("%w: fence opened at line %d", ErrUnterminatedFence, openLine)
	}
	return nil
}

// newGoldmarkEngine builds a goldmark.Markdown configured based on the supplied
// parse options. The mapping is intentionally conservative; unsupported
// extension names are ignored.
func newGoldmarkEngine(opts interfaces.ParseOptions) goldmark.Markdown {
	exts := collectExtensions(opts.Extensions)

	rendererOptions := []renderer.Option{}

	if opts.HardWraps {
		rendererOptions = append(rendererOptions, html.WithHardWraps())
	}

	// Treat both SafeMode and Sanitize as signals to avoid emitting raw HTML.
	if !opts.SafeMode && !opts.Sanitize {
		rendererOptions = append(rendererOptions, html.WithUnsafe())
	}

	engineOptions := []goldmark.Option{}

	if len(rendererOptions) > 0 {
		engineOptions = append(engineOptions, goldmark.WithRendererOptions(rendererOptions...))
	}

	if len(exts) > 0 {
		engineOptions = append(engineOptions, goldmark.WithExtensions(exts...))
	}

	return goldmark.New(engineOptions...)
}

var extensionRegistry = map[string]goldmark.Extender{
	"gfm":           extension.GFM,
	"table":         extension.Table,
	"tables":        extension.Table,
	"strikethrough": extension.Strikethrough,
	"linkify":       extension.Linkify,
	"autolink":      extension.Linkify,
	"tasklist":      extension.TaskList,
	"definition":    extension.DefinitionList,
	"footnote":      extension.Footnote,
	"typographer":   extension.Typographer,
}

func collectExtensions(names []string) []goldmark.Extender {
	if len(names) == 0 {
		return []goldmark.Extender{
			extension.GFM,
			extension.Linkify,
			extension.TaskList,
		}
	}

	var extenders []goldmark.Extender
	seen := map[string]struct{}{}

	for _, name := range names {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" {
			continue
		}

		if _, ok := seen[key]; ok {
			continue
		}

		ext, ok := extensionRegistry[key]
		if !ok {
			continue
		}

		extenders = append(extenders, ext)
		seen[key] = struct{}{}
	}

	return extenders
}
