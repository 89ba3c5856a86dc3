package generator

import (
	"html/template"
	"time"

	gotheme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-blog/internal/menus"
	"github.com/goliatone/go-blog/internal/toc"
)

// TemplateContext is the data contract passed to the template renderer for
// every page.
type TemplateContext struct {
	Site  SiteMetadata
	Page  PageContext
	Nav   []menus.Entry
	Menus map[string][]menus.Entry
	Theme ThemeContext
}

// SiteMetadata exposes site-wide information to templates. It is assembled
// once per build and shared read-only across pages.
type SiteMetadata struct {
	Title       string
	BaseURL     string
	Description string
	Author      string
	Language    string
	Params      map[string]any
	// Styles and Scripts are site-relative asset URLs every page links.
	Styles  []string
	Scripts []string
}

// PageContext carries the resolved, per-document rendering inputs.
type PageContext struct {
	Title       string
	Date        time.Time
	Keywords    []string
	Image       string
	ImageCredit string
	Content     template.HTML
	ShowTOC     bool
	TOC         []toc.Heading
	Comments    template.HTML
	Path        string
	Route       string
	Permalink   string
	Custom      map[string]any
}

// ThemeContext surfaces the active go-theme selection to templates.
type ThemeContext struct {
	Name     string
	Variant  string
	Tokens   map[string]string
	CSSVars  map[string]string
	Partials map[string]string
	AssetURL func(string) string
}

func emptyThemeContext() ThemeContext {
	return ThemeContext{
		Tokens:   map[string]string{},
		CSSVars:  map[string]string{},
		Partials: map[string]string{},
		AssetURL: func(string) string { return "" },
	}
}

func buildThemeContext(selection *gotheme.Selection, cssPrefix string, partialFallbacks map[string]string) ThemeContext {
	if selection == nil {
		return emptyThemeContext()
	}
	return ThemeContext{
		Name:     selection.Theme,
		Variant:  selection.Variant,
		Tokens:   selection.Tokens(),
		CSSVars:  selection.CSSVariables(cssPrefix),
		Partials: selection.Partials(partialFallbacks),
		AssetURL: func(key string) string {
			url, _ := selection.Asset(key)
			return url
		},
	}
}

// RenderedPage captures one emitted page.
type RenderedPage struct {
	Path     string
	Route    string
	Output   string
	HTML     string
	Checksum string
	// SourceChecksum fingerprints the raw document for incremental skips.
	SourceChecksum string
	LastModified   time.Time
	Duration       time.Duration
}

// RenderDiagnostic records per-document rendering timing and errors.
type RenderDiagnostic struct {
	Path     string
	Route    string
	Duration time.Duration
	Skipped  bool
	Draft    bool
	Err      error
}

type renderOutcome struct {
	page       RenderedPage
	diagnostic RenderDiagnostic
	feed       pageFeedSource
	err        error
	skipped    bool
	draft      bool
}
