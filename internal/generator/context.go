package generator

import (
	"context"
	"fmt"

	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/internal/markdown"
	"github.com/goliatone/go-blog/internal/menus"
	"github.com/goliatone/go-blog/internal/nav"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

// BuildContext carries everything a build resolved up front: the discovered
// documents, per-document load failures, the populated menu registry, the
// theme selection, and the generated navigation assets.
type BuildContext struct {
	Documents []*interfaces.Document
	Failures  []markdown.LoadFailure
	Registry  *menus.Registry
	Theme     ThemeContext
	NavAssets nav.Assets
	Site      SiteMetadata
}

// loadContext discovers content, registers menu entries, and resolves the
// theme. Per-document load failures are carried in the context rather than
// aborting it; only walk-level or theme errors are fatal.
func (s *service) loadContext(ctx context.Context) (*BuildContext, error) {
	docs, failures, err := s.deps.Content.LoadDirectory(ctx, ".", interfaces.LoadOptions{})
	if err != nil {
		return nil, fmt.Errorf("generator: discover content: %w", err)
	}

	registry := menus.NewRegistry(s.log)
	registry.IncludeDrafts(s.cfg.IncludeDrafts)
	for _, doc := range docs {
		registry.RegisterDocument(doc, RouteFor(doc.Path))
	}

	selection, err := s.themes.Selection()
	if err != nil {
		return nil, err
	}
	themeCtx := buildThemeContext(selection, s.cfg.Theming.CSSVariablePrefix, s.cfg.Theming.PartialFallbacks)

	navAssets, err := nav.BuildAssets(nav.Config{
		Breakpoints:    s.cfg.Nav.Breakpoints,
		CollapseBelow:  s.cfg.Nav.CollapseBelow,
		CSSVariables:   themeCtx.Tokens,
		VariablePrefix: s.cfg.Theming.CSSVariablePrefix,
	})
	if err != nil {
		return nil, fmt.Errorf("generator: build nav assets: %w", err)
	}

	site := SiteMetadata{
		Title:       s.cfg.SiteTitle,
		BaseURL:     s.cfg.BaseURL,
		Description: s.cfg.Description,
		Author:      s.cfg.Author,
		Language:    s.cfg.Language,
		Params:      s.cfg.SiteParams,
		Styles:      []string{"/" + navStylesheetPath},
		Scripts:     []string{"/" + navScriptPath},
	}

	for _, conflict := range registry.Conflicts() {
		s.log.Warn("degraded menu resolution", "error", conflict.Error())
	}

	s.log.Debug("build context ready",
		"documents", len(docs),
		"load_failures", len(failures),
		logging.FieldBuildAction, "context",
	)

	return &BuildContext{
		Documents: docs,
		Failures:  failures,
		Registry:  registry,
		Theme:     themeCtx,
		NavAssets: navAssets,
		Site:      site,
	}, nil
}
