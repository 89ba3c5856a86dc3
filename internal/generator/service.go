// Package generator turns discovered content into a static site: it renders
// every non-draft document through the template layer, copies assets, and
// emits sitemap, robots, and feed artifacts. Per-document failures are
// isolated; the build finishes and reports them together.
package generator

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"html/template"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/spf13/afero"

	"github.com/goliatone/go-blog/internal/comments"
	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/internal/markdown"
	"github.com/goliatone/go-blog/internal/menus"
	"github.com/goliatone/go-blog/internal/toc"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

const defaultMainMenu = "main"
const defaultLayout = "page"

// NavSettings mirrors the responsive navigation configuration the generator
// feeds into asset generation.
type NavSettings struct {
	Breakpoints   map[string]int
	CollapseBelow string
}

// Config captures runtime behaviour toggles for the generator.
type Config struct {
	SiteTitle   string
	BaseURL     string
	Description string
	Author      string
	Language    string
	SiteParams  map[string]any

	OutputDir string
	StaticDir string
	// Layout names the template every page renders through.
	Layout string
	// MainMenu names the menu rendered into the page header.
	MainMenu string

	CleanBuild      bool
	Incremental     bool
	CopyAssets      bool
	GenerateSitemap bool
	GenerateRobots  bool
	GenerateFeed    bool
	IncludeDrafts   bool
	Workers         int

	Nav     NavSettings
	Theming ThemingConfig
}

// BuildOptions narrows the scope of a generator run.
type BuildOptions struct {
	// DryRun renders everything but writes nothing.
	DryRun bool
	// Workers overrides the configured worker count when positive.
	Workers int
}

// BuildResult reports aggregated build metadata.
type BuildResult struct {
	PagesBuilt     int
	PagesSkipped   int
	DraftsExcluded int
	AssetsBuilt    int
	Duration       time.Duration
	Rendered       []RenderedPage
	Diagnostics    []RenderDiagnostic
	Errors         []error
	DryRun         bool
}

// Dependencies lists the collaborators required by the generator.
type Dependencies struct {
	Content  *markdown.Service
	Renderer interfaces.TemplateRenderer
	Storage  interfaces.ArtifactStorage
	Comments *comments.Builder
	Logger   interfaces.Logger
	// SourceFs is the filesystem static assets are copied from, defaulting
	// to the OS filesystem.
	SourceFs afero.Fs
	// ThemeLoader overrides manifest loading, used by tests.
	ThemeLoader themeManifestLoader
}

// Service describes the static site generator contract.
type Service interface {
	Build(ctx context.Context, opts BuildOptions) (*BuildResult, error)
	Clean(ctx context.Context) error
}

// NewService wires a generator with the provided configuration and
// dependencies.
func NewService(cfg Config, deps Dependencies) Service {
	log := deps.Logger
	if log == nil {
		log = logging.NoOp()
	}
	sourceFs := deps.SourceFs
	if sourceFs == nil {
		sourceFs = afero.NewOsFs()
	}
	return &service{
		cfg:      cfg,
		deps:     deps,
		log:      log,
		sourceFs: sourceFs,
		themes:   newThemeSelector(cfg.Theming, deps.ThemeLoader),
	}
}

type service struct {
	cfg      Config
	deps     Dependencies
	log      interfaces.Logger
	sourceFs afero.Fs
	themes   *themeSelector
}

func (s *service) Build(ctx context.Context, opts BuildOptions) (*BuildResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.deps.Content == nil {
		return nil, ErrContentRequired
	}
	if s.deps.Renderer == nil {
		return nil, ErrRendererRequired
	}
	if !opts.DryRun && s.deps.Storage == nil {
		return nil, ErrStorageRequired
	}

	start := time.Now()
	buildCtx, err := s.loadContext(ctx)
	if err != nil {
		return nil, err
	}

	result := &BuildResult{DryRun: opts.DryRun}
	var errorsSlice []error

	for _, failure := range buildCtx.Failures {
		errorsSlice = append(errorsSlice, failure.Err)
		result.Diagnostics = append(result.Diagnostics, RenderDiagnostic{
			Path: failure.Path,
			Err:  failure.Err,
		})
	}

	previous := newBuildManifest()
	if s.cfg.Incremental && !opts.DryRun {
		previous = loadManifest(ctx, s.deps.Storage, s.cfg.OutputDir)
	}

	if s.cfg.CleanBuild && !s.cfg.Incremental && !opts.DryRun {
		if err := s.deps.Storage.RemoveAll(ctx, s.cfg.OutputDir); err != nil {
			errorsSlice = append(errorsSlice, err)
		}
	}

	var (
		mu       sync.Mutex
		outcomes []renderOutcome
	)
	collect := func(outcome renderOutcome) {
		mu.Lock()
		defer mu.Unlock()
		result.Diagnostics = append(result.Diagnostics, outcome.diagnostic)
		outcomes = append(outcomes, outcome)
		switch {
		case outcome.err != nil:
			errorsSlice = append(errorsSlice, outcome.err)
			logging.WithDocumentContext(s.log, outcome.diagnostic.Path, "render").
				Error("document failed", "error", outcome.err)
		case outcome.draft:
			result.DraftsExcluded++
		case outcome.skipped:
			result.PagesSkipped++
		default:
			result.PagesBuilt++
		}
	}

	if err := s.renderAll(ctx, buildCtx, previous, opts.Workers, collect); err != nil {
		result.Duration = time.Since(start)
		result.Errors = append(result.Errors, errorsSlice...)
		return result, err
	}

	sort.Slice(outcomes, func(i, j int) bool {
		return outcomes[i].diagnostic.Path < outcomes[j].diagnostic.Path
	})
	sort.Slice(result.Diagnostics, func(i, j int) bool {
		return result.Diagnostics[i].Path < result.Diagnostics[j].Path
	})

	var rendered []RenderedPage
	var published []RenderedPage
	var feedSources []pageFeedSource
	for _, outcome := range outcomes {
		if outcome.err != nil || outcome.draft {
			continue
		}
		published = append(published, outcome.page)
		feedSources = append(feedSources, outcome.feed)
		if !outcome.skipped {
			rendered = append(rendered, outcome.page)
		}
	}
	result.Rendered = rendered

	if opts.DryRun {
		result.Duration = time.Since(start)
		if len(errorsSlice) > 0 {
			result.Errors = append(result.Errors, errorsSlice...)
			return result, errors.Join(errorsSlice...)
		}
		return result, nil
	}

	for i := range rendered {
		page := &rendered[i]
		if err := s.deps.Storage.WriteFile(ctx, page.Output, strings.NewReader(page.HTML), int64(len(page.HTML))); err != nil {
			errorsSlice = append(errorsSlice, err)
		}
	}

	navSummary, err := writeNavAssets(ctx, s.deps.Storage, s.cfg.OutputDir, buildCtx.NavAssets)
	result.AssetsBuilt += navSummary.Built
	if err != nil {
		errorsSlice = append(errorsSlice, err)
	}

	if s.cfg.CopyAssets {
		staticSummary, err := copyStaticAssets(ctx, s.deps.Storage, s.sourceFs, s.cfg.StaticDir, s.cfg.OutputDir)
		result.AssetsBuilt += staticSummary.Built
		if err != nil {
			errorsSlice = append(errorsSlice, err)
		}
	}

	if s.cfg.GenerateSitemap {
		sitemap := buildSitemap(s.cfg.BaseURL, published)
		if err := s.deps.Storage.WriteFile(ctx, joinOutputPath(s.cfg.OutputDir, "sitemap.xml"), strings.NewReader(sitemap), int64(len(sitemap))); err != nil {
			errorsSlice = append(errorsSlice, err)
		}
	}

	if s.cfg.GenerateRobots {
		robots := buildRobots(s.cfg.BaseURL, s.cfg.GenerateSitemap)
		if err := s.deps.Storage.WriteFile(ctx, joinOutputPath(s.cfg.OutputDir, "robots.txt"), strings.NewReader(robots), int64(len(robots))); err != nil {
			errorsSlice = append(errorsSlice, err)
		}
	}

	if s.cfg.GenerateFeed {
		feed := buildFeed(buildCtx.Site, buildFeedItems(s.cfg.BaseURL, feedSources))
		if err := s.deps.Storage.WriteFile(ctx, joinOutputPath(s.cfg.OutputDir, "feed.xml"), strings.NewReader(feed), int64(len(feed))); err != nil {
			errorsSlice = append(errorsSlice, err)
		}
	}

	if len(errorsSlice) == 0 {
		next := newBuildManifest()
		for _, outcome := range outcomes {
			if outcome.err != nil || outcome.draft {
				continue
			}
			if outcome.skipped {
				if entry, ok := previous.Pages[outcome.page.Path]; ok {
					next.setPage(entry)
				}
				continue
			}
			next.setPage(manifestPage{
				Path:           outcome.page.Path,
				Output:         outcome.page.Output,
				SourceChecksum: outcome.page.SourceChecksum,
				OutputChecksum: outcome.page.Checksum,
				LastModified:   outcome.page.LastModified,
			})
		}
		if err := persistManifest(ctx, s.deps.Storage, s.cfg.OutputDir, next); err != nil {
			errorsSlice = append(errorsSlice, err)
		}
	}

	result.Duration = time.Since(start)

	s.log.Info("build finished",
		"pages_built", result.PagesBuilt,
		"pages_skipped", result.PagesSkipped,
		"drafts_excluded", result.DraftsExcluded,
		"errors", len(errorsSlice),
		logging.FieldBuildAction, "build",
	)

	if len(errorsSlice) > 0 {
		result.Errors = append(result.Errors, errorsSlice...)
		return result, errors.Join(errorsSlice...)
	}
	return result, nil
}

// Clean removes the output directory entirely.
func (s *service) Clean(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if s.deps.Storage == nil {
		return ErrStorageRequired
	}
	s.log.Info("cleaning output", "output_dir", s.cfg.OutputDir, logging.FieldBuildAction, "clean")
	return s.deps.Storage.RemoveAll(ctx, s.cfg.OutputDir)
}

func (s *service) renderAll(ctx context.Context, buildCtx *BuildContext, manifest *buildManifest, workerOverride int, collect func(renderOutcome)) error {
	docs := buildCtx.Documents
	workers := s.effectiveWorkers(len(docs), workerOverride)

	if workers <= 1 || len(docs) <= 1 {
		for _, doc := range docs {
			if err := ctx.Err(); err != nil {
				return err
			}
			collect(s.renderDocument(ctx, buildCtx, doc, manifest))
		}
		return nil
	}

	jobs := make(chan *interfaces.Document)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for doc := range jobs {
				select {
				case <-ctx.Done():
					collect(renderOutcome{
						diagnostic: RenderDiagnostic{Path: doc.Path, Route: RouteFor(doc.Path), Err: ctx.Err()},
						err:        ctx.Err(),
					})
				default:
					collect(s.renderDocument(ctx, buildCtx, doc, manifest))
				}
			}
		}()
	}

	var walkErr error
	for _, doc := range docs {
		select {
		case <-ctx.Done():
			walkErr = ctx.Err()
		case jobs <- doc:
			continue
		}
		break
	}
	close(jobs)
	wg.Wait()
	return walkErr
}

func (s *service) renderDocument(ctx context.Context, buildCtx *BuildContext, doc *interfaces.Document, manifest *buildManifest) renderOutcome {
	route := RouteFor(doc.Path)
	output := joinOutputPath(s.cfg.OutputDir, OutputPath(doc.Path))
	outcome := renderOutcome{
		diagnostic: RenderDiagnostic{Path: doc.Path, Route: route},
	}

	if doc.FrontMatter.Draft && !s.cfg.IncludeDrafts {
		outcome.draft = true
		outcome.diagnostic.Draft = true
		return outcome
	}

	sourceChecksum := hex.EncodeToString(doc.Checksum)
	outcome.feed = pageFeedSource{
		Title: doc.FrontMatter.Title,
		Route: route,
		Date:  doc.FrontMatter.Date,
	}

	if s.cfg.Incremental && manifest.shouldSkipPage(doc.Path, sourceChecksum, output) {
		outcome.skipped = true
		outcome.diagnostic.Skipped = true
		outcome.page = RenderedPage{
			Path:           doc.Path,
			Route:          route,
			Output:         output,
			SourceChecksum: sourceChecksum,
			LastModified:   doc.LastModified,
		}
		return outcome
	}

	start := time.Now()

	bodyHTML := doc.BodyHTML
	if len(bodyHTML) == 0 {
		var err error
		bodyHTML, err = s.deps.Content.RenderDocument(ctx, doc, interfaces.ParseOptions{})
		if err != nil {
			wrapped := &RenderError{Path: doc.Path, Cause: err}
			outcome.err = wrapped
			outcome.diagnostic.Err = wrapped
			return outcome
		}
	}

	annotated, headings, err := toc.Extract(bodyHTML)
	if err != nil {
		wrapped := &RenderError{Path: doc.Path, Cause: err}
		outcome.err = wrapped
		outcome.diagnostic.Err = wrapped
		return outcome
	}

	var commentHTML template.HTML
	if s.deps.Comments != nil {
		commentHTML = s.deps.Comments.Placeholder(doc.FrontMatter, strings.TrimPrefix(route, "/"))
	}

	mainMenu := s.cfg.MainMenu
	if strings.TrimSpace(mainMenu) == "" {
		mainMenu = defaultMainMenu
	}

	templateCtx := TemplateContext{
		Site: buildCtx.Site,
		Page: PageContext{
			Title:       doc.FrontMatter.Title,
			Date:        doc.FrontMatter.Date,
			Keywords:    doc.FrontMatter.Keywords,
			Image:       doc.FrontMatter.Image,
			ImageCredit: doc.FrontMatter.ImageCredit,
			Content:     template.HTML(annotated),
			ShowTOC:     doc.FrontMatter.ShowTOC,
			Comments:    commentHTML,
			Path:        doc.Path,
			Route:       route,
			Permalink:   absoluteURL(s.cfg.BaseURL, route),
			Custom:      doc.FrontMatter.Custom,
		},
		Nav:   buildCtx.Registry.Resolve(mainMenu),
		Menus: resolveAllMenus(buildCtx.Registry),
		Theme: buildCtx.Theme,
	}
	if doc.FrontMatter.ShowTOC {
		templateCtx.Page.TOC = headings
	}

	layout := s.cfg.Layout
	if strings.TrimSpace(layout) == "" {
		layout = defaultLayout
	}

	html, err := s.deps.Renderer.RenderTemplate(layout, templateCtx)
	duration := time.Since(start)
	outcome.diagnostic.Duration = duration
	if err != nil {
		wrapped := &RenderError{Path: doc.Path, Cause: fmt.Errorf("template %q: %w", layout, err)}
		outcome.err = wrapped
		outcome.diagnostic.Err = wrapped
		return outcome
	}

	outcome.page = RenderedPage{
		Path:           doc.Path,
		Route:          route,
		Output:         output,
		HTML:           html,
		Checksum:       computeHashFromString(html),
		SourceChecksum: sourceChecksum,
		LastModified:   doc.LastModified,
		Duration:       duration,
	}
	return outcome
}

func resolveAllMenus(registry *menus.Registry) map[string][]menus.Entry {
	resolved := map[string][]menus.Entry{}
	for _, name := range registry.MenuNames() {
		resolved[name] = registry.Resolve(name)
	}
	return resolved
}

func (s *service) effectiveWorkers(docCount, override int) int {
	workers := s.cfg.Workers
	if override > 0 {
		workers = override
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > docCount {
		workers = docCount
	}
	return workers
}
