package di

import (
	"fmt"
	"os"
	"sync"

	"github.com/goliatone/go-blog/internal/comments"
	"github.com/goliatone/go-blog/internal/generator"
	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/internal/logging/gologger"
	"github.com/goliatone/go-blog/internal/markdown"
	"github.com/goliatone/go-blog/internal/runtimeconfig"
	"github.com/goliatone/go-blog/internal/server"
	"github.com/goliatone/go-blog/internal/templates"
	"github.com/goliatone/go-blog/pkg/interfaces"
	"github.com/spf13/afero"
	yaml "gopkg.in/yaml.v3"
)

// Option overrides a container dependency, mostly used by tests and embedders.
type Option func(*Container)

// WithLoggerProvider replaces the logger provider derived from configuration.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggers = provider
	}
}

// WithSourceFs replaces the filesystem static assets and templates are read from.
func WithSourceFs(fs afero.Fs) Option {
	return func(c *Container) {
		c.sourceFs = fs
	}
}

// WithOutputFs replaces the filesystem artifacts are written to.
func WithOutputFs(fs afero.Fs) Option {
	return func(c *Container) {
		c.outputFs = fs
	}
}

// WithContentService replaces the content service built from configuration.
func WithContentService(svc *markdown.Service) Option {
	return func(c *Container) {
		c.content = svc
	}
}

// WithRenderer replaces the template engine built from configuration.
func WithRenderer(renderer interfaces.TemplateRenderer) Option {
	return func(c *Container) {
		c.renderer = renderer
	}
}

// Container wires the blog services together from a runtime configuration.
// Services are constructed eagerly so configuration errors surface at startup.
type Container struct {
	cfg runtimeconfig.Config

	loggers  interfaces.LoggerProvider
	sourceFs afero.Fs
	outputFs afero.Fs

	content  *markdown.Service
	renderer interfaces.TemplateRenderer
	storage  interfaces.ArtifactStorage
	comments *comments.Builder

	generatorOnce sync.Once
	generator     generator.Service
}

// NewContainer validates the configuration and constructs every service.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{cfg: cfg}
	for _, opt := range opts {
		opt(c)
	}

	if c.loggers == nil {
		provider, err := buildLoggerProvider(cfg.Logging)
		if err != nil {
			return nil, err
		}
		c.loggers = provider
	}
	if c.sourceFs == nil {
		c.sourceFs = afero.NewOsFs()
	}
	if c.outputFs == nil {
		c.outputFs = afero.NewOsFs()
	}

	if c.content == nil {
		content, err := buildContentService(cfg)
		if err != nil {
			return nil, err
		}
		c.content = content
	}

	if c.renderer == nil {
		renderer, err := templates.New(templates.Config{
			Dir: cfg.Templates.Dir,
			Fs:  c.sourceFs,
		})
		if err != nil {
			return nil, err
		}
		c.renderer = renderer
	}

	if c.storage == nil {
		c.storage = generator.NewFilesystemStorage(c.outputFs)
	}

	if c.comments == nil {
		c.comments = comments.NewBuilder(comments.Config{
			Provider:        cfg.Comments.Provider,
			DisqusShortname: cfg.Comments.DisqusShortname,
			UtterancesRepo:  cfg.Comments.UtterancesRepo,
		})
	}

	return c, nil
}

// Config returns the runtime configuration the container was built from.
func (c *Container) Config() runtimeconfig.Config {
	return c.cfg
}

// Logger returns a named module logger.
func (c *Container) Logger(name string) interfaces.Logger {
	if c.loggers == nil {
		return logging.NoOp()
	}
	return c.loggers.GetLogger(name)
}

// ContentService returns the markdown content service.
func (c *Container) ContentService() *markdown.Service {
	return c.content
}

// Renderer returns the template engine.
func (c *Container) Renderer() interfaces.TemplateRenderer {
	return c.renderer
}

// Storage returns the artifact storage backend.
func (c *Container) Storage() interfaces.ArtifactStorage {
	return c.storage
}

// Comments returns the comment placeholder builder.
func (c *Container) Comments() *comments.Builder {
	return c.comments
}

// GeneratorService returns the static site generator, constructing it on first use.
func (c *Container) GeneratorService() generator.Service {
	c.generatorOnce.Do(func() {
		c.generator = generator.NewService(generatorConfig(c.cfg), generator.Dependencies{
			Content:  c.content,
			Renderer: c.renderer,
			Storage:  c.storage,
			Comments: c.comments,
			Logger:   logging.GeneratorLogger(c.loggers),
			SourceFs: c.sourceFs,
		})
	})
	return c.generator
}

// PreviewServer builds a preview server serving the generator output directory.
func (c *Container) PreviewServer(rebuild server.RebuildFunc) *server.Server {
	watchDirs := []string{}
	if c.cfg.Server.Watch {
		watchDirs = append(watchDirs, c.cfg.Content.Dir)
		if dir := c.cfg.Templates.Dir; dir != "" {
			watchDirs = append(watchDirs, dir)
		}
		if dir := c.cfg.Generator.StaticDir; dir != "" {
			watchDirs = append(watchDirs, dir)
		}
	}
	return server.New(server.Config{
		Addr:      c.cfg.Server.Addr,
		OutputDir: c.cfg.Generator.OutputDir,
		WatchDirs: watchDirs,
	}, c.outputFs, rebuild, logging.ServerLogger(c.loggers))
}

func buildLoggerProvider(cfg runtimeconfig.LoggingConfig) (interfaces.LoggerProvider, error) {
	if !cfg.Enabled {
		return logging.NoOpProvider(), nil
	}
	return gologger.NewProvider(gologger.Config{
		Level:     cfg.Level,
		Format:    cfg.Format,
		AddSource: cfg.AddSource,
		Focus:     cfg.Focus,
	})
}

func buildContentService(cfg runtimeconfig.Config) (*markdown.Service, error) {
	schema := cfg.Content.Schema
	if schema == nil && cfg.Content.SchemaPath != "" {
		loaded, err := loadSchemaFile(cfg.Content.SchemaPath)
		if err != nil {
			return nil, err
		}
		schema = loaded
	}

	return markdown.NewService(markdown.Config{
		BasePath:  cfg.Content.Dir,
		Pattern:   cfg.Content.Pattern,
		Recursive: cfg.Content.Recursive,
		Schema:    schema,
		Parser: interfaces.ParseOptions{
			Extensions: cfg.Content.Parser.Extensions,
			Sanitize:   cfg.Content.Parser.Sanitize,
			HardWraps:  cfg.Content.Parser.HardWraps,
			SafeMode:   cfg.Content.Parser.SafeMode,
		},
	}, nil)
}

func loadSchemaFile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("di: read schema %s: %w", path, err)
	}
	schema := map[string]any{}
	if err := yaml.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("di: parse schema %s: %w", path, err)
	}
	return schema, nil
}

func generatorConfig(cfg runtimeconfig.Config) generator.Config {
	return generator.Config{
		SiteTitle:   cfg.Site.Title,
		BaseURL:     cfg.Site.BaseURL,
		Description: cfg.Site.Description,
		Author:      cfg.Site.Author,
		Language:    cfg.Site.Language,
		SiteParams:  cfg.Site.Params,

		OutputDir: cfg.Generator.OutputDir,
		StaticDir: cfg.Generator.StaticDir,

		CleanBuild:      cfg.Generator.CleanBuild,
		Incremental:     cfg.Generator.Incremental,
		CopyAssets:      cfg.Generator.CopyAssets,
		GenerateSitemap: cfg.Generator.GenerateSitemap,
		GenerateRobots:  cfg.Generator.GenerateRobots,
		GenerateFeed:    cfg.Generator.GenerateFeed,
		IncludeDrafts:   cfg.Generator.IncludeDrafts,
		Workers:         cfg.Generator.Workers,

		Nav: generator.NavSettings{
			Breakpoints:   cfg.Nav.Breakpoints,
			CollapseBelow: cfg.Nav.CollapseBelow,
		},
		Theming: generator.ThemingConfig{
			BasePath:          cfg.Theme.BasePath,
			Name:              cfg.Theme.Name,
			Variant:           cfg.Theme.Variant,
			CSSVariablePrefix: cfg.Theme.CSSVariablePrefix,
		},
	}
}
