package blog

import (
	"context"

	"github.com/goliatone/go-blog/internal/di"
	"github.com/goliatone/go-blog/internal/generator"
	"github.com/goliatone/go-blog/internal/markdown"
	"github.com/goliatone/go-blog/internal/server"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

// ContentService exports the content service for consumers of the blog package.
type ContentService = markdown.Service

// GeneratorService exports the static site generator contract.
type GeneratorService = generator.Service

// BuildOptions exports the generator build options.
type BuildOptions = generator.BuildOptions

// BuildResult exports the generator build result.
type BuildResult = generator.BuildResult

// Document exports the parsed document DTO.
type Document = interfaces.Document

// Module is the top level blog runtime façade.
type Module struct {
	container *di.Container
}

// New constructs a blog module using the provided configuration and optional
// dependency overrides.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Content returns the configured content service.
func (m *Module) Content() *ContentService {
	return m.container.ContentService()
}

// Generator returns the static site generator.
func (m *Module) Generator() GeneratorService {
	return m.container.GeneratorService()
}

// Build runs a full site build.
func (m *Module) Build(ctx context.Context, opts BuildOptions) (*BuildResult, error) {
	return m.container.GeneratorService().Build(ctx, opts)
}

// Clean removes generated artifacts from the output directory.
func (m *Module) Clean(ctx context.Context) error {
	return m.container.GeneratorService().Clean(ctx)
}

// PreviewServer returns a preview server that serves the generated site and,
// when watching is enabled, rebuilds it on source changes.
func (m *Module) PreviewServer() *server.Server {
	return m.container.PreviewServer(func(ctx context.Context) error {
		_, err := m.Build(ctx, BuildOptions{})
		return err
	})
}

// Logger returns a named module logger.
func (m *Module) Logger(name string) interfaces.Logger {
	return m.container.Logger(name)
}
