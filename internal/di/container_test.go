package di

import (
	"context"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-blog/internal/generator"
	"github.com/goliatone/go-blog/internal/markdown"
	"github.com/goliatone/go-blog/internal/runtimeconfig"
	"github.com/spf13/afero"
)

func testConfig() runtimeconfig.Config {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Site.Title = "Test Blog"
	cfg.Site.BaseURL = "https://example.com"
	cfg.Logging.Enabled = false
	return cfg
}

func testContent(t *testing.T) *markdown.Service {
	t.Helper()
	source := fstest.MapFS{
		"index.md": &fstest.MapFile{Data: []byte("---\ntitle: Home\n---\n\nWelcome.\n")},
	}
	svc, err := markdown.NewServiceWithFS(markdown.Config{Pattern: "*.md", Recursive: true}, nil, source)
	if err != nil {
		t.Fatalf("content service: %v", err)
	}
	return svc
}

func TestNewContainerRejectsInvalidConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Site.BaseURL = ""

	if _, err := NewContainer(cfg); err == nil {
		t.Fatal("expected validation error for missing base URL")
	}
}

func TestContainerBuildsWorkingGenerator(t *testing.T) {
	output := afero.NewMemMapFs()
	c, err := NewContainer(testConfig(),
		WithContentService(testContent(t)),
		WithSourceFs(afero.NewMemMapFs()),
		WithOutputFs(output),
	)
	if err != nil {
		t.Fatalf("container: %v", err)
	}

	svc := c.GeneratorService()
	if svc == nil {
		t.Fatal("expected generator service")
	}

	result, err := svc.Build(context.Background(), generator.BuildOptions{})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if result.PagesBuilt != 1 {
		t.Fatalf("expected 1 page, got %d", result.PagesBuilt)
	}

	html, err := afero.ReadFile(output, "public/index.html")
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !strings.Contains(string(html), "Welcome.") {
		t.Fatalf("expected rendered body, got %q", string(html))
	}
}

func TestContainerGeneratorIsSingleton(t *testing.T) {
	c, err := NewContainer(testConfig(),
		WithContentService(testContent(t)),
		WithSourceFs(afero.NewMemMapFs()),
		WithOutputFs(afero.NewMemMapFs()),
	)
	if err != nil {
		t.Fatalf("container: %v", err)
	}
	if c.GeneratorService() != c.GeneratorService() {
		t.Fatal("expected the same generator instance")
	}
}

func TestContainerPreviewServer(t *testing.T) {
	c, err := NewContainer(testConfig(),
		WithContentService(testContent(t)),
		WithSourceFs(afero.NewMemMapFs()),
		WithOutputFs(afero.NewMemMapFs()),
	)
	if err != nil {
		t.Fatalf("container: %v", err)
	}
	if c.PreviewServer(nil) == nil {
		t.Fatal("expected preview server")
	}
}

func TestContainerDisabledLoggingUsesNoOp(t *testing.T) {
	c, err := NewContainer(testConfig(),
		WithContentService(testContent(t)),
		WithSourceFs(afero.NewMemMapFs()),
		WithOutputFs(afero.NewMemMapFs()),
	)
	if err != nil {
		t.Fatalf("container: %v", err)
	}
	if c.Logger("generator") == nil {
		t.Fatal("expected a logger even when logging is disabled")
	}
}
