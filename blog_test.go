package blog

import (
	"context"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-blog/internal/di"
	"github.com/goliatone/go-blog/internal/markdown"
	"github.com/spf13/afero"
)

func newTestModule(t *testing.T, files map[string]string) (*Module, afero.Fs) {
	t.Helper()

	source := fstest.MapFS{}
	for name, body := range files {
		source[name] = &fstest.MapFile{Data: []byte(body)}
	}
	content, err := markdown.NewServiceWithFS(markdown.Config{Pattern: "*.md", Recursive: true}, nil, source)
	if err != nil {
		t.Fatalf("content service: %v", err)
	}

	cfg := DefaultConfig()
	cfg.Site.Title = "Example"
	cfg.Site.BaseURL = "https://example.com"
	cfg.Logging.Enabled = false

	output := afero.NewMemMapFs()
	module, err := New(cfg,
		di.WithContentService(content),
		di.WithSourceFs(afero.NewMemMapFs()),
		di.WithOutputFs(output),
	)
	if err != nil {
		t.Fatalf("module: %v", err)
	}
	return module, output
}

func TestModuleBuild(t *testing.T) {
	module, output := newTestModule(t, map[string]string{
		"index.md": "---\ntitle: Home\n---\n\nHello there.\n",
		"about.md": "---\ntitle: About\nmenu:\n  main:\n    weight: 10\n---\n\nAbout me.\n",
	})

	result, err := module.Build(context.Background(), BuildOptions{})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if result.PagesBuilt != 2 {
		t.Fatalf("expected 2 pages, got %d", result.PagesBuilt)
	}

	html, err := afero.ReadFile(output, "public/about.html")
	if err != nil {
		t.Fatalf("read about page: %v", err)
	}
	if !strings.Contains(string(html), "About me.") {
		t.Fatalf("unexpected about page: %q", string(html))
	}
}

func TestModuleClean(t *testing.T) {
	module, output := newTestModule(t, map[string]string{
		"index.md": "---\ntitle: Home\n---\n\nHello.\n",
	})

	if _, err := module.Build(context.Background(), BuildOptions{}); err != nil {
		t.Fatalf("build: %v", err)
	}
	if err := module.Clean(context.Background()); err != nil {
		t.Fatalf("clean: %v", err)
	}
	if _, err := output.Stat("public/index.html"); err == nil {
		t.Fatal("expected output to be removed")
	}
}

func TestModulePreviewServer(t *testing.T) {
	module, _ := newTestModule(t, map[string]string{
		"index.md": "---\ntitle: Home\n---\n\nHello.\n",
	})
	if module.PreviewServer() == nil {
		t.Fatal("expected preview server")
	}
}
