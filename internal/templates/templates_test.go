package templates

import (
	"html/template"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"
)

type testPage struct {
	Title       string
	Date        time.Time
	Keywords    []string
	Image       string
	ImageCredit string
	Content     template.HTML
	ShowTOC     bool
	TOC         []testHeading
	Comments    template.HTML
}

type testHeading struct {
	Level  int
	Text   string
	Anchor string
}

type testSite struct {
	Title       string
	Description string
	Author      string
	Language    string
	Styles      []string
	Scripts     []string
}

type testEntry struct {
	Name string
	URL  string
}

type testContext struct {
	Site testSite
	Page testPage
	Nav  []testEntry
}

func pageContext() testContext {
	return testContext{
		Site: testSite{
			Title:    "My Blog",
			Language: "en",
			Styles:   []string{"/assets/site.css"},
			Scripts:  []string{"/assets/nav.js"},
		},
		Page: testPage{
			Title:   "About",
			Content: template.HTML("<h2 id=\"who-am-i\">Who am I?</h2><p>Hi.</p>"),
		},
		Nav: []testEntry{
			{Name: "About", URL: "/about.html"},
		},
	}
}

func TestEngineRendersDefaultPageLayout(t *testing.T) {
	engine, err := New(Config{Fs: afero.NewMemMapFs()})
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	out, err := engine.RenderTemplate(LayoutPage, pageContext())
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	for _, want := range []string{
		"<title>About &middot; My Blog</title>",
		`<a href="/about.html">About</a>`,
		"<h2 id=\"who-am-i\">Who am I?</h2>",
		"site-nav__toggle",
		`<link rel="stylesheet" href="/assets/site.css">`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected output to contain %q, got:\n%s", want, out)
		}
	}

	if strings.Contains(out, "class=\"toc\"") {
		t.Fatal("TOC block should be absent when showTOC is unset")
	}
}

func TestEngineRendersTOCBlock(t *testing.T) {
	engine, err := New(Config{Fs: afero.NewMemMapFs()})
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	ctx := pageContext()
	ctx.Page.ShowTOC = true
	ctx.Page.TOC = []testHeading{
		{Level: 2, Text: "Who am I?", Anchor: "who-am-i"},
		{Level: 3, Text: "Background", Anchor: "background"},
	}

	out, err := engine.RenderTemplate(LayoutPage, ctx)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, `href="#who-am-i"`) || !strings.Contains(out, `href="#background"`) {
		t.Fatalf("expected TOC anchors in output:\n%s", out)
	}
}

func TestEngineUnknownLayout(t *testing.T) {
	engine, err := New(Config{Fs: afero.NewMemMapFs()})
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	if _, err := engine.RenderTemplate("missing", nil); err == nil {
		t.Fatal("expected error for unknown layout")
	}
}

func TestEngineDirectoryOverride(t *testing.T) {
	fsys := afero.NewMemMapFs()
	if err := afero.WriteFile(fsys, "templates/page.html", []byte("custom: {{ .Page.Title }}"), 0o644); err != nil {
		t.Fatalf("write override: %v", err)
	}

	engine, err := New(Config{Dir: "templates", Fs: fsys})
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	out, err := engine.RenderTemplate(LayoutPage, pageContext())
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out != "custom: About" {
		t.Fatalf("expected override layout, got %q", out)
	}
}

func TestEngineRegisteredPartials(t *testing.T) {
	engine, err := New(Config{Fs: afero.NewMemMapFs()})
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	engine.RegisterPartial("badge", `<span class="badge">{{ . }}</span>`)
	if err := engine.Reload(); err != nil {
		t.Fatalf("reload: %v", err)
	}

	out, err := engine.RenderString(`{{ template "badge" "hello" }}`, nil)
	if err != nil {
		t.Fatalf("render string: %v", err)
	}
	if !strings.Contains(out, `<span class="badge">hello</span>`) {
		t.Fatalf("expected partial expansion, got %q", out)
	}
}

func TestEngineRenderStringWithWriter(t *testing.T) {
	engine, err := New(Config{Fs: afero.NewMemMapFs()})
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	var sink strings.Builder
	out, err := engine.RenderString("hello {{ . }}", "world", &sink)
	if err != nil {
		t.Fatalf("render string: %v", err)
	}
	if out != "hello world" || sink.String() != "hello world" {
		t.Fatalf("expected identical return and writer output, got %q and %q", out, sink.String())
	}
}
