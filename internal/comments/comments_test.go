package comments

import (
	"strings"
	"testing"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

func TestBuilderDisabledWithoutProvider(t *testing.T) {
	builder := NewBuilder(Config{})
	if builder.Enabled() {
		t.Fatal("expected builder to be disabled")
	}
	fm := interfaces.FrontMatter{UseComments: true}
	if out := builder.Placeholder(fm, "about.html"); out != "" {
		t.Fatalf("expected empty placeholder, got %q", out)
	}
}

func TestBuilderRespectsFrontMatterOptOut(t *testing.T) {
	builder := NewBuilder(Config{Provider: ProviderDisqus, DisqusShortname: "myblog"})
	if out := builder.Placeholder(interfaces.FrontMatter{}, "about.html"); out != "" {
		t.Fatalf("pages without useComments get no placeholder, got %q", out)
	}
}

func TestBuilderDisqusPlaceholder(t *testing.T) {
	builder := NewBuilder(Config{Provider: ProviderDisqus, DisqusShortname: "myblog"})
	fm := interfaces.FrontMatter{UseComments: true, DisqusID: "about-thread"}

	out := string(builder.Placeholder(fm, "about.html"))
	for _, want := range []string{"disqus_thread", "myblog.disqus.com", "about-thread"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected placeholder to contain %q, got %s", want, out)
		}
	}
}

func TestBuilderDisqusFallsBackToPagePath(t *testing.T) {
	builder := NewBuilder(Config{Provider: ProviderDisqus, DisqusShortname: "myblog"})
	fm := interfaces.FrontMatter{UseComments: true}

	out := string(builder.Placeholder(fm, "posts/first.html"))
	if !strings.Contains(out, "posts/first.html") {
		t.Fatalf("expected page path identifier fallback, got %s", out)
	}
}

func TestBuilderUtterancesIssueNumber(t *testing.T) {
	builder := NewBuilder(Config{Provider: ProviderUtterances, UtterancesRepo: "me/blog-comments"})
	fm := interfaces.FrontMatter{UseComments: true, UtteranceNum: 42}

	out := string(builder.Placeholder(fm, "about.html"))
	for _, want := range []string{"utteranc.es/client.js", `repo="me/blog-comments"`, `issue-number="42"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected placeholder to contain %q, got %s", want, out)
		}
	}
}

func TestBuilderUtterancesPathnameDefault(t *testing.T) {
	builder := NewBuilder(Config{Provider: ProviderUtterances, UtterancesRepo: "me/blog-comments"})
	fm := interfaces.FrontMatter{UseComments: true}

	out := string(builder.Placeholder(fm, "about.html"))
	if !strings.Contains(out, `issue-term="pathname"`) {
		t.Fatalf("expected pathname issue term, got %s", out)
	}
}

func TestBuilderMissingAccountIdentifiers(t *testing.T) {
	fm := interfaces.FrontMatter{UseComments: true}

	if out := NewBuilder(Config{Provider: ProviderDisqus}).Placeholder(fm, "a.html"); out != "" {
		t.Fatalf("disqus without shortname should emit nothing, got %q", out)
	}
	if out := NewBuilder(Config{Provider: ProviderUtterances}).Placeholder(fm, "a.html"); out != "" {
		t.Fatalf("utterances without repo should emit nothing, got %q", out)
	}
}
