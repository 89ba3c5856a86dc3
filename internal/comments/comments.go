// Package comments renders the per-page comment-widget placeholder. The
// generator stays static: the placeholder is inert markup the configured
// provider's client script hydrates in the browser.
package comments

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

// Supported providers.
const (
	ProviderDisqus     = "disqus"
	ProviderUtterances = "utterances"
)

// Config selects the comment provider and its account-level identifiers.
type Config struct {
	Provider        string
	DisqusShortname string
	UtterancesRepo  string
}

// Builder produces comment placeholders for rendered pages.
type Builder struct {
	provider  string
	shortname string
	repo      string
}

// NewBuilder constructs a Builder. An empty provider disables comments for
// every page regardless of front matter.
func NewBuilder(cfg Config) *Builder {
	return &Builder{
		provider:  strings.ToLower(strings.TrimSpace(cfg.Provider)),
		shortname: strings.TrimSpace(cfg.DisqusShortname),
		repo:      strings.TrimSpace(cfg.UtterancesRepo),
	}
}

// Enabled reports whether any provider is configured.
func (b *Builder) Enabled() bool {
	return b.provider != ""
}

// Placeholder returns the comment-widget markup for a page, or empty when the
// page opts out via front matter or no provider is configured.
func (b *Builder) Placeholder(fm interfaces.FrontMatter, pagePath string) template.HTML {
	if !b.Enabled() || !fm.UseComments {
		return ""
	}

	switch b.provider {
	case ProviderDisqus:
		return b.disqus(fm, pagePath)
	case ProviderUtterances:
		return b.utterances(fm)
	default:
		return ""
	}
}

func (b *Builder) disqus(fm interfaces.FrontMatter, pagePath string) template.HTML {
	if b.shortname == "" {
		return ""
	}
	identifier := strings.TrimSpace(fm.DisqusID)
	if identifier == "" {
		identifier = pagePath
	}
	markup := fmt.Sprintf(`<div id="disqus_thread" data-shortname="%s" data-identifier="%s"></div>
<script>
  var disqus_config = function () {
    this.page.identifier = %q;
  };
  (function () {
    var d = document, s = d.createElement('script');
    s.src = 'https://%s.disqus.com/embed.js';
    s.setAttribute('data-timestamp', +new Date());
    (d.head || d.body).appendChild(s);
  })();
</script>`,
		template.HTMLEscapeString(b.shortname),
		template.HTMLEscapeString(identifier),
		identifier,
		template.HTMLEscapeString(b.shortname),
	)
	return template.HTML(markup)
}

func (b *Builder) utterances(fm interfaces.FrontMatter) template.HTML {
	if b.repo == "" {
		return ""
	}
	issue := `issue-term="pathname"`
	if fm.UtteranceNum > 0 {
		issue = fmt.Sprintf(`issue-number="%d"`, fm.UtteranceNum)
	}
	markup := fmt.Sprintf(`<script src="https://utteranc.es/client.js" repo="%s" %s label="comments" theme="github-light" crossorigin="anonymous" async></script>`,
		template.HTMLEscapeString(b.repo), issue)
	return template.HTML(markup)
}
