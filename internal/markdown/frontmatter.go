package markdown

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/adrg/frontmatter"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

// ParseFrontMatter extracts metadata and Markdown body content from the
// provided source bytes. A document without a front-matter delimiter pair is
// malformed; the error wraps ErrMalformedDocument so callers can classify it.
func ParseFrontMatter(source []byte) (interfaces.FrontMatter, []byte, error) {
	var meta frontMatterEnvelope

	reader := bytes.NewReader(source)
	body, err := frontmatter.MustParse(reader, &meta)
	if err != nil {
		if errors.Is(err, frontmatter.ErrNotFound) {
			return interfaces.FrontMatter{}, nil, fmt.Errorf("%w: missing front-matter delimiters", ErrMalformedDocument)
		}
		return interfaces.FrontMatter{}, nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}

	return envelopeToFrontMatter(meta), body, nil
}

// BuildDocument assembles an interfaces.Document from the supplied path, raw
// content, and modification time. BodyHTML is intentionally left empty so
// callers can render lazily.
func BuildDocument(path string, source []byte, modified time.Time) (*interfaces.Document, error) {
	fm, body, err := ParseFrontMatter(source)
	if err != nil {
		return nil, &MalformedDocumentError{Path: path, Cause: err}
	}

	return &interfaces.Document{
		Path:         path,
		FrontMatter:  fm,
		Body:         body,
		LastModified: modified,
	}, nil
}

type menuEntryEnvelope struct {
	Name   string `yaml:"name" toml:"name" json:"name"`
	Weight int    `yaml:"weight" toml:"weight" json:"weight"`
}

type frontMatterEnvelope struct {
	Title        string                       `yaml:"title" toml:"title" json:"title"`
	Date         time.Time                    `yaml:"date" toml:"date" json:"date"`
	Draft        bool                         `yaml:"draft" toml:"draft" json:"draft"`
	Menu         map[string]menuEntryEnvelope `yaml:"menu" toml:"menu" json:"menu"`
	ShowTOC      bool                         `yaml:"showTOC" toml:"showTOC" json:"showTOC"`
	UseComments  bool                         `yaml:"useComments" toml:"useComments" json:"useComments"`
	DisqusID     string                       `yaml:"disqusIdentifier" toml:"disqusIdentifier" json:"disqusIdentifier"`
	UtteranceNum int                          `yaml:"utterenceIssueNumber" toml:"utterenceIssueNumber" json:"utterenceIssueNumber"`
	Image        string                       `yaml:"image" toml:"image" json:"image"`
	ImageCredit  string                       `yaml:"imageCredit" toml:"imageCredit" json:"imageCredit"`
	Keywords     []string                     `yaml:"keywords" toml:"keywords" json:"keywords"`
	Custom       map[string]any               `yaml:",inline"`
}

func envelopeToFrontMatter(env frontMatterEnvelope) interfaces.FrontMatter {
	custom := normalizeMap(env.Custom)

	raw := make(map[string]any, len(custom)+10)
	for key, value := range custom {
		raw[key] = value
	}

	if env.Title != "" {
		raw["title"] = env.Title
	}
	if !env.Date.IsZero() {
		raw["date"] = env.Date
	}
	raw["draft"] = env.Draft
	raw["showTOC"] = env.ShowTOC
	if env.UseComments {
		raw["useComments"] = env.UseComments
	}
	if env.DisqusID != "" {
		raw["disqusIdentifier"] = env.DisqusID
	}
	if env.UtteranceNum != 0 {
		raw["utterenceIssueNumber"] = env.UtteranceNum
	}
	if env.Image != "" {
		raw["image"] = env.Image
	}
	if env.ImageCredit != "" {
		raw["imageCredit"] = env.ImageCredit
	}
	if len(env.Keywords) > 0 {
		raw["keywords"] = append([]string(nil), env.Keywords...)
	}
	if len(env.Menu) > 0 {
		menus := make(map[string]any, len(env.Menu))
		for menuName, entry := range env.Menu {
			menus[menuName] = map[string]any{
				"name":   entry.Name,
				"weight": entry.Weight,
			}
		}
		raw["menu"] = menus
	}

	var menu map[string]interfaces.MenuEntry
	if len(env.Menu) > 0 {
		menu = make(map[string]interfaces.MenuEntry, len(env.Menu))
		for menuName, entry := range env.Menu {
			menu[menuName] = interfaces.MenuEntry{
				Name:   entry.Name,
				Weight: entry.Weight,
			}
		}
	}

	return interfaces.FrontMatter{
		Title:        env.Title,
		Date:         env.Date,
		Draft:        env.Draft,
		Menu:         menu,
		ShowTOC:      env.ShowTOC,
		UseComments:  env.UseComments,
		DisqusID:     env.DisqusID,
		UtteranceNum: env.UtteranceNum,
		Image:        env.Image,
		ImageCredit:  env.ImageCredit,
		Keywords:     append([]string(nil), env.Keywords...),
		Custom:       custom,
		Raw:          raw,
	}
}

// normalizeMap rewrites YAML-decoded values into JSON-compatible shapes
// (map[string]any keys throughout) so the raw mapping can be validated
// against a JSON schema and marshalled without surprises.
func normalizeMap(input map[string]any) map[string]any {
	out := make(map[string]any, len(input))
	for key, value := range input {
		out[key] = normalizeValue(value)
	}
	return out
}

func normalizeValue(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		return normalizeMap(typed)
	case map[any]any:
		out := make(map[string]any, len(typed))
		for key, val := range typed {
			out[fmt.Sprint(key)] = normalizeValue(val)
		}
		return out
	case []any:
		out := make([]any, len(typed))
		for i, val := range typed {
			out[i] = normalizeValue(val)
		}
		return out
	default:
		return value
	}
}
