// Package toc extracts tables of contents from rendered page bodies. Anchor
// assignment happens here rather than in the Markdown renderer so the slug
// policy lives in one place.
package toc

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/goliatone/go-slug"
)

// Heading is one table-of-contents row in emission order.
type Heading struct {
	// Level is the heading depth: 2 for h2, 3 for h3.
	Level int
	// Text is the heading's visible text.
	Text string
	// Anchor is the id attribute assigned to the heading element.
	Anchor string
}

// Extract walks the rendered body HTML, assigns a stable anchor to every h2
// and h3 heading, and returns the annotated HTML together with the headings in
// emission order. Anchors derive from the lower-cased, hyphenated heading
// text; a repeated slug gains a numeric suffix starting at 2. Headings that
// already carry an id keep it.
func Extract(bodyHTML []byte) ([]byte, []Heading, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(bodyHTML))
	if err != nil {
		return nil, nil, fmt.Errorf("toc: parse body: %w", err)
	}

	var headings []Heading
	seen := map[string]int{}

	// Reserve every explicit id up front so derived anchors never collide
	// with one, regardless of document order.
	doc.Find("h2, h3").Each(func(_ int, sel *goquery.Selection) {
		if id, ok := sel.Attr("id"); ok && strings.TrimSpace(id) != "" {
			seen[id]++
		}
	})

	doc.Find("h2, h3").Each(func(_ int, sel *goquery.Selection) {
		level := 2
		if goquery.NodeName(sel) == "h3" {
			level = 3
		}

		text := strings.TrimSpace(sel.Text())

		anchor, existing := sel.Attr("id")
		if !existing || strings.TrimSpace(anchor) == "" {
			anchor = dedupe(seen, slugify(text))
			sel.SetAttr("id", anchor)
		}

		headings = append(headings, Heading{
			Level:  level,
			Text:   text,
			Anchor: anchor,
		})
	})

	annotated, err := doc.Find("body").Html()
	if err != nil {
		return nil, nil, fmt.Errorf("toc: serialise body: %w", err)
	}

	return []byte(annotated), headings, nil
}

func slugify(text string) string {
	normalized, err := slug.Normalize(text)
	if err != nil || normalized == "" {
		return "section"
	}
	return normalized
}

// dedupe returns base on first use and base-N (N starting at 2) afterwards.
func dedupe(seen map[string]int, base string) string {
	seen[base]++
	count := seen[base]
	if count == 1 {
		return base
	}
	candidate := fmt.Sprintf("%s-%d", base, count)
	for seen[candidate] > 0 {
		count++
		candidate = fmt.Sprintf("%s-%d", base, count)
	}
	seen[candidate]++
	return candidate
}
