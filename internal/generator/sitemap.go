package generator

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// buildSitemap renders sitemap XML for the emitted pages. Last-modified
// stamps come from document modification times only, never the build clock,
// so unchanged input keeps the sitemap byte-identical.
func buildSitemap(baseURL string, pages []RenderedPage) string {
	entries := make([]RenderedPage, 0, len(pages))
	seen := map[string]struct{}{}
	for _, page := range pages {
		location := absoluteURL(baseURL, page.Route)
		if _, ok := seen[location]; ok {
			continue
		}
		seen[location] = struct{}{}
		entries = append(entries, page)
	}

	sort.Slice(entries, func(i, j int) bool {
		return absoluteURL(baseURL, entries[i].Route) < absoluteURL(baseURL, entries[j].Route)
	})

	var builder strings.Builder
	builder.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	builder.WriteString(`<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">` + "\n")
	for _, entry := range entries {
		builder.WriteString("  <url>\n")
		builder.WriteString(fmt.Sprintf("    <loc>%s</loc>\n", absoluteURL(baseURL, entry.Route)))
		if !entry.LastModified.IsZero() {
			builder.WriteString(fmt.Sprintf("    <lastmod>%s</lastmod>\n", entry.LastModified.UTC().Format(time.RFC3339)))
		}
		builder.WriteString("  </url>\n")
	}
	builder.WriteString("</urlset>\n")
	return builder.String()
}

func buildRobots(baseURL string, includeSitemap bool) string {
	var builder strings.Builder
	builder.WriteString("User-agent: *\n")
	builder.WriteString("Allow: /\n")
	if includeSitemap {
		builder.WriteString("\n")
		builder.WriteString(fmt.Sprintf("Sitemap: %s\n", absoluteURL(baseURL, "/sitemap.xml")))
	}
	return builder.String()
}
