package generator

import (
	"fmt"
	"html"
	"sort"
	"strings"
	"time"
)

const maxFeedItems = 100

type feedItem struct {
	Title       string
	Link        string
	GUID        string
	PublishedAt time.Time
}

// buildFeedItems derives RSS items from the emitted pages. Only dated pages
// participate: the feed orders by publication date and an undated page has no
// stable position. Ordering ties break on GUID so the feed is deterministic.
func buildFeedItems(baseURL string, pages []pageFeedSource) []feedItem {
	items := make([]feedItem, 0, len(pages))
	seen := map[string]struct{}{}

	for _, page := range pages {
		if page.Date.IsZero() {
			continue
		}
		link := absoluteURL(baseURL, page.Route)
		if _, ok := seen[link]; ok {
			continue
		}
		seen[link] = struct{}{}

		title := strings.TrimSpace(page.Title)
		if title == "" {
			title = page.Route
		}
		items = append(items, feedItem{
			Title:       title,
			Link:        link,
			GUID:        link,
			PublishedAt: page.Date,
		})
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].PublishedAt.Equal(items[j].PublishedAt) {
			return items[i].GUID < items[j].GUID
		}
		return items[i].PublishedAt.After(items[j].PublishedAt)
	})

	if len(items) > maxFeedItems {
		items = append([]feedItem(nil), items[:maxFeedItems]...)
	}
	return items
}

// pageFeedSource is the slice of page data the feed builder needs.
type pageFeedSource struct {
	Title string
	Route string
	Date  time.Time
}

// buildFeed renders RSS 2.0. No lastBuildDate is emitted: the feed must stay
// byte-identical across rebuilds of unchanged content.
func buildFeed(site SiteMetadata, items []feedItem) string {
	var builder strings.Builder
	builder.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	builder.WriteString(`<rss version="2.0">` + "\n")
	builder.WriteString("  <channel>\n")
	builder.WriteString(fmt.Sprintf("    <title>%s</title>\n", html.EscapeString(site.Title)))
	builder.WriteString(fmt.Sprintf("    <link>%s</link>\n", absoluteURL(site.BaseURL, "/")))
	if desc := strings.TrimSpace(site.Description); desc != "" {
		builder.WriteString(fmt.Sprintf("    <description>%s</description>\n", html.EscapeString(desc)))
	} else {
		builder.WriteString(fmt.Sprintf("    <description>%s</description>\n", html.EscapeString(site.Title)))
	}
	if lang := strings.TrimSpace(site.Language); lang != "" {
		builder.WriteString(fmt.Sprintf("    <language>%s</language>\n", html.EscapeString(lang)))
	}
	for _, item := range items {
		builder.WriteString("    <item>\n")
		builder.WriteString(fmt.Sprintf("      <title>%s</title>\n", html.EscapeString(item.Title)))
		builder.WriteString(fmt.Sprintf("      <link>%s</link>\n", item.Link))
		builder.WriteString(fmt.Sprintf("      <guid>%s</guid>\n", item.GUID))
		builder.WriteString(fmt.Sprintf("      <pubDate>%s</pubDate>\n", item.PublishedAt.UTC().Format(time.RFC1123Z)))
		builder.WriteString("    </item>\n")
	}
	builder.WriteString("  </channel>\n")
	builder.WriteString("</rss>\n")
	return builder.String()
}
