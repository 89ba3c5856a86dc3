package generator

import (
	"path"
	"strings"
)

// OutputPath maps a source content path onto its emitted file: the directory
// layout mirrors the source tree and the extension normalizes to .html. The
// mapping is a pure function of the source path so repeated builds land on
// the same file.
func OutputPath(sourcePath string) string {
	cleaned := path.Clean(strings.ReplaceAll(strings.TrimSpace(sourcePath), "\\", "/"))
	cleaned = strings.TrimPrefix(cleaned, "/")
	if cleaned == "" || cleaned == "." {
		return "index.html"
	}

	ext := path.Ext(cleaned)
	switch strings.ToLower(ext) {
	case ".md", ".markdown":
		cleaned = strings.TrimSuffix(cleaned, ext) + ".html"
	case ".html", ".htm":
	default:
		cleaned += ".html"
	}
	return cleaned
}

// RouteFor returns the site-relative URL for a source path.
func RouteFor(sourcePath string) string {
	return "/" + OutputPath(sourcePath)
}

func joinOutputPath(baseDir, rel string) string {
	baseDir = strings.Trim(strings.TrimSpace(baseDir), "/")
	rel = strings.TrimLeft(strings.TrimSpace(rel), "/")
	if baseDir == "" {
		return rel
	}
	if rel == "" {
		return baseDir
	}
	return path.Join(baseDir, rel)
}

func absoluteURL(baseURL, route string) string {
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	route = strings.TrimSpace(route)
	if route == "" {
		route = "/"
	}
	if !strings.HasPrefix(route, "/") {
		route = "/" + route
	}
	return base + route
}
