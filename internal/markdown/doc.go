// Package markdown discovers content files, splits front matter from body,
// validates metadata, and renders Markdown bodies into HTML.
package markdown
