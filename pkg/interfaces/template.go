package interfaces

import (
	"io"
)

// TemplateRenderer expands a named layout with the supplied data. When an
// optional writer is provided the rendered output is additionally streamed
// into it.
type TemplateRenderer interface {
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
}
