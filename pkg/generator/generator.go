// Package generator exposes the static site generation API for go-blog hosts.
// Use NewService with Config and Dependencies to render pages, nav assets,
// sitemaps, and feeds outside the full module façade.
package generator

import internal "github.com/goliatone/go-blog/internal/generator"

type (
	Service          = internal.Service
	Config           = internal.Config
	NavSettings      = internal.NavSettings
	ThemingConfig    = internal.ThemingConfig
	BuildOptions     = internal.BuildOptions
	BuildResult      = internal.BuildResult
	RenderedPage     = internal.RenderedPage
	RenderDiagnostic = internal.RenderDiagnostic
	RenderError      = internal.RenderError
	Dependencies     = internal.Dependencies
)

var (
	ErrRender           = internal.ErrRender
	ErrContentRequired  = internal.ErrContentRequired
	ErrRendererRequired = internal.ErrRendererRequired
	ErrStorageRequired  = internal.ErrStorageRequired
)

// NewService wires a static site generator with the supplied configuration and dependencies.
func NewService(cfg Config, deps Dependencies) Service {
	return internal.NewService(cfg, deps)
}

// NewFilesystemStorage returns artifact storage over the given afero filesystem,
// defaulting to the OS filesystem when nil.
var NewFilesystemStorage = internal.NewFilesystemStorage

// OutputPath maps a source document path to its generated artifact path.
var OutputPath = internal.OutputPath

// RouteFor maps a source document path to its served route.
var RouteFor = internal.RouteFor
