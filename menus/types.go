// Package menus exposes the navigation menu registry for go-blog hosts.
package menus

import internal "github.com/goliatone/go-blog/internal/menus"

type (
	Registry      = internal.Registry
	Entry         = internal.Entry
	ConflictError = internal.ConflictError
)

var ErrUnresolvableReference = internal.ErrUnresolvableReference

// NewRegistry constructs an empty menu registry.
var NewRegistry = internal.NewRegistry
