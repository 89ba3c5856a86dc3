package staticcmd

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-blog/internal/generator"
	"github.com/google/uuid"
)

const (
	buildSiteMessageType = "blog.static.build"
	cleanSiteMessageType = "blog.static.clean"
)

const maxWorkers = 64

// ResultCallback receives build results produced by generator operations. The
// callback is optional and is invoked synchronously once a result is available.
type ResultCallback func(ResultEnvelope)

// ResultEnvelope captures the outcome of a static command execution.
type ResultEnvelope struct {
	BuildID  uuid.UUID
	Result   *generator.BuildResult
	Metadata map[string]any
}

// BuildSiteCommand runs a full site build.
type BuildSiteCommand struct {
	DryRun         bool           `json:"dry_run,omitempty"`
	Workers        int            `json:"workers,omitempty"`
	ResultCallback ResultCallback `json:"-"`
}

// Type implements command.Message.
func (BuildSiteCommand) Type() string { return buildSiteMessageType }

// Validate ensures the worker count stays within a sane range.
func (m BuildSiteCommand) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.Workers, validation.Min(0), validation.Max(maxWorkers)),
	)
}

// CleanSiteCommand removes previously generated artifacts from the output directory.
type CleanSiteCommand struct{}

// Type implements command.Message.
func (CleanSiteCommand) Type() string { return cleanSiteMessageType }

// Validate satisfies command.Message; there are no payload constraints.
func (CleanSiteCommand) Validate() error { return nil }

func invokeCallback(cb ResultCallback, envelope ResultEnvelope) {
	if cb == nil {
		return
	}
	cb(envelope)
}
