package analyze

import (
	"context"

	"github.com/yaklabco/gorslint/pkg/config"
	"github.com/yaklabco/gorslint/pkg/rsyntax"
)

// Context carries the inputs for one analyzer run over a single file.
type Context struct {
	// Ctx is the cancellation context for the run.
	Ctx context.Context

	// File is the parsed snapshot under analysis.
	File *rsyntax.FileSnapshot

	// Config is the effective configuration (never nil).
	Config *config.Config
}

// NewContext creates an analyzer context for one file.
func NewContext(ctx context.Context, file *rsyntax.FileSnapshot, cfg *config.Config) *Context {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return &Context{
		Ctx:    ctx,
		File:   file,
		Config: cfg,
	}
}

// Cancelled returns the context error if the run was cancelled.
func (c *Context) Cancelled() error {
	return c.Ctx.Err()
}
