package pipeline

import (
	"context"

	"github.com/felixgeelhaar/dockerup/internal/ports"
)

// RunContext provides context for stage execution.
type RunContext struct {
	ctx    context.Context
	logger ports.Logger
}

// NewRunContext creates a new RunContext.
func NewRunContext(ctx context.Context, logger ports.Logger) RunContext {
	return RunContext{
		ctx:    ctx,
		logger: logger,
	}
}

// Context returns the underlying context.Context.
func (r RunContext) Context() context.Context {
	return r.ctx
}

// Logger returns the run logger.
func (r RunContext) Logger() ports.Logger {
	return r.logger
}

// WithLogger returns a new RunContext using logger.
func (r RunContext) WithLogger(logger ports.Logger) RunContext {
	return RunContext{
		ctx:    r.ctx,
		logger: logger,
	}
}
