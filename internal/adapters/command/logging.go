package command

import (
	"context"
	"strings"

	"github.com/felixgeelhaar/dockerup/internal/ports"
)

// LoggingRunner decorates a CommandRunner and records every invocation
// and its output at debug level.
type LoggingRunner struct {
	inner  ports.CommandRunner
	logger ports.Logger
}

// NewLoggingRunner wraps inner with debug logging.
func NewLoggingRunner(inner ports.CommandRunner, logger ports.Logger) *LoggingRunner {
	return &LoggingRunner{inner: inner, logger: logger}
}

// Run executes the command through the wrapped runner.
func (r *LoggingRunner) Run(ctx context.Context, command string, args ...string) (ports.CommandResult, error) {
	call := ports.CommandCall{Command: command, Args: args}
	r.logger.Debug(ctx, "exec "+call.String())

	result, err := r.inner.Run(ctx, command, args...)
	if err != nil {
		r.logger.Debug(ctx, "exec failed", ports.F("command", command), ports.F("error", err))
		return result, err
	}

	if out := strings.TrimSpace(result.Combined()); out != "" {
		r.logger.Debug(ctx, out, ports.F("exit", result.ExitCode))
	}
	return result, nil
}

// Ensure LoggingRunner implements ports.CommandRunner.
var _ ports.CommandRunner = (*LoggingRunner)(nil)
