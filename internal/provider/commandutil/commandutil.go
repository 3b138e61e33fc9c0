// Package commandutil runs external commands on behalf of pipeline stages.
package commandutil

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/felixgeelhaar/dockerup/internal/domain/pipeline"
	"github.com/felixgeelhaar/dockerup/internal/ports"
)

// IsCommandNotFound reports whether an error indicates a missing executable.
func IsCommandNotFound(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, exec.ErrNotFound) {
		return true
	}
	var execErr *exec.Error
	if errors.As(err, &execErr) && errors.Is(execErr.Err, exec.ErrNotFound) {
		return true
	}
	var pathErr *os.PathError
	if errors.As(err, &pathErr) && errors.Is(pathErr.Err, os.ErrNotExist) {
		return true
	}
	return false
}

// Run executes a command that must succeed. A start failure or non-zero exit
// is returned as a StageError carrying code and message. Context
// cancellation is returned unwrapped.
func Run(ctx context.Context, runner ports.CommandRunner, code, message, command string, args ...string) (ports.CommandResult, error) {
	result, err := runner.Run(ctx, command, args...)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return result, ctxErr
		}
		if IsCommandNotFound(err) {
			return result, pipeline.NewStageError(code, message).
				WithUnderlying(fmt.Errorf("%s: command not found: %w", command, err)).
				WithSuggestion(fmt.Sprintf("Install %s and make sure it is on PATH.", command))
		}
		return result, pipeline.NewStageError(code, message).WithUnderlying(err)
	}

	if !result.Success() {
		detail := result.Stderr
		if detail == "" {
			detail = result.Stdout
		}
		if detail == "" {
			detail = fmt.Sprintf("exit status %d", result.ExitCode)
		}
		return result, pipeline.CommandFailed(code, message, detail)
	}

	return result, nil
}

// Probe executes a command whose failure is tolerated and reports whether
// it started and exited zero.
func Probe(ctx context.Context, runner ports.CommandRunner, command string, args ...string) (ports.CommandResult, bool) {
	result, err := runner.Run(ctx, command, args...)
	if err != nil {
		return result, false
	}
	return result, result.Success()
}
