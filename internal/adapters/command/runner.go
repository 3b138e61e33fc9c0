// Package command runs host commands for the installer.
package command

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"syscall"
	"time"

	"github.com/felixgeelhaar/dockerup/internal/ports"
)

// StableLocale makes tool output (docker --version, dpkg) parseable regardless of the host locale.
const StableLocale = "LC_ALL=C"

// DefaultCancelGrace is how long a cancelled command may take to exit
// after SIGTERM before it is killed.
const DefaultCancelGrace = 10 * time.Second

// RealRunner runs commands with os/exec.
type RealRunner struct {
	env   []string
	grace time.Duration
}

// RunnerOption configures a RealRunner.
type RunnerOption func(*RealRunner)

// WithEnv adds KEY=value pairs on top of the inherited environment.
func WithEnv(kv ...string) RunnerOption {
	return func(r *RealRunner) {
		r.env = append(r.env, kv...)
	}
}

// WithCancelGrace sets how long a cancelled command gets between SIGTERM
// and SIGKILL.
func WithCancelGrace(d time.Duration) RunnerOption {
	return func(r *RealRunner) {
		r.grace = d
	}
}

// NewRealRunner creates a RealRunner.
func NewRealRunner(opts ...RunnerOption) *RealRunner {
	r := &RealRunner{grace: DefaultCancelGrace}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes command and waits for it. A non-zero exit status is
// reported in the result; the error is reserved for commands that could
// not run and for cancellation.
//
// Cancellation sends SIGTERM rather than SIGKILL: sudo relays it to its
// child and restores the terminal it put into no-echo mode. A command
// still running after the grace period is killed.
func (r *RealRunner) Run(ctx context.Context, command string, args ...string) (ports.CommandResult, error) {
	var stdout, stderr bytes.Buffer

	cmd := exec.CommandContext(ctx, command, args...)
	cmd.Cancel = func() error {
		return cmd.Process.Signal(syscall.SIGTERM)
	}
	cmd.WaitDelay = r.grace
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if len(r.env) > 0 {
		cmd.Env = append(os.Environ(), r.env...)
	}

	runErr := cmd.Run()
	result := ports.CommandResult{Stdout: stdout.String(), Stderr: stderr.String()}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return result, ctxErr
	}

	var exitErr *exec.ExitError
	switch {
	case runErr == nil:
		return result, nil
	case errors.As(runErr, &exitErr):
		result.ExitCode = exitErr.ExitCode()
		return result, nil
	default:
		return result, runErr
	}
}

var _ ports.CommandRunner = (*RealRunner)(nil)
