// Package mocks provides in-memory test doubles for the ports interfaces.
package mocks

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/felixgeelhaar/dockerup/internal/ports"
)

// ErrUnexpectedCommand is returned for a command with no registered response.
var ErrUnexpectedCommand = errors.New("no mock result for command")

type response struct {
	result ports.CommandResult
	err    error
}

// CommandRunner answers commands from a table keyed by the exact command
// and arguments, and records every call. It is safe for concurrent use.
type CommandRunner struct {
	mu         sync.Mutex
	responses  map[string]response
	calls      []ports.CommandCall
	unexpected []ports.CommandCall
}

// NewCommandRunner creates an empty CommandRunner.
func NewCommandRunner() *CommandRunner {
	return &CommandRunner{responses: make(map[string]response)}
}

func key(command string, args []string) string {
	return strings.Join(append([]string{command}, args...), "\x00")
}

// AddResult registers the result for command with exactly args.
func (m *CommandRunner) AddResult(command string, args []string, result ports.CommandResult) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[key(command, args)] = response{result: result}
}

// AddError registers an execution error for command with exactly args.
func (m *CommandRunner) AddError(command string, args []string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[key(command, args)] = response{err: err}
}

// Run records the call and returns the registered response.
func (m *CommandRunner) Run(_ context.Context, command string, args ...string) (ports.CommandResult, error) {
	call := ports.CommandCall{Command: command, Args: append([]string(nil), args...)}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, call)

	resp, ok := m.responses[key(command, args)]
	if !ok {
		m.unexpected = append(m.unexpected, call)
		return ports.CommandResult{}, fmt.Errorf("%w: %s", ErrUnexpectedCommand, call.String())
	}
	return resp.result, resp.err
}

// Calls returns every recorded call in order.
func (m *CommandRunner) Calls() []ports.CommandCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]ports.CommandCall(nil), m.calls...)
}

// Commands returns the recorded calls rendered as command lines.
func (m *CommandRunner) Commands() []string {
	calls := m.Calls()
	out := make([]string, len(calls))
	for i, c := range calls {
		out[i] = c.String()
	}
	return out
}

// Unexpected returns the calls that had no registered response.
func (m *CommandRunner) Unexpected() []ports.CommandCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]ports.CommandCall(nil), m.unexpected...)
}

// Reset forgets all responses and calls.
func (m *CommandRunner) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = make(map[string]response)
	m.calls = nil
	m.unexpected = nil
}

var _ ports.CommandRunner = (*CommandRunner)(nil)
