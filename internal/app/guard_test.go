package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/felixgeelhaar/dockerup/internal/app"
	"github.com/felixgeelhaar/dockerup/internal/domain/pipeline"
	"github.com/felixgeelhaar/dockerup/internal/ports"
	"github.com/felixgeelhaar/dockerup/internal/testutil/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func alice() (app.Identity, error) {
	return app.Identity{Username: "alice", HomeDir: "/home/alice"}, nil
}

func uid(n int) func() int {
	return func() int { return n }
}

// blockingRunner waits for the context like a sudo password prompt would.
type blockingRunner struct{}

func (blockingRunner) Run(ctx context.Context, _ string, _ ...string) (ports.CommandResult, error) {
	<-ctx.Done()
	return ports.CommandResult{}, ctx.Err()
}

func runGuard(t *testing.T, g *app.GuardStage) error {
	t.Helper()
	return g.Run(pipeline.NewRunContext(context.Background(), mocks.NewLogger()))
}

func TestGuard_ResolvesIdentity(t *testing.T) {
	t.Parallel()

	runner := mocks.NewCommandRunner()
	runner.AddResult("sudo", []string{"-v"}, ports.CommandResult{})
	g := app.NewGuardStage(uid(1000), alice, runner, time.Minute)

	require.NoError(t, runGuard(t, g))
	assert.Equal(t, "alice", g.Username())
	assert.Equal(t, "/home/alice", g.HomeDir())
	assert.Equal(t, []string{"sudo -v"}, runner.Commands())
}

func TestGuard_RejectsRoot(t *testing.T) {
	t.Parallel()

	runner := mocks.NewCommandRunner()
	err := runGuard(t, app.NewGuardStage(uid(0), alice, runner, time.Minute))

	assert.Equal(t, pipeline.ErrCodeRootUser, pipeline.CodeOf(err))
	assert.Empty(t, runner.Calls())
}

func TestGuard_UnknownUser(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		current func() (app.Identity, error)
	}{
		{"lookup error", func() (app.Identity, error) { return app.Identity{}, errors.New("no passwd entry") }},
		{"empty name", func() (app.Identity, error) { return app.Identity{HomeDir: "/"}, nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			runner := mocks.NewCommandRunner()
			err := runGuard(t, app.NewGuardStage(uid(1000), tt.current, runner, time.Minute))

			assert.Equal(t, pipeline.ErrCodeUserUnknown, pipeline.CodeOf(err))
			assert.Empty(t, runner.Calls())
		})
	}
}

func TestGuard_SudoDenied(t *testing.T) {
	t.Parallel()

	runner := mocks.NewCommandRunner()
	runner.AddResult("sudo", []string{"-v"}, ports.CommandResult{ExitCode: 1, Stderr: "alice is not in the sudoers file."})
	err := runGuard(t, app.NewGuardStage(uid(1000), alice, runner, time.Minute))

	var se *pipeline.StageError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, pipeline.ErrCodeSudoUnavailable, se.Code)
	assert.Contains(t, se.Suggestion, "sudo group")
}

func TestGuard_SudoPromptTimesOut(t *testing.T) {
	t.Parallel()

	err := runGuard(t, app.NewGuardStage(uid(1000), alice, blockingRunner{}, 20*time.Millisecond))

	var se *pipeline.StageError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, pipeline.ErrCodeSudoUnavailable, se.Code)
	assert.Contains(t, se.Message, "20ms")
}

func TestGuard_InterruptedDuringSudo(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	g := app.NewGuardStage(uid(1000), alice, blockingRunner{}, time.Minute)

	done := make(chan error, 1)
	go func() { done <- g.Run(pipeline.NewRunContext(ctx, mocks.NewLogger())) }()
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("guard did not return after cancellation")
	}
}
