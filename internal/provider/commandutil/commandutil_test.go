package commandutil

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"testing"

	"github.com/felixgeelhaar/dockerup/internal/domain/pipeline"
	"github.com/felixgeelhaar/dockerup/internal/ports"
	"github.com/felixgeelhaar/dockerup/internal/testutil/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsCommandNotFound(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"exec ErrNotFound", exec.ErrNotFound, true},
		{"exec error wrapper", &exec.Error{Err: exec.ErrNotFound}, true},
		{"path error", &os.PathError{Err: os.ErrNotExist}, true},
		{"other error", errors.New("nope"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, IsCommandNotFound(tt.err))
		})
	}
}

func TestRun_Success(t *testing.T) {
	t.Parallel()

	runner := mocks.NewCommandRunner()
	runner.AddResult("dpkg", []string{"--print-architecture"}, ports.CommandResult{Stdout: "amd64\n"})

	result, err := Run(context.Background(), runner, pipeline.ErrCodeArchDetectFailed, "cannot detect architecture", "dpkg", "--print-architecture")
	require.NoError(t, err)
	assert.Equal(t, "amd64", result.FirstLine())
}

func TestRun_NonZeroExit(t *testing.T) {
	t.Parallel()

	runner := mocks.NewCommandRunner()
	runner.AddResult("sudo", []string{"apt-get", "update"}, ports.CommandResult{ExitCode: 100, Stderr: "E: could not resolve host\n"})

	_, err := Run(context.Background(), runner, pipeline.ErrCodeAptUpdateFailed, "failed to update package lists", "sudo", "apt-get", "update")
	require.Error(t, err)
	assert.Equal(t, pipeline.ErrCodeAptUpdateFailed, pipeline.CodeOf(err))
	assert.Contains(t, err.Error(), "could not resolve host")
}

func TestRun_NonZeroExitWithoutOutput(t *testing.T) {
	t.Parallel()

	runner := mocks.NewCommandRunner()
	runner.AddResult("false", nil, ports.CommandResult{ExitCode: 3})

	_, err := Run(context.Background(), runner, "SOME_CODE", "failed", "false")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exit status 3")
}

func TestRun_CommandNotFound(t *testing.T) {
	t.Parallel()

	runner := mocks.NewCommandRunner()
	runner.AddError("sudo", []string{"-v"}, &exec.Error{Name: "sudo", Err: exec.ErrNotFound})

	_, err := Run(context.Background(), runner, pipeline.ErrCodeSudoUnavailable, "sudo is unavailable", "sudo", "-v")
	require.Error(t, err)
	assert.Equal(t, pipeline.ErrCodeSudoUnavailable, pipeline.CodeOf(err))
	assert.ErrorIs(t, err, exec.ErrNotFound)

	var se *pipeline.StageError
	require.ErrorAs(t, err, &se)
	assert.Contains(t, se.Suggestion, "Install sudo")
}

func TestRun_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	runner := mocks.NewCommandRunner()
	runner.AddError("sudo", []string{"apt-get", "update"}, errors.New("signal: killed"))

	_, err := Run(ctx, runner, pipeline.ErrCodeAptUpdateFailed, "failed", "sudo", "apt-get", "update")
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, pipeline.CodeOf(err))
}

func TestProbe(t *testing.T) {
	t.Parallel()

	runner := mocks.NewCommandRunner()
	runner.AddResult("systemctl", []string{"is-active", "--quiet", "docker"}, ports.CommandResult{ExitCode: 3})
	runner.AddResult("docker", []string{"--version"}, ports.CommandResult{Stdout: "Docker version 24.0.7, build afdd53b\n"})

	_, ok := Probe(context.Background(), runner, "systemctl", "is-active", "--quiet", "docker")
	assert.False(t, ok)

	result, ok := Probe(context.Background(), runner, "docker", "--version")
	assert.True(t, ok)
	assert.Contains(t, result.Stdout, "24.0.7")

	_, ok = Probe(context.Background(), runner, "unregistered")
	assert.False(t, ok)
}
