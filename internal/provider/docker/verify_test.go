package docker_test

import (
	"context"
	"testing"

	"github.com/felixgeelhaar/dockerup/internal/domain/pipeline"
	"github.com/felixgeelhaar/dockerup/internal/ports"
	"github.com/felixgeelhaar/dockerup/internal/provider/docker"
	"github.com/felixgeelhaar/dockerup/internal/testutil/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const helloOutput = "\nHello from Docker!\nThis message shows that your installation appears to be working correctly.\n"

func verifyRunner() *mocks.CommandRunner {
	runner := mocks.NewCommandRunner()
	runner.AddResult("docker", []string{"--version"}, ports.CommandResult{Stdout: "Docker version 24.0.7, build afdd53b\n"})
	runner.AddResult("docker", []string{"compose", "version"}, ports.CommandResult{Stdout: "Docker Compose version v2.21.0\n"})
	runner.AddResult("sudo", []string{"docker", "run", "--rm", "hello-world"}, ports.CommandResult{Stdout: helloOutput})
	return runner
}

func newVerifyStage(runner ports.CommandRunner) *docker.VerifyStage {
	return docker.NewVerifyStage(runner, docker.PositionalExtractor{}, "hello-world", "Hello from Docker!")
}

func TestVerifyStage_Success(t *testing.T) {
	t.Parallel()

	logger := mocks.NewLogger()
	stage := newVerifyStage(verifyRunner())

	err := stage.Run(pipeline.NewRunContext(context.Background(), logger))

	require.NoError(t, err)
	assert.Equal(t, "docker:verify", stage.ID().String())
	assert.Equal(t, docker.Versions{Engine: "24.0.7", Compose: "2.21.0"}, stage.Versions())
	assert.True(t, stage.SmokeTestPassed())
	assert.Empty(t, logger.Messages(ports.LevelWarn))
}

func TestVerifyStage_ZeroPaddedEngineVersion(t *testing.T) {
	t.Parallel()

	runner := verifyRunner()
	runner.AddResult("docker", []string{"--version"}, ports.CommandResult{Stdout: "Docker version 19.03.15, build 99e3ed8919\n"})
	stage := newVerifyStage(runner)

	require.NoError(t, stage.Run(pipeline.NewRunContext(context.Background(), mocks.NewLogger())))
	assert.Equal(t, "19.03.15", stage.Versions().Engine)
}

func TestVerifyStage_SmokeTestMismatchIsWarning(t *testing.T) {
	t.Parallel()

	runner := verifyRunner()
	runner.AddResult("sudo", []string{"docker", "run", "--rm", "hello-world"}, ports.CommandResult{Stdout: "something else"})
	logger := mocks.NewLogger()
	stage := newVerifyStage(runner)

	err := stage.Run(pipeline.NewRunContext(context.Background(), logger))

	require.NoError(t, err)
	assert.False(t, stage.SmokeTestPassed())
	assert.True(t, logger.Contains(ports.LevelWarn, "Test container"))
}

func TestVerifyStage_SmokeTestExitIsWarning(t *testing.T) {
	t.Parallel()

	runner := verifyRunner()
	runner.AddResult("sudo", []string{"docker", "run", "--rm", "hello-world"}, ports.CommandResult{ExitCode: 125, Stdout: helloOutput})
	stage := newVerifyStage(runner)

	require.NoError(t, stage.Run(pipeline.NewRunContext(context.Background(), mocks.NewLogger())))
	assert.False(t, stage.SmokeTestPassed())
}

func TestVerifyStage_ComposeFailureIsWarning(t *testing.T) {
	t.Parallel()

	runner := verifyRunner()
	runner.AddResult("docker", []string{"compose", "version"}, ports.CommandResult{ExitCode: 1})
	logger := mocks.NewLogger()
	stage := newVerifyStage(runner)

	require.NoError(t, stage.Run(pipeline.NewRunContext(context.Background(), logger)))
	assert.Equal(t, docker.Unknown, stage.Versions().Compose)
	assert.True(t, logger.Contains(ports.LevelWarn, "Compose"))
}

func TestVerifyStage_EngineFailures(t *testing.T) {
	t.Parallel()

	t.Run("not responding", func(t *testing.T) {
		t.Parallel()
		runner := verifyRunner()
		runner.AddResult("docker", []string{"--version"}, ports.CommandResult{ExitCode: 1})

		err := newVerifyStage(runner).Run(pipeline.NewRunContext(context.Background(), mocks.NewLogger()))
		assert.Equal(t, pipeline.ErrCodeEngineNotResponding, pipeline.CodeOf(err))
	})

	t.Run("unparseable", func(t *testing.T) {
		t.Parallel()
		runner := verifyRunner()
		runner.AddResult("docker", []string{"--version"}, ports.CommandResult{Stdout: "Docker"})

		err := newVerifyStage(runner).Run(pipeline.NewRunContext(context.Background(), mocks.NewLogger()))
		assert.Equal(t, pipeline.ErrCodeVersionParse, pipeline.CodeOf(err))
		assert.ErrorIs(t, err, docker.ErrVersionParse)
		assert.Len(t, runner.Calls(), 1)
	})
}
