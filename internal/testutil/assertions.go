package testutil

import (
	"testing"

	"github.com/felixgeelhaar/dockerup/internal/domain/pipeline"
	"github.com/felixgeelhaar/dockerup/internal/testutil/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// AssertStageError asserts that err is a StageError carrying code.
func AssertStageError(t testing.TB, err error, code string) *pipeline.StageError {
	t.Helper()

	var se *pipeline.StageError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, code, se.Code, "unexpected failure code: %s", se.Error())
	return se
}

// AssertCommands asserts the exact sequence of commands a runner received.
func AssertCommands(t testing.TB, runner *mocks.CommandRunner, want ...string) {
	t.Helper()

	if len(want) == 0 {
		assert.Empty(t, runner.Commands(), "expected no commands")
		return
	}
	assert.Equal(t, want, runner.Commands())
}

// AssertNoSudo asserts that nothing was run with elevated privileges.
func AssertNoSudo(t testing.TB, runner *mocks.CommandRunner) {
	t.Helper()

	for _, c := range runner.Calls() {
		assert.NotEqual(t, "sudo", c.Command, "unexpected privileged command: %s", c.String())
	}
}
