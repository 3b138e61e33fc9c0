package ports

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCommandResult_Success(t *testing.T) {
	t.Parallel()

	assert.True(t, CommandResult{ExitCode: 0}.Success())
	assert.False(t, CommandResult{ExitCode: 1, Stderr: "error"}.Success())
}

func TestCommandResult_Combined(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		result   CommandResult
		expected string
	}{
		{"stdout only", CommandResult{Stdout: "out\n"}, "out\n"},
		{"stderr only", CommandResult{Stderr: "err\n"}, "err\n"},
		{"both", CommandResult{Stdout: "out\n", Stderr: "err\n"}, "out\nerr\n"},
		{"empty", CommandResult{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, tt.result.Combined())
		})
	}
}

func TestCommandResult_FirstLine(t *testing.T) {
	t.Parallel()

	result := CommandResult{Stdout: "\n  Docker version 24.0.7, build afdd53b  \nsecond\n"}
	assert.Equal(t, "Docker version 24.0.7, build afdd53b", result.FirstLine())
	assert.Empty(t, CommandResult{}.FirstLine())
}

func TestCommandCall_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "sudo apt-get update", CommandCall{Command: "sudo", Args: []string{"apt-get", "update"}}.String())
	assert.Equal(t, "true", CommandCall{Command: "true"}.String())
}
