package docker_test

import (
	"context"
	"testing"

	"github.com/felixgeelhaar/dockerup/internal/ports"
	"github.com/felixgeelhaar/dockerup/internal/provider/docker"
	"github.com/felixgeelhaar/dockerup/internal/testutil/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPositionalExtractor_Engine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		output  string
		want    string
		wantErr bool
	}{
		{"release", "Docker version 24.0.7, build afdd53b\n", "24.0.7", false},
		{"old style", "Docker version 20.10.21, build baeda1f", "20.10.21", false},
		{"v prefix", "Docker version v25.0.0, build x", "25.0.0", false},
		{"prerelease", "Docker version 28.0.0-rc.1, build abc", "28.0.0-rc.1", false},
		{"zero padded month", "Docker version 19.03.15, build 99e3ed8919\n", "19.03.15", false},
		{"zero padded 18.09", "Docker version 18.09.7, build 2d0083d", "18.09.7", false},
		{"community edition", "Docker version 17.03.2-ce, build f5ec1e2", "17.03.2-ce", false},
		{"zero component", "Docker version 20.10.0, build 7287ab3", "20.10.0", false},
		{"missing component", "Docker version 19..15, build x", "", true},
		{"too short", "Docker version", "", true},
		{"garbage field", "Docker version banana, build x", "", true},
		{"empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := docker.PositionalExtractor{}.Engine(tt.output)
			if tt.wantErr {
				require.ErrorIs(t, err, docker.ErrVersionParse)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPositionalExtractor_Compose(t *testing.T) {
	t.Parallel()

	got, err := docker.PositionalExtractor{}.Compose("Docker Compose version v2.21.0\n")
	require.NoError(t, err)
	assert.Equal(t, "2.21.0", got)

	_, err = docker.PositionalExtractor{}.Compose("docker: 'compose' is not a docker command.")
	require.ErrorIs(t, err, docker.ErrVersionParse)
}

func TestQueryVersions(t *testing.T) {
	t.Parallel()

	runner := mocks.NewCommandRunner()
	runner.AddResult("docker", []string{"--version"}, ports.CommandResult{Stdout: "Docker version 24.0.7, build afdd53b\n"})
	runner.AddResult("docker", []string{"compose", "version"}, ports.CommandResult{ExitCode: 1})

	v := docker.QueryVersions(context.Background(), runner, docker.PositionalExtractor{})
	assert.Equal(t, docker.Versions{Engine: "24.0.7", Compose: docker.Unknown}, v)

	v = docker.QueryVersions(context.Background(), mocks.NewCommandRunner(), docker.PositionalExtractor{})
	assert.Equal(t, docker.Versions{Engine: docker.Unknown, Compose: docker.Unknown}, v)
}

func TestEngineVersion_QueryError(t *testing.T) {
	t.Parallel()

	_, err := docker.EngineVersion(context.Background(), mocks.NewCommandRunner(), docker.PositionalExtractor{})
	require.ErrorIs(t, err, docker.ErrVersionQuery)
}
