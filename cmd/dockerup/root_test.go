package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/felixgeelhaar/dockerup/internal/domain/config"
	"github.com/felixgeelhaar/dockerup/internal/ports"
	"github.com/felixgeelhaar/dockerup/internal/testutil/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCLI struct {
	cli
	out     *bytes.Buffer
	errOut  *bytes.Buffer
	env     map[string]string
	mockFS  *mocks.FileSystem
	calls   int
	cfg     config.Config
	logger  ports.Logger
	exitFor int
}

func newFakeCLI() *fakeCLI {
	f := &fakeCLI{
		out:    &bytes.Buffer{},
		errOut: &bytes.Buffer{},
		env:    map[string]string{},
		mockFS: mocks.NewFileSystem(),
	}
	f.cli = cli{
		stdout: f.out,
		stderr: f.errOut,
		fs:     f.mockFS,
		getenv: func(k string) string { return f.env[k] },
		install: func(_ context.Context, cfg config.Config, logger ports.Logger) int {
			f.calls++
			f.cfg = cfg
			f.logger = logger
			return f.exitFor
		},
	}
	return f
}

func (f *fakeCLI) execute(args ...string) int {
	return execute(&f.cli, args)
}

func TestRoot_Version(t *testing.T) {
	t.Parallel()

	for _, flag := range []string{"-v", "--version"} {
		t.Run(flag, func(t *testing.T) {
			t.Parallel()

			f := newFakeCLI()
			code := f.execute(flag)

			assert.Equal(t, 0, code)
			assert.Equal(t, "dockerup "+version+"\n", f.out.String())
			assert.Zero(t, f.calls)
		})
	}
}

func TestRoot_Help(t *testing.T) {
	t.Parallel()

	f := newFakeCLI()
	code := f.execute("--help")

	assert.Equal(t, 0, code)
	assert.Contains(t, f.out.String(), "dockerup")
	assert.Contains(t, f.out.String(), "--dry-run")
	assert.Zero(t, f.calls)
}

func TestRoot_DryRun(t *testing.T) {
	t.Parallel()

	f := newFakeCLI()
	code := f.execute("--dry-run")

	assert.Equal(t, 0, code)
	assert.Contains(t, f.out.String(), "not supported")
	assert.Zero(t, f.calls)
}

func TestRoot_UnknownOption(t *testing.T) {
	t.Parallel()

	tests := []struct {
		args []string
		want string
	}{
		{[]string{"--force"}, "unknown option: --force\n"},
		{[]string{"-x"}, "unknown option: -x\n"},
		{[]string{"install"}, "unknown option: install\n"},
	}

	for _, tt := range tests {
		t.Run(tt.args[0], func(t *testing.T) {
			t.Parallel()

			f := newFakeCLI()
			code := f.execute(tt.args...)

			assert.Equal(t, 1, code)
			assert.Equal(t, tt.want, f.errOut.String())
			assert.Zero(t, f.calls)
		})
	}
}

func TestRoot_RunsInstaller(t *testing.T) {
	t.Parallel()

	f := newFakeCLI()
	f.env[config.EnvVersion] = "5:24.0.7-1~ubuntu.22.04~jammy"
	code := f.execute()

	assert.Equal(t, 0, code)
	require.Equal(t, 1, f.calls)
	assert.Equal(t, "5:24.0.7-1~ubuntu.22.04~jammy", f.cfg.Version)
	require.NotNil(t, f.logger)
	assert.Equal(t, ports.LevelInfo, f.logger.Level())
}

func TestRoot_InstallerFailureExitCode(t *testing.T) {
	t.Parallel()

	f := newFakeCLI()
	f.exitFor = 1
	code := f.execute()

	assert.Equal(t, 1, code)
	assert.Empty(t, f.errOut.String())
}

func TestRoot_ConfigErrorIsReported(t *testing.T) {
	t.Parallel()

	f := newFakeCLI()
	f.env[config.EnvConfig] = "/etc/dockerup.yaml"
	code := f.execute()

	assert.Equal(t, 1, code)
	assert.Contains(t, f.errOut.String(), config.ErrCodeConfigNotFound)
	assert.Zero(t, f.calls)
}

func TestRoot_InvalidSettingsAreListed(t *testing.T) {
	t.Parallel()

	f := newFakeCLI()
	f.env[config.EnvConfig] = "/etc/dockerup.yaml"
	f.mockFS.AddFile("/etc/dockerup.yaml", "base_url: http://example.com\nlog_format: xml\n")
	code := f.execute()

	assert.Equal(t, 1, code)
	assert.Contains(t, f.errOut.String(), "base_url")
	assert.Contains(t, f.errOut.String(), "log_format")
	assert.Zero(t, f.calls)
}
