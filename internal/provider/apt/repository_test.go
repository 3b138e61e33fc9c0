package apt_test

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/felixgeelhaar/dockerup/internal/domain/pipeline"
	"github.com/felixgeelhaar/dockerup/internal/domain/platform"
	"github.com/felixgeelhaar/dockerup/internal/ports"
	"github.com/felixgeelhaar/dockerup/internal/provider/apt"
	"github.com/felixgeelhaar/dockerup/internal/testutil"
	"github.com/felixgeelhaar/dockerup/internal/testutil/mocks"
	"github.com/kballard/go-shellquote"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	baseURL     = "https://download.docker.com/linux/ubuntu"
	keyringDir  = "/etc/apt/keyrings"
	keyringPath = "/etc/apt/keyrings/docker.gpg"
	listPath    = "/etc/apt/sources.list.d/docker.list"
	jammyLine   = "deb [arch=amd64 signed-by=/etc/apt/keyrings/docker.gpg] https://download.docker.com/linux/ubuntu jammy stable"
)

type fixedRelease platform.Descriptor

func (r fixedRelease) Descriptor() platform.Descriptor { return platform.Descriptor(r) }

var jammy = fixedRelease{ID: "ubuntu", VersionID: "22.04", Codename: "jammy"}

func repositoryCommands() []struct {
	args []string
	code string
} {
	return []struct {
		args []string
		code string
	}{
		{[]string{"install", "-m", "0755", "-d", keyringDir}, pipeline.ErrCodeKeyringDirFailed},
		{[]string{"bash", "-o", "pipefail", "-c", apt.FetchKeyScript(baseURL+"/gpg", keyringPath)}, pipeline.ErrCodeKeyFetchFailed},
		{[]string{"chmod", "a+r", keyringPath}, pipeline.ErrCodeKeyPermissionsFailed},
		{nil, pipeline.ErrCodeArchDetectFailed},
		{[]string{"bash", "-c", apt.SourceListScript(jammyLine, listPath)}, pipeline.ErrCodeSourceListFailed},
		{[]string{"apt-get", "update"}, pipeline.ErrCodeAptRepoUpdateFailed},
	}
}

func happyRunner() *mocks.CommandRunner {
	runner := mocks.NewCommandRunner()
	for _, c := range repositoryCommands() {
		if c.args == nil {
			runner.AddResult("dpkg", []string{"--print-architecture"}, ports.CommandResult{Stdout: "amd64\n"})
			continue
		}
		runner.AddResult("sudo", c.args, ports.CommandResult{})
	}
	return runner
}

func newStage(runner ports.CommandRunner, fs ports.FileSystem, fingerprint string) *apt.RepositoryStage {
	return apt.NewRepositoryStage(runner, fs, jammy, apt.RepositoryOptions{
		BaseURL:        baseURL,
		KeyringDir:     keyringDir,
		KeyringPath:    keyringPath,
		ListPath:       listPath,
		KeyFingerprint: fingerprint,
	})
}

func TestRepository_SourceLine(t *testing.T) {
	t.Parallel()

	repo := apt.Repository{
		KeyringPath: keyringPath,
		Arch:        "amd64",
		BaseURL:     baseURL,
		Codename:    "jammy",
		Suite:       apt.DefaultSuite,
		ListPath:    listPath,
	}

	assert.Equal(t, jammyLine, repo.SourceLine())
	assert.Equal(t, baseURL+"/gpg", repo.KeyURL())
	require.NoError(t, repo.Validate())

	repo.Codename = "jammy main"
	assert.ErrorContains(t, repo.Validate(), "repository codename")

	repo.Codename = "jammy"
	repo.Arch = ""
	assert.ErrorContains(t, repo.Validate(), "repository architecture")
}

func TestFetchKeyScript(t *testing.T) {
	t.Parallel()

	assert.Equal(t,
		"curl -fsSL https://download.docker.com/linux/ubuntu/gpg | gpg --dearmor --yes -o /etc/apt/keyrings/docker.gpg",
		apt.FetchKeyScript(baseURL+"/gpg", keyringPath))
}

func TestSourceListScript_RoundTrips(t *testing.T) {
	t.Parallel()

	words, err := shellquote.Split(apt.SourceListScript(jammyLine, listPath))
	require.NoError(t, err)
	assert.Equal(t, []string{"printf", `%s\n`, jammyLine, ">", listPath}, words)
}

func TestSourceListScript_OverwritesOnRerun(t *testing.T) {
	t.Parallel()

	bash, err := exec.LookPath("bash")
	if err != nil {
		t.Skip("bash not available")
	}

	path := filepath.Join(t.TempDir(), "docker.list")
	require.NoError(t, os.WriteFile(path, []byte("deb http://stale.example focal stable\n"), 0o644))

	for range 2 {
		out, err := exec.Command(bash, "-c", apt.SourceListScript(jammyLine, path)).CombinedOutput()
		require.NoError(t, err, string(out))
	}

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, jammyLine+"\n", string(data))
}

func TestRepositoryStage_Success(t *testing.T) {
	t.Parallel()

	runner := happyRunner()
	logger := mocks.NewLogger()
	stage := newStage(runner, mocks.NewFileSystem(), "")

	err := stage.Run(pipeline.NewRunContext(context.Background(), logger))
	require.NoError(t, err)

	assert.Equal(t, "apt:repository", stage.ID().String())
	assert.True(t, pipeline.IsMutating(stage))
	assert.Equal(t, jammyLine, stage.Repository().SourceLine())
	assert.True(t, logger.Contains(ports.LevelSuccess, "Repository configured"))

	commands := runner.Commands()
	require.Len(t, commands, 6)
	assert.Equal(t, "sudo install -m 0755 -d /etc/apt/keyrings", commands[0])
	assert.Equal(t, "sudo chmod a+r /etc/apt/keyrings/docker.gpg", commands[2])
	assert.Equal(t, "dpkg --print-architecture", commands[3])
	assert.Equal(t, "sudo apt-get update", commands[5])
}

func TestRepositoryStage_StopsAtFirstFailure(t *testing.T) {
	t.Parallel()

	for i, c := range repositoryCommands() {
		t.Run(c.code, func(t *testing.T) {
			t.Parallel()

			runner := happyRunner()
			if c.args == nil {
				runner.AddResult("dpkg", []string{"--print-architecture"}, ports.CommandResult{ExitCode: 2})
			} else {
				runner.AddResult("sudo", c.args, ports.CommandResult{ExitCode: 1, Stderr: "boom"})
			}

			err := newStage(runner, mocks.NewFileSystem(), "").
				Run(pipeline.NewRunContext(context.Background(), mocks.NewLogger()))

			require.Error(t, err)
			assert.Equal(t, c.code, pipeline.CodeOf(err))
			assert.Len(t, runner.Calls(), i+1)
		})
	}
}

func TestRepositoryStage_RejectsBadArchitecture(t *testing.T) {
	t.Parallel()

	runner := happyRunner()
	runner.AddResult("dpkg", []string{"--print-architecture"}, ports.CommandResult{Stdout: "amd64] evil\n"})

	err := newStage(runner, mocks.NewFileSystem(), "").
		Run(pipeline.NewRunContext(context.Background(), mocks.NewLogger()))

	assert.Equal(t, pipeline.ErrCodeArchDetectFailed, pipeline.CodeOf(err))
	assert.Len(t, runner.Calls(), 4)
}

func TestRepositoryStage_RejectsMissingCodename(t *testing.T) {
	t.Parallel()

	runner := happyRunner()
	stage := apt.NewRepositoryStage(runner, mocks.NewFileSystem(), fixedRelease{ID: "ubuntu"}, apt.RepositoryOptions{
		BaseURL:     baseURL,
		KeyringDir:  keyringDir,
		KeyringPath: keyringPath,
		ListPath:    listPath,
	})

	err := stage.Run(pipeline.NewRunContext(context.Background(), mocks.NewLogger()))

	assert.Equal(t, pipeline.ErrCodeSourceListFailed, pipeline.CodeOf(err))
	assert.Empty(t, runner.Calls())
}

func TestRepositoryStage_RejectsRelativeKeyringDir(t *testing.T) {
	t.Parallel()

	runner := happyRunner()
	stage := apt.NewRepositoryStage(runner, mocks.NewFileSystem(), jammy, apt.RepositoryOptions{
		BaseURL:     baseURL,
		KeyringDir:  "etc/apt/keyrings",
		KeyringPath: keyringPath,
		ListPath:    listPath,
	})

	err := stage.Run(pipeline.NewRunContext(context.Background(), mocks.NewLogger()))

	se := testutil.AssertStageError(t, err, pipeline.ErrCodeSourceListFailed)
	assert.ErrorContains(t, se, "keyring directory")
	assert.Empty(t, runner.Calls())
}

func TestRepositoryStage_Fingerprint(t *testing.T) {
	t.Parallel()

	keyring, fp := testKeyring(t)

	t.Run("match", func(t *testing.T) {
		t.Parallel()
		fs := mocks.NewFileSystem()
		fs.SetFileContent(keyringPath, keyring)
		logger := mocks.NewLogger()

		err := newStage(happyRunner(), fs, fp).Run(pipeline.NewRunContext(context.Background(), logger))
		require.NoError(t, err)
		assert.True(t, logger.Contains(ports.LevelInfo, "fingerprint verified"))
	})

	t.Run("mismatch", func(t *testing.T) {
		t.Parallel()
		fs := mocks.NewFileSystem()
		fs.SetFileContent(keyringPath, keyring)
		runner := happyRunner()

		err := newStage(runner, fs, "9DC858229FC7DD38854AE2D88D81803C0EBFCD88").
			Run(pipeline.NewRunContext(context.Background(), mocks.NewLogger()))

		assert.Equal(t, pipeline.ErrCodeKeyFingerprintMismatch, pipeline.CodeOf(err))
		assert.ErrorIs(t, err, apt.ErrFingerprintMismatch)
		assert.Len(t, runner.Calls(), 3)
	})

	t.Run("unreadable", func(t *testing.T) {
		t.Parallel()
		err := newStage(happyRunner(), mocks.NewFileSystem(), fp).
			Run(pipeline.NewRunContext(context.Background(), mocks.NewLogger()))

		assert.Equal(t, pipeline.ErrCodeKeyFingerprintMismatch, pipeline.CodeOf(err))
	})
}
