package filesystem

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/felixgeelhaar/dockerup/internal/domain/pipeline"
	"github.com/felixgeelhaar/dockerup/internal/domain/platform"
	"github.com/felixgeelhaar/dockerup/internal/testutil"
	"github.com/felixgeelhaar/dockerup/internal/testutil/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRealFileSystem_ReadFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "os-release")
	require.NoError(t, os.WriteFile(path, []byte("ID=ubuntu\n"), 0o644))

	fs := NewRealFileSystem()
	data, err := fs.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "ID=ubuntu\n", string(data))

	_, err = fs.ReadFile(filepath.Join(dir, "missing"))
	assert.True(t, os.IsNotExist(err))
}

func TestRealFileSystem_ExistsAndIsDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(file, nil, 0o644))

	fs := NewRealFileSystem()
	assert.True(t, fs.Exists(dir))
	assert.True(t, fs.IsDir(dir))
	assert.True(t, fs.Exists(file))
	assert.False(t, fs.IsDir(file))
	assert.False(t, fs.Exists(filepath.Join(dir, "nope")))
}

func TestRealFileSystem_MkdirAll(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "home", ".docker")
	fs := NewRealFileSystem()

	require.NoError(t, fs.MkdirAll(dir, 0o755))
	assert.True(t, fs.IsDir(dir))
	require.NoError(t, fs.MkdirAll(dir, 0o755), "MkdirAll is idempotent")
}

func TestRealFileSystem_WithRoot(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	testutil.WriteFixtureToDir(t, root, testutil.Noble, "etc/os-release")
	fs := NewRealFileSystem(WithRoot(root))

	assert.True(t, fs.Exists(platform.DefaultOSReleasePath))
	assert.True(t, fs.IsDir("/etc"))
	assert.False(t, fs.Exists("/../../etc/shadow"))

	v := platform.NewValidator(fs, platform.DefaultOSReleasePath, "ubuntu", platform.MustParseVersion("20.04"))
	require.NoError(t, v.Run(pipeline.NewRunContext(context.Background(), mocks.NewLogger())))
	assert.Equal(t, "noble", v.Descriptor().Codename)

	require.NoError(t, fs.MkdirAll("/home/alice/.docker", 0o755))
	assert.DirExists(t, filepath.Join(root, "home", "alice", ".docker"))
}
