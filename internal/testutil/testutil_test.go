package testutil

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFixture(t *testing.T) {
	t.Parallel()

	for _, name := range []string{Focal, Jammy, Noble, Bionic, Bookworm} {
		assert.Contains(t, string(LoadFixture(t, name)), "VERSION_ID=", name)
	}
}

func TestWriteFixtureToDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	p := WriteFixtureToDir(t, dir, Jammy, "etc/os-release")

	data, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Contains(t, string(data), "VERSION_CODENAME=jammy")
}

func TestOSReleaseBuilder(t *testing.T) {
	t.Parallel()

	got := NewOSRelease("22.04", "jammy").
		With("ID", "pop").
		Without("ID_LIKE").
		Build()

	assert.Equal(t, "NAME=\"Ubuntu\"\nID=pop\nVERSION_ID=\"22.04\"\nVERSION_CODENAME=jammy\nPRETTY_NAME=\"Ubuntu 22.04\"\n", got)
}
