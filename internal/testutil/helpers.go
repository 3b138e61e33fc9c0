// Package testutil provides fixtures and assertions shared by dockerup tests.
package testutil

import (
	"embed"
	"os"
	"path"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

//go:embed fixtures
var fixturesFS embed.FS

// Sample /etc/os-release files under fixtures/os-release.
const (
	Focal    = "os-release/focal"
	Jammy    = "os-release/jammy"
	Noble    = "os-release/noble"
	Bionic   = "os-release/bionic"
	Bookworm = "os-release/bookworm"
)

// WriteTempFile writes content to a file in dir and returns its path.
func WriteTempFile(t *testing.T, dir, filename, content string) string {
	t.Helper()

	p := filepath.Join(dir, filename)
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644), "failed to write temp file: %s", filename)

	return p
}

// WriteTempDir creates a subdirectory in dir.
func WriteTempDir(t *testing.T, dir, dirname string) string {
	t.Helper()

	p := filepath.Join(dir, dirname)
	require.NoError(t, os.MkdirAll(p, 0o755), "failed to create temp subdirectory: %s", dirname)

	return p
}

// LoadFixture loads a file from the embedded fixtures directory.
func LoadFixture(t *testing.T, name string) []byte {
	t.Helper()

	content, err := fixturesFS.ReadFile(path.Join("fixtures", name))
	require.NoError(t, err, "failed to load fixture: %s", name)

	return content
}

// WriteFixtureToDir copies a fixture into dir under destName.
func WriteFixtureToDir(t *testing.T, dir, fixtureName, destName string) string {
	t.Helper()

	return WriteTempFile(t, dir, destName, string(LoadFixture(t, fixtureName)))
}
