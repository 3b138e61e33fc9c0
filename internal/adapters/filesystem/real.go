// Package filesystem provides the host implementation of ports.FileSystem.
package filesystem

import (
	"os"
	"path/filepath"

	"github.com/felixgeelhaar/dockerup/internal/ports"
)

// RealFileSystem reads and creates paths on the host, optionally below a root directory.
type RealFileSystem struct {
	root string
}

// Option configures a RealFileSystem.
type Option func(*RealFileSystem)

// WithRoot resolves every absolute path below dir, like a chroot. Used to
// inspect a mounted image or a fixture tree instead of the running host.
func WithRoot(dir string) Option {
	return func(fs *RealFileSystem) {
		fs.root = dir
	}
}

// NewRealFileSystem creates a RealFileSystem.
func NewRealFileSystem(opts ...Option) *RealFileSystem {
	fs := &RealFileSystem{}
	for _, opt := range opts {
		opt(fs)
	}
	return fs
}

func (fs *RealFileSystem) resolve(path string) string {
	if fs.root == "" {
		return path
	}
	return filepath.Join(fs.root, filepath.Clean("/"+path))
}

// ReadFile returns the contents of path.
func (fs *RealFileSystem) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(fs.resolve(path))
}

// Exists reports whether path exists. Dangling symlinks count as existing.
func (fs *RealFileSystem) Exists(path string) bool {
	_, err := os.Lstat(fs.resolve(path))
	return err == nil
}

// IsDir reports whether path is a directory, following symlinks.
func (fs *RealFileSystem) IsDir(path string) bool {
	info, err := os.Stat(fs.resolve(path))
	return err == nil && info.IsDir()
}

// MkdirAll creates path and any missing parents.
func (fs *RealFileSystem) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(fs.resolve(path), perm)
}

var _ ports.FileSystem = (*RealFileSystem)(nil)
