package mocks

import (
	"os"
	"path"
	"sync"

	"github.com/felixgeelhaar/dockerup/internal/ports"
)

// FileSystem is an in-memory ports.FileSystem. Paths are used verbatim.
type FileSystem struct {
	mu        sync.RWMutex
	files     map[string][]byte
	dirs      map[string]struct{}
	mkdirErrs map[string]error
	created   []string
}

// NewFileSystem creates an empty FileSystem.
func NewFileSystem() *FileSystem {
	return &FileSystem{
		files:     make(map[string][]byte),
		dirs:      make(map[string]struct{}),
		mkdirErrs: make(map[string]error),
	}
}

// AddFile stores a text file.
func (fs *FileSystem) AddFile(p, content string) {
	fs.SetFileContent(p, []byte(content))
}

// SetFileContent stores a file with raw content, such as a binary keyring.
func (fs *FileSystem) SetFileContent(p string, content []byte) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.files[p] = content
}

// AddDir marks p as an existing directory.
func (fs *FileSystem) AddDir(p string) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.dirs[p] = struct{}{}
}

// FailMkdir makes MkdirAll(p) return err.
func (fs *FileSystem) FailMkdir(p string, err error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.mkdirErrs[p] = err
}

// Created returns the directories made by MkdirAll, in order.
func (fs *FileSystem) Created() []string {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	return append([]string(nil), fs.created...)
}

// ReadFile returns a stored file. A missing file yields an error matching os.ErrNotExist.
func (fs *FileSystem) ReadFile(p string) ([]byte, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	data, ok := fs.files[p]
	if !ok {
		return nil, &os.PathError{Op: "open", Path: p, Err: os.ErrNotExist}
	}
	return data, nil
}

// Exists reports whether p is a stored file or directory.
func (fs *FileSystem) Exists(p string) bool {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	_, file := fs.files[p]
	_, dir := fs.dirs[p]
	return file || dir
}

// IsDir reports whether p is a directory.
func (fs *FileSystem) IsDir(p string) bool {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	_, ok := fs.dirs[p]
	return ok
}

// MkdirAll marks p and its parents as directories.
func (fs *FileSystem) MkdirAll(p string, _ os.FileMode) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	if err, ok := fs.mkdirErrs[p]; ok {
		return err
	}
	if _, ok := fs.files[p]; ok {
		return &os.PathError{Op: "mkdir", Path: p, Err: os.ErrExist}
	}
	for dir := p; dir != "/" && dir != "." && dir != ""; dir = path.Dir(dir) {
		fs.dirs[dir] = struct{}{}
	}
	fs.created = append(fs.created, p)
	return nil
}

var _ ports.FileSystem = (*FileSystem)(nil)
