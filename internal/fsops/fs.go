// Package fsops provides read-only filesystem access for hyprnav.
//
// hyprnav never writes to disk on the navigation path. All reads of the
// compositor configuration go through the FS interface so that tests can
// substitute an in-memory tree.
package fsops

import (
	"os"
	"strings"
)

// FS provides an abstraction for the filesystem reads hyprnav performs.
type FS interface {
	// ReadFile reads the entire contents of a file.
	ReadFile(path string) ([]byte, error)
}

// RealFS implements FS using actual OS operations.
type RealFS struct{}

// NewRealFS creates a new RealFS.
func NewRealFS() *RealFS {
	return &RealFS{}
}

// ReadFile reads the entire contents of a file.
func (fs *RealFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// MapFS is an in-memory FS keyed by path.
// Paths present in Errs fail with the given error instead of being read.
type MapFS struct {
	Files map[string]string
	Errs  map[string]error
}

// ReadFile returns the stored contents of path.
func (m *MapFS) ReadFile(path string) ([]byte, error) {
	if err, ok := m.Errs[path]; ok {
		return nil, err
	}
	data, ok := m.Files[path]
	if !ok {
		return nil, &os.PathError{Op: "open", Path: path, Err: os.ErrNotExist}
	}
	return []byte(data), nil
}

// ExpandHome replaces a leading "~/" with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if path == "~" {
		return home
	}
	return home + path[1:]
}
