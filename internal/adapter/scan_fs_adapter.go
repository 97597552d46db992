// Package adapter contains filesystem and hashing infrastructure for the
// dupscan CLI.
package adapter

import (
	"os"
	"path/filepath"

	m "dupscan.dev/pkg/dupscan/internal/model"
)

// ScanFSAdapter abstracts the filesystem operations the domain layer relies
// on while scanning a tree. It intentionally hides direct `os` access so the
// engine logic can be tested without touching the disk.
type ScanFSAdapter interface {
	// Walk traverses the tree rooted at root, invoking fn for every entry
	// in whatever order the underlying directory listing yields.
	Walk(root m.Path, fn FilepathWalkFunc) error

	// Stat returns metadata for a path so the domain can check existence
	// or distinguish files from directories.
	Stat(path m.Path) (os.FileInfo, error)
}

// FilepathWalkFunc mirrors the callback shape used by filepath.Walk. It is
// defined here to avoid leaking the standard-library type directly into the
// domain layer.
type FilepathWalkFunc func(path string, info os.FileInfo, err error) error

// LocalScanFSAdapter is the concrete implementation backed by the local
// filesystem.
type LocalScanFSAdapter struct{}

// NewLocalScanFSAdapter constructs a LocalScanFSAdapter instance ready to be
// wired into the scanner.
func NewLocalScanFSAdapter() *LocalScanFSAdapter {
	return &LocalScanFSAdapter{}
}

// Walk iterates over all entries under root.
func (a *LocalScanFSAdapter) Walk(root m.Path, fn FilepathWalkFunc) error {
	return filepath.Walk(string(root), func(path string, info os.FileInfo, err error) error {
		return fn(path, info, err)
	})
}

// Stat returns os.FileInfo metadata for the given path.
func (a *LocalScanFSAdapter) Stat(path m.Path) (os.FileInfo, error) {
	return os.Stat(string(path))
}
