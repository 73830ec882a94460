// Package fileio is the file layer save backends read and write through.
//
// A resource is addressed by a slash- or platform-separated path relative to
// the filesystem root. It may live on disk, in memory, or inside a zip pack;
// callers only see FS and File.
package fileio

import (
	"errors"
	"fmt"
	"io"
)

// ErrReadOnly is returned by filesystems that cannot be written.
var ErrReadOnly = errors.New("fileio: read-only filesystem")

// File is an open, byte-addressable resource.
type File interface {
	io.Reader
	io.Writer
	io.Seeker
	io.Closer
}

// FS is the set of operations the save pipeline needs from storage.
type FS interface {
	// Exists reports whether path names a regular file.
	Exists(path string) bool

	// Open opens path for reading.
	Open(path string) (File, error)

	// Create creates or truncates path for writing. The parent directory
	// must already exist.
	Create(path string) (File, error)

	// DirExists reports whether path names a directory.
	DirExists(path string) bool

	// MkdirAll creates path and any missing parents.
	MkdirAll(path string) error
}

// Lister is implemented by filesystems that can enumerate a directory.
type Lister interface {
	// List returns the names of the regular files directly inside dir,
	// sorted.
	List(dir string) ([]string, error)
}

// Size reports the length of f by seeking to the end, then rewinds to the
// start.
func Size(f io.Seeker) (int64, error) {
	n, err := f.Seek(0, io.SeekEnd)
	if err != nil {
		return 0, fmt.Errorf("seek end: %w", err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return 0, fmt.Errorf("rewind: %w", err)
	}
	return n, nil
}
