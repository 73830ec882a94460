package fileio

import (
	"os"
	"sort"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"
)

const (
	dirMode  = 0o700
	fileMode = 0o600
)

// BillyFS adapts a go-billy filesystem to FS.
type BillyFS struct {
	fs billy.Filesystem
}

// NewBillyFS wraps fs.
func NewBillyFS(fs billy.Filesystem) *BillyFS {
	return &BillyFS{fs: fs}
}

// Disk returns an FS rooted at dir on the host filesystem.
func Disk(dir string) *BillyFS {
	return NewBillyFS(osfs.New(dir))
}

// Memory returns an empty in-memory FS.
func Memory() *BillyFS {
	return NewBillyFS(memfs.New())
}

// Root returns the directory paths are resolved against.
func (b *BillyFS) Root() string { return b.fs.Root() }

// Billy exposes the underlying filesystem.
func (b *BillyFS) Billy() billy.Filesystem { return b.fs }

func (b *BillyFS) Exists(path string) bool {
	fi, err := b.fs.Stat(path)
	return err == nil && fi.Mode().IsRegular()
}

func (b *BillyFS) Open(path string) (File, error) {
	return b.fs.Open(path)
}

func (b *BillyFS) Create(path string) (File, error) {
	return b.fs.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, fileMode)
}

func (b *BillyFS) DirExists(path string) bool {
	fi, err := b.fs.Stat(path)
	return err == nil && fi.IsDir()
}

func (b *BillyFS) MkdirAll(path string) error {
	return b.fs.MkdirAll(path, dirMode)
}

func (b *BillyFS) List(dir string) ([]string, error) {
	infos, err := b.fs.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(infos))
	for _, fi := range infos {
		if fi.Mode().IsRegular() {
			names = append(names, fi.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}
