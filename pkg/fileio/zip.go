package fileio

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"
)

// ZipFS is a read-only FS over the entries of a zip pack.
type ZipFS struct {
	name   string
	files  map[string]*zip.File
	dirs   map[string]struct{}
	closer io.Closer
}

// OpenZip opens the zip pack at p on the host filesystem.
func OpenZip(p string) (*ZipFS, error) {
	rc, err := zip.OpenReader(p)
	if err != nil {
		return nil, fmt.Errorf("open pack %s: %w", p, err)
	}
	z := newZipFS(p, &rc.Reader)
	z.closer = rc
	return z, nil
}

// NewZipFS reads a zip pack of the given size from r.
func NewZipFS(name string, r io.ReaderAt, size int64) (*ZipFS, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("read pack %s: %w", name, err)
	}
	return newZipFS(name, zr), nil
}

func newZipFS(name string, zr *zip.Reader) *ZipFS {
	z := &ZipFS{
		name:  name,
		files: make(map[string]*zip.File, len(zr.File)),
		dirs:  map[string]struct{}{".": {}},
	}
	for _, f := range zr.File {
		p := cleanEntry(f.Name)
		if p == "." {
			continue
		}
		if strings.HasSuffix(f.Name, "/") {
			z.addDirs(p)
			continue
		}
		z.files[p] = f
		z.addDirs(path.Dir(p))
	}
	return z
}

func (z *ZipFS) addDirs(d string) {
	for d != "." && d != "/" {
		z.dirs[d] = struct{}{}
		d = path.Dir(d)
	}
}

// cleanEntry normalises p to the slash-separated, root-relative form used
// for zip entry names. Backslashes are treated as separators.
func cleanEntry(p string) string {
	p = strings.ReplaceAll(p, `\`, "/")
	p = strings.TrimPrefix(path.Clean("/"+p), "/")
	if p == "" {
		return "."
	}
	return p
}

// Name returns the pack's path or label.
func (z *ZipFS) Name() string { return z.name }

// Close releases the pack file when it was opened with OpenZip.
func (z *ZipFS) Close() error {
	if z.closer == nil {
		return nil
	}
	return z.closer.Close()
}

func (z *ZipFS) Exists(p string) bool {
	_, ok := z.files[cleanEntry(p)]
	return ok
}

// Open decompresses the entry into memory so the result can seek.
func (z *ZipFS) Open(p string) (File, error) {
	f, ok := z.files[cleanEntry(p)]
	if !ok {
		return nil, fmt.Errorf("%s: %s: file does not exist", z.name, p)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("%s: open %s: %w", z.name, p, err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("%s: read %s: %w", z.name, p, err)
	}
	return &readOnlyFile{Reader: bytes.NewReader(data)}, nil
}

func (z *ZipFS) Create(string) (File, error) { return nil, ErrReadOnly }

func (z *ZipFS) DirExists(p string) bool {
	_, ok := z.dirs[cleanEntry(p)]
	return ok
}

func (z *ZipFS) MkdirAll(string) error { return ErrReadOnly }

func (z *ZipFS) List(dir string) ([]string, error) {
	dir = cleanEntry(dir)
	if _, ok := z.dirs[dir]; !ok {
		return nil, fmt.Errorf("%s: %s: directory does not exist", z.name, dir)
	}
	var names []string
	for p := range z.files {
		if path.Dir(p) == dir {
			names = append(names, path.Base(p))
		}
	}
	sort.Strings(names)
	return names, nil
}

type readOnlyFile struct {
	*bytes.Reader
}

func (*readOnlyFile) Write([]byte) (int, error) { return 0, ErrReadOnly }
func (*readOnlyFile) Close() error              { return nil }
