package storage

import (
	"errors"
	"fmt"
	"io"
	"path"

	"github.com/bft-labs/gamesave/pkg/fileio"
	"github.com/bft-labs/gamesave/pkg/format"
	"github.com/bft-labs/gamesave/pkg/log"
	"github.com/bft-labs/gamesave/pkg/platform"
)

// FileBackend performs save and load steps against a fileio.FS. Each step
// completes in a single call.
type FileBackend struct {
	platform   platform.Platform
	env        *platform.Env
	base       fileio.FS
	packs      []fileio.FS
	fs         fileio.FS
	logger     log.Logger
	indicator  func(saving bool, file string)
	maxPayload int64

	folder   string
	filename string
	saving   bool
	data     []byte
	dst      *[]byte
	file     fileio.File
	fileSize int64
	err      error
}

// New creates a backend for the host platform. Options override the
// platform, the storage location and logging.
func New(opts ...Option) *FileBackend {
	b := &FileBackend{
		platform: platform.Host(),
		logger:   log.Discard,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Platform returns the platform paths are built for.
func (b *FileBackend) Platform() platform.Platform { return b.platform }

// FS returns the filesystem saves are read from, resolving the platform
// save root on first use.
func (b *FileBackend) FS() (fileio.FS, error) {
	if b.fs != nil {
		return b.fs, nil
	}
	base := b.base
	if base == nil {
		env := platform.HostEnv()
		if b.env != nil {
			env = *b.env
		}
		root, err := platform.SaveRoot(b.platform, env)
		if err != nil {
			return nil, err
		}
		base = fileio.Disk(root)
	}
	if len(b.packs) > 0 {
		b.fs = fileio.NewOverlay(base, b.packs...)
	} else {
		b.fs = base
	}
	return b.fs, nil
}

// Path returns folder/filename joined with the platform separator, relative
// to the save root. It is for display only; the filesystem is addressed
// with FilePath.
func (b *FileBackend) Path(folder, filename string) string {
	return platform.SavePath(b.platform, folder, filename)
}

// FilePath returns the slash-separated location of filename inside folder,
// as the fileio.FS expects it whatever the target platform.
func (b *FileBackend) FilePath(folder, filename string) string {
	return path.Join(folder, filename)
}

func (b *FileBackend) InitSave(folder, filename string, data []byte) {
	b.Release()
	b.folder, b.filename = folder, filename
	b.saving = true
	b.data = data
	b.err = nil
}

func (b *FileBackend) InitLoad(folder, filename string, dst *[]byte) {
	b.Release()
	b.folder, b.filename = folder, filename
	b.saving = false
	b.dst = dst
	b.err = nil
}

func (b *FileBackend) ErrorOccurred() bool { return b.err != nil }

func (b *FileBackend) SetError(err error) {
	if err == nil {
		err = errors.New("storage: unspecified error")
	}
	b.err = err
}

func (b *FileBackend) Err() error { return b.err }

// fail records err and reports the step as not done.
func (b *FileBackend) fail(err error) bool {
	b.SetError(err)
	b.logger.Debug("step failed",
		log.String("path", b.Path(b.folder, b.filename)),
		log.Err(err),
	)
	return false
}

func (b *FileBackend) SaveBegin() bool {
	fs, err := b.FS()
	if err != nil {
		return b.fail(fmt.Errorf("resolve save root: %w", err))
	}
	if b.folder != "" && !fs.DirExists(b.folder) {
		if err := fs.MkdirAll(b.folder); err != nil {
			return b.fail(fmt.Errorf("create folder %s: %w", b.folder, err))
		}
		b.logger.Debug("created save folder", log.String("folder", b.folder))
	}
	p := b.Path(b.folder, b.filename)
	f, err := fs.Create(b.FilePath(b.folder, b.filename))
	if err != nil {
		return b.fail(fmt.Errorf("create %s: %w", p, err))
	}
	b.file = f
	return true
}

func (b *FileBackend) SaveUpdate() bool {
	if b.file == nil {
		return b.fail(ErrNotOpen)
	}
	h, err := format.NewHeader(b.data)
	if err != nil {
		return b.fail(err)
	}
	if err := writeFull(b.file, h.Seal()); err != nil {
		return b.fail(fmt.Errorf("write header: %w", err))
	}
	if err := writeFull(b.file, format.Obfuscated(b.data)); err != nil {
		return b.fail(fmt.Errorf("write payload: %w", err))
	}
	b.logger.Debug("wrote save",
		log.String("path", b.Path(b.folder, b.filename)),
		log.Int("bytes", format.HeaderSize+len(b.data)),
		log.Uint32("checksum", h.Checksum),
	)
	return true
}

func (b *FileBackend) SaveEnd() bool {
	return b.closeFile()
}

func (b *FileBackend) LoadBegin() bool {
	fs, err := b.FS()
	if err != nil {
		return b.fail(fmt.Errorf("resolve save root: %w", err))
	}
	p, fp := b.Path(b.folder, b.filename), b.FilePath(b.folder, b.filename)
	if !fs.Exists(fp) {
		return b.fail(fmt.Errorf("%w: %s", ErrNotFound, p))
	}
	f, err := fs.Open(fp)
	if err != nil {
		return b.fail(fmt.Errorf("open %s: %w", p, err))
	}
	b.file = f

	size, err := fileio.Size(f)
	if err != nil {
		return b.fail(fmt.Errorf("measure %s: %w", p, err))
	}
	switch {
	case size == 0:
		return b.fail(fmt.Errorf("%w: %s", ErrEmptyFile, p))
	case size <= format.HeaderSize:
		return b.fail(fmt.Errorf("%w: %s is %d bytes", format.ErrTruncated, p, size))
	case size > format.MaxFileSize:
		return b.fail(fmt.Errorf("%w: %s is %d bytes", ErrTooLarge, p, size))
	case b.maxPayload > 0 && size-format.HeaderSize > b.maxPayload:
		return b.fail(fmt.Errorf("%w: %s payload is %d bytes, limit %d",
			ErrTooLarge, p, size-format.HeaderSize, b.maxPayload))
	}
	b.fileSize = size
	return true
}

func (b *FileBackend) LoadUpdate() bool {
	if b.file == nil {
		return b.fail(ErrNotOpen)
	}
	if b.dst == nil {
		return b.fail(errors.New("storage: no load destination"))
	}

	raw := make([]byte, format.HeaderSize)
	if err := readFull(b.file, raw); err != nil {
		return b.fail(fmt.Errorf("read header: %w", err))
	}
	h, err := format.OpenHeader(raw)
	if err != nil {
		return b.fail(err)
	}

	payload := make([]byte, b.fileSize-format.HeaderSize)
	if err := readFull(b.file, payload); err != nil {
		return b.fail(fmt.Errorf("read payload: %w", err))
	}
	format.Obfuscate(payload)

	if err := h.Validate(b.fileSize, payload); err != nil {
		return b.fail(err)
	}

	*b.dst = payload
	b.logger.Debug("read save",
		log.String("path", b.Path(b.folder, b.filename)),
		log.Int("bytes", len(payload)),
	)
	return true
}

func (b *FileBackend) LoadEnd() bool {
	return b.closeFile()
}

func (b *FileBackend) closeFile() bool {
	if b.err != nil {
		return false
	}
	if b.file == nil {
		return b.fail(ErrNotOpen)
	}
	f := b.file
	b.file = nil
	if err := f.Close(); err != nil {
		return b.fail(fmt.Errorf("close %s: %w", b.Path(b.folder, b.filename), err))
	}
	return true
}

func (b *FileBackend) Draw() {
	if b.indicator == nil || (b.data == nil && b.dst == nil) {
		return
	}
	b.indicator(b.saving, b.filename)
}

func (b *FileBackend) Release() {
	if b.file != nil {
		if err := b.file.Close(); err != nil {
			b.logger.Warn("close on release failed",
				log.String("path", b.Path(b.folder, b.filename)),
				log.Err(err),
			)
		}
		b.file = nil
	}
	b.data = nil
	b.dst = nil
	b.fileSize = 0
}

func writeFull(w io.Writer, p []byte) error {
	n, err := w.Write(p)
	if err != nil {
		return err
	}
	if n != len(p) {
		return fmt.Errorf("%w: wrote %d of %d bytes", ErrShortWrite, n, len(p))
	}
	return nil
}

func readFull(r io.Reader, p []byte) error {
	n, err := io.ReadFull(r, p)
	if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: read %d of %d bytes", ErrShortRead, n, len(p))
	}
	return err
}
