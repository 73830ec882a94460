package storage

import (
	"github.com/bft-labs/gamesave/pkg/fileio"
	"github.com/bft-labs/gamesave/pkg/log"
	"github.com/bft-labs/gamesave/pkg/platform"
)

// Option configures a FileBackend.
type Option func(*FileBackend)

// WithPlatform selects the platform whose save root and separator are used.
// Defaults to the host platform.
func WithPlatform(p platform.Platform) Option {
	return func(b *FileBackend) {
		b.platform = p
	}
}

// WithEnv supplies the inputs to save root resolution. Defaults to
// platform.HostEnv(), read on first use.
func WithEnv(env platform.Env) Option {
	return func(b *FileBackend) {
		b.env = &env
	}
}

// WithRoot stores saves under dir on disk instead of the platform's save
// root.
func WithRoot(dir string) Option {
	return func(b *FileBackend) {
		b.base = fileio.Disk(dir)
	}
}

// WithFS stores saves in fs instead of the platform's save root.
func WithFS(fs fileio.FS) Option {
	return func(b *FileBackend) {
		b.base = fs
	}
}

// WithPacks makes loads search the given read-only packs before the save
// root.
func WithPacks(packs ...fileio.FS) Option {
	return func(b *FileBackend) {
		b.packs = append(b.packs, packs...)
	}
}

// WithLogger sets the logger. If not provided, nothing is logged.
func WithLogger(logger log.Logger) Option {
	return func(b *FileBackend) {
		b.logger = log.OrDiscard(logger)
	}
}

// WithIndicator registers fn to be called from Draw while an operation is
// configured.
func WithIndicator(fn func(saving bool, file string)) Option {
	return func(b *FileBackend) {
		b.indicator = fn
	}
}

// WithMaxPayload makes loads fail before allocating when the payload would
// exceed n bytes. Zero means no limit.
func WithMaxPayload(n int64) Option {
	return func(b *FileBackend) {
		b.maxPayload = n
	}
}
