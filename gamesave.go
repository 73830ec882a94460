// Package gamesave persists game state to per-platform save files.
//
// Example usage:
//
//	s, err := gamesave.Open(gamesave.Config{Folder: "mygame"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer s.Close()
//	if err := s.StartSave(state, cb, "slot1.sav"); err != nil {
//	    log.Fatal(err)
//	}
//	for s.IsWorking() {
//	    s.Update()
//	}
package gamesave

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/bft-labs/gamesave/pkg/fileio"
	"github.com/bft-labs/gamesave/pkg/log"
	"github.com/bft-labs/gamesave/pkg/platform"
	"github.com/bft-labs/gamesave/pkg/save"
	"github.com/bft-labs/gamesave/pkg/storage"
)

// Result reports how an operation ended.
type Result = save.Result

const (
	Success = save.Success
	Failure = save.Failure
)

// Callback receives operation results.
type Callback = save.Callback

// CallbackFuncs adapts plain functions to Callback.
type CallbackFuncs = save.CallbackFuncs

// New returns an orchestrator saving into folder under the host platform's
// save root.
func New(folder string, opts ...save.Option) *save.Orchestrator {
	return save.New(folder, storage.New(), opts...)
}

// Config describes a Session.
type Config struct {
	// Folder is the save folder under the save root.
	Folder string
	// Root replaces the platform save root with a directory on disk.
	Root string
	// Platform selects path rules. The zero value is Linux; use
	// platform.Host() for the running system.
	Platform platform.Platform
	// Env overrides the process environment used to find the save root.
	Env *platform.Env
	// Packs are zip archives searched before the save root on load.
	Packs []string
	// MaxPayload limits save and load sizes. Zero means no limit.
	MaxPayload int
	// Logger receives operation logs. Nil disables logging.
	Logger log.Logger
}

// Session is an orchestrator together with the backend and packs it owns.
type Session struct {
	*save.Orchestrator

	cfg     Config
	backend *storage.FileBackend
	packs   []*fileio.ZipFS
}

// Open opens the configured packs and builds a session over them.
func Open(cfg Config) (*Session, error) {
	if cfg.Folder == "" {
		return nil, fmt.Errorf("%w: empty folder", save.ErrInvalidArgument)
	}
	s := &Session{cfg: cfg}

	var packs []fileio.FS
	for _, p := range cfg.Packs {
		z, err := fileio.OpenZip(p)
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("open pack %s: %w", p, err)
		}
		s.packs = append(s.packs, z)
		packs = append(packs, z)
	}

	opts := []storage.Option{
		storage.WithPlatform(cfg.Platform),
		storage.WithLogger(cfg.Logger),
		storage.WithMaxPayload(int64(cfg.MaxPayload)),
	}
	if cfg.Env != nil {
		opts = append(opts, storage.WithEnv(*cfg.Env))
	}
	if cfg.Root != "" {
		opts = append(opts, storage.WithRoot(cfg.Root))
	}
	if len(packs) > 0 {
		opts = append(opts, storage.WithPacks(packs...))
	}
	s.backend = storage.New(opts...)
	s.Orchestrator = save.New(cfg.Folder, s.backend,
		save.WithLogger(cfg.Logger),
		save.WithMaxPayload(cfg.MaxPayload),
	)
	return s, nil
}

// Backend returns the session's file backend.
func (s *Session) Backend() *storage.FileBackend { return s.backend }

// Dir returns the on-disk directory of the session's folder.
func (s *Session) Dir() (string, error) {
	root := s.cfg.Root
	if root == "" {
		env := platform.HostEnv()
		if s.cfg.Env != nil {
			env = *s.cfg.Env
		}
		r, err := platform.SaveRoot(s.cfg.Platform, env)
		if err != nil {
			return "", err
		}
		root = r
	}
	return filepath.Join(root, filepath.FromSlash(s.cfg.Folder)), nil
}

// List returns the slot names in the session's folder across the save root
// and every pack.
func (s *Session) List() ([]string, error) {
	fs, err := s.backend.FS()
	if err != nil {
		return nil, err
	}
	l, ok := fs.(fileio.Lister)
	if !ok {
		return nil, errors.New("gamesave: filesystem cannot list")
	}
	return l.List(s.cfg.Folder)
}

// Close releases the backend and closes every pack.
func (s *Session) Close() error {
	if s.backend != nil {
		s.backend.Release()
	}
	var errs []error
	for _, z := range s.packs {
		if err := z.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	s.packs = nil
	return errors.Join(errs...)
}
