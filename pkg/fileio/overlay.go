package fileio

import "sort"

// Overlay serves a path from the writable base when the base has it and
// otherwise searches read-only packs in order. A slot saved over a packed
// default therefore shadows it. Writes and directory creation always go to
// the base.
type Overlay struct {
	base  FS
	packs []FS
}

// NewOverlay layers packs over base.
func NewOverlay(base FS, packs ...FS) *Overlay {
	return &Overlay{base: base, packs: packs}
}

// Base returns the writable filesystem.
func (o *Overlay) Base() FS { return o.base }

func (o *Overlay) Exists(p string) bool {
	if o.base.Exists(p) {
		return true
	}
	for _, pk := range o.packs {
		if pk.Exists(p) {
			return true
		}
	}
	return false
}

func (o *Overlay) Open(p string) (File, error) {
	if o.base.Exists(p) {
		return o.base.Open(p)
	}
	for _, pk := range o.packs {
		if pk.Exists(p) {
			return pk.Open(p)
		}
	}
	return o.base.Open(p)
}

func (o *Overlay) Create(p string) (File, error) { return o.base.Create(p) }

func (o *Overlay) DirExists(p string) bool {
	if o.base.DirExists(p) {
		return true
	}
	for _, pk := range o.packs {
		if pk.DirExists(p) {
			return true
		}
	}
	return false
}

func (o *Overlay) MkdirAll(p string) error { return o.base.MkdirAll(p) }

// List merges the listings of every layer that can enumerate dir. A
// directory missing from some layers is not an error unless it is missing
// from all of them.
func (o *Overlay) List(dir string) ([]string, error) {
	seen := map[string]struct{}{}
	var firstErr error
	found := false
	for _, layer := range append([]FS{o.base}, o.packs...) {
		l, ok := layer.(Lister)
		if !ok || !layer.DirExists(dir) {
			continue
		}
		names, err := l.List(dir)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		found = true
		for _, n := range names {
			seen[n] = struct{}{}
		}
	}
	if !found && firstErr != nil {
		return nil, firstErr
	}
	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	return names, nil
}
