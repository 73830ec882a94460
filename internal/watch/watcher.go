// Package watch verifies save slots when they change on disk.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/bft-labs/gamesave/pkg/log"
	"github.com/bft-labs/gamesave/pkg/save"
)

// Event is the outcome of verifying one slot.
type Event struct {
	File   string
	Result save.Result
	Err    error
	Bytes  int
}

// Watcher monitors a save folder via fsnotify and loads every slot that is
// written, reporting whether it still decodes.
type Watcher struct {
	dir  string
	orch *save.Orchestrator

	logger   log.Logger
	pattern  string
	delay    time.Duration
	tick     time.Duration
	onResult func(Event)
	status   *StatusFile

	mu      sync.Mutex
	timers  map[string]*time.Timer
	pending chan string
	done    chan struct{}
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithLogger sets the logger. If not provided, nothing is logged.
func WithLogger(logger log.Logger) Option {
	return func(w *Watcher) {
		w.logger = log.OrDiscard(logger)
	}
}

// WithPattern restricts verification to file names matching a
// filepath.Match pattern.
func WithPattern(pattern string) Option {
	return func(w *Watcher) { w.pattern = pattern }
}

// WithDebounce sets how long a file must be quiet before it is verified.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) { w.delay = d }
}

// WithTick sets the Update interval used while verifying.
func WithTick(d time.Duration) Option {
	return func(w *Watcher) { w.tick = d }
}

// WithResultHandler registers fn to receive every verification outcome.
func WithResultHandler(fn func(Event)) Option {
	return func(w *Watcher) { w.onResult = fn }
}

// WithStatusFile records every outcome in f.
func WithStatusFile(f *StatusFile) Option {
	return func(w *Watcher) { w.status = f }
}

// New creates a watcher over dir, the on-disk location of o's folder.
// Only Run drives o, so o must not be used elsewhere while Run is active.
func New(dir string, o *save.Orchestrator, opts ...Option) *Watcher {
	w := &Watcher{
		dir:     dir,
		orch:    o,
		logger:  log.Discard,
		pattern: "*",
		delay:   200 * time.Millisecond,
		timers:  make(map[string]*time.Timer),
		pending: make(chan string, 64),
		done:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run watches until ctx is cancelled. Verification happens on the calling
// goroutine, one slot at a time. A Watcher runs at most once.
func (w *Watcher) Run(ctx context.Context) error {
	defer close(w.done)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()
	defer w.stopTimers()

	if err := watcher.Add(w.dir); err != nil {
		return fmt.Errorf("watch %s: %w", w.dir, err)
	}
	w.logger.Info("watching save folder", log.String("dir", w.dir))
	skip := w.ownFiles()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if skip[absPath(event.Name)] {
				continue
			}
			name := filepath.Base(event.Name)
			if !w.matches(name) {
				continue
			}
			w.schedule(name)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", log.Err(err))

		case name := <-w.pending:
			w.verify(ctx, name)
		}
	}
}

// ownFiles returns the paths the watcher writes itself. Events for them are
// never verified, or recording a status inside dir would retrigger forever.
func (w *Watcher) ownFiles() map[string]bool {
	skip := make(map[string]bool)
	if w.status != nil {
		p := absPath(w.status.Path())
		skip[p] = true
		skip[p+".tmp"] = true
	}
	return skip
}

func absPath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return filepath.Clean(p)
}

func (w *Watcher) matches(name string) bool {
	ok, err := filepath.Match(w.pattern, name)
	return err == nil && ok
}

// schedule (re)starts the quiet period for name.
func (w *Watcher) schedule(name string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if t, ok := w.timers[name]; ok {
		t.Stop()
	}
	w.timers[name] = time.AfterFunc(w.delay, func() {
		w.mu.Lock()
		delete(w.timers, name)
		w.mu.Unlock()
		select {
		case w.pending <- name:
		case <-w.done:
		}
	})
}

func (w *Watcher) stopTimers() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for name, t := range w.timers {
		t.Stop()
		delete(w.timers, name)
	}
}

// verify loads name through the orchestrator and reports the outcome. A load
// cut short by ctx is not reported.
func (w *Watcher) verify(ctx context.Context, name string) {
	var (
		dst   []byte
		ev    = Event{File: name}
		cause error
	)
	cb := save.CallbackFuncs{
		Load:  func(r save.Result) { ev.Result = r },
		Error: func(err error) { cause = err },
	}
	if err := w.orch.StartLoad(&dst, cb, name); err != nil {
		w.logger.Warn("verify not started", log.String("file", name), log.Err(err))
		return
	}
	if err := save.Drive(ctx, w.orch, w.tick); err != nil {
		return
	}
	ev.Err = cause
	ev.Bytes = len(dst)

	if ev.Result == save.Success {
		w.logger.Info("slot verified", log.String("file", name), log.Int("bytes", ev.Bytes))
	} else {
		w.logger.Warn("slot corrupt", log.String("file", name), log.Err(ev.Err))
	}
	if w.status != nil {
		if err := w.status.Record(ev, time.Now()); err != nil {
			w.logger.Warn("record status failed", log.String("path", w.status.Path()), log.Err(err))
		}
	}
	if w.onResult != nil {
		w.onResult(ev)
	}
}
