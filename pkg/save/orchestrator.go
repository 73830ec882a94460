package save

import (
	"fmt"
	"time"

	"github.com/bft-labs/gamesave/pkg/format"
	"github.com/bft-labs/gamesave/pkg/log"
)

// Orchestrator sequences one save or load at a time over a Backend.
type Orchestrator struct {
	folder  string
	backend Backend
	opts    options

	mode Mode
	op   *operation
}

// operation is the single in-flight unit of work. It is dropped as soon as
// its result is reported.
type operation struct {
	id       string
	filename string
	data     []byte
	dst      *[]byte
	cb       Callback
	started  time.Time
}

// New creates an idle orchestrator that saves into folder under the
// backend's save root.
func New(folder string, backend Backend, opts ...Option) *Orchestrator {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Orchestrator{
		folder:  folder,
		backend: backend,
		opts:    o,
	}
}

// Folder returns the folder operations read from and write to.
func (o *Orchestrator) Folder() string { return o.folder }

// Mode returns the current state machine position.
func (o *Orchestrator) Mode() Mode { return o.mode }

// IsWorking reports whether an operation is in flight.
func (o *Orchestrator) IsWorking() bool { return o.mode != ModeIdle }

// StartSave begins saving a copy of data to filename. The caller may reuse
// data as soon as StartSave returns.
//
// A non-nil error means the request was rejected: nothing was started and
// cb will never be called.
func (o *Orchestrator) StartSave(data []byte, cb Callback, filename string) error {
	if err := o.checkStart("save", cb, filename); err != nil {
		return err
	}
	if len(data) == 0 {
		o.reject("save", filename, ErrInvalidArgument, "empty payload")
		return fmt.Errorf("%w: empty payload", ErrInvalidArgument)
	}
	if o.tooLarge(len(data)) {
		o.reject("save", filename, ErrPayloadTooLarge, "payload exceeds limit")
		return fmt.Errorf("%w: %d bytes", ErrPayloadTooLarge, len(data))
	}

	buf := make([]byte, len(data))
	copy(buf, data)

	o.op = &operation{
		id:       o.opts.newID(),
		filename: filename,
		data:     buf,
		cb:       cb,
		started:  time.Now(),
	}
	o.backend.InitSave(o.folder, filename, buf)
	o.opts.logger.Info("save started",
		log.String("op", o.op.id),
		log.String("folder", o.folder),
		log.String("file", filename),
		log.Int("bytes", len(buf)),
	)
	o.transition(ModeSaveBegin)
	return nil
}

// StartLoad begins loading filename into *dst. *dst is set when the
// operation succeeds and set to nil when it fails; it is not touched before
// then.
//
// A non-nil error means the request was rejected: nothing was started and
// cb will never be called.
func (o *Orchestrator) StartLoad(dst *[]byte, cb Callback, filename string) error {
	if err := o.checkStart("load", cb, filename); err != nil {
		return err
	}
	if dst == nil {
		o.reject("load", filename, ErrInvalidArgument, "nil destination")
		return fmt.Errorf("%w: nil destination", ErrInvalidArgument)
	}

	o.op = &operation{
		id:       o.opts.newID(),
		filename: filename,
		dst:      dst,
		cb:       cb,
		started:  time.Now(),
	}
	o.backend.InitLoad(o.folder, filename, dst)
	o.opts.logger.Info("load started",
		log.String("op", o.op.id),
		log.String("folder", o.folder),
		log.String("file", filename),
	)
	o.transition(ModeLoadBegin)
	return nil
}

func (o *Orchestrator) checkStart(kind string, cb Callback, filename string) error {
	if o.IsWorking() {
		o.opts.logger.Warn(kind+" rejected, operation in progress",
			log.String("file", filename),
			log.String("active_op", o.op.id),
			log.String("active_file", o.op.filename),
			log.Stringer("mode", o.mode),
		)
		return ErrAlreadyInProgress
	}
	if o.backend == nil {
		o.reject(kind, filename, ErrNoBackend, "no backend")
		return ErrNoBackend
	}
	if cb == nil {
		o.reject(kind, filename, ErrInvalidArgument, "nil callback")
		return fmt.Errorf("%w: nil callback", ErrInvalidArgument)
	}
	if filename == "" {
		o.reject(kind, filename, ErrInvalidArgument, "empty filename")
		return fmt.Errorf("%w: empty filename", ErrInvalidArgument)
	}
	return nil
}

func (o *Orchestrator) reject(kind, filename string, err error, reason string) {
	o.opts.logger.Warn(kind+" rejected",
		log.String("file", filename),
		log.String("reason", reason),
		log.Err(err),
	)
}

func (o *Orchestrator) tooLarge(n int) bool {
	if int64(n) > format.MaxFileSize-format.HeaderSize {
		return true
	}
	return o.opts.maxPayload > 0 && n > o.opts.maxPayload
}

// Update advances the in-flight operation by one step. It does nothing
// when idle.
func (o *Orchestrator) Update() {
	switch o.mode {
	case ModeIdle:
		return
	case ModeSaveBegin:
		o.beginSave()
	case ModeSaveWrite:
		o.writeSave()
	case ModeSaveClose:
		o.closeSave()
	case ModeLoadBegin:
		o.beginLoad()
	case ModeLoadRead:
		o.readLoad()
	case ModeLoadClose:
		o.closeLoad()
	}
}

func (o *Orchestrator) beginSave() { o.step(o.backend.SaveBegin) }
func (o *Orchestrator) writeSave() { o.step(o.backend.SaveUpdate) }
func (o *Orchestrator) closeSave() { o.step(o.backend.SaveEnd) }
func (o *Orchestrator) beginLoad() { o.step(o.backend.LoadBegin) }
func (o *Orchestrator) readLoad()  { o.step(o.backend.LoadUpdate) }
func (o *Orchestrator) closeLoad() { o.step(o.backend.LoadEnd) }

// step runs one backend call and moves the state machine on its outcome:
// done advances, failed reports, anything else retries next Update.
func (o *Orchestrator) step(fn func() bool) {
	if fn() {
		next := o.mode.next()
		if next == ModeIdle {
			o.report(Success)
			return
		}
		o.transition(next)
		return
	}
	if o.backend.ErrorOccurred() {
		o.report(Failure)
	}
}

func (o *Orchestrator) transition(next Mode) {
	prev := o.mode
	o.mode = next
	fields := []log.Field{
		log.Stringer("from", prev),
		log.Stringer("to", next),
	}
	if o.op != nil {
		fields = append(fields, log.String("op", o.op.id))
	}
	o.opts.logger.Debug("mode transition", fields...)
}

// report delivers the terminal result and resets the orchestrator. State is
// cleared before the callback runs, so the callback may start the next
// operation.
func (o *Orchestrator) report(result Result) {
	op := o.op
	family := o.mode
	cause := o.backend.Err()

	o.backend.Release()
	if result == Failure && op.dst != nil {
		*op.dst = nil
	}
	o.op = nil
	o.transition(ModeIdle)

	kind := "load"
	if family.IsSave() {
		kind = "save"
	}
	fields := []log.Field{
		log.String("op", op.id),
		log.String("file", op.filename),
		log.Stringer("result", result),
		log.Stringer("step", family),
		log.Duration("took", time.Since(op.started)),
	}
	if result == Success {
		if op.dst != nil {
			fields = append(fields, log.Int("bytes", len(*op.dst)))
		}
		o.opts.logger.Info(kind+" finished", fields...)
	} else {
		if cause == nil {
			cause = fmt.Errorf("%s failed in %s", kind, family)
		}
		fields = append(fields, log.Err(cause))
		o.opts.logger.Warn(kind+" failed", fields...)
		if r, ok := op.cb.(ErrorReceiver); ok {
			r.OnError(cause)
		}
	}

	if family.IsSave() {
		op.cb.OnSaveResult(result)
	} else {
		op.cb.OnLoadResult(result)
	}
}

// Draw forwards to the backend's draw hook.
func (o *Orchestrator) Draw() {
	if o.backend == nil {
		return
	}
	o.backend.Draw()
}
