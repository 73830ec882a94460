package save

// Result is the outcome reported to a Callback.
type Result int

const (
	Success Result = iota
	Failure
)

func (r Result) String() string {
	switch r {
	case Success:
		return "Success"
	case Failure:
		return "Failure"
	default:
		return "Unknown"
	}
}

// Callback receives the single terminal result of an operation.
type Callback interface {
	// OnSaveResult is called once when a save finishes.
	OnSaveResult(Result)

	// OnLoadResult is called once when a load finishes. On Success the
	// destination passed to StartLoad holds the payload; on Failure it is
	// nil.
	OnLoadResult(Result)
}

// ErrorReceiver can be implemented by a Callback to learn why an operation
// failed. OnError is called immediately before the Failure result.
type ErrorReceiver interface {
	OnError(err error)
}

// CallbackFuncs adapts plain functions to Callback and ErrorReceiver. Nil
// fields are skipped.
type CallbackFuncs struct {
	Save  func(Result)
	Load  func(Result)
	Error func(error)
}

func (c CallbackFuncs) OnSaveResult(r Result) {
	if c.Save != nil {
		c.Save(r)
	}
}

func (c CallbackFuncs) OnLoadResult(r Result) {
	if c.Load != nil {
		c.Load(r)
	}
}

func (c CallbackFuncs) OnError(err error) {
	if c.Error != nil {
		c.Error(err)
	}
}
