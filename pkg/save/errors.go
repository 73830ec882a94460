package save

import "errors"

// Start errors. No callback fires for an operation rejected with one of
// these; the in-flight operation, if any, is unaffected.
var (
	// ErrAlreadyInProgress is returned when a save or load is started while
	// another operation is still working.
	ErrAlreadyInProgress = errors.New("gamesave: operation already in progress")

	// ErrInvalidArgument is returned for an empty payload, nil callback,
	// nil destination or empty filename.
	ErrInvalidArgument = errors.New("gamesave: invalid argument")

	// ErrPayloadTooLarge is returned when a save payload exceeds the
	// configured maximum.
	ErrPayloadTooLarge = errors.New("gamesave: payload too large")

	// ErrNoBackend is returned when the orchestrator has no backend.
	ErrNoBackend = errors.New("gamesave: no backend")
)
