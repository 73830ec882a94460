package save

import (
	"github.com/bft-labs/gamesave/pkg/log"
	"github.com/google/uuid"
)

// Option configures optional behavior of an Orchestrator.
type Option func(*options)

type options struct {
	logger     log.Logger
	maxPayload int
	newID      func() string
}

func defaultOptions() options {
	return options{
		logger: log.Discard,
		newID:  uuid.NewString,
	}
}

// WithLogger sets the logger. If not provided, nothing is logged.
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		o.logger = log.OrDiscard(logger)
	}
}

// WithMaxPayload rejects saves larger than n bytes. Zero means no limit
// beyond what the file format can describe.
func WithMaxPayload(n int) Option {
	return func(o *options) {
		o.maxPayload = n
	}
}

// WithIDGenerator replaces the generator of the operation IDs attached to
// log lines.
func WithIDGenerator(gen func() string) Option {
	return func(o *options) {
		if gen != nil {
			o.newID = gen
		}
	}
}
