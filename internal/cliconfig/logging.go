package cliconfig

import (
	"github.com/rs/zerolog"

	"github.com/bft-labs/gamesave/pkg/log"
)

// Logger returns a console logger writing to stderr at the given level.
// An unparsable level falls back to info.
func Logger(level string) zerolog.Logger {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	return log.NewZerologAdapter(lvl).Logger()
}
