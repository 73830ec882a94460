// Package log is the logging seam shared by the gamesave packages.
//
// The orchestrator, the file backend and the folder watcher each take a
// Logger through a WithLogger option and hold Discard until one is given,
// so a game embedding them gets no output it did not ask for. The gamesave
// CLI logs through zerolog:
//
//	logger := log.NewZerologAdapter(zerolog.InfoLevel)
//	backend := storage.New(storage.WithLogger(logger))
//
// An engine with its own logging implements Logger directly:
//
//	type engineLogger struct{ ... }
//
//	func (l *engineLogger) Debug(msg string, fields ...log.Field) { ... }
//	func (l *engineLogger) Info(msg string, fields ...log.Field)  { ... }
//	func (l *engineLogger) Warn(msg string, fields ...log.Field)  { ... }
//	func (l *engineLogger) Error(msg string, fields ...log.Field) { ... }
package log
