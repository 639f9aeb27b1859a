// Package handler provides the Handler interface through which loggers
// hand off accepted entries, plus the Stats counters shared by the
// built-in handlers.
//
// A logger only calls its handler after the level check has passed, so
// handlers see nothing below the logger's threshold. Each entry carries
// the numeric severity the emitting logger registered for its label;
// sibling loggers may use different numbers for the same label.
//
// Built-in handlers live in sub-packages:
//
//   - consolehandler writes formatted entries to any io.Writer.
//   - filehandler writes to a size-rotated file via lumberjack.
//   - multihandler fans one entry out to several handlers.
//   - sloghandler bridges log/slog records into a Handler.
//   - zaphandler and zerologhandler forward entries to zap and zerolog.
package handler
