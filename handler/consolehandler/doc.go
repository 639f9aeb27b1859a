// Package consolehandler provides a synchronous handler that writes
// formatted log entries to any io.Writer (default: os.Stdout).
//
// When no formatter is given, a TextFormatter is used and its level
// tags are coloured if the writer is a terminal (detected with
// go-isatty), or as forced by ConsoleConfig.Color.
package consolehandler
