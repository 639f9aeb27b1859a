package logger

import (
	"sync"

	"github.com/philipp01105/lvlog/core"
	"github.com/philipp01105/lvlog/formatter"
	"github.com/philipp01105/lvlog/handler/consolehandler"
)

var (
	defaultLogger *Logger
	defaultMu     sync.RWMutex
)

func init() {
	h := consolehandler.NewConsoleHandler(consolehandler.ConsoleConfig{
		Formatter: formatter.NewTextFormatter(formatter.Config{}),
	})

	l, err := New(Options{}, h)
	if err != nil {
		panic(err)
	}
	defaultLogger = l
}

// Default returns the default logger
func Default() *Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLogger
}

// SetDefault sets the default logger. A nil logger is ignored.
func SetDefault(l *Logger) {
	if l == nil {
		return
	}
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultLogger = l
}

// Package-level convenience functions using the default logger. They
// call emit directly so caller information points at the user's code.

// Trace logs a trace message using the default logger
func Trace(msg string, fields ...core.Field) {
	_ = Default().emit(traceDef, msg, fields, 1)
}

// Debug logs a debug message using the default logger
func Debug(msg string, fields ...core.Field) {
	_ = Default().emit(debugDef, msg, fields, 1)
}

// Info logs an info message using the default logger
func Info(msg string, fields ...core.Field) {
	_ = Default().emit(infoDef, msg, fields, 1)
}

// Warn logs a warning message using the default logger
func Warn(msg string, fields ...core.Field) {
	_ = Default().emit(warnDef, msg, fields, 1)
}

// Error logs an error message using the default logger
func Error(msg string, fields ...core.Field) {
	_ = Default().emit(errorDef, msg, fields, 1)
}

// Fatal logs a fatal message using the default logger and exits the program
func Fatal(msg string, fields ...core.Field) {
	_ = Default().emit(fatalDef, msg, fields, 1)
	osExit(1)
}

// Log logs at a named level of the default logger
func Log(label, msg string, fields ...core.Field) error {
	return Default().logLabel(label, msg, fields, 2)
}

// AddLevel registers a level on the default logger
func AddLevel(label string, value Level) bool {
	return Default().AddLevel(label, value)
}

// SetLevel changes the default logger's threshold
func SetLevel(labelOrValue string) error {
	return Default().SetLevel(labelOrValue)
}

// Debugf logs a formatted debug message using the default logger
func Debugf(format string, args ...interface{}) {
	Default().emitf(debugDef, format, args)
}

// Infof logs a formatted info message using the default logger
func Infof(format string, args ...interface{}) {
	Default().emitf(infoDef, format, args)
}

// Warnf logs a formatted warning message using the default logger
func Warnf(format string, args ...interface{}) {
	Default().emitf(warnDef, format, args)
}

// Errorf logs a formatted error message using the default logger
func Errorf(format string, args ...interface{}) {
	Default().emitf(errorDef, format, args)
}

// Fatalf logs a formatted fatal message using the default logger and exits the program
func Fatalf(format string, args ...interface{}) {
	Default().emitf(fatalDef, format, args)
	osExit(1)
}

// With creates a child of the default logger with additional fields
func With(fields ...core.Field) *Logger {
	return Default().Child(fields...)
}
