package core

import (
	"math"
	"strconv"
)

// Level is the numeric severity of a log entry. Higher values are more
// severe. Labels are not part of the type; each Registry decides which
// label names a given value.
type Level int64

// Built-in severities. Every Registry starts with exactly these.
const (
	TraceLevel Level = 10
	DebugLevel Level = 20
	InfoLevel  Level = 30
	WarnLevel  Level = 40
	ErrorLevel Level = 50
	FatalLevel Level = 60
	// SilentLevel is only meaningful as a threshold: no finite severity
	// reaches it, so a logger set to silent forwards nothing.
	SilentLevel Level = math.MaxInt64
)

// Built-in labels.
const (
	TraceLabel  = "trace"
	DebugLabel  = "debug"
	InfoLabel   = "info"
	WarnLabel   = "warn"
	ErrorLabel  = "error"
	FatalLabel  = "fatal"
	SilentLabel = "silent"
)

// LevelDef pairs a label with its numeric severity.
type LevelDef struct {
	Label string
	Value Level
}

var builtinLevels = [...]LevelDef{
	{TraceLabel, TraceLevel},
	{DebugLabel, DebugLevel},
	{InfoLabel, InfoLevel},
	{WarnLabel, WarnLevel},
	{ErrorLabel, ErrorLevel},
	{FatalLabel, FatalLevel},
	{SilentLabel, SilentLevel},
}

// BuiltinLevels returns the default level set in ascending order.
func BuiltinLevels() []LevelDef {
	out := make([]LevelDef, len(builtinLevels))
	copy(out, builtinLevels[:])
	return out
}

// IsBuiltinLabel reports whether label is one of the default labels.
func IsBuiltinLabel(label string) bool {
	for _, d := range builtinLevels {
		if d.Label == label {
			return true
		}
	}
	return false
}

// IsSilent reports whether l is the silent sentinel.
func (l Level) IsSilent() bool {
	return l == SilentLevel
}

// String returns the decimal value, or "Infinity" for the silent sentinel.
func (l Level) String() string {
	if l.IsSilent() {
		return "Infinity"
	}
	return strconv.FormatInt(int64(l), 10)
}

// Enabled reports whether an entry at candidate passes threshold.
func Enabled(candidate, threshold Level) bool {
	return candidate >= threshold
}
