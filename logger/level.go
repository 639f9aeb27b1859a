package logger

import (
	"github.com/philipp01105/lvlog/core"
)

// Level re-exports core.Level for convenience.
type Level = core.Level

const (
	TraceLevel  = core.TraceLevel
	DebugLevel  = core.DebugLevel
	InfoLevel   = core.InfoLevel
	WarnLevel   = core.WarnLevel
	ErrorLevel  = core.ErrorLevel
	FatalLevel  = core.FatalLevel
	SilentLevel = core.SilentLevel
)

// LevelsView is a read-only copy of a logger's level mappings.
type LevelsView struct {
	Values map[string]Level
	Labels map[Level]string
}

// Levels returns the logger's current mappings. Changing the returned
// maps has no effect on the logger.
func (l *Logger) Levels() LevelsView {
	return LevelsView{
		Values: l.registry.Values(),
		Labels: l.registry.Labels(),
	}
}

// LevelChangeFunc is called after the threshold has been set, with the
// previous and the new threshold.
type LevelChangeFunc func(from, to core.LevelDef)

// OnLevelChange registers fn on this logger. Children do not inherit it.
func (l *Logger) OnLevelChange(fn LevelChangeFunc) {
	if fn == nil {
		return
	}
	l.mu.Lock()
	l.listeners = append(l.listeners, fn)
	l.mu.Unlock()
}
