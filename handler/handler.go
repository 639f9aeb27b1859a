package handler

import (
	"errors"

	"github.com/philipp01105/lvlog/core"
)

// ErrClosed is returned by Handle after Close.
var ErrClosed = errors.New("handler closed")

// Handler receives every entry a logger accepted. The entry carries the
// emitting logger's numeric severity and label; handlers must not
// re-filter by label name since labels are per-logger.
type Handler interface {
	// Handle processes a log entry
	Handle(entry *core.Entry) error

	// Close closes the handler and releases resources
	Close() error
}

// Recycler is implemented by handlers that are done with an entry when
// Handle returns, allowing the logger to return it to the pool.
type Recycler interface {
	CanRecycleEntry() bool
}

// CanRecycle reports whether h promises not to retain entries.
func CanRecycle(h Handler) bool {
	rc, ok := h.(Recycler)
	return ok && rc.CanRecycleEntry()
}

// StatsProvider is implemented by handlers that track Stats.
type StatsProvider interface {
	Stats() Snapshot
}

// Func adapts a plain function to Handler. The function owns nothing, so
// Close is a no-op and entries are never retained past the call.
type Func func(entry *core.Entry) error

func (f Func) Handle(entry *core.Entry) error { return f(entry) }
func (f Func) Close() error                   { return nil }
