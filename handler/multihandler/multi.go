package multihandler

import (
	"go.uber.org/multierr"

	"github.com/philipp01105/lvlog/core"
	"github.com/philipp01105/lvlog/handler"
)

// MultiHandler sends log entries to multiple handlers
type MultiHandler struct {
	handlers     []handler.Handler
	recycleEntry bool // true when every child supports entry recycling
}

// NewMultiHandler creates a new multi-handler. Nil handlers are skipped.
func NewMultiHandler(handlers ...handler.Handler) *MultiHandler {
	m := &MultiHandler{recycleEntry: true}
	for _, h := range handlers {
		if h == nil {
			continue
		}
		m.handlers = append(m.handlers, h)
		if !handler.CanRecycle(h) {
			m.recycleEntry = false
		}
	}
	return m
}

// Handle sends the entry to every child. A failing child does not stop
// the others; all errors are combined.
func (m *MultiHandler) Handle(entry *core.Entry) error {
	var err error
	for _, h := range m.handlers {
		err = multierr.Append(err, h.Handle(entry))
	}
	return err
}

// CanRecycleEntry returns true if the caller can recycle the entry after Handle returns.
func (m *MultiHandler) CanRecycleEntry() bool {
	return m.recycleEntry
}

// Len returns the number of child handlers.
func (m *MultiHandler) Len() int {
	return len(m.handlers)
}

// Close closes all handlers
func (m *MultiHandler) Close() error {
	var err error
	for _, h := range m.handlers {
		err = multierr.Append(err, h.Close())
	}
	return err
}
