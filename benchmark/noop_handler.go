package benchmark

import (
	"github.com/philipp01105/lvlog/core"
	"github.com/philipp01105/lvlog/handler"
)

// noopHandler consumes entries without formatting, isolating the cost of
// the logger itself.
type noopHandler struct{}

func newNoopHandler() handler.Handler {
	return noopHandler{}
}

func (noopHandler) Handle(e *core.Entry) error {
	_ = len(e.Message) + int(e.Level)
	return nil
}

func (noopHandler) CanRecycleEntry() bool { return true }

func (noopHandler) Close() error { return nil }
