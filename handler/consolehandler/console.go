package consolehandler

import (
	"bytes"
	"io"
	"os"
	"sync"
	"sync/atomic"

	"github.com/mattn/go-isatty"

	"github.com/philipp01105/lvlog/core"
	"github.com/philipp01105/lvlog/formatter"
	"github.com/philipp01105/lvlog/handler"
)

// ColorMode selects when the default text formatter colours level tags.
type ColorMode int

const (
	// ColorAuto colours only when the writer is a terminal.
	ColorAuto ColorMode = iota
	ColorAlways
	ColorNever
)

// ConsoleConfig holds configuration for console handler
type ConsoleConfig struct {
	// Writer to write to (default: os.Stdout)
	Writer io.Writer
	// Formatter to use (default: TextFormatter)
	Formatter formatter.Formatter
	// Color and IncludeCaller apply to the default TextFormatter only
	Color         ColorMode
	IncludeCaller bool
	// ConcurrentWriter indicates the Writer supports concurrent Write calls.
	// Automatically detected for io.Discard and *os.File.
	ConcurrentWriter bool
}

// ConsoleHandler writes formatted entries to an io.Writer synchronously.
// Entries are fully written before Handle returns.
type ConsoleHandler struct {
	writer          io.Writer
	formatter       formatter.Formatter
	bufferFormatter formatter.BufferFormatter
	concurrentSafe  bool
	stats           *handler.Stats

	mu      sync.Mutex // serializes writes and guards buf
	buf     bytes.Buffer
	bufPool sync.Pool
	closed  atomic.Bool
}

// isConcurrentSafeWriter returns true if the writer is known to be safe for
// concurrent Write calls, allowing the handler to skip write-level locking.
func isConcurrentSafeWriter(w io.Writer) bool {
	if w == io.Discard {
		return true
	}
	_, ok := w.(*os.File)
	return ok
}

// isTerminal reports whether w is a terminal (or Cygwin pty).
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func applyConsoleDefaults(cfg *ConsoleConfig) {
	if cfg.Writer == nil {
		cfg.Writer = os.Stdout
	}
	if cfg.Formatter == nil {
		color := cfg.Color == ColorAlways || (cfg.Color == ColorAuto && isTerminal(cfg.Writer))
		cfg.Formatter = formatter.NewTextFormatter(formatter.Config{Color: color, IncludeCaller: cfg.IncludeCaller})
	}
}

// NewConsoleHandler creates a new console handler.
func NewConsoleHandler(cfg ConsoleConfig) *ConsoleHandler {
	applyConsoleDefaults(&cfg)
	h := &ConsoleHandler{
		writer:         cfg.Writer,
		formatter:      cfg.Formatter,
		concurrentSafe: cfg.ConcurrentWriter || isConcurrentSafeWriter(cfg.Writer),
		stats:          handler.NewStats(),
	}
	h.bufferFormatter, _ = cfg.Formatter.(formatter.BufferFormatter)
	h.bufPool.New = func() interface{} {
		b := new(bytes.Buffer)
		b.Grow(256)
		return b
	}
	return h
}

// Handle formats and writes one entry.
func (h *ConsoleHandler) Handle(entry *core.Entry) error {
	if h.closed.Load() {
		return handler.ErrClosed
	}
	err := h.write(entry)
	h.stats.Record(entry.Level, err)
	return err
}

func (h *ConsoleHandler) write(entry *core.Entry) error {
	if h.bufferFormatter == nil {
		data, err := h.formatter.Format(entry)
		if err != nil {
			return err
		}
		return h.writeBytes(data)
	}

	// Uncontended: format into the handler-owned buffer under the lock.
	if h.mu.TryLock() {
		h.buf.Reset()
		h.bufferFormatter.FormatEntry(entry, &h.buf)
		_, err := h.writer.Write(h.buf.Bytes())
		h.mu.Unlock()
		return err
	}

	// Contended: format outside the lock in a pooled buffer.
	b := h.bufPool.Get().(*bytes.Buffer)
	b.Reset()
	h.bufferFormatter.FormatEntry(entry, b)
	err := h.writeBytes(b.Bytes())
	h.bufPool.Put(b)
	return err
}

func (h *ConsoleHandler) writeBytes(p []byte) error {
	if h.concurrentSafe {
		_, err := h.writer.Write(p)
		return err
	}
	h.mu.Lock()
	_, err := h.writer.Write(p)
	h.mu.Unlock()
	return err
}

// CanRecycleEntry returns true because entries are written before Handle returns.
func (h *ConsoleHandler) CanRecycleEntry() bool {
	return true
}

// Stats returns a snapshot of the current statistics
func (h *ConsoleHandler) Stats() handler.Snapshot {
	return h.stats.GetSnapshot()
}

// Close marks the handler closed. The writer is owned by the caller and
// is left open.
func (h *ConsoleHandler) Close() error {
	h.closed.Store(true)
	return nil
}
