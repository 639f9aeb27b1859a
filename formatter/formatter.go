package formatter

import (
	"bytes"
	"io"
	"strings"
	"sync"

	"github.com/philipp01105/lvlog/core"
)

// Formatter defines the interface for log formatters
type Formatter interface {
	// Format formats a log entry into bytes
	Format(entry *core.Entry) ([]byte, error)
}

// WriterFormatter is an optional interface that formatters can implement
// to write directly to a writer without intermediate byte slice allocation.
type WriterFormatter interface {
	// FormatTo formats a log entry and writes it directly to the writer
	FormatTo(entry *core.Entry, w io.Writer) error
}

// BufferFormatter is an optional interface that formatters can implement
// to format directly into a caller-provided buffer.
type BufferFormatter interface {
	// FormatEntry formats a log entry into the given buffer.
	FormatEntry(entry *core.Entry, buf *bytes.Buffer)
}

// Config holds common formatter configuration
type Config struct {
	// IncludeCaller enables caller information in log output
	IncludeCaller bool
	// TimestampFormat specifies the time format (empty for RFC3339)
	TimestampFormat string
	// Color wraps the level tag in ANSI colour codes (text only)
	Color bool
	// LevelKey is the JSON key for the numeric severity (default "level")
	LevelKey string
	// LabelKey is the JSON key for the level label (default "label").
	// Set OmitLabel to drop it.
	LabelKey  string
	OmitLabel bool
}

var bufferPool = &sync.Pool{
	New: func() interface{} {
		b := new(bytes.Buffer)
		b.Grow(256)
		return b
	},
}

func getBuffer() *bytes.Buffer {
	buf := bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

func putBuffer(buf *bytes.Buffer) {
	if buf.Cap() > 64*1024 { // Don't keep very large buffers
		return
	}
	bufferPool.Put(buf)
}

// entryLabel returns the label to print for e. Entries built outside a
// logger may carry no label; the numeric severity stands in for it.
func entryLabel(e *core.Entry) string {
	if e.Label != "" {
		return e.Label
	}
	return e.Level.String()
}

// tagCache memoizes " [LABEL] " strings. Labels are registered at
// runtime so the set cannot be precomputed.
type tagCache struct {
	m sync.Map // string -> string
}

func (c *tagCache) get(label string) string {
	if v, ok := c.m.Load(label); ok {
		return v.(string)
	}
	tag := " [" + strings.ToUpper(label) + "] "
	c.m.Store(label, tag)
	return tag
}

const (
	colorReset  = "\x1b[0m"
	colorGray   = "\x1b[90m"
	colorGreen  = "\x1b[32m"
	colorYellow = "\x1b[33m"
	colorRed    = "\x1b[31m"
	colorBoldRd = "\x1b[1;31m"
)

// levelColor picks a colour by severity band so custom levels land
// next to the built-in level below them.
func levelColor(l core.Level) string {
	switch {
	case l >= core.FatalLevel:
		return colorBoldRd
	case l >= core.ErrorLevel:
		return colorRed
	case l >= core.WarnLevel:
		return colorYellow
	case l >= core.InfoLevel:
		return colorGreen
	default:
		return colorGray
	}
}
