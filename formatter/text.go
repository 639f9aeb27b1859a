package formatter

import (
	"bytes"
	"io"
	"strconv"
	"time"

	"github.com/philipp01105/lvlog/core"
)

// TextFormatter formats log entries as human-readable text
type TextFormatter struct {
	Config
	tags tagCache
}

// NewTextFormatter creates a new text formatter
func NewTextFormatter(cfg Config) *TextFormatter {
	if cfg.TimestampFormat == "" {
		cfg.TimestampFormat = time.RFC3339
	}
	return &TextFormatter{Config: cfg}
}

// Format formats an entry as text
func (f *TextFormatter) Format(entry *core.Entry) ([]byte, error) {
	buf := getBuffer()
	defer putBuffer(buf)

	f.FormatEntry(entry, buf)

	result := make([]byte, buf.Len())
	copy(result, buf.Bytes())
	return result, nil
}

// FormatTo formats an entry and writes it directly to the writer
func (f *TextFormatter) FormatTo(entry *core.Entry, w io.Writer) error {
	buf := getBuffer()
	f.FormatEntry(entry, buf)
	_, err := w.Write(buf.Bytes())
	putBuffer(buf)
	return err
}

// FormatEntry writes the formatted entry into buf (implements BufferFormatter).
func (f *TextFormatter) FormatEntry(entry *core.Entry, buf *bytes.Buffer) {
	buf.Write(entry.Time.AppendFormat(buf.AvailableBuffer(), f.TimestampFormat))

	tag := f.tags.get(entryLabel(entry))
	if f.Color {
		buf.WriteByte(' ')
		buf.WriteString(levelColor(entry.Level))
		buf.WriteString(tag[1 : len(tag)-1])
		buf.WriteString(colorReset)
		buf.WriteByte(' ')
	} else {
		buf.WriteString(tag)
	}

	if f.IncludeCaller && entry.Caller.Defined {
		buf.WriteByte('[')
		buf.WriteString(entry.Caller.ShortFile)
		buf.WriteByte(':')
		buf.Write(strconv.AppendInt(buf.AvailableBuffer(), int64(entry.Caller.Line), 10))
		buf.WriteString("] ")
	}

	buf.WriteString(entry.Message)

	for _, field := range entry.Fields {
		buf.WriteByte(' ')
		buf.WriteString(field.Key)
		buf.WriteByte('=')
		buf.WriteString(field.StringValue())
	}

	buf.WriteByte('\n')
}
