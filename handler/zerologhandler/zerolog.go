package zerologhandler

import (
	"errors"
	"io"
	"os"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/philipp01105/lvlog/core"
	"github.com/philipp01105/lvlog/handler"
)

// ZerologHandler forwards entries to a zerolog.Logger. The numeric
// severity and label are written as fields next to zerolog's own level.
type ZerologHandler struct {
	l      zerolog.Logger
	closed atomic.Bool
	stats  handler.Stats

	severityKey string
	labelKey    string
	timeKey     string
}

// New wraps an existing zerolog logger.
func New(l zerolog.Logger) *ZerologHandler {
	return &ZerologHandler{
		l:           l,
		severityKey: "severity",
		labelKey:    "label",
		timeKey:     "ts",
	}
}

// Config builds a zerolog logger owned by the handler.
type Config struct {
	Writer            io.Writer // default: os.Stdout
	Console           bool      // zerolog.ConsoleWriter instead of JSON
	ConsoleTimeFormat string    // default time.RFC3339
	NoColor           bool
}

// NewWithConfig creates a handler writing through a fresh zerolog logger.
func NewWithConfig(cfg Config) *ZerologHandler {
	w := cfg.Writer
	if w == nil {
		w = os.Stdout
	}
	if cfg.Console {
		cw := zerolog.ConsoleWriter{Out: w, NoColor: cfg.NoColor, TimeFormat: cfg.ConsoleTimeFormat}
		if cw.TimeFormat == "" {
			cw.TimeFormat = time.RFC3339
		}
		cw.PartsOrder = []string{"ts", zerolog.LevelFieldName, zerolog.MessageFieldName}
		cw.FieldsExclude = []string{"ts"}
		w = cw
	}
	return New(zerolog.New(w))
}

// Handle writes the entry as one zerolog event.
func (h *ZerologHandler) Handle(entry *core.Entry) error {
	if h.closed.Load() {
		return handler.ErrClosed
	}

	zlvl := ZerologLevel(entry.Level)
	if zlvl < h.l.GetLevel() {
		return nil
	}

	ev := h.l.WithLevel(zlvl)
	if ev == nil {
		return nil
	}
	ev.Str(h.timeKey, entry.Time.UTC().Format(time.RFC3339Nano))
	ev.Int64(h.severityKey, int64(entry.Level))
	if entry.Label != "" {
		ev.Str(h.labelKey, entry.Label)
	}
	for i := range entry.Fields {
		appendEventField(ev, &entry.Fields[i])
	}
	if entry.Caller.Defined {
		ev.Str(zerolog.CallerFieldName, entry.Caller.ShortFile+":"+strconv.Itoa(entry.Caller.Line))
	}
	ev.Msg(entry.Message)

	h.stats.Record(entry.Level, nil)
	return nil
}

// CanRecycleEntry reports true: zerolog serialises the event before Msg returns.
func (h *ZerologHandler) CanRecycleEntry() bool {
	return true
}

// Stats returns a snapshot of the handler counters.
func (h *ZerologHandler) Stats() handler.Snapshot {
	return h.stats.GetSnapshot()
}

// Close marks the handler closed. zerolog does not buffer, so there is
// nothing to flush.
func (h *ZerologHandler) Close() error {
	h.closed.Store(true)
	return nil
}

// ZerologLevel maps a severity onto the zerolog level of its built-in
// band. Fatal maps to Error so zerolog never exits the process.
func ZerologLevel(l core.Level) zerolog.Level {
	switch {
	case l >= core.ErrorLevel:
		return zerolog.ErrorLevel
	case l >= core.WarnLevel:
		return zerolog.WarnLevel
	case l >= core.InfoLevel:
		return zerolog.InfoLevel
	case l >= core.DebugLevel:
		return zerolog.DebugLevel
	default:
		return zerolog.TraceLevel
	}
}

func appendEventField(e *zerolog.Event, f *core.Field) {
	switch f.Type {
	case core.StringType:
		e.Str(f.Key, f.Str)
	case core.IntType, core.Int64Type:
		e.Int64(f.Key, f.Int64)
	case core.Float64Type:
		e.Float64(f.Key, f.Float64)
	case core.BoolType:
		e.Bool(f.Key, f.Int64 == 1)
	case core.TimeType:
		e.Time(f.Key, time.Unix(0, f.Int64))
	case core.DurationType:
		e.Dur(f.Key, time.Duration(f.Int64))
	case core.ErrorType:
		e.AnErr(f.Key, errors.New(f.Str))
	default:
		e.Interface(f.Key, f.Any)
	}
}
