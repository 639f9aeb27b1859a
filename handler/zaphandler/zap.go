package zaphandler

import (
	"io"
	"os"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/philipp01105/lvlog/core"
	"github.com/philipp01105/lvlog/handler"
)

const (
	// SeverityKey carries the emitting logger's numeric severity.
	SeverityKey = "severity"
	// LabelKey carries the emitting logger's label for that severity.
	LabelKey = "label"
)

// ZapHandler forwards entries to a zap.Logger. zap only knows its own
// fixed levels, so the numeric severity and label travel as fields and
// the zap level is picked from the built-in band the severity falls in.
type ZapHandler struct {
	l      *zap.Logger
	closed atomic.Bool
	stats  handler.Stats
}

// New wraps an existing zap logger. A nil logger discards everything.
func New(l *zap.Logger) *ZapHandler {
	if l == nil {
		l = zap.NewNop()
	}
	return &ZapHandler{l: l}
}

// Config builds a zap logger owned by the handler.
type Config struct {
	Writer  io.Writer // default: os.Stdout
	Console bool      // zapcore console encoder instead of JSON
	// EncoderConfig overrides the default encoder settings when non-zero.
	EncoderConfig zapcore.EncoderConfig
}

// NewWithConfig creates a handler writing through a fresh zap core.
// zap's own level filter is left wide open; the logger's threshold
// has already decided what reaches the handler.
func NewWithConfig(cfg Config) *ZapHandler {
	w := cfg.Writer
	if w == nil {
		w = os.Stdout
	}

	encCfg := cfg.EncoderConfig
	if encCfg.MessageKey == "" && encCfg.LevelKey == "" && encCfg.TimeKey == "" {
		encCfg = zapcore.EncoderConfig{
			TimeKey:        "ts",
			LevelKey:       "zlevel",
			MessageKey:     "message",
			EncodeLevel:    zapcore.LowercaseLevelEncoder,
			EncodeTime:     zapcore.RFC3339NanoTimeEncoder,
			EncodeDuration: zapcore.StringDurationEncoder,
			LineEnding:     zapcore.DefaultLineEnding,
		}
	}

	var enc zapcore.Encoder
	if cfg.Console {
		enc = zapcore.NewConsoleEncoder(encCfg)
	} else {
		enc = zapcore.NewJSONEncoder(encCfg)
	}

	zc := zapcore.NewCore(enc, zapcore.AddSync(w), zapcore.DebugLevel)
	return New(zap.New(zc))
}

// Handle writes the entry through zap.
func (h *ZapHandler) Handle(entry *core.Entry) error {
	if h.closed.Load() {
		return handler.ErrClosed
	}

	ce := h.l.Check(ZapLevel(entry.Level), entry.Message)
	if ce == nil {
		return nil
	}
	ce.Time = entry.Time

	zfs := make([]zap.Field, 0, 2+len(entry.Fields))
	zfs = append(zfs, zap.Int64(SeverityKey, int64(entry.Level)))
	if entry.Label != "" {
		zfs = append(zfs, zap.String(LabelKey, entry.Label))
	}
	for i := range entry.Fields {
		zfs = append(zfs, toZapField(&entry.Fields[i]))
	}

	ce.Write(zfs...)
	h.stats.Record(entry.Level, nil)
	return nil
}

// CanRecycleEntry reports true: fields are copied into zap before return.
func (h *ZapHandler) CanRecycleEntry() bool {
	return true
}

// Stats returns a snapshot of the handler counters.
func (h *ZapHandler) Stats() handler.Snapshot {
	return h.stats.GetSnapshot()
}

// Close flushes the zap logger.
func (h *ZapHandler) Close() error {
	if !h.closed.CompareAndSwap(false, true) {
		return nil
	}
	return h.l.Sync()
}

// ZapLevel picks the zap level for a severity. Fatal and anything above
// map to Error so zap never exits the process.
func ZapLevel(l core.Level) zapcore.Level {
	switch {
	case l >= core.ErrorLevel:
		return zapcore.ErrorLevel
	case l >= core.WarnLevel:
		return zapcore.WarnLevel
	case l >= core.InfoLevel:
		return zapcore.InfoLevel
	default:
		return zapcore.DebugLevel
	}
}

func toZapField(f *core.Field) zap.Field {
	switch f.Type {
	case core.StringType:
		return zap.String(f.Key, f.Str)
	case core.IntType, core.Int64Type:
		return zap.Int64(f.Key, f.Int64)
	case core.Float64Type:
		return zap.Float64(f.Key, f.Float64)
	case core.BoolType:
		return zap.Bool(f.Key, f.Int64 == 1)
	case core.TimeType:
		return zap.Time(f.Key, f.Value().(time.Time))
	case core.DurationType:
		return zap.Duration(f.Key, time.Duration(f.Int64))
	case core.ErrorType:
		return zap.String(f.Key, f.Str)
	default:
		return zap.Any(f.Key, f.Any)
	}
}
