package sloghandler

import (
	"context"
	"log/slog"

	"github.com/philipp01105/lvlog/core"
	"github.com/philipp01105/lvlog/handler"
)

// SlogHandler implements slog.Handler on top of a handler.Handler.
// slog levels are mapped onto the built-in severities; labels come from
// the supplied registry so a logger's own naming is preserved.
type SlogHandler struct {
	handler   handler.Handler
	registry  *core.Registry
	threshold core.Level
	attrs     []core.Field
	group     string
}

// NewSlogHandler creates a new slog.Handler adapter wrapping the given
// Handler. A nil registry means the built-in labels.
func NewSlogHandler(h handler.Handler, threshold core.Level, reg *core.Registry) *SlogHandler {
	if reg == nil {
		reg, _ = core.NewRegistry()
	}
	return &SlogHandler{
		handler:   h,
		registry:  reg,
		threshold: threshold,
	}
}

// Enabled reports whether the handler handles records at the given level.
func (s *SlogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return core.Enabled(FromSlogLevel(level), s.threshold)
}

// Handle converts a slog.Record to a core.Entry and passes it on.
func (s *SlogHandler) Handle(_ context.Context, record slog.Record) error {
	value := FromSlogLevel(record.Level)
	if !core.Enabled(value, s.threshold) {
		return nil
	}

	entry := core.GetEntry()
	entry.Time = record.Time
	if entry.Time.IsZero() {
		entry.Time = core.Now()
	}
	entry.Level = value
	entry.Label, _ = s.registry.Label(value)
	entry.Message = record.Message

	entry.Fields = append(entry.Fields, s.attrs...)
	record.Attrs(func(a slog.Attr) bool {
		entry.Fields = appendAttr(entry.Fields, s.group, a)
		return true
	})

	err := s.handler.Handle(entry)
	if handler.CanRecycle(s.handler) {
		core.PutEntry(entry)
	}
	return err
}

// WithAttrs returns a new SlogHandler with additional attributes.
func (s *SlogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newAttrs := make([]core.Field, len(s.attrs), len(s.attrs)+len(attrs))
	copy(newAttrs, s.attrs)
	for _, a := range attrs {
		newAttrs = appendAttr(newAttrs, s.group, a)
	}
	c := *s
	c.attrs = newAttrs
	return &c
}

// WithGroup returns a new SlogHandler with the given group name.
func (s *SlogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return s
	}
	c := *s
	c.attrs = append([]core.Field(nil), s.attrs...)
	if s.group != "" {
		c.group = s.group + "." + name
	} else {
		c.group = name
	}
	return &c
}

// FromSlogLevel maps a slog level onto the built-in severities.
// Anything above slog.LevelError is treated as fatal.
func FromSlogLevel(level slog.Level) core.Level {
	switch {
	case level > slog.LevelError:
		return core.FatalLevel
	case level >= slog.LevelError:
		return core.ErrorLevel
	case level >= slog.LevelWarn:
		return core.WarnLevel
	case level >= slog.LevelInfo:
		return core.InfoLevel
	case level >= slog.LevelDebug:
		return core.DebugLevel
	default:
		return core.TraceLevel
	}
}

// appendAttr converts a slog.Attr to fields, flattening groups into
// dotted keys.
func appendAttr(dst []core.Field, group string, a slog.Attr) []core.Field {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return dst
	}

	key := a.Key
	if group != "" {
		key = group + "." + a.Key
	}

	switch a.Value.Kind() {
	case slog.KindString:
		return append(dst, core.Field{Key: key, Type: core.StringType, Str: a.Value.String()})
	case slog.KindInt64:
		return append(dst, core.Field{Key: key, Type: core.Int64Type, Int64: a.Value.Int64()})
	case slog.KindUint64:
		return append(dst, core.Field{Key: key, Type: core.AnyType, Any: a.Value.Uint64()})
	case slog.KindFloat64:
		return append(dst, core.Field{Key: key, Type: core.Float64Type, Float64: a.Value.Float64()})
	case slog.KindBool:
		val := int64(0)
		if a.Value.Bool() {
			val = 1
		}
		return append(dst, core.Field{Key: key, Type: core.BoolType, Int64: val})
	case slog.KindTime:
		return append(dst, core.Field{Key: key, Type: core.TimeType, Int64: a.Value.Time().UnixNano()})
	case slog.KindDuration:
		return append(dst, core.Field{Key: key, Type: core.DurationType, Int64: int64(a.Value.Duration())})
	case slog.KindGroup:
		prefix := key
		if a.Key == "" {
			prefix = group
		}
		for _, ga := range a.Value.Group() {
			dst = appendAttr(dst, prefix, ga)
		}
		return dst
	default:
		if err, ok := a.Value.Any().(error); ok {
			return append(dst, core.Field{Key: key, Type: core.ErrorType, Str: err.Error()})
		}
		return append(dst, core.Field{Key: key, Type: core.AnyType, Any: a.Value.Any()})
	}
}
