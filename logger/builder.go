package logger

import (
	"github.com/philipp01105/lvlog/core"
	"github.com/philipp01105/lvlog/handler"
)

// Builder provides a fluent API for building Logger instances
type Builder struct {
	handler handler.Handler
	opts    Options
}

// NewBuilder creates a new logger builder
func NewBuilder() *Builder {
	return &Builder{opts: Options{Level: core.InfoLabel}}
}

// WithHandler sets the handler
func (b *Builder) WithHandler(h handler.Handler) *Builder {
	b.handler = h
	return b
}

// WithLevel sets the initial threshold by label or decimal value.
func (b *Builder) WithLevel(labelOrValue string) *Builder {
	b.opts.Level = labelOrValue
	b.opts.LevelVal = nil
	return b
}

// WithLevelValue starts the logger at a new level registered as
// label=value. A built-in label keeps its own value.
func (b *Builder) WithLevelValue(label string, value core.Level) *Builder {
	b.opts.Level = label
	b.opts.LevelVal = &value
	return b
}

// WithCustomLevel registers an extra level at construction.
func (b *Builder) WithCustomLevel(label string, value core.Level) *Builder {
	if b.opts.CustomLevels == nil {
		b.opts.CustomLevels = make(map[string]core.Level)
	}
	b.opts.CustomLevels[label] = value
	return b
}

// WithFields adds default fields to all log entries
func (b *Builder) WithFields(fields ...core.Field) *Builder {
	b.opts.Fields = append(b.opts.Fields, fields...)
	return b
}

// WithCaller enables caller information
func (b *Builder) WithCaller(enabled bool) *Builder {
	b.opts.Caller = enabled
	return b
}

// Build creates the Logger instance
func (b *Builder) Build() (*Logger, error) {
	return New(b.opts, b.handler)
}
