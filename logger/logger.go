package logger

import (
	"fmt"
	"os"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/philipp01105/lvlog/core"
	"github.com/philipp01105/lvlog/handler"
)

// osExit is a variable to allow overriding os.Exit in tests
var osExit = os.Exit

// Logger owns a level registry, a threshold and the operations table
// generated from that registry. Emitting never takes a lock: the
// threshold and the table are read atomically, and the table is
// replaced wholesale whenever a level is added.
type Logger struct {
	mu        sync.Mutex // serialises AddLevel, SetLevel and Child
	registry  *core.Registry
	threshold atomic.Int64
	ops       atomic.Pointer[opTable]

	handler       handler.Handler
	recycleEntry  bool
	bindings      []core.Field
	includeCaller bool
	listeners     []LevelChangeFunc // guarded by mu
}

// Options configures New.
type Options struct {
	// Level is the initial threshold, a label or a decimal value.
	// Empty means "info".
	Level string
	// LevelVal registers Level as a new level with this value. It is
	// ignored when Level is already a known label.
	LevelVal *core.Level
	// CustomLevels are registered before Level, in ascending value order.
	CustomLevels map[string]core.Level
	// Fields are bound to every entry.
	Fields []core.Field
	// Caller adds call-site information to every entry.
	Caller bool
}

// New creates a logger writing to h. A custom level that collides with
// an existing label or value fails with an error wrapping
// core.ErrConstructionConflict; an unknown initial level fails with
// core.ErrUnknownLevel.
func New(opts Options, h handler.Handler) (*Logger, error) {
	level := opts.Level
	if level == "" {
		level = core.InfoLabel
	}

	defs := make([]core.LevelDef, 0, len(opts.CustomLevels)+1)
	for label, v := range opts.CustomLevels {
		defs = append(defs, core.LevelDef{Label: label, Value: v})
	}
	sort.Slice(defs, func(i, j int) bool {
		if defs[i].Value != defs[j].Value {
			return defs[i].Value < defs[j].Value
		}
		return defs[i].Label < defs[j].Label
	})
	if opts.LevelVal != nil && !core.IsBuiltinLabel(level) {
		if _, dup := opts.CustomLevels[level]; !dup {
			defs = append(defs, core.LevelDef{Label: level, Value: *opts.LevelVal})
		}
	}

	reg, err := core.NewRegistry(defs...)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}
	threshold, err := reg.Resolve(level)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}

	l := &Logger{
		registry:      reg,
		handler:       h,
		recycleEntry:  h != nil && handler.CanRecycle(h),
		bindings:      append([]core.Field(nil), opts.Fields...),
		includeCaller: opts.Caller,
	}
	l.threshold.Store(int64(threshold))
	t := l.generate()
	l.ops.Store(&t)
	return l, nil
}

func (l *Logger) table() opTable {
	return *l.ops.Load()
}

// AddLevel registers a level on this logger only. It returns false and
// changes nothing when the label or the value is already registered.
// On success the level's operation is available at once via Op and Log.
func (l *Logger) AddLevel(label string, value core.Level) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.registry.AddLevel(label, value) {
		return false
	}
	t := l.extend(l.table(), core.LevelDef{Label: label, Value: value})
	l.ops.Store(&t)
	return true
}

// SetLevel changes the threshold to a registered label or decimal value.
func (l *Logger) SetLevel(labelOrValue string) error {
	l.mu.Lock()
	v, err := l.registry.Resolve(labelOrValue)
	if err != nil {
		l.mu.Unlock()
		return err
	}
	return l.setThreshold(v)
}

// SetLevelValue changes the threshold to a registered value.
func (l *Logger) SetLevelValue(v core.Level) error {
	l.mu.Lock()
	if _, err := l.registry.ResolveValue(v); err != nil {
		l.mu.Unlock()
		return err
	}
	return l.setThreshold(v)
}

// setThreshold stores v and notifies listeners. Called with mu held;
// listeners run after it is released.
func (l *Logger) setThreshold(v core.Level) error {
	prev := core.Level(l.threshold.Swap(int64(v)))
	listeners := l.listeners
	from := l.defOf(prev)
	to := l.defOf(v)
	l.mu.Unlock()

	for _, fn := range listeners {
		fn(from, to)
	}
	return nil
}

func (l *Logger) defOf(v core.Level) core.LevelDef {
	label, ok := l.registry.Label(v)
	if !ok {
		label = v.String()
	}
	return core.LevelDef{Label: label, Value: v}
}

// Level returns the label of the current threshold.
func (l *Logger) Level() string {
	return l.defOf(l.LevelVal()).Label
}

// LevelVal returns the current threshold.
func (l *Logger) LevelVal() core.Level {
	return core.Level(l.threshold.Load())
}

// IsLevelEnabled reports whether an entry at label would be forwarded.
func (l *Logger) IsLevelEnabled(label string) bool {
	v, ok := l.registry.Value(label)
	return ok && !v.IsSilent() && core.Enabled(v, l.LevelVal())
}

// Op returns the bound operation for label.
func (l *Logger) Op(label string) (Op, bool) {
	b, ok := l.table()[label]
	if !ok {
		return nil, false
	}
	return b.op, true
}

// Log emits at the named level. It fails with core.ErrUnknownLevel when
// label has no operation on this logger, and otherwise returns the
// handler's error, if any.
func (l *Logger) Log(label string, msg string, fields ...core.Field) error {
	return l.logLabel(label, msg, fields, 2)
}

func (l *Logger) logLabel(label, msg string, fields []core.Field, depth int) error {
	b, ok := l.table()[label]
	if !ok {
		return fmt.Errorf("%w: %q", core.ErrUnknownLevel, label)
	}
	if b.def.Value.IsSilent() {
		return nil
	}
	return l.emit(b.def, msg, fields, depth)
}

// emit forwards one entry when def passes the threshold. depth is the
// number of frames between the user's call and emit.
func (l *Logger) emit(def core.LevelDef, msg string, fields []core.Field, depth int) error {
	if !core.Enabled(def.Value, l.LevelVal()) || l.handler == nil {
		return nil
	}

	entry := core.GetEntry()
	entry.Time = core.Now()
	entry.Level = def.Value
	entry.Label = def.Label
	entry.Message = msg
	entry.Fields = core.AppendFields(entry.Fields, l.bindings, fields)
	if l.includeCaller {
		entry.Caller = core.GetCaller(depth + 1)
	}

	err := l.handler.Handle(entry)
	if l.recycleEntry {
		core.PutEntry(entry)
	}
	return err
}

var (
	traceDef = core.LevelDef{Label: core.TraceLabel, Value: core.TraceLevel}
	debugDef = core.LevelDef{Label: core.DebugLabel, Value: core.DebugLevel}
	infoDef  = core.LevelDef{Label: core.InfoLabel, Value: core.InfoLevel}
	warnDef  = core.LevelDef{Label: core.WarnLabel, Value: core.WarnLevel}
	errorDef = core.LevelDef{Label: core.ErrorLabel, Value: core.ErrorLevel}
	fatalDef = core.LevelDef{Label: core.FatalLabel, Value: core.FatalLevel}
)

// Trace logs a trace message
func (l *Logger) Trace(msg string, fields ...core.Field) {
	_ = l.emit(traceDef, msg, fields, 1)
}

// Debug logs a debug message
func (l *Logger) Debug(msg string, fields ...core.Field) {
	_ = l.emit(debugDef, msg, fields, 1)
}

// Info logs an info message
func (l *Logger) Info(msg string, fields ...core.Field) {
	_ = l.emit(infoDef, msg, fields, 1)
}

// Warn logs a warning message
func (l *Logger) Warn(msg string, fields ...core.Field) {
	_ = l.emit(warnDef, msg, fields, 1)
}

// Error logs an error message
func (l *Logger) Error(msg string, fields ...core.Field) {
	_ = l.emit(errorDef, msg, fields, 1)
}

// Fatal logs a fatal message and exits the program with os.Exit(1)
func (l *Logger) Fatal(msg string, fields ...core.Field) {
	_ = l.emit(fatalDef, msg, fields, 1)
	osExit(1)
}

func (l *Logger) emitf(def core.LevelDef, format string, args []interface{}) {
	if !core.Enabled(def.Value, l.LevelVal()) {
		return
	}
	_ = l.emit(def, fmt.Sprintf(format, args...), nil, 2)
}

// Tracef logs a trace message with formatting
func (l *Logger) Tracef(format string, args ...interface{}) {
	l.emitf(traceDef, format, args)
}

// Debugf logs a debug message with formatting
func (l *Logger) Debugf(format string, args ...interface{}) {
	l.emitf(debugDef, format, args)
}

// Infof logs an info message with formatting
func (l *Logger) Infof(format string, args ...interface{}) {
	l.emitf(infoDef, format, args)
}

// Warnf logs a warning message with formatting
func (l *Logger) Warnf(format string, args ...interface{}) {
	l.emitf(warnDef, format, args)
}

// Errorf logs an error message with formatting
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.emitf(errorDef, format, args)
}

// Fatalf logs a fatal message with formatting and exits the program with os.Exit(1)
func (l *Logger) Fatalf(format string, args ...interface{}) {
	l.emitf(fatalDef, format, args)
	osExit(1)
}

// Child derives a logger carrying extra bindings. The child gets a
// snapshot of the current registry and threshold; from then on the two
// loggers share nothing but the handler. Level-change listeners are
// not inherited.
func (l *Logger) Child(fields ...core.Field) *Logger {
	l.mu.Lock()
	defer l.mu.Unlock()

	bindings := make([]core.Field, len(l.bindings)+len(fields))
	copy(bindings, l.bindings)
	copy(bindings[len(l.bindings):], fields)

	c := &Logger{
		registry:      l.registry.Snapshot(),
		handler:       l.handler,
		recycleEntry:  l.recycleEntry,
		bindings:      bindings,
		includeCaller: l.includeCaller,
	}
	c.threshold.Store(l.threshold.Load())
	t := c.generate()
	c.ops.Store(&t)
	return c
}

// With is an alias for Child.
func (l *Logger) With(fields ...core.Field) *Logger {
	return l.Child(fields...)
}

// Bindings returns a copy of the fields bound to every entry.
func (l *Logger) Bindings() []core.Field {
	return append([]core.Field(nil), l.bindings...)
}

// Close closes the logger's handler
func (l *Logger) Close() error {
	if l.handler != nil {
		return l.handler.Close()
	}
	return nil
}
