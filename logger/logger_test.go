package logger

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/trickstertwo/xclock"
	"github.com/trickstertwo/xclock/adapter/frozen"

	"github.com/philipp01105/lvlog/core"
	"github.com/philipp01105/lvlog/formatter"
	"github.com/philipp01105/lvlog/handler"
	"github.com/philipp01105/lvlog/handler/consolehandler"
)

// recorder keeps a copy of every entry it receives.
type recorder struct {
	mu      sync.Mutex
	entries []core.Entry
}

func (r *recorder) Handle(e *core.Entry) error {
	c := *e
	c.Fields = append([]core.Field(nil), e.Fields...)
	r.mu.Lock()
	r.entries = append(r.entries, c)
	r.mu.Unlock()
	return nil
}

func (r *recorder) Close() error { return nil }

func (r *recorder) all() []core.Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]core.Entry(nil), r.entries...)
}

func (r *recorder) last(t *testing.T) core.Entry {
	t.Helper()
	all := r.all()
	if len(all) == 0 {
		t.Fatal("Expected an entry, got none")
	}
	return all[len(all)-1]
}

func levelVal(v core.Level) *core.Level { return &v }

func mustNew(t *testing.T, opts Options, h handler.Handler) *Logger {
	t.Helper()
	l, err := New(opts, h)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return l
}

func mustOp(t *testing.T, l *Logger, label string) Op {
	t.Helper()
	op, ok := l.Op(label)
	if !ok {
		t.Fatalf("Expected an operation for %q", label)
	}
	return op
}

func TestLogger_LevelGate(t *testing.T) {
	var buf bytes.Buffer
	h := consolehandler.NewConsoleHandler(consolehandler.ConsoleConfig{
		Writer:    &buf,
		Formatter: formatter.NewTextFormatter(formatter.Config{}),
	})

	logger, err := NewBuilder().
		WithHandler(h).
		WithLevel("info").
		Build()
	if err != nil {
		t.Fatal(err)
	}

	logger.Debug("debug message")
	if buf.Len() > 0 {
		t.Error("Debug message was logged when level is Info")
	}

	logger.Info("info message")
	if !strings.Contains(buf.String(), "[INFO] info message") {
		t.Errorf("Expected '[INFO] info message' in output, got: %s", buf.String())
	}

	buf.Reset()
	logger.Warn("warn message")
	if !strings.Contains(buf.String(), "warn message") {
		t.Errorf("Expected 'warn message' in output, got: %s", buf.String())
	}
}

func TestLogger_CustomLevelAtConstruction(t *testing.T) {
	rec := &recorder{}
	l := mustNew(t, Options{Level: "foo", LevelVal: levelVal(35)}, rec)

	if l.LevelVal() != 35 || l.Level() != "foo" {
		t.Fatalf("Expected threshold foo/35, got %s/%d", l.Level(), l.LevelVal())
	}

	mustOp(t, l, "foo")("bar")
	e := rec.last(t)
	if e.Message != "bar" || e.Level != 35 || e.Label != "foo" {
		t.Errorf("Unexpected entry %+v", e)
	}
}

func TestLogger_AddLevelToExistingLogger(t *testing.T) {
	rec := &recorder{}
	l := mustNew(t, Options{}, rec)

	if _, ok := l.Op("foo2"); ok {
		t.Fatal("foo2 exists before AddLevel")
	}
	if !l.AddLevel("foo2", 35) {
		t.Fatal("AddLevel(foo2, 35) returned false")
	}

	mustOp(t, l, "foo2")("bar")
	if e := rec.last(t); e.Message != "bar" || e.Level != 35 {
		t.Errorf("Unexpected entry %+v", e)
	}
	if err := l.Log("foo2", "again"); err != nil {
		t.Errorf("Log(foo2): %v", err)
	}
	if n := len(rec.all()); n != 2 {
		t.Errorf("Expected 2 entries, got %d", n)
	}
}

func TestLogger_LevelsNotSharedBetweenInstances(t *testing.T) {
	a := mustNew(t, Options{Level: "foo3", LevelVal: levelVal(36)}, nil)
	b := mustNew(t, Options{}, nil)

	if _, ok := a.Op("foo3"); !ok {
		t.Error("foo3 missing on its own logger")
	}
	if _, ok := b.Op("foo3"); ok {
		t.Error("foo3 leaked into an unrelated logger")
	}

	a.AddLevel("foo4", 37)
	c := mustNew(t, Options{}, nil)
	a.AddLevel("foo5", 38)
	for _, label := range []string{"foo4", "foo5"} {
		if _, ok := c.Op(label); ok {
			t.Errorf("%s leaked into an unrelated logger", label)
		}
		if _, ok := c.Levels().Values[label]; ok {
			t.Errorf("%s leaked into an unrelated registry", label)
		}
	}
}

func TestLogger_CustomThresholdForwardsHigherLevels(t *testing.T) {
	rec := &recorder{}
	l := mustNew(t, Options{Level: "foo", LevelVal: levelVal(35)}, rec)

	l.Info("nope")
	l.Warn("bar")

	all := rec.all()
	if len(all) != 1 || all[0].Message != "bar" || all[0].Level != core.WarnLevel {
		t.Errorf("Expected only the warn entry, got %+v", all)
	}
}

func TestLogger_AddedLevelAsThresholdDropsLowerLevels(t *testing.T) {
	rec := &recorder{}
	l := mustNew(t, Options{}, rec)

	l.AddLevel("foo", 35)
	if err := l.SetLevel("foo"); err != nil {
		t.Fatal(err)
	}
	l.Info("nope")
	mustOp(t, l, "foo")("bar")

	all := rec.all()
	if len(all) != 1 || all[0].Message != "bar" || all[0].Level != 35 {
		t.Errorf("Expected only the foo entry, got %+v", all)
	}
}

func TestLogger_AddedLowerLevelIsFiltered(t *testing.T) {
	rec := &recorder{}
	l := mustNew(t, Options{}, rec)

	if err := l.SetLevel("info"); err != nil {
		t.Fatal(err)
	}
	l.AddLevel("foo", 15)
	l.Info("bar")
	mustOp(t, l, "foo")("nope")

	all := rec.all()
	if len(all) != 1 || all[0].Message != "bar" {
		t.Errorf("Expected only the info entry, got %+v", all)
	}
	if l.IsLevelEnabled("foo") {
		t.Error("IsLevelEnabled(foo) = true below the threshold")
	}
}

func TestLogger_ChildOfCustomLevelLogger(t *testing.T) {
	rec := &recorder{}
	parent := mustNew(t, Options{Level: "foo", LevelVal: levelVal(35)}, rec)
	child := parent.Child(String("childMsg", "yes"))

	mustOp(t, child, "foo")("bar")

	e := rec.last(t)
	if e.Message != "bar" || e.Level != 35 {
		t.Errorf("Unexpected entry %+v", e)
	}
	if len(e.Fields) != 1 || e.Fields[0].Key != "childMsg" || e.Fields[0].Str != "yes" {
		t.Errorf("Expected childMsg binding, got %+v", e.Fields)
	}
	if child.LevelVal() != 35 {
		t.Errorf("Expected child threshold 35, got %d", child.LevelVal())
	}
}

func TestLogger_ChildInheritsAddedLevels(t *testing.T) {
	rec := &recorder{}
	parent := mustNew(t, Options{}, rec)
	parent.AddLevel("foo", 35)
	child := parent.Child(String("childMsg", "yes"))

	mustOp(t, child, "foo")("bar")
	e := rec.last(t)
	if e.Message != "bar" || e.Fields[0].Key != "childMsg" {
		t.Errorf("Unexpected entry %+v", e)
	}
}

func TestLogger_ChildIsASnapshot(t *testing.T) {
	parent := mustNew(t, Options{}, nil)
	parent.AddLevel("foo", 35)
	child := parent.Child()

	parent.AddLevel("late", 36)
	if _, ok := child.Op("late"); ok {
		t.Error("Level added to parent after Child appeared on the child")
	}

	child.AddLevel("childonly", 37)
	if _, ok := parent.Op("childonly"); ok {
		t.Error("Level added to child appeared on the parent")
	}
	sibling := parent.Child()
	if _, ok := sibling.Op("childonly"); ok {
		t.Error("Level added to child appeared on a sibling")
	}

	if err := child.SetLevel("error"); err != nil {
		t.Fatal(err)
	}
	if parent.LevelVal() != core.InfoLevel {
		t.Errorf("Child SetLevel changed the parent threshold to %d", parent.LevelVal())
	}

	// Same label, different values on different loggers.
	if !child.AddLevel("shared", 41) || !parent.AddLevel("shared", 42) {
		t.Fatal("AddLevel(shared) rejected")
	}
	if child.Levels().Values["shared"] != 41 || parent.Levels().Values["shared"] != 42 {
		t.Error("Per-logger values for the same label got mixed up")
	}
}

func TestLogger_RejectsKnownLabels(t *testing.T) {
	l := mustNew(t, Options{Level: "info", LevelVal: levelVal(900)}, nil)

	if l.LevelVal() != core.InfoLevel {
		t.Errorf("Expected levelVal 30, got %d", l.LevelVal())
	}
	if l.AddLevel("error", 200) {
		t.Error("AddLevel(error, 200) returned true")
	}
	levels := l.Levels()
	if levels.Values["error"] != core.ErrorLevel {
		t.Errorf("Expected error=50, got %d", levels.Values["error"])
	}
	if _, ok := levels.Labels[200]; ok {
		t.Error("200 was registered")
	}
	if _, ok := levels.Labels[900]; ok {
		t.Error("900 was registered")
	}
}

func TestLogger_RejectsKnownValues(t *testing.T) {
	_, err := New(Options{Level: "foo", LevelVal: levelVal(30)}, nil)
	if err == nil {
		t.Fatal("Expected an error for a taken value")
	}
	if !strings.Contains(err.Error(), "level value") {
		t.Errorf("Expected 'level value' in %q", err.Error())
	}
	if !errors.Is(err, core.ErrConstructionConflict) {
		t.Errorf("Expected ErrConstructionConflict, got %v", err)
	}

	l := mustNew(t, Options{}, nil)
	if l.AddLevel("foo", 50) {
		t.Error("AddLevel(foo, 50) returned true")
	}
	if l.Levels().Labels[50] != "error" {
		t.Errorf("Expected labels[50]=error, got %q", l.Levels().Labels[50])
	}
	if _, ok := l.Levels().Values["foo"]; ok {
		t.Error("foo was registered")
	}
}

func TestLogger_RejectsSilentValue(t *testing.T) {
	_, err := New(Options{Level: "foo", LevelVal: levelVal(core.SilentLevel)}, nil)
	if err == nil || !strings.Contains(err.Error(), "level value is already used") {
		t.Fatalf("Expected 'level value is already used', got %v", err)
	}

	var ce *core.ConflictError
	if !errors.As(err, &ce) || ce.Kind != core.ConflictValue {
		t.Errorf("Expected a value ConflictError, got %#v", err)
	}

	l := mustNew(t, Options{}, nil)
	if l.AddLevel("forever", core.SilentLevel) {
		t.Error("AddLevel at the silent value returned true")
	}
}

func TestLogger_LevelNumbersAfterLevelChange(t *testing.T) {
	rec := &recorder{}
	l := mustNew(t, Options{Level: "foo", LevelVal: levelVal(25)}, rec)
	foo := mustOp(t, l, "foo")

	if err := l.SetLevel("debug"); err != nil {
		t.Fatal(err)
	}
	foo("bar")
	if e := rec.last(t); e.Level != 25 {
		t.Errorf("Expected level 25, got %d", e.Level)
	}

	if err := l.SetLevel("warn"); err != nil {
		t.Fatal(err)
	}
	foo("dropped")
	if n := len(rec.all()); n != 1 {
		t.Errorf("Expected the bound op to be filtered after SetLevel, got %d entries", n)
	}
}

func TestLogger_EndToEnd(t *testing.T) {
	rec := &recorder{}
	l := mustNew(t, Options{}, rec)

	if !l.AddLevel("foo", 35) {
		t.Fatal("AddLevel(foo, 35) returned false")
	}
	if err := l.SetLevel("foo"); err != nil {
		t.Fatal(err)
	}
	l.Info("dropped")
	if err := l.Log("foo", "kept"); err != nil {
		t.Fatal(err)
	}

	all := rec.all()
	if len(all) != 1 || all[0].Level != 35 || all[0].Label != "foo" {
		t.Errorf("Expected one foo entry, got %+v", all)
	}

	levels := l.Levels()
	for label, v := range levels.Values {
		if levels.Labels[v] != label {
			t.Errorf("labels[%d] = %q, want %q", v, levels.Labels[v], label)
		}
	}
}

func TestLogger_SetLevelUnknown(t *testing.T) {
	l := mustNew(t, Options{}, nil)

	for _, in := range []string{"nope", "31", ""} {
		if err := l.SetLevel(in); !errors.Is(err, core.ErrUnknownLevel) {
			t.Errorf("SetLevel(%q) = %v, want ErrUnknownLevel", in, err)
		}
	}
	if err := l.SetLevelValue(31); !errors.Is(err, core.ErrUnknownLevel) {
		t.Errorf("SetLevelValue(31) = %v, want ErrUnknownLevel", err)
	}
	if l.LevelVal() != core.InfoLevel {
		t.Errorf("Failed SetLevel changed the threshold to %d", l.LevelVal())
	}

	if _, err := New(Options{Level: "nope"}, nil); !errors.Is(err, core.ErrUnknownLevel) {
		t.Errorf("New with unknown level = %v, want ErrUnknownLevel", err)
	}
	if err := l.Log("nope", "x"); !errors.Is(err, core.ErrUnknownLevel) {
		t.Errorf("Log(nope) = %v, want ErrUnknownLevel", err)
	}
}

func TestLogger_SetLevelByNumber(t *testing.T) {
	l := mustNew(t, Options{}, nil)

	if err := l.SetLevel("40"); err != nil {
		t.Fatal(err)
	}
	if l.Level() != "warn" {
		t.Errorf("Expected warn, got %s", l.Level())
	}
	if err := l.SetLevelValue(core.SilentLevel); err != nil {
		t.Fatal(err)
	}
	if l.Level() != "silent" {
		t.Errorf("Expected silent, got %s", l.Level())
	}
}

func TestLogger_Silent(t *testing.T) {
	rec := &recorder{}
	l := mustNew(t, Options{Level: "silent"}, rec)

	l.Error("never")
	mustOp(t, l, "silent")("never")
	if err := l.Log("silent", "never"); err != nil {
		t.Fatal(err)
	}
	if n := len(rec.all()); n != 0 {
		t.Errorf("Expected nothing at silent, got %d entries", n)
	}
	if l.IsLevelEnabled("silent") || l.IsLevelEnabled("fatal") {
		t.Error("IsLevelEnabled true at silent")
	}

	// A silent op stays a no-op even at the lowest threshold.
	l.SetLevel("trace")
	mustOp(t, l, "silent")("never")
	if n := len(rec.all()); n != 0 {
		t.Errorf("Silent op emitted %d entries", n)
	}
}

func TestLogger_CustomLevelsOption(t *testing.T) {
	rec := &recorder{}
	l := mustNew(t, Options{
		Level:        "notice",
		CustomLevels: map[string]core.Level{"notice": 35, "verbose": 5},
	}, rec)

	if l.LevelVal() != 35 {
		t.Errorf("Expected threshold 35, got %d", l.LevelVal())
	}
	mustOp(t, l, "verbose")("dropped")
	mustOp(t, l, "notice")("kept")
	if all := rec.all(); len(all) != 1 || all[0].Message != "kept" {
		t.Errorf("Expected only the notice entry, got %+v", all)
	}

	_, err := New(Options{CustomLevels: map[string]core.Level{"a": 35, "b": 35}}, nil)
	if !errors.Is(err, core.ErrConstructionConflict) {
		t.Errorf("Expected a conflict for duplicate custom values, got %v", err)
	}
	_, err = New(Options{CustomLevels: map[string]core.Level{"warn": 45}}, nil)
	if err == nil || !strings.Contains(err.Error(), "level name") {
		t.Errorf("Expected a 'level name' conflict, got %v", err)
	}
}

func TestLogger_OnLevelChange(t *testing.T) {
	parent := mustNew(t, Options{}, nil)

	var got []core.LevelDef
	parent.OnLevelChange(func(from, to core.LevelDef) {
		got = append(got, from, to)
	})
	child := parent.Child()

	if err := parent.SetLevel("warn"); err != nil {
		t.Fatal(err)
	}
	want := []core.LevelDef{{Label: "info", Value: 30}, {Label: "warn", Value: 40}}
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("Expected %v, got %v", want, got)
	}

	if err := child.SetLevel("error"); err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Error("Listener fired for a child's SetLevel")
	}

	if err := parent.SetLevel("bogus"); err == nil || len(got) != 2 {
		t.Error("Listener fired for a failed SetLevel")
	}
}

func TestLogger_Fields(t *testing.T) {
	var buf bytes.Buffer
	h := consolehandler.NewConsoleHandler(consolehandler.ConsoleConfig{
		Writer:    &buf,
		Formatter: formatter.NewTextFormatter(formatter.Config{}),
	})

	logger, err := NewBuilder().
		WithHandler(h).
		WithFields(String("app", "test")).
		Build()
	if err != nil {
		t.Fatal(err)
	}

	logger.Info("test",
		String("str", "value"),
		Int("int", 42),
		Bool("bool", true),
		Float64("float", 3.14),
		Err(errors.New("boom")),
	)

	output := buf.String()
	for _, want := range []string{"app=test", "str=value", "int=42", "bool=true", "float=3.14", "error=boom"} {
		if !strings.Contains(output, want) {
			t.Errorf("Expected %q in output, got: %s", want, output)
		}
	}

	b := logger.Child(String("request_id", "123")).Bindings()
	if len(b) != 2 || b[0].Key != "app" || b[1].Key != "request_id" {
		t.Errorf("Unexpected bindings %+v", b)
	}
	if len(logger.Bindings()) != 1 {
		t.Error("Child changed the parent bindings")
	}
}

func TestLogger_FormattedLogging(t *testing.T) {
	rec := &recorder{}
	l := mustNew(t, Options{Level: "trace"}, rec)

	l.Tracef("t %d", 1)
	l.Debugf("d %d", 2)
	l.Infof("i %s", "three")
	l.Warnf("w %v", true)
	l.Errorf("e %.1f", 5.0)

	want := []string{"t 1", "d 2", "i three", "w true", "e 5.0"}
	all := rec.all()
	if len(all) != len(want) {
		t.Fatalf("Expected %d entries, got %d", len(want), len(all))
	}
	for i, e := range all {
		if e.Message != want[i] {
			t.Errorf("entry %d: got %q, want %q", i, e.Message, want[i])
		}
	}
}

func TestLogger_TimestampFromClock(t *testing.T) {
	old := xclock.Default()
	defer xclock.SetDefault(old)

	ft := time.Date(2025, 1, 2, 3, 4, 5, 6, time.UTC)
	xclock.SetDefault(frozen.New(ft))

	rec := &recorder{}
	l := mustNew(t, Options{}, rec)
	l.Info("tick")

	if e := rec.last(t); !e.Time.Equal(ft) {
		t.Errorf("Expected time %v, got %v", ft, e.Time)
	}
}

func TestLogger_Caller(t *testing.T) {
	rec := &recorder{}
	l := mustNew(t, Options{Caller: true}, rec)

	l.Info("direct")
	l.Infof("formatted %d", 1)
	mustOp(t, l, "info")("bound")
	l.Log("info", "by label")

	for _, e := range rec.all() {
		if !e.Caller.Defined || e.Caller.ShortFile != "logger_test.go" {
			t.Errorf("%s: expected caller in logger_test.go, got %+v", e.Message, e.Caller)
		}
	}
}

func TestLogger_Fatal(t *testing.T) {
	var code int
	oldExit := osExit
	osExit = func(c int) { code = c }
	defer func() { osExit = oldExit }()

	rec := &recorder{}
	l := mustNew(t, Options{}, rec)
	l.Fatal("fatal message")

	if code != 1 {
		t.Errorf("Expected exit code 1, got %d", code)
	}
	if e := rec.last(t); e.Level != core.FatalLevel || e.Label != "fatal" {
		t.Errorf("Unexpected entry %+v", e)
	}
}

func TestLogger_ConcurrentAddLevelAndEmit(t *testing.T) {
	rec := &recorder{}
	l := mustNew(t, Options{Level: "trace"}, rec)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			l.AddLevel("lvl"+string(rune('a'+i)), core.Level(100+i))
		}(i)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				l.Info("msg")
				_ = l.Child()
			}
		}()
	}
	wg.Wait()

	for i := 0; i < 8; i++ {
		if _, ok := l.Op("lvl" + string(rune('a'+i))); !ok {
			t.Errorf("Missing operation lvl%c", 'a'+i)
		}
	}
	if n := len(rec.all()); n != 800 {
		t.Errorf("Expected 800 entries, got %d", n)
	}
}

func TestDefaultLogger(t *testing.T) {
	old := Default()
	defer SetDefault(old)

	rec := &recorder{}
	SetDefault(mustNew(t, Options{Caller: true}, rec))

	Info("pkg info")
	Warnf("pkg %s", "warn")
	if !AddLevel("pkgcustom", 45) {
		t.Fatal("AddLevel on default logger returned false")
	}
	if err := Log("pkgcustom", "custom"); err != nil {
		t.Fatal(err)
	}
	With(String("k", "v")).Error("child")

	all := rec.all()
	if len(all) != 4 {
		t.Fatalf("Expected 4 entries, got %d", len(all))
	}
	for _, e := range all {
		if e.Caller.ShortFile != "logger_test.go" {
			t.Errorf("%s: expected caller in logger_test.go, got %s", e.Message, e.Caller.ShortFile)
		}
	}
	if all[2].Level != 45 || all[3].Fields[0].Key != "k" {
		t.Errorf("Unexpected entries %+v", all[2:])
	}
}
