package logger

import (
	"github.com/philipp01105/lvlog/core"
)

// Op is a logging operation bound to one level. The severity it emits
// with is fixed when the operation is generated.
type Op func(msg string, fields ...core.Field)

// bound is one entry of the operations table.
type bound struct {
	def core.LevelDef
	op  Op
}

// opTable is never mutated after publication; AddLevel publishes a copy.
type opTable map[string]bound

func noop(string, ...core.Field) {}

// bind creates the operation for def on l. Silent is only a threshold,
// so its operation never emits.
func (l *Logger) bind(def core.LevelDef) bound {
	if def.Value.IsSilent() {
		return bound{def: def, op: noop}
	}
	return bound{def: def, op: func(msg string, fields ...core.Field) {
		_ = l.emit(def, msg, fields, 1)
	}}
}

// generate builds a fresh table from every level in the registry.
func (l *Logger) generate() opTable {
	defs := l.registry.Defs()
	t := make(opTable, len(defs))
	for _, d := range defs {
		t[d.Label] = l.bind(d)
	}
	return t
}

// extend returns a copy of t with def added.
func (l *Logger) extend(t opTable, def core.LevelDef) opTable {
	next := make(opTable, len(t)+1)
	for k, v := range t {
		next[k] = v
	}
	next[def.Label] = l.bind(def)
	return next
}
