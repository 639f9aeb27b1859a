package core

import (
	"sort"
	"strconv"
	"strings"
	"sync"
)

// Registry maps level labels to numeric severities and back. The two
// maps are kept as exact inverses: one label per value, one value per
// label. A Registry is owned by a single logger; children get a
// Snapshot rather than a shared reference.
type Registry struct {
	mu     sync.RWMutex
	values map[string]Level
	labels map[Level]string
}

// NewRegistry returns a registry seeded with the built-in levels plus
// the given custom levels, registered in order. A custom level whose
// label or value is already taken aborts construction with a
// *ConflictError.
func NewRegistry(custom ...LevelDef) (*Registry, error) {
	r := &Registry{
		values: make(map[string]Level, len(builtinLevels)+len(custom)),
		labels: make(map[Level]string, len(builtinLevels)+len(custom)),
	}
	for _, d := range builtinLevels {
		r.put(d.Label, d.Value)
	}
	for _, d := range custom {
		if err := r.conflict(d); err != nil {
			return nil, err
		}
		r.put(d.Label, d.Value)
	}
	return r, nil
}

// conflict reports the first collision of d with the current contents.
// Caller must hold mu or own r exclusively.
func (r *Registry) conflict(d LevelDef) error {
	if _, ok := r.values[d.Label]; ok || d.Label == "" {
		return &ConflictError{Kind: ConflictLabel, Def: d}
	}
	if _, ok := r.labels[d.Value]; ok {
		return &ConflictError{Kind: ConflictValue, Def: d}
	}
	return nil
}

func (r *Registry) put(label string, v Level) {
	r.values[label] = v
	r.labels[v] = label
}

// AddLevel registers label at value. It returns false and leaves the
// registry untouched when either the label or the value is taken.
func (r *Registry) AddLevel(label string, value Level) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.conflict(LevelDef{Label: label, Value: value}) != nil {
		return false
	}
	r.put(label, value)
	return true
}

// Value returns the severity registered for label.
func (r *Registry) Value(label string) (Level, bool) {
	r.mu.RLock()
	v, ok := r.values[label]
	r.mu.RUnlock()
	return v, ok
}

// Label returns the label registered for v.
func (r *Registry) Label(v Level) (string, bool) {
	r.mu.RLock()
	label, ok := r.labels[v]
	r.mu.RUnlock()
	return label, ok
}

// ResolveLabel returns the severity of a registered label.
func (r *Registry) ResolveLabel(label string) (Level, error) {
	if v, ok := r.Value(label); ok {
		return v, nil
	}
	return 0, unknownLabel(label)
}

// ResolveValue validates that v is a registered severity.
func (r *Registry) ResolveValue(v Level) (Level, error) {
	if _, ok := r.Label(v); ok {
		return v, nil
	}
	return 0, unknownValue(v)
}

// Resolve accepts either a label or a decimal severity. Labels win, so
// a custom level literally named "35" resolves by name.
func (r *Registry) Resolve(labelOrValue string) (Level, error) {
	if v, ok := r.Value(labelOrValue); ok {
		return v, nil
	}
	s := strings.TrimSpace(labelOrValue)
	if strings.EqualFold(s, "infinity") {
		return r.ResolveValue(SilentLevel)
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, unknownLabel(labelOrValue)
	}
	return r.ResolveValue(Level(n))
}

// Enabled reports whether candidate passes threshold.
func (r *Registry) Enabled(candidate, threshold Level) bool {
	return Enabled(candidate, threshold)
}

// Snapshot returns an independent deep copy of r.
func (r *Registry) Snapshot() *Registry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c := &Registry{
		values: make(map[string]Level, len(r.values)),
		labels: make(map[Level]string, len(r.labels)),
	}
	for label, v := range r.values {
		c.put(label, v)
	}
	return c
}

// Values returns a copy of the label to severity mapping.
func (r *Registry) Values() map[string]Level {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]Level, len(r.values))
	for k, v := range r.values {
		out[k] = v
	}
	return out
}

// Labels returns a copy of the severity to label mapping.
func (r *Registry) Labels() map[Level]string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[Level]string, len(r.labels))
	for k, v := range r.labels {
		out[k] = v
	}
	return out
}

// Defs lists every registration ordered by severity.
func (r *Registry) Defs() []LevelDef {
	r.mu.RLock()
	out := make([]LevelDef, 0, len(r.values))
	for label, v := range r.values {
		out = append(out, LevelDef{Label: label, Value: v})
	}
	r.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Value < out[j].Value })
	return out
}

// Len returns the number of registered levels.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.values)
}
