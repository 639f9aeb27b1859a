package core

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownLevel is returned when a label or value is not registered.
	ErrUnknownLevel = errors.New("unknown level")
	// ErrConstructionConflict marks a custom level rejected while building
	// a registry. It is always wrapped by a *ConflictError.
	ErrConstructionConflict = errors.New("level conflict")
)

// Conflict kinds reported by ConflictError.
const (
	ConflictLabel = "level name"
	ConflictValue = "level value"
)

// ConflictError describes which half of a LevelDef collided with an
// existing registration.
type ConflictError struct {
	Kind string
	Def  LevelDef
}

func (e *ConflictError) Error() string {
	if e.Kind == ConflictLabel {
		return fmt.Sprintf("%s is already used: %s", e.Kind, e.Def.Label)
	}
	return fmt.Sprintf("%s is already used: %s", e.Kind, e.Def.Value)
}

func (e *ConflictError) Unwrap() error { return ErrConstructionConflict }

func unknownLabel(label string) error {
	return fmt.Errorf("%w: %q", ErrUnknownLevel, label)
}

func unknownValue(v Level) error {
	return fmt.Errorf("%w: %s", ErrUnknownLevel, v)
}
