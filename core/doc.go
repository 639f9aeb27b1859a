// Package core defines the shared types used across lvlog.
//
// Level is a plain int64 severity. The names attached to severities
// live in a Registry, not in the type: every logger owns its own
// Registry, seeded with trace=10, debug=20, info=30, warn=40, error=50,
// fatal=60 and the silent sentinel, and may register more levels at
// construction (NewRegistry) or later (AddLevel). The registry keeps
// its label and value maps as exact inverses, so neither a label nor
// a value can ever be registered twice.
//
// The two registration paths fail differently. A conflicting custom
// level at construction is a setup bug and surfaces as a
// *ConflictError; a conflicting AddLevel is routine and just returns
// false.
//
// Entry is the record handed to handlers. Entries are pooled via
// sync.Pool; callers get one with GetEntry and return it with PutEntry
// once the handler has consumed it.
package core
