// Package zerologhandler forwards lvlog entries to github.com/rs/zerolog.
//
// Records are written at the zerolog level of the built-in band their
// severity falls in, with "severity" and "label" fields holding the
// emitting logger's own values.
package zerologhandler
