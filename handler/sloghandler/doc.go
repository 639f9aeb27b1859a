// Package sloghandler provides an adapter from handler.Handler to
// log/slog.Handler, so code written against the standard library can
// log through lvlog handlers. slog levels are mapped onto the built-in
// severities (see FromSlogLevel); records below the threshold are
// dropped before any entry is built.
package sloghandler
