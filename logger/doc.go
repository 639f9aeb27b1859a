// Package logger is the public API of lvlog. Most users only need to
// import this package.
//
// Every Logger owns its set of levels. It starts with the built-in
// labels (trace=10, debug=20, info=30, warn=40, error=50, fatal=60 and
// silent, which only works as a threshold) and can be extended at
// construction or later:
//
//	log, err := logger.New(logger.Options{Level: "audit", LevelVal: &v}, h)
//	...
//	if !log.AddLevel("notice", 35) {
//	    // label or value already taken
//	}
//	audit, _ := log.Op("audit")
//	audit("user deleted", logger.String("id", id))
//
// A conflicting level at construction is an error wrapping
// core.ErrConstructionConflict. A conflicting AddLevel just returns
// false.
//
// Child copies the parent's levels and threshold at the moment it is
// called. Levels added to either side afterwards stay on that side:
//
//	reqLog := log.Child(logger.String("request_id", id))
//
// Emitting reads the threshold and the operations table atomically, so
// filtered-out messages cost a load and a comparison. The package keeps
// a default Logger (info, text to stdout) behind Info, Errorf and
// friends.
package logger
