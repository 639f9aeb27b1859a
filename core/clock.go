package core

import (
	"time"

	"github.com/trickstertwo/xclock"
)

// Now is the timestamp source for new entries. It reads the process
// clock registered with xclock, which tests replace with a frozen one.
func Now() time.Time {
	return xclock.Now()
}
