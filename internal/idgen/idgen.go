// Package idgen mints node identities for the document model.
//
// Identities are opaque strings, unique within a process, handed out by a
// single monotonic counter. Tests that need reproducible identity sequences
// call Reset before building a document.
package idgen

import (
	"strconv"
	"sync/atomic"
)

var counter atomic.Uint64

// Next returns a fresh, process-unique node identity.
func Next() string {
	n := counter.Add(1)
	return "n" + strconv.FormatUint(n, 10)
}

// Reset restarts the counter at zero. Tests only — never call this from
// production code, since two documents sharing an id space can collide.
func Reset() {
	counter.Store(0)
}
