package pulse

import (
	"sync"

	"github.com/petermattis/goid"
)

// runtimes stores per-goroutine runtimes backing the package-level
// constructors. Using sync.Map for concurrent access from multiple
// goroutines; each runtime itself is still single-goroutine.
var runtimes sync.Map

// CurrentRuntime returns the runtime bound to the current goroutine,
// creating one on first use. Independent goroutines get independent
// reactive graphs unless explicitly pinned with WithRuntime.
func CurrentRuntime() *Runtime {
	gid := goid.Get()
	if rt, ok := runtimes.Load(gid); ok {
		return rt.(*Runtime)
	}
	rt := NewRuntime()
	runtimes.Store(gid, rt)
	return rt
}

// WithRuntime binds rt to the current goroutine for the duration of fn, so
// package-level constructors inside fn use rt. The previous binding is
// restored afterwards.
//
// The caller is responsible for confinement: a Runtime must only ever be
// driven from one goroutine at a time.
func WithRuntime(rt *Runtime, fn func()) {
	gid := goid.Get()
	prev, had := runtimes.Load(gid)
	runtimes.Store(gid, rt)
	defer func() {
		if had {
			runtimes.Store(gid, prev)
		} else {
			runtimes.Delete(gid)
		}
	}()
	fn()
}

// ReleaseRuntime drops the current goroutine's runtime binding. Call this
// before a long-lived goroutine exits to let its graph be collected; bindings
// are cheap, so this is optional for short-lived goroutines.
func ReleaseRuntime() {
	runtimes.Delete(goid.Get())
}

// Batch runs fn as one unit of work on the current goroutine's runtime.
func Batch(fn func()) {
	CurrentRuntime().Batch(fn)
}
