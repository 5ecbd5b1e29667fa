package pulse

// Runtime owns one reactive graph: the dependency-tracking stack, the
// scheduler, and the demarcation of synchronous units of work. A Runtime is
// confined to a single goroutine; the engine takes no locks.
type Runtime struct {
	tracker tracker
	sched   *scheduler

	// depth is the nesting of synchronous units. A flush armed inside a
	// unit runs when the outermost unit unwinds.
	depth int

	observers []Observer
}

// NewRuntime creates an empty runtime.
func NewRuntime() *Runtime {
	rt := &Runtime{}
	rt.sched = newScheduler(rt)
	return rt
}

// Run executes fn as one synchronous unit of work. All writes inside the
// unit coalesce into a single batch; the batch flushes when the outermost
// unit returns, and any batches armed by the flush itself drain before Run
// returns. Units nest: only the outermost one flushes.
//
// A panic inside fn or inside a flushed callback propagates to the caller.
func (rt *Runtime) Run(fn func()) {
	rt.depth++
	defer func() {
		rt.depth--
	}()

	fn()

	if rt.depth == 1 {
		rt.drain()
	}
}

// Batch is Run under the name reactive libraries usually give it: group
// several writes so each affected callback reruns at most once, seeing only
// final values.
func (rt *Runtime) Batch(fn func()) {
	rt.Run(fn)
}

// do runs fn inside the current unit, or as its own unit when called at top
// level. Every mutating entry point goes through here so a bare Set still
// gets flush-on-unwind semantics.
func (rt *Runtime) do(fn func()) {
	if rt.depth > 0 {
		fn()
		return
	}
	rt.Run(fn)
}

// drain flushes armed batches until none remain. A batch armed by a flushed
// callback is a new batch and drains strictly after the current one.
func (rt *Runtime) drain() {
	for rt.sched.armed {
		rt.sched.flush()
	}
}

// AddObserver registers an observer for engine events. Observers are invoked
// synchronously on the runtime's goroutine, in registration order.
func (rt *Runtime) AddObserver(o Observer) {
	if o == nil {
		return
	}
	rt.observers = append(rt.observers, o)
}
