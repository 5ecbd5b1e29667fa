package pulse

// tracker is the dependency-tracking stack owned by a Runtime. The callback
// on top of the stack is the one currently executing through run; a signal
// read during that execution subscribes it automatically.
//
// Only first runs go through the tracker. The scheduler replays callbacks
// directly, so dependencies are fixed at first-run time: a read reached only
// on a later run never becomes a tracked dependency.
type tracker struct {
	stack []*callback
}

// run pushes cb, invokes its body once, stores the returned cleanup on the
// record, and pops. A previous cleanup is overwritten; callers rerunning a
// callback must invoke the old cleanup first.
func (t *tracker) run(cb *callback) {
	t.stack = append(t.stack, cb)
	defer func() {
		t.stack = t.stack[:len(t.stack)-1]
	}()

	cb.cleanup = cb.fn()
}

// current returns the callback on top of the stack, or nil.
func (t *tracker) current() *callback {
	if len(t.stack) == 0 {
		return nil
	}
	return t.stack[len(t.stack)-1]
}
