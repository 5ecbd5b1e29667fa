package pulse

// NewEffect runs fn immediately through the current goroutine runtime's
// tracker and reruns it whenever a signal it read on that first run changes.
// fn may return a Cleanup, which is invoked before each rerun and when the
// cancellation token (if bound via WithCancelToken) fires.
//
// Dependencies are captured on the first run only: reruns happen outside the
// tracking stack, so a read reached for the first time on a later run does
// not subscribe.
func NewEffect(fn func() Cleanup, opts ...Option) {
	NewEffectIn(CurrentRuntime(), fn, opts...)
}

// NewEffectIn is NewEffect on an explicit runtime.
func NewEffectIn(rt *Runtime, fn func() Cleanup, opts ...Option) {
	o := applyOptions(opts)
	cb := newCallback(rt, fn, o.token)
	rt.do(func() {
		rt.tracker.run(cb)
	})
}
