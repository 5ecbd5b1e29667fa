package pulse

// Derived is a read-only signal whose value is produced by a compute
// function. The compute function is wrapped in a callback that writes into
// the backing signal; the wrapper is registered with the tracker exactly
// once, at creation, and reruns through the scheduler when an upstream
// signal changes. Because the result goes through the signal's own equality
// check, a recompute that yields the same value propagates nothing further.
type Derived[T any] struct {
	sig *Signal[T]
}

// NewDerived creates a derived value on the current goroutine's runtime and
// computes it immediately.
func NewDerived[T any](compute func() T) *Derived[T] {
	return NewDerivedIn(CurrentRuntime(), compute)
}

// NewDerivedIn is NewDerived on an explicit runtime.
func NewDerivedIn[T any](rt *Runtime, compute func() T) *Derived[T] {
	var zero T
	sig := NewSignalIn(rt, zero)

	cb := newCallback(rt, func() Cleanup {
		sig.write(compute())
		return nil
	}, nil)

	rt.do(func() {
		rt.tracker.run(cb)
	})

	return &Derived[T]{sig: sig}
}

// Get returns the derived value, subscribing the currently-tracked callback
// to the backing signal.
func (d *Derived[T]) Get() T {
	return d.sig.Get()
}

// Peek returns the derived value without subscribing.
func (d *Derived[T]) Peek() T {
	return d.sig.Peek()
}

// Subscribe adds fn to the backing signal's subscriber set.
func (d *Derived[T]) Subscribe(fn func() Cleanup, opts ...Option) (unsubscribe func()) {
	return d.sig.Subscribe(fn, opts...)
}

// ID returns the unique identifier of the backing signal.
func (d *Derived[T]) ID() uint64 {
	return d.sig.ID()
}
