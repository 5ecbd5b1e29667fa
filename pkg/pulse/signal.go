package pulse

// signalCore provides type-erased subscriber management and identity.
// It is embedded in Signal[T] so the scheduler and tracker can reference a
// signal without knowing its value type.
type signalCore struct {
	id uint64

	// subs are the callbacks subscribed to this signal, in insertion
	// order. Notification order is iteration order, so removals must
	// preserve ordering.
	subs []*callback
}

// subscribe adds a callback to this signal's subscribers.
// Idempotent: a callback already present is not added again.
func (s *signalCore) subscribe(cb *callback) {
	if cb == nil {
		return
	}
	for _, existing := range s.subs {
		if existing == cb {
			return
		}
	}
	s.subs = append(s.subs, cb)
}

// unsubscribe removes a callback, preserving the order of the rest.
func (s *signalCore) unsubscribe(cb *callback) {
	for i, existing := range s.subs {
		if existing == cb {
			s.subs = append(s.subs[:i], s.subs[i+1:]...)
			return
		}
	}
}

// Signal is a mutable reactive cell. Reading it while a callback is
// executing on the runtime's tracking stack subscribes that callback;
// writing it queues a coalesced notification for every subscriber.
type Signal[T any] struct {
	core signalCore

	rt    *Runtime
	value T

	// equal overrides the default shallow equality when set.
	equal func(T, T) bool
}

// NewSignal creates a signal with the given initial value on the current
// goroutine's runtime.
func NewSignal[T any](initial T) *Signal[T] {
	return NewSignalIn(CurrentRuntime(), initial)
}

// NewSignalIn creates a signal with the given initial value on rt.
func NewSignalIn[T any](rt *Runtime, initial T) *Signal[T] {
	s := &Signal[T]{
		core:  signalCore{id: nextID()},
		rt:    rt,
		value: initial,
	}
	rt.observeSignalCreated(s.core.id)
	return s
}

// Get returns the current value. If a callback is currently executing
// through the runtime's tracker, it is subscribed to this signal; the
// subscription is idempotent.
func (s *Signal[T]) Get() T {
	if cb := s.rt.tracker.current(); cb != nil {
		s.core.subscribe(cb)
		cb.addSource(&s.core)
	}
	return s.value
}

// Peek returns the current value without subscribing anything.
func (s *Signal[T]) Peek() T {
	return s.value
}

// Set writes a new value. If the value is equal to the current one under
// shallow equality the write is a no-op with no notification. Otherwise the
// value is swapped in immediately, an (old, new) snapshot is captured, and
// every current subscriber is handed to the scheduler. Subscribers rerun
// when the enclosing unit of work unwinds, at most once per unit.
func (s *Signal[T]) Set(v T) {
	s.rt.do(func() {
		s.write(v)
	})
}

// Update computes the new value from the current one, then behaves like Set.
func (s *Signal[T]) Update(fn func(T) T) {
	s.rt.do(func() {
		s.write(fn(s.value))
	})
}

// Subscribe adds fn to the subscriber set. It returns an unsubscribe
// function that removes fn unconditionally; if a cancellation token is
// supplied via WithCancelToken, the token firing also removes it.
//
// Unlike NewEffect, fn does not run at subscription time; it runs when this
// signal's value changes.
func (s *Signal[T]) Subscribe(fn func() Cleanup, opts ...Option) (unsubscribe func()) {
	o := applyOptions(opts)
	cb := newCallback(s.rt, fn, o.token)
	s.core.subscribe(cb)
	cb.addSource(&s.core)
	return func() {
		s.core.unsubscribe(cb)
	}
}

// WithEquals overrides the signal's equality function. Use this for types
// where shallow reference identity has the wrong semantics.
func (s *Signal[T]) WithEquals(fn func(T, T) bool) *Signal[T] {
	s.equal = fn
	return s
}

// ID returns the unique identifier for this signal.
func (s *Signal[T]) ID() uint64 {
	return s.core.id
}

func (s *Signal[T]) equals(a, b T) bool {
	if s.equal != nil {
		return s.equal(a, b)
	}
	return shallowEquals(a, b)
}

// write swaps the value and queues subscriber notifications.
// Must run inside a runtime unit.
func (s *Signal[T]) write(v T) {
	if s.equals(s.value, v) {
		return
	}
	old := s.value
	s.value = v

	if len(s.core.subs) == 0 {
		return
	}

	// Snapshot: queueing must see the subscriber set as of the write.
	subs := make([]*callback, len(s.core.subs))
	copy(subs, s.core.subs)
	for _, cb := range subs {
		s.rt.sched.queue(cb, &s.core, old, v)
	}
}
