package pulse

// Cleanup is a function returned by an effect or subscriber body to release
// resources. It is called before the body's next run and when the callback's
// cancellation token fires.
type Cleanup func()

// callback is the explicit record behind every effect, subscriber, and
// derived-value wrapper. Scheduling and cleanup bookkeeping attach to this
// record, not to the function value, so the same record is replayed on every
// rerun.
type callback struct {
	id uint64

	// fn is the body. Its return value becomes the new cleanup.
	fn func() Cleanup

	// cleanup from the previous run, invoked immediately before the next
	// run or on cancellation.
	cleanup Cleanup

	// token, when set, detaches this callback from all sources on fire.
	token *CancelToken

	// sources are the signals this callback is subscribed to.
	sources []*signalCore
}

func newCallback(rt *Runtime, fn func() Cleanup, token *CancelToken) *callback {
	cb := &callback{
		id:    nextID(),
		fn:    fn,
		token: token,
	}
	if token != nil {
		// Teardown on cancellation: stored cleanup first, then removal
		// from every subscriber set.
		token.OnFire(func() {
			if cb.cleanup != nil {
				cleanup := cb.cleanup
				cb.cleanup = nil
				cleanup()
			}
			cb.detach()
			rt.observeCallbackCancelled(cb.id)
		})
	}
	return cb
}

// addSource records a signal this callback is subscribed to.
// Deduplicated so repeated reads of the same signal are idempotent.
func (cb *callback) addSource(s *signalCore) {
	for _, src := range cb.sources {
		if src == s {
			return
		}
	}
	cb.sources = append(cb.sources, s)
}

// detach removes the callback from every signal's subscriber set.
// Called when the cancellation token fires; one-shot.
func (cb *callback) detach() {
	for _, src := range cb.sources {
		src.unsubscribe(cb)
	}
	cb.sources = nil
}

// callbackOptions configures an effect or subscription.
type callbackOptions struct {
	token *CancelToken
}

// Option configures an effect or subscription.
type Option func(*callbackOptions)

// WithCancelToken binds the callback to a cancellation token. When the token
// fires, the callback is removed from every signal it is subscribed to and
// never reruns for subsequent writes.
func WithCancelToken(t *CancelToken) Option {
	return func(o *callbackOptions) {
		o.token = t
	}
}

func applyOptions(opts []Option) callbackOptions {
	var o callbackOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
