package pulse

// CancelToken is an explicit cancellation handle. Firing a token removes the
// callbacks bound to it from every signal's subscriber set, so they never
// rerun for subsequent writes. Firing is cooperative: a callback already
// mid-execution is not interrupted, and batches queued before the token
// fired still complete.
//
// Tokens are one-shot. Firing an already-fired token is a no-op.
type CancelToken struct {
	fired     bool
	listeners []func()
}

// NewCancelToken creates an unfired token.
func NewCancelToken() *CancelToken {
	return &CancelToken{}
}

// Fire marks the token as fired and invokes all registered listeners once,
// in registration order. Subsequent calls do nothing.
func (t *CancelToken) Fire() {
	if t.fired {
		return
	}
	t.fired = true

	listeners := t.listeners
	t.listeners = nil
	for _, fn := range listeners {
		fn()
	}
}

// OnFire registers fn to run when the token fires.
// If the token has already fired, fn runs immediately.
func (t *CancelToken) OnFire(fn func()) {
	if t.fired {
		fn()
		return
	}
	t.listeners = append(t.listeners, fn)
}

// IsFired reports whether the token has fired.
func (t *CancelToken) IsFired() bool {
	return t.fired
}
