package pulse

import "time"

// Observer receives engine events. Implementations must be fast and must not
// mutate the reactive graph; they run synchronously on the runtime's
// goroutine.
type Observer interface {
	// SignalCreated fires when a signal is created on the runtime.
	SignalCreated(signalID uint64)

	// WriteQueued fires when a write adds a callback to the batch record.
	WriteQueued(signalID, callbackID uint64, old, new any)

	// WriteCoalesced fires when a write folds into an already-pending
	// callback entry instead of adding a new one.
	WriteCoalesced(signalID, callbackID uint64)

	// FlushBegin fires when a batch flush starts, with the number of
	// pending callbacks at that point.
	FlushBegin(pending int)

	// CallbackRan fires after each callback rerun during a flush.
	CallbackRan(callbackID uint64, d time.Duration)

	// CallbackCancelled fires when a cancellation token detaches a
	// callback from its signals.
	CallbackCancelled(callbackID uint64)

	// FlushEnd fires when a flush completes, with the number of
	// callbacks that actually reran.
	FlushEnd(ran int, d time.Duration)

	// FlushError fires when a callback panics during a flush, before the
	// panic is rethrown.
	FlushError(recovered any)
}

// NopObserver is an Observer with no-op methods, for embedding by
// implementations that only care about a subset of events.
type NopObserver struct{}

func (NopObserver) SignalCreated(uint64)                    {}
func (NopObserver) WriteQueued(uint64, uint64, any, any)    {}
func (NopObserver) WriteCoalesced(uint64, uint64)           {}
func (NopObserver) FlushBegin(int)                          {}
func (NopObserver) CallbackRan(uint64, time.Duration)       {}
func (NopObserver) CallbackCancelled(uint64)                {}
func (NopObserver) FlushEnd(int, time.Duration)             {}
func (NopObserver) FlushError(any)                          {}

func (rt *Runtime) observeSignalCreated(signalID uint64) {
	for _, o := range rt.observers {
		o.SignalCreated(signalID)
	}
}

func (rt *Runtime) observeWriteQueued(signalID, callbackID uint64, old, new any) {
	for _, o := range rt.observers {
		o.WriteQueued(signalID, callbackID, old, new)
	}
}

func (rt *Runtime) observeWriteCoalesced(signalID, callbackID uint64) {
	for _, o := range rt.observers {
		o.WriteCoalesced(signalID, callbackID)
	}
}

func (rt *Runtime) observeCallbackCancelled(callbackID uint64) {
	for _, o := range rt.observers {
		o.CallbackCancelled(callbackID)
	}
}

func (rt *Runtime) observeFlushBegin(pending int) {
	for _, o := range rt.observers {
		o.FlushBegin(pending)
	}
}

func (rt *Runtime) observeCallbackRan(callbackID uint64, d time.Duration) {
	for _, o := range rt.observers {
		o.CallbackRan(callbackID, d)
	}
}

func (rt *Runtime) observeFlushEnd(ran int, d time.Duration) {
	for _, o := range rt.observers {
		o.FlushEnd(ran, d)
	}
}

func (rt *Runtime) observeFlushError(recovered any) {
	for _, o := range rt.observers {
		o.FlushError(recovered)
	}
}
