// Package pulse provides a fine-grained reactive-value engine: mutable
// signals, derived values, and effects that rerun when the signals they
// read change.
//
// # Core Types
//
// Signal[T] is a reactive value container:
//
//	count := pulse.NewSignal(0)
//	value := count.Get()  // Read (subscribes the running callback, if any)
//	count.Set(5)          // Write (queues subscriber notifications)
//	count.Update(func(n int) int { return n + 1 })
//
// Derived[T] is a read-only signal computed from other signals:
//
//	doubled := pulse.NewDerived(func() int { return count.Get() * 2 })
//	value := doubled.Get()
//
// NewEffect runs a side effect and reruns it when its dependencies change:
//
//	pulse.NewEffect(func() pulse.Cleanup {
//	    fmt.Println("Count is:", count.Get())
//	    return func() { /* cleanup */ }
//	})
//
// # Scheduling
//
// Writes do not rerun subscribers synchronously. Notifications are queued
// and coalesced per callback, then replayed once when the current unit of
// work unwinds. A unit is either an explicit Runtime.Run/Batch call or a
// single top-level Set:
//
//	rt.Run(func() {
//	    a.Set(1)
//	    b.Set(2)
//	    c.Set(3)
//	})  // each affected callback reruns at most once, seeing final values
//
// Dependencies are recorded on a callback's first run only. Reruns are
// replayed outside the tracking stack, so a signal read first reached on a
// later run never becomes a dependency.
//
// # Concurrency
//
// A Runtime is confined to a single goroutine; the engine takes no locks.
// Package-level constructors use a per-goroutine runtime, so independent
// goroutines get independent reactive graphs. Use WithRuntime to pin a
// goroutine to an explicit Runtime.
package pulse
