package pulse

import "time"

// valuePair is a per-signal snapshot held by a pending entry: the value at
// queue time and the latest value written since. The queue-time value is
// preserved across requeues in the same batch; only latest is overwritten.
type valuePair struct {
	queued any
	latest any
}

// pendingEntry is one queued callback in the current batch, with the signals
// that notified it in first-notification order.
type pendingEntry struct {
	cb      *callback
	order   []*signalCore
	signals map[*signalCore]valuePair
}

// scheduler coalesces write notifications per callback across a batch and
// replays affected callbacks in a single flush once the enclosing unit of
// work unwinds.
//
// State machine per batch: idle → armed → flushing → idle.
type scheduler struct {
	rt *Runtime

	// entries is the batch record in iteration order. A callback
	// requeued before the flush moves to the end, so it reruns after
	// callbacks that were notified earlier but not since.
	entries []*pendingEntry
	index   map[*callback]*pendingEntry

	// armed is set on the batch's 0→1 transition and cleared by flush.
	armed bool

	// flushIdx is the live iteration cursor, -1 while not flushing.
	// Requeues during the flush adjust it so moved entries are revisited.
	flushIdx int
}

func newScheduler(rt *Runtime) *scheduler {
	return &scheduler{
		rt:       rt,
		index:    make(map[*callback]*pendingEntry),
		flushIdx: -1,
	}
}

// queue records that sig changed from old to new while cb was subscribed.
// A callback already pending has its latest value for sig updated in place
// and its entry moved to the end of iteration order. The first pending entry
// of a batch arms exactly one flush; later entries do not re-arm.
func (s *scheduler) queue(cb *callback, sig *signalCore, old, new any) {
	if e, ok := s.index[cb]; ok {
		if p, seen := e.signals[sig]; seen {
			p.latest = new
			e.signals[sig] = p
		} else {
			e.signals[sig] = valuePair{queued: old, latest: new}
			e.order = append(e.order, sig)
		}
		s.moveToEnd(e)
		s.rt.observeWriteCoalesced(sig.id, cb.id)
		return
	}

	e := &pendingEntry{
		cb:      cb,
		order:   []*signalCore{sig},
		signals: map[*signalCore]valuePair{sig: {queued: old, latest: new}},
	}
	s.index[cb] = e
	s.entries = append(s.entries, e)
	s.rt.observeWriteQueued(sig.id, cb.id, old, new)

	if len(s.entries) == 1 && !s.armed {
		s.armed = true
	}
}

// moveToEnd reorders e to the back of the batch record. During a flush the
// cursor is adjusted so the live iteration reaches the moved entry again.
func (s *scheduler) moveToEnd(e *pendingEntry) {
	for i, cur := range s.entries {
		if cur != e {
			continue
		}
		if i == len(s.entries)-1 {
			return
		}
		s.entries = append(s.entries[:i], s.entries[i+1:]...)
		s.entries = append(s.entries, e)
		if s.flushIdx >= 0 && i <= s.flushIdx {
			s.flushIdx--
		}
		return
	}
}

// flush replays the batch once. Entries run in their current order; for each
// callback the per-signal snapshots are scanned in first-notification order
// and the first pair that differs justifies a rerun: the stored cleanup runs,
// then the body, directly and outside the tracking stack. Remaining signals
// for that callback are not checked.
//
// The iteration is live: entries appended by callbacks rerunning during this
// flush are reached before the record is cleared. The clear at the end is
// unconditional, so anything the iteration did not reach is dropped with the
// batch. A panicking callback propagates to whoever entered the unit.
func (s *scheduler) flush() {
	start := time.Now()
	s.rt.observeFlushBegin(len(s.entries))

	defer func() {
		s.flushIdx = -1
		if r := recover(); r != nil {
			s.clear()
			s.rt.observeFlushError(r)
			panic(r)
		}
	}()

	ran := 0
	for s.flushIdx = 0; s.flushIdx < len(s.entries); s.flushIdx++ {
		e := s.entries[s.flushIdx]
		for _, sig := range e.order {
			p := e.signals[sig]
			if shallowEqualsAny(p.queued, p.latest) {
				continue
			}

			if e.cb.cleanup != nil {
				cleanup := e.cb.cleanup
				e.cb.cleanup = nil
				cleanup()
			}

			t0 := time.Now()
			e.cb.cleanup = e.cb.fn()
			ran++
			s.rt.observeCallbackRan(e.cb.id, time.Since(t0))
			break
		}
	}

	s.clear()
	s.rt.observeFlushEnd(ran, time.Since(start))
}

func (s *scheduler) clear() {
	s.entries = nil
	clear(s.index)
	s.armed = false
}
