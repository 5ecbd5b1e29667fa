package pulse

import (
	"reflect"
	"testing"
)

func TestBatchSingleRerunPerCallback(t *testing.T) {
	rt := NewRuntime()
	a := NewSignalIn(rt, 0)
	b := NewSignalIn(rt, 0)
	c := NewSignalIn(rt, 0)

	runs := 0
	var sum int
	NewEffectIn(rt, func() Cleanup {
		sum = a.Get() + b.Get() + c.Get()
		runs++
		return nil
	})

	rt.Run(func() {
		a.Set(1)
		b.Set(2)
		c.Set(3)
	})

	if runs != 2 {
		t.Errorf("expected exactly one rerun for three writes, got %d runs", runs)
	}
	if sum != 6 {
		t.Errorf("rerun should see final values, got sum %d", sum)
	}
}

func TestBatchCoalescesRepeatedWrites(t *testing.T) {
	rt := NewRuntime()
	count := NewSignalIn(rt, 0)

	runs := 0
	var seen int
	NewEffectIn(rt, func() Cleanup {
		seen = count.Get()
		runs++
		return nil
	})

	rt.Run(func() {
		count.Set(1)
		count.Set(2)
		count.Set(3)
		count.Set(4)
		count.Set(5)
	})

	if runs != 2 {
		t.Errorf("expected one rerun, got %d runs", runs)
	}
	if seen != 5 {
		t.Errorf("rerun should see the final value 5, got %d", seen)
	}
}

func TestNetZeroConvergence(t *testing.T) {
	rt := NewRuntime()
	count := NewSignalIn(rt, 0)

	runs := 0
	NewEffectIn(rt, func() Cleanup {
		_ = count.Get()
		runs++
		return nil
	})

	rt.Run(func() {
		count.Set(1)
		count.Set(2)
		count.Set(0)
	})

	// Queue-time value and latest value are both 0: nothing to replay.
	if runs != 1 {
		t.Errorf("a write sequence that nets to the starting value must not rerun, got %d runs", runs)
	}
}

func TestFlushOrderIsRegistrationOrder(t *testing.T) {
	rt := NewRuntime()
	count := NewSignalIn(rt, 0)

	var order []string
	for _, name := range []string{"A", "B", "C"} {
		name := name
		NewEffectIn(rt, func() Cleanup {
			_ = count.Get()
			order = append(order, name)
			return nil
		})
	}
	order = nil

	count.Set(1)

	want := []string{"A", "B", "C"}
	if !reflect.DeepEqual(order, want) {
		t.Errorf("flush order = %v, want %v", order, want)
	}
}

func TestRequeueMovesCallbackToEnd(t *testing.T) {
	rt := NewRuntime()
	s1 := NewSignalIn(rt, 0)
	s2 := NewSignalIn(rt, 0)
	s3 := NewSignalIn(rt, 0)

	var order []string
	NewEffectIn(rt, func() Cleanup {
		_ = s1.Get()
		_ = s2.Get()
		order = append(order, "A")
		return nil
	})
	NewEffectIn(rt, func() Cleanup {
		_ = s3.Get()
		order = append(order, "B")
		return nil
	})
	order = nil

	rt.Run(func() {
		s1.Set(1) // queues A
		s3.Set(1) // queues B
		s2.Set(1) // requeues A behind B
	})

	want := []string{"B", "A"}
	if !reflect.DeepEqual(order, want) {
		t.Errorf("requeued callback should run last: got %v, want %v", order, want)
	}
}

func TestRequeuedCallbackRunsOnce(t *testing.T) {
	rt := NewRuntime()
	s1 := NewSignalIn(rt, 0)
	s2 := NewSignalIn(rt, 0)

	runs := 0
	NewEffectIn(rt, func() Cleanup {
		_ = s1.Get()
		_ = s2.Get()
		runs++
		return nil
	})

	rt.Run(func() {
		s1.Set(1)
		s2.Set(1)
	})

	// Two changed dependencies, one rerun: the scan stops at the first
	// changed pair.
	if runs != 2 {
		t.Errorf("expected one rerun for two changed dependencies, got %d runs", runs)
	}
}

func TestWritesDuringFlushJoinLiveIteration(t *testing.T) {
	rt := NewRuntime()
	a := NewSignalIn(rt, 0)
	b := NewSignalIn(rt, 0)

	var order []string
	NewEffectIn(rt, func() Cleanup {
		if a.Get() > 0 {
			b.Set(a.Peek())
		}
		order = append(order, "writer")
		return nil
	})
	NewEffectIn(rt, func() Cleanup {
		_ = b.Get()
		order = append(order, "reader")
		return nil
	})
	order = nil

	a.Set(1)

	// The writer's rerun queues the reader mid-flush; the live iteration
	// reaches it before the batch record is cleared.
	want := []string{"writer", "reader"}
	if !reflect.DeepEqual(order, want) {
		t.Errorf("order = %v, want %v", order, want)
	}
	if b.Get() != 1 {
		t.Errorf("b = %d, want 1", b.Get())
	}
}

func TestSequentialBatchesDoNotInterleave(t *testing.T) {
	rt := NewRuntime()
	count := NewSignalIn(rt, 0)

	var seen []int
	NewEffectIn(rt, func() Cleanup {
		seen = append(seen, count.Get())
		return nil
	})
	seen = nil

	rt.Run(func() { count.Set(1) })
	rt.Run(func() { count.Set(2) })

	want := []int{1, 2}
	if !reflect.DeepEqual(seen, want) {
		t.Errorf("seen = %v, want %v", seen, want)
	}
}

func TestNestedUnitsFlushOnceAtOutermost(t *testing.T) {
	rt := NewRuntime()
	count := NewSignalIn(rt, 0)

	runs := 0
	NewEffectIn(rt, func() Cleanup {
		_ = count.Get()
		runs++
		return nil
	})

	rt.Run(func() {
		count.Set(1)
		rt.Run(func() {
			count.Set(2)
		})
		// Inner unit must not have flushed.
		if runs != 1 {
			t.Errorf("inner unit flushed early: %d runs", runs)
		}
		count.Set(3)
	})

	if runs != 2 {
		t.Errorf("expected one flush at outermost unwind, got %d runs", runs)
	}
}

func TestRequeueAfterReplayRunsAgainInSameFlush(t *testing.T) {
	rt := NewRuntime()
	a := NewSignalIn(rt, 0)
	b := NewSignalIn(rt, 0)

	var got [][2]int
	NewEffectIn(rt, func() Cleanup {
		got = append(got, [2]int{a.Get(), b.Get()})
		return nil
	})
	NewEffectIn(rt, func() Cleanup {
		if a.Get() > 0 {
			b.Set(10)
		}
		return nil
	})
	got = nil

	a.Set(1)

	// Both effects queue on a. The reader replays first, then the writer
	// changes b, which moves the reader's still-pending entry to the end
	// of the live iteration: it replays a second time with the new b.
	want := [][2]int{{1, 0}, {1, 10}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestEndToEndCounterScenario(t *testing.T) {
	rt := NewRuntime()
	count := NewSignalIn(rt, 0)

	var logs []int
	NewEffectIn(rt, func() Cleanup {
		logs = append(logs, count.Get())
		return nil
	})

	if !reflect.DeepEqual(logs, []int{0}) {
		t.Fatalf("effect should run once at creation, logs = %v", logs)
	}

	rt.Run(func() {
		count.Set(1)
		count.Set(2)
		count.Set(3)
		if len(logs) != 1 {
			t.Errorf("no rerun may happen before the unit unwinds, logs = %v", logs)
		}
	})

	if !reflect.DeepEqual(logs, []int{0, 3}) {
		t.Errorf("expected exactly one rerun seeing 3, logs = %v", logs)
	}
}
