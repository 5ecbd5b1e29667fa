package observe

import (
	"testing"

	"go.opentelemetry.io/otel/attribute"

	"github.com/pulse-dev/pulse/pkg/pulse"
)

// The global tracer provider defaults to a no-op; these tests exercise the
// observer's span lifecycle bookkeeping, not exported trace data.

func TestTracingObservesFlushLifecycle(t *testing.T) {
	tr := NewTracing(WithAttributes(attribute.String("service", "test")))

	rt := pulse.NewRuntime()
	rt.AddObserver(tr)

	count := pulse.NewSignalIn(rt, 0)
	runs := 0
	pulse.NewEffectIn(rt, func() pulse.Cleanup {
		_ = count.Get()
		runs++
		return nil
	})

	count.Set(1)

	if runs != 2 {
		t.Fatalf("expected 2 runs, got %d", runs)
	}
	if tr.span != nil {
		t.Error("span should be closed after FlushEnd")
	}
}

func TestTracingClosesSpanOnFlushPanic(t *testing.T) {
	tr := NewTracing()

	rt := pulse.NewRuntime()
	rt.AddObserver(tr)

	count := pulse.NewSignalIn(rt, 0)
	first := true
	pulse.NewEffectIn(rt, func() pulse.Cleanup {
		_ = count.Get()
		if !first {
			panic("boom")
		}
		first = false
		return nil
	})

	func() {
		defer func() { _ = recover() }()
		count.Set(1)
	}()

	if tr.span != nil {
		t.Error("span should be closed after FlushError")
	}
}
