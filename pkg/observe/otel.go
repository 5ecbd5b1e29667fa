package observe

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/pulse-dev/pulse/pkg/pulse"
)

// Default tracer name for pulse runtimes.
const defaultTracerName = "pulse"

// TracingConfig configures the OpenTelemetry observer.
type TracingConfig struct {
	// TracerName is the name of the tracer (default: "pulse").
	TracerName string

	// Context is the parent context for flush spans.
	// Default: context.Background().
	Context context.Context

	// Attributes are constant attributes added to every flush span.
	Attributes []attribute.KeyValue

	// tracer is the resolved tracer instance.
	tracer trace.Tracer
}

// TracingOption configures the OpenTelemetry observer.
type TracingOption func(*TracingConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) TracingOption {
	return func(c *TracingConfig) {
		c.TracerName = name
	}
}

// WithContext sets the parent context for flush spans.
func WithContext(ctx context.Context) TracingOption {
	return func(c *TracingConfig) {
		c.Context = ctx
	}
}

// WithAttributes adds constant attributes to every flush span.
func WithAttributes(attrs ...attribute.KeyValue) TracingOption {
	return func(c *TracingConfig) {
		c.Attributes = append(c.Attributes, attrs...)
	}
}

func defaultTracingConfig() TracingConfig {
	return TracingConfig{
		TracerName: defaultTracerName,
		Context:    context.Background(),
	}
}

// Tracing is a pulse.Observer that opens a span per batch flush. The span
// carries the number of pending callbacks, the number that actually reran,
// and per-callback run events. A panic during flush sets the span status to
// error before the panic is rethrown.
//
// Flush events arrive strictly nested and on a single goroutine, so the
// observer keeps the open span between FlushBegin and FlushEnd without
// synchronization.
type Tracing struct {
	pulse.NopObserver

	config TracingConfig

	span trace.Span
	ran  int
}

// NewTracing creates the observer using the globally registered tracer
// provider.
func NewTracing(opts ...TracingOption) *Tracing {
	config := defaultTracingConfig()
	for _, opt := range opts {
		opt(&config)
	}
	config.tracer = otel.Tracer(config.TracerName)

	return &Tracing{config: config}
}

// FlushBegin implements pulse.Observer.
func (t *Tracing) FlushBegin(pending int) {
	attrs := append([]attribute.KeyValue{
		attribute.Int("pulse.flush.pending", pending),
	}, t.config.Attributes...)

	_, t.span = t.config.tracer.Start(t.config.Context, "pulse.flush",
		trace.WithAttributes(attrs...))
	t.ran = 0
}

// CallbackRan implements pulse.Observer.
func (t *Tracing) CallbackRan(callbackID uint64, d time.Duration) {
	if t.span == nil {
		return
	}
	t.ran++
	t.span.AddEvent("callback.run", trace.WithAttributes(
		attribute.Int64("pulse.callback.id", int64(callbackID)),
		attribute.Int64("pulse.callback.duration_us", d.Microseconds()),
	))
}

// FlushEnd implements pulse.Observer.
func (t *Tracing) FlushEnd(ran int, d time.Duration) {
	if t.span == nil {
		return
	}
	t.span.SetAttributes(
		attribute.Int("pulse.flush.ran", ran),
		attribute.Int64("pulse.flush.duration_us", d.Microseconds()),
	)
	t.span.End()
	t.span = nil
}

// FlushError implements pulse.Observer.
func (t *Tracing) FlushError(recovered any) {
	if t.span == nil {
		return
	}
	t.span.SetStatus(codes.Error, fmt.Sprint(recovered))
	t.span.End()
	t.span = nil
}

var _ pulse.Observer = (*Tracing)(nil)
