package observe

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/pulse-dev/pulse/pkg/pulse"
)

// MetricsConfig configures the Prometheus metrics observer.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "pulse").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for flush and callback duration.
	// Default: prometheus.DefBuckets.
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer.
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus metrics observer.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "pulse",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics is a pulse.Observer exporting engine activity to Prometheus.
//
// Metrics collected:
//   - pulse_signals_total: Counter of signals created
//   - pulse_writes_queued_total: Counter of writes that queued a callback
//   - pulse_writes_coalesced_total: Counter of writes folded into a pending entry
//   - pulse_flushes_total: Counter of batch flushes
//   - pulse_flush_duration_seconds: Histogram of flush duration
//   - pulse_flush_pending: Histogram of pending callbacks per flush
//   - pulse_callback_runs_total: Counter of callback reruns
//   - pulse_callback_duration_seconds: Histogram of callback rerun duration
//   - pulse_callback_cancellations_total: Counter of token-detached callbacks
//   - pulse_flush_panics_total: Counter of panics surfaced during flush
type Metrics struct {
	signalsTotal     prometheus.Counter
	writesQueued     prometheus.Counter
	writesCoalesced  prometheus.Counter
	flushesTotal     prometheus.Counter
	flushDuration    prometheus.Histogram
	flushPending     prometheus.Histogram
	callbackRuns     prometheus.Counter
	callbackDuration prometheus.Histogram
	callbackCancels  prometheus.Counter
	flushPanics      prometheus.Counter
}

// NewMetrics creates the observer and registers its collectors.
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}

	factory := promauto.With(config.Registry)

	return &Metrics{
		signalsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "signals_total",
			Help:        "Total number of signals created",
			ConstLabels: config.ConstLabels,
		}),

		writesQueued: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "writes_queued_total",
			Help:        "Total number of writes that queued a callback for replay",
			ConstLabels: config.ConstLabels,
		}),

		writesCoalesced: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "writes_coalesced_total",
			Help:        "Total number of writes folded into an already-pending callback",
			ConstLabels: config.ConstLabels,
		}),

		flushesTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "flushes_total",
			Help:        "Total number of batch flushes",
			ConstLabels: config.ConstLabels,
		}),

		flushDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "flush_duration_seconds",
			Help:        "Batch flush duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}),

		flushPending: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "flush_pending",
			Help:        "Pending callbacks at the start of each flush",
			ConstLabels: config.ConstLabels,
			Buckets:     []float64{1, 2, 5, 10, 25, 50, 100, 250},
		}),

		callbackRuns: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "callback_runs_total",
			Help:        "Total number of callback reruns during flushes",
			ConstLabels: config.ConstLabels,
		}),

		callbackDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "callback_duration_seconds",
			Help:        "Callback rerun duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}),

		callbackCancels: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "callback_cancellations_total",
			Help:        "Total number of callbacks detached by cancellation tokens",
			ConstLabels: config.ConstLabels,
		}),

		flushPanics: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "flush_panics_total",
			Help:        "Total number of panics surfaced during flushes",
			ConstLabels: config.ConstLabels,
		}),
	}
}

// SignalCreated implements pulse.Observer.
func (m *Metrics) SignalCreated(uint64) {
	m.signalsTotal.Inc()
}

// WriteQueued implements pulse.Observer.
func (m *Metrics) WriteQueued(uint64, uint64, any, any) {
	m.writesQueued.Inc()
}

// WriteCoalesced implements pulse.Observer.
func (m *Metrics) WriteCoalesced(uint64, uint64) {
	m.writesCoalesced.Inc()
}

// FlushBegin implements pulse.Observer.
func (m *Metrics) FlushBegin(pending int) {
	m.flushPending.Observe(float64(pending))
}

// CallbackRan implements pulse.Observer.
func (m *Metrics) CallbackRan(_ uint64, d time.Duration) {
	m.callbackRuns.Inc()
	m.callbackDuration.Observe(d.Seconds())
}

// CallbackCancelled implements pulse.Observer.
func (m *Metrics) CallbackCancelled(uint64) {
	m.callbackCancels.Inc()
}

// FlushEnd implements pulse.Observer.
func (m *Metrics) FlushEnd(_ int, d time.Duration) {
	m.flushesTotal.Inc()
	m.flushDuration.Observe(d.Seconds())
}

// FlushError implements pulse.Observer.
func (m *Metrics) FlushError(any) {
	m.flushPanics.Inc()
}

var _ pulse.Observer = (*Metrics)(nil)
