// Package observe provides observability adapters for a pulse Runtime.
//
// Metrics exports Prometheus counters, gauges, and histograms for flushes,
// callback reruns, and write coalescing:
//
//	m := observe.NewMetrics(observe.WithNamespace("myapp"))
//	rt.AddObserver(m)
//	http.Handle("/metrics", promhttp.Handler())
//
// Tracing opens an OpenTelemetry span per batch flush, with pending and
// rerun counts as attributes:
//
//	rt.AddObserver(observe.NewTracing())
//
// Both adapters implement pulse.Observer and run synchronously on the
// runtime's goroutine; they record and return, deferring all I/O to the
// Prometheus scrape or the OTel exporter.
package observe
