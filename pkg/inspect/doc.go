// Package inspect provides a live inspector for a pulse Runtime: an HTTP
// server that streams engine events (writes, flushes, callback reruns) to
// WebSocket clients as JSON frames, and serves an aggregate snapshot and
// Prometheus metrics over plain HTTP.
//
//	srv := inspect.New(inspect.DefaultConfig())
//	rt.AddObserver(srv)
//	go srv.ListenAndServe()
//
// Endpoints:
//   - GET /ws        WebSocket event stream
//   - GET /snapshot  aggregate counters as JSON
//   - GET /metrics   Prometheus exposition
//
// The observer side runs on the runtime's goroutine and never blocks: events
// go through a buffered channel and are dropped (and counted) when clients
// cannot keep up.
package inspect
