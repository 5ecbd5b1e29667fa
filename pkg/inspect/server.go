package inspect

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pulse-dev/pulse/pkg/pulse"
)

// Server streams engine events to WebSocket clients and serves aggregate
// state over HTTP. It implements pulse.Observer; register it on a Runtime
// with AddObserver.
type Server struct {
	config *Config
	logger *slog.Logger

	upgrader websocket.Upgrader

	// events carries frames from the runtime goroutine to the broadcaster.
	events chan Event

	clients   map[*client]struct{}
	clientsMu sync.Mutex

	// Aggregate counters for /snapshot.
	signals         atomic.Uint64
	writesQueued    atomic.Uint64
	writesCoalesced atomic.Uint64
	flushes         atomic.Uint64
	callbackRuns    atomic.Uint64
	cancellations   atomic.Uint64
	flushPanics     atomic.Uint64
	dropped         atomic.Uint64

	httpServer *http.Server
	closeOnce  sync.Once
	done       chan struct{}
}

// New creates an inspector server and starts its broadcast loop.
func New(config *Config) *Server {
	config = config.withDefaults()

	s := &Server{
		config:  config,
		logger:  config.Logger,
		events:  make(chan Event, config.EventBuffer),
		clients: make(map[*client]struct{}),
		done:    make(chan struct{}),
	}

	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 4096,
		CheckOrigin:     config.CheckOrigin,
	}

	go s.broadcastLoop()

	return s
}

// Router returns the inspector's HTTP handler.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Get("/ws", s.handleWS)
	r.Get("/snapshot", s.handleSnapshot)
	r.Handle("/metrics", promhttp.Handler())
	return r
}

// ListenAndServe serves the inspector on the configured address.
// It blocks until Shutdown is called or the listener fails.
func (s *Server) ListenAndServe() error {
	s.httpServer = &http.Server{
		Addr:         s.config.Address,
		Handler:      s.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0, // WebSocket writes manage their own deadlines
	}

	s.logger.Info("inspector listening", "address", s.config.Address)
	err := s.httpServer.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown stops the broadcast loop, closes all clients, and shuts down the
// HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.closeOnce.Do(func() {
		close(s.done)
	})

	s.clientsMu.Lock()
	for c := range s.clients {
		c.close()
	}
	s.clients = map[*client]struct{}{}
	s.clientsMu.Unlock()

	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}

// Snapshot returns the current aggregate counters.
func (s *Server) Snapshot() Snapshot {
	s.clientsMu.Lock()
	clients := len(s.clients)
	s.clientsMu.Unlock()

	return Snapshot{
		Signals:         s.signals.Load(),
		WritesQueued:    s.writesQueued.Load(),
		WritesCoalesced: s.writesCoalesced.Load(),
		Flushes:         s.flushes.Load(),
		CallbackRuns:    s.callbackRuns.Load(),
		Cancellations:   s.cancellations.Load(),
		FlushPanics:     s.flushPanics.Load(),
		DroppedEvents:   s.dropped.Load(),
		Clients:         clients,
		CollectedAt:     time.Now(),
	}
}

// =============================================================================
// HTTP handlers
// =============================================================================

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.Snapshot()); err != nil {
		s.logger.Error("snapshot encode error", "error", err)
	}
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", "error", err)
		return
	}

	c := newClient(s, conn)

	s.clientsMu.Lock()
	s.clients[c] = struct{}{}
	s.clientsMu.Unlock()
	s.logger.Info("inspector client connected", "remote", conn.RemoteAddr())

	go c.writePump()
	go c.readPump()
}

func (s *Server) removeClient(c *client) {
	s.clientsMu.Lock()
	delete(s.clients, c)
	s.clientsMu.Unlock()
	s.logger.Info("inspector client disconnected", "remote", c.conn.RemoteAddr())
}

// =============================================================================
// Broadcast
// =============================================================================

// broadcastLoop fans events out to every connected client. A client whose
// send queue is full loses the frame; the drop is counted globally.
func (s *Server) broadcastLoop() {
	for {
		select {
		case <-s.done:
			return
		case ev := <-s.events:
			payload, err := json.Marshal(ev)
			if err != nil {
				s.logger.Error("event encode error", "error", err)
				continue
			}

			s.clientsMu.Lock()
			for c := range s.clients {
				select {
				case c.send <- payload:
				default:
					s.dropped.Add(1)
				}
			}
			s.clientsMu.Unlock()
		}
	}
}

// emit hands an event to the broadcaster without blocking the runtime.
func (s *Server) emit(ev Event) {
	ev.Time = time.Now()
	select {
	case s.events <- ev:
	default:
		s.dropped.Add(1)
	}
}

// =============================================================================
// pulse.Observer
// =============================================================================

// SignalCreated implements pulse.Observer.
func (s *Server) SignalCreated(signalID uint64) {
	s.signals.Add(1)
	s.emit(Event{Type: EventSignalCreated, SignalID: signalID})
}

// WriteQueued implements pulse.Observer.
func (s *Server) WriteQueued(signalID, callbackID uint64, old, new any) {
	s.writesQueued.Add(1)
	s.emit(Event{
		Type:       EventWriteQueued,
		SignalID:   signalID,
		CallbackID: callbackID,
		Old:        old,
		New:        new,
	})
}

// WriteCoalesced implements pulse.Observer.
func (s *Server) WriteCoalesced(signalID, callbackID uint64) {
	s.writesCoalesced.Add(1)
	s.emit(Event{Type: EventWriteCoalesced, SignalID: signalID, CallbackID: callbackID})
}

// FlushBegin implements pulse.Observer.
func (s *Server) FlushBegin(pending int) {
	s.emit(Event{Type: EventFlushBegin, Pending: pending})
}

// CallbackRan implements pulse.Observer.
func (s *Server) CallbackRan(callbackID uint64, d time.Duration) {
	s.callbackRuns.Add(1)
	s.emit(Event{Type: EventCallbackRan, CallbackID: callbackID, DurationMicros: d.Microseconds()})
}

// CallbackCancelled implements pulse.Observer.
func (s *Server) CallbackCancelled(callbackID uint64) {
	s.cancellations.Add(1)
	s.emit(Event{Type: EventCallbackCancelled, CallbackID: callbackID})
}

// FlushEnd implements pulse.Observer.
func (s *Server) FlushEnd(ran int, d time.Duration) {
	s.flushes.Add(1)
	s.emit(Event{Type: EventFlushEnd, Ran: ran, DurationMicros: d.Microseconds()})
}

// FlushError implements pulse.Observer.
func (s *Server) FlushError(recovered any) {
	s.flushPanics.Add(1)
	s.emit(Event{Type: EventFlushError, Error: fmt.Sprint(recovered)})
}

var _ pulse.Observer = (*Server)(nil)
