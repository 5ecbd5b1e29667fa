package inspect

import "time"

// EventType discriminates inspector event frames.
type EventType string

const (
	EventSignalCreated     EventType = "signal_created"
	EventWriteQueued       EventType = "write_queued"
	EventWriteCoalesced    EventType = "write_coalesced"
	EventFlushBegin        EventType = "flush_begin"
	EventCallbackRan       EventType = "callback_ran"
	EventCallbackCancelled EventType = "callback_cancelled"
	EventFlushEnd          EventType = "flush_end"
	EventFlushError        EventType = "flush_error"
)

// Event is one engine event as streamed to WebSocket clients.
// Zero-valued fields are omitted from the JSON encoding.
type Event struct {
	Type EventType `json:"type"`
	Time time.Time `json:"time"`

	SignalID   uint64 `json:"signal_id,omitempty"`
	CallbackID uint64 `json:"callback_id,omitempty"`

	// Old and New carry the write snapshot for write_queued events.
	Old any `json:"old,omitempty"`
	New any `json:"new,omitempty"`

	// Pending is the batch size for flush_begin events.
	Pending int `json:"pending,omitempty"`

	// Ran is the number of callbacks replayed, for flush_end events.
	Ran int `json:"ran,omitempty"`

	DurationMicros int64 `json:"duration_us,omitempty"`

	// Error is the stringified panic for flush_error events.
	Error string `json:"error,omitempty"`
}

// Snapshot is the aggregate state served at /snapshot.
type Snapshot struct {
	Signals         uint64    `json:"signals"`
	WritesQueued    uint64    `json:"writes_queued"`
	WritesCoalesced uint64    `json:"writes_coalesced"`
	Flushes         uint64    `json:"flushes"`
	CallbackRuns    uint64    `json:"callback_runs"`
	Cancellations   uint64    `json:"cancellations"`
	FlushPanics     uint64    `json:"flush_panics"`
	DroppedEvents   uint64    `json:"dropped_events"`
	Clients         int       `json:"clients"`
	CollectedAt     time.Time `json:"collected_at"`
}
