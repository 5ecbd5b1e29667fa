package inspect

import (
	"log/slog"
	"net/http"
	"time"
)

// Config configures the inspector server.
type Config struct {
	// Address is the listen address (default: ":7410").
	Address string

	// WriteTimeout bounds a single WebSocket write (default: 10s).
	WriteTimeout time.Duration

	// PingInterval is the keepalive ping period (default: 30s).
	// The read deadline is PingInterval plus WriteTimeout.
	PingInterval time.Duration

	// EventBuffer is the size of the fan-out buffer between the runtime
	// and the broadcaster, and of each client's send queue (default: 256).
	// Events beyond a full buffer are dropped and counted.
	EventBuffer int

	// CheckOrigin validates WebSocket upgrade origins.
	// Default: same-origin only (nil Origin header allowed).
	CheckOrigin func(r *http.Request) bool

	// Logger is the structured logger (default: slog.Default()).
	Logger *slog.Logger
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Address:      ":7410",
		WriteTimeout: 10 * time.Second,
		PingInterval: 30 * time.Second,
		EventBuffer:  256,
		Logger:       slog.Default(),
	}
}

func (c *Config) withDefaults() *Config {
	defaults := DefaultConfig()
	if c == nil {
		return defaults
	}
	out := *c
	if out.Address == "" {
		out.Address = defaults.Address
	}
	if out.WriteTimeout == 0 {
		out.WriteTimeout = defaults.WriteTimeout
	}
	if out.PingInterval == 0 {
		out.PingInterval = defaults.PingInterval
	}
	if out.EventBuffer == 0 {
		out.EventBuffer = defaults.EventBuffer
	}
	if out.Logger == nil {
		out.Logger = defaults.Logger
	}
	return &out
}
