package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/pulse-dev/pulse/pkg/inspect"
	"github.com/pulse-dev/pulse/pkg/observe"
	"github.com/pulse-dev/pulse/pkg/pulse"
)

func inspectCmd() *cobra.Command {
	var (
		addr     string
		interval time.Duration
	)

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Start the live inspector",
		Long: `Start the inspector server on a demo reactive graph.

The inspector streams engine events (writes, coalescing, flushes,
callback runs) as JSON over WebSocket and exposes Prometheus
metrics. A demo ticker drives the graph so there is something to
watch.

Endpoints:
  GET /ws        event stream (WebSocket)
  GET /snapshot  engine counters as JSON
  GET /metrics   Prometheus metrics

Examples:
  pulse inspect
  pulse inspect --addr=:9000 --interval=250ms`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(addr, interval)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", ":7410", "Address to listen on")
	cmd.Flags().DurationVarP(&interval, "interval", "i", time.Second, "Demo write interval")

	return cmd
}

func runInspect(addr string, interval time.Duration) error {
	printBanner()
	fmt.Println("  inspect")
	fmt.Println()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	srv := inspect.New(&inspect.Config{
		Address: addr,
		Logger:  logger,
	})

	rt := pulse.NewRuntime()
	rt.AddObserver(srv)
	rt.AddObserver(observe.NewMetrics())

	ticks := pulse.NewSignalIn(rt, 0)
	parity := pulse.NewDerivedIn(rt, func() string {
		if ticks.Get()%2 == 0 {
			return "even"
		}
		return "odd"
	})
	pulse.NewEffectIn(rt, func() pulse.Cleanup {
		logger.Info("tick", "n", ticks.Get(), "parity", parity.Get())
		return nil
	})

	stop := make(chan struct{})
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		n := 0
		for {
			select {
			case <-ticker.C:
				n++
				ticks.Set(n)
			case <-stop:
				return
			}
		}
	}()

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil {
			errCh <- err
		}
	}()

	success("inspector listening on %s", addr)
	info("ws://%s/ws for the event stream", hostFor(addr))
	info("press Ctrl+C to stop")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		close(stop)
		return err
	case <-sigCh:
	}

	close(stop)
	fmt.Println()
	info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}

// hostFor turns a bind address like ":7410" into something dialable.
func hostFor(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}
