package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pulse-dev/pulse/pkg/pulse"
)

func demoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run a reactive graph demo",
		Long: `Run a small reactive graph and print what happens.

The demo builds a counter signal, a doubled derived value, and an
effect that logs both. It then shows how batched writes coalesce
into a single rerun, and how a lifecycle block scopes its
subscriptions.

Examples:
  pulse demo`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo()
		},
	}

	return cmd
}

func runDemo() error {
	printBanner()
	fmt.Println("  demo")
	fmt.Println()

	rt := pulse.NewRuntime()

	count := pulse.NewSignalIn(rt, 0)
	doubled := pulse.NewDerivedIn(rt, func() int {
		return count.Get() * 2
	})

	pulse.NewEffectIn(rt, func() pulse.Cleanup {
		info("count=%d doubled=%d", count.Get(), doubled.Get())
		return nil
	})

	info("three writes in one batch, one rerun:")
	rt.Batch(func() {
		count.Set(1)
		count.Set(2)
		count.Set(3)
	})

	info("a write that converges back to its old value is a no-op:")
	rt.Batch(func() {
		count.Set(10)
		count.Set(3)
	})

	info("lifecycle block scopes its effect:")
	block := pulse.NewLifecycleBlock(func(token *pulse.CancelToken) pulse.Cleanup {
		pulse.NewEffectIn(rt, func() pulse.Cleanup {
			info("scoped effect sees count=%d", count.Get())
			return nil
		}, pulse.WithCancelToken(token))
		return func() { info("scoped effect torn down") }
	})

	count.Set(4)
	block.Unload()
	count.Set(5) // scoped effect no longer runs

	success("demo complete")
	return nil
}
