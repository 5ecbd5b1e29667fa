package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  ╔═╗┬ ┬┬  ┌─┐┌─┐
  ╠═╝│ ││  └─┐├┤
  ╩  └─┘┴─┘└─┘└─┘
`

func main() {
	rootCmd := &cobra.Command{
		Use:   "pulse",
		Short: "Reactive state engine for Go",
		Long: `Pulse is a fine-grained reactive state engine for Go.

Signals hold values, effects and derived values subscribe to
them, and a batching scheduler coalesces writes so each
subscriber runs at most once per unit of work. Features include:

  • Signals with shallow change detection
  • Effects with cleanup and cancellation tokens
  • Derived values computed from other signals
  • Lifecycle blocks for scoped setup/teardown
  • Live inspector over WebSocket with Prometheus metrics`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		demoCmd(),
		inspectCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "\033[31mError:\033[0m %s\n", err)
		os.Exit(1)
	}
}

// printBanner prints the Pulse ASCII art banner.
func printBanner() {
	fmt.Print(banner)
}

// success prints a success message.
func success(format string, args ...any) {
	fmt.Printf("\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(format string, args ...any) {
	fmt.Printf("  %s\n", fmt.Sprintf(format, args...))
}

// errorMsg prints an error message.
func errorMsg(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "\033[31m✗\033[0m %s\n", fmt.Sprintf(format, args...))
}
