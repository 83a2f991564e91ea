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

func main() {
	rootCmd := &cobra.Command{
		Use:   "gatekit",
		Short: "Authentication guard toolkit for server-driven Go UIs",
		Long: `GateKit guards server-rendered content behind authentication state.

The demo server shows the full stack in action:

  • JWT or session-backed auth sources
  • Guarded routes with redirect-to-login
  • Live guard re-evaluation over WebSocket
  • Prometheus metrics on /metrics`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		serveCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
