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
		Use:   "loom",
		Short: "Streaming server renderer for reactive Go views",
		Long: `Loom renders reactive view trees to streamed HTML.

Views suspend on loading data: the initial document is flushed with
fallback placeholders, and each boundary's real content streams as a
deferred fragment the moment its data resolves. Hydrated clients pick
up live updates over WebSocket.`,
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
