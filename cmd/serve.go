package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/akbargherbal/git-viz-sub001/internal/webserve"
	"github.com/spf13/cobra"
)

// serveShutdownTimeout bounds how long in-flight requests get to finish.
const serveShutdownTimeout = 10 * time.Second

// serveCmd runs the HTTP snapshot server.
var serveCmd = &cobra.Command{
	Use:   "serve [source]",
	Short: "Serve snapshots over HTTP for a visualization frontend.",
	Long: `Start an HTTP server that builds snapshots on demand and returns them
as JSON.

Endpoints:
  /api/snapshot?source=  - the full snapshot bundle for a source
  /api/progress?source=  - websocket stream of load progress events
  /metrics               - Prometheus metrics for loads and cache hits

Snapshots are cached in an LRU keyed by source, so repeated requests for
the same export cost one load. The positional source becomes the default
when a request omits the source parameter.

Examples:
  # Serve the default source on the default address
  gitviz serve ./exports/vizdemo

  # Custom address and a bigger snapshot cache
  gitviz serve ./exports/vizdemo --addr :9000 --cache-size 64

  # Curl the snapshot bundle
  gitviz serve ./exports/vizdemo &
  curl http://localhost:8090/api/snapshot`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		server, err := webserve.New(cfg, storeManager)
		if err != nil {
			return fmt.Errorf("failed to create server: %w", err)
		}

		// Setup graceful shutdown
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		// Start server in a goroutine
		serverErr := make(chan error, 1)
		go func() {
			fmt.Printf("Serving snapshots on http://localhost%s (source: %s)\n", server.Addr(), cfg.SourcePath)
			fmt.Println("Press Ctrl+C to stop")
			serverErr <- server.Start()
		}()

		// Wait for shutdown signal or server error
		select {
		case err := <-serverErr:
			return err
		case <-shutdown:
			ctx, cancel := context.WithTimeout(rootCtx, serveShutdownTimeout)
			defer cancel()
			if err := server.Shutdown(ctx); err != nil {
				return fmt.Errorf("error during shutdown: %w", err)
			}
		}

		return nil
	},
}
