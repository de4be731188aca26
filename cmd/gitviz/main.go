// Command gitviz turns exported Git history documents into the tree,
// metadata and activity structures a visualization frontend consumes.
package main

import (
	"fmt"
	"os"

	"github.com/akbargherbal/git-viz-sub001/cmd"
	"github.com/akbargherbal/git-viz-sub001/internal/contract"
	"github.com/akbargherbal/git-viz-sub001/internal/iocache"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env if present so connection strings and backends can live
	// outside the shell environment during local development.
	_ = godotenv.Load()

	cmd.SetStoreManager(iocache.Manager)

	err := cmd.Execute()

	if profErr := cmd.StopProfiling(); profErr != nil {
		contract.LogWarn("Failed to stop profiling", profErr)
	}

	iocache.CloseStores()

	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
