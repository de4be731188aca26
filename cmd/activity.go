package cmd

import (
	"github.com/akbargherbal/git-viz-sub001/core"
	"github.com/akbargherbal/git-viz-sub001/internal/contract"
	"github.com/spf13/cobra"
)

// activityCmd ranks the busiest day and directory buckets.
var activityCmd = &cobra.Command{
	Use:   "activity [source]",
	Short: "Show the busiest (day, directory) activity buckets.",
	Long: `Build the snapshot and rank its activity buckets.

Each bucket aggregates the change events of one directory on one UTC day:
adds, modifications, deletions, distinct commits and distinct authors.
Buckets are ranked by total events, so the top of the list is where the
repository burned hottest.

Helps you:
- Spot bursts of work and when they happened
- See which directories absorb the most change
- Narrow a visualization to a day or a subtree before rendering

Examples:
  # Top 25 buckets overall
  gitviz activity ./exports/vizdemo

  # One day only
  gitviz activity ./exports/vizdemo --date 2024-03-01

  # Relative day filters work too
  gitviz activity ./exports/vizdemo --date "2 weeks ago"

  # One subtree only
  gitviz activity ./exports/vizdemo --dir src/parser

  # Columnar export for notebooks
  gitviz activity ./exports/vizdemo --output parquet --output-file activity.parquet`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteGitvizActivity(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot rank activity", err)
		}
	},
}
