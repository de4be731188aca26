package cmd

import (
	"github.com/akbargherbal/git-viz-sub001/core"
	"github.com/akbargherbal/git-viz-sub001/internal/contract"
	"github.com/spf13/cobra"
)

// metadataCmd prints the repository-level metadata.
var metadataCmd = &cobra.Command{
	Use:   "metadata [source]",
	Short: "Show repository metadata: authors, extensions, totals.",
	Long: `Build the snapshot and print the repository-level summary.

Combines the lifecycle and author network documents into one view:
- Commit range (first and last commit timestamps)
- Total commits, files and change events
- Authors ranked by commit count, with collaboration degree
- File extension distribution
- Directory count

Examples:
  # Summarize an export
  gitviz metadata ./exports/vizdemo

  # Feed the summary into other tooling
  gitviz metadata ./exports/vizdemo --output json

  # CSV for spreadsheets
  gitviz metadata ./exports/vizdemo --output csv --output-file summary.csv`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteGitvizMetadata(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot show metadata", err)
		}
	},
}
