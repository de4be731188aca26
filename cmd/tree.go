package cmd

import (
	"github.com/akbargherbal/git-viz-sub001/core"
	"github.com/akbargherbal/git-viz-sub001/internal/contract"
	"github.com/spf13/cobra"
)

// treeCmd renders the directory hierarchy of the snapshot.
var treeCmd = &cobra.Command{
	Use:   "tree [source]",
	Short: "Show the directory hierarchy derived from the file index.",
	Long: `Build the snapshot and render its directory tree.

Every file the repository export knows about lands under its parent
directories, in the order the export first saw it. Node identifiers are
stable for a given input, so the tree can be cross-referenced with the
activity buckets.

Helps you:
- Inspect how the export structured the repository
- Confirm filters and excludes removed what you expected
- Map directory identifiers to paths when debugging activity data

Examples:
  # Render the full tree
  gitviz tree ./exports/vizdemo

  # Only the top two levels
  gitviz tree ./exports/vizdemo --depth 2

  # Machine-readable form for other tooling
  gitviz tree ./exports/vizdemo --output json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteGitvizTree(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot render tree", err)
		}
	},
}
