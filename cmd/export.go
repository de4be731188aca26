package cmd

import (
	"github.com/akbargherbal/git-viz-sub001/core"
	"github.com/akbargherbal/git-viz-sub001/internal/contract"
	"github.com/spf13/cobra"
)

// exportCmd regenerates the four input documents from a local repository.
var exportCmd = &cobra.Command{
	Use:   "export [repo-path]",
	Short: "Export the event-history documents from a local Git repository.",
	Long: `Walk a local repository's history and write the four JSON documents
the other commands consume: lifecycle, author_network, file_index and
directory_stats.

The history is read oldest-first with rename detection, so document order
matches the order the repository actually grew in. Renames become a single
rename event on the destination path.

Use --filter to export only one subtree and --exclude to drop generated or
binary paths. A change that falls outside the scope does not count toward
any total.

Examples:
  # Export the current repository into the working directory
  gitviz export

  # Export another repository into a target directory
  gitviz export ~/code/vizdemo --export-out ./exports/vizdemo

  # Export one subtree only
  gitviz export ~/code/vizdemo --filter src

  # Skip vendored and generated paths
  gitviz export ~/code/vizdemo --exclude "vendor/,generated/"

  # Round-trip check: export, then load what was exported
  gitviz export ~/code/vizdemo --export-out /tmp/viz
  gitviz load /tmp/viz`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: exportSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteGitvizExport(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot export documents", err)
		}
	},
}
