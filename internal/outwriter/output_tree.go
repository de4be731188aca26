package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/akbargherbal/git-viz-sub001/core/tree"
	"github.com/akbargherbal/git-viz-sub001/internal/contract"
	"github.com/akbargherbal/git-viz-sub001/schema"
)

// PrintTree outputs the repository hierarchy, dispatching based on the output format configured.
func PrintTree(snapshot *schema.Snapshot, cfg *contract.Config, duration time.Duration) error {
	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeTreeJSONResults(snapshot.Tree, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeTreeCSVResults(snapshot.Tree, cfg); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		// Default to a human-readable indented listing
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeTreeText(snapshot.Tree, cfg, duration, w)
		}, "Wrote tree")
	}
	return nil
}

// writeTreeJSONResults handles opening the file and dumping the whole hierarchy.
func writeTreeJSONResults(result *schema.TreeResult, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSON(w, result)
	}, "Wrote JSON")
}

// writeTreeCSVResults handles opening the file and calling the CSV row writer.
func writeTreeCSVResults(result *schema.TreeResult, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		header := []string{"id", "path", "kind", "depth"}
		return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
			return writeCSVRowsForTree(csvWriter, result, cfg)
		})
	}, "Wrote CSV")
}

// writeCSVRowsForTree writes one row per node in identifier-stable walk order.
func writeCSVRowsForTree(w *csv.Writer, result *schema.TreeResult, cfg *contract.Config) error {
	var writeErr error
	tree.Walk(result.Root, func(node *schema.TreeNode, depth int) {
		if writeErr != nil {
			return
		}
		if cfg.TreeDepth > 0 && depth > cfg.TreeDepth {
			return
		}
		path := node.Path
		if path == "" {
			path = "."
		}
		row := []string{
			strconv.Itoa(node.ID),
			path,
			string(node.Kind),
			strconv.Itoa(depth),
		}
		writeErr = w.Write(row)
	})
	return writeErr
}

// writeTreeText renders the hierarchy as an indented listing. Directories
// carry a trailing slash and their identifier so activity rows can be
// cross-referenced by eye.
func writeTreeText(result *schema.TreeResult, cfg *contract.Config, duration time.Duration, writer io.Writer) error {
	var writeErr error
	tree.Walk(result.Root, func(node *schema.TreeNode, depth int) {
		if writeErr != nil {
			return
		}
		if cfg.TreeDepth > 0 && depth > cfg.TreeDepth {
			return
		}
		indent := strings.Repeat("  ", depth)
		switch node.Kind {
		case schema.DirectoryNode:
			name := node.Name
			if node.Path == "" {
				name = "."
			}
			_, writeErr = fmt.Fprintf(writer, "%s%s/ [id %d]\n", indent, name, node.ID)
		case schema.FileNode:
			_, writeErr = fmt.Fprintf(writer, "%s%s\n", indent, node.Name)
		}
	})
	if writeErr != nil {
		return writeErr
	}

	// Compute summary stats across the whole hierarchy, not just the
	// depth-limited listing.
	dirs, files := tree.CountKinds(result.Root)
	if _, err := fmt.Fprintf(writer, "%d directories, %d files (%d nodes)\n", dirs, files, result.NodeSpan); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Load completed in %v. Cache backend: %s\n", duration, cfg.CacheBackend); err != nil {
		return err
	}
	return nil
}
