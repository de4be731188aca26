package outwriter

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/akbargherbal/git-viz-sub001/internal/contract"
	"github.com/akbargherbal/git-viz-sub001/schema"

	"github.com/dustin/go-humanize"
)

// PrintSnapshotSummary reports a loaded snapshot in a short overview form.
// JSON output dumps the entire snapshot instead; every other format gets
// the overview text.
func PrintSnapshotSummary(snapshot *schema.Snapshot, cfg *contract.Config, duration time.Duration) error {
	if cfg.Output == schema.JSONOut {
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, snapshot)
		}, "Wrote JSON")
	}

	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeSnapshotOverview(snapshot, cfg, duration, w)
	}, "Wrote summary")
}

// writeSnapshotOverview generates the human-readable load summary.
func writeSnapshotOverview(snapshot *schema.Snapshot, cfg *contract.Config, duration time.Duration, writer io.Writer) error {
	md := snapshot.Metadata
	days := contract.CalculateDaysBetween(md.FirstCommit, md.LastCommit)

	if _, err := fmt.Fprintf(writer, "Repository %s: %s commits, %s files, %s authors\n",
		md.Name,
		humanize.Comma(int64(md.TotalCommits)),
		humanize.Comma(int64(md.TotalFiles)),
		humanize.Comma(int64(md.TotalAuthors)),
	); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "History spans %s to %s (%d days)\n",
		md.FirstCommit.Format(contract.DateOnlyFormat),
		md.LastCommit.Format(contract.DateOnlyFormat),
		days,
	); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Tree: %s nodes, %s directories indexed\n",
		humanize.Comma(int64(snapshot.Tree.NodeSpan)),
		humanize.Comma(int64(len(snapshot.Tree.DirIndex))),
	); err != nil {
		return err
	}

	totalEvents := 0
	for _, b := range snapshot.Activity.Buckets {
		totalEvents += b.Total()
	}
	if _, err := fmt.Fprintf(writer, "Activity: %s buckets, %s events\n",
		humanize.Comma(int64(len(snapshot.Activity.Buckets))),
		humanize.Comma(int64(totalEvents)),
	); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(writer, "Load completed in %v. Cache backend: %s\n", duration, cfg.CacheBackend); err != nil {
		return err
	}
	return nil
}

// PrintExportSummary lists the documents an export produced with their
// on-disk sizes. JSON output carries the same manifest as a document list.
func PrintExportSummary(written []string, cfg *contract.Config, duration time.Duration) error {
	if cfg.Output == schema.JSONOut {
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSONResultsForExport(w, written)
		}, "Wrote JSON")
	}

	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		var totalBytes uint64
		for _, path := range written {
			size := documentSize(path)
			totalBytes += size
			if _, err := fmt.Fprintf(w, "  %s (%s)\n", path, humanize.Bytes(size)); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "Exported %d documents (%s) in %v\n", len(written), humanize.Bytes(totalBytes), duration); err != nil {
			return err
		}
		return nil
	}, "Wrote summary")
}

// writeJSONResultsForExport marshals the export manifest to JSON.
func writeJSONResultsForExport(w io.Writer, written []string) error {
	type JSONExportedDocument struct {
		Path  string `json:"path"`
		Bytes uint64 `json:"bytes"`
	}

	output := make([]JSONExportedDocument, len(written))
	for i, path := range written {
		output[i] = JSONExportedDocument{
			Path:  path,
			Bytes: documentSize(path),
		}
	}
	return writeJSON(w, output)
}

// documentSize returns the file size, or zero when the file is unreadable.
func documentSize(path string) uint64 {
	info, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return uint64(info.Size())
}
