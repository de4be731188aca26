package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/akbargherbal/git-viz-sub001/internal/contract"
	"github.com/akbargherbal/git-viz-sub001/internal/parquet"
	"github.com/akbargherbal/git-viz-sub001/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintActivity outputs ranked activity buckets, dispatching based on the output format configured.
func PrintActivity(buckets []schema.ActivityBucket, snapshot *schema.Snapshot, cfg *contract.Config, duration time.Duration) error {
	dirPaths := dirPathsByID(snapshot.Tree)

	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeActivityJSONResults(buckets, dirPaths, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeActivityCSVResults(buckets, dirPaths, cfg); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := writeActivityParquetResults(buckets, dirPaths, cfg); err != nil {
			return fmt.Errorf("error writing parquet output: %w", err)
		}
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeActivityTable(buckets, dirPaths, cfg, duration, w)
		}, "Wrote table")
	}
	return nil
}

// dirPathsByID inverts the tree's directory index so buckets can render their
// directory path. The root maps to ".".
func dirPathsByID(tree *schema.TreeResult) map[int]string {
	paths := make(map[int]string, len(tree.DirIndex))
	for path, id := range tree.DirIndex {
		if path == "" {
			path = "."
		}
		paths[id] = path
	}
	return paths
}

// writeActivityJSONResults handles opening the file and calling the JSON writer.
func writeActivityJSONResults(buckets []schema.ActivityBucket, dirPaths map[int]string, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSONResultsForActivity(w, buckets, dirPaths)
	}, "Wrote JSON")
}

// writeActivityCSVResults handles opening the file and calling the CSV writer.
func writeActivityCSVResults(buckets []schema.ActivityBucket, dirPaths map[int]string, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		csvWriter := csv.NewWriter(w)
		defer csvWriter.Flush()
		return writeCSVResultsForActivity(csvWriter, buckets, dirPaths)
	}, "Wrote CSV")
}

// writeActivityParquetResults converts the buckets to flat rows and writes a parquet file.
// Parquet is a binary format, so it always goes to a file rather than stdout.
func writeActivityParquetResults(buckets []schema.ActivityBucket, dirPaths map[int]string, cfg *contract.Config) error {
	if cfg.OutputFile == "" {
		return fmt.Errorf("parquet output requires --output-file")
	}
	rows := parquet.ConvertActivityBuckets(buckets, dirPaths)
	if err := parquet.WriteActivityParquet(rows, cfg.OutputFile); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "💾 Wrote parquet to %s\n", cfg.OutputFile)
	return nil
}

// writeActivityTable generates and writes the human-readable table.
func writeActivityTable(buckets []schema.ActivityBucket, dirPaths map[int]string, cfg *contract.Config, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)

	// 1. Define Headers
	headers := []string{"Rank", "Date", "Directory", "Added", "Modified", "Deleted", "Total", "Commits", "Authors", "Label"}
	table.Header(headers)

	// 2. Configure Separators/Borders to match a minimal look
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	labelFn := contract.GetPlainLabel
	if cfg.UseColors {
		labelFn = contract.GetColorLabel
	}

	// 3. Populate Rows
	maxPathWidth := GetMaxTablePathWidth(cfg)
	var data [][]string
	for i, b := range buckets {
		total := b.Total()
		row := []string{
			strconv.Itoa(i + 1), // Rank
			b.Date,              // UTC day
			contract.TruncatePath(dirPaths[b.DirID], maxPathWidth), // Directory
			strconv.Itoa(b.Added),
			strconv.Itoa(b.Modified),
			strconv.Itoa(b.Deleted),
			strconv.Itoa(total),
			strconv.Itoa(b.Commits),
			strconv.Itoa(b.Authors),
			labelFn(total), // Label
		}
		data = append(data, row)
	}

	// 4. Render the table
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	// Compute summary stats
	numBuckets := len(buckets)
	totalEvents := 0
	for _, b := range buckets {
		totalEvents += b.Total()
	}
	if _, err := fmt.Fprintf(writer, "Showing top %d buckets (total events: %d)\n", numBuckets, totalEvents); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Load completed in %v. Cache backend: %s\n", duration, cfg.CacheBackend); err != nil {
		return err
	}
	return nil
}
