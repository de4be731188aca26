package outwriter

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/akbargherbal/git-viz-sub001/internal/contract"
	"github.com/akbargherbal/git-viz-sub001/schema"
)

// writeJSONResultsForActivity marshals the schema.ActivityBucket slice to JSON and writes it.
func writeJSONResultsForActivity(w io.Writer, buckets []schema.ActivityBucket, dirPaths map[int]string) error {
	// 1. Prepare the data structure for JSON with rank, path and label added
	type JSONActivityBucket struct {
		Rank      int    `json:"rank"`
		Directory string `json:"directory"`
		Total     int    `json:"total"`
		Label     string `json:"label"`
		schema.ActivityBucket
	}

	output := make([]JSONActivityBucket, len(buckets))
	for i, b := range buckets {
		output[i] = JSONActivityBucket{
			Rank:           i + 1,
			Directory:      dirPaths[b.DirID],
			Total:          b.Total(),
			Label:          contract.GetPlainLabel(b.Total()),
			ActivityBucket: b,
		}
	}

	// 2. Use the generic JSON writer
	return writeJSON(w, output)
}

// writeCSVResultsForActivity writes the schema.ActivityBucket data to a CSV writer.
func writeCSVResultsForActivity(w *csv.Writer, buckets []schema.ActivityBucket, dirPaths map[int]string) error {
	// 1. Write Header Row
	header := []string{
		"rank",
		"date",
		"directory",
		"dir_id",
		"added",
		"modified",
		"deleted",
		"total",
		"commits",
		"authors",
		"label",
		"top_authors",
		"top_files",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	// 2. Write Data Rows
	for i, b := range buckets {
		total := b.Total()
		row := []string{
			strconv.Itoa(i + 1),             // Rank
			b.Date,                          // UTC day
			dirPaths[b.DirID],               // Directory Path
			strconv.Itoa(b.DirID),           // Directory Identifier
			strconv.Itoa(b.Added),           // Added
			strconv.Itoa(b.Modified),        // Modified
			strconv.Itoa(b.Deleted),         // Deleted
			strconv.Itoa(total),             // Total Events
			strconv.Itoa(b.Commits),         // Distinct Commits
			strconv.Itoa(b.Authors),         // Distinct Authors
			contract.GetPlainLabel(total),   // Label
			strings.Join(b.TopAuthors, "|"), // Top Authors
			strings.Join(b.TopFiles, "|"),   // Top Files
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}
