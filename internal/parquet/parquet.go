// Package parquet provides data structures and functions for exporting gitviz
// run history and activity data to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/akbargherbal/git-viz-sub001/schema"
	"github.com/parquet-go/parquet-go"
)

// LoadRun represents a single snapshot load run with metadata.
// This struct maps to the gitviz_load_runs database table.
type LoadRun struct {
	// RunID is the unique identifier for this load run
	RunID int64 `parquet:"run_id,snappy"`

	// StartTime is when the load began (stored as TIMESTAMP with nanosecond precision)
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime is when the load completed (nullable, stored as TIMESTAMP with nanosecond precision)
	EndTime *time.Time `parquet:"end_time,optional,snappy"`

	// RunDurationMs is the duration of the load run in milliseconds (nullable)
	RunDurationMs *int32 `parquet:"run_duration_ms,optional,snappy"`

	// Source is the directory or URL the event-history documents were fetched from
	Source string `parquet:"source,snappy"`

	// TotalFiles is the number of files indexed by this run
	TotalFiles int32 `parquet:"total_files,snappy"`

	// TotalEvents is the number of change events processed by this run
	TotalEvents int32 `parquet:"total_events,snappy"`

	// TotalBuckets is the number of activity buckets derived by this run
	TotalBuckets int32 `parquet:"total_buckets,snappy"`

	// ConfigParams contains the JSON-encoded configuration parameters (nullable)
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// RunDocument represents one fetched source document within a load run.
// This struct maps to the gitviz_run_documents database table.
type RunDocument struct {
	// RunID references the parent load run
	RunID int64 `parquet:"run_id,snappy"`

	// Resource is the document resource name (lifecycle, author_network, ...)
	Resource string `parquet:"resource,snappy"`

	// ByteSize is the raw size of the fetched document in bytes
	ByteSize int64 `parquet:"byte_size,snappy"`

	// FetchMs is how long the fetch took in milliseconds
	FetchMs int32 `parquet:"fetch_ms,snappy"`

	// FetchTime is when the document was fetched (stored as TIMESTAMP with nanosecond precision)
	FetchTime time.Time `parquet:"fetch_time,snappy"`
}

// ActivityRow is a flattened activity bucket for columnar export.
// Nested slices are joined with "|" to keep the schema flat, matching the CSV layout.
type ActivityRow struct {
	// Rank is the 1-based position of the bucket in the ranked output
	Rank int32 `parquet:"rank,snappy"`

	// Date is the UTC day of the bucket in YYYY-MM-DD form
	Date string `parquet:"date,snappy"`

	// Directory is the directory path the bucket aggregates ("." for the root)
	Directory string `parquet:"directory,snappy"`

	// DirID is the tree node identifier of the directory
	DirID int32 `parquet:"dir_id,snappy"`

	// Added is the number of file additions in the bucket
	Added int32 `parquet:"added,snappy"`

	// Modified is the number of file modifications in the bucket
	Modified int32 `parquet:"modified,snappy"`

	// Deleted is the number of file deletions in the bucket
	Deleted int32 `parquet:"deleted,snappy"`

	// Total is the total number of change events in the bucket
	Total int32 `parquet:"total,snappy"`

	// Commits is the number of distinct commits touching the bucket
	Commits int32 `parquet:"commits,snappy"`

	// Authors is the number of distinct authors touching the bucket
	Authors int32 `parquet:"authors,snappy"`

	// TopAuthors lists the most active authors, joined with "|"
	TopAuthors string `parquet:"top_authors,snappy"`

	// TopFiles lists the most touched files, joined with "|"
	TopFiles string `parquet:"top_files,snappy"`
}

// WriteLoadRunsParquet writes a slice of LoadRun structs to a Parquet file.
func WriteLoadRunsParquet(data []LoadRun, outputPath string) error {
	// Create the output file
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Create a Parquet writer using struct schema inference
	// The schema is automatically derived from the LoadRun struct tags
	writer := parquet.NewGenericWriter[LoadRun](file)
	defer func() { _ = writer.Close() }()

	// Write all records to the file
	// The Write method accepts a variadic slice
	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// WriteRunDocumentsParquet writes a slice of RunDocument structs to a Parquet file.
func WriteRunDocumentsParquet(data []RunDocument, outputPath string) error {
	// Create the output file
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Create a Parquet writer using struct schema inference
	// The schema is automatically derived from the RunDocument struct tags
	writer := parquet.NewGenericWriter[RunDocument](file)
	defer func() { _ = writer.Close() }()

	// Write all records to the file
	// The Write method accepts a variadic slice
	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// WriteActivityParquet writes a slice of ActivityRow structs to a Parquet file.
func WriteActivityParquet(data []ActivityRow, outputPath string) error {
	// Create the output file
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Create a Parquet writer using struct schema inference
	// The schema is automatically derived from the ActivityRow struct tags
	writer := parquet.NewGenericWriter[ActivityRow](file)
	defer func() { _ = writer.Close() }()

	// Write all records to the file
	// The Write method accepts a variadic slice
	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// MockFetchLoadRuns generates sample LoadRun data for demonstration.
func MockFetchLoadRuns() []LoadRun {
	now := time.Now()
	startTime1 := now.Add(-2 * time.Hour)
	endTime1 := startTime1.Add(1400 * time.Millisecond)
	durationMs1 := int32(endTime1.Sub(startTime1).Milliseconds())
	configParams1 := `{"limit":25,"date":"","dir":""}`

	startTime2 := now.Add(-24 * time.Hour)
	endTime2 := startTime2.Add(3100 * time.Millisecond)
	durationMs2 := int32(endTime2.Sub(startTime2).Milliseconds())
	configParams2 := `{"limit":50,"date":"2024-03-01","dir":"src"}`

	startTime3 := now.Add(-10 * time.Minute)
	// Note: endTime3, durationMs3, configParams3 are nil to demonstrate nullable fields

	return []LoadRun{
		{
			RunID:         1,
			StartTime:     startTime1,
			EndTime:       &endTime1,
			RunDurationMs: &durationMs1,
			Source:        "/work/vizdemo",
			TotalFiles:    150,
			TotalEvents:   2300,
			TotalBuckets:  412,
			ConfigParams:  &configParams1,
		},
		{
			RunID:         2,
			StartTime:     startTime2,
			EndTime:       &endTime2,
			RunDurationMs: &durationMs2,
			Source:        "https://viz.example.com/exports/vizdemo",
			TotalFiles:    150,
			TotalEvents:   2300,
			TotalBuckets:  412,
			ConfigParams:  &configParams2,
		},
		{
			RunID:         3,
			StartTime:     startTime3,
			EndTime:       nil, // Still loading - nullable field
			RunDurationMs: nil, // Not yet calculated - nullable field
			Source:        "/work/vizdemo",
			TotalFiles:    0,
			TotalEvents:   0,
			TotalBuckets:  0,
			ConfigParams:  nil, // No config stored - nullable field
		},
	}
}

// MockFetchRunDocuments generates sample RunDocument data for demonstration.
func MockFetchRunDocuments() []RunDocument {
	now := time.Now()

	return []RunDocument{
		{
			RunID:     1,
			Resource:  "lifecycle",
			ByteSize:  524288,
			FetchMs:   120,
			FetchTime: now.Add(-2 * time.Hour),
		},
		{
			RunID:     1,
			Resource:  "author_network",
			ByteSize:  16384,
			FetchMs:   45,
			FetchTime: now.Add(-2 * time.Hour),
		},
		{
			RunID:     2,
			Resource:  "file_index",
			ByteSize:  98304,
			FetchMs:   310,
			FetchTime: now.Add(-24 * time.Hour),
		},
	}
}

// ConvertLoadRunRecords converts schema.LoadRunRecord to LoadRun for Parquet export.
func ConvertLoadRunRecords(records []schema.LoadRunRecord) []LoadRun {
	result := make([]LoadRun, len(records))
	for i, record := range records {
		result[i] = LoadRun{
			RunID:         record.RunID,
			StartTime:     record.StartTime,
			EndTime:       record.EndTime,
			RunDurationMs: record.RunDurationMs,
			Source:        record.Source,
			TotalFiles:    record.TotalFiles,
			TotalEvents:   record.TotalEvents,
			TotalBuckets:  record.TotalBuckets,
			ConfigParams:  record.ConfigParams,
		}
	}
	return result
}

// ConvertRunDocumentRecords converts schema.RunDocumentRecord to RunDocument for Parquet export.
func ConvertRunDocumentRecords(records []schema.RunDocumentRecord) []RunDocument {
	result := make([]RunDocument, len(records))
	for i, record := range records {
		result[i] = RunDocument{
			RunID:     record.RunID,
			Resource:  record.Resource,
			ByteSize:  record.ByteSize,
			FetchMs:   record.FetchMs,
			FetchTime: record.FetchTime,
		}
	}
	return result
}

// ConvertActivityBuckets converts ranked schema.ActivityBucket values to ActivityRow
// for Parquet export. dirPaths maps directory identifiers to their tree paths.
func ConvertActivityBuckets(buckets []schema.ActivityBucket, dirPaths map[int]string) []ActivityRow {
	result := make([]ActivityRow, len(buckets))
	for i, b := range buckets {
		result[i] = ActivityRow{
			Rank:       int32(i + 1),
			Date:       b.Date,
			Directory:  dirPaths[b.DirID],
			DirID:      int32(b.DirID),
			Added:      int32(b.Added),
			Modified:   int32(b.Modified),
			Deleted:    int32(b.Deleted),
			Total:      int32(b.Total()),
			Commits:    int32(b.Commits),
			Authors:    int32(b.Authors),
			TopAuthors: strings.Join(b.TopAuthors, "|"),
			TopFiles:   strings.Join(b.TopFiles, "|"),
		}
	}
	return result
}
