package iocache

import (
	"errors"
	"fmt"

	"github.com/akbargherbal/git-viz-sub001/internal/parquet"
)

// ExecuteRunsExport performs the actual export of run tracking data to Parquet files.
func ExecuteRunsExport(outputFile string) error {
	// Validate that output file is specified
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	// Get the run store
	store := Manager.GetRunStore()
	if store == nil {
		return errors.New("run tracking is not configured")
	}

	// Check if there's any data to export
	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get run store status: %w", err)
	}

	if status.TotalRuns == 0 {
		return errors.New("no run data found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Total load runs: %d\n", status.TotalRuns)
	fmt.Printf("Total document records: %d\n", status.TotalDocuments)

	// Retrieve all load runs
	loadRuns, err := store.GetAllLoadRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve load runs: %w", err)
	}

	// Retrieve all per-document fetch records
	runDocuments, err := store.GetAllRunDocuments()
	if err != nil {
		return fmt.Errorf("failed to retrieve run documents: %w", err)
	}

	// Convert to Parquet format
	parquetLoadRuns := parquet.ConvertLoadRunRecords(loadRuns)
	parquetRunDocuments := parquet.ConvertRunDocumentRecords(runDocuments)

	// Write load runs to Parquet
	loadRunsFile := outputFile + ".load_runs.parquet"
	if err := parquet.WriteLoadRunsParquet(parquetLoadRuns, loadRunsFile); err != nil {
		return fmt.Errorf("failed to write load runs: %w", err)
	}
	fmt.Printf("Exported %d load runs to: %s\n", len(parquetLoadRuns), loadRunsFile)

	// Write per-document records to Parquet
	runDocumentsFile := outputFile + ".run_documents.parquet"
	if err := parquet.WriteRunDocumentsParquet(parquetRunDocuments, runDocumentsFile); err != nil {
		return fmt.Errorf("failed to write run documents: %w", err)
	}
	fmt.Printf("Exported %d document records to: %s\n", len(parquetRunDocuments), runDocumentsFile)

	fmt.Println("\nExport complete! The Parquet files can be used with:")
	fmt.Println("  - Apache Spark")
	fmt.Println("  - Apache Arrow")
	fmt.Println("  - Pandas (via pyarrow)")
	fmt.Println("  - DuckDB")
	fmt.Println("  - Any other Parquet-compatible tool")

	return nil
}
