package schema

import "time"

// LoadRunRecord represents a row from the gitviz_load_runs table.
type LoadRunRecord struct {
	RunID         int64
	StartTime     time.Time
	EndTime       *time.Time
	RunDurationMs *int32
	Source        string
	TotalFiles    int32
	TotalEvents   int32
	TotalBuckets  int32
	ConfigParams  *string
}

// RunDocumentRecord represents a row from the gitviz_run_documents table.
type RunDocumentRecord struct {
	RunID     int64
	Resource  string
	ByteSize  int64
	FetchMs   int32
	FetchTime time.Time
}
