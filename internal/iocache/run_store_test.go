package iocache

import (
	"testing"
	"time"

	"github.com/akbargherbal/git-viz-sub001/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRunStoreNoneBackend verifies all operations are no-ops without a database.
func TestRunStoreNoneBackend(t *testing.T) {
	store, err := NewRunStore(schema.NoneBackend, "")
	require.NoError(t, err, "Failed to create none backend run store")

	runID, err := store.BeginRun(time.Now(), "/tmp/repo-viz", map[string]any{"limit": 10})
	assert.NoError(t, err, "BeginRun should not error on none backend")
	assert.Zero(t, runID, "BeginRun should return zero ID on none backend")

	err = store.RecordDocument(runID, schema.ResourceLifecycle, 1024, 50*time.Millisecond)
	assert.NoError(t, err, "RecordDocument should not error on none backend")

	err = store.EndRun(runID, time.Now(), 10, 100, 20)
	assert.NoError(t, err, "EndRun should not error on none backend")

	runs, err := store.GetAllLoadRuns()
	assert.NoError(t, err, "GetAllLoadRuns should not error on none backend")
	assert.Nil(t, runs, "GetAllLoadRuns should return nil on none backend")

	docs, err := store.GetAllRunDocuments()
	assert.NoError(t, err, "GetAllRunDocuments should not error on none backend")
	assert.Nil(t, docs, "GetAllRunDocuments should return nil on none backend")

	assert.NoError(t, store.Close(), "Close should not error on none backend")
}

// TestRunStoreSQLiteLifecycle exercises a full run from begin to export.
func TestRunStoreSQLiteLifecycle(t *testing.T) {
	store, err := NewRunStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err, "Failed to create SQLite run store")
	defer func() { _ = store.Close() }()

	startTime := time.Now().Add(-2 * time.Second)
	configParams := map[string]any{
		"source_kind": "file",
		"limit":       10,
	}

	// Begin a run
	runID, err := store.BeginRun(startTime, "/data/viz-docs", configParams)
	require.NoError(t, err, "BeginRun should not fail")
	assert.GreaterOrEqual(t, runID, int64(1), "Run ID should start at 1")

	// Record a fetch for each input document
	for i, resource := range schema.AllResources {
		err := store.RecordDocument(runID, resource, int64(1000*(i+1)), time.Duration(i+1)*25*time.Millisecond)
		require.NoError(t, err, "RecordDocument should not fail for %s", resource)
	}

	// Finish the run
	endTime := startTime.Add(1500 * time.Millisecond)
	err = store.EndRun(runID, endTime, 42, 980, 117)
	require.NoError(t, err, "EndRun should not fail")

	// Verify the load run record
	runs, err := store.GetAllLoadRuns()
	require.NoError(t, err, "GetAllLoadRuns should not fail")
	require.Len(t, runs, 1, "Expected exactly one run")

	run := runs[0]
	assert.Equal(t, runID, run.RunID, "Run ID mismatch")
	assert.Equal(t, "/data/viz-docs", run.Source, "Source mismatch")
	assert.WithinDuration(t, startTime, run.StartTime, time.Millisecond, "StartTime mismatch")
	require.NotNil(t, run.EndTime, "EndTime should be set after EndRun")
	assert.WithinDuration(t, endTime, *run.EndTime, time.Millisecond, "EndTime mismatch")
	require.NotNil(t, run.RunDurationMs, "RunDurationMs should be set after EndRun")
	assert.Equal(t, int32(1500), *run.RunDurationMs, "RunDurationMs mismatch")
	assert.Equal(t, int32(42), run.TotalFiles, "TotalFiles mismatch")
	assert.Equal(t, int32(980), run.TotalEvents, "TotalEvents mismatch")
	assert.Equal(t, int32(117), run.TotalBuckets, "TotalBuckets mismatch")
	require.NotNil(t, run.ConfigParams, "ConfigParams should be set")
	assert.Contains(t, *run.ConfigParams, `"source_kind":"file"`, "ConfigParams should carry source kind")
	assert.Contains(t, *run.ConfigParams, `"limit":10`, "ConfigParams should carry limit")

	// Verify the per-document records, ordered by resource name
	docs, err := store.GetAllRunDocuments()
	require.NoError(t, err, "GetAllRunDocuments should not fail")
	require.Len(t, docs, len(schema.AllResources), "Expected one record per resource")

	wantResources := []string{
		schema.ResourceAuthorNetwork,
		schema.ResourceDirStats,
		schema.ResourceFileIndex,
		schema.ResourceLifecycle,
	}
	for i, doc := range docs {
		assert.Equal(t, runID, doc.RunID, "Document %d run ID mismatch", i)
		assert.Equal(t, wantResources[i], doc.Resource, "Document %d resource order mismatch", i)
		assert.Positive(t, doc.ByteSize, "Document %d byte size should be recorded", i)
		assert.GreaterOrEqual(t, doc.FetchMs, int32(25), "Document %d fetch duration should be recorded", i)
		assert.False(t, doc.FetchTime.IsZero(), "Document %d fetch time should be set", i)
	}
}

// TestRunStoreMultipleRuns verifies run IDs increment and records stay separate.
func TestRunStoreMultipleRuns(t *testing.T) {
	store, err := NewRunStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err, "Failed to create SQLite run store")
	defer func() { _ = store.Close() }()

	var runIDs []int64
	for i := range 3 {
		runID, err := store.BeginRun(time.Now(), "/data/viz-docs", map[string]any{"run": i})
		require.NoError(t, err, "BeginRun %d should not fail", i)
		runIDs = append(runIDs, runID)
	}

	// IDs must be unique and increasing
	assert.Less(t, runIDs[0], runIDs[1], "Run IDs should increment")
	assert.Less(t, runIDs[1], runIDs[2], "Run IDs should increment")

	// Only finish the second run
	err = store.EndRun(runIDs[1], time.Now(), 5, 50, 9)
	require.NoError(t, err, "EndRun should not fail")

	runs, err := store.GetAllLoadRuns()
	require.NoError(t, err, "GetAllLoadRuns should not fail")
	require.Len(t, runs, 3, "Expected three runs")

	// Runs come back in ID order
	for i, run := range runs {
		assert.Equal(t, runIDs[i], run.RunID, "Run %d order mismatch", i)
	}

	// Unfinished runs keep nil completion fields
	assert.Nil(t, runs[0].EndTime, "First run should not have an end time")
	assert.Nil(t, runs[0].RunDurationMs, "First run should not have a duration")
	assert.NotNil(t, runs[1].EndTime, "Second run should have an end time")
	assert.NotNil(t, runs[1].RunDurationMs, "Second run should have a duration")
	assert.Nil(t, runs[2].EndTime, "Third run should not have an end time")
}

// TestRunStoreEndRunUnknownID verifies EndRun fails for a run that never began.
func TestRunStoreEndRunUnknownID(t *testing.T) {
	store, err := NewRunStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err, "Failed to create SQLite run store")
	defer func() { _ = store.Close() }()

	err = store.EndRun(99999, time.Now(), 1, 1, 1)
	assert.Error(t, err, "EndRun should fail for unknown run ID")
	assert.Contains(t, err.Error(), "99999", "Error should name the run ID")
}

// TestRunStoreGetStatus tests status reporting for the run store.
func TestRunStoreGetStatus(t *testing.T) {
	t.Run("empty store", func(t *testing.T) {
		store, err := NewRunStore(schema.SQLiteBackend, ":memory:")
		require.NoError(t, err)
		defer func() { _ = store.Close() }()

		status, err := store.GetStatus()
		require.NoError(t, err)
		assert.Equal(t, string(schema.SQLiteBackend), status.Backend)
		assert.True(t, status.Connected)
		assert.Zero(t, status.TotalRuns)
		assert.Zero(t, status.TotalDocuments)
		assert.Equal(t, int64(0), status.TableSizes[loadRunsTable])
		assert.Equal(t, int64(0), status.TableSizes[runDocumentsTable])
	})

	t.Run("with runs", func(t *testing.T) {
		store, err := NewRunStore(schema.SQLiteBackend, ":memory:")
		require.NoError(t, err)
		defer func() { _ = store.Close() }()

		firstStart := time.Now().Add(-time.Hour)
		firstID, err := store.BeginRun(firstStart, "/data/old", nil)
		require.NoError(t, err)
		require.NoError(t, store.RecordDocument(firstID, schema.ResourceLifecycle, 100, time.Millisecond))

		lastStart := time.Now()
		lastID, err := store.BeginRun(lastStart, "/data/new", nil)
		require.NoError(t, err)
		require.NoError(t, store.RecordDocument(lastID, schema.ResourceLifecycle, 100, time.Millisecond))
		require.NoError(t, store.RecordDocument(lastID, schema.ResourceFileIndex, 200, time.Millisecond))

		status, err := store.GetStatus()
		require.NoError(t, err)
		assert.Equal(t, 2, status.TotalRuns)
		assert.Equal(t, lastID, status.LastRunID)
		assert.WithinDuration(t, lastStart, status.LastRunTime, time.Millisecond)
		assert.WithinDuration(t, firstStart, status.OldestRunTime, time.Millisecond)
		assert.Equal(t, 3, status.TotalDocuments)
		assert.Equal(t, int64(2), status.TableSizes[loadRunsTable])
		assert.Equal(t, int64(3), status.TableSizes[runDocumentsTable])
	})

	t.Run("none backend", func(t *testing.T) {
		store, err := NewRunStore(schema.NoneBackend, "")
		require.NoError(t, err)

		status, err := store.GetStatus()
		require.NoError(t, err)
		assert.Equal(t, string(schema.NoneBackend), status.Backend)
		assert.False(t, status.Connected)
	})
}

// TestRunStoreNilDB verifies a store without a connection degrades to no-ops.
func TestRunStoreNilDB(t *testing.T) {
	store := &RunStoreImpl{backend: schema.SQLiteBackend, db: nil}

	runID, err := store.BeginRun(time.Now(), "src", nil)
	assert.NoError(t, err)
	assert.Zero(t, runID)

	assert.NoError(t, store.RecordDocument(0, schema.ResourceLifecycle, 1, time.Millisecond))
	assert.NoError(t, store.EndRun(0, time.Now(), 0, 0, 0))
	assert.NoError(t, store.Close())
}
