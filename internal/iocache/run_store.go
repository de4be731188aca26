package iocache

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/akbargherbal/git-viz-sub001/internal/contract"
	"github.com/akbargherbal/git-viz-sub001/schema"
)

// Table names for load run tracking.
const (
	loadRunsTable     = "gitviz_load_runs"
	runDocumentsTable = "gitviz_run_documents"
)

// RunStoreImpl implements the RunStore interface.
type RunStoreImpl struct {
	db      *sql.DB
	backend schema.DatabaseBackend
}

var _ contract.RunStore = &RunStoreImpl{} // Compile-time check

// NewRunStore creates a new RunStore with the specified backend.
func NewRunStore(backend schema.DatabaseBackend, connStr string) (contract.RunStore, error) {
	if backend == schema.NoneBackend {
		// Return a no-op store for disabled tracking
		return &RunStoreImpl{db: nil, backend: backend}, nil
	}

	db, err := openBackendDB(backend, connStr, GetRunsDBFilePath())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize run store: %w", err)
	}

	// Create the table schemas
	if err := createRunTables(db, backend); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create run tables: %w", err)
	}

	return &RunStoreImpl{db: db, backend: backend}, nil
}

// createRunTables creates the load run tracking tables.
func createRunTables(db *sql.DB, backend schema.DatabaseBackend) error {
	tables := []struct {
		name  string
		query string
	}{
		{loadRunsTable, getCreateLoadRunsQuery(backend)},
		{runDocumentsTable, getCreateRunDocumentsQuery(backend)},
	}

	for _, table := range tables {
		if _, err := db.Exec(table.query); err != nil {
			return fmt.Errorf("failed to create table %s: %w", table.name, err)
		}
	}

	return nil
}

// getCreateLoadRunsQuery returns the CREATE TABLE query for gitviz_load_runs.
func getCreateLoadRunsQuery(backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(loadRunsTable, backend)

	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGINT AUTO_INCREMENT PRIMARY KEY,
				start_time DATETIME(6) NOT NULL,
				end_time DATETIME(6),
				run_duration_ms INT,
				source VARCHAR(512) NOT NULL,
				total_files INT NOT NULL DEFAULT 0,
				total_events INT NOT NULL DEFAULT 0,
				total_buckets INT NOT NULL DEFAULT 0,
				config_params TEXT
			);
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGSERIAL PRIMARY KEY,
				start_time TIMESTAMPTZ NOT NULL,
				end_time TIMESTAMPTZ,
				run_duration_ms INT,
				source TEXT NOT NULL,
				total_files INT NOT NULL DEFAULT 0,
				total_events INT NOT NULL DEFAULT 0,
				total_buckets INT NOT NULL DEFAULT 0,
				config_params TEXT
			);
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id INTEGER PRIMARY KEY AUTOINCREMENT,
				start_time TEXT NOT NULL,
				end_time TEXT,
				run_duration_ms INTEGER,
				source TEXT NOT NULL,
				total_files INTEGER NOT NULL DEFAULT 0,
				total_events INTEGER NOT NULL DEFAULT 0,
				total_buckets INTEGER NOT NULL DEFAULT 0,
				config_params TEXT
			);
		`, quotedTableName)
	}
}

// getCreateRunDocumentsQuery returns the CREATE TABLE query for gitviz_run_documents.
func getCreateRunDocumentsQuery(backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(runDocumentsTable, backend)

	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGINT NOT NULL,
				resource VARCHAR(255) NOT NULL,
				byte_size BIGINT NOT NULL,
				fetch_ms INT NOT NULL,
				fetch_time DATETIME(6) NOT NULL,
				PRIMARY KEY (run_id, resource)
			);
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGINT NOT NULL,
				resource TEXT NOT NULL,
				byte_size BIGINT NOT NULL,
				fetch_ms INT NOT NULL,
				fetch_time TIMESTAMPTZ NOT NULL,
				PRIMARY KEY (run_id, resource)
			);
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id INTEGER NOT NULL,
				resource TEXT NOT NULL,
				byte_size INTEGER NOT NULL,
				fetch_ms INTEGER NOT NULL,
				fetch_time TEXT NOT NULL,
				PRIMARY KEY (run_id, resource)
			);
		`, quotedTableName)
	}
}

// BeginRun creates a new load run and returns its unique ID.
func (rs *RunStoreImpl) BeginRun(startTime time.Time, source string, configParams map[string]any) (int64, error) {
	// Skip for NoneBackend
	if rs.backend == schema.NoneBackend || rs.db == nil {
		return 0, nil
	}

	// Serialize config params to JSON
	configJSON, err := json.Marshal(configParams)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal config params: %w", err)
	}

	quotedTableName := quoteTableName(loadRunsTable, rs.backend)

	var runID int64
	switch rs.backend {
	case schema.PostgreSQLBackend:
		query := fmt.Sprintf(`INSERT INTO %s (start_time, source, config_params) VALUES ($1, $2, $3) RETURNING run_id`, quotedTableName)
		err = rs.db.QueryRow(query, startTime, source, string(configJSON)).Scan(&runID)
	default: // SQLite and MySQL
		query := fmt.Sprintf(`INSERT INTO %s (start_time, source, config_params) VALUES (?, ?, ?)`, quotedTableName)
		var result sql.Result
		result, err = rs.db.Exec(query, formatTime(startTime, rs.backend), source, string(configJSON))
		if err != nil {
			return 0, err
		}
		runID, err = result.LastInsertId()
	}

	if err != nil {
		return 0, fmt.Errorf("failed to insert load run: %w", err)
	}

	return runID, nil
}

// EndRun updates the load run with completion data.
func (rs *RunStoreImpl) EndRun(runID int64, endTime time.Time, totalFiles, totalEvents, totalBuckets int) error {
	// Skip for NoneBackend
	if rs.backend == schema.NoneBackend || rs.db == nil {
		return nil
	}

	// First, get the start_time to calculate duration
	quotedTableName := quoteTableName(loadRunsTable, rs.backend)

	var query string
	switch rs.backend {
	case schema.PostgreSQLBackend:
		query = fmt.Sprintf(`SELECT start_time FROM %s WHERE run_id = $1`, quotedTableName)
	default: // SQLite and MySQL
		query = fmt.Sprintf(`SELECT start_time FROM %s WHERE run_id = ?`, quotedTableName)
	}

	st := scanTime{backend: rs.backend}
	if err := rs.db.QueryRow(query, runID).Scan(st.dest()); err != nil {
		return fmt.Errorf("failed to get start_time for run %d: %w", runID, err)
	}
	startTime, err := st.value()
	if err != nil {
		return fmt.Errorf("failed to parse start_time: %w", err)
	}
	if startTime == nil {
		return fmt.Errorf("run %d has no start_time", runID)
	}

	// Calculate duration in milliseconds
	durationMs := endTime.Sub(*startTime).Milliseconds()

	// Update the load run with completion data
	var updateQuery string
	var args []any

	switch rs.backend {
	case schema.PostgreSQLBackend:
		updateQuery = fmt.Sprintf(`UPDATE %s SET end_time = $1, run_duration_ms = $2, total_files = $3, total_events = $4, total_buckets = $5 WHERE run_id = $6`, quotedTableName)
		args = []any{endTime, durationMs, totalFiles, totalEvents, totalBuckets, runID}
	default: // SQLite and MySQL
		updateQuery = fmt.Sprintf(`UPDATE %s SET end_time = ?, run_duration_ms = ?, total_files = ?, total_events = ?, total_buckets = ? WHERE run_id = ?`, quotedTableName)
		args = []any{formatTime(endTime, rs.backend), durationMs, totalFiles, totalEvents, totalBuckets, runID}
	}

	if _, err := rs.db.Exec(updateQuery, args...); err != nil {
		return fmt.Errorf("failed to update load run: %w", err)
	}

	return nil
}

// RecordDocument stores the fetch facts of one input document for a run.
func (rs *RunStoreImpl) RecordDocument(runID int64, resource string, byteSize int64, fetchDuration time.Duration) error {
	// Skip for NoneBackend
	if rs.backend == schema.NoneBackend || rs.db == nil {
		return nil
	}

	quotedTableName := quoteTableName(runDocumentsTable, rs.backend)

	var query string
	switch rs.backend {
	case schema.PostgreSQLBackend:
		query = fmt.Sprintf(`INSERT INTO %s (run_id, resource, byte_size, fetch_ms, fetch_time) VALUES ($1, $2, $3, $4, $5)`, quotedTableName)
	default: // SQLite and MySQL
		query = fmt.Sprintf(`INSERT INTO %s (run_id, resource, byte_size, fetch_ms, fetch_time) VALUES (?, ?, ?, ?, ?)`, quotedTableName)
	}

	fetchTime := formatTime(time.Now(), rs.backend)
	if _, err := rs.db.Exec(query, runID, resource, byteSize, fetchDuration.Milliseconds(), fetchTime); err != nil {
		return fmt.Errorf("failed to insert run document: %w", err)
	}

	return nil
}

// GetAllLoadRuns retrieves all load runs from the store, oldest first.
func (rs *RunStoreImpl) GetAllLoadRuns() ([]schema.LoadRunRecord, error) {
	// Skip for NoneBackend
	if rs.backend == schema.NoneBackend || rs.db == nil {
		return nil, nil
	}

	quotedTableName := quoteTableName(loadRunsTable, rs.backend)
	query := fmt.Sprintf("SELECT run_id, start_time, end_time, run_duration_ms, source, total_files, total_events, total_buckets, config_params FROM %s ORDER BY run_id", quotedTableName)

	rows, err := rs.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query load runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.LoadRunRecord

	for rows.Next() {
		var record schema.LoadRunRecord
		start := scanTime{backend: rs.backend}
		end := scanTime{backend: rs.backend}
		var durationMs sql.NullInt32
		var configParams sql.NullString

		if err := rows.Scan(&record.RunID, start.dest(), end.dest(), &durationMs, &record.Source,
			&record.TotalFiles, &record.TotalEvents, &record.TotalBuckets, &configParams); err != nil {
			return nil, fmt.Errorf("failed to scan load run: %w", err)
		}

		startTime, err := start.value()
		if err != nil {
			return nil, fmt.Errorf("failed to parse start_time: %w", err)
		}
		if startTime == nil {
			return nil, fmt.Errorf("run %d has no start_time", record.RunID)
		}
		record.StartTime = *startTime

		endTime, err := end.value()
		if err != nil {
			return nil, fmt.Errorf("failed to parse end_time: %w", err)
		}
		record.EndTime = endTime

		if durationMs.Valid {
			v := durationMs.Int32
			record.RunDurationMs = &v
		}
		if configParams.Valid {
			v := configParams.String
			record.ConfigParams = &v
		}

		results = append(results, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating load runs: %w", err)
	}

	return results, nil
}

// GetAllRunDocuments retrieves all per-document fetch records, oldest run first.
func (rs *RunStoreImpl) GetAllRunDocuments() ([]schema.RunDocumentRecord, error) {
	// Skip for NoneBackend
	if rs.backend == schema.NoneBackend || rs.db == nil {
		return nil, nil
	}

	quotedTableName := quoteTableName(runDocumentsTable, rs.backend)
	query := fmt.Sprintf("SELECT run_id, resource, byte_size, fetch_ms, fetch_time FROM %s ORDER BY run_id, resource", quotedTableName)

	rows, err := rs.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query run documents: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.RunDocumentRecord

	for rows.Next() {
		var record schema.RunDocumentRecord
		fetched := scanTime{backend: rs.backend}

		if err := rows.Scan(&record.RunID, &record.Resource, &record.ByteSize, &record.FetchMs, fetched.dest()); err != nil {
			return nil, fmt.Errorf("failed to scan run document: %w", err)
		}

		fetchTime, err := fetched.value()
		if err != nil {
			return nil, fmt.Errorf("failed to parse fetch_time: %w", err)
		}
		if fetchTime == nil {
			return nil, fmt.Errorf("document record for run %d has no fetch_time", record.RunID)
		}
		record.FetchTime = *fetchTime

		results = append(results, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating run documents: %w", err)
	}

	return results, nil
}

// Close closes the underlying connection.
func (rs *RunStoreImpl) Close() error {
	if rs.db != nil {
		return rs.db.Close()
	}
	return nil
}

// GetStatus returns status information about the run store.
func (rs *RunStoreImpl) GetStatus() (schema.RunStoreStatus, error) {
	status := schema.RunStoreStatus{
		Backend:    string(rs.backend),
		Connected:  rs.db != nil,
		TableSizes: make(map[string]int64),
	}

	if rs.backend == schema.NoneBackend || rs.db == nil {
		return status, nil
	}

	// Get total runs
	runsQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteTableName(loadRunsTable, rs.backend))
	if err := rs.db.QueryRow(runsQuery).Scan(&status.TotalRuns); err != nil {
		return status, fmt.Errorf("failed to get total runs: %w", err)
	}

	if status.TotalRuns > 0 {
		// Get last run info
		lastRunQuery := fmt.Sprintf("SELECT run_id, start_time FROM %s ORDER BY run_id DESC LIMIT 1", quoteTableName(loadRunsTable, rs.backend))
		last := scanTime{backend: rs.backend}
		if err := rs.db.QueryRow(lastRunQuery).Scan(&status.LastRunID, last.dest()); err != nil {
			return status, fmt.Errorf("failed to get last run info: %w", err)
		}
		lastTime, err := last.value()
		if err != nil {
			return status, fmt.Errorf("failed to parse last run time: %w", err)
		}
		if lastTime != nil {
			status.LastRunTime = *lastTime
		}

		// Get oldest run time
		oldestRunQuery := fmt.Sprintf("SELECT start_time FROM %s ORDER BY run_id ASC LIMIT 1", quoteTableName(loadRunsTable, rs.backend))
		oldest := scanTime{backend: rs.backend}
		if err := rs.db.QueryRow(oldestRunQuery).Scan(oldest.dest()); err != nil {
			return status, fmt.Errorf("failed to get oldest run time: %w", err)
		}
		oldestTime, err := oldest.value()
		if err != nil {
			return status, fmt.Errorf("failed to parse oldest run time: %w", err)
		}
		if oldestTime != nil {
			status.OldestRunTime = *oldestTime
		}

		// Get total documents recorded
		docsQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteTableName(runDocumentsTable, rs.backend))
		if err := rs.db.QueryRow(docsQuery).Scan(&status.TotalDocuments); err != nil {
			return status, fmt.Errorf("failed to get total documents: %w", err)
		}
	}

	// Get table sizes
	tables := []string{loadRunsTable, runDocumentsTable}
	for _, table := range tables {
		quotedTable := quoteTableName(table, rs.backend)
		countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s", quotedTable)
		var count int64
		if err := rs.db.QueryRow(countQuery).Scan(&count); err != nil {
			return status, fmt.Errorf("failed to get count for table %s: %w", table, err)
		}
		status.TableSizes[table] = count
	}

	return status, nil
}
