// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"time"

	"github.com/akbargherbal/git-viz-sub001/schema"
)

// DocumentSource fetches the raw input documents of one repository export.
// Implementations cover local directories and HTTP endpoints; the loader
// decodes the bytes, so a source stays a pure transport concern and can be
// mocked without test fixtures on disk.
type DocumentSource interface {
	// Origin identifies the source (directory or URL base) for error
	// messages and cache keys.
	Origin() string

	// Fetch returns the raw bytes of one named resource, e.g. lifecycle.json.
	Fetch(ctx context.Context, resource string) ([]byte, error)

	// Stamp returns a content stamp for cache staleness checks: an HTTP
	// validator, a directory mtime digest, or "" when unknown.
	Stamp(ctx context.Context) (string, error)
}

// GitClient defines the Git operations the document exporter needs.
// This allows the export logic to be tested without a real git executable.
type GitClient interface {
	// Run executes a git command and returns the combined output.
	// Its use should be minimized in favor of the explicit methods below.
	Run(ctx context.Context, repoPath string, args ...string) ([]byte, error)

	// GetRepoRoot returns the absolute path to the root of the Git repository
	// containing the given context path.
	GetRepoRoot(ctx context.Context, contextPath string) (string, error)

	// GetRepoHash returns the current HEAD commit hash of the repository.
	GetRepoHash(ctx context.Context, repoPath string) (string, error)

	// GetHistoryLog returns the raw name-status commit log for the whole
	// history, oldest commit first.
	GetHistoryLog(ctx context.Context, repoPath string) ([]byte, error)

	// ListFilesAtRef returns a list of all trackable files in the repository at a specific reference.
	ListFilesAtRef(ctx context.Context, repoPath string, ref string) ([]string, error)
}

// StoreManager defines the interface for managing persistence stores.
// This allows the storage layer to be mocked for testing.
type StoreManager interface {
	GetDocumentStore() CacheStore
	GetRunStore() RunStore
}

// CacheStore defines the interface for document byte caching.
// This allows mocking the store for testing.
type CacheStore interface {
	Get(key string) ([]byte, int, int64, error)
	Set(key string, value []byte, version int, timestamp int64) error
	GetStatus() (schema.CacheStatus, error)
	Close() error
}

// RunStore defines the interface for tracking snapshot loads.
type RunStore interface {
	// BeginRun creates a new load run and returns its unique ID
	BeginRun(startTime time.Time, source string, configParams map[string]any) (int64, error)

	// EndRun updates the run with completion data
	EndRun(runID int64, endTime time.Time, totalFiles, totalEvents, totalBuckets int) error

	// RecordDocument stores fetch facts for one input document
	RecordDocument(runID int64, resource string, byteSize int64, fetchDuration time.Duration) error

	// GetAllLoadRuns retrieves every load run, oldest first
	GetAllLoadRuns() ([]schema.LoadRunRecord, error)

	// GetAllRunDocuments retrieves every per-document fetch record
	GetAllRunDocuments() ([]schema.RunDocumentRecord, error)

	// GetStatus returns status information about the run store
	GetStatus() (schema.RunStoreStatus, error)

	// Close closes the underlying connection
	Close() error
}
