package schema

// Custom string types for type safety.
type (
	// ChangeOp represents the kind of change applied to a file.
	ChangeOp string

	// NodeKind represents the kind of a tree node.
	NodeKind string

	// LoadPhase represents a stage of the snapshot load pipeline.
	LoadPhase string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for persistence.
	DatabaseBackend string

	// SourceKind represents how documents are fetched.
	SourceKind string
)

// All change operations supported.
const (
	OpAdded    ChangeOp = "added"
	OpModified ChangeOp = "modified"
	OpDeleted  ChangeOp = "deleted"
	OpRenamed  ChangeOp = "renamed" // counted as modified in activity rollups
)

// All node kinds supported.
const (
	DirectoryNode NodeKind = "directory"
	FileNode      NodeKind = "file"
)

// All load phases, in emission order.
const (
	PhaseMetadata LoadPhase = "metadata" // document fetch and metadata assembly
	PhaseTree     LoadPhase = "tree"
	PhaseActivity LoadPhase = "activity"
	PhaseComplete LoadPhase = "complete"
)

// All output modes supported.
const (
	CSVOut     OutputMode = "csv"
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All database backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// All source kinds supported.
const (
	FileSource SourceKind = "file" // default
	HTTPSource SourceKind = "http"
)

// Resource names of the four input documents a source must provide.
const (
	ResourceLifecycle     = "lifecycle.json"
	ResourceAuthorNetwork = "author_network.json"
	ResourceFileIndex     = "file_index.json"
	ResourceDirStats      = "directory_stats.json"
)

// AllResources lists the input documents in fetch order.
var AllResources = []string{
	ResourceLifecycle,
	ResourceAuthorNetwork,
	ResourceFileIndex,
	ResourceDirStats,
}

// AllLoadPhases lists the load phases in emission order.
var AllLoadPhases = []LoadPhase{PhaseMetadata, PhaseTree, PhaseActivity, PhaseComplete}

// NoExtension is the histogram bucket for files without an extension.
const NoExtension = "no-extension"

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	TextOut:    {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidDatabaseBackends lists all valid database backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// ValidSourceKinds lists all valid source kinds.
var ValidSourceKinds = map[SourceKind]struct{}{
	FileSource: {},
	HTTPSource: {},
}
