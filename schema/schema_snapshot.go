package schema

// Snapshot is the complete derived state for one repository load. Once the
// loader returns it, nothing mutates it; consumers treat it as read-only.
type Snapshot struct {
	Metadata *RepositoryMetadata `json:"metadata"`
	Tree     *TreeResult         `json:"tree"`
	Activity *ActivityResult     `json:"activity"`
}

// ProgressEvent is one tick of load progress. Loaded counts fetched documents
// out of Total while the metadata phase is active; later phases report the
// final count and exist to signal stage completion.
type ProgressEvent struct {
	Loaded int       `json:"loaded"`
	Total  int       `json:"total"`
	Phase  LoadPhase `json:"phase"`
}

// ProgressFunc receives progress events during a load. Implementations must
// return quickly: the loader calls them inline between pipeline stages.
type ProgressFunc func(ProgressEvent)
