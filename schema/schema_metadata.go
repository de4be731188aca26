package schema

import "time"

// RepositoryMetadata is the descriptive summary of a loaded repository:
// identity, date range, totals, authors, file-type histogram and the
// directory statistics that survived index filtering.
type RepositoryMetadata struct {
	Name         string           `json:"name"`          // Display name, the base of the exported repository path
	GeneratedAt  time.Time        `json:"generated_at"`  // When the input documents were exported
	FirstCommit  time.Time        `json:"first_commit"`  // Earliest event timestamp across all files
	LastCommit   time.Time        `json:"last_commit"`   // Latest event timestamp across all files
	TotalCommits int              `json:"total_commits"` // From the lifecycle header
	TotalFiles   int              `json:"total_files"`   // From the file index
	TotalAuthors int              `json:"total_authors"` // From the author network
	Authors      []AuthorSummary  `json:"authors"`       // Source order preserved
	Extensions   []ExtensionCount `json:"extensions"`    // Descending by count, ties in encounter order
	Directories  []DirectoryStat  `json:"directories"`   // Filtered to directories present in the tree
}

// AuthorSummary is one author entry in the metadata.
type AuthorSummary struct {
	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
	Commits int    `json:"commits"`
}

// ExtensionCount is one bucket of the file-type histogram.
type ExtensionCount struct {
	Extension string `json:"extension"` // Lowercased suffix after the last dot, or "no-extension"
	Files     int    `json:"files"`
}

// DirectoryStat is one directory statistics entry that matched the tree index.
type DirectoryStat struct {
	Path          string  `json:"path"` // Normalized, no trailing slash
	DirID         int     `json:"dir_id"`
	Commits       int     `json:"commits"`
	ActivityScore float64 `json:"activity_score"`
}
