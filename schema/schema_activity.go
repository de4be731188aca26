package schema

// ActivityBucket aggregates every change that touched one directory on one
// UTC calendar day. Buckets appear in first-seen order of their (date, dir)
// key during the single pass over the lifecycle mapping.
type ActivityBucket struct {
	Date       string   `json:"date"`   // UTC day, formatted 2006-01-02
	DirID      int      `json:"dir_id"` // Identifier of the file's parent directory
	Added      int      `json:"added"`
	Modified   int      `json:"modified"` // Renames are folded in here
	Deleted    int      `json:"deleted"`
	Commits    int      `json:"commits"`     // Distinct commits in the bucket
	Authors    int      `json:"authors"`     // Distinct authors in the bucket
	TopAuthors []string `json:"top_authors"` // At most three, by event count then first appearance
	TopFiles   []string `json:"top_files"`   // At most three file names, same ordering rule
}

// Total returns the event count of the bucket across all operations.
func (b ActivityBucket) Total() int {
	return b.Added + b.Modified + b.Deleted
}

// ActivityResult holds the sparse day-by-directory activity matrix.
type ActivityResult struct {
	Buckets []ActivityBucket `json:"buckets"`
}
