// Package schema has configs, models and shared helpers for all parts of gitviz.
package schema

// ChangeEvent represents a single change to one file in the repository history.
// Events are the atoms of the pipeline: every derived structure is an aggregation
// of these records grouped by file, directory, author or calendar day.
type ChangeEvent struct {
	Commit      string   `json:"commit"`                 // Abbreviated commit hash
	Timestamp   int64    `json:"timestamp"`              // Commit time in seconds since epoch
	Op          ChangeOp `json:"op"`                     // Operation applied to the file
	Author      string   `json:"author"`                 // Author display name
	AuthorEmail string   `json:"author_email,omitempty"` // Author e-mail, when the history carries one
	Subject     string   `json:"subject,omitempty"`      // First line of the commit message
}
