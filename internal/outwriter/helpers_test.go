package outwriter

import (
	"time"

	"github.com/akbargherbal/git-viz-sub001/core/tree"
	"github.com/akbargherbal/git-viz-sub001/internal/contract"
	"github.com/akbargherbal/git-viz-sub001/schema"
)

// testSnapshot builds a small snapshot with a three-file hierarchy and two
// activity buckets. Node identifiers follow creation order: src is 1,
// src/main.go is 2, src/util is 3, helper.go is 4 and README.md is 5.
func testSnapshot() *schema.Snapshot {
	hierarchy := tree.Build(schema.FileEventList{
		{Path: "src/main.go"},
		{Path: "src/util/helper.go"},
		{Path: "README.md"},
	})

	return &schema.Snapshot{
		Metadata: &schema.RepositoryMetadata{
			Name:         "vizdemo",
			GeneratedAt:  time.Date(2024, 3, 6, 2, 40, 0, 0, time.UTC),
			FirstCommit:  time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
			LastCommit:   time.Date(2024, 3, 5, 9, 30, 0, 0, time.UTC),
			TotalCommits: 3,
			TotalFiles:   3,
			TotalAuthors: 2,
			Authors: []schema.AuthorSummary{
				{Name: "Alice", Email: "alice@example.com", Commits: 2},
				{Name: "Bob", Commits: 1},
			},
			Extensions: []schema.ExtensionCount{
				{Extension: "go", Files: 2},
				{Extension: "md", Files: 1},
			},
			Directories: []schema.DirectoryStat{
				{Path: "src", DirID: 1, Commits: 2, ActivityScore: 1.5},
				{Path: "src/util", DirID: 3, Commits: 1, ActivityScore: 1.0},
			},
		},
		Tree: hierarchy,
		Activity: &schema.ActivityResult{
			Buckets: []schema.ActivityBucket{
				{Date: "2024-03-01", DirID: 1, Added: 1, Commits: 1, Authors: 1, TopAuthors: []string{"Alice"}, TopFiles: []string{"main.go"}},
				{Date: "2024-03-02", DirID: 3, Added: 1, Commits: 1, Authors: 1, TopAuthors: []string{"Bob"}, TopFiles: []string{"helper.go"}},
			},
		},
	}
}

// testConfig returns a config with a fixed terminal width so path truncation
// stays deterministic under test runners without a TTY.
func testConfig(output schema.OutputMode, outputFile string) *contract.Config {
	return &contract.Config{
		Output:       output,
		OutputFile:   outputFile,
		ResultLimit:  contract.DefaultResultLimit,
		Precision:    contract.DefaultPrecision,
		Width:        120,
		CacheBackend: schema.SQLiteBackend,
	}
}
