// Package meta condenses the four input documents into repository metadata.
package meta

import (
	"errors"
	"time"

	"github.com/akbargherbal/git-viz-sub001/core/algo"
	"github.com/akbargherbal/git-viz-sub001/schema"
)

// ErrNoEvents is returned when the lifecycle mapping carries no change events.
// The date range is undefined without at least one event, so the load fails
// fast instead of inventing a sentinel range.
var ErrNoEvents = errors.New("lifecycle document has no change events")

// Build assembles RepositoryMetadata from the decoded documents and the
// directory index produced by the tree build.
func Build(docs *schema.DocumentSet, dirIndex map[string]int) (*schema.RepositoryMetadata, error) {
	lifecycle := docs.Lifecycle

	// 1. Date range over every event across all files.
	first, last, err := eventDateRange(lifecycle.Files)
	if err != nil {
		return nil, err
	}

	// 2. File-type histogram in encounter order of the lifecycle mapping.
	extensions := buildExtensionHistogram(lifecycle.Files)

	// 3. Author list copied from the network summary, order preserved.
	authors := copyAuthors(docs.AuthorNetwork)

	// 4. Directory statistics restricted to directories the tree knows.
	directories := filterDirStats(docs.DirStats, dirIndex)

	return &schema.RepositoryMetadata{
		Name:         displayName(lifecycle.Repository),
		GeneratedAt:  time.Unix(lifecycle.GeneratedAt, 0).UTC(),
		FirstCommit:  time.Unix(first, 0).UTC(),
		LastCommit:   time.Unix(last, 0).UTC(),
		TotalCommits: lifecycle.TotalCommits,
		TotalFiles:   totalFiles(docs),
		TotalAuthors: len(docs.AuthorNetwork.Authors),
		Authors:      authors,
		Extensions:   extensions,
		Directories:  directories,
	}, nil
}

// eventDateRange scans all events and returns the inclusive [min, max]
// timestamp range, or ErrNoEvents when no event exists anywhere.
func eventDateRange(files schema.FileEventList) (int64, int64, error) {
	var first, last int64
	found := false
	for _, fe := range files {
		for _, ev := range fe.Events {
			if !found {
				first, last = ev.Timestamp, ev.Timestamp
				found = true
				continue
			}
			if ev.Timestamp < first {
				first = ev.Timestamp
			}
			if ev.Timestamp > last {
				last = ev.Timestamp
			}
		}
	}
	if !found {
		return 0, 0, ErrNoEvents
	}
	return first, last, nil
}

// buildExtensionHistogram tallies file extensions and ranks them descending
// by count, ties in encounter order.
func buildExtensionHistogram(files schema.FileEventList) []schema.ExtensionCount {
	counter := algo.NewCounter()
	for _, fe := range files {
		counter.Add(schema.ExtensionOf(fe.Path))
	}
	ranked := counter.Ranked()
	out := make([]schema.ExtensionCount, len(ranked))
	for i, kc := range ranked {
		out[i] = schema.ExtensionCount{Extension: kc.Key, Files: kc.Count}
	}
	return out
}

// copyAuthors maps network records into metadata summaries in source order.
func copyAuthors(network *schema.AuthorNetworkDocument) []schema.AuthorSummary {
	out := make([]schema.AuthorSummary, len(network.Authors))
	for i, rec := range network.Authors {
		out[i] = schema.AuthorSummary{
			Name:    rec.ID,
			Email:   rec.Email,
			Commits: rec.Commits,
		}
	}
	return out
}

// filterDirStats drops statistics whose path is unknown to the directory
// index. Stale entries from a diverged export are discarded silently so the
// rest of the load still succeeds.
func filterDirStats(stats *schema.DirStatsDocument, dirIndex map[string]int) []schema.DirectoryStat {
	out := make([]schema.DirectoryStat, 0, len(stats.Directories))
	for _, entry := range stats.Directories {
		normalized := schema.NormalizeDirPath(entry.Path)
		id, ok := dirIndex[normalized]
		if !ok {
			continue
		}
		out = append(out, schema.DirectoryStat{
			Path:          normalized,
			DirID:         id,
			Commits:       entry.Commits,
			ActivityScore: entry.ActivityScore,
		})
	}
	return out
}

// totalFiles prefers the file index size and falls back to the lifecycle
// mapping when the index arrives empty.
func totalFiles(docs *schema.DocumentSet) int {
	if n := len(docs.FileIndex.Files); n > 0 {
		return n
	}
	return len(docs.Lifecycle.Files)
}

// displayName derives the repository display name from the exported path,
// which may be a filesystem path or a URL.
func displayName(repository string) string {
	name := schema.BaseName(schema.NormalizeDirPath(repository))
	if name == "" {
		return repository
	}
	return name
}
