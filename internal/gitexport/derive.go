package gitexport

import (
	"github.com/akbargherbal/git-viz-sub001/schema"
)

// aggregation accumulates everything one history pass learns. Encounter order
// is tracked separately from the maps because document order is part of the
// output contract.
type aggregation struct {
	fileOrder  []string
	fileEvents map[string][]schema.ChangeEvent

	commitCount int
	eventCount  int

	authorOrder []string
	authorStats map[string]*authorAggregate

	dirOrder []string
	dirStats map[string]*dirAggregate

	fileAuthors map[string]map[string]struct{}
}

// authorAggregate tracks one author's distinct commits and first-seen e-mail.
type authorAggregate struct {
	email   string
	commits map[string]struct{}
}

// dirAggregate tracks one directory's subtree activity.
type dirAggregate struct {
	commits map[string]struct{}
	events  int
	days    map[string]struct{}
}

func newAggregation() *aggregation {
	return &aggregation{
		fileEvents:  make(map[string][]schema.ChangeEvent),
		authorStats: make(map[string]*authorAggregate),
		dirStats:    make(map[string]*dirAggregate),
		fileAuthors: make(map[string]map[string]struct{}),
	}
}

// addEvent records one kept change: the per-file event itself, the author's
// claim on the file, and the subtree rollup for every ancestor directory.
func (a *aggregation) addEvent(commit historyCommit, change fileChange) {
	event := schema.ChangeEvent{
		Commit:      commit.Hash,
		Timestamp:   commit.Timestamp,
		Op:          change.Op,
		Author:      commit.Author,
		AuthorEmail: commit.Email,
		Subject:     commit.Subject,
	}

	if _, ok := a.fileEvents[change.Path]; !ok {
		a.fileOrder = append(a.fileOrder, change.Path)
	}
	a.fileEvents[change.Path] = append(a.fileEvents[change.Path], event)
	a.eventCount++

	if commit.Author != "" {
		if a.fileAuthors[change.Path] == nil {
			a.fileAuthors[change.Path] = make(map[string]struct{})
		}
		a.fileAuthors[change.Path][commit.Author] = struct{}{}
	}

	day := schema.DayKey(commit.Timestamp)
	for _, dir := range ancestorDirs(change.Path) {
		stats, ok := a.dirStats[dir]
		if !ok {
			stats = &dirAggregate{
				commits: make(map[string]struct{}),
				days:    make(map[string]struct{}),
			}
			a.dirStats[dir] = stats
			a.dirOrder = append(a.dirOrder, dir)
		}
		stats.commits[commit.Hash] = struct{}{}
		stats.events++
		stats.days[day] = struct{}{}
	}
}

// noteCommit records commit-level facts once per contributing commit.
func (a *aggregation) noteCommit(commit historyCommit) {
	a.commitCount++
	if commit.Author == "" {
		return
	}
	stats, ok := a.authorStats[commit.Author]
	if !ok {
		stats = &authorAggregate{commits: make(map[string]struct{})}
		a.authorStats[commit.Author] = stats
		a.authorOrder = append(a.authorOrder, commit.Author)
	}
	stats.commits[commit.Hash] = struct{}{}
	if stats.email == "" {
		stats.email = commit.Email
	}
}

// buildLifecycle shapes the per-file history in first-event order.
func (b *Builder) buildLifecycle(agg *aggregation) *schema.LifecycleDocument {
	files := make(schema.FileEventList, 0, len(agg.fileOrder))
	for _, path := range agg.fileOrder {
		files = append(files, schema.FileEvents{Path: path, Events: agg.fileEvents[path]})
	}
	return &schema.LifecycleDocument{
		Repository:   b.cfg.ExportRepo,
		GeneratedAt:  b.now().Unix(),
		TotalCommits: agg.commitCount,
		TotalFiles:   len(files),
		TotalChanges: agg.eventCount,
		Files:        files,
	}
}

// buildAuthorNetwork lists authors in first-commit order. Collaborations is
// the number of distinct other authors who touched at least one shared file.
func buildAuthorNetwork(agg *aggregation) *schema.AuthorNetworkDocument {
	coauthors := make(map[string]map[string]struct{})
	for _, authors := range agg.fileAuthors {
		for one := range authors {
			for other := range authors {
				if one == other {
					continue
				}
				if coauthors[one] == nil {
					coauthors[one] = make(map[string]struct{})
				}
				coauthors[one][other] = struct{}{}
			}
		}
	}

	records := make([]schema.AuthorRecord, 0, len(agg.authorOrder))
	for _, name := range agg.authorOrder {
		stats := agg.authorStats[name]
		records = append(records, schema.AuthorRecord{
			ID:             name,
			Email:          stats.email,
			Commits:        len(stats.commits),
			Collaborations: len(coauthors[name]),
		})
	}
	return &schema.AuthorNetworkDocument{Authors: records}
}

// buildFileIndex catalogs the files present at HEAD with their historical
// commit counts. A name-status log lists a path at most once per commit, so
// the event count doubles as the distinct commit count.
func buildFileIndex(agg *aggregation, currentFiles []string, keep func(string) bool) *schema.FileIndexDocument {
	entries := make(map[string]schema.FileIndexEntry, len(currentFiles))
	for _, path := range currentFiles {
		if !keep(path) {
			continue
		}
		entries[path] = schema.FileIndexEntry{Commits: len(agg.fileEvents[path])}
	}
	return &schema.FileIndexDocument{Files: entries}
}

// buildDirStats shapes the subtree rollups in first-event order. The activity
// score is events per distinct active day, so a burst of churn on a single
// day and the same churn spread over a month read differently.
func buildDirStats(agg *aggregation) *schema.DirStatsDocument {
	list := make(schema.DirStatList, 0, len(agg.dirOrder))
	for _, dir := range agg.dirOrder {
		stats := agg.dirStats[dir]
		score := 0.0
		if len(stats.days) > 0 {
			score = float64(stats.events) / float64(len(stats.days))
		}
		list = append(list, schema.DirStatEntry{
			Path:          dir,
			Commits:       len(stats.commits),
			ActivityScore: score,
		})
	}
	return &schema.DirStatsDocument{Directories: list}
}
