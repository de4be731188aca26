// Package gitexport regenerates the four input documents from a local Git
// repository, so a checkout can be visualized without an external exporter.
package gitexport

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/akbargherbal/git-viz-sub001/internal/contract"
	"github.com/akbargherbal/git-viz-sub001/schema"
)

// Builder derives the document set for one repository export.
type Builder struct {
	client contract.GitClient
	cfg    *contract.Config
	now    func() time.Time
}

// NewBuilder creates a builder for the validated export config.
func NewBuilder(client contract.GitClient, cfg *contract.Config) *Builder {
	return &Builder{client: client, cfg: cfg, now: time.Now}
}

// Build runs the repository history once and derives all four documents from
// that single pass. Scope filters apply before aggregation, so a filtered
// export behaves like a repository that only ever contained the kept paths.
func (b *Builder) Build(ctx context.Context) (*schema.DocumentSet, error) {
	// 1. Get the list of currently existing files for the file index scope.
	currentFiles, err := b.client.ListFilesAtRef(ctx, b.cfg.ExportRepo, "HEAD")
	if err != nil {
		return nil, err
	}

	// 2. Run the history log and parse it into commit records.
	out, err := b.client.GetHistoryLog(ctx, b.cfg.ExportRepo)
	if err != nil {
		return nil, err
	}
	commits := parseHistoryLog(out)

	// 3. Aggregate the kept events into the intermediate maps.
	agg := newAggregation()
	for _, commit := range commits {
		b.aggregateCommit(agg, commit)
	}
	if len(agg.fileOrder) == 0 {
		return nil, errors.New("repository history has no change events in scope")
	}

	// 4. Shape the aggregation into the four documents.
	docs := &schema.DocumentSet{
		Lifecycle:     b.buildLifecycle(agg),
		AuthorNetwork: buildAuthorNetwork(agg),
		FileIndex:     buildFileIndex(agg, currentFiles, b.keepPath),
		DirStats:      buildDirStats(agg),
	}
	return docs, nil
}

// keepPath reports whether a repository path is inside the export scope. The
// filter covers the whole subtree below it, same as the activity dir filter.
func (b *Builder) keepPath(path string) bool {
	if filter := b.cfg.ExportFilter; filter != "" {
		if path != filter && !strings.HasPrefix(path, filter+"/") {
			return false
		}
	}
	return !contract.ShouldIgnore(path, b.cfg.Excludes)
}

// aggregateCommit folds one commit's kept changes into the aggregation.
// A commit whose changes are all filtered out contributes nothing, not even
// to the commit total, so scoped exports stay internally consistent.
func (b *Builder) aggregateCommit(agg *aggregation, commit historyCommit) {
	kept := false
	for _, change := range commit.Changes {
		if !b.keepPath(change.Path) {
			continue
		}
		kept = true
		agg.addEvent(commit, change)
	}
	if kept {
		agg.noteCommit(commit)
	}
}
