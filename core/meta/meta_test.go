package meta

import (
	"testing"
	"time"

	"github.com/akbargherbal/git-viz-sub001/core/tree"
	"github.com/akbargherbal/git-viz-sub001/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// demoDocs builds a small consistent document set with a matching directory index.
func demoDocs() (*schema.DocumentSet, map[string]int) {
	files := schema.FileEventList{
		{Path: "src/app.go", Events: []schema.ChangeEvent{
			{Commit: "c1", Timestamp: 1000, Op: schema.OpAdded, Author: "Ann"},
			{Commit: "c2", Timestamp: 5000, Op: schema.OpModified, Author: "Bob"},
		}},
		{Path: "src/util.go", Events: []schema.ChangeEvent{
			{Commit: "c3", Timestamp: 3000, Op: schema.OpModified, Author: "Ann"},
		}},
		{Path: "README.md", Events: []schema.ChangeEvent{
			{Commit: "c1", Timestamp: 500, Op: schema.OpAdded, Author: "Ann"},
		}},
	}
	docs := &schema.DocumentSet{
		Lifecycle: &schema.LifecycleDocument{
			Repository:   "/work/checkouts/demo",
			GeneratedAt:  1700000000,
			TotalCommits: 3,
			TotalFiles:   3,
			TotalChanges: 4,
			Files:        files,
		},
		AuthorNetwork: &schema.AuthorNetworkDocument{Authors: []schema.AuthorRecord{
			{ID: "Ann", Email: "ann@example.com", Commits: 3, Collaborations: 1},
			{ID: "Bob", Email: "bob@example.com", Commits: 1, Collaborations: 1},
		}},
		FileIndex: &schema.FileIndexDocument{Files: map[string]schema.FileIndexEntry{
			"src/app.go":  {Commits: 2},
			"src/util.go": {Commits: 1},
			"README.md":   {Commits: 1},
		}},
		DirStats: &schema.DirStatsDocument{Directories: schema.DirStatList{
			{Path: "src", Commits: 3, ActivityScore: 1.5},
			{Path: "ghost/", Commits: 9, ActivityScore: 9.9},
		}},
	}
	return docs, tree.Build(files).DirIndex
}

func TestBuildMetadata(t *testing.T) {
	docs, dirIndex := demoDocs()

	md, err := Build(docs, dirIndex)
	require.NoError(t, err)

	assert.Equal(t, "demo", md.Name, "display name is the base of the exported path")
	assert.Equal(t, time.Unix(1700000000, 0).UTC(), md.GeneratedAt)
	assert.Equal(t, time.Unix(500, 0).UTC(), md.FirstCommit, "earliest event across all files")
	assert.Equal(t, time.Unix(5000, 0).UTC(), md.LastCommit, "latest event across all files")
	assert.Equal(t, 3, md.TotalCommits)
	assert.Equal(t, 3, md.TotalFiles)
	assert.Equal(t, 2, md.TotalAuthors)
}

func TestBuildAuthorsPreserveSourceOrder(t *testing.T) {
	docs, dirIndex := demoDocs()

	md, err := Build(docs, dirIndex)
	require.NoError(t, err)

	require.Len(t, md.Authors, 2)
	assert.Equal(t, schema.AuthorSummary{Name: "Ann", Email: "ann@example.com", Commits: 3}, md.Authors[0])
	assert.Equal(t, "Bob", md.Authors[1].Name)
}

func TestBuildExtensionHistogramOrdering(t *testing.T) {
	docs, dirIndex := demoDocs()

	md, err := Build(docs, dirIndex)
	require.NoError(t, err)

	// Two .go files rank first; .md follows with one file.
	require.Len(t, md.Extensions, 2)
	assert.Equal(t, schema.ExtensionCount{Extension: "go", Files: 2}, md.Extensions[0])
	assert.Equal(t, schema.ExtensionCount{Extension: "md", Files: 1}, md.Extensions[1])
}

func TestBuildExtensionTieKeepsEncounterOrder(t *testing.T) {
	files := schema.FileEventList{
		{Path: "style.css", Events: []schema.ChangeEvent{{Commit: "c", Timestamp: 1, Op: schema.OpAdded, Author: "A"}}},
		{Path: "app.go", Events: nil},
		{Path: "other.go", Events: nil},
		{Path: "more.css", Events: nil},
	}
	docs := &schema.DocumentSet{
		Lifecycle:     &schema.LifecycleDocument{Repository: "r", Files: files},
		AuthorNetwork: &schema.AuthorNetworkDocument{},
		FileIndex:     &schema.FileIndexDocument{},
		DirStats:      &schema.DirStatsDocument{},
	}

	md, err := Build(docs, tree.Build(files).DirIndex)
	require.NoError(t, err)

	// css and go both count 2; css was encountered first and must stay first.
	require.Len(t, md.Extensions, 2)
	assert.Equal(t, "css", md.Extensions[0].Extension)
	assert.Equal(t, "go", md.Extensions[1].Extension)
}

func TestBuildDropsUnknownDirectoryStats(t *testing.T) {
	docs, dirIndex := demoDocs()

	md, err := Build(docs, dirIndex)
	require.NoError(t, err)

	// The ghost/ entry has no files in the tree and is silently dropped;
	// src/ survives with its path normalized and resolved to its node id.
	require.Len(t, md.Directories, 1)
	assert.Equal(t, "src", md.Directories[0].Path)
	assert.Equal(t, dirIndex["src"], md.Directories[0].DirID)
	assert.Equal(t, 3, md.Directories[0].Commits)
}

func TestBuildTrailingSlashStatsMatchTreePaths(t *testing.T) {
	docs, dirIndex := demoDocs()
	docs.DirStats = &schema.DirStatsDocument{Directories: schema.DirStatList{
		{Path: "src/", Commits: 7, ActivityScore: 2.0},
	}}

	md, err := Build(docs, dirIndex)
	require.NoError(t, err)

	require.Len(t, md.Directories, 1, "exporter-style trailing slashes should still match")
	assert.Equal(t, "src", md.Directories[0].Path)
}

func TestBuildFailsFastWithoutEvents(t *testing.T) {
	files := schema.FileEventList{{Path: "empty.go", Events: nil}}
	docs := &schema.DocumentSet{
		Lifecycle:     &schema.LifecycleDocument{Repository: "r", Files: files},
		AuthorNetwork: &schema.AuthorNetworkDocument{},
		FileIndex:     &schema.FileIndexDocument{},
		DirStats:      &schema.DirStatsDocument{},
	}

	_, err := Build(docs, tree.Build(files).DirIndex)
	assert.ErrorIs(t, err, ErrNoEvents)
}

func TestBuildTotalFilesFallsBackToLifecycle(t *testing.T) {
	docs, dirIndex := demoDocs()
	docs.FileIndex = &schema.FileIndexDocument{}

	md, err := Build(docs, dirIndex)
	require.NoError(t, err)

	assert.Equal(t, 3, md.TotalFiles, "empty file index falls back to the lifecycle mapping size")
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		repository string
		want       string
	}{
		{"/work/checkouts/demo", "demo"},
		{"/work/checkouts/demo/", "demo"},
		{"https://example.com/owner/project", "project"},
		{"plain", "plain"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.repository, func(t *testing.T) {
			assert.Equal(t, tt.want, displayName(tt.repository))
		})
	}
}
