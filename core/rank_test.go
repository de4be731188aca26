package core

import (
	"testing"

	"github.com/akbargherbal/git-viz-sub001/internal/contract"
	"github.com/akbargherbal/git-viz-sub001/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// filterSnapshot builds a snapshot with a fixed directory index and a bucket
// list spanning several days and directories.
func filterSnapshot() *schema.Snapshot {
	return &schema.Snapshot{
		Tree: &schema.TreeResult{
			DirIndex: map[string]int{
				"":         0,
				"src":      1,
				"src/util": 3,
				"docs":     5,
			},
		},
		Activity: &schema.ActivityResult{
			Buckets: []schema.ActivityBucket{
				{Date: "2024-03-01", DirID: 1, Added: 3},
				{Date: "2024-03-01", DirID: 5, Modified: 2},
				{Date: "2024-03-02", DirID: 3, Added: 1, Modified: 1},
				{Date: "2024-03-02", DirID: 0, Deleted: 4},
				{Date: "2024-03-03", DirID: 1, Modified: 5},
			},
		},
	}
}

func TestFilterActivity_NoFilters(t *testing.T) {
	snapshot := filterSnapshot()
	cfg := &contract.Config{}

	selected := FilterActivity(snapshot, cfg)

	// Everything kept, build order untouched
	assert.Equal(t, snapshot.Activity.Buckets, selected)
}

func TestFilterActivity_DateFilter(t *testing.T) {
	snapshot := filterSnapshot()
	cfg := &contract.Config{FilterDate: "2024-03-02"}

	selected := FilterActivity(snapshot, cfg)

	require.Len(t, selected, 2)
	assert.Equal(t, 3, selected[0].DirID)
	assert.Equal(t, 0, selected[1].DirID)
}

func TestFilterActivity_DirFilterCoversSubtree(t *testing.T) {
	snapshot := filterSnapshot()
	cfg := &contract.Config{FilterDir: "src"}

	selected := FilterActivity(snapshot, cfg)

	// "src" and "src/util" match; root and "docs" do not
	require.Len(t, selected, 3)
	assert.Equal(t, 1, selected[0].DirID)
	assert.Equal(t, 3, selected[1].DirID)
	assert.Equal(t, 1, selected[2].DirID)
}

func TestFilterActivity_DirFilterExactSegments(t *testing.T) {
	snapshot := filterSnapshot()
	snapshot.Tree.DirIndex["src-old"] = 7
	snapshot.Activity.Buckets = append(snapshot.Activity.Buckets,
		schema.ActivityBucket{Date: "2024-03-04", DirID: 7, Added: 1})
	cfg := &contract.Config{FilterDir: "src"}

	selected := FilterActivity(snapshot, cfg)

	// "src-old" shares the prefix but not the path segment
	for _, b := range selected {
		assert.NotEqual(t, 7, b.DirID)
	}
}

func TestFilterActivity_UnknownDirMatchesNothing(t *testing.T) {
	snapshot := filterSnapshot()
	cfg := &contract.Config{FilterDir: "vendor"}

	selected := FilterActivity(snapshot, cfg)

	assert.Empty(t, selected)
}

func TestFilterActivity_CombinedFilters(t *testing.T) {
	snapshot := filterSnapshot()
	cfg := &contract.Config{FilterDate: "2024-03-01", FilterDir: "src"}

	selected := FilterActivity(snapshot, cfg)

	require.Len(t, selected, 1)
	assert.Equal(t, "2024-03-01", selected[0].Date)
	assert.Equal(t, 1, selected[0].DirID)
}

func TestRankActivity_DescendingByTotal(t *testing.T) {
	buckets := []schema.ActivityBucket{
		{Date: "2024-03-01", DirID: 1, Added: 1},
		{Date: "2024-03-02", DirID: 2, Added: 4, Deleted: 1},
		{Date: "2024-03-03", DirID: 3, Modified: 3},
	}

	ranked := RankActivity(buckets, 10)

	require.Len(t, ranked, 3)
	assert.Equal(t, 5, ranked[0].Total())
	assert.Equal(t, 3, ranked[1].Total())
	assert.Equal(t, 1, ranked[2].Total())
}

func TestRankActivity_TiesKeepFirstSeenOrder(t *testing.T) {
	buckets := []schema.ActivityBucket{
		{Date: "2024-03-01", DirID: 1, Added: 2},
		{Date: "2024-03-02", DirID: 2, Modified: 2},
		{Date: "2024-03-03", DirID: 3, Deleted: 2},
	}

	ranked := RankActivity(buckets, 10)

	require.Len(t, ranked, 3)
	assert.Equal(t, 1, ranked[0].DirID)
	assert.Equal(t, 2, ranked[1].DirID)
	assert.Equal(t, 3, ranked[2].DirID)
}

func TestRankActivity_TruncatesToLimit(t *testing.T) {
	buckets := []schema.ActivityBucket{
		{DirID: 1, Added: 1},
		{DirID: 2, Added: 2},
		{DirID: 3, Added: 3},
		{DirID: 4, Added: 4},
	}

	ranked := RankActivity(buckets, 2)

	require.Len(t, ranked, 2)
	assert.Equal(t, 4, ranked[0].DirID)
	assert.Equal(t, 3, ranked[1].DirID)
}

func TestRankActivity_InputUntouched(t *testing.T) {
	buckets := []schema.ActivityBucket{
		{DirID: 1, Added: 1},
		{DirID: 2, Added: 9},
	}

	_ = RankActivity(buckets, 10)

	// The snapshot's bucket order is immutable; ranking works on a copy
	assert.Equal(t, 1, buckets[0].DirID)
	assert.Equal(t, 2, buckets[1].DirID)
}

func TestRankActivity_Empty(t *testing.T) {
	ranked := RankActivity(nil, 5)
	assert.Empty(t, ranked)
}

func TestSubtreeDirIDs(t *testing.T) {
	dirIndex := map[string]int{
		"":            0,
		"src":         1,
		"src/util":    2,
		"src/utility": 3,
		"docs":        4,
	}

	ids := subtreeDirIDs(dirIndex, "src")

	assert.Equal(t, map[int]struct{}{1: {}, 2: {}, 3: {}}, ids)
}
