package core

import (
	"sort"
	"strings"

	"github.com/akbargherbal/git-viz-sub001/internal/contract"
	"github.com/akbargherbal/git-viz-sub001/schema"
)

// FilterActivity selects the buckets matching the configured day and
// directory filters. Selection keeps build order; a directory filter covers
// the whole subtree below it. An unknown directory matches nothing.
func FilterActivity(snapshot *schema.Snapshot, cfg *contract.Config) []schema.ActivityBucket {
	buckets := snapshot.Activity.Buckets
	selected := make([]schema.ActivityBucket, 0, len(buckets))

	var subtree map[int]struct{}
	if cfg.FilterDir != "" {
		subtree = subtreeDirIDs(snapshot.Tree.DirIndex, cfg.FilterDir)
		if len(subtree) == 0 {
			return selected
		}
	}

	for _, b := range buckets {
		if cfg.FilterDate != "" && b.Date != cfg.FilterDate {
			continue
		}
		if subtree != nil {
			if _, ok := subtree[b.DirID]; !ok {
				continue
			}
		}
		selected = append(selected, b)
	}
	return selected
}

// RankActivity sorts buckets by their total change count in descending order
// and returns the top 'limit' buckets. The sort is stable, so buckets with
// equal totals keep their first-seen order. If limit is greater than the
// number of buckets, all buckets are returned in sorted order.
func RankActivity(buckets []schema.ActivityBucket, limit int) []schema.ActivityBucket {
	ranked := make([]schema.ActivityBucket, len(buckets))
	copy(ranked, buckets)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Total() > ranked[j].Total()
	})
	if len(ranked) > limit {
		return ranked[:limit]
	}
	return ranked
}

// subtreeDirIDs collects the identifiers of a directory and every directory
// below it. The index maps normalized paths, so membership is a prefix test.
func subtreeDirIDs(dirIndex map[string]int, root string) map[int]struct{} {
	ids := make(map[int]struct{})
	prefix := root + "/"
	for path, id := range dirIndex {
		if path == root || strings.HasPrefix(path, prefix) {
			ids[id] = struct{}{}
		}
	}
	return ids
}
