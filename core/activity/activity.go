// Package activity folds change events into day-by-directory buckets.
package activity

import (
	"github.com/akbargherbal/git-viz-sub001/core/algo"
	"github.com/akbargherbal/git-viz-sub001/schema"
)

// topEntries bounds the ranked author and file lists per bucket.
const topEntries = 3

// bucketKey identifies one aggregation cell.
type bucketKey struct {
	date  string
	dirID int
}

// bucketAccum carries a bucket plus the working counters that exist only for
// the duration of the pass. Finalize derives the summary fields and the
// counters are left for the collector.
type bucketAccum struct {
	bucket  schema.ActivityBucket
	authors *algo.Counter
	files   *algo.Counter
	commits map[string]struct{}
}

// Build runs the single aggregation pass over the lifecycle mapping. Buckets
// are created lazily on the first event of a (day, directory) pair and the
// output keeps that first-seen order. Files whose parent directory is missing
// from the index are skipped whole, mirroring the index-consistency policy of
// the metadata filter.
func Build(files schema.FileEventList, dirIndex map[string]int) *schema.ActivityResult {
	accums := make(map[bucketKey]*bucketAccum)
	order := make([]bucketKey, 0)

	// 1. Single pass over every event of every file.
	for _, fe := range files {
		dirID, ok := dirIndex[schema.ParentDir(fe.Path)]
		if !ok {
			continue
		}
		name := schema.BaseName(fe.Path)
		for _, ev := range fe.Events {
			key := bucketKey{date: schema.DayKey(ev.Timestamp), dirID: dirID}
			acc := accums[key]
			if acc == nil {
				acc = newBucketAccum(key)
				accums[key] = acc
				order = append(order, key)
			}
			acc.apply(ev, name)
		}
	}

	// 2. Freeze each bucket in first-seen order.
	buckets := make([]schema.ActivityBucket, 0, len(order))
	for _, key := range order {
		buckets = append(buckets, accums[key].finalize())
	}
	return &schema.ActivityResult{Buckets: buckets}
}

// newBucketAccum creates the accumulator for a fresh (day, directory) pair.
func newBucketAccum(key bucketKey) *bucketAccum {
	return &bucketAccum{
		bucket:  schema.ActivityBucket{Date: key.date, DirID: key.dirID},
		authors: algo.NewCounter(),
		files:   algo.NewCounter(),
		commits: make(map[string]struct{}),
	}
}

// apply folds one event into the accumulator. Renames count as modified, and
// so does any operation outside the known set.
func (a *bucketAccum) apply(ev schema.ChangeEvent, fileName string) {
	switch ev.Op {
	case schema.OpAdded:
		a.bucket.Added++
	case schema.OpDeleted:
		a.bucket.Deleted++
	default:
		a.bucket.Modified++
	}
	a.authors.Add(ev.Author)
	a.files.Add(fileName)
	a.commits[ev.Commit] = struct{}{}
}

// finalize derives the summary fields from the working counters.
func (a *bucketAccum) finalize() schema.ActivityBucket {
	a.bucket.Authors = a.authors.Len()
	a.bucket.Commits = len(a.commits)
	a.bucket.TopAuthors = a.authors.Top(topEntries)
	a.bucket.TopFiles = a.files.Top(topEntries)
	return a.bucket
}
