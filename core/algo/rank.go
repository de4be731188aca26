// Package algo has the counting and ranking primitives shared by the
// aggregation passes.
package algo

import "sort"

// KeyCount pairs a counter key with its tally.
type KeyCount struct {
	Key   string
	Count int
}

// Counter tallies string keys while remembering the order keys first appeared.
// Ranking is by count descending with first-appearance order breaking ties,
// so results are deterministic for a given input sequence.
type Counter struct {
	counts map[string]int
	order  []string
}

// NewCounter returns an empty counter.
func NewCounter() *Counter {
	return &Counter{counts: make(map[string]int)}
}

// Add increments the tally for a key, recording it on first sight.
func (c *Counter) Add(key string) {
	if _, seen := c.counts[key]; !seen {
		c.order = append(c.order, key)
	}
	c.counts[key]++
}

// Len returns the number of distinct keys seen.
func (c *Counter) Len() int {
	return len(c.counts)
}

// Count returns the tally for a key, zero when never seen.
func (c *Counter) Count(key string) int {
	return c.counts[key]
}

// Ranked returns every key with its count, sorted by count descending.
// Ties keep first-appearance order via the stable sort.
func (c *Counter) Ranked() []KeyCount {
	out := make([]KeyCount, 0, len(c.order))
	for _, key := range c.order {
		out = append(out, KeyCount{Key: key, Count: c.counts[key]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	return out
}

// Top returns up to k keys by rank. If k is larger than the number of
// distinct keys, all keys are returned in ranked order.
func (c *Counter) Top(k int) []string {
	ranked := c.Ranked()
	if len(ranked) > k {
		ranked = ranked[:k]
	}
	keys := make([]string, len(ranked))
	for i, kc := range ranked {
		keys[i] = kc.Key
	}
	return keys
}
