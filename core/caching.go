package core

import (
	"context"
	"crypto/sha256"
	"fmt"
	"time"

	"github.com/akbargherbal/git-viz-sub001/internal/contract"
)

// currentCacheVersion defines the version of the cached document payloads
const currentCacheVersion = 1

// cacheMaxAge bounds how long a cached payload stays valid. The stamp in the
// key already invalidates on source changes; this is the backstop for
// sources whose stamp never moves.
const cacheMaxAge = 7 * 24 * time.Hour

// fetchWithCache returns the raw bytes of one document, consulting the byte
// cache when a store is configured. An empty stamp disables caching entirely
// because the key could not tell a fresh source from a stale one.
func fetchWithCache(ctx context.Context, source contract.DocumentSource, mgr contract.StoreManager, resource, stamp string) ([]byte, error) {
	var store contract.CacheStore
	if mgr != nil {
		store = mgr.GetDocumentStore()
	}
	if store == nil || stamp == "" {
		// Fallback to direct fetch
		return source.Fetch(ctx, resource)
	}

	key := generateDocumentCacheKey(source.Origin(), resource, stamp)

	// Check for cache hit
	if data := checkCacheHit(store, key); data != nil {
		return data, nil
	}

	// Cache miss: fetch and store
	return fetchAndStore(ctx, source, store, key, resource)
}

// checkCacheHit attempts to retrieve and validate a cached payload
func checkCacheHit(store contract.CacheStore, key string) []byte {
	data, version, ts, err := store.Get(key)
	if err != nil {
		return nil // Cache miss
	}

	// Validate version and staleness
	if version == currentCacheVersion {
		entryTimestamp := time.Unix(ts, 0)
		if time.Since(entryTimestamp) <= cacheMaxAge {
			return data // Cache hit
		}
	}

	return nil // Cache miss (stale or version mismatch)
}

// fetchAndStore fetches the document and stores the payload in cache
func fetchAndStore(ctx context.Context, source contract.DocumentSource, store contract.CacheStore, key, resource string) ([]byte, error) {
	data, err := source.Fetch(ctx, resource)
	if err != nil {
		return nil, err
	}

	// Store in cache
	_ = store.Set(key, data, currentCacheVersion, time.Now().Unix())

	return data, nil
}

// sourceStamp resolves the source content stamp once per load. The stamp is
// only needed when a cache store is attached, so sources without one skip
// the extra round trip.
func sourceStamp(ctx context.Context, source contract.DocumentSource, mgr contract.StoreManager) string {
	if mgr == nil || mgr.GetDocumentStore() == nil {
		return ""
	}
	stamp, err := source.Stamp(ctx)
	if err != nil {
		contract.LogWarn("Source stamp unavailable, caching disabled for this load", err)
		return ""
	}
	return stamp
}

// generateDocumentCacheKey creates a unique key per source, document and
// source content stamp.
func generateDocumentCacheKey(origin, resource, stamp string) string {
	key := fmt.Sprintf("%s:%s:%s", origin, resource, stamp)
	return fmt.Sprintf("%x", sha256.Sum256([]byte(key)))
}
