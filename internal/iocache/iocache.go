// Package iocache is for durable storage of fetched documents and load runs.
package iocache

import (
	"sync"

	"github.com/akbargherbal/git-viz-sub001/internal/contract"
)

// CacheStoreManager manages the document cache and run tracking stores.
type CacheStoreManager struct {
	sync.RWMutex // Protects the store pointers during initialization
	document     contract.CacheStore
	runs         contract.RunStore
}

var _ contract.StoreManager = &CacheStoreManager{} // Compile-time check

// GetDocumentStore returns the document CacheStore.
func (mgr *CacheStoreManager) GetDocumentStore() contract.CacheStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.document
}

// GetRunStore returns the load run RunStore.
func (mgr *CacheStoreManager) GetRunStore() contract.RunStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.runs
}
