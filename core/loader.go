package core

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/akbargherbal/git-viz-sub001/core/activity"
	"github.com/akbargherbal/git-viz-sub001/core/meta"
	"github.com/akbargherbal/git-viz-sub001/core/tree"
	"github.com/akbargherbal/git-viz-sub001/internal/contract"
	"github.com/akbargherbal/git-viz-sub001/schema"
)

// fetchResult carries one fetched document through the join point.
type fetchResult struct {
	resource string
	data     []byte
	took     time.Duration
	err      error
}

// LoadSnapshot fetches the four input documents, shapes them through the
// tree, metadata and activity stages and combines the results into one
// immutable snapshot. The first failure aborts the load; onProgress may be
// nil when no consumer cares about stage ticks.
func LoadSnapshot(ctx context.Context, cfg *contract.Config, source contract.DocumentSource, mgr contract.StoreManager, onProgress schema.ProgressFunc) (*schema.Snapshot, error) {
	// --- 1. Begin run tracking (best effort, never blocks the load) ---
	runID, runStore := beginRunTracking(cfg, source, mgr)

	// --- 2. Fetch phase: all documents in flight at once ---
	fetchCtx := ctx
	if cfg.FetchTimeout > 0 {
		var cancel context.CancelFunc
		fetchCtx, cancel = context.WithTimeout(ctx, cfg.FetchTimeout)
		defer cancel()
	}
	docs, err := fetchDocuments(fetchCtx, source, mgr, runID, runStore, onProgress)
	if err != nil {
		return nil, err
	}

	// --- 3. Tree phase: hierarchy plus the directory index ---
	emitProgress(onProgress, len(schema.AllResources), schema.PhaseTree)
	treeResult := tree.Build(docs.Lifecycle.Files)

	// --- 4. Metadata assembly, which consumes the directory index ---
	metadata, err := meta.Build(docs, treeResult.DirIndex)
	if err != nil {
		return nil, err
	}

	// --- 5. Activity phase: sparse day-by-directory buckets ---
	emitProgress(onProgress, len(schema.AllResources), schema.PhaseActivity)
	activityResult := activity.Build(docs.Lifecycle.Files, treeResult.DirIndex)

	snapshot := &schema.Snapshot{
		Metadata: metadata,
		Tree:     treeResult,
		Activity: activityResult,
	}

	// --- 6. Finalize run tracking and signal completion ---
	endRunTracking(runStore, runID, docs, activityResult)
	emitProgress(onProgress, len(schema.AllResources), schema.PhaseComplete)
	return snapshot, nil
}

// fetchDocuments retrieves all input documents concurrently and decodes them
// into the combined set. A transport failure on any document aborts the load
// with an error naming the resource that failed.
func fetchDocuments(ctx context.Context, source contract.DocumentSource, mgr contract.StoreManager, runID int64, runStore contract.RunStore, onProgress schema.ProgressFunc) (*schema.DocumentSet, error) {
	stamp := sourceStamp(ctx, source, mgr)

	resultCh := make(chan fetchResult, len(schema.AllResources))
	var wg sync.WaitGroup

	emitProgress(onProgress, 0, schema.PhaseMetadata)

	for _, resource := range schema.AllResources {
		wg.Go(func() {
			start := time.Now()
			data, err := fetchWithCache(ctx, source, mgr, resource, stamp)
			resultCh <- fetchResult{
				resource: resource,
				data:     data,
				took:     time.Since(start),
				err:      err,
			}
		})
	}

	// Single join point for every in-flight fetch.
	go func() {
		wg.Wait()
		close(resultCh)
	}()

	raw := make(map[string][]byte, len(schema.AllResources))
	loaded := 0
	var firstErr error
	for res := range resultCh {
		if res.err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("fetch %s: %w", res.resource, res.err)
			}
			continue
		}
		raw[res.resource] = res.data
		loaded++
		emitProgress(onProgress, loaded, schema.PhaseMetadata)
		recordDocument(runStore, runID, res)
	}
	if firstErr != nil {
		return nil, firstErr
	}

	return decodeDocuments(raw)
}

// decodeDocuments unmarshals the raw payloads into the typed document set.
func decodeDocuments(raw map[string][]byte) (*schema.DocumentSet, error) {
	decode := func(resource string, v any) error {
		if err := json.Unmarshal(raw[resource], v); err != nil {
			return fmt.Errorf("decode %s: %w", resource, err)
		}
		return nil
	}

	docs := &schema.DocumentSet{
		Lifecycle:     &schema.LifecycleDocument{},
		AuthorNetwork: &schema.AuthorNetworkDocument{},
		FileIndex:     &schema.FileIndexDocument{},
		DirStats:      &schema.DirStatsDocument{},
	}
	if err := decode(schema.ResourceLifecycle, docs.Lifecycle); err != nil {
		return nil, err
	}
	if err := decode(schema.ResourceAuthorNetwork, docs.AuthorNetwork); err != nil {
		return nil, err
	}
	if err := decode(schema.ResourceFileIndex, docs.FileIndex); err != nil {
		return nil, err
	}
	if err := decode(schema.ResourceDirStats, docs.DirStats); err != nil {
		return nil, err
	}
	return docs, nil
}

// emitProgress forwards one stage tick when a consumer is attached.
func emitProgress(onProgress schema.ProgressFunc, loaded int, phase schema.LoadPhase) {
	if onProgress == nil {
		return
	}
	onProgress(schema.ProgressEvent{
		Loaded: loaded,
		Total:  len(schema.AllResources),
		Phase:  phase,
	})
}

// beginRunTracking opens a run record when a run store is configured.
// Failures downgrade to a warning so persistence never blocks a load.
func beginRunTracking(cfg *contract.Config, source contract.DocumentSource, mgr contract.StoreManager) (int64, contract.RunStore) {
	if mgr == nil {
		return 0, nil
	}
	runStore := mgr.GetRunStore()
	if runStore == nil {
		return 0, nil
	}

	configParams := map[string]any{
		"source_kind": string(cfg.SourceKind),
		"timeout":     cfg.FetchTimeout.String(),
		"limit":       cfg.ResultLimit,
	}
	runID, err := runStore.BeginRun(time.Now(), source.Origin(), configParams)
	if err != nil {
		contract.LogWarn("Run tracking initialization failed", err)
		return 0, runStore
	}
	return runID, runStore
}

// recordDocument stores per-document fetch facts on the open run record.
func recordDocument(runStore contract.RunStore, runID int64, res fetchResult) {
	if runStore == nil || runID <= 0 {
		return
	}
	if err := runStore.RecordDocument(runID, res.resource, int64(len(res.data)), res.took); err != nil {
		contract.LogWarn("Failed to record document fetch", err)
	}
}

// endRunTracking closes the run record with the totals of the built snapshot.
func endRunTracking(runStore contract.RunStore, runID int64, docs *schema.DocumentSet, activityResult *schema.ActivityResult) {
	if runStore == nil || runID <= 0 {
		return
	}
	totalEvents := 0
	for _, fe := range docs.Lifecycle.Files {
		totalEvents += len(fe.Events)
	}
	err := runStore.EndRun(runID, time.Now(), len(docs.Lifecycle.Files), totalEvents, len(activityResult.Buckets))
	if err != nil {
		contract.LogWarn("Failed to finalize run tracking", err)
	}
}
