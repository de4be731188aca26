// Package core has core logic for loading, shaping and combining snapshots.
package core

import (
	"context"
	"time"

	"github.com/akbargherbal/git-viz-sub001/internal/contract"
	"github.com/akbargherbal/git-viz-sub001/internal/gitexport"
	"github.com/akbargherbal/git-viz-sub001/internal/outwriter"
	"github.com/akbargherbal/git-viz-sub001/schema"
)

// ExecutorFunc defines the function signature for executing different view modes.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error

// NewDocumentSource returns the document source matching the validated config.
func NewDocumentSource(cfg *contract.Config) contract.DocumentSource {
	if cfg.SourceKind == schema.HTTPSource {
		return contract.NewHTTPDocumentSource(cfg.SourcePath, nil)
	}
	return contract.NewLocalDocumentSource(cfg.SourcePath)
}

// ExecuteGitvizLoad builds the full snapshot and prints the combined summary.
// It serves as the main entry point for the 'load' mode.
func ExecuteGitvizLoad(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	start := time.Now()
	outwriter.LogLoadHeader(cfg)
	source := NewDocumentSource(cfg)
	snapshot, err := LoadSnapshot(ctx, cfg, source, mgr, outwriter.ProgressPrinter(cfg))
	if err != nil {
		return err
	}
	duration := time.Since(start)
	return outwriter.PrintSnapshotSummary(snapshot, cfg, duration)
}

// ExecuteGitvizTree builds the snapshot and prints the directory hierarchy.
// It serves as the main entry point for the 'tree' mode.
func ExecuteGitvizTree(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	start := time.Now()
	outwriter.LogLoadHeader(cfg)
	source := NewDocumentSource(cfg)
	snapshot, err := LoadSnapshot(ctx, cfg, source, mgr, outwriter.ProgressPrinter(cfg))
	if err != nil {
		return err
	}
	duration := time.Since(start)
	return outwriter.PrintTree(snapshot, cfg, duration)
}

// ExecuteGitvizMetadata builds the snapshot and prints the repository summary.
// It serves as the main entry point for the 'metadata' mode.
func ExecuteGitvizMetadata(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	start := time.Now()
	outwriter.LogLoadHeader(cfg)
	source := NewDocumentSource(cfg)
	snapshot, err := LoadSnapshot(ctx, cfg, source, mgr, outwriter.ProgressPrinter(cfg))
	if err != nil {
		return err
	}
	duration := time.Since(start)
	return outwriter.PrintMetadata(snapshot.Metadata, cfg, duration)
}

// ExecuteGitvizActivity builds the snapshot, applies the day and directory
// filters and prints the busiest buckets. It serves as the main entry point
// for the 'activity' mode.
func ExecuteGitvizActivity(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	start := time.Now()
	outwriter.LogLoadHeader(cfg)
	source := NewDocumentSource(cfg)
	snapshot, err := LoadSnapshot(ctx, cfg, source, mgr, outwriter.ProgressPrinter(cfg))
	if err != nil {
		return err
	}
	selected := FilterActivity(snapshot, cfg)
	ranked := RankActivity(selected, cfg.ResultLimit)
	duration := time.Since(start)
	return outwriter.PrintActivity(ranked, snapshot, cfg, duration)
}

// ExecuteGitvizExport regenerates the four input documents from a local Git
// repository. It serves as the main entry point for the 'export' mode.
func ExecuteGitvizExport(ctx context.Context, cfg *contract.Config, _ contract.StoreManager) error {
	start := time.Now()
	outwriter.LogExportHeader(cfg)
	client := contract.NewLocalGitClient()
	builder := gitexport.NewBuilder(client, cfg)
	docs, err := builder.Build(ctx)
	if err != nil {
		return err
	}
	written, err := gitexport.WriteDocuments(docs, cfg.ExportOut)
	if err != nil {
		return err
	}
	duration := time.Since(start)
	return outwriter.PrintExportSummary(written, cfg, duration)
}
