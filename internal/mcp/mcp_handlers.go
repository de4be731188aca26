package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/akbargherbal/git-viz-sub001/core"
	"github.com/akbargherbal/git-viz-sub001/internal/contract"
	"github.com/akbargherbal/git-viz-sub001/schema"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.StoreManager
}

// requestConfig clones the base config and applies the optional source
// override through the same rules as the CLI positional argument.
func (h *toolHandler) requestConfig(request mcp.CallToolRequest) (*contract.Config, error) {
	cfg := h.baseCfg.Clone()
	if src := request.GetString("source", ""); src != "" {
		if err := contract.ResolveSource(cfg, src); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// loadSnapshot runs the pipeline without progress ticks; stdio transports
// have no place for them.
func (h *toolHandler) loadSnapshot(ctx context.Context, cfg *contract.Config) (*schema.Snapshot, error) {
	return core.LoadSnapshot(ctx, cfg, core.NewDocumentSource(cfg), h.mgr, nil)
}

// snapshotSummary is the load_snapshot payload: headline numbers instead of
// the full bundle, so tool output stays small enough for a model context.
type snapshotSummary struct {
	Source       string `json:"source"`
	TotalCommits int    `json:"total_commits"`
	TotalFiles   int    `json:"total_files"`
	TotalAuthors int    `json:"total_authors"`
	FirstCommit  string `json:"first_commit"`
	LastCommit   string `json:"last_commit"`
	TreeNodes    int    `json:"tree_nodes"`
	Directories  int    `json:"directories"`
	Buckets      int    `json:"buckets"`
}

func (h *toolHandler) handleLoadSnapshot(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.requestConfig(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid source: %v", err)), nil
	}

	snapshot, err := h.loadSnapshot(ctx, cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("load failed: %v", err)), nil
	}

	summary := snapshotSummary{
		Source:       cfg.SourcePath,
		TotalCommits: snapshot.Metadata.TotalCommits,
		TotalFiles:   snapshot.Metadata.TotalFiles,
		TotalAuthors: snapshot.Metadata.TotalAuthors,
		FirstCommit:  snapshot.Metadata.FirstCommit.UTC().Format(time.RFC3339),
		LastCommit:   snapshot.Metadata.LastCommit.UTC().Format(time.RFC3339),
		TreeNodes:    snapshot.Tree.NodeSpan,
		Directories:  len(snapshot.Tree.DirIndex),
		Buckets:      len(snapshot.Activity.Buckets),
	}
	jsonData, _ := json.MarshalIndent(summary, "", "  ")

	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetRepositoryMetadata(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.requestConfig(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid source: %v", err)), nil
	}

	snapshot, err := h.loadSnapshot(ctx, cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("load failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(snapshot.Metadata, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

// rankedBucket pairs one activity bucket with its resolved directory path.
type rankedBucket struct {
	Directory string `json:"directory"`
	schema.ActivityBucket
}

func (h *toolHandler) handleGetTopDirectories(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.requestConfig(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid source: %v", err)), nil
	}

	if raw := request.GetString("date", ""); raw != "" {
		day, err := contract.ParseDayFilter(raw)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid date parameter: %v", err)), nil
		}
		cfg.FilterDate = day
	}
	if dir := request.GetString("dir", ""); dir != "" {
		cfg.FilterDir = schema.NormalizeDirPath(dir)
	}
	if l := request.GetInt("limit", 0); l > 0 {
		cfg.ResultLimit = l
	}

	snapshot, err := h.loadSnapshot(ctx, cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("load failed: %v", err)), nil
	}

	ranked := core.RankActivity(core.FilterActivity(snapshot, cfg), cfg.ResultLimit)

	dirPaths := make(map[int]string, len(snapshot.Tree.DirIndex))
	for path, id := range snapshot.Tree.DirIndex {
		if path == "" {
			path = "."
		}
		dirPaths[id] = path
	}

	out := make([]rankedBucket, 0, len(ranked))
	for _, b := range ranked {
		out = append(out, rankedBucket{Directory: dirPaths[b.DirID], ActivityBucket: b})
	}
	jsonData, _ := json.MarshalIndent(out, "", "  ")

	return mcp.NewToolResultText(string(jsonData)), nil
}
