// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/akbargherbal/git-viz-sub001/internal/contract"
)

// NewMCPServer initializes and configures the gitviz MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.StoreManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Gitviz Snapshot Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: load_snapshot ---
	s.AddTool(mcp.NewTool("load_snapshot",
		mcp.WithDescription("Load a repository snapshot from exported history documents and report its headline numbers."),
		mcp.WithString("source", mcp.Description("Document directory or HTTP base URL (defaults to the configured source).")),
	), h.handleLoadSnapshot)

	// --- 2. Tool: get_repository_metadata ---
	s.AddTool(mcp.NewTool("get_repository_metadata",
		mcp.WithDescription("Return the repository metadata: date range, totals, authors, file-type histogram and directory statistics."),
		mcp.WithString("source", mcp.Description("Document directory or HTTP base URL.")),
	), h.handleGetRepositoryMetadata)

	// --- 3. Tool: get_top_directories ---
	s.AddTool(mcp.NewTool("get_top_directories",
		mcp.WithDescription("Rank the busiest directory-day activity buckets, optionally narrowed to one day or one subtree."),
		mcp.WithString("source", mcp.Description("Document directory or HTTP base URL.")),
		mcp.WithString("date", mcp.Description("Restrict to one UTC day (YYYY-MM-DD or 'N units ago').")),
		mcp.WithString("dir", mcp.Description("Restrict to one directory subtree.")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of buckets returned.")),
	), h.handleGetTopDirectories)

	return s
}

// StartMCPServer starts the gitviz MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.StoreManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
