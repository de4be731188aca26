// Package outwriter has output and writer logic.
package outwriter

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/akbargherbal/git-viz-sub001/internal/contract"
	"github.com/akbargherbal/git-viz-sub001/schema"
)

// LogLoadHeader prints a concise, 2-line header for each snapshot load.
func LogLoadHeader(cfg *contract.Config) {
	sourceName := cfg.SourcePath
	if cfg.SourceKind == schema.FileSource {
		sourceName = filepath.Base(cfg.SourcePath)
		if sourceName == "" || sourceName == "." {
			sourceName = "current"
		}
	}

	if cfg.UseEmojis {
		// Line 1: The load summary (Source and Kind)
		fmt.Printf("🔎 Source: %s (Kind: %s)\n", sourceName, cfg.SourceKind)
		// Line 2: The fetch budget and cache backend in play
		fmt.Printf("📦 Cache backend: %s (timeout: %v)\n", cfg.CacheBackend, cfg.FetchTimeout)
	} else {
		fmt.Printf("Source: %s (Kind: %s)\n", sourceName, cfg.SourceKind)
		fmt.Printf("Cache backend: %s (timeout: %v)\n", cfg.CacheBackend, cfg.FetchTimeout)
	}
}

// LogExportHeader prints a concise, 2-line header for a document export.
func LogExportHeader(cfg *contract.Config) {
	repoName := filepath.Base(cfg.ExportRepo)
	if repoName == "" || repoName == "." {
		repoName = "current"
	}

	scope := cfg.ExportFilter
	if scope == "" {
		scope = "full repository"
	}

	if cfg.UseEmojis {
		fmt.Printf("🔎 Repo: %s (Scope: %s)\n", repoName, scope)
		fmt.Printf("📦 Output: %s\n", cfg.ExportOut)
	} else {
		fmt.Printf("Repo: %s (Scope: %s)\n", repoName, scope)
		fmt.Printf("Output: %s\n", cfg.ExportOut)
	}
}

// ProgressPrinter returns a callback that reports each load stage on stderr,
// or nil when progress reporting is disabled so the loader skips the calls
// entirely. Stderr keeps the ticks out of redirected result output.
func ProgressPrinter(cfg *contract.Config) schema.ProgressFunc {
	if !cfg.ShowProgress {
		return nil
	}
	return func(ev schema.ProgressEvent) {
		if cfg.UseEmojis {
			fmt.Fprintf(os.Stderr, "⏳ [%d/%d] %s\n", ev.Loaded, ev.Total, ev.Phase)
		} else {
			fmt.Fprintf(os.Stderr, "[%d/%d] %s\n", ev.Loaded, ev.Total, ev.Phase)
		}
	}
}
