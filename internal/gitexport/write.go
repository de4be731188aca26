package gitexport

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/akbargherbal/git-viz-sub001/schema"
)

// WriteDocuments persists the document set into outDir under the standard
// resource names and returns the written paths in fetch order. The directory
// is created when missing so `gitviz export --export-out new-dir` just works.
func WriteDocuments(docs *schema.DocumentSet, outDir string) ([]string, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir %q: %w", outDir, err)
	}

	documents := []struct {
		resource string
		payload  any
	}{
		{schema.ResourceLifecycle, docs.Lifecycle},
		{schema.ResourceAuthorNetwork, docs.AuthorNetwork},
		{schema.ResourceFileIndex, docs.FileIndex},
		{schema.ResourceDirStats, docs.DirStats},
	}

	written := make([]string, 0, len(documents))
	for _, doc := range documents {
		path, err := writeDocument(outDir, doc.resource, doc.payload)
		if err != nil {
			return nil, err
		}
		written = append(written, path)
	}
	return written, nil
}

// writeDocument marshals one document as indented JSON and writes it atomically
// enough for a CLI: full payload in memory, single WriteFile call.
func writeDocument(outDir, resource string, payload any) (string, error) {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal %s: %w", resource, err)
	}
	data = append(data, '\n')

	path := filepath.Join(outDir, resource)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", resource, err)
	}
	return path, nil
}
