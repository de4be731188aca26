package contract

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/akbargherbal/git-viz-sub001/schema"
)

// LocalDocumentSource implements the DocumentSource interface by reading
// exported files from a local directory.
type LocalDocumentSource struct {
	dir string
}

var _ DocumentSource = &LocalDocumentSource{} // Compile-time check

// NewLocalDocumentSource creates a source backed by the given directory.
func NewLocalDocumentSource(dir string) *LocalDocumentSource {
	return &LocalDocumentSource{dir: dir}
}

// Origin implements the DocumentSource interface.
func (s *LocalDocumentSource) Origin() string {
	return s.dir
}

// Fetch implements the DocumentSource interface. Resource names are plain
// file names, so separators are rejected before the name touches the
// filesystem.
func (s *LocalDocumentSource) Fetch(ctx context.Context, resource string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.ContainsAny(resource, `/\`) {
		return nil, fmt.Errorf("resource name %q must not contain path separators", resource)
	}
	data, err := os.ReadFile(filepath.Join(s.dir, resource))
	if err != nil {
		return nil, fmt.Errorf("read %s from %s: %w", resource, s.dir, err)
	}
	return data, nil
}

// Stamp implements the DocumentSource interface. The stamp digests the size
// and mtime of every known resource file, so editing any of them invalidates
// previously cached documents.
func (s *LocalDocumentSource) Stamp(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	h := sha256.New()
	for _, resource := range schema.AllResources {
		info, err := os.Stat(filepath.Join(s.dir, resource))
		if err != nil {
			continue // Missing files surface later as fetch errors
		}
		_, _ = fmt.Fprintf(h, "%s|%d|%d\n", resource, info.Size(), info.ModTime().UnixNano())
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
