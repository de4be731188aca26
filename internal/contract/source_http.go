package contract

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/akbargherbal/git-viz-sub001/schema"
)

// HTTPDocumentSource implements the DocumentSource interface by fetching
// exported files from an HTTP base URL.
type HTTPDocumentSource struct {
	base   string
	client *http.Client
}

var _ DocumentSource = &HTTPDocumentSource{} // Compile-time check

// NewHTTPDocumentSource creates a source backed by an HTTP base URL.
// A nil client falls back to http.DefaultClient.
func NewHTTPDocumentSource(base string, client *http.Client) *HTTPDocumentSource {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPDocumentSource{base: strings.TrimRight(base, "/"), client: client}
}

// Origin implements the DocumentSource interface.
func (s *HTTPDocumentSource) Origin() string {
	return s.base
}

// Fetch implements the DocumentSource interface.
func (s *HTTPDocumentSource) Fetch(ctx context.Context, resource string) ([]byte, error) {
	url := s.base + "/" + resource
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: unexpected status %s", url, resp.Status)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	return data, nil
}

// Stamp implements the DocumentSource interface. It reads the HTTP
// validators of the lifecycle document, which changes whenever the export
// is regenerated. An endpoint without validators yields an empty stamp and
// effectively disables caching.
func (s *HTTPDocumentSource) Stamp(ctx context.Context) (string, error) {
	url := s.base + "/" + schema.ResourceLifecycle
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return "", err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()
	if etag := resp.Header.Get("ETag"); etag != "" {
		return etag, nil
	}
	return resp.Header.Get("Last-Modified"), nil
}
