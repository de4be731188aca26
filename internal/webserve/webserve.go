// Package webserve exposes loaded snapshots over HTTP for UI consumers:
// a JSON bundle endpoint, a websocket progress stream and a Prometheus
// scrape endpoint, fronted by an LRU cache of recent loads.
package webserve

import (
	"context"
	"errors"
	"net/http"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/akbargherbal/git-viz-sub001/core"
	"github.com/akbargherbal/git-viz-sub001/internal/contract"
	"github.com/akbargherbal/git-viz-sub001/schema"
)

// loadFunc matches core.LoadSnapshot so tests can substitute the pipeline.
type loadFunc func(ctx context.Context, cfg *contract.Config, source contract.DocumentSource, mgr contract.StoreManager, onProgress schema.ProgressFunc) (*schema.Snapshot, error)

// Server serves snapshot bundles for one base configuration. Requests may
// point at other sources via the source query parameter; each resolved
// source keeps one snapshot in the LRU cache.
type Server struct {
	cfg     *contract.Config
	mgr     contract.StoreManager
	cache   *lru.Cache[string, *schema.Snapshot]
	metrics *serveMetrics

	httpServer *http.Server

	load      loadFunc
	newSource func(cfg *contract.Config) contract.DocumentSource
}

// New builds a server bound to the validated config. Nothing listens until
// Start is called.
func New(cfg *contract.Config, mgr contract.StoreManager) (*Server, error) {
	cache, err := lru.New[string, *schema.Snapshot](cfg.ServeCacheSize)
	if err != nil {
		return nil, err
	}

	s := &Server{
		cfg:       cfg,
		mgr:       mgr,
		cache:     cache,
		metrics:   newServeMetrics(),
		load:      core.LoadSnapshot,
		newSource: core.NewDocumentSource,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/snapshot", s.handleSnapshot)
	mux.HandleFunc("/api/progress", s.handleProgress)
	mux.Handle("/metrics", s.metrics.handler())

	s.httpServer = &http.Server{
		Addr:              cfg.ServeAddr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s, nil
}

// Handler returns the route table, mainly for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Start blocks serving requests until Shutdown is called or the listener
// fails. A clean shutdown reports no error.
func (s *Server) Start() error {
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests within the context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// requestConfig clones the base config for one request. An empty raw source
// keeps the base source; anything else resolves under the same rules as the
// CLI positional argument.
func (s *Server) requestConfig(raw string) (*contract.Config, error) {
	cfg := s.cfg.Clone()
	if raw == "" {
		return cfg, nil
	}
	if err := contract.ResolveSource(cfg, raw); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadAndCache returns the snapshot for one resolved config, from cache when
// possible. The boolean reports a cache hit; progress callbacks only fire on
// an actual load.
func (s *Server) loadAndCache(ctx context.Context, reqCfg *contract.Config, onProgress schema.ProgressFunc) (*schema.Snapshot, bool, error) {
	key := reqCfg.SourcePath
	if snapshot, ok := s.cache.Get(key); ok {
		s.metrics.cacheHits.Inc()
		return snapshot, true, nil
	}

	start := time.Now()
	snapshot, err := s.load(ctx, reqCfg, s.newSource(reqCfg), s.mgr, onProgress)
	s.metrics.observeLoad(time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	s.cache.Add(key, snapshot)
	return snapshot, false, nil
}
