package webserve

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// serveMetrics carries the scrape counters for one server. Each server owns
// an independent registry so repeated construction never trips duplicate
// collector registration.
type serveMetrics struct {
	registry    *prometheus.Registry
	loadsTotal  *prometheus.CounterVec
	cacheHits   prometheus.Counter
	loadSeconds prometheus.Histogram
}

func newServeMetrics() *serveMetrics {
	m := &serveMetrics{
		registry: prometheus.NewRegistry(),
		loadsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gitviz",
			Subsystem: "serve",
			Name:      "loads_total",
			Help:      "Snapshot loads by outcome.",
		}, []string{"status"}),
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "gitviz",
			Subsystem: "serve",
			Name:      "cache_hits_total",
			Help:      "Snapshot requests answered from the LRU cache.",
		}),
		loadSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "gitviz",
			Subsystem: "serve",
			Name:      "load_duration_seconds",
			Help:      "Wall time of successful snapshot loads.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	m.registry.MustRegister(m.loadsTotal, m.cacheHits, m.loadSeconds)
	return m
}

// observeLoad records one load attempt and its duration when it succeeded.
func (m *serveMetrics) observeLoad(took time.Duration, err error) {
	if err != nil {
		m.loadsTotal.WithLabelValues("error").Inc()
		return
	}
	m.loadsTotal.WithLabelValues("ok").Inc()
	m.loadSeconds.Observe(took.Seconds())
}

// handler serves the scrape endpoint for this server's registry.
func (m *serveMetrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
