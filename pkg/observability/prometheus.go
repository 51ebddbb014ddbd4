package observability

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "arbor"

// PrometheusHooks records every hook event as a Prometheus metric on its
// own registry. It implements MatchHooks, CacheHooks and ProofHooks.
type PrometheusHooks struct {
	registry *prometheus.Registry

	loadDuration  *prometheus.HistogramVec
	graphVertices prometheus.Histogram
	matchDuration *prometheus.HistogramVec
	matchesTotal  *prometheus.CounterVec
	cacheEvents   *prometheus.CounterVec
	cacheBytes    prometheus.Counter
	proofRounds   *prometheus.CounterVec
}

// NewPrometheusHooks creates the metrics on a fresh registry.
func NewPrometheusHooks() *PrometheusHooks {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	return &PrometheusHooks{
		registry: reg,

		// loadDuration measures how long reading and validating a file takes.
		// Labels: status (ok, error)
		loadDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: "load",
			Name:      "duration_seconds",
			Help:      "Time to read and validate an input file",
			Buckets:   prometheus.DefBuckets,
		}, []string{"status"}),

		graphVertices: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: "load",
			Name:      "vertices",
			Help:      "Vertex count of loaded graphs",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		}),

		// matchDuration measures engine time per match.
		// Labels: result (isomorphic, distinct, error)
		matchDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: "match",
			Name:      "duration_seconds",
			Help:      "Time to decide isomorphism and build a mapping",
			Buckets:   []float64{0.0001, 0.001, 0.01, 0.1, 0.5, 1, 5, 30},
		}, []string{"result"}),

		matchesTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "match",
			Name:      "total",
			Help:      "Total match attempts by result",
		}, []string{"result"}),

		// cacheEvents counts cache lookups and writes.
		// Labels: key_type (match, profile), event (hit, miss, set)
		cacheEvents: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "cache",
			Name:      "events_total",
			Help:      "Cache events by key type",
		}, []string{"key_type", "event"}),

		cacheBytes: f.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "cache",
			Name:      "written_bytes_total",
			Help:      "Bytes written to the cache",
		}),

		// proofRounds counts answered challenge bits.
		// Labels: bit (0, 1), accepted (true, false)
		proofRounds: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "proof",
			Name:      "rounds_total",
			Help:      "Proof rounds by challenge bit and verdict",
		}, []string{"bit", "accepted"}),
	}
}

// Registry returns the registry holding all metrics.
func (h *PrometheusHooks) Registry() *prometheus.Registry { return h.registry }

// WriteTextfile writes the current metrics in the text exposition format,
// for pickup by the node_exporter textfile collector.
func (h *PrometheusHooks) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, h.registry); err != nil {
		return fmt.Errorf("write metrics: %w", err)
	}
	return nil
}

func (h *PrometheusHooks) OnLoadComplete(_ context.Context, _ string, vertices, _ int, d time.Duration, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	} else {
		h.graphVertices.Observe(float64(vertices))
	}
	h.loadDuration.WithLabelValues(status).Observe(d.Seconds())
}

func (h *PrometheusHooks) OnMatchStart(context.Context, int) {}

func (h *PrometheusHooks) OnMatchComplete(_ context.Context, _ int, isomorphic bool, d time.Duration, err error) {
	result := matchResult(isomorphic, err)
	h.matchDuration.WithLabelValues(result).Observe(d.Seconds())
	h.matchesTotal.WithLabelValues(result).Inc()
}

func (h *PrometheusHooks) OnCacheHit(_ context.Context, keyType string) {
	h.cacheEvents.WithLabelValues(keyType, "hit").Inc()
}

func (h *PrometheusHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.cacheEvents.WithLabelValues(keyType, "miss").Inc()
}

func (h *PrometheusHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.cacheEvents.WithLabelValues(keyType, "set").Inc()
	h.cacheBytes.Add(float64(size))
}

func (h *PrometheusHooks) OnRound(_ context.Context, bit uint, accepted bool) {
	h.proofRounds.WithLabelValues(strconv.FormatUint(uint64(bit), 10), strconv.FormatBool(accepted)).Inc()
}

func matchResult(isomorphic bool, err error) string {
	switch {
	case err != nil:
		return "error"
	case isomorphic:
		return "isomorphic"
	default:
		return "distinct"
	}
}

var (
	_ MatchHooks = (*PrometheusHooks)(nil)
	_ CacheHooks = (*PrometheusHooks)(nil)
	_ ProofHooks = (*PrometheusHooks)(nil)
)
