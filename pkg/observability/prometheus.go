package observability

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusHooks records pipeline, cache and publish events as Prometheus
// metrics. It implements [PipelineHooks], [CacheHooks] and [PublishHooks].
type PrometheusHooks struct {
	registry *prometheus.Registry

	loadDuration   *prometheus.HistogramVec
	layoutDuration *prometheus.HistogramVec
	renderDuration *prometheus.HistogramVec
	artifactBytes  *prometheus.CounterVec
	errorsTotal    *prometheus.CounterVec
	cacheEvents    *prometheus.CounterVec
	uploadBytes    *prometheus.CounterVec
	uploadDuration prometheus.Histogram
}

// NewPrometheusHooks creates the metrics and registers them with reg.
func NewPrometheusHooks(reg *prometheus.Registry) *PrometheusHooks {
	h := &PrometheusHooks{
		registry: reg,
		loadDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "surveycharts",
			Name:      "load_duration_seconds",
			Help:      "Time spent loading datasets.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"source"}),
		layoutDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "surveycharts",
			Name:      "layout_duration_seconds",
			Help:      "Time spent laying out charts.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 8),
		}, []string{"chart"}),
		renderDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "surveycharts",
			Name:      "render_duration_seconds",
			Help:      "Time spent encoding charts.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8),
		}, []string{"chart", "format"}),
		artifactBytes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "surveycharts",
			Name:      "artifact_bytes_total",
			Help:      "Bytes of rendered artifacts.",
		}, []string{"chart", "format"}),
		errorsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "surveycharts",
			Name:      "errors_total",
			Help:      "Failed pipeline stages.",
		}, []string{"stage"}),
		cacheEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "surveycharts",
			Name:      "cache_events_total",
			Help:      "Cache hits, misses and writes.",
		}, []string{"key_type", "event"}),
		uploadBytes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "surveycharts",
			Name:      "upload_bytes_total",
			Help:      "Bytes uploaded to object storage.",
		}, []string{"bucket"}),
		uploadDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "surveycharts",
			Name:      "upload_duration_seconds",
			Help:      "Time spent uploading artifacts.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	reg.MustRegister(
		h.loadDuration,
		h.layoutDuration,
		h.renderDuration,
		h.artifactBytes,
		h.errorsTotal,
		h.cacheEvents,
		h.uploadBytes,
		h.uploadDuration,
	)
	return h
}

// Registry returns the registry the metrics were registered with.
func (h *PrometheusHooks) Registry() *prometheus.Registry { return h.registry }

func (h *PrometheusHooks) OnLoadStart(context.Context, string) {}

func (h *PrometheusHooks) OnLoadComplete(_ context.Context, source string, _ int, d time.Duration, err error) {
	h.loadDuration.WithLabelValues(source).Observe(d.Seconds())
	if err != nil {
		h.errorsTotal.WithLabelValues("load").Inc()
	}
}

func (h *PrometheusHooks) OnLayoutStart(context.Context, string, int) {}

func (h *PrometheusHooks) OnLayoutComplete(_ context.Context, chart string, d time.Duration, err error) {
	h.layoutDuration.WithLabelValues(chart).Observe(d.Seconds())
	if err != nil {
		h.errorsTotal.WithLabelValues("layout").Inc()
	}
}

func (h *PrometheusHooks) OnRenderStart(context.Context, string, string) {}

func (h *PrometheusHooks) OnRenderComplete(_ context.Context, chart, format string, size int, d time.Duration, err error) {
	h.renderDuration.WithLabelValues(chart, format).Observe(d.Seconds())
	if err != nil {
		h.errorsTotal.WithLabelValues("render").Inc()
		return
	}
	h.artifactBytes.WithLabelValues(chart, format).Add(float64(size))
}

func (h *PrometheusHooks) OnCacheHit(_ context.Context, keyType string) {
	h.cacheEvents.WithLabelValues(keyType, "hit").Inc()
}

func (h *PrometheusHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.cacheEvents.WithLabelValues(keyType, "miss").Inc()
}

func (h *PrometheusHooks) OnCacheSet(_ context.Context, keyType string, _ int) {
	h.cacheEvents.WithLabelValues(keyType, "set").Inc()
}

func (h *PrometheusHooks) OnUpload(_ context.Context, bucket, _ string, size int, d time.Duration, err error) {
	h.uploadDuration.Observe(d.Seconds())
	if err != nil {
		h.errorsTotal.WithLabelValues("publish").Inc()
		return
	}
	h.uploadBytes.WithLabelValues(bucket).Add(float64(size))
}

// Ensure PrometheusHooks implements all hook interfaces.
var (
	_ PipelineHooks = (*PrometheusHooks)(nil)
	_ CacheHooks    = (*PrometheusHooks)(nil)
	_ PublishHooks  = (*PrometheusHooks)(nil)
)
