package observability

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PrometheusHooks implements all hook interfaces with Prometheus metrics.
type PrometheusHooks struct {
	layoutsTotal    *prometheus.CounterVec
	layoutDuration  prometheus.Histogram
	layoutItems     prometheus.Histogram
	layoutGroups    prometheus.Histogram
	rendersTotal    *prometheus.CounterVec
	renderDuration  *prometheus.HistogramVec
	cacheOpsTotal   *prometheus.CounterVec
	cacheBytesTotal *prometheus.CounterVec
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	inFlight        prometheus.Gauge
}

// NewPrometheusHooks creates the metrics and registers them with reg.
func NewPrometheusHooks(reg prometheus.Registerer) *PrometheusHooks {
	f := promauto.With(reg)
	return &PrometheusHooks{
		layoutsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hexmap_layouts_total",
				Help: "Total number of layouts computed, by status",
			},
			[]string{"status"},
		),
		layoutDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "hexmap_layout_duration_seconds",
			Help:    "Time spent computing layouts",
			Buckets: prometheus.DefBuckets,
		}),
		layoutItems: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "hexmap_layout_items",
			Help:    "Item count of computed layouts",
			Buckets: prometheus.ExponentialBuckets(1, 4, 10),
		}),
		layoutGroups: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "hexmap_layout_groups",
			Help:    "Group count of computed layouts",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		}),
		rendersTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hexmap_renders_total",
				Help: "Total number of render passes, by formats and status",
			},
			[]string{"formats", "status"},
		),
		renderDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "hexmap_render_duration_seconds",
				Help:    "Time spent rendering artifacts",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"formats"},
		),
		cacheOpsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hexmap_cache_operations_total",
				Help: "Cache lookups and writes, by key type and result",
			},
			[]string{"key_type", "result"},
		),
		cacheBytesTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hexmap_cache_written_bytes_total",
				Help: "Bytes written to the cache, by key type",
			},
			[]string{"key_type"},
		),
		requestsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hexmap_http_requests_total",
				Help: "HTTP requests served, by method, route and status code",
			},
			[]string{"method", "route", "code"},
		),
		requestDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "hexmap_http_request_duration_seconds",
				Help:    "HTTP request latency",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		inFlight: f.NewGauge(prometheus.GaugeOpts{
			Name: "hexmap_http_requests_in_flight",
			Help: "HTTP requests currently being served",
		}),
	}
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

// OnLayoutStart implements PipelineHooks.
func (p *PrometheusHooks) OnLayoutStart(context.Context, int) {}

// OnLayoutComplete implements PipelineHooks.
func (p *PrometheusHooks) OnLayoutComplete(_ context.Context, items, groups int, d time.Duration, err error) {
	p.layoutsTotal.WithLabelValues(status(err)).Inc()
	if err != nil {
		return
	}
	p.layoutDuration.Observe(d.Seconds())
	p.layoutItems.Observe(float64(items))
	p.layoutGroups.Observe(float64(groups))
}

// OnRenderStart implements PipelineHooks.
func (p *PrometheusHooks) OnRenderStart(context.Context, []string) {}

// OnRenderComplete implements PipelineHooks.
func (p *PrometheusHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	f := strings.Join(formats, ",")
	p.rendersTotal.WithLabelValues(f, status(err)).Inc()
	p.renderDuration.WithLabelValues(f).Observe(d.Seconds())
}

// OnCacheHit implements CacheHooks.
func (p *PrometheusHooks) OnCacheHit(_ context.Context, keyType string) {
	p.cacheOpsTotal.WithLabelValues(keyType, "hit").Inc()
}

// OnCacheMiss implements CacheHooks.
func (p *PrometheusHooks) OnCacheMiss(_ context.Context, keyType string) {
	p.cacheOpsTotal.WithLabelValues(keyType, "miss").Inc()
}

// OnCacheSet implements CacheHooks.
func (p *PrometheusHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	p.cacheOpsTotal.WithLabelValues(keyType, "set").Inc()
	p.cacheBytesTotal.WithLabelValues(keyType).Add(float64(size))
}

// OnRequest implements HTTPHooks.
func (p *PrometheusHooks) OnRequest(context.Context, string, string) {
	p.inFlight.Inc()
}

// OnResponse implements HTTPHooks.
func (p *PrometheusHooks) OnResponse(_ context.Context, method, route string, code int, d time.Duration) {
	p.inFlight.Dec()
	p.requestsTotal.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
	p.requestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

var (
	_ PipelineHooks = (*PrometheusHooks)(nil)
	_ CacheHooks    = (*PrometheusHooks)(nil)
	_ HTTPHooks     = (*PrometheusHooks)(nil)
)
