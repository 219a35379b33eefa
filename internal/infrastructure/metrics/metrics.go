package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics はアプリケーションのPrometheusメトリクス
type Metrics struct {
	registry *prometheus.Registry

	httpRequests    *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
	zoneRequests    *prometheus.CounterVec
	zonesReturned   prometheus.Histogram
	cacheHits       *prometheus.CounterVec
	fetchFailures   *prometheus.CounterVec
	anomaliesFound  prometheus.Gauge
	lastAuditUnixTS prometheus.Gauge
}

func NewMetrics() *Metrics {
	m := &Metrics{registry: prometheus.NewRegistry()}

	m.httpRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "vivicity",
		Name:      "http_requests_total",
		Help:      "HTTP requests by route and status",
	}, []string{"method", "route", "status"})
	m.httpDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "vivicity",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route"})
	m.zoneRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "vivicity",
		Name:      "zone_aggregations_total",
		Help:      "Zone aggregations by criterion and precision",
	}, []string{"criterion", "precision"})
	m.zonesReturned = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "vivicity",
		Name:      "zones_per_aggregation",
		Help:      "Number of zone summaries produced per aggregation",
		Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
	})
	m.cacheHits = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "vivicity",
		Name:      "zone_cache_lookups_total",
		Help:      "Zone cache lookups by result",
	}, []string{"result"})
	m.fetchFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "vivicity",
		Name:      "document_fetch_failures_total",
		Help:      "Document store fetch failures by collection",
	}, []string{"collection"})
	m.anomaliesFound = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "vivicity",
		Name:      "audit_anomalous_records",
		Help:      "Records with at least one out-of-range value in the last audit",
	})
	m.lastAuditUnixTS = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "vivicity",
		Name:      "audit_last_run_timestamp_seconds",
		Help:      "Unix timestamp of the last audit run",
	})

	m.registry.MustRegister(
		m.httpRequests,
		m.httpDuration,
		m.zoneRequests,
		m.zonesReturned,
		m.cacheHits,
		m.fetchFailures,
		m.anomaliesFound,
		m.lastAuditUnixTS,
	)
	return m
}

// Handler は /metrics 用のHTTPハンドラーを返す
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry はテスト用にレジストリを返す
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// GinMiddleware はリクエスト数とレイテンシを記録する
func (m *Metrics) GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.httpRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.httpDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}
}

func (m *Metrics) ObserveAggregation(criterion string, precision, zones int) {
	m.zoneRequests.WithLabelValues(criterion, strconv.Itoa(precision)).Inc()
	m.zonesReturned.Observe(float64(zones))
}

func (m *Metrics) ObserveCache(hit bool) {
	if hit {
		m.cacheHits.WithLabelValues("hit").Inc()
		return
	}
	m.cacheHits.WithLabelValues("miss").Inc()
}

func (m *Metrics) ObserveFetchFailure(collection string) {
	m.fetchFailures.WithLabelValues(collection).Inc()
}

func (m *Metrics) ObserveAudit(anomalous int) {
	m.anomaliesFound.Set(float64(anomalous))
	m.lastAuditUnixTS.SetToCurrentTime()
}
