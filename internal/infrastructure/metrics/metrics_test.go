package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Observe(t *testing.T) {
	m := NewMetrics()

	m.ObserveCache(true)
	m.ObserveCache(false)
	m.ObserveCache(false)
	m.ObserveAggregation("note", 3, 12)
	m.ObserveFetchFailure("avis")
	m.ObserveAudit(4)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.cacheHits.WithLabelValues("hit")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.cacheHits.WithLabelValues("miss")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.zoneRequests.WithLabelValues("note", "3")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.fetchFailures.WithLabelValues("avis")))
	assert.Equal(t, 4.0, testutil.ToFloat64(m.anomaliesFound))
}

func TestMetrics_GinMiddlewareAndHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := NewMetrics()

	r := gin.New()
	r.Use(m.GinMiddleware())
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	r.GET("/metrics", gin.WrapH(m.Handler()))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "/ping", "200")))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "vivicity_http_requests_total"))
}
