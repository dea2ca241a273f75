package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"greenscore/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_RecomputeCounters(t *testing.T) {
	m := New(config.MetricsConfig{Namespace: "test"})

	m.RecomputeDone("manual", time.Now(), nil)
	m.RecomputeDone("manual", time.Now(), nil)
	m.RecomputeDone("import", time.Now(), errors.New("boom"))
	m.ImportedRows(3)

	body := scrape(t, m)
	assert.Contains(t, body, `test_score_recomputations_total{status="ok",trigger="manual"} 2`)
	assert.Contains(t, body, `test_score_recomputations_total{status="error",trigger="import"} 1`)
	assert.Contains(t, body, `test_import_rows_total 3`)
}

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	return w.Body.String()
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecomputeDone("manual", time.Now(), nil)
		m.ImportedRows(1)
	})
}

func TestMetrics_MiddlewareAndHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := New(config.MetricsConfig{Namespace: "test"})

	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	r.GET("/metrics", gin.WrapH(m.Handler()))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.True(t, strings.Contains(body, `test_http_requests_total{method="GET",route="/ping",status="200"} 1`))
}
