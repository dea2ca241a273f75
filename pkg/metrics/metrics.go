package metrics

import (
	"net/http"
	"strconv"
	"time"

	"greenscore/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the service's prometheus collectors. A nil *Metrics is a no-op.
type Metrics struct {
	registry     *prometheus.Registry
	httpReqCnt   *prometheus.CounterVec
	httpDur      *prometheus.HistogramVec
	httpInfl     *prometheus.GaugeVec
	recomputes   *prometheus.CounterVec
	recomputeDur *prometheus.HistogramVec
	importRows   prometheus.Counter
}

func New(cfg config.MetricsConfig) *Metrics {
	ns := cfg.Namespace
	buckets := cfg.Buckets
	if len(buckets) == 0 {
		buckets = prometheus.DefBuckets
	}

	r := prometheus.NewRegistry()
	r.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	r.MustRegister(collectors.NewGoCollector())

	httpReqCnt := prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: ns, Name: "http_requests_total"}, []string{"method", "route", "status"})
	httpDur := prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: ns, Name: "http_request_duration_seconds", Buckets: buckets}, []string{"method", "route", "status"})
	httpInfl := prometheus.NewGaugeVec(prometheus.GaugeOpts{Namespace: ns, Name: "http_requests_inflight"}, []string{"route"})
	r.MustRegister(httpReqCnt, httpDur, httpInfl)

	recomputes := prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: ns, Name: "score_recomputations_total"}, []string{"trigger", "status"})
	recomputeDur := prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: ns, Name: "score_recomputation_duration_seconds", Buckets: buckets}, []string{"trigger"})
	importRows := prometheus.NewCounter(prometheus.CounterOpts{Namespace: ns, Name: "import_rows_total"})
	r.MustRegister(recomputes, recomputeDur, importRows)

	return &Metrics{
		registry:     r,
		httpReqCnt:   httpReqCnt,
		httpDur:      httpDur,
		httpInfl:     httpInfl,
		recomputes:   recomputes,
		recomputeDur: recomputeDur,
		importRows:   importRows,
	}
}

// RecomputeDone records one bucket recomputation
func (m *Metrics) RecomputeDone(trigger string, since time.Time, err error) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.recomputes.WithLabelValues(trigger, status).Inc()
	m.recomputeDur.WithLabelValues(trigger).Observe(time.Since(since).Seconds())
}

// ImportedRows counts spreadsheet rows written
func (m *Metrics) ImportedRows(n int) {
	if m == nil {
		return
	}
	m.importRows.Add(float64(n))
}

func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.httpInfl.WithLabelValues(route).Inc()
		start := time.Now()
		c.Next()
		status := strconv.Itoa(c.Writer.Status())
		m.httpReqCnt.WithLabelValues(c.Request.Method, route, status).Inc()
		m.httpDur.WithLabelValues(c.Request.Method, route, status).Observe(time.Since(start).Seconds())
		m.httpInfl.WithLabelValues(route).Dec()
	}
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
