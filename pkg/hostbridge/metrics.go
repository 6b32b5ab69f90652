package hostbridge

import (
	"net/http"
	"strconv"
	"time"

	"github.com/germanamz/abacus/pkg/calculator"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	resultOK       = "ok"
	resultRejected = "rejected"
)

// metrics uses a private registry so several servers can coexist in one
// process.
type metrics struct {
	registry *prometheus.Registry
	actions  *prometheus.CounterVec
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	clients  prometheus.Gauge
}

func newMetrics() *metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &metrics{
		registry: reg,
		actions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "abacus_actions_total",
				Help: "Calculator actions by kind and outcome",
			},
			[]string{"kind", "result"},
		),
		requests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "abacus_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		duration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "abacus_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		clients: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "abacus_websocket_clients",
				Help: "Number of connected websocket clients",
			},
		),
	}
}

func (m *metrics) observeAction(a calculator.Action, err error) {
	result := resultOK
	if err != nil {
		result = resultRejected
	}
	m.actions.WithLabelValues(string(a.Kind), result).Inc()
}

func (m *metrics) middleware(c *gin.Context) {
	if c.Request.URL.Path == "/metrics" {
		c.Next()
		return
	}

	start := time.Now()

	c.Next()

	path := c.FullPath()
	if path == "" {
		path = "unknown"
	}
	m.requests.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
	m.duration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
}

func (m *metrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
