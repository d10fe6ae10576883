// Package metrics provides a Prometheus implementation of consul.Metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/fivetwenty-io/consul-client/pkg/consul"
)

// Namespace prefixes every metric name.
const Namespace = "consul_client"

// PrometheusMetrics records request counts, durations and errors of the
// Consul client. It is safe for concurrent use.
type PrometheusMetrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	errorsTotal     *prometheus.CounterVec
}

var _ consul.Metrics = (*PrometheusMetrics)(nil)

// NewPrometheusMetrics registers the client metrics on the default registerer.
func NewPrometheusMetrics() *PrometheusMetrics {
	return NewPrometheusMetricsWithRegistry(prometheus.DefaultRegisterer)
}

// NewPrometheusMetricsWithRegistry registers the client metrics on registry.
// Registering twice on the same registry panics.
func NewPrometheusMetricsWithRegistry(registry prometheus.Registerer) *PrometheusMetrics {
	factory := promauto.With(registry)

	return &PrometheusMetrics{
		requestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "requests_total",
				Help:      "Total number of Consul API responses received",
			},
			[]string{"method", "endpoint", "status_code"},
		),
		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: Namespace,
				Name:      "request_duration_seconds",
				Help:      "Duration of Consul API round-trips in seconds, blocking queries included",
				Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60, 300, 600},
			},
			[]string{"method", "endpoint"},
		),
		errorsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "errors_total",
				Help:      "Total number of failed Consul API calls by error kind",
			},
			[]string{"method", "endpoint", "kind"},
		),
	}
}

// ObserveRequest implements consul.Metrics.
func (m *PrometheusMetrics) ObserveRequest(method, endpoint string, statusCode int, duration time.Duration) {
	if m == nil {
		return
	}

	m.requestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(statusCode)).Inc()
	m.requestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// IncError implements consul.Metrics.
func (m *PrometheusMetrics) IncError(method, endpoint, kind string) {
	if m == nil {
		return
	}

	m.errorsTotal.WithLabelValues(method, endpoint, kind).Inc()
}
