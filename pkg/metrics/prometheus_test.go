package metrics_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/consul-client/pkg/consul"
	"github.com/fivetwenty-io/consul-client/pkg/consulclient"
	"github.com/fivetwenty-io/consul-client/pkg/metrics"
)

func TestPrometheusMetrics_Records(t *testing.T) {
	t.Parallel()

	registry := prometheus.NewRegistry()
	collector := metrics.NewPrometheusMetricsWithRegistry(registry)

	collector.ObserveRequest("GET", "kv/{key}", 200, 25*time.Millisecond)
	collector.ObserveRequest("GET", "kv/{key}", 200, 30*time.Millisecond)
	collector.ObserveRequest("GET", "kv/{key}", 404, time.Millisecond)
	collector.IncError("GET", "kv/{key}", consul.KindAPI)

	count, err := testutil.GatherAndCount(registry,
		"consul_client_requests_total",
		"consul_client_request_duration_seconds",
		"consul_client_errors_total",
	)
	require.NoError(t, err)
	assert.Equal(t, 4, count)
}

func TestPrometheusMetrics_NilReceiver(t *testing.T) {
	t.Parallel()

	var collector *metrics.PrometheusMetrics

	assert.NotPanics(t, func() {
		collector.ObserveRequest("GET", "kv/{key}", 200, time.Second)
		collector.IncError("GET", "kv/{key}", consul.KindConnection)
	})
}

func TestPrometheusMetrics_WiredIntoClient(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if request.URL.Path == "/v1/kv/missing" {
			writer.WriteHeader(http.StatusNotFound)

			return
		}

		_, _ = writer.Write([]byte(`[{"Key":"present","Value":"dg=="}]`))
	}))
	defer server.Close()

	registry := prometheus.NewRegistry()

	client, err := consulclient.New(&consul.Config{
		Address: server.URL,
		Metrics: metrics.NewPrometheusMetricsWithRegistry(registry),
	})
	require.NoError(t, err)

	_, err = client.KV().Read(context.Background(), &consul.KVReadRequest{Key: "present"})
	require.NoError(t, err)

	_, err = client.KV().Read(context.Background(), &consul.KVReadRequest{Key: "missing"})
	require.True(t, consul.IsNotFound(err))

	expected := `
# HELP consul_client_errors_total Total number of failed Consul API calls by error kind
# TYPE consul_client_errors_total counter
consul_client_errors_total{endpoint="kv/{key}",kind="api",method="GET"} 1
# HELP consul_client_requests_total Total number of Consul API responses received
# TYPE consul_client_requests_total counter
consul_client_requests_total{endpoint="kv/{key}",method="GET",status_code="200"} 1
consul_client_requests_total{endpoint="kv/{key}",method="GET",status_code="404"} 1
`
	require.NoError(t, testutil.GatherAndCompare(registry, strings.NewReader(expected),
		"consul_client_requests_total", "consul_client_errors_total"))
}
