package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/consul-client/pkg/consul"
)

func TestHealthClient_Service(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/health/service/web", r.URL.Path)
		assert.Equal(t, "true", r.URL.Query().Get("passing"))

		w.Header().Set("X-Consul-Index", "400")
		w.Header().Set("X-Consul-KnownLeader", "true")
		w.Header().Set("X-Consul-LastContact", "0")
		_, _ = w.Write([]byte(`[{
			"Node": {"Node": "n1", "Address": "10.0.0.1"},
			"Service": {"ID": "web-1", "Service": "web", "Port": 80},
			"Checks": [
				{"Node": "n1", "CheckID": "serfHealth", "Name": "Serf Health Status", "Status": "passing"},
				{"Node": "n1", "CheckID": "service:web-1", "Name": "web", "Status": "warning", "ServiceID": "web-1"}
			]
		}]`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	resp, err := client.Health().Service(context.Background(), &consul.HealthServiceRequest{Service: "web", Passing: true})
	require.NoError(t, err)
	require.Len(t, resp.Payload, 1)

	entry := resp.Payload[0]
	assert.Equal(t, "web-1", entry.Service.ID)
	assert.Equal(t, consul.HealthWarning, entry.Checks.AggregatedStatus())
	require.NotNil(t, resp.KnownLeader)
	assert.True(t, *resp.KnownLeader)
	require.NotNil(t, resp.LastContact)
	assert.Zero(t, *resp.LastContact)
}

func TestHealthClient_Endpoints(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	tests := []struct {
		name string
		url  string
		call func(c *Client) error
	}{
		{"node", "health/node/n1", func(c *Client) error {
			_, err := c.Health().Node(ctx, &consul.HealthNodeRequest{Node: "n1"})
			return err
		}},
		{"checks", "health/checks/web", func(c *Client) error {
			_, err := c.Health().Checks(ctx, &consul.HealthChecksRequest{Service: "web"})
			return err
		}},
		{"connect", "health/connect/web?tag=v1", func(c *Client) error {
			_, err := c.Health().Connect(ctx, &consul.HealthServiceRequest{Service: "web", Tags: []string{"v1"}})
			return err
		}},
		{"ingress", "health/ingress/web", func(c *Client) error {
			_, err := c.Health().Ingress(ctx, &consul.HealthServiceRequest{Service: "web"})
			return err
		}},
		{"state", "health/state/critical?consistent=true", func(c *Client) error {
			_, err := c.Health().State(ctx, &consul.HealthStateRequest{
				State:        consul.HealthCritical,
				QueryOptions: consul.QueryOptions{Consistency: consul.ConsistencyLeader},
			})
			return err
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			stub := &stubTransport{respond: jsonResponse(`[]`, "")}
			client := newStubClient(t, stub)

			require.NoError(t, tt.call(client))
			assert.Equal(t, "GET", stub.last().Method)
			assert.Equal(t, "http://consul.test:8500/v1/"+tt.url, stub.last().URL)
		})
	}
}
