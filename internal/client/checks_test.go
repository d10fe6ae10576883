package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/consul-client/pkg/consul"
)

func TestChecksClient_List(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/agent/checks", r.URL.Path)
		assert.Equal(t, `Status == "critical"`, r.URL.Query().Get("filter"))

		_ = json.NewEncoder(w).Encode(map[string]consul.AgentCheck{
			"service:web": {CheckID: "service:web", Name: "web health", Status: consul.HealthCritical, ServiceID: "web"},
		})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	resp, err := client.Checks().List(context.Background(), &consul.CheckListRequest{
		QueryOptions: consul.QueryOptions{Filter: `Status == "critical"`},
	})
	require.NoError(t, err)
	require.Contains(t, resp.Payload, "service:web")
	assert.Equal(t, consul.HealthCritical, resp.Payload["service:web"].Status)
}

func TestChecksClient_Register(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/agent/check/register", r.URL.Path)
		assert.Equal(t, "PUT", r.Method)

		var body map[string]interface{}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "mem", body["Name"])
		assert.Equal(t, "30s", body["TTL"])
		assert.Equal(t, "mem-check", body["ID"])

		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	_, err := client.Checks().Register(context.Background(), &consul.CheckRegisterRequest{
		Check: consul.AgentCheckRegistration{
			ID:                "mem-check",
			AgentServiceCheck: consul.AgentServiceCheck{Name: "mem", TTL: "30s"},
		},
	})
	require.NoError(t, err)
}

func TestChecksClient_TTL(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	stub := &stubTransport{respond: jsonResponse(``, "")}
	client := newStubClient(t, stub)

	req := &consul.CheckTTLRequest{CheckID: "mem-check", Note: "all good"}

	_, err := client.Checks().Pass(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "http://consul.test:8500/v1/agent/check/pass/mem-check?note=all+good", stub.last().URL)

	_, err = client.Checks().Warn(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "http://consul.test:8500/v1/agent/check/warn/mem-check?note=all+good", stub.last().URL)

	_, err = client.Checks().Fail(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "http://consul.test:8500/v1/agent/check/fail/mem-check?note=all+good", stub.last().URL)

	assert.Empty(t, req.Status)
}

func TestChecksClient_Update(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	stub := &stubTransport{respond: jsonResponse(``, "")}
	client := newStubClient(t, stub)

	_, err := client.Checks().Update(ctx, &consul.CheckUpdateRequest{CheckID: "mem-check", Status: consul.HealthWarning, Output: "75%"})
	require.NoError(t, err)
	assert.Equal(t, "http://consul.test:8500/v1/agent/check/update/mem-check", stub.last().URL)
	assert.JSONEq(t, `{"Status":"warning","Output":"75%"}`, string(stub.last().Body))

	_, err = client.Checks().Update(ctx, &consul.CheckUpdateRequest{CheckID: "mem-check", Status: "broken"})
	require.ErrorIs(t, err, consul.ErrInvalidCheckStatus)
	assert.Equal(t, 1, stub.calls())
}

func TestChecksClient_Deregister(t *testing.T) {
	t.Parallel()

	stub := &stubTransport{respond: jsonResponse(``, "")}
	client := newStubClient(t, stub)

	_, err := client.Checks().Deregister(context.Background(), &consul.CheckDeregisterRequest{CheckID: "service:web"})
	require.NoError(t, err)
	assert.Equal(t, "PUT", stub.last().Method)
	assert.Equal(t, "http://consul.test:8500/v1/agent/check/deregister/service:web", stub.last().URL)
}
