package client_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/fivetwenty-io/consul-client/internal/client"
	"github.com/fivetwenty-io/consul-client/pkg/consul"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Parallel()
	t.Run("requires an address", func(t *testing.T) {
		t.Parallel()

		_, err := New(&consul.Config{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "consul address is required")
	})

	t.Run("creates client with token", func(t *testing.T) {
		t.Parallel()

		client, err := New(&consul.Config{Address: "http://127.0.0.1:8500", Token: "test-token"})
		require.NoError(t, err)
		assert.NotNil(t, client)
	})

	t.Run("creates client with TLS settings", func(t *testing.T) {
		t.Parallel()

		client, err := New(&consul.Config{
			Address: "https://consul.example.com:8501",
			TLS:     &consul.TLSConfig{ServerName: "consul.example.com", InsecureSkipVerify: true},
		})
		require.NoError(t, err)
		assert.NotNil(t, client)
	})

	t.Run("fails on a missing CA file", func(t *testing.T) {
		t.Parallel()

		_, err := New(&consul.Config{
			Address: "https://consul.example.com:8501",
			TLS:     &consul.TLSConfig{CACert: "/nonexistent/ca.pem"},
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "configuring TLS")
	})

	t.Run("creates client without authentication", func(t *testing.T) {
		t.Parallel()

		client, err := New(&consul.Config{Address: "consul.service.consul:8500"})
		require.NoError(t, err)
		assert.NotNil(t, client.Engine())
	})
}

func TestClientResources(t *testing.T) {
	t.Parallel()

	client, err := New(&consul.Config{Address: "http://127.0.0.1:8500"})
	require.NoError(t, err)

	assert.NotNil(t, client.Agent())
	assert.NotNil(t, client.Catalog())
	assert.NotNil(t, client.Checks())
	assert.NotNil(t, client.Health())
	assert.NotNil(t, client.KV())
	assert.NotNil(t, client.Services())
	assert.NotNil(t, client.Sessions())
	assert.NotNil(t, client.Snapshots())

	var _ consul.Client = client
}

func TestClientDefaultTransport(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/status/leader", r.URL.Path)
		assert.Equal(t, "dc3", r.URL.Query().Get("dc"))
		assert.Equal(t, "root", r.Header.Get("X-Consul-Token"))
		assert.NotEmpty(t, r.Header.Get("User-Agent"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`"10.0.0.1:8300"`))
	}))
	defer server.Close()

	client, err := New(&consul.Config{Address: server.URL, Token: "root", Datacenter: "dc3"})
	require.NoError(t, err)

	resp, err := Execute[string](context.Background(), client.Engine(),
		consul.NewRequest[string](consul.MethodGet, "status/leader"))
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.1:8300", resp.Payload)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
