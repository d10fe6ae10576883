package consulclient_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/consul-client/pkg/consul"
	"github.com/fivetwenty-io/consul-client/pkg/consulclient"
)

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("creates client with config", func(t *testing.T) {
		t.Parallel()

		client, err := consulclient.New(&consul.Config{Address: "http://127.0.0.1:8500"})
		require.NoError(t, err)
		assert.NotNil(t, client)
		assert.NotNil(t, client.KV())
		assert.NotNil(t, client.Health())
	})

	t.Run("rejects invalid address", func(t *testing.T) {
		t.Parallel()

		client, err := consulclient.New(&consul.Config{Address: "ftp://consul"})
		require.Error(t, err)
		assert.Nil(t, client)
		assert.True(t, consul.IsValidationError(err))
		assert.ErrorIs(t, err, consul.ErrInvalidAddress)
	})
}

func TestNewWithAddress(t *testing.T) {
	t.Parallel()

	client, err := consulclient.NewWithAddress("consul.service:8500")
	require.NoError(t, err)
	assert.NotNil(t, client)
}

func TestNewWithToken(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "secret", request.Header.Get("X-Consul-Token"))
		assert.Equal(t, "/v1/agent/self", request.URL.Path)

		writer.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(writer).Encode(consul.AgentConfiguration{
			Config: &consul.AgentConfig{Datacenter: "dc1", NodeName: "agent-one"},
		})
	}))
	defer server.Close()

	client, err := consulclient.NewWithToken(server.URL, "secret")
	require.NoError(t, err)

	resp, err := client.Agent().Self(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "agent-one", resp.Payload.Config.NodeName)
}

func TestExecute(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if request.URL.Path != "/v1/status/peers" {
			writer.WriteHeader(http.StatusNotFound)

			return
		}

		writer.Header().Set("X-Consul-Index", "9")
		_ = json.NewEncoder(writer).Encode([]string{"10.0.0.1:8300", "10.0.0.2:8300"})
	}))
	defer server.Close()

	client, err := consulclient.NewWithAddress(server.URL)
	require.NoError(t, err)

	desc, err := consul.NewRequest[[]string](consul.MethodGet, "status/peers").Build()
	require.NoError(t, err)

	resp, err := consulclient.Execute[[]string](context.Background(), client, desc)
	require.NoError(t, err)
	assert.Len(t, resp.Payload, 2)
	assert.Equal(t, uint64(9), resp.IndexOr(0))
}

type foreignClient struct {
	consul.Client
}

func TestExecute_ForeignClient(t *testing.T) {
	t.Parallel()

	desc, err := consul.NewRequest[[]string](consul.MethodGet, "status/peers").Build()
	require.NoError(t, err)

	_, err = consulclient.Execute[[]string](context.Background(), foreignClient{}, desc)
	require.ErrorIs(t, err, consul.ErrInvalidClientType)
}
