package commands_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/consul-client/cmd/consulctl/commands"
	"github.com/fivetwenty-io/consul-client/pkg/consul"
)

func TestNewKVCommand(t *testing.T) {
	t.Parallel()

	cmd := commands.NewKVCommand()
	assert.Equal(t, "kv", cmd.Use)

	for _, name := range []string{"get", "put", "delete", "keys", "watch"} {
		assert.NotNil(t, findSubcommand(cmd, name), "subcommand %s should exist", name)
	}

	put := findSubcommand(cmd, "put")
	require.NotNil(t, put)

	for _, name := range []string{"file", "flags", "cas", "acquire", "release"} {
		assert.NotNil(t, put.Flags().Lookup(name), "flag %s should exist", name)
	}

	watch := findSubcommand(cmd, "watch")
	require.NotNil(t, watch)
	assert.Equal(t, "consul-kv", watch.Flags().Lookup("nats-bucket").DefValue)
}

func kvServer(t *testing.T) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/kv/app/name" {
			w.WriteHeader(http.StatusNotFound)

			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("X-Consul-Index", "7")

		if r.URL.Query().Has("raw") {
			_, _ = w.Write([]byte("bar"))

			return
		}

		_, _ = w.Write([]byte(`[{"Key":"app/name","Value":"YmFy","Flags":42,"CreateIndex":5,"ModifyIndex":7,"LockIndex":0}]`))
	}))
}

func TestKVGetTable(t *testing.T) {
	server := kvServer(t)
	defer server.Close()

	stdout, _, err := runCLI(t, server, "kv", "get", "app/name")
	require.NoError(t, err)
	assert.Contains(t, stdout, "app/name")
	assert.Contains(t, stdout, "bar")
	assert.Contains(t, stdout, "42")
}

func TestKVGetJSON(t *testing.T) {
	server := kvServer(t)
	defer server.Close()

	stdout, _, err := runCLI(t, server, "kv", "get", "app/name", "--output", "json")
	require.NoError(t, err)

	var pairs []consul.KVPair
	require.NoError(t, json.Unmarshal([]byte(stdout), &pairs))
	require.Len(t, pairs, 1)
	assert.Equal(t, []byte("bar"), pairs[0].Value)
	assert.Equal(t, uint64(7), pairs[0].ModifyIndex)
}

func TestKVGetRaw(t *testing.T) {
	server := kvServer(t)
	defer server.Close()

	stdout, _, err := runCLI(t, server, "kv", "get", "app/name", "--raw")
	require.NoError(t, err)
	assert.Equal(t, "bar", stdout)
}

func TestKVGetMissingKey(t *testing.T) {
	server := kvServer(t)
	defer server.Close()

	_, _, err := runCLI(t, server, "kv", "get", "app/missing")
	require.Error(t, err)
	assert.True(t, consul.IsNotFound(err))
}

func TestKVGetConflictingFlags(t *testing.T) {
	_, _, err := runCLI(t, nil, "kv", "get", "app", "--raw", "--recurse")
	require.ErrorIs(t, err, commands.ErrConflictingFlags)
}

func TestKVPut(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/v1/kv/app/name", r.URL.Path)
		assert.Equal(t, "5", r.URL.Query().Get("cas"))
		assert.False(t, r.URL.Query().Has("flags"))

		body, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		assert.Equal(t, "bar", string(body))

		_, _ = w.Write([]byte("true"))
	}))
	defer server.Close()

	stdout, _, err := runCLI(t, server, "kv", "put", "app/name", "bar", "--cas", "5")
	require.NoError(t, err)
	assert.Equal(t, "Success! Data written to: app/name\n", stdout)
}

func TestKVPutRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("false"))
	}))
	defer server.Close()

	_, _, err := runCLI(t, server, "kv", "put", "app/name", "bar", "--cas", "1")
	require.ErrorIs(t, err, commands.ErrKVWriteRejected)
}

func TestKVKeys(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/kv/app/", r.URL.Path)
		assert.Equal(t, "true", r.URL.Query().Get("keys"))
		assert.Equal(t, "/", r.URL.Query().Get("separator"))

		_, _ = w.Write([]byte(`["app/name","app/nested/"]`))
	}))
	defer server.Close()

	stdout, _, err := runCLI(t, server, "kv", "keys", "app/", "--separator", "/")
	require.NoError(t, err)
	assert.Contains(t, stdout, "app/name")
	assert.Contains(t, stdout, "app/nested/")
}
