package client

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/consul-client/pkg/consul"
)

func TestSnapshotsClient_Save(t *testing.T) {
	t.Parallel()

	archive := []byte{0x1f, 0x8b, 0x08, 0x00}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/snapshot", r.URL.Path)
		assert.Equal(t, "GET", r.Method)
		assert.Equal(t, "acl-token", r.Header.Get("X-Consul-Token"))

		w.Header().Set("X-Consul-Index", "1024")
		_, _ = w.Write(archive)
	}))
	defer server.Close()

	client, err := New(&consul.Config{Address: server.URL, Token: "acl-token"})
	require.NoError(t, err)

	resp, err := client.Snapshots().Save(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, archive, resp.Payload)
	assert.Equal(t, uint64(1024), resp.IndexOr(0))
}

func TestSnapshotsClient_Restore(t *testing.T) {
	t.Parallel()

	archive := []byte{0x1f, 0x8b, 0x08, 0x00}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/snapshot", r.URL.Path)
		assert.Equal(t, "PUT", r.Method)
		assert.Equal(t, "application/octet-stream", r.Header.Get("Content-Type"))

		body, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		assert.Equal(t, archive, body)

		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	_, err := client.Snapshots().Restore(context.Background(), &consul.SnapshotRestoreRequest{Snapshot: archive})
	require.NoError(t, err)
}
