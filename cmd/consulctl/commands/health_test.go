package commands_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/consul-client/cmd/consulctl/commands"
	"github.com/fivetwenty-io/consul-client/pkg/consul"
)

func TestNewHealthCommand(t *testing.T) {
	t.Parallel()

	cmd := commands.NewHealthCommand()
	assert.Equal(t, "health", cmd.Use)

	for _, name := range []string{"node", "checks", "service", "state"} {
		assert.NotNil(t, findSubcommand(cmd, name), "subcommand %s should exist", name)
	}

	service := findSubcommand(cmd, "service")
	require.NotNil(t, service)

	for _, name := range []string{"tag", "passing", "connect", "ingress", "consistency", "filter", "near", "cached"} {
		assert.NotNil(t, service.Flags().Lookup(name), "flag %s should exist", name)
	}
}

func TestHealthServiceTable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/health/service/web", r.URL.Path)
		assert.Equal(t, "true", r.URL.Query().Get("passing"))
		assert.Equal(t, []string{"v1"}, r.URL.Query()["tag"])

		_, _ = w.Write([]byte(`[{
			"Node": {"Node": "node-1", "Address": "10.0.0.1"},
			"Service": {"ID": "web-1", "Service": "web", "Address": "10.0.0.10", "Port": 8080},
			"Checks": [
				{"CheckID": "serfHealth", "Status": "passing"},
				{"CheckID": "service:web-1", "Status": "passing"}
			]
		}]`))
	}))
	defer server.Close()

	stdout, _, err := runCLI(t, server, "health", "service", "web", "--passing", "--tag", "v1")
	require.NoError(t, err)
	assert.Contains(t, stdout, "node-1")
	assert.Contains(t, stdout, "web-1")
	assert.Contains(t, stdout, "10.0.0.10")
	assert.Contains(t, stdout, "8080")
	assert.Contains(t, stdout, "Passing")
}

func TestHealthServiceConflictingFlags(t *testing.T) {
	_, _, err := runCLI(t, nil, "health", "service", "web", "--connect", "--ingress")
	require.ErrorIs(t, err, commands.ErrConflictingFlags)
}

func TestHealthStateRejectsUnknownState(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request to %s", r.URL.Path)
	}))
	defer server.Close()

	_, _, err := runCLI(t, server, "health", "state", "sleepy")
	require.Error(t, err)
	assert.True(t, consul.IsValidationError(err))
}
