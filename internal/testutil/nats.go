// Package testutil holds helpers shared by tests.
package testutil

import (
	"testing"
	"time"

	"github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/require"
)

// StartEmbeddedNATS starts an embedded NATS server with JetStream enabled on
// a random port. The server and connection are shut down when the test
// completes. It returns the JetStream context and the client URL.
func StartEmbeddedNATS(t *testing.T) (jetstream.JetStream, string) {
	t.Helper()

	opts := &server.Options{
		Host:      "127.0.0.1",
		Port:      -1,
		JetStream: true,
		StoreDir:  t.TempDir(),
	}

	ns, err := server.NewServer(opts)
	require.NoError(t, err, "failed to create NATS server")

	ns.Start()

	if !ns.ReadyForConnections(5 * time.Second) {
		t.Fatal("NATS server not ready for connections")
	}

	nc, err := nats.Connect(ns.ClientURL())
	require.NoError(t, err, "failed to connect to NATS server")

	js, err := jetstream.New(nc)
	require.NoError(t, err, "failed to create JetStream context")

	t.Cleanup(func() {
		nc.Close()
		ns.Shutdown()
	})

	return js, ns.ClientURL()
}
