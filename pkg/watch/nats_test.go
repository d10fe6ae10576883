package watch_test

import (
	"context"
	"testing"

	"github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/consul-client/internal/testutil"
	"github.com/fivetwenty-io/consul-client/pkg/consul"
	"github.com/fivetwenty-io/consul-client/pkg/watch"
)

func TestNATSKVSink_PutAndDelete(t *testing.T) {
	js, _ := testutil.StartEmbeddedNATS(t)
	ctx := context.Background()

	sink, err := watch.NewNATSKVSinkFromJetStream(ctx, js, "consul-mirror")
	require.NoError(t, err)
	defer sink.Close()

	require.NoError(t, sink.Put(ctx, consul.KVPair{Key: "config/web/port", Value: []byte("8080")}))
	require.NoError(t, sink.Put(ctx, consul.KVPair{Key: "config/web name", Value: []byte("frontend")}))

	kv, err := js.KeyValue(ctx, "consul-mirror")
	require.NoError(t, err)

	entry, err := kv.Get(ctx, "config/web/port")
	require.NoError(t, err)
	assert.Equal(t, []byte("8080"), entry.Value())

	entry, err = kv.Get(ctx, "config/web_name")
	require.NoError(t, err)
	assert.Equal(t, []byte("frontend"), entry.Value())

	require.NoError(t, sink.Delete(ctx, "config/web/port"))

	_, err = kv.Get(ctx, "config/web/port")
	require.ErrorIs(t, err, jetstream.ErrKeyNotFound)
}

func TestNATSKVSink_CollapsesEmptyTokens(t *testing.T) {
	js, _ := testutil.StartEmbeddedNATS(t)
	ctx := context.Background()

	sink, err := watch.NewNATSKVSinkFromJetStream(ctx, js, "consul-tokens")
	require.NoError(t, err)
	defer sink.Close()

	require.NoError(t, sink.Put(ctx, consul.KVPair{Key: "a..b", Value: []byte("1")}))
	require.NoError(t, sink.Put(ctx, consul.KVPair{Key: ".cfg...web.", Value: []byte("2")}))

	kv, err := js.KeyValue(ctx, "consul-tokens")
	require.NoError(t, err)

	entry, err := kv.Get(ctx, "a.b")
	require.NoError(t, err)
	assert.Equal(t, []byte("1"), entry.Value())

	entry, err = kv.Get(ctx, "cfg.web")
	require.NoError(t, err)
	assert.Equal(t, []byte("2"), entry.Value())

	require.NoError(t, sink.Delete(ctx, "a..b"))

	_, err = kv.Get(ctx, "a.b")
	require.ErrorIs(t, err, jetstream.ErrKeyNotFound)
}

func TestNATSKVSink_RejectsUnmappableKey(t *testing.T) {
	js, _ := testutil.StartEmbeddedNATS(t)
	ctx := context.Background()

	sink, err := watch.NewNATSKVSinkFromJetStream(ctx, js, "consul-keys")
	require.NoError(t, err)

	err = sink.Put(ctx, consul.KVPair{Key: "...", Value: []byte("x")})
	require.ErrorIs(t, err, watch.ErrInvalidSinkKey)
}

func TestNewNATSKVSink_OwnsConnection(t *testing.T) {
	_, url := testutil.StartEmbeddedNATS(t)

	sink, err := watch.NewNATSKVSink(context.Background(), url, "consul-owned")
	require.NoError(t, err)
	require.NoError(t, sink.Close())
}

func TestKVWatcher_MirrorsIntoNATS(t *testing.T) {
	js, _ := testutil.StartEmbeddedNATS(t)
	ctx := context.Background()

	sink, err := watch.NewNATSKVSinkFromJetStream(ctx, js, "consul-watch")
	require.NoError(t, err)

	kv := &scriptedKV{results: []readResult{
		{pairs: []consul.KVPair{pair("feature/a", "on", 3), pair("feature/b", "off", 4)}, index: 4},
		{pairs: []consul.KVPair{pair("feature/b", "on", 5)}, index: 5},
	}}

	w, err := watch.KeyPrefix(kv, "feature/", sink, nil)
	require.NoError(t, err)

	require.NoError(t, w.Poll(ctx))
	require.NoError(t, w.Poll(ctx))

	bucket, err := js.KeyValue(ctx, "consul-watch")
	require.NoError(t, err)

	entry, err := bucket.Get(ctx, "feature/b")
	require.NoError(t, err)
	assert.Equal(t, []byte("on"), entry.Value())

	_, err = bucket.Get(ctx, "feature/a")
	require.ErrorIs(t, err, jetstream.ErrKeyNotFound)
}
