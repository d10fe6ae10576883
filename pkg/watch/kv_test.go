package watch_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/consul-client/pkg/consul"
	"github.com/fivetwenty-io/consul-client/pkg/consulclient"
	"github.com/fivetwenty-io/consul-client/pkg/watch"
)

var errTestUnavailable = errors.New("agent unavailable")

type readResult struct {
	pairs []consul.KVPair
	index uint64
	err   error
}

// scriptedKV answers Read from a fixed script and blocks once it runs out.
type scriptedKV struct {
	consul.KVClient

	mu      sync.Mutex
	results []readResult
	indexes []uint64
}

func (s *scriptedKV) Read(ctx context.Context, req *consul.KVReadRequest) (*consul.Response[[]consul.KVPair], error) {
	s.mu.Lock()

	if req.Index != nil {
		s.indexes = append(s.indexes, *req.Index)
	}

	if len(s.results) == 0 {
		s.mu.Unlock()
		<-ctx.Done()

		return nil, &consul.ConnectionError{Method: "GET", Err: ctx.Err()}
	}

	result := s.results[0]
	s.results = s.results[1:]
	s.mu.Unlock()

	if result.err != nil {
		return nil, result.err
	}

	return consul.NewResponse(result.pairs, http.StatusOK, http.Header{}, consul.Meta{Index: consul.Ptr(result.index)}), nil
}

func (s *scriptedKV) requestedIndexes() []uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]uint64(nil), s.indexes...)
}

func (s *scriptedKV) remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.results)
}

type recordingSink struct {
	mu      sync.Mutex
	puts    []string
	deletes []string
	values  map[string]string
}

func newRecordingSink() *recordingSink {
	return &recordingSink{values: make(map[string]string)}
}

func (r *recordingSink) Put(_ context.Context, pair consul.KVPair) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.puts = append(r.puts, pair.Key)
	r.values[pair.Key] = string(pair.Value)

	return nil
}

func (r *recordingSink) Delete(_ context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.deletes = append(r.deletes, key)
	delete(r.values, key)

	return nil
}

type warnLogger struct {
	consul.NopLogger

	mu    sync.Mutex
	warns []string
}

func (w *warnLogger) Warn(msg string, _ map[string]interface{}) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.warns = append(w.warns, msg)
}

func (w *warnLogger) count() int {
	w.mu.Lock()
	defer w.mu.Unlock()

	return len(w.warns)
}

func pair(key, value string, modify uint64) consul.KVPair {
	return consul.KVPair{Key: key, Value: []byte(value), ModifyIndex: modify}
}

func TestKeyPrefix_RequiresArguments(t *testing.T) {
	t.Parallel()

	_, err := watch.KeyPrefix(nil, "config/", newRecordingSink(), nil)
	require.ErrorIs(t, err, watch.ErrKVClientRequired)

	_, err = watch.KeyPrefix(&scriptedKV{}, "config/", nil, nil)
	require.ErrorIs(t, err, watch.ErrSinkRequired)
}

func TestKVWatcher_PollDiffs(t *testing.T) {
	t.Parallel()

	kv := &scriptedKV{results: []readResult{
		{pairs: []consul.KVPair{pair("config/a", "1", 10), pair("config/b", "2", 11)}, index: 11},
		{pairs: []consul.KVPair{pair("config/a", "1", 10), pair("config/b", "3", 12)}, index: 12},
		{pairs: []consul.KVPair{pair("config/b", "3", 12)}, index: 13},
	}}
	sink := newRecordingSink()

	w, err := watch.KeyPrefix(kv, "config/", sink, &watch.Options{Wait: time.Second})
	require.NoError(t, err)

	ctx := context.Background()

	require.NoError(t, w.Poll(ctx))
	assert.Equal(t, []string{"config/a", "config/b"}, sink.puts)
	assert.Equal(t, uint64(11), w.Index())

	require.NoError(t, w.Poll(ctx))
	assert.Equal(t, []string{"config/a", "config/b", "config/b"}, sink.puts)
	assert.Equal(t, "3", sink.values["config/b"])

	require.NoError(t, w.Poll(ctx))
	assert.Equal(t, []string{"config/a"}, sink.deletes)
	assert.Equal(t, uint64(13), w.Index())

	assert.Equal(t, []uint64{0, 11, 12}, kv.requestedIndexes())
}

func TestKVWatcher_IndexRules(t *testing.T) {
	t.Parallel()

	kv := &scriptedKV{results: []readResult{
		{index: 0},
		{index: 50},
		{index: 20},
		{index: 21},
	}}

	w, err := watch.KeyPrefix(kv, "", newRecordingSink(), nil)
	require.NoError(t, err)

	ctx := context.Background()

	require.NoError(t, w.Poll(ctx))
	assert.Equal(t, uint64(1), w.Index(), "index below one becomes one")

	require.NoError(t, w.Poll(ctx))
	assert.Equal(t, uint64(50), w.Index())

	require.NoError(t, w.Poll(ctx))
	assert.Equal(t, uint64(0), w.Index(), "index moving backwards resets")

	require.NoError(t, w.Poll(ctx))
	assert.Equal(t, []uint64{0, 1, 50, 0}, kv.requestedIndexes())
}

func TestKVWatcher_RunRetriesAndStops(t *testing.T) {
	t.Parallel()

	kv := &scriptedKV{results: []readResult{
		{err: &consul.ConnectionError{Method: "GET", Err: errTestUnavailable}},
		{err: &consul.APIError{StatusCode: http.StatusInternalServerError}},
		{pairs: []consul.KVPair{pair("app/flag", "on", 4)}, index: 4},
	}}
	sink := newRecordingSink()
	logger := &warnLogger{}

	w, err := watch.KeyPrefix(kv, "app/", sink, &watch.Options{
		RetryWaitMin: time.Millisecond,
		RetryWaitMax: 2 * time.Millisecond,
		Logger:       logger,
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	require.Eventually(t, func() bool {
		sink.mu.Lock()
		defer sink.mu.Unlock()

		return sink.values["app/flag"] == "on"
	}, 2*time.Second, 5*time.Millisecond)

	cancel()

	select {
	case err := <-done:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancellation")
	}

	assert.Equal(t, 2, logger.count())
}

func TestKVWatcher_SinkFailureIsRetried(t *testing.T) {
	t.Parallel()

	kv := &scriptedKV{results: []readResult{
		{pairs: []consul.KVPair{pair("k", "v", 2)}, index: 2},
		{pairs: []consul.KVPair{pair("k", "v", 2)}, index: 2},
	}}

	attempts := 0
	sink := watch.FuncSink{PutFunc: func(context.Context, consul.KVPair) error {
		attempts++
		if attempts == 1 {
			return errTestUnavailable
		}

		return nil
	}}

	w, err := watch.KeyPrefix(kv, "", sink, nil)
	require.NoError(t, err)

	require.ErrorIs(t, w.Poll(context.Background()), errTestUnavailable)
	assert.Equal(t, uint64(0), w.Index())

	require.NoError(t, w.Poll(context.Background()))
	assert.Equal(t, 2, attempts)
	assert.Equal(t, uint64(2), w.Index())
}

func TestKVWatcher_EmptyPrefixAgainstAgent(t *testing.T) {
	t.Parallel()

	var (
		mu      sync.Mutex
		queries []string
	)

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		mu.Lock()
		queries = append(queries, request.URL.RawQuery)
		mu.Unlock()

		assert.Equal(t, "/v1/kv/missing/", request.URL.Path)
		writer.Header().Set("X-Consul-Index", "31")
		writer.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client, err := consulclient.NewWithAddress(server.URL)
	require.NoError(t, err)

	w, err := watch.KeyPrefix(client.KV(), "missing/", watch.FuncSink{}, &watch.Options{Wait: 2 * time.Second})
	require.NoError(t, err)

	require.NoError(t, w.Poll(context.Background()))
	assert.Equal(t, uint64(31), w.Index())

	require.NoError(t, w.Poll(context.Background()))

	mu.Lock()
	defer mu.Unlock()

	require.Len(t, queries, 2)
	assert.Equal(t, "index=0&recurse=true&wait=2s", queries[0])
	assert.Equal(t, "index=31&recurse=true&wait=2s", queries[1])
}

func TestKVWatcher_RunWaitsWhenIndexIsStalled(t *testing.T) {
	t.Parallel()

	results := make([]readResult, 100)
	for i := range results {
		results[i] = readResult{pairs: []consul.KVPair{pair("app/flag", "on", 4)}}
	}

	kv := &scriptedKV{results: results}

	w, err := watch.KeyPrefix(kv, "app/", newRecordingSink(), &watch.Options{
		RetryWaitMin: 20 * time.Millisecond,
		RetryWaitMax: 40 * time.Millisecond,
	})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	require.ErrorIs(t, w.Run(ctx), context.DeadlineExceeded)

	// 100ms at one read per 20ms leaves most of the script unread.
	assert.Greater(t, kv.remaining(), 80)
	assert.Less(t, kv.remaining(), 100)
}
