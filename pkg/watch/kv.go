package watch

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/fivetwenty-io/consul-client/internal/constants"
	"github.com/fivetwenty-io/consul-client/pkg/consul"
)

// Static errors for err113 compliance.
var (
	ErrKVClientRequired = errors.New("watch: KV client is nil")
	ErrSinkRequired     = errors.New("watch: sink is nil")
	ErrInvalidSinkKey   = errors.New("watch: key cannot be stored in sink")
)

// Options tune a KVWatcher. The zero value is usable.
type Options struct {
	// Wait is the wait requested by each blocking read. Defaults to five
	// minutes and is capped at Consul's ten minute limit.
	Wait time.Duration
	// RetryWaitMin and RetryWaitMax bound the exponential backoff applied
	// after a failed iteration.
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration
	// QueryOptions are sent with every read. Index and Wait are managed by
	// the watcher and ignored here.
	QueryOptions consul.QueryOptions
	// Logger receives iteration failures.
	Logger consul.Logger
}

func (o *Options) withDefaults() Options {
	out := Options{}
	if o != nil {
		out = *o
	}

	if out.Wait <= 0 {
		out.Wait = constants.DefaultWatchWait
	}

	if out.Wait > constants.MaxBlockingWait {
		out.Wait = constants.MaxBlockingWait
	}

	if out.RetryWaitMin <= 0 {
		out.RetryWaitMin = constants.DefaultRetryWaitMin
	}

	if out.RetryWaitMax < out.RetryWaitMin {
		out.RetryWaitMax = constants.ExtendedRetryWaitMax
		if out.RetryWaitMax < out.RetryWaitMin {
			out.RetryWaitMax = out.RetryWaitMin
		}
	}

	if out.Logger == nil {
		out.Logger = consul.NopLogger{}
	}

	return out
}

// KVWatcher mirrors a KV prefix into a Sink. It is not safe for concurrent
// use; Run and Poll must be called from one goroutine.
type KVWatcher struct {
	kv     consul.KVClient
	prefix string
	sink   Sink
	opts   Options

	index    uint64
	observed uint64
	known    map[string]uint64
}

// KeyPrefix creates a watcher for every key under prefix. An empty prefix
// watches the whole store.
func KeyPrefix(kv consul.KVClient, prefix string, sink Sink, opts *Options) (*KVWatcher, error) {
	if kv == nil {
		return nil, ErrKVClientRequired
	}

	if sink == nil {
		return nil, ErrSinkRequired
	}

	return &KVWatcher{
		kv:     kv,
		prefix: prefix,
		sink:   sink,
		opts:   opts.withDefaults(),
		known:  make(map[string]uint64),
	}, nil
}

// Index returns the index the next blocking read will wait on.
func (w *KVWatcher) Index() uint64 {
	return w.index
}

// Run polls until ctx is done and then returns ctx.Err(). Failed iterations
// are logged and retried with exponential backoff. A successful iteration
// whose index did not move waits RetryWaitMin before the next read.
func (w *KVWatcher) Run(ctx context.Context) error {
	backoff := w.opts.RetryWaitMin

	for {
		before := w.observed

		err := w.Poll(ctx)
		if ctx.Err() != nil {
			return ctx.Err()
		}

		if err == nil {
			backoff = w.opts.RetryWaitMin

			if w.observed != 0 && w.observed != before {
				continue
			}

			err = sleep(ctx, w.opts.RetryWaitMin)
			if err != nil {
				return err
			}

			continue
		}

		w.opts.Logger.Warn("Consul watch iteration failed", map[string]interface{}{
			"prefix":     w.prefix,
			"index":      w.index,
			"error":      err.Error(),
			"error_kind": consul.ErrorKind(err),
			"backoff_ms": backoff.Milliseconds(),
		})

		err = sleep(ctx, backoff)
		if err != nil {
			return err
		}

		backoff *= constants.ExponentialBackoffBase
		if backoff > w.opts.RetryWaitMax {
			backoff = w.opts.RetryWaitMax
		}
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Poll performs one blocking read and delivers the difference against the
// previous state to the sink. A prefix with no keys is an empty state, not
// an error.
func (w *KVWatcher) Poll(ctx context.Context) error {
	req := &consul.KVReadRequest{
		Key:          w.prefix,
		Recurse:      true,
		QueryOptions: w.opts.QueryOptions.WithIndex(w.index, w.opts.Wait),
	}

	var (
		pairs []consul.KVPair
		index uint64
	)

	resp, err := w.kv.Read(ctx, req)

	switch {
	case err == nil:
		pairs = resp.Payload
		index = resp.IndexOr(0)
	case consul.IsNotFound(err):
		index, err = notFoundIndex(err)
		if err != nil {
			return err
		}
	default:
		return err
	}

	err = w.apply(ctx, pairs)
	if err != nil {
		return err
	}

	w.observed = index
	w.index = nextIndex(w.index, index)

	return nil
}

func (w *KVWatcher) apply(ctx context.Context, pairs []consul.KVPair) error {
	seen := make(map[string]struct{}, len(pairs))

	for _, pair := range pairs {
		seen[pair.Key] = struct{}{}

		if modify, ok := w.known[pair.Key]; ok && modify == pair.ModifyIndex {
			continue
		}

		err := w.sink.Put(ctx, pair)
		if err != nil {
			return fmt.Errorf("sink put %q: %w", pair.Key, err)
		}

		w.known[pair.Key] = pair.ModifyIndex
	}

	removed := make([]string, 0)

	for key := range w.known {
		if _, ok := seen[key]; !ok {
			removed = append(removed, key)
		}
	}

	sort.Strings(removed)

	for _, key := range removed {
		err := w.sink.Delete(ctx, key)
		if err != nil {
			return fmt.Errorf("sink delete %q: %w", key, err)
		}

		delete(w.known, key)
	}

	return nil
}

// notFoundIndex reads the index Consul sends along with a 404 for an empty
// prefix.
func notFoundIndex(err error) (uint64, error) {
	apiErr := &consul.APIError{}
	if !errors.As(err, &apiErr) {
		return 0, nil
	}

	meta, metaErr := consul.ParseMeta(apiErr.Header)
	if metaErr != nil {
		return 0, &consul.ResponseError{StatusCode: apiErr.StatusCode, Body: apiErr.Body, Err: metaErr}
	}

	if meta.Index == nil {
		return 0, nil
	}

	return *meta.Index, nil
}

// nextIndex applies Consul's blocking query rules: an index that moved
// backwards restarts from zero, and an index below one becomes one so the
// next read blocks.
func nextIndex(previous, current uint64) uint64 {
	if current < previous {
		return 0
	}

	if current < 1 {
		return 1
	}

	return current
}
