package watch

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/fivetwenty-io/consul-client/pkg/consul"
)

// NATSKVSink stores watched pairs in a NATS JetStream key-value bucket.
//
// Consul keys are mapped to NATS keys by replacing every character outside
// [-/_=.a-zA-Z0-9] with '_' and trimming leading and trailing dots. Distinct
// Consul keys that map to the same NATS key overwrite each other.
type NATSKVSink struct {
	kv jetstream.KeyValue
	nc *nats.Conn
}

var _ Sink = (*NATSKVSink)(nil)

// NewNATSKVSink connects to the NATS server at url and creates or updates
// bucket. Close releases the connection.
func NewNATSKVSink(ctx context.Context, url, bucket string, opts ...nats.Option) (*NATSKVSink, error) {
	nc, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("connecting to NATS: %w", err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()

		return nil, fmt.Errorf("creating JetStream context: %w", err)
	}

	sink, err := NewNATSKVSinkFromJetStream(ctx, js, bucket)
	if err != nil {
		nc.Close()

		return nil, err
	}

	sink.nc = nc

	return sink, nil
}

// NewNATSKVSinkFromJetStream creates or updates bucket on an existing
// JetStream context. The caller keeps ownership of the connection.
func NewNATSKVSinkFromJetStream(ctx context.Context, js jetstream.JetStream, bucket string) (*NATSKVSink, error) {
	kv, err := js.CreateOrUpdateKeyValue(ctx, jetstream.KeyValueConfig{
		Bucket:      bucket,
		Description: "Mirror of a Consul KV prefix",
	})
	if err != nil {
		return nil, fmt.Errorf("creating KV bucket %q: %w", bucket, err)
	}

	return &NATSKVSink{kv: kv}, nil
}

// Put implements Sink.
func (s *NATSKVSink) Put(ctx context.Context, pair consul.KVPair) error {
	key, err := natsKey(pair.Key)
	if err != nil {
		return err
	}

	_, err = s.kv.Put(ctx, key, pair.Value)
	if err != nil {
		return fmt.Errorf("storing %q: %w", key, err)
	}

	return nil
}

// Delete implements Sink. Deleting a key the bucket never held succeeds.
func (s *NATSKVSink) Delete(ctx context.Context, key string) error {
	mapped, err := natsKey(key)
	if err != nil {
		return err
	}

	err = s.kv.Delete(ctx, mapped)
	if err != nil && !errors.Is(err, jetstream.ErrKeyNotFound) {
		return fmt.Errorf("deleting %q: %w", mapped, err)
	}

	return nil
}

// Close closes the connection opened by NewNATSKVSink.
func (s *NATSKVSink) Close() error {
	if s.nc != nil {
		s.nc.Close()
	}

	return nil
}

func natsKey(key string) (string, error) {
	mapped := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '-', r == '/', r == '_', r == '=', r == '.':
			return r
		default:
			return '_'
		}
	}, key)

	// NATS rejects empty tokens between dots.
	for strings.Contains(mapped, "..") {
		mapped = strings.ReplaceAll(mapped, "..", ".")
	}

	mapped = strings.Trim(mapped, ".")
	if mapped == "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidSinkKey, key)
	}

	return mapped, nil
}
