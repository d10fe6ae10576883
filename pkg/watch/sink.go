package watch

import (
	"context"

	"github.com/fivetwenty-io/consul-client/pkg/consul"
)

// Sink receives the changes observed under a watched prefix. Put is called
// for new and modified keys, Delete for keys that disappeared.
type Sink interface {
	Put(ctx context.Context, pair consul.KVPair) error
	Delete(ctx context.Context, key string) error
}

// FuncSink adapts plain functions to Sink. Nil functions are no-ops.
type FuncSink struct {
	PutFunc    func(ctx context.Context, pair consul.KVPair) error
	DeleteFunc func(ctx context.Context, key string) error
}

var _ Sink = FuncSink{}

// Put implements Sink.
func (f FuncSink) Put(ctx context.Context, pair consul.KVPair) error {
	if f.PutFunc == nil {
		return nil
	}

	return f.PutFunc(ctx, pair)
}

// Delete implements Sink.
func (f FuncSink) Delete(ctx context.Context, key string) error {
	if f.DeleteFunc == nil {
		return nil
	}

	return f.DeleteFunc(ctx, key)
}
