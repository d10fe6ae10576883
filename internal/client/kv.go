package client

import (
	"context"

	"github.com/fivetwenty-io/consul-client/pkg/consul"
)

// KVClient implements consul.KVClient.
type KVClient struct {
	engine *Engine
}

// NewKVClient creates a new KV client.
func NewKVClient(engine *Engine) *KVClient {
	return &KVClient{engine: engine}
}

// Read implements consul.KVClient.Read.
func (c *KVClient) Read(ctx context.Context, req *consul.KVReadRequest) (*consul.Response[[]consul.KVPair], error) {
	return Execute[[]consul.KVPair](ctx, c.engine, req)
}

// ReadRaw implements consul.KVClient.ReadRaw.
func (c *KVClient) ReadRaw(ctx context.Context, req *consul.KVReadRequest) (*consul.Response[[]byte], error) {
	return Execute[[]byte](ctx, c.engine, consul.EndpointFunc[[]byte](req.BuildRaw))
}

// Keys implements consul.KVClient.Keys.
func (c *KVClient) Keys(ctx context.Context, req *consul.KVKeysRequest) (*consul.Response[[]string], error) {
	return Execute[[]string](ctx, c.engine, req)
}

// Set implements consul.KVClient.Set.
func (c *KVClient) Set(ctx context.Context, req *consul.KVSetRequest) (*consul.Response[bool], error) {
	return Execute[bool](ctx, c.engine, req)
}

// Delete implements consul.KVClient.Delete.
func (c *KVClient) Delete(ctx context.Context, req *consul.KVDeleteRequest) (*consul.Response[bool], error) {
	return Execute[bool](ctx, c.engine, req)
}
