package client

import (
	"context"

	"github.com/fivetwenty-io/consul-client/pkg/consul"
)

// ChecksClient implements consul.ChecksClient.
type ChecksClient struct {
	engine *Engine
}

// NewChecksClient creates a new checks client.
func NewChecksClient(engine *Engine) *ChecksClient {
	return &ChecksClient{engine: engine}
}

// List implements consul.ChecksClient.List.
func (c *ChecksClient) List(ctx context.Context, req *consul.CheckListRequest) (*consul.Response[map[string]consul.AgentCheck], error) {
	return Execute[map[string]consul.AgentCheck](ctx, c.engine, req)
}

// Register implements consul.ChecksClient.Register.
func (c *ChecksClient) Register(ctx context.Context, req *consul.CheckRegisterRequest) (*consul.Response[consul.Empty], error) {
	return Execute[consul.Empty](ctx, c.engine, req)
}

// Deregister implements consul.ChecksClient.Deregister.
func (c *ChecksClient) Deregister(ctx context.Context, req *consul.CheckDeregisterRequest) (*consul.Response[consul.Empty], error) {
	return Execute[consul.Empty](ctx, c.engine, req)
}

// Pass implements consul.ChecksClient.Pass.
func (c *ChecksClient) Pass(ctx context.Context, req *consul.CheckTTLRequest) (*consul.Response[consul.Empty], error) {
	return c.ttl(ctx, req, consul.TTLPass)
}

// Warn implements consul.ChecksClient.Warn.
func (c *ChecksClient) Warn(ctx context.Context, req *consul.CheckTTLRequest) (*consul.Response[consul.Empty], error) {
	return c.ttl(ctx, req, consul.TTLWarn)
}

// Fail implements consul.ChecksClient.Fail.
func (c *ChecksClient) Fail(ctx context.Context, req *consul.CheckTTLRequest) (*consul.Response[consul.Empty], error) {
	return c.ttl(ctx, req, consul.TTLFail)
}

// Update implements consul.ChecksClient.Update.
func (c *ChecksClient) Update(ctx context.Context, req *consul.CheckUpdateRequest) (*consul.Response[consul.Empty], error) {
	return Execute[consul.Empty](ctx, c.engine, req)
}

func (c *ChecksClient) ttl(ctx context.Context, req *consul.CheckTTLRequest, status consul.TTLStatus) (*consul.Response[consul.Empty], error) {
	var ttl consul.CheckTTLRequest
	if req != nil {
		ttl = *req
	}

	ttl.Status = status

	return Execute[consul.Empty](ctx, c.engine, &ttl)
}
