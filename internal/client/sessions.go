package client

import (
	"context"

	"github.com/fivetwenty-io/consul-client/pkg/consul"
)

// SessionsClient implements consul.SessionsClient.
type SessionsClient struct {
	engine *Engine
}

// NewSessionsClient creates a new sessions client.
func NewSessionsClient(engine *Engine) *SessionsClient {
	return &SessionsClient{engine: engine}
}

// Create implements consul.SessionsClient.Create.
func (c *SessionsClient) Create(ctx context.Context, req *consul.SessionCreateRequest) (*consul.Response[consul.SessionID], error) {
	return Execute[consul.SessionID](ctx, c.engine, req)
}

// Destroy implements consul.SessionsClient.Destroy.
func (c *SessionsClient) Destroy(ctx context.Context, req *consul.SessionDestroyRequest) (*consul.Response[bool], error) {
	return Execute[bool](ctx, c.engine, req)
}

// Info implements consul.SessionsClient.Info.
func (c *SessionsClient) Info(ctx context.Context, req *consul.SessionInfoRequest) (*consul.Response[[]consul.Session], error) {
	return Execute[[]consul.Session](ctx, c.engine, req)
}

// Node implements consul.SessionsClient.Node.
func (c *SessionsClient) Node(ctx context.Context, req *consul.SessionNodeRequest) (*consul.Response[[]consul.Session], error) {
	return Execute[[]consul.Session](ctx, c.engine, req)
}

// List implements consul.SessionsClient.List.
func (c *SessionsClient) List(ctx context.Context, req *consul.SessionListRequest) (*consul.Response[[]consul.Session], error) {
	return Execute[[]consul.Session](ctx, c.engine, req)
}

// Renew implements consul.SessionsClient.Renew.
func (c *SessionsClient) Renew(ctx context.Context, req *consul.SessionRenewRequest) (*consul.Response[[]consul.Session], error) {
	return Execute[[]consul.Session](ctx, c.engine, req)
}
