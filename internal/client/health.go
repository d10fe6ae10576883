package client

import (
	"context"

	"github.com/fivetwenty-io/consul-client/pkg/consul"
)

// HealthClient implements consul.HealthClient.
type HealthClient struct {
	engine *Engine
}

// NewHealthClient creates a new health client.
func NewHealthClient(engine *Engine) *HealthClient {
	return &HealthClient{engine: engine}
}

// Node implements consul.HealthClient.Node.
func (c *HealthClient) Node(ctx context.Context, req *consul.HealthNodeRequest) (*consul.Response[[]consul.HealthCheck], error) {
	return Execute[[]consul.HealthCheck](ctx, c.engine, req)
}

// Checks implements consul.HealthClient.Checks.
func (c *HealthClient) Checks(ctx context.Context, req *consul.HealthChecksRequest) (*consul.Response[[]consul.HealthCheck], error) {
	return Execute[[]consul.HealthCheck](ctx, c.engine, req)
}

// Service implements consul.HealthClient.Service.
func (c *HealthClient) Service(ctx context.Context, req *consul.HealthServiceRequest) (*consul.Response[[]consul.ServiceEntry], error) {
	return Execute[[]consul.ServiceEntry](ctx, c.engine, req)
}

// Connect implements consul.HealthClient.Connect.
func (c *HealthClient) Connect(ctx context.Context, req *consul.HealthServiceRequest) (*consul.Response[[]consul.ServiceEntry], error) {
	return Execute[[]consul.ServiceEntry](ctx, c.engine, consul.EndpointFunc[[]consul.ServiceEntry](req.BuildConnect))
}

// Ingress implements consul.HealthClient.Ingress.
func (c *HealthClient) Ingress(ctx context.Context, req *consul.HealthServiceRequest) (*consul.Response[[]consul.ServiceEntry], error) {
	return Execute[[]consul.ServiceEntry](ctx, c.engine, consul.EndpointFunc[[]consul.ServiceEntry](req.BuildIngress))
}

// State implements consul.HealthClient.State.
func (c *HealthClient) State(ctx context.Context, req *consul.HealthStateRequest) (*consul.Response[[]consul.HealthCheck], error) {
	return Execute[[]consul.HealthCheck](ctx, c.engine, req)
}
