package client

import (
	"context"

	"github.com/fivetwenty-io/consul-client/pkg/consul"
)

// CatalogClient implements consul.CatalogClient.
type CatalogClient struct {
	engine *Engine
}

// NewCatalogClient creates a new catalog client.
func NewCatalogClient(engine *Engine) *CatalogClient {
	return &CatalogClient{engine: engine}
}

// Register implements consul.CatalogClient.Register.
func (c *CatalogClient) Register(ctx context.Context, req *consul.CatalogRegisterRequest) (*consul.Response[bool], error) {
	return Execute[bool](ctx, c.engine, req)
}

// Deregister implements consul.CatalogClient.Deregister.
func (c *CatalogClient) Deregister(ctx context.Context, req *consul.CatalogDeregisterRequest) (*consul.Response[bool], error) {
	return Execute[bool](ctx, c.engine, req)
}

// Datacenters implements consul.CatalogClient.Datacenters.
func (c *CatalogClient) Datacenters(ctx context.Context, req *consul.CatalogDatacentersRequest) (*consul.Response[[]string], error) {
	return Execute[[]string](ctx, c.engine, req)
}

// Nodes implements consul.CatalogClient.Nodes.
func (c *CatalogClient) Nodes(ctx context.Context, req *consul.CatalogNodesRequest) (*consul.Response[[]consul.Node], error) {
	return Execute[[]consul.Node](ctx, c.engine, req)
}

// Services implements consul.CatalogClient.Services.
func (c *CatalogClient) Services(ctx context.Context, req *consul.CatalogServicesRequest) (*consul.Response[map[string][]string], error) {
	return Execute[map[string][]string](ctx, c.engine, req)
}

// Service implements consul.CatalogClient.Service.
func (c *CatalogClient) Service(ctx context.Context, req *consul.CatalogServiceRequest) (*consul.Response[[]consul.CatalogService], error) {
	return Execute[[]consul.CatalogService](ctx, c.engine, req)
}

// Connect implements consul.CatalogClient.Connect.
func (c *CatalogClient) Connect(ctx context.Context, req *consul.CatalogServiceRequest) (*consul.Response[[]consul.CatalogService], error) {
	return Execute[[]consul.CatalogService](ctx, c.engine, consul.EndpointFunc[[]consul.CatalogService](req.BuildConnect))
}

// NodeServices implements consul.CatalogClient.NodeServices.
func (c *CatalogClient) NodeServices(ctx context.Context, req *consul.CatalogNodeServicesRequest) (*consul.Response[consul.NodeServiceList], error) {
	return Execute[consul.NodeServiceList](ctx, c.engine, req)
}

// GatewayServices implements consul.CatalogClient.GatewayServices.
func (c *CatalogClient) GatewayServices(ctx context.Context, req *consul.CatalogGatewayServicesRequest) (*consul.Response[[]consul.GatewayService], error) {
	return Execute[[]consul.GatewayService](ctx, c.engine, req)
}
