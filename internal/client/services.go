package client

import (
	"context"

	"github.com/fivetwenty-io/consul-client/pkg/consul"
)

// ServicesClient implements consul.ServicesClient.
type ServicesClient struct {
	engine *Engine
}

// NewServicesClient creates a new services client.
func NewServicesClient(engine *Engine) *ServicesClient {
	return &ServicesClient{engine: engine}
}

// List implements consul.ServicesClient.List.
func (c *ServicesClient) List(ctx context.Context, req *consul.ServiceListRequest) (*consul.Response[map[string]consul.AgentService], error) {
	return Execute[map[string]consul.AgentService](ctx, c.engine, req)
}

// Get implements consul.ServicesClient.Get.
func (c *ServicesClient) Get(ctx context.Context, req *consul.ServiceGetRequest) (*consul.Response[consul.AgentService], error) {
	return Execute[consul.AgentService](ctx, c.engine, req)
}

// Register implements consul.ServicesClient.Register.
func (c *ServicesClient) Register(ctx context.Context, req *consul.ServiceRegisterRequest) (*consul.Response[consul.Empty], error) {
	return Execute[consul.Empty](ctx, c.engine, req)
}

// Deregister implements consul.ServicesClient.Deregister.
func (c *ServicesClient) Deregister(ctx context.Context, req *consul.ServiceDeregisterRequest) (*consul.Response[consul.Empty], error) {
	return Execute[consul.Empty](ctx, c.engine, req)
}

// Maintenance implements consul.ServicesClient.Maintenance.
func (c *ServicesClient) Maintenance(ctx context.Context, req *consul.ServiceMaintenanceRequest) (*consul.Response[consul.Empty], error) {
	return Execute[consul.Empty](ctx, c.engine, req)
}
