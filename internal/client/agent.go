package client

import (
	"context"

	"github.com/fivetwenty-io/consul-client/pkg/consul"
)

// AgentClient implements consul.AgentClient.
type AgentClient struct {
	engine *Engine
}

// NewAgentClient creates a new agent client.
func NewAgentClient(engine *Engine) *AgentClient {
	return &AgentClient{engine: engine}
}

// Self implements consul.AgentClient.Self.
func (c *AgentClient) Self(ctx context.Context, req *consul.AgentSelfRequest) (*consul.Response[consul.AgentConfiguration], error) {
	return Execute[consul.AgentConfiguration](ctx, c.engine, req)
}
