// Package consulclient provides the main entry point for creating Consul API clients.
package consulclient

import (
	"context"

	"github.com/fivetwenty-io/consul-client/internal/client"
	"github.com/fivetwenty-io/consul-client/pkg/consul"
)

// New creates a new Consul API client. A nil config falls back to
// consul.DefaultConfig, which reads the CONSUL_* environment variables.
func New(config *consul.Config) (consul.Client, error) {
	if config == nil {
		config = consul.DefaultConfig()
	}

	c, err := client.New(config)
	if err != nil {
		return nil, err
	}

	return c, nil
}

// NewWithAddress creates a client for the agent at address with no ACL token.
func NewWithAddress(address string) (consul.Client, error) {
	return New(&consul.Config{
		Address: address,
	})
}

// NewWithToken creates a client for the agent at address that authenticates
// every request with token.
func NewWithToken(address, token string) (consul.Client, error) {
	return New(&consul.Config{
		Address: address,
		Token:   token,
	})
}

type engineProvider interface {
	Engine() *client.Engine
}

// Execute runs a custom endpoint on a client returned by New, with the same
// query merging, error classification, logging and metrics as the built-in
// resource clients. Other consul.Client implementations are rejected with
// ErrInvalidClientType.
func Execute[T any](ctx context.Context, c consul.Client, ep consul.Endpoint[T]) (*consul.Response[T], error) {
	provider, ok := c.(engineProvider)
	if !ok {
		return nil, consul.ErrInvalidClientType
	}

	return client.Execute[T](ctx, provider.Engine(), ep)
}
