package client

import (
	"fmt"

	"github.com/fivetwenty-io/consul-client/internal/constants"
	"github.com/fivetwenty-io/consul-client/internal/http"
	"github.com/fivetwenty-io/consul-client/pkg/consul"
)

// Client implements the consul.Client interface.
type Client struct {
	engine *Engine

	// Resource clients
	agent     consul.AgentClient
	catalog   consul.CatalogClient
	checks    consul.ChecksClient
	health    consul.HealthClient
	kv        consul.KVClient
	services  consul.ServicesClient
	sessions  consul.SessionsClient
	snapshots consul.SnapshotsClient
}

// New creates a new Consul API client. The configuration is copied; later
// changes to config do not affect the client.
func New(config *consul.Config) (*Client, error) {
	if config == nil {
		return nil, &consul.ValidationError{Field: "Config", Err: consul.ErrConfigRequired}
	}

	base, err := baseURL(config.Address)
	if err != nil {
		return nil, err
	}

	logger := config.Logger
	if logger == nil {
		logger = consul.NopLogger{}
	}

	metrics := config.Metrics
	if metrics == nil {
		metrics = consul.NopMetrics{}
	}

	transport := config.Transport
	if transport == nil {
		httpOpts, err := createHTTPClientOptions(config, logger)
		if err != nil {
			return nil, err
		}

		transport = http.NewClient(httpOpts...)
	}

	client := &Client{
		engine: &Engine{
			transport:  transport,
			baseURL:    base,
			token:      config.Token,
			namespace:  config.Namespace,
			datacenter: config.Datacenter,
			logger:     logger,
			metrics:    metrics,
		},
	}

	// Initialize resource clients
	client.initializeResourceClients()

	return client, nil
}

// createHTTPClientOptions builds HTTP client options from config.
func createHTTPClientOptions(config *consul.Config, logger consul.Logger) ([]http.Option, error) {
	httpOpts := []http.Option{
		http.WithLogger(logger),
		http.WithTimeout(config.HTTPTimeout),
	}

	if config.Debug {
		httpOpts = append(httpOpts, http.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, http.WithUserAgent(config.UserAgent))
	}

	if config.RetryMax > 0 {
		retryWaitMin := constants.DefaultRetryWaitMin
		retryWaitMax := constants.ExtendedRetryWaitMax

		if config.RetryWaitMin > 0 {
			retryWaitMin = config.RetryWaitMin
		}

		if config.RetryWaitMax > 0 {
			retryWaitMax = config.RetryWaitMax
		}

		httpOpts = append(httpOpts, http.WithRetryConfig(config.RetryMax, retryWaitMin, retryWaitMax))
	}

	if config.TLS != nil {
		tlsConfig, err := http.NewTLSConfig(config.TLS)
		if err != nil {
			return nil, fmt.Errorf("configuring TLS: %w", err)
		}

		httpOpts = append(httpOpts, http.WithTLSConfig(tlsConfig))
	}

	return httpOpts, nil
}

func (c *Client) initializeResourceClients() {
	c.agent = NewAgentClient(c.engine)
	c.catalog = NewCatalogClient(c.engine)
	c.checks = NewChecksClient(c.engine)
	c.health = NewHealthClient(c.engine)
	c.kv = NewKVClient(c.engine)
	c.services = NewServicesClient(c.engine)
	c.sessions = NewSessionsClient(c.engine)
	c.snapshots = NewSnapshotsClient(c.engine)
}

// Engine returns the engine shared by the resource clients, for executing
// custom endpoints.
func (c *Client) Engine() *Engine {
	return c.engine
}

// Agent implements consul.Client.
func (c *Client) Agent() consul.AgentClient {
	return c.agent
}

// Catalog implements consul.Client.
func (c *Client) Catalog() consul.CatalogClient {
	return c.catalog
}

// Checks implements consul.Client.
func (c *Client) Checks() consul.ChecksClient {
	return c.checks
}

// Health implements consul.Client.
func (c *Client) Health() consul.HealthClient {
	return c.health
}

// KV implements consul.Client.
func (c *Client) KV() consul.KVClient {
	return c.kv
}

// Services implements consul.Client.
func (c *Client) Services() consul.ServicesClient {
	return c.services
}

// Sessions implements consul.Client.
func (c *Client) Sessions() consul.SessionsClient {
	return c.sessions
}

// Snapshots implements consul.Client.
func (c *Client) Snapshots() consul.SnapshotsClient {
	return c.snapshots
}
