// Package http provides the default Consul transport, built on
// go-retryablehttp.
package http

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/hashicorp/go-retryablehttp"

	"github.com/fivetwenty-io/consul-client/internal/constants"
	"github.com/fivetwenty-io/consul-client/pkg/consul"
)

// Client implements consul.Transport.
type Client struct {
	httpClient *retryablehttp.Client
	logger     consul.Logger
	debug      bool
	userAgent  string

	retryMax     int
	retryWaitMin time.Duration
	retryWaitMax time.Duration
	timeout      time.Duration
	tlsConfig    *tls.Config
}

// Option configures the Client.
type Option func(*Client)

// WithLogger sets the logger.
func WithLogger(logger consul.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithDebug enables request and response logging.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithRetryConfig sets socket-level retry parameters. Only connection errors
// are retried; any HTTP status is returned to the caller as is.
func WithRetryConfig(maxRetries int, waitMin, waitMax time.Duration) Option {
	return func(c *Client) {
		c.retryMax = maxRetries
		c.retryWaitMin = waitMin
		c.retryWaitMax = waitMax
	}
}

// WithTimeout bounds a whole exchange. Zero disables the timeout, which
// blocking queries rely on.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithTLSConfig sets the TLS configuration of the pooled transport.
func WithTLSConfig(tlsConfig *tls.Config) Option {
	return func(c *Client) {
		c.tlsConfig = tlsConfig
	}
}

// NewClient creates a new HTTP transport.
func NewClient(opts ...Option) *Client {
	client := &Client{
		logger:       consul.NopLogger{},
		userAgent:    constants.DefaultUserAgent,
		retryMax:     constants.DefaultRetryMax,
		retryWaitMin: constants.DefaultRetryWaitMin,
		retryWaitMax: constants.DefaultRetryWaitMax,
	}

	for _, opt := range opts {
		opt(client)
	}

	pooled := cleanhttp.DefaultPooledClient()
	pooled.Timeout = client.timeout

	if transport, ok := pooled.Transport.(*http.Transport); ok && client.tlsConfig != nil {
		transport.TLSClientConfig = client.tlsConfig
	}

	retryClient := retryablehttp.NewClient()
	retryClient.HTTPClient = pooled
	retryClient.RetryMax = client.retryMax
	retryClient.RetryWaitMin = client.retryWaitMin
	retryClient.RetryWaitMax = client.retryWaitMax
	retryClient.CheckRetry = retryConnectionErrors
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler
	retryClient.Logger = &loggerAdapter{logger: client.logger}

	client.httpClient = retryClient

	return client
}

// Send implements consul.Transport.
func (c *Client) Send(ctx context.Context, req *consul.TransportRequest) (*consul.TransportResponse, error) {
	var body interface{}
	if req.Body != nil {
		body = req.Body
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, req.URL, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	for name, values := range req.Header {
		for _, value := range values {
			httpReq.Header.Add(name, value)
		}
	}

	if c.userAgent != "" && httpReq.Header.Get(constants.HeaderUserAgent) == "" {
		httpReq.Header.Set(constants.HeaderUserAgent, c.userAgent)
	}

	if c.debug {
		c.logger.Debug("HTTP Request", map[string]interface{}{
			"method": req.Method,
			"url":    req.URL,
		})
	}

	start := time.Now()

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if resp != nil {
			_ = resp.Body.Close()
		}

		return nil, fmt.Errorf("executing request: %w", err)
	}

	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if c.debug {
		c.logger.Debug("HTTP Response", map[string]interface{}{
			"status_code": resp.StatusCode,
			"duration_ms": time.Since(start).Milliseconds(),
			"body_size":   len(respBody),
		})
	}

	return &consul.TransportResponse{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       respBody,
	}, nil
}

// retryConnectionErrors retries only when no response was received. A
// cancelled context is never retried.
func retryConnectionErrors(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}

	if err == nil {
		return false, nil
	}

	return retryablehttp.DefaultRetryPolicy(ctx, resp, err)
}

// loggerAdapter adapts consul.Logger to retryablehttp.LeveledLogger. Debug
// lines are dropped; Send logs its own request and response entries.
type loggerAdapter struct {
	logger consul.Logger
}

func (l *loggerAdapter) Error(msg string, keysAndValues ...interface{}) {
	l.logger.Error(msg, fields(keysAndValues))
}

func (l *loggerAdapter) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Info(msg, fields(keysAndValues))
}

func (l *loggerAdapter) Debug(string, ...interface{}) {}

func (l *loggerAdapter) Warn(msg string, keysAndValues ...interface{}) {
	l.logger.Warn(msg, fields(keysAndValues))
}

func fields(keysAndValues []interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(keysAndValues)/2)

	for i := 0; i+1 < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			key = fmt.Sprint(keysAndValues[i])
		}

		out[key] = keysAndValues[i+1]
	}

	return out
}
