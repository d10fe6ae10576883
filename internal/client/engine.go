package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fivetwenty-io/consul-client/internal/constants"
	"github.com/fivetwenty-io/consul-client/pkg/consul"
)

// Engine executes descriptors against a transport using the frozen client
// configuration. It holds no mutable state and is safe for concurrent use.
type Engine struct {
	transport  consul.Transport
	baseURL    string
	token      string
	namespace  string
	datacenter string
	logger     consul.Logger
	metrics    consul.Metrics
}

// unknownLabel stands in for the method and endpoint of a request that
// failed to build.
const unknownLabel = "unknown"

// Execute builds ep, sends it with exactly one transport call and returns
// the decoded response. Errors are always one of *consul.ValidationError,
// *consul.ConnectionError, *consul.APIError or *consul.ResponseError.
func Execute[T any](ctx context.Context, engine *Engine, ep consul.Endpoint[T]) (*consul.Response[T], error) {
	if ep == nil {
		return nil, &consul.ValidationError{Field: "endpoint", Err: consul.ErrRequiredField}
	}

	desc, err := ep.Build()
	if err == nil {
		err = desc.Validate()
	}

	if err != nil {
		engine.metrics.IncError(unknownLabel, unknownLabel, consul.KindValidation)
		engine.logger.Debug("Consul request rejected", map[string]interface{}{
			"error": err.Error(),
		})

		return nil, asValidationError(err)
	}

	method := string(desc.Method())
	endpoint := desc.PathTemplate()

	req, err := prepare(engine, desc)
	if err != nil {
		engine.metrics.IncError(method, endpoint, consul.KindValidation)

		return nil, err
	}

	engine.logger.Debug("Consul request", map[string]interface{}{
		"method": method,
		"path":   desc.Path(),
	})

	start := time.Now()

	resp, err := engine.transport.Send(ctx, req)

	duration := time.Since(start)

	if err != nil || resp == nil {
		if err == nil {
			err = consul.ErrEmptyResponse
		}

		connErr := &consul.ConnectionError{Method: method, URL: req.URL, Err: err}
		engine.fail(method, desc.Path(), endpoint, 0, duration, connErr)

		return nil, connErr
	}

	engine.metrics.ObserveRequest(method, endpoint, resp.StatusCode, duration)

	result, err := decode(desc, resp)
	if err != nil {
		engine.fail(method, desc.Path(), endpoint, resp.StatusCode, duration, err)

		return nil, err
	}

	engine.logger.Debug("Consul response", map[string]interface{}{
		"method":      method,
		"path":        desc.Path(),
		"status_code": resp.StatusCode,
		"duration_ms": duration.Milliseconds(),
	})

	return result, nil
}

func prepare[T any](engine *Engine, desc *consul.Descriptor[T]) (*consul.TransportRequest, error) {
	opts := desc.Options()

	query := desc.Query()
	for key, values := range opts.Values() {
		query[key] = values
	}

	if query.Get(constants.QueryDatacenter) == "" && engine.datacenter != "" {
		query.Set(constants.QueryDatacenter, engine.datacenter)
	}

	if query.Get(constants.QueryNamespace) == "" && engine.namespace != "" {
		query.Set(constants.QueryNamespace, engine.namespace)
	}

	target := engine.baseURL + desc.Path()
	if encoded := query.Encode(); encoded != "" {
		target += "?" + encoded
	}

	header := make(http.Header)

	token := opts.Token
	if token == "" {
		token = engine.token
	}

	if token != "" {
		header.Set(constants.HeaderToken, token)
	}

	var body []byte

	if raw, ok := desc.RawBody(); ok {
		body = raw
	} else if payload := desc.Body(); payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, &consul.ValidationError{Field: "Body", Err: fmt.Errorf("%w: %w", consul.ErrBodyEncoding, err)}
		}

		body = encoded
	}

	if body != nil && desc.ContentType() != "" {
		header.Set(constants.HeaderContentType, desc.ContentType())
	}

	return &consul.TransportRequest{
		Method: string(desc.Method()),
		URL:    target,
		Header: header,
		Body:   body,
	}, nil
}

func decode[T any](desc *consul.Descriptor[T], resp *consul.TransportResponse) (*consul.Response[T], error) {
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, consul.NewAPIError(resp.StatusCode, resp.Header, resp.Body)
	}

	meta, err := consul.ParseMeta(resp.Header)
	if err != nil {
		return nil, &consul.ResponseError{StatusCode: resp.StatusCode, Body: resp.Body, Err: err}
	}

	payload, err := desc.Decode(resp.Body)
	if err != nil {
		return nil, &consul.ResponseError{StatusCode: resp.StatusCode, Body: resp.Body, Err: err}
	}

	return consul.NewResponse(payload, resp.StatusCode, resp.Header, meta), nil
}

func (e *Engine) fail(method, path, endpoint string, statusCode int, duration time.Duration, err error) {
	kind := consul.ErrorKind(err)

	e.metrics.IncError(method, endpoint, kind)

	e.logger.Error("Consul request failed", map[string]interface{}{
		"method":      method,
		"path":        path,
		"status_code": statusCode,
		"duration_ms": duration.Milliseconds(),
		"error_kind":  kind,
		"error":       err.Error(),
	})
}

func asValidationError(err error) error {
	valErr := &consul.ValidationError{}
	if errors.As(err, &valErr) {
		return valErr
	}

	return &consul.ValidationError{Err: err}
}

// baseURL validates and normalises an agent address into the /v1/ prefix.
func baseURL(address string) (string, error) {
	if address == "" {
		return "", &consul.ValidationError{Field: "Address", Err: consul.ErrAddressRequired}
	}

	if !strings.Contains(address, "://") {
		address = constants.DefaultScheme + "://" + address
	}

	parsed, err := url.Parse(address)
	if err != nil {
		return "", &consul.ValidationError{Field: "Address", Reason: address, Err: fmt.Errorf("%w: %w", consul.ErrInvalidAddress, err)}
	}

	if !parsed.IsAbs() || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return "", &consul.ValidationError{Field: "Address", Reason: address, Err: consul.ErrInvalidAddress}
	}

	path := strings.TrimRight(parsed.EscapedPath(), "/")

	return parsed.Scheme + "://" + parsed.Host + path + constants.APIPrefix, nil
}
