package consul

import (
	"encoding/json"
	"net/http"
	"net/url"
)

// Method is an HTTP method used by the Consul API.
type Method string

// Supported methods.
const (
	MethodGet    Method = http.MethodGet
	MethodPut    Method = http.MethodPut
	MethodPost   Method = http.MethodPost
	MethodDelete Method = http.MethodDelete
)

func (m Method) valid() bool {
	switch m {
	case MethodGet, MethodPut, MethodPost, MethodDelete:
		return true
	default:
		return false
	}
}

// Endpoint is implemented by every typed request. Build validates the
// request and returns the descriptor the client executes; it must not touch
// the network.
type Endpoint[T any] interface {
	Build() (*Descriptor[T], error)
}

// EndpointFunc adapts a build function to the Endpoint interface.
type EndpointFunc[T any] func() (*Descriptor[T], error)

// Build implements Endpoint.
func (f EndpointFunc[T]) Build() (*Descriptor[T], error) {
	return f()
}

// DecodeFunc turns a successful response body into the payload type.
type DecodeFunc[T any] func(body []byte) (T, error)

// Empty is the payload of endpoints that return no body.
type Empty struct{}

// JSONDecoder decodes the body as JSON into T.
func JSONDecoder[T any]() DecodeFunc[T] {
	return func(body []byte) (T, error) {
		var payload T

		err := json.Unmarshal(body, &payload)

		return payload, err
	}
}

// RawDecoder returns the body bytes untouched.
func RawDecoder() DecodeFunc[[]byte] {
	return func(body []byte) ([]byte, error) {
		if body == nil {
			return []byte{}, nil
		}

		return body, nil
	}
}

// EmptyDecoder ignores the body.
func EmptyDecoder() DecodeFunc[Empty] {
	return func([]byte) (Empty, error) {
		return Empty{}, nil
	}
}

// Descriptor is a fully specified, immutable API call: method, resolved path,
// endpoint query parameters, optional body, options and the decoder for the
// payload type. Descriptors are produced by RequestBuilder.Build.
type Descriptor[T any] struct {
	method       Method
	pathTemplate string
	path         string
	query        url.Values
	body         any
	rawBody      []byte
	hasRawBody   bool
	contentType  string
	options      QueryOptions
	decode       DecodeFunc[T]
	built        bool
}

// Build implements Endpoint so a descriptor can be executed directly.
func (d *Descriptor[T]) Build() (*Descriptor[T], error) {
	err := d.Validate()
	if err != nil {
		return nil, err
	}

	return d, nil
}

// Validate reports a *ValidationError unless d came from
// RequestBuilder.Build. A zero or nil descriptor is never executable.
func (d *Descriptor[T]) Validate() error {
	if d == nil || !d.built || d.decode == nil {
		return &ValidationError{Field: "endpoint", Err: ErrIncompleteDescriptor}
	}

	if !d.method.valid() {
		return invalidMethod(d.method)
	}

	return nil
}

// Method returns the HTTP method.
func (d *Descriptor[T]) Method() Method { return d.method }

// PathTemplate returns the unresolved path, e.g. "kv/{key}". It is a stable
// label for logs and metrics.
func (d *Descriptor[T]) PathTemplate() string { return d.pathTemplate }

// Path returns the resolved and escaped path relative to /v1/.
func (d *Descriptor[T]) Path() string { return d.path }

// Query returns a copy of the endpoint-specific query parameters.
func (d *Descriptor[T]) Query() url.Values {
	return cloneValues(d.query)
}

// Options returns a copy of the query options.
func (d *Descriptor[T]) Options() QueryOptions {
	return d.options.clone()
}

// Body returns the value to be JSON encoded, or nil.
func (d *Descriptor[T]) Body() any { return d.body }

// RawBody returns the raw body and whether one was set.
func (d *Descriptor[T]) RawBody() ([]byte, bool) {
	if !d.hasRawBody {
		return nil, false
	}

	return append([]byte(nil), d.rawBody...), true
}

// ContentType returns the content type of the body, if any.
func (d *Descriptor[T]) ContentType() string { return d.contentType }

// Decode decodes a successful response body.
func (d *Descriptor[T]) Decode(body []byte) (T, error) {
	return d.decode(body)
}

func cloneValues(values url.Values) url.Values {
	clone := make(url.Values, len(values))
	for k, v := range values {
		clone[k] = append([]string(nil), v...)
	}

	return clone
}
