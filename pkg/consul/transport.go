package consul

import (
	"context"
	"net/http"
)

// TransportRequest is a fully prepared HTTP exchange. URL is absolute and
// already carries the encoded query string.
type TransportRequest struct {
	Method string
	URL    string
	Header http.Header
	Body   []byte
}

// TransportResponse is the raw result of an exchange. Body has been read in
// full and the connection released.
type TransportResponse struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Transport performs a single HTTP exchange. Implementations own connection
// pooling, TLS and any socket-level retry; they must respect ctx and return
// an error only when no response was received. Non-2xx statuses are
// responses, not errors.
type Transport interface {
	Send(ctx context.Context, req *TransportRequest) (*TransportResponse, error)
}

// TransportFunc adapts a function to the Transport interface.
type TransportFunc func(ctx context.Context, req *TransportRequest) (*TransportResponse, error)

// Send implements Transport.
func (f TransportFunc) Send(ctx context.Context, req *TransportRequest) (*TransportResponse, error) {
	return f(ctx, req)
}
