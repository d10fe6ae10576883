package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/consul-client/pkg/consul"
)

// Test static errors.
var (
	ErrTestConnectionRefused = errors.New("dial tcp 127.0.0.1:8500: connect: connection refused")
)

// newTestClient creates a client against baseURL using the default transport.
func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()

	client, err := New(&consul.Config{Address: baseURL})
	require.NoError(t, err)

	return client
}

// stubTransport records every request and answers with a canned response.
type stubTransport struct {
	mu       sync.Mutex
	requests []*consul.TransportRequest
	respond  func(req *consul.TransportRequest) (*consul.TransportResponse, error)
}

func (s *stubTransport) Send(_ context.Context, req *consul.TransportRequest) (*consul.TransportResponse, error) {
	s.mu.Lock()
	s.requests = append(s.requests, req)
	s.mu.Unlock()

	if s.respond == nil {
		return &consul.TransportResponse{StatusCode: http.StatusOK, Header: http.Header{}, Body: []byte("{}")}, nil
	}

	return s.respond(req)
}

func (s *stubTransport) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.requests)
}

func (s *stubTransport) last() *consul.TransportRequest {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.requests) == 0 {
		return nil
	}

	return s.requests[len(s.requests)-1]
}

// newStubClient creates a client whose transport is stub.
func newStubClient(t *testing.T, stub *stubTransport, mutate ...func(*consul.Config)) *Client {
	t.Helper()

	cfg := &consul.Config{Address: "http://consul.test:8500", Transport: stub}
	for _, fn := range mutate {
		fn(cfg)
	}

	client, err := New(cfg)
	require.NoError(t, err)

	return client
}

// jsonResponse answers 200 with body and the given Consul index.
func jsonResponse(body, index string) func(*consul.TransportRequest) (*consul.TransportResponse, error) {
	return func(*consul.TransportRequest) (*consul.TransportResponse, error) {
		header := http.Header{}
		if index != "" {
			header.Set("X-Consul-Index", index)
		}

		return &consul.TransportResponse{StatusCode: http.StatusOK, Header: header, Body: []byte(body)}, nil
	}
}

// recordingLogger captures log entries.
type recordingLogger struct {
	mu      sync.Mutex
	entries []logEntry
}

type logEntry struct {
	level  string
	msg    string
	fields map[string]interface{}
}

func (l *recordingLogger) add(level, msg string, fields map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = append(l.entries, logEntry{level: level, msg: msg, fields: fields})
}

func (l *recordingLogger) Debug(msg string, fields map[string]interface{}) { l.add("debug", msg, fields) }
func (l *recordingLogger) Info(msg string, fields map[string]interface{})  { l.add("info", msg, fields) }
func (l *recordingLogger) Warn(msg string, fields map[string]interface{})  { l.add("warn", msg, fields) }
func (l *recordingLogger) Error(msg string, fields map[string]interface{}) { l.add("error", msg, fields) }

func (l *recordingLogger) messages() []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]string, 0, len(l.entries))
	for _, e := range l.entries {
		out = append(out, e.msg)
	}

	return out
}

// recordingMetrics captures metric calls.
type recordingMetrics struct {
	mu       sync.Mutex
	observed []string
	errors   []string
}

func (m *recordingMetrics) ObserveRequest(method, endpoint string, statusCode int, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.observed = append(m.observed, fmt.Sprintf("%s %s %d", method, endpoint, statusCode))
}

func (m *recordingMetrics) IncError(method, endpoint, kind string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.errors = append(m.errors, fmt.Sprintf("%s %s %s", method, endpoint, kind))
}
