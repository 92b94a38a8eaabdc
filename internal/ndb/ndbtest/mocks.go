// Package ndbtest provides an in-memory ndb.Client for tests.
package ndbtest

import (
	"context"
	"net/http"
	"sync"

	"github.com/giantswarm/mcp-ndb/internal/ndb"
)

// Compile-time interface compliance check.
var _ ndb.Client = (*MockClient)(nil)

// Response is a canned reply for one route.
type Response struct {
	Body any
	Err  error
}

// MockClient answers requests from a route table keyed by "METHOD /endpoint".
// Query parameters are not part of the key; inspect Calls to assert on them.
// Unknown routes return a NotFound APIError.
type MockClient struct {
	mu     sync.Mutex
	routes map[string]Response
	calls  []ndb.Request
}

// NewMockClient creates an empty MockClient.
func NewMockClient() *MockClient {
	return &MockClient{routes: make(map[string]Response)}
}

// On registers body as the reply for method and endpoint.
func (m *MockClient) On(method, endpoint string, body any) *MockClient {
	return m.set(method, endpoint, Response{Body: body})
}

// OnGet is On for GET.
func (m *MockClient) OnGet(endpoint string, body any) *MockClient {
	return m.On(http.MethodGet, endpoint, body)
}

// Fail registers err as the reply for method and endpoint.
func (m *MockClient) Fail(method, endpoint string, err error) *MockClient {
	return m.set(method, endpoint, Response{Err: err})
}

func (m *MockClient) set(method, endpoint string, r Response) *MockClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.routes[method+" "+endpoint] = r
	return m
}

// Do implements ndb.Client.
func (m *MockClient) Do(ctx context.Context, req *ndb.Request) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, &ndb.APIError{Kind: ndb.KindNetwork, Message: "request cancelled", Err: err}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, *req)

	r, ok := m.routes[req.Method+" "+req.Endpoint]
	if !ok {
		return nil, &ndb.APIError{
			Kind:       ndb.KindNotFound,
			StatusCode: http.StatusNotFound,
			Message:    "no mock route for " + req.Method + " " + req.Endpoint,
			Method:     req.Method,
			Endpoint:   req.Endpoint,
		}
	}
	return r.Body, r.Err
}

// Calls returns a copy of every request received.
func (m *MockClient) Calls() []ndb.Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]ndb.Request(nil), m.calls...)
}

// CallCount returns the number of requests received.
func (m *MockClient) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// LastCall returns the most recent request, or nil.
func (m *MockClient) LastCall() *ndb.Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.calls) == 0 {
		return nil
	}
	last := m.calls[len(m.calls)-1]
	return &last
}

// CallsTo returns the requests made to endpoint.
func (m *MockClient) CallsTo(endpoint string) []ndb.Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []ndb.Request
	for _, c := range m.calls {
		if c.Endpoint == endpoint {
			out = append(out, c)
		}
	}
	return out
}
