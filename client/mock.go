package client

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/hupe1980/qconnect/core"
)

// MockClient is a lightweight in-memory Invoker useful for tests & examples.
// It records every request and answers with canned envelopes keyed by
// operation name; unknown operations answer with an empty JSON object.
type MockClient struct {
	mu        sync.Mutex
	responses map[string]core.Envelope
	calls     []*core.Request
}

var _ core.Invoker = (*MockClient)(nil)

// NewMockClient constructs an empty MockClient.
func NewMockClient() *MockClient {
	return &MockClient{responses: make(map[string]core.Envelope)}
}

// AddResponse registers a canned JSON body for an operation.
func (m *MockClient) AddResponse(operation, body string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[operation] = core.Envelope{Body: json.RawMessage(body), StatusCode: 200}
}

// AddError registers a canned failure for an operation.
func (m *MockClient) AddError(operation string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[operation] = core.Failure(err)
}

// Invoke implements core.Invoker.
func (m *MockClient) Invoke(ctx context.Context, req *core.Request) core.Envelope {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, req)
	if err := ctx.Err(); err != nil {
		return core.Failure(err)
	}
	if env, ok := m.responses[req.Operation]; ok {
		return env
	}
	return core.Success(json.RawMessage("{}"))
}

// Calls returns a snapshot of the recorded requests.
func (m *MockClient) Calls() []*core.Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*core.Request, len(m.calls))
	copy(out, m.calls)
	return out
}

// CallCount returns the number of recorded requests.
func (m *MockClient) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}
